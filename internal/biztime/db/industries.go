package db

import (
	"context"

	rows "github.com/gartstein/biztime/internal/biztime/db/models"
	"github.com/gartstein/biztime/internal/biztime/models"
	"gorm.io/gorm/clause"
)

func (r *Repository) ListIndustries(ctx context.Context) ([]models.Industry, error) {
	var found []rows.Industry
	if err := r.db.WithContext(ctx).Order("code").Find(&found).Error; err != nil {
		return nil, err
	}
	industries := make([]models.Industry, 0, len(found))
	for _, ind := range found {
		industries = append(industries, models.Industry{Code: ind.Code, Industry: ind.Industry})
	}
	return industries, nil
}

func (r *Repository) ListAssociations(ctx context.Context) ([]models.Association, error) {
	var found []rows.CompanyIndustry
	err := r.db.WithContext(ctx).
		Select("comp_code", "ind_code").
		Order("ind_code").Order("comp_code").
		Find(&found).Error
	if err != nil {
		return nil, err
	}
	associations := make([]models.Association, 0, len(found))
	for _, a := range found {
		associations = append(associations, models.Association{CompCode: a.CompCode, IndCode: a.IndCode})
	}
	return associations, nil
}

func (r *Repository) CreateIndustry(ctx context.Context, industry *models.Industry) error {
	row := rows.Industry{Code: industry.Code, Industry: industry.Industry}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) CreateAssociation(ctx context.Context, association *models.Association) error {
	row := rows.CompanyIndustry{CompCode: association.CompCode, IndCode: association.IndCode}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(&row).Error
}
