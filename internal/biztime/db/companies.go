package db

import (
	"context"
	"errors"

	rows "github.com/gartstein/biztime/internal/biztime/db/models"
	e "github.com/gartstein/biztime/internal/biztime/errors"
	"github.com/gartstein/biztime/internal/biztime/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (r *Repository) ListCompanies(ctx context.Context) ([]models.Company, error) {
	var found []rows.Company
	if err := r.db.WithContext(ctx).Order("code").Find(&found).Error; err != nil {
		return nil, err
	}
	companies := make([]models.Company, 0, len(found))
	for _, c := range found {
		companies = append(companies, toCompany(c))
	}
	return companies, nil
}

func (r *Repository) GetCompany(ctx context.Context, code string) (*models.Company, error) {
	var row rows.Company
	result := r.db.WithContext(ctx).First(&row, "code = ?", code)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}
	company := toCompany(row)
	return &company, nil
}

type companyIndustryRow struct {
	Code        string
	Name        string
	Description *string
	Industry    *string
}

// GetCompanyWithIndustries fetches a company left-joined to its industries.
// The labels come back sorted; a company with no industries yields none.
func (r *Repository) GetCompanyWithIndustries(ctx context.Context, code string) (*models.Company, []string, error) {
	var joined []companyIndustryRow
	err := r.db.WithContext(ctx).Raw(`SELECT c.code, c.name, c.description, i.industry
		FROM companies AS c
			LEFT JOIN companies_industries AS ci ON c.code = ci.comp_code
			LEFT JOIN industries AS i ON ci.ind_code = i.code
		WHERE c.code = ?
		ORDER BY i.industry`, code).Scan(&joined).Error
	if err != nil {
		return nil, nil, err
	}
	if len(joined) == 0 {
		return nil, nil, e.ErrNotFound
	}

	company := &models.Company{Code: joined[0].Code, Name: joined[0].Name, Description: joined[0].Description}
	industries := make([]string, 0, len(joined))
	for _, j := range joined {
		if j.Industry != nil {
			industries = append(industries, *j.Industry)
		}
	}
	return company, industries, nil
}

func (r *Repository) CompanyInvoiceIDs(ctx context.Context, code string) ([]int64, error) {
	ids := make([]int64, 0)
	err := r.db.WithContext(ctx).Model(&rows.Invoice{}).
		Where("comp_code = ?", code).
		Order("id").
		Pluck("id", &ids).Error
	return ids, err
}

func (r *Repository) CreateCompany(ctx context.Context, company *models.Company) error {
	row := rows.Company{Code: company.Code, Name: company.Name, Description: company.Description}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(&row).Error
}

func (r *Repository) UpdateCompany(ctx context.Context, update *models.CompanyUpdate) error {
	result := r.db.WithContext(ctx).Model(&rows.Company{}).
		Where("code = ?", update.Code).
		Updates(map[string]interface{}{
			"name":        update.Name,
			"description": update.Description,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteCompany(ctx context.Context, code string) error {
	result := r.db.WithContext(ctx).Delete(&rows.Company{}, "code = ?", code)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

func toCompany(row rows.Company) models.Company {
	return models.Company{Code: row.Code, Name: row.Name, Description: row.Description}
}
