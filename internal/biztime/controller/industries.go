package controller

import (
	"context"
	"fmt"

	"github.com/gartstein/biztime/internal/biztime/db"
	"github.com/gartstein/biztime/internal/biztime/events"
	"github.com/gartstein/biztime/internal/biztime/models"
	"go.uber.org/zap"
)

// IndustryService manages industries and their company associations.
type IndustryService struct {
	repo     Repository
	producer EventProducer
	logger   *zap.Logger
}

func NewIndustryService(repo Repository, producer EventProducer, logger *zap.Logger) *IndustryService {
	return &IndustryService{
		repo:     repo,
		producer: producer,
		logger:   logger.Named("industry_service"),
	}
}

// List maps every industry code to the codes of its companies. Industries
// without companies map to an empty list. An association naming an
// industry that was not listed is an internal fault.
func (s *IndustryService) List(ctx context.Context) (map[string][]string, error) {
	var (
		industries   []models.Industry
		associations []models.Association
	)
	err := s.repo.WithTransaction(ctx, func(tx *db.Repository) error {
		var err error
		if industries, err = tx.ListIndustries(ctx); err != nil {
			return err
		}
		associations, err = tx.ListAssociations(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list industries: %w", err)
	}

	byCode := make(map[string][]string, len(industries))
	for _, ind := range industries {
		byCode[ind.Code] = []string{}
	}
	for _, a := range associations {
		companies, ok := byCode[a.IndCode]
		if !ok {
			s.logger.Error("Association references unknown industry",
				zap.String("ind_code", a.IndCode),
				zap.String("comp_code", a.CompCode),
			)
			return nil, fmt.Errorf("association of company '%s' references unknown industry '%s'", a.CompCode, a.IndCode)
		}
		byCode[a.IndCode] = append(companies, a.CompCode)
	}
	return byCode, nil
}

func (s *IndustryService) Create(ctx context.Context, industry *models.Industry) (*models.Industry, error) {
	if err := s.repo.CreateIndustry(ctx, industry); err != nil {
		return nil, fmt.Errorf("failed to create industry: %w", err)
	}

	s.producer.Produce(events.IndustryCreated, industry.Code, industry)
	return industry, nil
}

// Associate links a company to an industry. Both must already exist.
func (s *IndustryService) Associate(ctx context.Context, association *models.Association) (*models.Association, error) {
	if err := s.repo.CreateAssociation(ctx, association); err != nil {
		return nil, fmt.Errorf("failed to associate company with industry: %w", err)
	}

	s.producer.Produce(events.IndustryAssociated, association.IndCode, association)
	return association, nil
}
