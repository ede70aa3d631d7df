package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/gartstein/biztime/internal/biztime/db"
	e "github.com/gartstein/biztime/internal/biztime/errors"
	"github.com/gartstein/biztime/internal/biztime/events"
	"github.com/gartstein/biztime/internal/biztime/models"
	"github.com/gartstein/biztime/internal/biztime/slug"
	"go.uber.org/zap"
)

// CompanyService manages companies.
type CompanyService struct {
	repo     Repository
	producer EventProducer
	logger   *zap.Logger
	slugify  slug.Func
}

// NewCompanyService constructs a CompanyService with a repository,
// an event producer, and a logger. Codes are derived with slug.Make.
func NewCompanyService(repo Repository, producer EventProducer, logger *zap.Logger) *CompanyService {
	return &CompanyService{
		repo:     repo,
		producer: producer,
		logger:   logger.Named("company_service"),
		slugify:  slug.Make,
	}
}

// WithSlugFunc replaces the function that derives company codes from names.
func (s *CompanyService) WithSlugFunc(fn slug.Func) *CompanyService {
	s.slugify = fn
	return s
}

func companyNotFound(code string) error {
	return e.NotFound("Can't find company with code '%s'", code)
}

func (s *CompanyService) List(ctx context.Context) ([]models.Company, error) {
	companies, err := s.repo.ListCompanies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	return companies, nil
}

// Get returns the company with its industries and invoice ids.
func (s *CompanyService) Get(ctx context.Context, code string) (*models.CompanyDetail, error) {
	company, industries, err := s.repo.GetCompanyWithIndustries(ctx, code)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, companyNotFound(code)
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	invoices, err := s.repo.CompanyInvoiceIDs(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get company invoices: %w", err)
	}

	detail := &models.CompanyDetail{
		Company:    *company,
		Industries: industries,
		Invoices:   invoices,
	}
	if len(industries) > 0 {
		detail.Industry = &industries[0]
	}
	return detail, nil
}

// Create stores a new company whose code is the slug of name. Uniqueness
// is left to the database.
func (s *CompanyService) Create(ctx context.Context, name string, description *string) (*models.Company, error) {
	code := s.slugify(name)
	if code == "" {
		return nil, e.BadRequest("name '%s' does not yield a company code", name)
	}

	company := &models.Company{Code: code, Name: name, Description: description}
	if err := s.repo.CreateCompany(ctx, company); err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	s.producer.Produce(events.CompanyCreated, company.Code, company)
	return company, nil
}

// Update replaces name and description, returning the stored company.
func (s *CompanyService) Update(ctx context.Context, update *models.CompanyUpdate) (*models.Company, error) {
	var updated *models.Company
	err := s.repo.WithTransaction(ctx, func(tx *db.Repository) error {
		if err := tx.UpdateCompany(ctx, update); err != nil {
			return err
		}
		company, err := tx.GetCompany(ctx, update.Code)
		if err != nil {
			return err
		}
		updated = company
		return nil
	})
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, companyNotFound(update.Code)
		}
		return nil, fmt.Errorf("failed to update company: %w", err)
	}

	s.producer.Produce(events.CompanyUpdated, updated.Code, updated)
	return updated, nil
}

// Delete removes a company after checking it exists, in one transaction.
func (s *CompanyService) Delete(ctx context.Context, code string) error {
	var deleted *models.Company
	err := s.repo.WithTransaction(ctx, func(tx *db.Repository) error {
		company, err := tx.GetCompany(ctx, code)
		if err != nil {
			return err
		}
		deleted = company
		return tx.DeleteCompany(ctx, code)
	})
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return companyNotFound(code)
		}
		s.logger.Error("Failed to delete company", zap.Error(err), zap.String("code", code))
		return fmt.Errorf("failed to delete company: %w", err)
	}

	s.producer.Produce(events.CompanyDeleted, code, deleted)
	return nil
}
