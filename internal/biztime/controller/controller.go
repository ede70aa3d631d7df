// Package controller implements the service layer for companies, invoices
// and industries, orchestrating repository operations and sending change
// events. Multi-step operations run inside a single repository transaction.
package controller

import (
	"context"
	"time"

	"github.com/gartstein/biztime/internal/biztime/db"
	"github.com/gartstein/biztime/internal/biztime/events"
	"github.com/gartstein/biztime/internal/biztime/models"
)

type EventProducer interface {
	Produce(eventType events.EventType, key string, payload any)
}

// Repository defines the storage interface used by the services.
type Repository interface {
	ListCompanies(ctx context.Context) ([]models.Company, error)
	GetCompany(ctx context.Context, code string) (*models.Company, error)
	GetCompanyWithIndustries(ctx context.Context, code string) (*models.Company, []string, error)
	CompanyInvoiceIDs(ctx context.Context, code string) ([]int64, error)
	CreateCompany(ctx context.Context, company *models.Company) error
	UpdateCompany(ctx context.Context, update *models.CompanyUpdate) error
	DeleteCompany(ctx context.Context, code string) error

	ListInvoices(ctx context.Context) ([]models.InvoiceSummary, error)
	GetInvoice(ctx context.Context, id int64) (*models.Invoice, error)
	GetInvoiceDetail(ctx context.Context, id int64) (*models.InvoiceDetail, error)
	CreateInvoice(ctx context.Context, invoice *models.Invoice) error
	UpdateInvoice(ctx context.Context, invoice *models.Invoice) error
	DeleteInvoice(ctx context.Context, id int64) error

	ListIndustries(ctx context.Context) ([]models.Industry, error)
	ListAssociations(ctx context.Context) ([]models.Association, error)
	CreateIndustry(ctx context.Context, industry *models.Industry) error
	CreateAssociation(ctx context.Context, association *models.Association) error

	WithTransaction(ctx context.Context, fn func(repo *db.Repository) error) error
}

var _ Repository = (*db.Repository)(nil)

// Clock returns the current time as stored by the database.
type Clock func() time.Time

// SystemClock is UTC wall time truncated to the microsecond precision of
// Postgres timestamps, so values read back compare equal.
func SystemClock() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
