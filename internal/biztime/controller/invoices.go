package controller

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/gartstein/biztime/internal/biztime/db"
	e "github.com/gartstein/biztime/internal/biztime/errors"
	"github.com/gartstein/biztime/internal/biztime/events"
	"github.com/gartstein/biztime/internal/biztime/models"
	"go.uber.org/zap"
)

// InvoiceService manages invoices and derives their paid dates.
type InvoiceService struct {
	repo     Repository
	producer EventProducer
	logger   *zap.Logger
	now      Clock
}

func NewInvoiceService(repo Repository, producer EventProducer, logger *zap.Logger) *InvoiceService {
	return &InvoiceService{
		repo:     repo,
		producer: producer,
		logger:   logger.Named("invoice_service"),
		now:      SystemClock,
	}
}

// WithClock replaces the clock used for add_date and paid_date.
func (s *InvoiceService) WithClock(now Clock) *InvoiceService {
	s.now = now
	return s
}

func invoiceNotFound(id int64) error {
	return e.NotFound("Can't find invoice with id '%d'", id)
}

func (s *InvoiceService) List(ctx context.Context) ([]models.InvoiceSummary, error) {
	invoices, err := s.repo.ListInvoices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invoices, nil
}

// Get returns the invoice together with its company.
func (s *InvoiceService) Get(ctx context.Context, id int64) (*models.InvoiceDetail, error) {
	invoice, err := s.repo.GetInvoiceDetail(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, invoiceNotFound(id)
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	return invoice, nil
}

// Create stores an unpaid invoice for compCode dated now. The company's
// existence is enforced by the database.
func (s *InvoiceService) Create(ctx context.Context, compCode string, amt float64) (*models.Invoice, error) {
	invoice := &models.Invoice{
		CompCode: compCode,
		Amt:      amt,
		Paid:     false,
		AddDate:  s.now(),
	}
	if err := s.repo.CreateInvoice(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	s.producer.Produce(events.InvoiceCreated, strconv.FormatInt(invoice.ID, 10), invoice)
	return invoice, nil
}

// Update sets the amount and paid state. paid_date is derived from the
// stored state with models.NextPaidDate; a nil Paid keeps the stored value.
func (s *InvoiceService) Update(ctx context.Context, update *models.InvoiceUpdate) (*models.Invoice, error) {
	var updated *models.Invoice
	err := s.repo.WithTransaction(ctx, func(tx *db.Repository) error {
		current, err := tx.GetInvoice(ctx, update.ID)
		if err != nil {
			return err
		}

		paid := current.Paid
		if update.Paid != nil {
			paid = *update.Paid
		}
		current.Amt = update.Amt
		current.PaidDate = models.NextPaidDate(current.PaidDate, paid, s.now())
		current.Paid = paid

		if err := tx.UpdateInvoice(ctx, current); err != nil {
			return err
		}
		updated = current
		return nil
	})
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, invoiceNotFound(update.ID)
		}
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}

	s.producer.Produce(events.InvoiceUpdated, strconv.FormatInt(updated.ID, 10), updated)
	return updated, nil
}

// Delete removes an invoice after checking it exists, in one transaction.
func (s *InvoiceService) Delete(ctx context.Context, id int64) error {
	var deleted *models.Invoice
	err := s.repo.WithTransaction(ctx, func(tx *db.Repository) error {
		invoice, err := tx.GetInvoice(ctx, id)
		if err != nil {
			return err
		}
		deleted = invoice
		return tx.DeleteInvoice(ctx, id)
	})
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return invoiceNotFound(id)
		}
		s.logger.Error("Failed to delete invoice", zap.Error(err), zap.Int64("id", id))
		return fmt.Errorf("failed to delete invoice: %w", err)
	}

	s.producer.Produce(events.InvoiceDeleted, strconv.FormatInt(id, 10), deleted)
	return nil
}
