package db

import (
	"context"
	"errors"
	"time"

	rows "github.com/gartstein/biztime/internal/biztime/db/models"
	e "github.com/gartstein/biztime/internal/biztime/errors"
	"github.com/gartstein/biztime/internal/biztime/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (r *Repository) ListInvoices(ctx context.Context) ([]models.InvoiceSummary, error) {
	var found []rows.Invoice
	if err := r.db.WithContext(ctx).Select("id", "comp_code").Order("id").Find(&found).Error; err != nil {
		return nil, err
	}
	invoices := make([]models.InvoiceSummary, 0, len(found))
	for _, inv := range found {
		invoices = append(invoices, models.InvoiceSummary{ID: inv.ID, CompCode: inv.CompCode})
	}
	return invoices, nil
}

func (r *Repository) GetInvoice(ctx context.Context, id int64) (*models.Invoice, error) {
	var row rows.Invoice
	result := r.db.WithContext(ctx).First(&row, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}
	invoice := toInvoice(row)
	return &invoice, nil
}

type invoiceDetailRow struct {
	ID          int64
	CompCode    string
	Amt         float64
	Paid        bool
	AddDate     time.Time
	PaidDate    *time.Time
	Name        string
	Description *string
}

// GetInvoiceDetail fetches an invoice joined with its owning company.
func (r *Repository) GetInvoiceDetail(ctx context.Context, id int64) (*models.InvoiceDetail, error) {
	var joined invoiceDetailRow
	result := r.db.WithContext(ctx).Raw(`SELECT i.id, i.comp_code, i.amt, i.paid, i.add_date, i.paid_date,
			c.name, c.description
		FROM invoices AS i
			JOIN companies AS c ON i.comp_code = c.code
		WHERE i.id = ?`, id).Scan(&joined)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, e.ErrNotFound
	}

	return &models.InvoiceDetail{
		Invoice: models.Invoice{
			ID:       joined.ID,
			CompCode: joined.CompCode,
			Amt:      joined.Amt,
			Paid:     joined.Paid,
			AddDate:  joined.AddDate,
			PaidDate: joined.PaidDate,
		},
		Company: models.Company{Code: joined.CompCode, Name: joined.Name, Description: joined.Description},
	}, nil
}

// CreateInvoice inserts invoice and sets its generated ID.
func (r *Repository) CreateInvoice(ctx context.Context, invoice *models.Invoice) error {
	row := rows.Invoice{
		CompCode: invoice.CompCode,
		Amt:      invoice.Amt,
		Paid:     invoice.Paid,
		AddDate:  invoice.AddDate,
		PaidDate: invoice.PaidDate,
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&row).Error; err != nil {
		return err
	}
	invoice.ID = row.ID
	return nil
}

func (r *Repository) UpdateInvoice(ctx context.Context, invoice *models.Invoice) error {
	result := r.db.WithContext(ctx).Model(&rows.Invoice{}).
		Where("id = ?", invoice.ID).
		Updates(map[string]interface{}{
			"amt":       invoice.Amt,
			"paid":      invoice.Paid,
			"paid_date": invoice.PaidDate,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteInvoice(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&rows.Invoice{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

func toInvoice(row rows.Invoice) models.Invoice {
	return models.Invoice{
		ID:       row.ID,
		CompCode: row.CompCode,
		Amt:      row.Amt,
		Paid:     row.Paid,
		AddDate:  row.AddDate,
		PaidDate: row.PaidDate,
	}
}
