package handlers

import (
	"context"

	"github.com/gartstein/biztime/internal/biztime/models"
)

// mockCompanyController is a simple mock implementation of CompanyController.
type mockCompanyController struct {
	listFunc   func(ctx context.Context) ([]models.Company, error)
	getFunc    func(ctx context.Context, code string) (*models.CompanyDetail, error)
	createFunc func(ctx context.Context, name string, description *string) (*models.Company, error)
	updateFunc func(ctx context.Context, update *models.CompanyUpdate) (*models.Company, error)
	deleteFunc func(ctx context.Context, code string) error
}

func (m *mockCompanyController) List(ctx context.Context) ([]models.Company, error) {
	return m.listFunc(ctx)
}

func (m *mockCompanyController) Get(ctx context.Context, code string) (*models.CompanyDetail, error) {
	return m.getFunc(ctx, code)
}

func (m *mockCompanyController) Create(ctx context.Context, name string, description *string) (*models.Company, error) {
	return m.createFunc(ctx, name, description)
}

func (m *mockCompanyController) Update(ctx context.Context, update *models.CompanyUpdate) (*models.Company, error) {
	return m.updateFunc(ctx, update)
}

func (m *mockCompanyController) Delete(ctx context.Context, code string) error {
	return m.deleteFunc(ctx, code)
}

// mockInvoiceController is a simple mock implementation of InvoiceController.
type mockInvoiceController struct {
	listFunc   func(ctx context.Context) ([]models.InvoiceSummary, error)
	getFunc    func(ctx context.Context, id int64) (*models.InvoiceDetail, error)
	createFunc func(ctx context.Context, compCode string, amt float64) (*models.Invoice, error)
	updateFunc func(ctx context.Context, update *models.InvoiceUpdate) (*models.Invoice, error)
	deleteFunc func(ctx context.Context, id int64) error
}

func (m *mockInvoiceController) List(ctx context.Context) ([]models.InvoiceSummary, error) {
	return m.listFunc(ctx)
}

func (m *mockInvoiceController) Get(ctx context.Context, id int64) (*models.InvoiceDetail, error) {
	return m.getFunc(ctx, id)
}

func (m *mockInvoiceController) Create(ctx context.Context, compCode string, amt float64) (*models.Invoice, error) {
	return m.createFunc(ctx, compCode, amt)
}

func (m *mockInvoiceController) Update(ctx context.Context, update *models.InvoiceUpdate) (*models.Invoice, error) {
	return m.updateFunc(ctx, update)
}

func (m *mockInvoiceController) Delete(ctx context.Context, id int64) error {
	return m.deleteFunc(ctx, id)
}

// mockIndustryController is a simple mock implementation of IndustryController.
type mockIndustryController struct {
	listFunc      func(ctx context.Context) (map[string][]string, error)
	createFunc    func(ctx context.Context, industry *models.Industry) (*models.Industry, error)
	associateFunc func(ctx context.Context, association *models.Association) (*models.Association, error)
}

func (m *mockIndustryController) List(ctx context.Context) (map[string][]string, error) {
	return m.listFunc(ctx)
}

func (m *mockIndustryController) Create(ctx context.Context, industry *models.Industry) (*models.Industry, error) {
	return m.createFunc(ctx, industry)
}

func (m *mockIndustryController) Associate(ctx context.Context, association *models.Association) (*models.Association, error) {
	return m.associateFunc(ctx, association)
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }
