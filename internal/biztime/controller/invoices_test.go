package controller

import (
	"context"
	"net/http"
	"testing"
	"time"

	e "github.com/gartstein/biztime/internal/biztime/errors"
	"github.com/gartstein/biztime/internal/biztime/events"
	"github.com/gartstein/biztime/internal/biztime/models"
	"github.com/gartstein/biztime/internal/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestInvoiceService_CreateAndGet(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	newCompanyFixture(t, repo, "fbk", "Zuckerberg")
	created := time.Date(2021, 10, 26, 4, 0, 0, 0, time.UTC)
	producer := &MockProducer{}
	svc := NewInvoiceService(repo, producer, zaptest.NewLogger(t)).WithClock(fixedClock(created))

	invoice, err := svc.Create(ctx, "fbk", 100)
	require.NoError(t, err)
	assert.NotZero(t, invoice.ID)
	assert.Equal(t, "fbk", invoice.CompCode)
	assert.Equal(t, 100.0, invoice.Amt)
	assert.False(t, invoice.Paid)
	assert.Nil(t, invoice.PaidDate)
	assert.True(t, created.Equal(invoice.AddDate))
	assert.Equal(t, []events.EventType{events.InvoiceCreated}, producer.types())

	detail, err := svc.Get(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, invoice.ID, detail.ID)
	assert.Equal(t, models.Company{Code: "fbk", Name: "fbk", Description: utils.Ptr("Zuckerberg")}, detail.Company)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.InvoiceSummary{{ID: invoice.ID, CompCode: "fbk"}}, list)

	_, err = svc.Get(ctx, 0)
	assertAppError(t, err, http.StatusNotFound, "Can't find invoice with id '0'")
}

func TestInvoiceService_CreateUnknownCompany(t *testing.T) {
	repo := setupRepo(t)
	svc := NewInvoiceService(repo, &MockProducer{}, zaptest.NewLogger(t))

	_, err := svc.Create(context.Background(), "ghost", 10)
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, e.StatusOf(err))
}

func TestInvoiceService_UpdatePaidDate(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	newCompanyFixture(t, repo, "fbk", "Zuckerberg")

	created := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	firstPaid := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	later := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	svc := NewInvoiceService(repo, &MockProducer{}, zaptest.NewLogger(t)).
		WithClock(fixedClock(created, firstPaid, later))

	invoice, err := svc.Create(ctx, "fbk", 100)
	require.NoError(t, err)

	steps := []struct {
		name         string
		amt          float64
		paid         *bool
		wantPaid     bool
		wantPaidDate *time.Time
	}{
		{name: "first payment stamps now", amt: 200, paid: utils.Ptr(true), wantPaid: true, wantPaidDate: &firstPaid},
		{name: "staying paid keeps the date", amt: 300, paid: utils.Ptr(true), wantPaid: true, wantPaidDate: &firstPaid},
		{name: "omitted paid keeps state", amt: 350, paid: nil, wantPaid: true, wantPaidDate: &firstPaid},
		{name: "unpaying clears the date", amt: 400, paid: utils.Ptr(false), wantPaid: false, wantPaidDate: nil},
		{name: "paying again stamps a new date", amt: 500, paid: utils.Ptr(true), wantPaid: true, wantPaidDate: &later},
	}

	for _, step := range steps {
		updated, err := svc.Update(ctx, &models.InvoiceUpdate{ID: invoice.ID, Amt: step.amt, Paid: step.paid})
		require.NoError(t, err, step.name)
		assert.Equal(t, step.amt, updated.Amt, step.name)
		assert.Equal(t, step.wantPaid, updated.Paid, step.name)

		stored, err := repo.GetInvoice(ctx, invoice.ID)
		require.NoError(t, err, step.name)
		if step.wantPaidDate == nil {
			assert.Nil(t, updated.PaidDate, step.name)
			assert.Nil(t, stored.PaidDate, step.name)
			continue
		}
		require.NotNil(t, updated.PaidDate, step.name)
		require.NotNil(t, stored.PaidDate, step.name)
		assert.True(t, step.wantPaidDate.Equal(*updated.PaidDate), step.name)
		assert.True(t, step.wantPaidDate.Equal(*stored.PaidDate), step.name)
	}
}

func TestInvoiceService_UpdateNotFound(t *testing.T) {
	repo := setupRepo(t)
	producer := &MockProducer{}
	svc := NewInvoiceService(repo, producer, zaptest.NewLogger(t))

	_, err := svc.Update(context.Background(), &models.InvoiceUpdate{ID: 99, Amt: 1, Paid: utils.Ptr(true)})
	assertAppError(t, err, http.StatusNotFound, "Can't find invoice with id '99'")
	assert.Empty(t, producer.types())
}

func TestInvoiceService_Delete(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	newCompanyFixture(t, repo, "fbk", "Zuckerberg")
	producer := &MockProducer{}
	svc := NewInvoiceService(repo, producer, zaptest.NewLogger(t))

	invoice, err := svc.Create(ctx, "fbk", 100)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, invoice.ID))
	assert.Equal(t, []events.EventType{events.InvoiceCreated, events.InvoiceDeleted}, producer.types())

	err = svc.Delete(ctx, invoice.ID)
	assertAppError(t, err, http.StatusNotFound, "Can't find invoice with id '"+itoa(invoice.ID)+"'")
}
