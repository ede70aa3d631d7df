package handlers

import (
	"context"
	"net/http"
	"strconv"

	e "github.com/gartstein/biztime/internal/biztime/errors"
	"github.com/gartstein/biztime/internal/biztime/models"
	"go.uber.org/zap"
)

// InvoiceController defines the invoice operations the HTTP handlers invoke.
type InvoiceController interface {
	List(ctx context.Context) ([]models.InvoiceSummary, error)
	Get(ctx context.Context, id int64) (*models.InvoiceDetail, error)
	Create(ctx context.Context, compCode string, amt float64) (*models.Invoice, error)
	Update(ctx context.Context, update *models.InvoiceUpdate) (*models.Invoice, error)
	Delete(ctx context.Context, id int64) error
}

// InvoiceHandler serves the /invoices routes.
type InvoiceHandler struct {
	service InvoiceController
	logger  *zap.Logger
}

func NewInvoiceHandler(service InvoiceController, logger *zap.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		service: service,
		logger:  logger.Named("invoice_handler"),
	}
}

type createInvoiceRequest struct {
	CompCode *string `json:"comp_code"`
	Amt      *Amount `json:"amt"`
}

type updateInvoiceRequest struct {
	Amt  *Amount `json:"amt"`
	Paid *bool   `json:"paid"`
}

// invoiceID parses the id path parameter. An id that is not an integer
// cannot name an invoice, so it reads as not found.
func invoiceID(params map[string]string) (int64, error) {
	raw := params["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, e.NotFound("Can't find invoice with id '%s'", raw)
	}
	return id, nil
}

func (h *InvoiceHandler) list(w http.ResponseWriter, r *http.Request, _ map[string]string) error {
	invoices, err := h.service.List(r.Context())
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, map[string]any{"invoices": invoiceSummariesToResponse(invoices)}, h.logger)
	return nil
}

func (h *InvoiceHandler) get(w http.ResponseWriter, r *http.Request, params map[string]string) error {
	id, err := invoiceID(params)
	if err != nil {
		return err
	}
	detail, err := h.service.Get(r.Context(), id)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, map[string]any{"invoice": invoiceDetailToResponse(detail)}, h.logger)
	return nil
}

func (h *InvoiceHandler) create(w http.ResponseWriter, r *http.Request, _ map[string]string) error {
	var req createInvoiceRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}
	if req.CompCode == nil {
		return required("comp_code")
	}
	if req.Amt == nil {
		return required("amt")
	}

	invoice, err := h.service.Create(r.Context(), *req.CompCode, float64(*req.Amt))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, map[string]any{"invoice": invoiceToResponse(invoice)}, h.logger)
	return nil
}

func (h *InvoiceHandler) update(w http.ResponseWriter, r *http.Request, params map[string]string) error {
	id, err := invoiceID(params)
	if err != nil {
		return err
	}
	var req updateInvoiceRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}
	if req.Amt == nil {
		return required("amt")
	}

	invoice, err := h.service.Update(r.Context(), &models.InvoiceUpdate{
		ID:   id,
		Amt:  float64(*req.Amt),
		Paid: req.Paid,
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, map[string]any{"invoice": invoiceToResponse(invoice)}, h.logger)
	return nil
}

func (h *InvoiceHandler) delete(w http.ResponseWriter, r *http.Request, params map[string]string) error {
	id, err := invoiceID(params)
	if err != nil {
		return err
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, messageBody{Msg: "deleted"}, h.logger)
	return nil
}
