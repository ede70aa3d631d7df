package handlers

import (
	"context"
	"net/http"

	"github.com/gartstein/biztime/internal/biztime/models"
	"go.uber.org/zap"
)

// CompanyController defines the company operations the HTTP handlers invoke.
type CompanyController interface {
	List(ctx context.Context) ([]models.Company, error)
	Get(ctx context.Context, code string) (*models.CompanyDetail, error)
	Create(ctx context.Context, name string, description *string) (*models.Company, error)
	Update(ctx context.Context, update *models.CompanyUpdate) (*models.Company, error)
	Delete(ctx context.Context, code string) error
}

// CompanyHandler serves the /companies routes.
type CompanyHandler struct {
	service CompanyController
	logger  *zap.Logger
}

func NewCompanyHandler(service CompanyController, logger *zap.Logger) *CompanyHandler {
	return &CompanyHandler{
		service: service,
		logger:  logger.Named("company_handler"),
	}
}

type companyRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (h *CompanyHandler) list(w http.ResponseWriter, r *http.Request, _ map[string]string) error {
	companies, err := h.service.List(r.Context())
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, map[string]any{"companies": companiesToResponse(companies)}, h.logger)
	return nil
}

func (h *CompanyHandler) get(w http.ResponseWriter, r *http.Request, params map[string]string) error {
	detail, err := h.service.Get(r.Context(), params["code"])
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, map[string]any{"company": companyDetailToResponse(detail)}, h.logger)
	return nil
}

func (h *CompanyHandler) create(w http.ResponseWriter, r *http.Request, _ map[string]string) error {
	var req companyRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}
	if req.Name == nil {
		return required("name")
	}

	company, err := h.service.Create(r.Context(), *req.Name, req.Description)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, map[string]any{"company": companyToResponse(company)}, h.logger)
	return nil
}

func (h *CompanyHandler) update(w http.ResponseWriter, r *http.Request, params map[string]string) error {
	var req companyRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}
	if req.Name == nil {
		return required("name")
	}

	company, err := h.service.Update(r.Context(), &models.CompanyUpdate{
		Code:        params["code"],
		Name:        *req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, map[string]any{"company": companyToResponse(company)}, h.logger)
	return nil
}

func (h *CompanyHandler) delete(w http.ResponseWriter, r *http.Request, params map[string]string) error {
	if err := h.service.Delete(r.Context(), params["code"]); err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, messageBody{Msg: "DELETED!"}, h.logger)
	return nil
}
