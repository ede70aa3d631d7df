package handlers

import (
	"context"
	"net/http"

	"github.com/gartstein/biztime/internal/biztime/models"
	"go.uber.org/zap"
)

// IndustryController defines the industry operations the HTTP handlers invoke.
type IndustryController interface {
	List(ctx context.Context) (map[string][]string, error)
	Create(ctx context.Context, industry *models.Industry) (*models.Industry, error)
	Associate(ctx context.Context, association *models.Association) (*models.Association, error)
}

// IndustryHandler serves the /industries routes.
type IndustryHandler struct {
	service IndustryController
	logger  *zap.Logger
}

func NewIndustryHandler(service IndustryController, logger *zap.Logger) *IndustryHandler {
	return &IndustryHandler{
		service: service,
		logger:  logger.Named("industry_handler"),
	}
}

type industryRequest struct {
	Code     *string `json:"code"`
	Industry *string `json:"industry"`
}

type associationRequest struct {
	IndCode  *string `json:"ind_code"`
	CompCode *string `json:"comp_code"`
}

func (h *IndustryHandler) list(w http.ResponseWriter, r *http.Request, _ map[string]string) error {
	industries, err := h.service.List(r.Context())
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, map[string]any{"industries": industriesToResponse(industries)}, h.logger)
	return nil
}

func (h *IndustryHandler) create(w http.ResponseWriter, r *http.Request, _ map[string]string) error {
	var req industryRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}
	if req.Code == nil {
		return required("code")
	}
	if req.Industry == nil {
		return required("industry")
	}

	industry, err := h.service.Create(r.Context(), &models.Industry{Code: *req.Code, Industry: *req.Industry})
	if err != nil {
		return err
	}
	// the created industry is reported under "company"; clients depend on the key
	writeJSON(w, http.StatusCreated, map[string]any{"company": industryToResponse(industry)}, h.logger)
	return nil
}

func (h *IndustryHandler) associate(w http.ResponseWriter, r *http.Request, _ map[string]string) error {
	var req associationRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}
	if req.IndCode == nil {
		return required("ind_code")
	}
	if req.CompCode == nil {
		return required("comp_code")
	}

	association, err := h.service.Associate(r.Context(), &models.Association{CompCode: *req.CompCode, IndCode: *req.IndCode})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, map[string]any{"association": associationToResponse(association)}, h.logger)
	return nil
}
