package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"eliteclub/internal/courts/service"
	apperrors "eliteclub/pkg/errors"
	httputil "eliteclub/pkg/http"
	"eliteclub/pkg/logger"
	"eliteclub/pkg/middleware"
	"eliteclub/pkg/model"
)

type CourtHandler struct {
	service service.CourtService
	auth    *middleware.Authenticator
	log     *logger.Logger
}

func NewCourtHandler(service service.CourtService, auth *middleware.Authenticator, log *logger.Logger) *CourtHandler {
	return &CourtHandler{
		service: service,
		auth:    auth,
		log:     log,
	}
}

type mutationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// List is public: the landing page shows the catalogue to visitors.
func (h *CourtHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	courts, err := h.service.List(r.Context())
	if err != nil {
		h.writeError(w, err, "List")
		return
	}
	if courts == nil {
		courts = []*model.Court{}
	}
	if err := httputil.WriteSuccess(w, courts); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "error", err)
	}
}

func (h *CourtHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var court model.Court
	if err := json.NewDecoder(r.Body).Decode(&court); err != nil {
		h.writeError(w, apperrors.InvalidInput("Invalid request body"), "Create")
		return
	}

	if err := h.service.Create(r.Context(), &court); err != nil {
		h.writeError(w, err, "Create")
		return
	}

	if err := httputil.WriteCreated(w, court); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *CourtHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var court model.Court
	if err := json.NewDecoder(r.Body).Decode(&court); err != nil {
		h.writeError(w, apperrors.InvalidInput("Invalid request body"), "Update")
		return
	}

	if err := h.service.Update(r.Context(), ps.ByName("id"), &court); err != nil {
		h.writeError(w, err, "Update")
		return
	}

	if err := httputil.WriteSuccess(w, mutationResponse{Success: true, Message: "Court updated successfully"}); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "error", err)
	}
}

func (h *CourtHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, err, "Delete")
		return
	}

	if err := httputil.WriteSuccess(w, mutationResponse{Success: true, Message: "Court deleted successfully"}); err != nil {
		h.log.Error("failed to write success response", "handler", "Delete", "error", err)
	}
}

func (h *CourtHandler) writeError(w http.ResponseWriter, err error, op string) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", op, "error", writeErr)
	}
}

func (h *CourtHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/courts", h.List)
	router.POST("/courts", h.auth.Require(h.Create))
	router.PATCH("/courts/:id", h.auth.Require(h.Update))
	router.DELETE("/courts/:id", h.auth.Require(h.Delete))
}
