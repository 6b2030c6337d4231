package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"eliteclub/internal/bookings/service"
	apperrors "eliteclub/pkg/errors"
	httputil "eliteclub/pkg/http"
	"eliteclub/pkg/logger"
	"eliteclub/pkg/middleware"
	"eliteclub/pkg/model"
)

type BookingHandler struct {
	service service.BookingService
	auth    *middleware.Authenticator
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, auth *middleware.Authenticator, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		auth:    auth,
		log:     log,
	}
}

type approveResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	UserUpdated bool   `json:"userUpdated"`
}

type deleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var booking model.Booking
	if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
		h.writeError(w, apperrors.InvalidInput("Invalid request body"), "Create")
		return
	}

	if err := h.service.Create(r.Context(), &booking); err != nil {
		h.writeError(w, err, "Create")
		return
	}

	if err := httputil.WriteCreated(w, booking); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *BookingHandler) Approve(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	var req model.ApprovalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, apperrors.InvalidInput("Invalid request body"), "Approve")
		return
	}

	result, err := h.service.Approve(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err, "Approve")
		return
	}

	message := "Booking approved and user promoted to member."
	if result.AlreadyMember {
		message = "Booking approved. User already a member."
	}

	if err := httputil.WriteSuccess(w, approveResponse{
		Success:     true,
		Message:     message,
		UserUpdated: result.Promoted,
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "Approve", "error", err)
	}
}

func (h *BookingHandler) ListPending(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	principal := middleware.PrincipalFromContext(r.Context())
	h.list(w, r, "ListPending", func() ([]*model.Booking, error) {
		return h.service.ListPending(r.Context(), principal.Email)
	})
}

func (h *BookingHandler) ListPendingAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.list(w, r, "ListPendingAll", func() ([]*model.Booking, error) {
		return h.service.ListPendingAll(r.Context())
	})
}

func (h *BookingHandler) ListApproved(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	principal := middleware.PrincipalFromContext(r.Context())
	h.list(w, r, "ListApproved", func() ([]*model.Booking, error) {
		return h.service.ListApproved(r.Context(), principal.Email)
	})
}

func (h *BookingHandler) ListConfirmed(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	principal := middleware.PrincipalFromContext(r.Context())
	h.list(w, r, "ListConfirmed", func() ([]*model.Booking, error) {
		return h.service.ListConfirmed(r.Context(), principal.Email)
	})
}

func (h *BookingHandler) ListConfirmedAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.list(w, r, "ListConfirmedAll", func() ([]*model.Booking, error) {
		return h.service.ListConfirmedAll(r.Context())
	})
}

func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, err, "Delete")
		return
	}

	if err := httputil.WriteSuccess(w, deleteResponse{
		Success: true,
		Message: "Booking deleted successfully",
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "Delete", "error", err)
	}
}

func (h *BookingHandler) list(w http.ResponseWriter, r *http.Request, op string, fetch func() ([]*model.Booking, error)) {
	bookings, err := fetch()
	if err != nil {
		h.writeError(w, err, op)
		return
	}
	if bookings == nil {
		bookings = []*model.Booking{}
	}
	if err := httputil.WriteSuccess(w, bookings); err != nil {
		h.log.Error("failed to write success response", "handler", op, "error", err)
	}
}

func (h *BookingHandler) writeError(w http.ResponseWriter, err error, op string) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", op, "error", writeErr)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/bookings/pending", h.auth.Require(h.ListPending))
	router.GET("/bookings/pending-all", h.auth.Require(h.ListPendingAll))
	router.GET("/bookings/approved", h.auth.Require(h.ListApproved))
	router.GET("/bookings/confirmed", h.auth.Require(h.ListConfirmed))
	router.GET("/bookings/confirmed-all", h.auth.Require(h.ListConfirmedAll))
	router.POST("/bookings", h.auth.Require(h.Create))
	router.PATCH("/bookings/approve/:id", h.auth.Require(h.Approve))
	router.DELETE("/bookings/:id", h.auth.Require(h.Delete))
}
