package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"eliteclub/internal/coupons/service"
	apperrors "eliteclub/pkg/errors"
	httputil "eliteclub/pkg/http"
	"eliteclub/pkg/logger"
	"eliteclub/pkg/middleware"
	"eliteclub/pkg/model"
)

type CouponHandler struct {
	service service.CouponService
	auth    *middleware.Authenticator
	log     *logger.Logger
}

func NewCouponHandler(service service.CouponService, auth *middleware.Authenticator, log *logger.Logger) *CouponHandler {
	return &CouponHandler{
		service: service,
		auth:    auth,
		log:     log,
	}
}

type mutationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Validate is public: the booking page checks codes before the caller
// has signed in.
func (h *CouponHandler) Validate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	result, err := h.service.Validate(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		h.writeError(w, err, "Validate")
		return
	}
	if err := httputil.WriteSuccess(w, result); err != nil {
		h.log.Error("failed to write success response", "handler", "Validate", "error", err)
	}
}

func (h *CouponHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	coupons, err := h.service.List(r.Context())
	if err != nil {
		h.writeError(w, err, "List")
		return
	}
	if coupons == nil {
		coupons = []*model.Coupon{}
	}
	if err := httputil.WriteSuccess(w, coupons); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "error", err)
	}
}

func (h *CouponHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var coupon model.Coupon
	if err := json.NewDecoder(r.Body).Decode(&coupon); err != nil {
		h.writeError(w, apperrors.InvalidInput("Invalid request body"), "Create")
		return
	}

	if err := h.service.Create(r.Context(), &coupon); err != nil {
		h.writeError(w, err, "Create")
		return
	}

	if err := httputil.WriteCreated(w, coupon); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *CouponHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var coupon model.Coupon
	if err := json.NewDecoder(r.Body).Decode(&coupon); err != nil {
		h.writeError(w, apperrors.InvalidInput("Invalid request body"), "Update")
		return
	}

	if err := h.service.Update(r.Context(), ps.ByName("id"), &coupon); err != nil {
		h.writeError(w, err, "Update")
		return
	}

	if err := httputil.WriteSuccess(w, mutationResponse{Success: true, Message: "Coupon updated successfully"}); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "error", err)
	}
}

func (h *CouponHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, err, "Delete")
		return
	}

	if err := httputil.WriteSuccess(w, mutationResponse{Success: true, Message: "Coupon deleted successfully"}); err != nil {
		h.log.Error("failed to write success response", "handler", "Delete", "error", err)
	}
}

func (h *CouponHandler) writeError(w http.ResponseWriter, err error, op string) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", op, "error", writeErr)
	}
}

func (h *CouponHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/coupons/validate", h.Validate)
	router.GET("/coupons", h.List)
	router.POST("/coupons", h.auth.Require(h.Create))
	router.PATCH("/coupons/:id", h.auth.Require(h.Update))
	router.DELETE("/coupons/:id", h.auth.Require(h.Delete))
}
