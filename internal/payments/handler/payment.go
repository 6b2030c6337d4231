package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"eliteclub/internal/payments/service"
	apperrors "eliteclub/pkg/errors"
	httputil "eliteclub/pkg/http"
	"eliteclub/pkg/logger"
	"eliteclub/pkg/middleware"
	"eliteclub/pkg/model"
)

type PaymentHandler struct {
	service service.PaymentService
	auth    *middleware.Authenticator
	log     *logger.Logger
}

func NewPaymentHandler(service service.PaymentService, auth *middleware.Authenticator, log *logger.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		auth:    auth,
		log:     log,
	}
}

type settleResponse struct {
	Message   string `json:"message"`
	PaymentID string `json:"paymentId"`
}

func (h *PaymentHandler) Settle(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var payment model.Payment
	if err := json.NewDecoder(r.Body).Decode(&payment); err != nil {
		h.writeError(w, apperrors.InvalidInput("Invalid request body"), "Settle")
		return
	}

	id, err := h.service.Settle(r.Context(), &payment)
	if err != nil {
		h.writeError(w, err, "Settle")
		return
	}

	if err := httputil.WriteCreated(w, settleResponse{
		Message:   "Payment saved successfully",
		PaymentID: id,
	}); err != nil {
		h.log.Error("failed to write created response", "handler", "Settle", "error", err)
	}
}

func (h *PaymentHandler) ListOwn(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	principal := middleware.PrincipalFromContext(r.Context())
	payments, err := h.service.ListByOwner(r.Context(), principal.Email)
	if err != nil {
		h.writeError(w, err, "ListOwn")
		return
	}
	if payments == nil {
		payments = []*model.Payment{}
	}
	if err := httputil.WriteSuccess(w, payments); err != nil {
		h.log.Error("failed to write success response", "handler", "ListOwn", "error", err)
	}
}

func (h *PaymentHandler) writeError(w http.ResponseWriter, err error, op string) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", op, "error", writeErr)
	}
}

func (h *PaymentHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/payments", h.auth.Require(h.Settle))
	router.GET("/payments", h.auth.Require(h.ListOwn))
}
