package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"eliteclub/internal/members/service"
	httputil "eliteclub/pkg/http"
	"eliteclub/pkg/logger"
	"eliteclub/pkg/middleware"
)

type MemberHandler struct {
	service service.MemberService
	auth    *middleware.Authenticator
	log     *logger.Logger
}

func NewMemberHandler(service service.MemberService, auth *middleware.Authenticator, log *logger.Logger) *MemberHandler {
	return &MemberHandler{
		service: service,
		auth:    auth,
		log:     log,
	}
}

type removeResponse struct {
	Success         bool     `json:"success"`
	Message         string   `json:"message"`
	DeletedBookings int64    `json:"deletedBookings"`
	Warnings        []string `json:"warnings,omitempty"`
}

func (h *MemberHandler) Remove(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	result, err := h.service.Remove(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Remove", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, removeResponse{
		Success:         true,
		Message:         "User and their bookings deleted successfully",
		DeletedBookings: result.DeletedBookings,
		Warnings:        result.Warnings,
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "Remove", "error", err)
	}
}

func (h *MemberHandler) RegisterRoutes(router *httprouter.Router) {
	router.DELETE("/members/:id", h.auth.Require(h.Remove))
}
