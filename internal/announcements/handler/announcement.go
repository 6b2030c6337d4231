package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"eliteclub/internal/announcements/service"
	apperrors "eliteclub/pkg/errors"
	httputil "eliteclub/pkg/http"
	"eliteclub/pkg/logger"
	"eliteclub/pkg/middleware"
	"eliteclub/pkg/model"
)

type AnnouncementHandler struct {
	service service.AnnouncementService
	auth    *middleware.Authenticator
	log     *logger.Logger
}

func NewAnnouncementHandler(service service.AnnouncementService, auth *middleware.Authenticator, log *logger.Logger) *AnnouncementHandler {
	return &AnnouncementHandler{
		service: service,
		auth:    auth,
		log:     log,
	}
}

type mutationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *AnnouncementHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	announcements, err := h.service.List(r.Context())
	if err != nil {
		h.writeError(w, err, "List")
		return
	}
	if announcements == nil {
		announcements = []*model.Announcement{}
	}
	if err := httputil.WriteSuccess(w, announcements); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "error", err)
	}
}

func (h *AnnouncementHandler) Publish(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var announcement model.Announcement
	if err := json.NewDecoder(r.Body).Decode(&announcement); err != nil {
		h.writeError(w, apperrors.InvalidInput("Invalid request body"), "Publish")
		return
	}

	if err := h.service.Publish(r.Context(), &announcement); err != nil {
		h.writeError(w, err, "Publish")
		return
	}

	if err := httputil.WriteCreated(w, announcement); err != nil {
		h.log.Error("failed to write created response", "handler", "Publish", "error", err)
	}
}

func (h *AnnouncementHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var announcement model.Announcement
	if err := json.NewDecoder(r.Body).Decode(&announcement); err != nil {
		h.writeError(w, apperrors.InvalidInput("Invalid request body"), "Update")
		return
	}

	if err := h.service.Update(r.Context(), ps.ByName("id"), &announcement); err != nil {
		h.writeError(w, err, "Update")
		return
	}

	if err := httputil.WriteSuccess(w, mutationResponse{Success: true, Message: "Announcement updated successfully"}); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "error", err)
	}
}

func (h *AnnouncementHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, err, "Delete")
		return
	}

	if err := httputil.WriteSuccess(w, mutationResponse{Success: true, Message: "Announcement deleted successfully"}); err != nil {
		h.log.Error("failed to write success response", "handler", "Delete", "error", err)
	}
}

func (h *AnnouncementHandler) writeError(w http.ResponseWriter, err error, op string) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", op, "error", writeErr)
	}
}

func (h *AnnouncementHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/announcements", h.List)
	router.POST("/announcements", h.auth.Require(h.Publish))
	router.PATCH("/announcements/:id", h.auth.Require(h.Update))
	router.DELETE("/announcements/:id", h.auth.Require(h.Delete))
}
