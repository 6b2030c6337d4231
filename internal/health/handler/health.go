package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"eliteclub/pkg/client"
	apperrors "eliteclub/pkg/errors"
	httputil "eliteclub/pkg/http"
	"eliteclub/pkg/logger"
)

type HealthHandler struct {
	client *client.Client
	log    *logger.Logger
}

func NewHealthHandler(client *client.Client, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		client: client,
		log:    log,
	}
}

type healthResponse struct {
	Status string `json:"status"`
}

func (h *HealthHandler) Live(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	if err := httputil.WriteSuccess(w, healthResponse{Status: "ok"}); err != nil {
		h.log.Error("failed to write success response", "handler", "Live", "error", err)
	}
}

// Ready pings the store; a broken Mongo connection should take the
// instance out of rotation, not just fail requests one by one.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.client.Mongo.Ping(ctx, readpref.Primary()); err != nil {
		h.log.Error("readiness ping failed", "error", err)
		if writeErr := httputil.WriteError(w, apperrors.Unavailable("Database unreachable")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Ready", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, healthResponse{Status: "ready"}); err != nil {
		h.log.Error("failed to write success response", "handler", "Ready", "error", err)
	}
}

func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Live)
	router.GET("/ready", h.Ready)
}
