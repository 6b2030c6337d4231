package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"eliteclub/internal/users/service"
	apperrors "eliteclub/pkg/errors"
	httputil "eliteclub/pkg/http"
	"eliteclub/pkg/logger"
	"eliteclub/pkg/middleware"
	"eliteclub/pkg/model"
)

type UserHandler struct {
	service service.UserService
	auth    *middleware.Authenticator
	log     *logger.Logger
}

func NewUserHandler(service service.UserService, auth *middleware.Authenticator, log *logger.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		auth:    auth,
		log:     log,
	}
}

type registerResponse struct {
	Message  string      `json:"message"`
	Inserted bool        `json:"inserted"`
	User     *model.User `json:"user,omitempty"`
}

type userEnvelope struct {
	Success bool        `json:"success"`
	Data    *model.User `json:"data"`
}

// Register backs POST /users, called on first sign-in. It is public:
// the user document is created before any token-guarded call happens.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var user model.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		h.writeError(w, apperrors.InvalidInput("Invalid request body"), "Register")
		return
	}

	result, err := h.service.Register(r.Context(), &user)
	if err != nil {
		h.writeError(w, err, "Register")
		return
	}

	if !result.Created {
		if err := httputil.WriteSuccess(w, registerResponse{
			Message:  "User already exists",
			Inserted: false,
		}); err != nil {
			h.log.Error("failed to write success response", "handler", "Register", "error", err)
		}
		return
	}

	if err := httputil.WriteCreated(w, registerResponse{
		Message:  "User created successfully",
		Inserted: true,
		User:     result.User,
	}); err != nil {
		h.log.Error("failed to write created response", "handler", "Register", "error", err)
	}
}

func (h *UserHandler) GetByEmail(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	user, err := h.service.GetByEmail(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		h.writeError(w, err, "GetByEmail")
		return
	}

	if err := httputil.WriteSuccess(w, userEnvelope{Success: true, Data: user}); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByEmail", "error", err)
	}
}

func (h *UserHandler) ListAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.ParseInt(r.URL.Query().Get("offset"), 10, 64)
	h.list(w, "ListAll", func() ([]*model.User, error) {
		return h.service.ListAll(r.Context(), limit, offset)
	})
}

func (h *UserHandler) ListMembers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.list(w, "ListMembers", func() ([]*model.User, error) {
		return h.service.ListMembers(r.Context())
	})
}

func (h *UserHandler) list(w http.ResponseWriter, op string, fetch func() ([]*model.User, error)) {
	users, err := fetch()
	if err != nil {
		h.writeError(w, err, op)
		return
	}
	if users == nil {
		users = []*model.User{}
	}
	if err := httputil.WriteSuccess(w, users); err != nil {
		h.log.Error("failed to write success response", "handler", op, "error", err)
	}
}

func (h *UserHandler) writeError(w http.ResponseWriter, err error, op string) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", op, "error", writeErr)
	}
}

func (h *UserHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/users", h.Register)
	router.GET("/users", h.auth.Require(h.GetByEmail))
	router.GET("/all-users", h.auth.Require(h.ListAll))
	router.GET("/members", h.auth.Require(h.ListMembers))
}
