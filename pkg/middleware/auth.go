package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	apperrors "eliteclub/pkg/errors"
	httputil "eliteclub/pkg/http"
	"eliteclub/pkg/identity"
	"eliteclub/pkg/logger"
)

const PrincipalKey contextKey = "principal"

// Authenticator guards individual routes: it verifies the bearer token
// and attaches the resulting Principal to the request context.
type Authenticator struct {
	verifier identity.Verifier
	log      *logger.Logger
}

func NewAuthenticator(verifier identity.Verifier, log *logger.Logger) *Authenticator {
	return &Authenticator{
		verifier: verifier,
		log:      log,
	}
}

func (a *Authenticator) Require(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			a.reject(w, r, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			a.reject(w, r, "malformed authorization header")
			return
		}

		principal, err := a.verifier.Verify(parts[1])
		if err != nil {
			a.reject(w, r, err.Error())
			return
		}

		ctx := context.WithValue(r.Context(), PrincipalKey, principal)
		next(w, r.WithContext(ctx), ps)
	}
}

func (a *Authenticator) reject(w http.ResponseWriter, r *http.Request, reason string) {
	a.log.Warn("Unauthorized request",
		"request_id", RequestIDFromContext(r.Context()),
		"path", r.URL.Path,
		"reason", reason,
	)
	_ = httputil.WriteError(w, apperrors.Unauthorized("Unauthorized"))
}

// PrincipalFromContext returns the verified principal, or nil outside an
// authenticated route.
func PrincipalFromContext(ctx context.Context) *identity.Principal {
	if p, ok := ctx.Value(PrincipalKey).(*identity.Principal); ok {
		return p
	}
	return nil
}
