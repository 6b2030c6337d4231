package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"

	"eliteclub/pkg/identity"
	"eliteclub/pkg/logger"
)

const testSecret = "test-secret"

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func TestRequire_ValidToken(t *testing.T) {
	auth := NewAuthenticator(identity.NewJWTVerifier(testSecret), testLogger())

	var seen *identity.Principal
	handler := auth.Require(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		seen = PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	token := signedToken(t, jwt.MapClaims{
		"sub":   "uid-123",
		"email": "player@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/bookings/pending", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler(rec, req, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if seen == nil {
		t.Fatal("expected a principal in the request context")
	}
	if seen.UID != "uid-123" || seen.Email != "player@example.com" {
		t.Errorf("unexpected principal: %+v", seen)
	}
}

func TestRequire_RejectsBadTokens(t *testing.T) {
	auth := NewAuthenticator(identity.NewJWTVerifier(testSecret), testLogger())

	handler := auth.Require(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Error("handler must not run for a rejected request")
	})

	expired := signedToken(t, jwt.MapClaims{
		"email": "player@example.com",
		"exp":   time.Now().Add(-time.Hour).Unix(),
	})
	noEmail := signedToken(t, jwt.MapClaims{
		"sub": "uid-123",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not-a-jwt"},
		{"expired token", "Bearer " + expired},
		{"no email claim", "Bearer " + noEmail},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/bookings/pending", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()

			handler(rec, req, nil)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestPrincipalFromContext_OutsideAuth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/courts", nil)
	if p := PrincipalFromContext(req.Context()); p != nil {
		t.Errorf("expected nil principal, got %+v", p)
	}
}
