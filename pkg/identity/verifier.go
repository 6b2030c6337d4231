package identity

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier turns a bearer token into a Principal.
type Verifier interface {
	Verify(tokenString string) (*Principal, error)
}

type jwtVerifier struct {
	secret []byte
}

// NewJWTVerifier verifies HS256 tokens issued by the identity provider.
// A valid token must carry an email claim; sub is the provider UID.
func NewJWTVerifier(secret string) Verifier {
	return &jwtVerifier{secret: []byte(secret)}
}

func (v *jwtVerifier) Verify(tokenString string) (*Principal, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected claims type", ErrInvalidToken)
	}

	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return nil, fmt.Errorf("%w: missing email claim", ErrInvalidToken)
	}

	uid, _ := claims["sub"].(string)

	return &Principal{
		UID:   uid,
		Email: email,
	}, nil
}
