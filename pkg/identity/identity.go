// Package identity talks to the external identity provider. The provider
// owns principal records (UID keyed, linked to local users only by email)
// and is an independent failure domain from the record store.
package identity

import "errors"

// Principal is the verified identity attached to an authenticated request.
type Principal struct {
	UID   string
	Email string
}

var (
	ErrPrincipalNotFound = errors.New("principal not found")

	ErrInvalidToken = errors.New("invalid identity token")
)
