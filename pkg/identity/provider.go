package identity

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"eliteclub/pkg/client"
)

// Provider is the admin surface of the identity provider: look up a
// principal by email, delete a principal by UID. Callers treat both as
// best-effort; a provider failure never decides a local operation.
type Provider interface {
	LookupByEmail(ctx context.Context, email string) (string, error)
	DeleteAccount(ctx context.Context, uid string) error
}

type adminClient struct {
	http *client.HttpClient
}

type accountRecord struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}

func NewAdminClient(baseURL, apiKey string, timeout time.Duration) Provider {
	httpClient := client.NewHttpClient(baseURL, timeout)
	if apiKey != "" {
		httpClient.WithHeader("Authorization", "Bearer "+apiKey)
	}
	return &adminClient{http: httpClient}
}

func (c *adminClient) LookupByEmail(ctx context.Context, email string) (string, error) {
	resp, err := c.http.GET(ctx, "/v1/accounts?email="+url.QueryEscape(email))
	if err != nil {
		return "", fmt.Errorf("identity lookup failed: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		var record accountRecord
		if err := resp.DecodeJSON(&record); err != nil {
			return "", fmt.Errorf("failed to decode identity record: %w", err)
		}
		if record.UID == "" {
			return "", ErrPrincipalNotFound
		}
		return record.UID, nil
	case http.StatusNotFound:
		return "", ErrPrincipalNotFound
	default:
		return "", fmt.Errorf("identity lookup failed: unexpected status %d", resp.StatusCode)
	}
}

func (c *adminClient) DeleteAccount(ctx context.Context, uid string) error {
	resp, err := c.http.DELETE(ctx, "/v1/accounts/"+url.PathEscape(uid))
	if err != nil {
		return fmt.Errorf("identity deletion failed: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return ErrPrincipalNotFound
	default:
		return fmt.Errorf("identity deletion failed: unexpected status %d", resp.StatusCode)
	}
}
