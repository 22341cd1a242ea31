package provider

import (
	"context"

	"github.com/mystarhq/notify-api/internal/domain"
)

// Provider is the outbound email delivery port.
type Provider interface {
	Send(ctx context.Context, email domain.Email) (*SendResponse, error)
}

// SendResponse stores delivery-provider call metadata for the audit
// trail and the caller-visible result.
type SendResponse struct {
	StatusCode int
	Body       string
	EmailID    string
}
