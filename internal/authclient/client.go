// Package authclient talks to the hosted auth provider (a
// GoTrue-compatible HTTP API). The provider itself is an external
// collaborator; this client only verifies bearer tokens and proxies
// the two auth-owned email flows.
package authclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/mystarhq/notify-api/internal/domain"
)

const defaultAuthTimeout = 10 * time.Second

// Verifier resolves a caller's bearer token to a user id.
type Verifier interface {
	VerifyToken(ctx context.Context, token string) (string, error)
}

// Client issues requests against the auth provider's REST endpoints.
type Client struct {
	client     *resty.Client
	baseURL    string
	serviceKey string
}

type userResponse struct {
	ID string `json:"id"`
}

type resendVerificationRequest struct {
	Type    string       `json:"type"`
	Email   string       `json:"email"`
	Options *authOptions `json:"options,omitempty"`
}

type recoverRequest struct {
	Email      string `json:"email"`
	RedirectTo string `json:"redirect_to,omitempty"`
}

type authOptions struct {
	EmailRedirectTo string `json:"email_redirect_to,omitempty"`
}

func New(baseURL string, serviceKey string) (*Client, error) {
	client := resty.New()
	client.SetTimeout(defaultAuthTimeout)
	client.SetRetryCount(0)

	return NewWithClient(baseURL, serviceKey, client)
}

func NewWithClient(baseURL string, serviceKey string, client *resty.Client) (*Client, error) {
	trimmedURL := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmedURL == "" {
		return nil, fmt.Errorf("%w: auth url is required", domain.ErrConfig)
	}
	if _, err := url.ParseRequestURI(trimmedURL); err != nil {
		return nil, fmt.Errorf("%w: invalid auth url: %v", domain.ErrConfig, err)
	}
	if strings.TrimSpace(serviceKey) == "" {
		return nil, fmt.Errorf("%w: auth service key is required", domain.ErrConfig)
	}
	if client == nil {
		return nil, fmt.Errorf("resty client is required")
	}

	if client.GetClient().Timeout == 0 {
		client.SetTimeout(defaultAuthTimeout)
	}
	client.SetRetryCount(0)

	return &Client{
		client:     client,
		baseURL:    trimmedURL,
		serviceKey: serviceKey,
	}, nil
}

// VerifyToken resolves the caller's bearer token to a user id. Any
// non-200 answer from the auth provider is treated as unauthorized.
func (c *Client) VerifyToken(ctx context.Context, token string) (string, error) {
	if c == nil || c.client == nil {
		return "", fmt.Errorf("auth client is not initialized")
	}

	trimmedToken := strings.TrimSpace(token)
	if trimmedToken == "" {
		return "", fmt.Errorf("%w: no authorization header", domain.ErrUnauthorized)
	}

	var user userResponse
	response, err := c.client.R().
		SetContext(ctx).
		SetHeader("apikey", c.serviceKey).
		SetAuthToken(trimmedToken).
		SetResult(&user).
		Get(c.baseURL + "/user")
	if err != nil {
		return "", fmt.Errorf("auth provider request failed: %w", err)
	}

	if response.StatusCode() != http.StatusOK || strings.TrimSpace(user.ID) == "" {
		return "", fmt.Errorf("%w: invalid token", domain.ErrUnauthorized)
	}

	return user.ID, nil
}

// ResendVerification asks the auth provider to re-send the signup
// verification email.
func (c *Client) ResendVerification(ctx context.Context, email string, redirectTo string) error {
	body := resendVerificationRequest{
		Type:  "signup",
		Email: email,
	}
	if strings.TrimSpace(redirectTo) != "" {
		body.Options = &authOptions{EmailRedirectTo: redirectTo}
	}

	return c.post(ctx, "/resend", body)
}

// SendPasswordReset asks the auth provider to send a password
// recovery email.
func (c *Client) SendPasswordReset(ctx context.Context, email string, redirectTo string) error {
	return c.post(ctx, "/recover", recoverRequest{
		Email:      email,
		RedirectTo: redirectTo,
	})
}

func (c *Client) post(ctx context.Context, path string, body any) error {
	if c == nil || c.client == nil {
		return fmt.Errorf("auth client is not initialized")
	}

	response, err := c.client.R().
		SetContext(ctx).
		SetHeader("apikey", c.serviceKey).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("auth provider request failed: %w", err)
	}

	if response.StatusCode() < http.StatusOK || response.StatusCode() >= http.StatusMultipleChoices {
		return fmt.Errorf("auth provider returned status %d: %s", response.StatusCode(), strings.TrimSpace(response.String()))
	}

	return nil
}
