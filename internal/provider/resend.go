package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/mystarhq/notify-api/internal/domain"
)

const defaultSendTimeout = 10 * time.Second

type resendRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	ReplyTo string `json:"reply_to,omitempty"`
}

type resendResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// ResendProvider sends transactional emails through the Resend HTTP
// API. A single synchronous call per Send; retries are the caller's
// business, not ours.
type ResendProvider struct {
	client   *resty.Client
	endpoint string
}

func NewResendProvider(endpoint string, apiKey string) (*ResendProvider, error) {
	client := resty.New()
	client.SetTimeout(defaultSendTimeout)
	client.SetRetryCount(0)
	client.SetAuthToken(apiKey)

	return NewResendProviderWithClient(endpoint, apiKey, client)
}

func NewResendProviderWithClient(endpoint string, apiKey string, client *resty.Client) (*ResendProvider, error) {
	trimmedEndpoint := strings.TrimRight(strings.TrimSpace(endpoint), "/")
	if trimmedEndpoint == "" {
		return nil, fmt.Errorf("%w: resend endpoint is required", domain.ErrConfig)
	}
	if _, err := url.ParseRequestURI(trimmedEndpoint); err != nil {
		return nil, fmt.Errorf("%w: invalid resend endpoint: %v", domain.ErrConfig, err)
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%w: resend api key is required", domain.ErrConfig)
	}
	if client == nil {
		return nil, fmt.Errorf("resty client is required")
	}

	if client.GetClient().Timeout == 0 {
		client.SetTimeout(defaultSendTimeout)
	}
	client.SetRetryCount(0)

	return &ResendProvider{
		client:   client,
		endpoint: trimmedEndpoint,
	}, nil
}

func (p *ResendProvider) Send(ctx context.Context, email domain.Email) (*SendResponse, error) {
	if p == nil || p.client == nil {
		return nil, fmt.Errorf("provider is not initialized")
	}
	if strings.TrimSpace(email.To) == "" {
		return nil, fmt.Errorf("%w: recipient is required", domain.ErrValidation)
	}
	if strings.TrimSpace(email.From) == "" {
		return nil, fmt.Errorf("%w: sender is required", domain.ErrValidation)
	}

	reqBody := resendRequest{
		From:    email.From,
		To:      email.To,
		Subject: email.Subject,
		HTML:    email.HTML,
		ReplyTo: email.ReplyTo,
	}

	response, err := p.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(reqBody).
		Post(p.endpoint + "/emails")
	if err != nil {
		return nil, &ProviderError{
			Message: "provider request failed",
			Cause:   err,
		}
	}
	if response == nil {
		return nil, &ProviderError{
			Message: "provider returned empty response",
		}
	}

	statusCode := response.StatusCode()
	responseBody := strings.TrimSpace(response.String())

	var parsed resendResponse
	if responseBody != "" {
		// Resend replies with JSON on both success and failure; a
		// non-JSON body is kept raw in the error detail.
		_ = json.Unmarshal(response.Body(), &parsed)
	}

	if statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices {
		return &SendResponse{
			StatusCode: statusCode,
			Body:       responseBody,
			EmailID:    parsed.ID,
		}, nil
	}

	message := strings.TrimSpace(parsed.Message)
	if message == "" {
		message = providerErrorMessage(statusCode, responseBody)
	}

	return nil, &ProviderError{
		StatusCode: statusCode,
		Message:    message,
	}
}

func providerErrorMessage(statusCode int, body string) string {
	base := fmt.Sprintf("provider returned status %d", statusCode)
	if body == "" {
		return base
	}
	return fmt.Sprintf("%s: %s", base, body)
}
