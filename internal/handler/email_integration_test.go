package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/mystarhq/notify-api/internal/domain"
	"github.com/mystarhq/notify-api/internal/service"
	"github.com/mystarhq/notify-api/internal/transport"
	"go.uber.org/zap"
)

type stubEmailService struct {
	sendTemplatedFn       func(ctx context.Context, req domain.TemplatedEmailRequest) (*service.SendResult, error)
	sendWelcomeFn         func(ctx context.Context, req domain.WelcomeEmailRequest) (*service.SendResult, error)
	sendFanOrderFn        func(ctx context.Context, req domain.FanOrderConfirmationRequest) (*service.SendResult, error)
	sendCreatorOrderFn    func(ctx context.Context, req domain.CreatorOrderNotificationRequest) (*service.SendResult, error)
	lastCreatorOrderInput *domain.CreatorOrderNotificationRequest
}

func (s *stubEmailService) SendTemplated(ctx context.Context, req domain.TemplatedEmailRequest) (*service.SendResult, error) {
	if s.sendTemplatedFn != nil {
		return s.sendTemplatedFn(ctx, req)
	}
	return &service.SendResult{Message: "Email sent successfully", EmailID: "re_1"}, nil
}

func (s *stubEmailService) SendWelcome(ctx context.Context, req domain.WelcomeEmailRequest) (*service.SendResult, error) {
	if s.sendWelcomeFn != nil {
		return s.sendWelcomeFn(ctx, req)
	}
	return &service.SendResult{Message: "Welcome email sent successfully", EmailID: "re_2"}, nil
}

func (s *stubEmailService) SendFanOrderConfirmation(ctx context.Context, req domain.FanOrderConfirmationRequest) (*service.SendResult, error) {
	if s.sendFanOrderFn != nil {
		return s.sendFanOrderFn(ctx, req)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &service.SendResult{Message: "Fan order confirmation email sent successfully", EmailID: "re_3"}, nil
}

func (s *stubEmailService) SendCreatorOrderNotification(ctx context.Context, req domain.CreatorOrderNotificationRequest) (*service.SendResult, error) {
	s.lastCreatorOrderInput = &req
	if s.sendCreatorOrderFn != nil {
		return s.sendCreatorOrderFn(ctx, req)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &service.SendResult{Message: "Creator notification email sent successfully", EmailID: "re_4"}, nil
}

type stubVerifier struct {
	userID string
	err    error
	tokens []string
}

func (v *stubVerifier) VerifyToken(_ context.Context, token string) (string, error) {
	v.tokens = append(v.tokens, token)
	if v.err != nil {
		return "", v.err
	}
	return v.userID, nil
}

type stubLimiter struct {
	allowed bool
	err     error
	keys    []string
}

func (l *stubLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.keys = append(l.keys, key)
	return l.allowed, l.err
}

func newEmailTestApp(t *testing.T, svc EmailService, verifier *stubVerifier, limiter *stubLimiter) *fiber.App {
	t.Helper()

	app := fiber.New(fiber.Config{
		ErrorHandler: transport.ErrorHandler(zap.NewNop()),
	})
	app.Use(transport.CORSMiddleware())

	if err := RegisterEmailRoutes(app, svc, verifier, limiter); err != nil {
		t.Fatalf("RegisterEmailRoutes() error = %v", err)
	}

	return app
}

func performRequest(t *testing.T, app *fiber.App, method string, path string, body string, headers map[string]string) (*http.Response, []byte) {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	_ = resp.Body.Close()

	return resp, respBody
}

func TestEmailIntegration_SendTemplated(t *testing.T) {
	t.Parallel()

	svc := &stubEmailService{
		sendTemplatedFn: func(_ context.Context, req domain.TemplatedEmailRequest) (*service.SendResult, error) {
			if req.UserID != "user-1" {
				t.Fatalf("UserID = %q, want user-1", req.UserID)
			}
			if err := req.Validate(); err != nil {
				return nil, err
			}
			return &service.SendResult{Message: "Email sent successfully", EmailID: "re_ok"}, nil
		},
	}
	verifier := &stubVerifier{userID: "user-1"}
	limiter := &stubLimiter{allowed: true}
	app := newEmailTestApp(t, svc, verifier, limiter)

	body := `{"to":"user@example.com","subject":"hi","template":"digest","data":{"name":"Dana"}}`
	resp, respBody := performRequest(t, app, http.MethodPost, "/v1/emails/send", body, map[string]string{
		fiber.HeaderAuthorization: "Bearer token-abc",
	})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", resp.StatusCode, string(respBody))
	}

	var parsed map[string]any
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		t.Fatalf("json unmarshal error = %v", err)
	}
	if parsed["success"] != true || parsed["emailId"] != "re_ok" {
		t.Fatalf("body = %v", parsed)
	}

	if len(verifier.tokens) != 1 || verifier.tokens[0] != "token-abc" {
		t.Fatalf("verified tokens = %v", verifier.tokens)
	}
	if len(limiter.keys) != 1 || limiter.keys[0] != "user-1" {
		t.Fatalf("limiter keys = %v", limiter.keys)
	}
}

func TestEmailIntegration_SendTemplatedAuth(t *testing.T) {
	t.Parallel()

	t.Run("missing bearer returns 401", func(t *testing.T) {
		t.Parallel()

		verifier := &stubVerifier{userID: "user-1"}
		app := newEmailTestApp(t, &stubEmailService{}, verifier, &stubLimiter{allowed: true})

		resp, _ := performRequest(t, app, http.MethodPost, "/v1/emails/send", `{}`, nil)
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", resp.StatusCode)
		}
		if len(verifier.tokens) != 0 {
			t.Fatal("verifier should not be called without a bearer token")
		}
	})

	t.Run("rejected token returns 401", func(t *testing.T) {
		t.Parallel()

		verifier := &stubVerifier{err: fmt.Errorf("%w: invalid token", domain.ErrUnauthorized)}
		app := newEmailTestApp(t, &stubEmailService{}, verifier, &stubLimiter{allowed: true})

		resp, _ := performRequest(t, app, http.MethodPost, "/v1/emails/send", `{}`, map[string]string{
			fiber.HeaderAuthorization: "Bearer bad-token",
		})
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", resp.StatusCode)
		}
	})
}

func TestEmailIntegration_SendTemplatedRateLimit(t *testing.T) {
	t.Parallel()

	t.Run("over quota returns 429", func(t *testing.T) {
		t.Parallel()

		app := newEmailTestApp(t, &stubEmailService{}, &stubVerifier{userID: "user-1"}, &stubLimiter{allowed: false})

		resp, body := performRequest(t, app, http.MethodPost, "/v1/emails/send",
			`{"to":"a@b.c","subject":"s","template":"digest"}`,
			map[string]string{fiber.HeaderAuthorization: "Bearer ok"})
		if resp.StatusCode != fiber.StatusTooManyRequests {
			t.Fatalf("status = %d, want 429, body=%s", resp.StatusCode, string(body))
		}
	})

	t.Run("limiter outage fails open", func(t *testing.T) {
		t.Parallel()

		limiter := &stubLimiter{err: errors.New("redis down")}
		app := newEmailTestApp(t, &stubEmailService{}, &stubVerifier{userID: "user-1"}, limiter)

		resp, _ := performRequest(t, app, http.MethodPost, "/v1/emails/send",
			`{"to":"a@b.c","subject":"s","template":"digest"}`,
			map[string]string{fiber.HeaderAuthorization: "Bearer ok"})
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("status = %d, want 200 when limiter is down", resp.StatusCode)
		}
	})
}

func TestEmailIntegration_MalformedJSON(t *testing.T) {
	t.Parallel()

	app := newEmailTestApp(t, &stubEmailService{}, &stubVerifier{userID: "user-1"}, &stubLimiter{allowed: true})

	paths := []string{
		"/v1/emails/welcome",
		"/v1/emails/order-confirmation",
		"/v1/emails/creator-notification",
	}
	for _, path := range paths {
		resp, body := performRequest(t, app, http.MethodPost, path, `{not json`, nil)
		if resp.StatusCode != fiber.StatusBadRequest {
			t.Fatalf("%s: status = %d, want 400", path, resp.StatusCode)
		}

		var parsed map[string]any
		if err := json.Unmarshal(body, &parsed); err != nil {
			t.Fatalf("json unmarshal error = %v", err)
		}
		if parsed["success"] != false || parsed["error"] != "Invalid JSON payload" {
			t.Fatalf("%s: body = %v", path, parsed)
		}
	}
}

func TestEmailIntegration_CreatorNotification(t *testing.T) {
	t.Parallel()

	svc := &stubEmailService{}
	app := newEmailTestApp(t, svc, &stubVerifier{userID: "u"}, &stubLimiter{allowed: true})

	body := `{"orderId":"a1b2c3d4-0000-0000-0000-000000000000","creatorEmail":"c@example.com","creatorName":"דנה","fanName":"יוסי","orderType":"birthday","orderPrice":100,"orderMessage":"מזל טוב"}`
	resp, respBody := performRequest(t, app, http.MethodPost, "/v1/emails/creator-notification", body, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", resp.StatusCode, string(respBody))
	}

	if svc.lastCreatorOrderInput == nil || !svc.lastCreatorOrderInput.PriceSet {
		t.Fatal("orderPrice should be marked as present")
	}
	if svc.lastCreatorOrderInput.OrderPrice != 100 {
		t.Fatalf("OrderPrice = %v, want 100", svc.lastCreatorOrderInput.OrderPrice)
	}

	var parsed map[string]any
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		t.Fatalf("json unmarshal error = %v", err)
	}
	if parsed["emailId"] != "re_4" {
		t.Fatalf("emailId = %v, want re_4", parsed["emailId"])
	}

	// A zero price is a legitimate value; only absence fails validation.
	zeroPriceBody := `{"orderId":"a1b2c3d4-0000-0000-0000-000000000000","creatorEmail":"c@example.com","creatorName":"דנה","fanName":"יוסי","orderType":"birthday","orderPrice":0}`
	resp, _ = performRequest(t, app, http.MethodPost, "/v1/emails/creator-notification", zeroPriceBody, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200 for zero price", resp.StatusCode)
	}

	missingPriceBody := `{"orderId":"a1b2c3d4-0000-0000-0000-000000000000","creatorEmail":"c@example.com","creatorName":"דנה","fanName":"יוסי","orderType":"birthday"}`
	resp, _ = performRequest(t, app, http.MethodPost, "/v1/emails/creator-notification", missingPriceBody, nil)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for missing price", resp.StatusCode)
	}
}

func TestEmailIntegration_OrderConfirmationValidation(t *testing.T) {
	t.Parallel()

	app := newEmailTestApp(t, &stubEmailService{}, &stubVerifier{userID: "u"}, &stubLimiter{allowed: true})

	validBody := `{"orderId":"o-1","fanEmail":"fan@example.com","fanName":"יוסי","creatorName":"דנה","orderType":"birthday"}`
	resp, _ := performRequest(t, app, http.MethodPost, "/v1/emails/order-confirmation", validBody, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	missingFieldBody := `{"orderId":"o-1","fanEmail":"","fanName":"יוסי","creatorName":"דנה","orderType":"birthday"}`
	resp, _ = performRequest(t, app, http.MethodPost, "/v1/emails/order-confirmation", missingFieldBody, nil)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for missing fanEmail", resp.StatusCode)
	}
}

func TestEmailIntegration_ProviderFailureReturns500(t *testing.T) {
	t.Parallel()

	svc := &stubEmailService{
		sendWelcomeFn: func(_ context.Context, _ domain.WelcomeEmailRequest) (*service.SendResult, error) {
			return nil, fmt.Errorf("%w: provider returned status 500", domain.ErrDelivery)
		},
	}
	app := newEmailTestApp(t, svc, &stubVerifier{userID: "u"}, &stubLimiter{allowed: true})

	resp, body := performRequest(t, app, http.MethodPost, "/v1/emails/welcome", `{"to":"a@b.c"}`, nil)
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("status = %d, want 500, body=%s", resp.StatusCode, string(body))
	}

	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err != nil {
		t.Fatalf("json unmarshal error = %v", err)
	}
	if parsed["success"] != false {
		t.Fatalf("body = %v", parsed)
	}
}

func TestEmailIntegration_CORSPreflight(t *testing.T) {
	t.Parallel()

	app := newEmailTestApp(t, &stubEmailService{}, &stubVerifier{userID: "u"}, &stubLimiter{allowed: true})

	req := httptest.NewRequest(http.MethodOptions, "/v1/emails/welcome", nil)
	req.Header.Set("Origin", "https://mystar.co.il")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "authorization, content-type")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusNoContent {
		t.Fatalf("preflight status = %d, want 204", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("Access-Control-Allow-Origin = %q, want *", got)
	}
}
