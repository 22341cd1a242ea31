package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/mystarhq/notify-api/internal/authclient"
	"github.com/mystarhq/notify-api/internal/domain"
	"github.com/mystarhq/notify-api/internal/ratelimit"
	"github.com/mystarhq/notify-api/internal/service"
)

const userIDLocal = "userID"

type EmailService interface {
	SendTemplated(ctx context.Context, req domain.TemplatedEmailRequest) (*service.SendResult, error)
	SendWelcome(ctx context.Context, req domain.WelcomeEmailRequest) (*service.SendResult, error)
	SendFanOrderConfirmation(ctx context.Context, req domain.FanOrderConfirmationRequest) (*service.SendResult, error)
	SendCreatorOrderNotification(ctx context.Context, req domain.CreatorOrderNotificationRequest) (*service.SendResult, error)
}

type EmailHandler struct {
	service EmailService
}

func NewEmailHandler(service EmailService) (*EmailHandler, error) {
	if service == nil {
		return nil, fmt.Errorf("email service is required")
	}
	return &EmailHandler{service: service}, nil
}

// RegisterEmailRoutes wires the dispatch endpoints. The generic send is
// the only one that requires a verified caller; it is also the only
// rate-limited route.
func RegisterEmailRoutes(router fiber.Router, service EmailService, verifier authclient.Verifier, limiter ratelimit.RateLimiter) error {
	h, err := NewEmailHandler(service)
	if err != nil {
		return err
	}

	v1 := router.Group("/v1")
	v1.Post("/emails/send", RequireAuth(verifier), RateLimitByUser(limiter), h.SendTemplated)
	v1.Post("/emails/welcome", h.SendWelcome)
	v1.Post("/emails/order-confirmation", h.SendFanOrderConfirmation)
	v1.Post("/emails/creator-notification", h.SendCreatorOrderNotification)

	return nil
}

// RequireAuth resolves the bearer token to a user id and stores it on
// the request context.
func RequireAuth(verifier authclient.Verifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if verifier == nil {
			return fmt.Errorf("%w: auth verifier is not configured", domain.ErrConfig)
		}

		token := bearerToken(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
		}

		userID, err := verifier.VerifyToken(c.Context(), token)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
			}
			return err
		}

		c.Locals(userIDLocal, userID)
		return c.Next()
	}
}

// RateLimitByUser enforces the per-caller send quota. A limiter outage
// fails open: dispatch availability wins over quota precision.
func RateLimitByUser(limiter ratelimit.RateLimiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if limiter == nil {
			return c.Next()
		}

		key, _ := c.Locals(userIDLocal).(string)
		if key == "" {
			key = c.IP()
		}

		allowed, err := limiter.Allow(c.Context(), key)
		if err != nil {
			return c.Next()
		}
		if !allowed {
			return fiber.NewError(fiber.StatusTooManyRequests, "rate limit exceeded, try again later")
		}

		return c.Next()
	}
}

type sendEmailRequest struct {
	To       string            `json:"to"`
	Subject  string            `json:"subject"`
	Template string            `json:"template"`
	Data     map[string]string `json:"data"`
}

type welcomeEmailRequest struct {
	To   string `json:"to"`
	Name string `json:"name"`
}

type fanOrderEmailRequest struct {
	OrderID           string `json:"orderId"`
	FanEmail          string `json:"fanEmail"`
	FanName           string `json:"fanName"`
	CreatorName       string `json:"creatorName"`
	OrderType         string `json:"orderType"`
	EstimatedDelivery string `json:"estimatedDelivery"`
}

type creatorNotificationRequest struct {
	OrderID      string   `json:"orderId"`
	CreatorEmail string   `json:"creatorEmail"`
	CreatorName  string   `json:"creatorName"`
	FanName      string   `json:"fanName"`
	OrderType    string   `json:"orderType"`
	OrderPrice   *float64 `json:"orderPrice"`
	OrderMessage string   `json:"orderMessage"`
}

type sendResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	EmailID string `json:"emailId,omitempty"`
}

func (h *EmailHandler) SendTemplated(c *fiber.Ctx) error {
	var req sendEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid JSON payload")
	}

	userID, _ := c.Locals(userIDLocal).(string)
	result, err := h.service.SendTemplated(c.Context(), domain.TemplatedEmailRequest{
		To:       req.To,
		Subject:  req.Subject,
		Template: req.Template,
		Data:     req.Data,
		UserID:   userID,
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(sendResponse{
		Success: true,
		Message: result.Message,
		EmailID: result.EmailID,
	})
}

func (h *EmailHandler) SendWelcome(c *fiber.Ctx) error {
	var req welcomeEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid JSON payload")
	}

	result, err := h.service.SendWelcome(c.Context(), domain.WelcomeEmailRequest{
		To:   req.To,
		Name: req.Name,
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(sendResponse{
		Success: true,
		Message: result.Message,
		EmailID: result.EmailID,
	})
}

func (h *EmailHandler) SendFanOrderConfirmation(c *fiber.Ctx) error {
	var req fanOrderEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid JSON payload")
	}

	result, err := h.service.SendFanOrderConfirmation(c.Context(), domain.FanOrderConfirmationRequest{
		OrderID:           req.OrderID,
		FanEmail:          req.FanEmail,
		FanName:           req.FanName,
		CreatorName:       req.CreatorName,
		OrderType:         req.OrderType,
		EstimatedDelivery: req.EstimatedDelivery,
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(sendResponse{
		Success: true,
		Message: result.Message,
		EmailID: result.EmailID,
	})
}

func (h *EmailHandler) SendCreatorOrderNotification(c *fiber.Ctx) error {
	var req creatorNotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid JSON payload")
	}

	domainReq := domain.CreatorOrderNotificationRequest{
		OrderID:      req.OrderID,
		CreatorEmail: req.CreatorEmail,
		CreatorName:  req.CreatorName,
		FanName:      req.FanName,
		OrderType:    req.OrderType,
		OrderMessage: req.OrderMessage,
	}
	if req.OrderPrice != nil {
		domainReq.OrderPrice = *req.OrderPrice
		domainReq.PriceSet = true
	}

	result, err := h.service.SendCreatorOrderNotification(c.Context(), domainReq)
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(sendResponse{
		Success: true,
		Message: result.Message,
		EmailID: result.EmailID,
	})
}

func bearerToken(header string) string {
	trimmed := strings.TrimSpace(header)
	if trimmed == "" {
		return ""
	}
	if len(trimmed) > 7 && strings.EqualFold(trimmed[:7], "bearer ") {
		return strings.TrimSpace(trimmed[7:])
	}
	return ""
}

func toHTTPError(err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	default:
		return err
	}
}
