package handler

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type AuthEmailService interface {
	ResendVerification(ctx context.Context, email string) error
	SendPasswordReset(ctx context.Context, email string) error
}

type AuthHandler struct {
	service AuthEmailService
}

func NewAuthHandler(service AuthEmailService) (*AuthHandler, error) {
	if service == nil {
		return nil, fmt.Errorf("auth email service is required")
	}
	return &AuthHandler{service: service}, nil
}

func RegisterAuthRoutes(router fiber.Router, service AuthEmailService) error {
	h, err := NewAuthHandler(service)
	if err != nil {
		return err
	}

	v1 := router.Group("/v1")
	v1.Post("/auth/resend-verification", h.ResendVerification)
	v1.Post("/auth/password-reset", h.SendPasswordReset)

	return nil
}

type authEmailRequest struct {
	Email string `json:"email"`
}

func (h *AuthHandler) ResendVerification(c *fiber.Ctx) error {
	var req authEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid JSON payload")
	}

	if err := h.service.ResendVerification(c.Context(), req.Email); err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(sendResponse{
		Success: true,
		Message: "Verification email sent",
	})
}

func (h *AuthHandler) SendPasswordReset(c *fiber.Ctx) error {
	var req authEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid JSON payload")
	}

	if err := h.service.SendPasswordReset(c.Context(), req.Email); err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(sendResponse{
		Success: true,
		Message: "Password reset email sent",
	})
}
