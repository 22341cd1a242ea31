package domain

import (
	"fmt"
	"math"
	"strings"
)

// NotificationKind identifies a transactional email purpose.
type NotificationKind string

const (
	KindWelcome                  NotificationKind = "welcome"
	KindVerificationResend       NotificationKind = "verification_resend"
	KindPasswordReset            NotificationKind = "password_reset"
	KindFanOrderConfirmation     NotificationKind = "fan_order_confirmation"
	KindCreatorOrderNotification NotificationKind = "creator_order_notification"
	KindGenericTemplated         NotificationKind = "generic_templated"
)

func (k NotificationKind) String() string { return string(k) }

// Email is a fully composed message handed to the delivery provider.
type Email struct {
	From    string
	To      string
	Subject string
	HTML    string
	ReplyTo string
}

// TemplatedEmailRequest is the input of the authenticated generic send.
type TemplatedEmailRequest struct {
	To       string
	Subject  string
	Template string
	Data     map[string]string
	UserID   string
}

func (r *TemplatedEmailRequest) Validate() error {
	if strings.TrimSpace(r.To) == "" || strings.TrimSpace(r.Subject) == "" || strings.TrimSpace(r.Template) == "" {
		return fmt.Errorf("%w: to, subject and template are required", ErrValidation)
	}
	return nil
}

// WelcomeEmailRequest greets a newly registered user.
type WelcomeEmailRequest struct {
	To   string
	Name string
}

func (r *WelcomeEmailRequest) Validate() error {
	if strings.TrimSpace(r.To) == "" {
		return fmt.Errorf("%w: recipient email is required", ErrValidation)
	}
	return nil
}

// FanOrderConfirmationRequest confirms a placed order to the fan.
type FanOrderConfirmationRequest struct {
	OrderID           string
	FanEmail          string
	FanName           string
	CreatorName       string
	OrderType         string
	EstimatedDelivery string
}

func (r *FanOrderConfirmationRequest) Validate() error {
	missing := strings.TrimSpace(r.OrderID) == "" ||
		strings.TrimSpace(r.FanEmail) == "" ||
		strings.TrimSpace(r.FanName) == "" ||
		strings.TrimSpace(r.CreatorName) == "" ||
		strings.TrimSpace(r.OrderType) == ""
	if missing {
		return fmt.Errorf("%w: missing required fields for fan order email", ErrValidation)
	}
	return nil
}

// CreatorOrderNotificationRequest informs a creator of a new order.
type CreatorOrderNotificationRequest struct {
	OrderID      string
	CreatorEmail string
	CreatorName  string
	FanName      string
	OrderType    string
	OrderPrice   float64
	PriceSet     bool
	OrderMessage string
}

func (r *CreatorOrderNotificationRequest) Validate() error {
	missing := strings.TrimSpace(r.OrderID) == "" ||
		strings.TrimSpace(r.CreatorEmail) == "" ||
		strings.TrimSpace(r.CreatorName) == "" ||
		strings.TrimSpace(r.FanName) == "" ||
		strings.TrimSpace(r.OrderType) == "" ||
		!r.PriceSet
	if missing {
		return fmt.Errorf("%w: missing required fields for creator notification", ErrValidation)
	}
	if math.IsNaN(r.OrderPrice) || math.IsInf(r.OrderPrice, 0) || r.OrderPrice < 0 {
		return fmt.Errorf("%w: orderPrice must be a non-negative finite number", ErrValidation)
	}
	return nil
}
