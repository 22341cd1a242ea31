package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mystarhq/notify-api/internal/domain"
	"github.com/mystarhq/notify-api/internal/observability"
	"github.com/mystarhq/notify-api/internal/provider"
	"github.com/mystarhq/notify-api/internal/render"
	"github.com/mystarhq/notify-api/internal/repository"
	"go.uber.org/zap"
)

const (
	welcomeTemplateName = "welcome"
	welcomeSubject      = "ברוך הבא ל-MyStar!"
	defaultWelcomeName  = "משתמש יקר"

	templateCacheTTL = 5 * time.Minute
)

// TemplateCache is a read-through cache in front of the template
// table. Any Get error is treated as a miss.
type TemplateCache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// AuthMailer covers the two email flows owned by the auth provider.
type AuthMailer interface {
	ResendVerification(ctx context.Context, email string, redirectTo string) error
	SendPasswordReset(ctx context.Context, email string, redirectTo string) error
}

// Options carries the startup configuration the dispatch path needs.
type Options struct {
	SiteURL      string
	FromEmail    string
	ReplyToEmail string
}

// SendResult is the caller-visible outcome of a successful dispatch.
type SendResult struct {
	Message string
	EmailID string
}

// EmailService composes and dispatches transactional emails. Exactly
// one provider call and one audit append per invocation; no retries.
type EmailService struct {
	templates repository.TemplateRepository
	audits    repository.AuditLogRepository
	cache     TemplateCache
	provider  provider.Provider
	auth      AuthMailer
	opts      Options
	logger    *zap.Logger
	metrics   *observability.Metrics
	now       func() time.Time
}

func NewEmailService(
	templates repository.TemplateRepository,
	audits repository.AuditLogRepository,
	cache TemplateCache,
	emailProvider provider.Provider,
	auth AuthMailer,
	opts Options,
	logger *zap.Logger,
) (*EmailService, error) {
	if emailProvider == nil {
		return nil, fmt.Errorf("email provider is required")
	}
	if audits == nil {
		return nil, fmt.Errorf("audit repository is required")
	}
	if strings.TrimSpace(opts.FromEmail) == "" {
		return nil, fmt.Errorf("%w: from email is required", domain.ErrConfig)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &EmailService{
		templates: templates,
		audits:    audits,
		cache:     cache,
		provider:  emailProvider,
		auth:      auth,
		opts:      opts,
		logger:    logger,
		now:       time.Now,
	}, nil
}

func (s *EmailService) SetMetrics(metrics *observability.Metrics) {
	if s == nil {
		return
	}
	s.metrics = metrics
}

// SendCreatorOrderNotification informs a creator about a new order.
func (s *EmailService) SendCreatorOrderNotification(
	ctx context.Context,
	req domain.CreatorOrderNotificationRequest,
) (*SendResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	email := domain.Email{
		From:    s.opts.FromEmail,
		To:      strings.TrimSpace(req.CreatorEmail),
		Subject: creatorOrderSubject(req.FanName, req.OrderID),
		HTML:    creatorOrderBody(req, s.opts.SiteURL, s.now()),
		ReplyTo: s.opts.ReplyToEmail,
	}

	orderID := strings.TrimSpace(req.OrderID)
	resp, err := s.dispatch(ctx, domain.KindCreatorOrderNotification, email)
	if err != nil {
		s.auditDispatchFailure(ctx, dispatchAudit{
			failedAction:    domain.ActionCreatorNotificationFailed,
			exceptionAction: domain.ActionCreatorNotificationException,
			entity:          domain.EntityRequests,
			entityID:        &orderID,
			recipientField:  "creatorEmail",
			recipient:       email.To,
			payload:         req,
		}, err)
		return nil, err
	}

	s.recordAudit(ctx, domain.ActionCreatorNotificationSuccess, domain.EntityRequests, &orderID, nil, domain.JSONMap{
		"creatorEmail": email.To,
		"emailId":      resp.EmailID,
	})

	return &SendResult{
		Message: "Creator notification email sent successfully",
		EmailID: resp.EmailID,
	}, nil
}

// SendFanOrderConfirmation confirms a placed order to the fan.
func (s *EmailService) SendFanOrderConfirmation(
	ctx context.Context,
	req domain.FanOrderConfirmationRequest,
) (*SendResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	email := domain.Email{
		From:    s.opts.FromEmail,
		To:      strings.TrimSpace(req.FanEmail),
		Subject: fanOrderSubject(req.CreatorName, req.OrderID),
		HTML:    fanOrderBody(req, s.opts.SiteURL, s.now()),
		ReplyTo: s.opts.ReplyToEmail,
	}

	orderID := strings.TrimSpace(req.OrderID)
	resp, err := s.dispatch(ctx, domain.KindFanOrderConfirmation, email)
	if err != nil {
		s.auditDispatchFailure(ctx, dispatchAudit{
			failedAction:    domain.ActionFanOrderEmailFailed,
			exceptionAction: domain.ActionFanOrderEmailException,
			entity:          domain.EntityRequests,
			entityID:        &orderID,
			recipientField:  "fanEmail",
			recipient:       email.To,
			payload:         req,
		}, err)
		return nil, err
	}

	s.recordAudit(ctx, domain.ActionFanOrderEmailSuccess, domain.EntityRequests, &orderID, nil, domain.JSONMap{
		"fanEmail": email.To,
		"emailId":  resp.EmailID,
	})

	return &SendResult{
		Message: "Fan order confirmation email sent successfully",
		EmailID: resp.EmailID,
	}, nil
}

// SendTemplated renders a stored template and dispatches it. The
// caller is already authenticated; userID lands in the audit entry.
func (s *EmailService) SendTemplated(ctx context.Context, req domain.TemplatedEmailRequest) (*SendResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	tmpl, err := s.loadTemplate(ctx, strings.TrimSpace(req.Template))
	if err != nil {
		return nil, err
	}

	email := domain.Email{
		From:    s.opts.FromEmail,
		To:      strings.TrimSpace(req.To),
		Subject: req.Subject,
		HTML:    render.Render(tmpl.Content, req.Data),
		ReplyTo: s.opts.ReplyToEmail,
	}

	userID := normalizeOptionalString(req.UserID)
	resp, err := s.dispatch(ctx, domain.KindGenericTemplated, email)
	if err != nil {
		s.auditDispatchFailure(ctx, dispatchAudit{
			failedAction:    domain.ActionSendEmailFailed,
			exceptionAction: domain.ActionSendEmailException,
			entity:          domain.EntityEmail,
			userID:          userID,
			recipientField:  "to",
			recipient:       email.To,
			payload: domain.JSONMap{
				"to":       req.To,
				"subject":  req.Subject,
				"template": req.Template,
			},
		}, err)
		return nil, err
	}

	s.recordAudit(ctx, domain.ActionSendEmail, domain.EntityEmail, nil, userID, domain.JSONMap{
		"to":       email.To,
		"subject":  req.Subject,
		"template": req.Template,
		"emailId":  resp.EmailID,
	})

	return &SendResult{
		Message: "Email sent successfully",
		EmailID: resp.EmailID,
	}, nil
}

// SendWelcome greets a new user through the stored welcome template.
func (s *EmailService) SendWelcome(ctx context.Context, req domain.WelcomeEmailRequest) (*SendResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = defaultWelcomeName
	}

	tmpl, err := s.loadTemplate(ctx, welcomeTemplateName)
	if err != nil {
		return nil, err
	}

	email := domain.Email{
		From:    s.opts.FromEmail,
		To:      strings.TrimSpace(req.To),
		Subject: welcomeSubject,
		HTML: render.Render(tmpl.Content, map[string]string{
			"name":     name,
			"loginUrl": s.opts.SiteURL + "/login",
		}),
		ReplyTo: s.opts.ReplyToEmail,
	}

	resp, err := s.dispatch(ctx, domain.KindWelcome, email)
	if err != nil {
		s.auditDispatchFailure(ctx, dispatchAudit{
			failedAction:    domain.ActionWelcomeEmailFailed,
			exceptionAction: domain.ActionWelcomeEmailException,
			entity:          domain.EntityEmail,
			recipientField:  "to",
			recipient:       email.To,
			payload:         domain.JSONMap{"to": req.To, "name": name},
		}, err)
		return nil, err
	}

	s.recordAudit(ctx, domain.ActionWelcomeEmailSuccess, domain.EntityEmail, nil, nil, domain.JSONMap{
		"to":      email.To,
		"emailId": resp.EmailID,
	})

	return &SendResult{
		Message: "Welcome email sent successfully",
		EmailID: resp.EmailID,
	}, nil
}

// ResendVerification proxies to the auth provider's signup-resend
// flow.
func (s *EmailService) ResendVerification(ctx context.Context, email string) error {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	if s.auth == nil {
		return fmt.Errorf("%w: auth provider is not configured", domain.ErrConfig)
	}

	redirectTo := s.opts.SiteURL + "/auth/callback"
	if err := s.auth.ResendVerification(ctx, trimmed, redirectTo); err != nil {
		s.recordAudit(ctx, domain.ActionVerificationResend, domain.EntityEmail, nil, nil, domain.JSONMap{
			"email": trimmed,
			"error": err.Error(),
		})
		return fmt.Errorf("failed to resend verification email: %w", err)
	}

	s.recordAudit(ctx, domain.ActionVerificationResend, domain.EntityEmail, nil, nil, domain.JSONMap{
		"email": trimmed,
	})
	return nil
}

// SendPasswordReset proxies to the auth provider's recovery flow.
func (s *EmailService) SendPasswordReset(ctx context.Context, email string) error {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	if s.auth == nil {
		return fmt.Errorf("%w: auth provider is not configured", domain.ErrConfig)
	}

	redirectTo := s.opts.SiteURL + "/reset-password"
	if err := s.auth.SendPasswordReset(ctx, trimmed, redirectTo); err != nil {
		s.recordAudit(ctx, domain.ActionPasswordReset, domain.EntityEmail, nil, nil, domain.JSONMap{
			"email": trimmed,
			"error": err.Error(),
		})
		return fmt.Errorf("failed to send password reset email: %w", err)
	}

	s.recordAudit(ctx, domain.ActionPasswordReset, domain.EntityEmail, nil, nil, domain.JSONMap{
		"email": trimmed,
	})
	return nil
}

func (s *EmailService) dispatch(ctx context.Context, kind domain.NotificationKind, email domain.Email) (*provider.SendResponse, error) {
	start := s.now()
	resp, err := s.provider.Send(ctx, email)
	if s.metrics != nil {
		s.metrics.ObserveEmailSendDuration(kind.String(), s.now().Sub(start))
	}

	if err != nil {
		if s.metrics != nil {
			reason := "unexpected_error"
			if errors.Is(err, domain.ErrDelivery) {
				reason = "provider_error"
			}
			s.metrics.IncEmailFailed(kind.String(), reason)
		}
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncEmailSent(kind.String())
	}
	return resp, nil
}

func (s *EmailService) loadTemplate(ctx context.Context, name string) (*domain.EmailTemplate, error) {
	if s.cache != nil {
		var cached domain.EmailTemplate
		if err := s.cache.Get(ctx, name, &cached); err == nil && cached.Content != "" {
			return &cached, nil
		}
	}

	if s.templates == nil {
		return nil, fmt.Errorf("%w: template repository is not configured", domain.ErrConfig)
	}

	tmpl, err := s.templates.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: template %q", domain.ErrNotFound, name)
		}
		return nil, fmt.Errorf("failed to load template %q: %w", name, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, name, tmpl, templateCacheTTL); err != nil {
			s.logger.Warn("failed to cache template", zap.String("template", name), zap.Error(err))
		}
	}

	return tmpl, nil
}

// dispatchAudit bundles the per-kind audit wiring for a failed
// dispatch.
type dispatchAudit struct {
	failedAction    domain.AuditAction
	exceptionAction domain.AuditAction
	entity          string
	entityID        *string
	userID          *string
	recipientField  string
	recipient       string
	payload         any
}

func (s *EmailService) auditDispatchFailure(ctx context.Context, a dispatchAudit, sendErr error) {
	details := domain.JSONMap{
		a.recipientField: a.recipient,
		"error":          sendErr.Error(),
	}

	action := a.exceptionAction
	if errors.Is(sendErr, domain.ErrDelivery) {
		action = a.failedAction
		var providerErr *provider.ProviderError
		if errors.As(sendErr, &providerErr) && providerErr.StatusCode > 0 {
			details["providerStatus"] = providerErr.StatusCode
		}
	} else {
		// Unexpected fault: keep the original payload for diagnosis.
		details["requestPayload"] = a.payload
	}

	s.recordAudit(ctx, action, a.entity, a.entityID, a.userID, details)
}

// recordAudit appends one audit entry, best effort: a failed insert is
// logged and counted but never changes the dispatch outcome.
func (s *EmailService) recordAudit(
	ctx context.Context,
	action domain.AuditAction,
	entity string,
	entityID *string,
	userID *string,
	details domain.JSONMap,
) {
	entry := &domain.AuditLog{
		ID:       uuid.NewString(),
		Action:   action,
		Entity:   entity,
		EntityID: normalizeOptionalStringPtr(entityID),
		UserID:   userID,
		Details:  details,
	}

	if err := s.audits.Create(ctx, entry); err != nil {
		s.logger.Error("failed to write audit entry",
			zap.String("action", action.String()),
			zap.Error(err),
		)
		if s.metrics != nil {
			s.metrics.IncAuditWriteFailure()
		}
	}
}

func normalizeOptionalString(v string) *string {
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func normalizeOptionalStringPtr(v *string) *string {
	if v == nil {
		return nil
	}
	return normalizeOptionalString(*v)
}
