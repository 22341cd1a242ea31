package domain

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// AuditAction tags one dispatch outcome per notification kind.
type AuditAction string

const (
	ActionSendEmail          AuditAction = "send_email"
	ActionSendEmailFailed    AuditAction = "send_email_failed"
	ActionSendEmailException AuditAction = "send_email_exception"

	ActionWelcomeEmailSuccess   AuditAction = "send_welcome_email_success"
	ActionWelcomeEmailFailed    AuditAction = "send_welcome_email_failed"
	ActionWelcomeEmailException AuditAction = "send_welcome_email_exception"

	ActionFanOrderEmailSuccess   AuditAction = "send_fan_order_email_success"
	ActionFanOrderEmailFailed    AuditAction = "send_fan_order_email_failed"
	ActionFanOrderEmailException AuditAction = "send_fan_order_email_exception"

	ActionCreatorNotificationSuccess   AuditAction = "send_creator_notification_success"
	ActionCreatorNotificationFailed    AuditAction = "send_creator_notification_failed"
	ActionCreatorNotificationException AuditAction = "send_creator_notification_exception"

	ActionVerificationResend AuditAction = "resend_verification_email"
	ActionPasswordReset      AuditAction = "send_password_reset_email"
)

func (a AuditAction) String() string { return string(a) }

// Audit entity types. Order-related entries reference the requests
// table; the generic send is tracked against the email entity.
const (
	EntityRequests = "requests"
	EntityEmail    = "email"
)

// JSONMap is a free-form details payload stored as a JSONB column.
type JSONMap map[string]any

var (
	_ sql.Scanner   = (*JSONMap)(nil)
	_ driver.Valuer = JSONMap(nil)
)

func (m *JSONMap) Scan(value any) error {
	if value == nil {
		*m = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("jsonb: unsupported scan type %T", value)
	}

	return json.Unmarshal(data, m)
}

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// AuditLog is an immutable record of one dispatch attempt's outcome.
// Entries are write-once; nothing in this service updates or deletes
// them.
type AuditLog struct {
	ID        string
	Action    AuditAction
	Entity    string
	EntityID  *string
	UserID    *string
	Details   JSONMap
	CreatedAt time.Time
}
