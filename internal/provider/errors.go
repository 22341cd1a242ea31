package provider

import (
	"fmt"
	"strings"

	"github.com/mystarhq/notify-api/internal/domain"
)

// ProviderError carries the delivery provider's rejection detail.
type ProviderError struct {
	StatusCode int
	Message    string
	Cause      error
}

func (e *ProviderError) Error() string {
	if e == nil {
		return "<nil>"
	}

	parts := make([]string, 0, 4)
	parts = append(parts, "provider error")

	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}
	if msg := strings.TrimSpace(e.Message); msg != "" {
		parts = append(parts, msg)
	}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}

	return strings.Join(parts, ": ")
}

func (e *ProviderError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is makes every provider error match domain.ErrDelivery so handlers
// can classify the outcome without importing this package's type.
func (e *ProviderError) Is(target error) bool {
	return target == domain.ErrDelivery
}
