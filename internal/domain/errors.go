package domain

import "errors"

// Sentinel errors used across the service. Callers wrap them with
// fmt.Errorf("%w: ...") so handlers can map them to HTTP statuses
// with errors.Is.
var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrDelivery     = errors.New("delivery failed")
	ErrConfig       = errors.New("configuration error")
)
