package provider

import "errors"

var (
	ErrPairNotFound  = errors.New("provider: pair not present in response")
	ErrNotConfigured = errors.New("provider: source is not configured")
	ErrUnsuccessful  = errors.New("provider: unsuccessful response")
)
