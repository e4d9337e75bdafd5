package domain

import "errors"

var (
	ErrInvalidAmount   = errors.New("invalid amount: must be a positive, finite number")
	ErrMissingCurrency = errors.New("from and to currencies are required")
)
