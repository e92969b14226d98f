package errors

import "errors"

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrMissingOrderID     = errors.New("order id is required")
	ErrEmptyOrderItems    = errors.New("order items must not be empty")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrConsentRequired    = errors.New("explicit consent required")
	ErrUnknownContactType = errors.New("unknown contact type")
	ErrUnsupportedLocale  = errors.New("unsupported locale")
)
