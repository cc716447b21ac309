package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrDuplicate       = errors.New("already exists")
	ErrPathNotAssigned = errors.New("path not assigned")
	ErrMissingID       = errors.New("missing _id")
	ErrCodeExpired     = errors.New("verification code expired")
	ErrCodeMismatch    = errors.New("verification code mismatch")
)
