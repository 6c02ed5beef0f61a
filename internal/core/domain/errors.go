package domain

import "errors"

var (
	ErrNotFound    = errors.New("not found")
	ErrUnsupported = errors.New("operation not supported in demo mode")
)
