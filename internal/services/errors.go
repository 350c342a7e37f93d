package services

import "errors"

// Dataset service errors
var (
	ErrInvalidFormat  = errors.New("unsupported export format")
	ErrInvalidPreview = errors.New("preview row count must be positive")
)
