package usecase

import "errors"

var (
	ErrUnauthenticated    = errors.New("authentication required")
	ErrInvalidCursor      = errors.New("invalid cursor")
	ErrInvalidLimit       = errors.New("invalid limit")
	ErrInvalidMode        = errors.New("invalid mode")
	ErrInvalidContentKind = errors.New("invalid content kind")
	ErrNotFound           = errors.New("post not found")
	ErrTimeout            = errors.New("feed composition timed out")
)
