package request

import "errors"

// Rejections raised before a handler runs.
var (
	ErrNotAcceptable        = errors.New("content type not acceptable")
	ErrUnsupportedMediaType = errors.New("invalid content type, expected application/json")
	ErrUnauthenticated      = errors.New("authentication required")
)
