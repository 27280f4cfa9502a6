package logic

import "errors"

// Sentinel errors mapped to HTTP statuses by the handlers.
var (
	ErrNotFound   = errors.New("not found")
	ErrBadRequest = errors.New("bad request")
)
