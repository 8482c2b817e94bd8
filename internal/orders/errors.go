package orders

import "errors"

var (
	ErrNotFound           = errors.New("order not found")
	ErrMalformedInput     = errors.New("malformed order")
	ErrInvalidTarget      = errors.New("invalid target")
	ErrBackendUnavailable = errors.New("backend unavailable")
	ErrAlreadyExists      = errors.New("order already exists")
	ErrCorruptCache       = errors.New("cached order is not a JSON object")
)
