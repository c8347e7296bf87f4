package gerr

import "errors"

var (
	ErrBadRequest  = errors.New("bad request")
	ErrRateLimited = errors.New("too many requests")
	ErrUnavailable = errors.New("service unavailable")
)
