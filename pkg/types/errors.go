package types

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError reports a bad input value rejected before any network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// AuthError reports a signing or credential failure. Operations failing with
// an AuthError are fatal for that call and must not be retried.
type AuthError struct {
	Op  string
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth failure during %s: %v", e.Op, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// UpstreamError carries a non-2xx exchange response verbatim so callers can
// distinguish validation errors, auth rejections and exchange-side failures.
type UpstreamError struct {
	Status int
	Method string
	Path   string
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error %d on %s %s: %s", e.Status, e.Method, e.Path, e.Body)
}

// NotFound reports whether the upstream rejected the request with a 404.
func (e *UpstreamError) NotFound() bool { return e.Status == http.StatusNotFound }

// TransientNetworkError reports a timeout or connection failure. In polling
// mode these are logged and absorbed; in direct-call mode they propagate.
type TransientNetworkError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransientNetworkError) Error() string {
	return fmt.Sprintf("network error on %s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransientNetworkError) Unwrap() error { return e.Err }

// IsUpstreamNotFound reports whether err is an UpstreamError with status 404.
func IsUpstreamNotFound(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue) && ue.NotFound()
}

// Known Polymarket CLOB API error codes.
const (
	ErrInvalidMinTickSize = "INVALID_ORDER_MIN_TICK_SIZE"
	ErrNotEnoughBalance   = "INVALID_ORDER_NOT_ENOUGH_BALANCE"
	ErrFOKNotFilled       = "FOK_ORDER_NOT_FILLED_ERROR"
	ErrMarketNotReady     = "MARKET_NOT_READY"
	ErrUnmatched          = "UNMATCHED"
)
