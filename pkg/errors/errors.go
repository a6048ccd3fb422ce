// ================== pkg/errors/errors.go =================
package errors

import "errors"

var (
	ErrNotFound       = errors.New("resource not found")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrValidation     = errors.New("validation failed")
	ErrDuplicate      = errors.New("resource already exists")
	ErrUnverified     = errors.New("account not verified")
	ErrInvalidOTP     = errors.New("invalid or expired OTP")
	ErrUpstreamFormat = errors.New("upstream response unparsable")
	ErrDelivery       = errors.New("email delivery failed")
	ErrInternal       = errors.New("internal server error")
)
