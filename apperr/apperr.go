package apperr

import (
	"errors"
	"net/http"
)

// Error represents a typed, status-aware application error.
type Error struct {
	Code    string         `json:"code"`
	Message string         `json:"message,omitempty"`
	Status  int            `json:"-"`
	Fields  map[string]any `json:"fields,omitempty"`
	Err     error          `json:"-"`
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	return "error"
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches two apperr values by code, so wrapped copies of a base error
// still compare equal to it under errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e != nil && t != nil && e.Code == t.Code
}

func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

func Wrap(err error, base *Error, message string) *Error {
	if err == nil {
		return nil
	}
	if base == nil {
		base = ErrInternal
	}
	copy := *base
	if message != "" {
		copy.Message = message
	}
	copy.Err = err
	return &copy
}

func WithMessage(base *Error, message string) *Error {
	if base == nil {
		return nil
	}
	copy := *base
	copy.Message = message
	return &copy
}

func WithFields(base *Error, fields map[string]any) *Error {
	if base == nil {
		return nil
	}
	copy := *base
	copy.Fields = fields
	return &copy
}

func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) && e != nil {
		return e, true
	}
	return nil, false
}

func Status(err error) int {
	if e, ok := As(err); ok && e.Status != 0 {
		return e.Status
	}
	return http.StatusInternalServerError
}

func Code(err error) string {
	if e, ok := As(err); ok && e.Code != "" {
		return e.Code
	}
	return "internal_error"
}

func Message(err error) string {
	if e, ok := As(err); ok {
		if e.Message != "" {
			return e.Message
		}
		if e.Err != nil {
			return e.Err.Error()
		}
		return e.Code
	}
	if err != nil {
		return err.Error()
	}
	return ""
}

// Payload renders an error as a response body. Untyped errors carry no
// internal detail to the caller.
func Payload(err error) map[string]any {
	if err == nil {
		return map[string]any{}
	}
	if e, ok := As(err); ok {
		payload := map[string]any{
			"code":    Code(e),
			"message": Message(e),
		}
		if len(e.Fields) > 0 {
			payload["fields"] = e.Fields
		}
		return payload
	}
	return map[string]any{
		"code":    "internal_error",
		"message": "unexpected error",
	}
}

var (
	ErrBadRequest         = New("bad_request", http.StatusBadRequest, "")
	ErrValidation         = New("validation_error", http.StatusBadRequest, "")
	ErrTokenExpired       = New("token_expired", http.StatusUnauthorized, "token has expired")
	ErrTokenMalformed     = New("token_malformed", http.StatusUnauthorized, "malformed token")
	ErrTokenUnsupported   = New("token_unsupported", http.StatusUnauthorized, "unsupported token format")
	ErrMissingAuthHeader  = New("missing_auth_header", http.StatusUnauthorized, "authorization header is missing")
	ErrUnverified         = New("email_unverified", http.StatusUnauthorized, "please verify your email before logging in")
	ErrInvalidCredentials = New("invalid_credentials", http.StatusUnauthorized, "wrong email or password")
	ErrNotAuthorized      = New("not_authorized", http.StatusForbidden, "")
	ErrNotFound           = New("not_found", http.StatusNotFound, "")
	ErrConflict           = New("conflict", http.StatusConflict, "")
	ErrOTPExpired         = New("otp_expired", http.StatusBadRequest, "OTP has expired, request a new one")
	ErrOTPInvalid         = New("otp_invalid", http.StatusBadRequest, "invalid OTP")
	ErrAlreadyVerified    = New("already_verified", http.StatusBadRequest, "email is already verified")
	ErrDownstream         = New("downstream_failure", http.StatusBadGateway, "")
	ErrTransport          = New("transport_failure", http.StatusGatewayTimeout, "could not reach downstream service")
	ErrInternal           = New("internal_error", http.StatusInternalServerError, "")
	ErrDatabase           = New("database_error", http.StatusInternalServerError, "")
)
