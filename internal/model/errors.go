package model

import (
	"errors"
	"fmt"
	"time"
)

type APIError struct {
	Code      int       `json:"code"`
	Kind      ErrorKind `json:"kind,omitempty"`
	Message   string    `json:"message"`
	Retryable bool      `json:"retryable"`
	Redirect  string    `json:"redirect,omitempty"`
}

type ErrorKind string

const (
	KindValidation    ErrorKind = "VALIDATION_ERROR"
	KindTokenExpired  ErrorKind = "TOKEN_EXPIRED"
	KindServer        ErrorKind = "SERVER_ERROR"
	KindAPI           ErrorKind = "API_ERROR"
	KindNetwork       ErrorKind = "CORS_ERROR"
	KindInternal      ErrorKind = "INTERNAL_ERROR"
	KindNotFound      ErrorKind = "NOT_FOUND"
	KindUnauthorized  ErrorKind = "UNAUTHORIZED"
	KindPaymentMethod ErrorKind = "PAYMENT_METHOD_NOT_ALLOWED"
)

const (
	ErrInternalServerMessage   = "internal server error"
	ErrTokenRequiredMessage    = "order token is required"
	ErrTokenExpiredMessage     = "order token is invalid or expired"
	ErrServerMessage           = "order service is temporarily unavailable, please retry"
	ErrNetworkMessage          = "order service is unreachable, please retry"
	ErrConfirmationMessage     = "no order confirmation found"
	ErrSessionMismatchMessage  = "checkout session does not belong to this order"
	ErrPaymentNotAllowedFormat = "payment method %q is not offered by this shop"
)

var (
	ErrTokenExpired       = errors.New("token expired")
	ErrUpstreamValidation = errors.New("upstream validation error")
	ErrServer             = errors.New("upstream server error")
	ErrAPI                = errors.New("upstream api error")
	ErrNetwork            = errors.New("network or cors error")

	ErrConfirmationNotFound = errors.New("confirmation not found")
)

// ValidationError - входные данные заказа не годятся для нормализации.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation error: " + e.Message
	}
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// RemoteError - ответ внешнего API заказов, разложенный по категориям.
type RemoteError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	// RetryAfter - подсказка сервера из заголовка Retry-After (только для 429)
	RetryAfter time.Duration
	Err        error
}

func (e *RemoteError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (status %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

func (e *RemoteError) Is(target error) bool {
	switch e.Kind {
	case KindTokenExpired:
		return target == ErrTokenExpired
	case KindValidation:
		return target == ErrUpstreamValidation
	case KindServer:
		return target == ErrServer
	case KindNetwork:
		return target == ErrNetwork
	case KindAPI:
		return target == ErrAPI
	}
	return false
}

// Retryable - CORS/сетевые ошибки и истёкший токен автоматически не повторяются.
func (e *RemoteError) Retryable() bool {
	return e.Kind == KindServer
}
