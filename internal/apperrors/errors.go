package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInUse indicates the resource is still referenced by another one.
var ErrInUse = errors.New("resource is in use")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller may not act on the resource.
var ErrForbidden = errors.New("forbidden")

// ErrRefreshTokenExpired indicates a refresh token past its expiry.
var ErrRefreshTokenExpired = errors.New("refresh token expired")

// Code identifies an application level failure in API responses.
type Code string

const (
	CodeForbidden           Code = "AUTH_FORBIDDEN"
	CodeSingleUserMode      Code = "AUTH_SINGLE_USER_MODE"
	CodeEmailAlreadyExists  Code = "AUTH_EMAIL_ALREADY_EXISTS"
	CodeInvalidName         Code = "AUTH_INVALID_NAME"
	CodeInvalidEmail        Code = "AUTH_INVALID_EMAIL"
	CodeUserNotFound        Code = "AUTH_USER_NOT_FOUND"
	CodeInvalidCredentials  Code = "AUTH_INVALID_CREDENTIALS"
	CodeUserInactive        Code = "AUTH_USER_INACTIVE"
	CodeMissingAccessToken  Code = "AUTH_MISSING_ACCESS_TOKEN"
	CodeInvalidAccessToken  Code = "AUTH_INVALID_ACCESS_TOKEN"
	CodeMissingRefreshToken Code = "AUTH_MISSING_REFRESH_TOKEN"
	CodeInvalidRefreshToken Code = "AUTH_INVALID_REFRESH_TOKEN"
	CodeRefreshTokenExpired Code = "AUTH_REFRESH_TOKEN_EXPIRED"
	CodeWorkLogNotFound     Code = "WORK_LOG_NOT_FOUND"
	CodeWorkLogExists       Code = "WORK_LOG_ALREADY_EXISTS"
	CodeInvoiceNotFound     Code = "INVOICE_NOT_FOUND"
	CodeClientNotFound      Code = "CLIENT_NOT_FOUND"
	CodePersonNotFound      Code = "PERSON_NOT_FOUND"
	CodeNotFound            Code = "NOT_FOUND"
	CodeConflict            Code = "CONFLICT"
	CodeValidation          Code = "VALIDATION_ERROR"
	CodeRateLimited         Code = "RATE_LIMITED"
	CodeInternal            Code = "INTERNAL_SERVER_ERROR"
)

var messages = map[Code]string{
	CodeForbidden:           "You are not allowed to access this resource",
	CodeSingleUserMode:      "The system supports a single user and one already exists",
	CodeEmailAlreadyExists:  "A user with this email already exists",
	CodeInvalidName:         "Name must have at least 2 characters",
	CodeInvalidEmail:        "Email is invalid",
	CodeUserNotFound:        "User not found",
	CodeInvalidCredentials:  "Invalid email or password",
	CodeUserInactive:        "User is inactive",
	CodeMissingAccessToken:  "Access token is required",
	CodeInvalidAccessToken:  "Access token is invalid or expired",
	CodeMissingRefreshToken: "Refresh token is required",
	CodeInvalidRefreshToken: "Refresh token is invalid",
	CodeRefreshTokenExpired: "Refresh token has expired",
	CodeWorkLogNotFound:     "Work log not found",
	CodeWorkLogExists:       "A work log already exists for this person, client and date",
	CodeInvoiceNotFound:     "Invoice not found",
	CodeClientNotFound:      "Client not found",
	CodePersonNotFound:      "Person not found",
	CodeNotFound:            "Resource not found",
	CodeConflict:            "Resource already exists",
	CodeValidation:          "Request validation failed",
	CodeRateLimited:         "Too many requests. Please try again later.",
	CodeInternal:            "Internal server error",
}

var statuses = map[Code]int{
	CodeForbidden:           http.StatusForbidden,
	CodeSingleUserMode:      http.StatusConflict,
	CodeEmailAlreadyExists:  http.StatusConflict,
	CodeInvalidName:         http.StatusBadRequest,
	CodeInvalidEmail:        http.StatusBadRequest,
	CodeUserNotFound:        http.StatusNotFound,
	CodeInvalidCredentials:  http.StatusUnauthorized,
	CodeUserInactive:        http.StatusForbidden,
	CodeMissingAccessToken:  http.StatusUnauthorized,
	CodeInvalidAccessToken:  http.StatusUnauthorized,
	CodeMissingRefreshToken: http.StatusUnauthorized,
	CodeInvalidRefreshToken: http.StatusUnauthorized,
	CodeRefreshTokenExpired: http.StatusUnauthorized,
	CodeWorkLogNotFound:     http.StatusNotFound,
	CodeWorkLogExists:       http.StatusConflict,
	CodeInvoiceNotFound:     http.StatusNotFound,
	CodeClientNotFound:      http.StatusNotFound,
	CodePersonNotFound:      http.StatusNotFound,
	CodeNotFound:            http.StatusNotFound,
	CodeConflict:            http.StatusConflict,
	CodeValidation:          http.StatusBadRequest,
	CodeRateLimited:         http.StatusTooManyRequests,
	CodeInternal:            http.StatusInternalServerError,
}

// Message returns the catalogue text for c.
func (c Code) Message() string {
	if m, ok := messages[c]; ok {
		return m
	}
	return string(c)
}

// Status returns the HTTP status registered for c, 500 when unknown.
func (c Code) Status() int {
	if s, ok := statuses[c]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// AppError is an application failure that already knows how it should be
// reported to API clients.
type AppError struct {
	Code       Code
	Message    string
	StatusCode int
	Details    map[string]any
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

// Is matches another *AppError with the same code.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// New builds an AppError for code using the catalogue message and status.
func New(code Code) *AppError {
	return &AppError{Code: code, Message: code.Message(), StatusCode: code.Status()}
}

// Wrap is New with a cause attached.
func Wrap(code Code, err error) *AppError {
	e := New(code)
	e.Err = err
	return e
}

// WithDetails returns a copy of e carrying details.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

// NewAppError builds a validation style error with a custom message and status.
func NewAppError(statusCode int, message string, err error) *AppError {
	code := CodeValidation
	if statusCode >= http.StatusInternalServerError {
		code = CodeInternal
	}
	return &AppError{Code: code, Message: message, StatusCode: statusCode, Err: err}
}
