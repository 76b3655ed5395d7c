package apperrors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
)

// ErrorType represents different types of errors
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeConflict   ErrorType = "conflict"
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeDatabase   ErrorType = "database"
	ErrorTypeInternal   ErrorType = "internal"
)

// AppError represents an application error with additional context
type AppError struct {
	Type     ErrorType
	Message  string
	Code     string
	Internal error
	Context  map[string]interface{}
	Source   string
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (internal: %v)", e.Type, e.Message, e.Internal)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the internal error
func (e *AppError) Unwrap() error {
	return e.Internal
}

// Is matches errors by type and code so callers can compare against the
// predefined errors below regardless of attached context.
func (e *AppError) Is(target error) bool {
	if t, ok := target.(*AppError); ok {
		return e.Type == t.Type && e.Code == t.Code
	}
	return errors.Is(e.Internal, target)
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// LogFields returns structured logging fields
func (e *AppError) LogFields() []interface{} {
	fields := []interface{}{
		"error_type", e.Type,
		"error_code", e.Code,
		"error_message", e.Message,
		"source", e.Source,
	}

	if e.Internal != nil {
		fields = append(fields, "internal_error", e.Internal.Error())
	}

	for k, v := range e.Context {
		fields = append(fields, k, v)
	}

	return fields
}

// New creates a new AppError
func New(errorType ErrorType, code, message string) *AppError {
	_, file, line, _ := runtime.Caller(1)
	source := fmt.Sprintf("%s:%d", file, line)

	return &AppError{
		Type:    errorType,
		Code:    code,
		Message: message,
		Source:  source,
		Context: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error into AppError
func Wrap(err error, errorType ErrorType, code, message string) *AppError {
	_, file, line, _ := runtime.Caller(1)
	source := fmt.Sprintf("%s:%d", file, line)

	return &AppError{
		Type:     errorType,
		Code:     code,
		Message:  message,
		Internal: err,
		Source:   source,
		Context:  make(map[string]interface{}),
	}
}

// Predefined errors. Session-lifecycle failures are precondition violations:
// the caller decides whether to retry after fetching fresh state or to
// surface the message, the core never retries them itself.
var (
	ErrExistingSession  = New(ErrorTypeConflict, "EXISTING_SESSION", "A fasting session is already active")
	ErrNoActiveSession  = New(ErrorTypeConflict, "NO_ACTIVE_SESSION", "No active fasting session found")
	ErrInvalidTimestamp = New(ErrorTypeValidation, "INVALID_TIMESTAMP", "Stop time precedes the session start time")
	ErrNotFound         = New(ErrorTypeNotFound, "NOT_FOUND", "Requested record not found")
	ErrInvalidInput     = New(ErrorTypeValidation, "INVALID_INPUT", "Invalid input provided")
)

// NewExistingSessionError builds an ErrExistingSession carrying the user id
// for diagnostics.
func NewExistingSessionError(userID uint) *AppError {
	return New(ErrorTypeConflict, "EXISTING_SESSION", "A fasting session is already active").
		WithContext("user_id", userID)
}

// NewNoActiveSessionError builds an ErrNoActiveSession for the given user.
func NewNoActiveSessionError(userID uint) *AppError {
	return New(ErrorTypeConflict, "NO_ACTIVE_SESSION", "No active fasting session found").
		WithContext("user_id", userID)
}

// NewInvalidTimestampError builds an ErrInvalidTimestamp carrying both
// timestamps. The predefined errors are shared, so context always goes on a
// fresh instance.
func NewInvalidTimestampError(userID uint, start, stop interface{}) *AppError {
	return New(ErrorTypeValidation, "INVALID_TIMESTAMP", "Stop time precedes the session start time").
		WithContext("user_id", userID).
		WithContext("start_time", start).
		WithContext("stop_time", stop)
}

// NewNotFoundError builds an ErrNotFound for a record the user does not own
// or that does not exist.
func NewNotFoundError() *AppError {
	return New(ErrorTypeNotFound, "NOT_FOUND", "Requested record not found")
}

// NewValidationError creates a validation error with a custom message.
func NewValidationError(message string) *AppError {
	return New(ErrorTypeValidation, "VALIDATION", message)
}

// NewRepositoryError wraps a storage failure. The underlying error is kept
// so callers can still unwrap driver errors.
func NewRepositoryError(err error) *AppError {
	return Wrap(err, ErrorTypeDatabase, "DB_ERROR", "Database operation failed")
}

// Handler provides error handling strategies
type Handler struct {
	logger *slog.Logger
}

// NewHandler creates a new error handler
func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{logger: logger}
}

// Handle logs an error according to its type. Precondition violations are
// user-correctable and logged as warnings, everything else as errors.
func (h *Handler) Handle(ctx context.Context, err error) {
	if err == nil {
		return
	}

	var appErr *AppError
	if !errors.As(err, &appErr) {
		h.logger.ErrorContext(ctx, "Unhandled error", "error", err.Error())
		return
	}

	switch appErr.Type {
	case ErrorTypeValidation, ErrorTypeConflict, ErrorTypeNotFound:
		h.logger.WarnContext(ctx, "Request rejected", appErr.LogFields()...)
	default:
		h.logger.ErrorContext(ctx, "Operation failed", appErr.LogFields()...)
	}
}
