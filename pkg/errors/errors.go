package errors

import "fmt"

// Error codes for the progression engine.
const (
	// Domain errors
	ErrCodeAchievementNotFound = "ACHIEVEMENT_NOT_FOUND"
	ErrCodeLevelStateNotFound  = "LEVEL_STATE_NOT_FOUND"
	ErrCodeInvalidEvent        = "INVALID_EVENT"

	// Database errors
	ErrCodeDatabaseError     = "DATABASE_ERROR"
	ErrCodeTransactionFailed = "TRANSACTION_FAILED"

	// Config errors
	ErrCodeConfigInvalid  = "CONFIG_INVALID"
	ErrCodeConfigNotFound = "CONFIG_NOT_FOUND"

	// External collaborator errors
	ErrCodeStatsUpdateFailed = "STATS_UPDATE_FAILED"
	ErrCodeNotifyFailed      = "NOTIFY_FAILED"

	// Validation errors
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeInvalidInput     = "INVALID_INPUT"
)

// ProgressionError represents an error in the progression engine.
type ProgressionError struct {
	Code    string
	Message string
	Err     error
}

func (e *ProgressionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ProgressionError) Unwrap() error {
	return e.Err
}

// NewProgressionError creates a new ProgressionError.
func NewProgressionError(code, message string, err error) *ProgressionError {
	return &ProgressionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Domain-specific error constructors

// ErrAchievementNotFound returns an error when an achievement definition is not found.
func ErrAchievementNotFound(achievementID string) *ProgressionError {
	return &ProgressionError{
		Code:    ErrCodeAchievementNotFound,
		Message: fmt.Sprintf("achievement not found: %s", achievementID),
		Err:     nil,
	}
}

// ErrLevelStateNotFound returns an error when no level state exists for a user
// and implicit creation is disabled.
func ErrLevelStateNotFound(userID string) *ProgressionError {
	return &ProgressionError{
		Code:    ErrCodeLevelStateNotFound,
		Message: fmt.Sprintf("level state not found for user: %s", userID),
		Err:     nil,
	}
}

// ErrInvalidEvent returns an error for a malformed activity event.
func ErrInvalidEvent(reason error) *ProgressionError {
	return &ProgressionError{
		Code:    ErrCodeInvalidEvent,
		Message: "invalid activity event",
		Err:     reason,
	}
}

// ErrDatabaseError wraps database errors.
func ErrDatabaseError(operation string, err error) *ProgressionError {
	return &ProgressionError{
		Code:    ErrCodeDatabaseError,
		Message: fmt.Sprintf("database error during %s", operation),
		Err:     err,
	}
}

// ErrConfigInvalid returns an error for invalid configuration.
func ErrConfigInvalid(reason string) *ProgressionError {
	return &ProgressionError{
		Code:    ErrCodeConfigInvalid,
		Message: fmt.Sprintf("invalid configuration: %s", reason),
		Err:     nil,
	}
}

// ErrStatsUpdateFailed returns an error when the stats provider rejects an update.
func ErrStatsUpdateFailed(userID string, err error) *ProgressionError {
	return &ProgressionError{
		Code:    ErrCodeStatsUpdateFailed,
		Message: fmt.Sprintf("failed to update stats for user %s", userID),
		Err:     err,
	}
}

// ErrNotifyFailed returns an error when a notification delivery exhausts retries.
func ErrNotifyFailed(kind string, err error) *ProgressionError {
	return &ProgressionError{
		Code:    ErrCodeNotifyFailed,
		Message: fmt.Sprintf("failed to deliver %s notification", kind),
		Err:     err,
	}
}

// ErrValidationFailed returns a validation error.
func ErrValidationFailed(field, reason string) *ProgressionError {
	return &ProgressionError{
		Code:    ErrCodeValidationFailed,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Err:     nil,
	}
}
