package errors

// Error codes for standardized error responses.
const (
	// Validation errors
	ErrCodeInvalidRequest = "invalid_request"
	ErrCodeEmptyGuess     = "empty_guess"

	// Gameplay errors
	ErrCodeNotIdle       = "verification_in_flight"
	ErrCodeDayComplete   = "day_complete"
	ErrCodeDayIncomplete = "day_incomplete"

	// Server errors
	ErrCodeInternalError = "internal_error"
	ErrCodeSessionError  = "session_error"
)
