package errors

// Error codes for standardized error responses
const (
	// Authentication errors
	ErrCodeUnauthorized           = "unauthorized"
	ErrCodeForbidden              = "forbidden"
	ErrCodeInvalidToken           = "invalid_token"
	ErrCodeTokenExpired           = "token_expired"
	ErrCodeAuthenticationRequired = "authentication_required"

	// Validation errors
	ErrCodeInvalidRequest   = "invalid_request"
	ErrCodeValidationFailed = "validation_failed"
	ErrCodeMissingField     = "missing_field"

	// Resource errors
	ErrCodeNotFound      = "not_found"
	ErrCodeAlreadyExists = "already_exists"
	ErrCodeConflict      = "conflict"

	// Account errors
	ErrCodeRegistrationFailed = "registration_failed"
	ErrCodeLoginFailed        = "login_failed"
	ErrCodeRefreshFailed      = "refresh_failed"
	ErrCodeEmailTaken         = "email_taken"
	ErrCodePasswordTooShort   = "password_too_short"
	ErrCodePasswordMismatch   = "password_mismatch"

	// Catalog errors
	ErrCodeUnknownGrade   = "unknown_grade"
	ErrCodeUnknownSubject = "unknown_subject"
	ErrCodeUnknownTopic   = "unknown_topic"

	// Quiz errors
	ErrCodeInvalidQuizID      = "invalid_quiz_id"
	ErrCodeQuizNotFound       = "quiz_not_found"
	ErrCodeQuizStartFailed    = "quiz_start_failed"
	ErrCodeQuizFinished       = "quiz_finished"
	ErrCodeInvalidOption      = "invalid_option"
	ErrCodeAnswerOutOfOrder   = "answer_out_of_order"
	ErrCodeHistoryFetchFailed = "history_fetch_failed"

	// Server errors
	ErrCodeInternalError      = "internal_error"
	ErrCodeServiceUnavailable = "service_unavailable"
	ErrCodeUpstreamError      = "upstream_error"
)
