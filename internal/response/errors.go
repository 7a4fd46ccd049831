package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrWrongPassword      ErrCode = "WRONG_PASSWORD"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrTokenExpired       ErrCode = "TOKEN_EXPIRED"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound         ErrCode = "NOT_FOUND"
	ErrDuplicateAccount ErrCode = "DUPLICATE_ACCOUNT"

	// ─── Media ─────────────────────────────────────────────────────────
	ErrFileRequired    ErrCode = "FILE_REQUIRED"
	ErrUnsupportedFile ErrCode = "UNSUPPORTED_FILE_TYPE"
	ErrFileTooLarge    ErrCode = "FILE_TOO_LARGE"
	ErrEmptyDocument   ErrCode = "EMPTY_DOCUMENT"

	// ─── Video sources ─────────────────────────────────────────────────
	ErrInvalidVideoURL ErrCode = "INVALID_VIDEO_URL"
	ErrNoCaptions      ErrCode = "NO_CAPTIONS"

	// ─── Generation ────────────────────────────────────────────────────
	ErrGenerationInProgress  ErrCode = "GENERATION_IN_PROGRESS"
	ErrGenerationUnparseable ErrCode = "GENERATION_UNPARSEABLE"
	ErrInvalidQuizPayload    ErrCode = "INVALID_QUIZ_PAYLOAD"
	ErrUpstreamUnavailable   ErrCode = "UPSTREAM_UNAVAILABLE"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Email or password is incorrect."
	case ErrWrongPassword:
		return "Current password is incorrect."
	case ErrTokenRequired:
		return "An authentication token is required."
	case ErrTokenInvalid:
		return "The authentication token is invalid."
	case ErrTokenExpired:
		return "The authentication token has expired."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "One or more fields failed validation."
	case ErrInvalidPayload:
		return "The request payload could not be parsed."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "The requested resource was not found."
	case ErrDuplicateAccount:
		return "An account with this username or email already exists."

	// ─── Media ─────────────────────────────────────────────────────────
	case ErrFileRequired:
		return "A file is required for this request."
	case ErrUnsupportedFile:
		return "This file type is not supported. Upload a PDF, DOCX or TXT file."
	case ErrFileTooLarge:
		return "The uploaded file exceeds the maximum allowed size."
	case ErrEmptyDocument:
		return "No readable text could be extracted from the document."

	// ─── Video sources ─────────────────────────────────────────────────
	case ErrInvalidVideoURL:
		return "The video URL could not be recognized."
	case ErrNoCaptions:
		return "No captions are available for this video."

	// ─── Generation ────────────────────────────────────────────────────
	case ErrGenerationInProgress:
		return "A quiz generation is already in progress. Please wait for it to finish."
	case ErrGenerationUnparseable:
		return "The generated quiz could not be parsed. Please try again."
	case ErrInvalidQuizPayload:
		return "The generated quiz failed validation. Please try again."
	case ErrUpstreamUnavailable:
		return "The quiz generation service is temporarily unavailable."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please slow down."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."

	default:
		return "An unknown error occurred."
	}
}
