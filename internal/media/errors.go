package media

import "errors"

// Failure reasons recorded on unavailable assets. None of them escape
// Resolve; they are logged and kept on Asset.Err for callers that care.
var (
	ErrFetch           = errors.New("asset fetch failed")
	ErrStatus          = errors.New("asset fetch returned non-success status")
	ErrTooLarge        = errors.New("asset exceeds maximum size")
	ErrNotImage        = errors.New("asset is not a supported image")
	ErrNoBaseURL       = errors.New("asset id cannot be resolved without a base URL")
	ErrInvalidDataURI  = errors.New("invalid data URI")
	ErrInvalidBaseURL  = errors.New("invalid asset base URL")
	ErrUnsupportedKind = errors.New("unsupported asset reference")
)
