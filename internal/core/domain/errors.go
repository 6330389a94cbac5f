package domain

import "errors"

// ValidationError is a user-input error that is shown verbatim to the user.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Form validation errors. Messages are user-facing.
var (
	ErrNameRequired        = &ValidationError{Field: "name", Message: "Please enter your name"}
	ErrRoleRequired        = &ValidationError{Field: "role", Message: "Please select a role"}
	ErrTitleRequired       = &ValidationError{Field: "title", Message: "Title is required"}
	ErrDescriptionRequired = &ValidationError{Field: "description", Message: "Description is required"}
	ErrStepsRequired       = &ValidationError{Field: "steps", Message: "Steps to reproduce are required"}
)

var (
	ErrInvalidRole       = errors.New("invalid role")
	ErrInvalidPriority   = errors.New("invalid priority")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrBugNotFound       = errors.New("bug not found")
	ErrDuplicateBug      = errors.New("bug already exists")
	ErrNoSession         = errors.New("no active session")
	ErrForbidden         = errors.New("access forbidden")
)

// Storage failures. Either one aborts the operation that hit it.
var (
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrStorageCorrupt     = errors.New("storage content is corrupt")
)

// IsValidation reports whether err carries a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
