package services

import "errors"

// Error kinds shared by the account and record services. Handlers map
// these onto user-facing flash messages; none of them reaches the
// client as a raw error.
var (
	// ErrInvalidCredentials covers both unknown username and wrong
	// password so login failures leak nothing.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrDuplicateAccount: username or email already taken.
	ErrDuplicateAccount = errors.New("duplicate account")
	// ErrNotFoundOrForbidden: a scoped update/delete matched no row.
	// "doesn't exist" and "not yours" are deliberately collapsed.
	ErrNotFoundOrForbidden = errors.New("not found or forbidden")
)

// ValidationError carries the human-readable reason for a field-level
// rule violation, shown to the user via a flash message.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// AsValidation extracts a ValidationError from err, if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
