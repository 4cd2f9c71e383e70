package service

import "errors"

// Sentinel errors shared across services. Handlers map these onto HTTP
// statuses with errors.Is; the wrapped message is what the client sees.
var (
	// ErrValidation: malformed or out-of-range input, business-rule
	// violation. 400.
	ErrValidation = errors.New("validation failed")
	// ErrConflict: a uniqueness constraint was violated at write time.
	// Surfaced as 400 in this API, not 409.
	ErrConflict = errors.New("conflict")
	// ErrNotFound: the referenced entity does not exist. 404. Distinct
	// from ErrForbidden so callers can tell "absent" from "untouchable".
	ErrNotFound = errors.New("not found")
	// ErrForbidden: authenticated but lacking role or ownership. 403.
	ErrForbidden = errors.New("you do not have permission to perform this action")
	// ErrInvalidCode: the confirmation code did not match. A normal
	// rejection (400), never a server error.
	ErrInvalidCode = errors.New("invalid confirmation code")
)
