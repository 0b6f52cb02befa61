package domain

import "errors"

var (
	// ErrValidation is wrapped by every input validation error.
	ErrValidation = errors.New("validation failed")

	// Entry input errors
	ErrSameParticipant    = newValidationError("debtor and creditor cannot be the same person")
	ErrMissingParticipant = newValidationError("debtor and creditor are required")
	ErrInvalidAmount      = newValidationError("amount must be positive")
	ErrNameTooLong        = newValidationError("name is too long")
	ErrDescriptionTooLong = newValidationError("description is too long")
	ErrInvalidStatus      = newValidationError("invalid entry status")

	// Entry lifecycle errors
	ErrEntryNotFound = errors.New("entry not found")
	ErrEntryBusy     = errors.New("entry is being modified by another request")

	// ErrStore is wrapped around every failure reported by the ledger store.
	ErrStore = errors.New("store unavailable")
)

// IsValidationError reports whether err was caused by invalid input.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

type validationError struct {
	msg string
}

func newValidationError(msg string) error {
	return &validationError{msg: msg}
}

func (e *validationError) Error() string { return e.msg }

func (e *validationError) Unwrap() error { return ErrValidation }
