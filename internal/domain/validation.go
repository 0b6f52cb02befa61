package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MaxNameLength        = 100
	MaxDescriptionLength = 500
	MaxEntryAmount       = "10000"
)

// DefaultEntryAmount is used when an entry is added without an amount.
var DefaultEntryAmount = decimal.NewFromInt(1)

// NormalizeName trims surrounding whitespace from a participant name.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}

// ValidateParticipants validates the debtor/creditor pair of a new entry.
// Names are expected to be normalized already.
func ValidateParticipants(debtor, creditor string) error {
	if debtor == "" || creditor == "" {
		return ErrMissingParticipant
	}

	if utf8.RuneCountInString(debtor) > MaxNameLength || utf8.RuneCountInString(creditor) > MaxNameLength {
		return fmt.Errorf("%w: names are limited to %d characters", ErrNameTooLong, MaxNameLength)
	}

	if debtor == creditor {
		return ErrSameParticipant
	}

	return nil
}

// ValidateAmount validates the number of pints owed.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxEntryAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrInvalidAmount, MaxEntryAmount)
	}

	return nil
}

// ValidateDescription validates the optional free-text label.
func ValidateDescription(description string) error {
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return fmt.Errorf("%w: limited to %d characters", ErrDescriptionTooLong, MaxDescriptionLength)
	}
	return nil
}

// ValidateNewEntry checks every creation precondition of an entry.
func ValidateNewEntry(e *Entry) error {
	if err := ValidateParticipants(e.Debtor, e.Creditor); err != nil {
		return err
	}

	if err := ValidateAmount(e.Amount); err != nil {
		return err
	}

	return ValidateDescription(e.Description)
}

// ParseStatusFilter parses a status filter. The empty string and "all" mean
// no filter and yield an empty status.
func ParseStatusFilter(s string) (EntryStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return "", nil
	case string(EntryStatusPending):
		return EntryStatusPending, nil
	case string(EntryStatusPaid):
		return EntryStatusPaid, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}
