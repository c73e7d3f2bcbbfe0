package model

import "errors"

// Domain errors. Callers branch on these with errors.Is; the wrapped message
// carries the offending value.
var (
	// ErrInvalidKind indicates a transaction kind other than income or expense.
	ErrInvalidKind = errors.New("invalid kind")

	// ErrInvalidName indicates an empty or blank category name.
	ErrInvalidName = errors.New("invalid category name")

	// ErrDuplicateName indicates a category name collision, regardless of kind.
	ErrDuplicateName = errors.New("duplicate category name")

	// ErrCategoryKindMismatch indicates a transaction whose kind disagrees with
	// its category's kind.
	ErrCategoryKindMismatch = errors.New("category kind mismatch")

	// ErrInvalidAmount indicates an amount that is not a positive decimal with
	// at most two fractional digits after rounding.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidDate indicates a date that does not exist on the calendar or
	// does not parse as YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date")

	// ErrNotFound indicates a referenced row that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrCategoryInUse indicates a category delete refused because transactions
	// still reference it.
	ErrCategoryInUse = errors.New("category in use")
)
