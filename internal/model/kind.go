package model

import "fmt"

// Kind partitions categories and transactions into income and expense. The two
// values are the only ones the schema's CHECK constraints accept.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// ParseKind converts user input to a Kind. The match is exact and
// case-sensitive.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindIncome:
		return KindIncome, nil
	case KindExpense:
		return KindExpense, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidKind, s)
	}
}

// Valid reports whether the kind is one of the two known values.
func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

func (k Kind) String() string {
	return string(k)
}
