package model

import "time"

// Category is a user-defined income or expense bucket for transactions.
// Names are unique across both kinds, not per kind.
type Category struct {
	CreatedAt time.Time
	Name      string
	Kind      Kind
	ID        int64
}
