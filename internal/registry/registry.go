// Package registry manages the user-defined category set, partitioned by
// income and expense kinds.
package registry

import (
	"context"
	"fmt"
	"strings"

	"tally/internal/model"
	"tally/internal/service"
)

// Registry provides validated CRUD over categories. Category names are unique
// across both kinds.
type Registry struct {
	store service.Storage
}

// New creates a Registry backed by the given storage.
func New(store service.Storage) *Registry {
	return &Registry{store: store}
}

// ListAll returns every category ordered by (kind, name) ascending.
func (r *Registry) ListAll(ctx context.Context) ([]model.Category, error) {
	return r.store.ListCategories(ctx)
}

// ListByKind returns the categories of one kind ordered by name.
func (r *Registry) ListByKind(ctx context.Context, kind model.Kind) ([]model.Category, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", model.ErrInvalidKind, kind)
	}
	return r.store.ListCategoriesByKind(ctx, kind)
}

// Add creates a new category and returns it with its assigned id. A name
// collision with any existing category, regardless of kind, fails with
// model.ErrDuplicateName.
func (r *Registry) Add(ctx context.Context, name string, kind model.Kind) (*model.Category, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", model.ErrInvalidKind, kind)
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name is empty", model.ErrInvalidName)
	}
	return r.store.CreateCategory(ctx, name, kind)
}

// UsageCount returns how many transactions reference the category.
func (r *Registry) UsageCount(ctx context.Context, id int64) (int, error) {
	return r.store.CountTransactionsByCategory(ctx, id)
}

// Delete removes a category permanently. It refuses with model.ErrCategoryInUse
// while any transaction still references the category; the error carries the
// reference count.
func (r *Registry) Delete(ctx context.Context, id int64) error {
	count, err := r.store.CountTransactionsByCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %d transactions reference category %d", model.ErrCategoryInUse, count, id)
	}
	return r.store.DeleteCategory(ctx, id)
}
