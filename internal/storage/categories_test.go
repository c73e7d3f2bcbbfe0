package storage

import (
	"context"
	"errors"
	"sort"
	"testing"

	"tally/internal/model"
)

func TestCreateCategory(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		catName string
		kind    model.Kind
		setup   bool
	}{
		{
			name:    "new income category",
			catName: "Dividends",
			kind:    model.KindIncome,
		},
		{
			name:    "new expense category",
			catName: "Rent",
			kind:    model.KindExpense,
		},
		{
			name:    "duplicate of seeded category",
			catName: "Food",
			kind:    model.KindExpense,
			wantErr: model.ErrDuplicateName,
		},
		{
			name:    "duplicate across kinds",
			catName: "Salary",
			kind:    model.KindExpense,
			wantErr: model.ErrDuplicateName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, cleanup := createTestStorage(t)
			defer cleanup()
			ctx := context.Background()

			cat, err := store.CreateCategory(ctx, tt.catName, tt.kind)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("CreateCategory() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("CreateCategory() failed: %v", err)
			}
			if cat.ID == 0 {
				t.Error("Expected non-zero category ID")
			}
			if cat.Name != tt.catName || cat.Kind != tt.kind {
				t.Errorf("Got category %+v, want name=%q kind=%q", cat, tt.catName, tt.kind)
			}
		})
	}
}

func TestCreateCategory_DuplicateLeavesSingleRow(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := store.CreateCategory(ctx, "Side Gig", model.KindIncome); err != nil {
		t.Fatalf("First create failed: %v", err)
	}
	if _, err := store.CreateCategory(ctx, "Side Gig", model.KindIncome); !errors.Is(err, model.ErrDuplicateName) {
		t.Fatalf("Second create error = %v, want ErrDuplicateName", err)
	}

	categories, err := store.ListCategories(ctx)
	if err != nil {
		t.Fatalf("Failed to list categories: %v", err)
	}
	count := 0
	for _, cat := range categories {
		if cat.Name == "Side Gig" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Expected exactly 1 'Side Gig' category, got %d", count)
	}
}

func TestListCategories_Ordering(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	categories, err := store.ListCategories(ctx)
	if err != nil {
		t.Fatalf("Failed to list categories: %v", err)
	}

	// (kind, name) ascending: all expense categories first, each block sorted by name.
	isSorted := sort.SliceIsSorted(categories, func(i, j int) bool {
		if categories[i].Kind != categories[j].Kind {
			return categories[i].Kind < categories[j].Kind
		}
		return categories[i].Name < categories[j].Name
	})
	if !isSorted {
		t.Error("Categories are not ordered by (kind, name)")
	}
}

func TestListCategoriesByKind(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	income, err := store.ListCategoriesByKind(ctx, model.KindIncome)
	if err != nil {
		t.Fatalf("Failed to list income categories: %v", err)
	}
	if len(income) != 4 {
		t.Errorf("Expected 4 income categories, got %d", len(income))
	}
	for _, cat := range income {
		if cat.Kind != model.KindIncome {
			t.Errorf("Category %q has kind %q, want income", cat.Name, cat.Kind)
		}
	}
	if !sort.SliceIsSorted(income, func(i, j int) bool { return income[i].Name < income[j].Name }) {
		t.Error("Income categories are not ordered by name")
	}
}

func TestGetCategoryByID_Missing(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	cat, err := store.GetCategoryByID(context.Background(), 9999)
	if err != nil {
		t.Fatalf("GetCategoryByID() failed: %v", err)
	}
	if cat != nil {
		t.Errorf("Expected nil for missing category, got %+v", cat)
	}
}

func TestDeleteCategory(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	cat := seededCategory(t, store, "Medical")
	if err := store.DeleteCategory(ctx, cat.ID); err != nil {
		t.Fatalf("DeleteCategory() failed: %v", err)
	}

	got, err := store.GetCategoryByID(ctx, cat.ID)
	if err != nil {
		t.Fatalf("GetCategoryByID() failed: %v", err)
	}
	if got != nil {
		t.Error("Category still present after delete")
	}

	if err := store.DeleteCategory(ctx, cat.ID); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("Second delete error = %v, want ErrNotFound", err)
	}
}

func TestCountTransactionsByCategory(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	cat := seededCategory(t, store, "Food")

	count, err := store.CountTransactionsByCategory(ctx, cat.ID)
	if err != nil {
		t.Fatalf("CountTransactionsByCategory() failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 references, got %d", count)
	}

	txn := &model.Transaction{
		Date:       model.NewDate(2024, 3, 10),
		Kind:       model.KindExpense,
		CategoryID: cat.ID,
		Amount:     model.Money{Cents: 12050},
	}
	stored, err := store.InsertTransaction(ctx, txn)
	if err != nil {
		t.Fatalf("InsertTransaction() failed: %v", err)
	}

	count, err = store.CountTransactionsByCategory(ctx, cat.ID)
	if err != nil {
		t.Fatalf("CountTransactionsByCategory() failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 reference, got %d", count)
	}

	if err := store.DeleteTransaction(ctx, stored.ID); err != nil {
		t.Fatalf("DeleteTransaction() failed: %v", err)
	}

	count, err = store.CountTransactionsByCategory(ctx, cat.ID)
	if err != nil {
		t.Fatalf("CountTransactionsByCategory() failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 references after delete, got %d", count)
	}
}
