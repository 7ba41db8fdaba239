package store

import (
	"context"
	"errors"
	"testing"

	"github.com/WongYC-66/odin-InventoryApplication-PostgreSQL/internal/db"
)

func TestCreateAndGetCategory(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	category, err := CreateCategory(ctx, database, "Phone")
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if category.Name != "Phone" {
		t.Errorf("expected name 'Phone', got %q", category.Name)
	}
	if category.ID == 0 {
		t.Error("expected assigned id")
	}

	got, err := GetCategory(ctx, database, category.ID)
	if err != nil {
		t.Fatalf("GetCategory: %v", err)
	}
	if got.Name != "Phone" {
		t.Errorf("expected name 'Phone', got %q", got.Name)
	}
}

func TestGetCategoryNotFound(t *testing.T) {
	database := db.NewTestDB(t)

	got, err := GetCategory(context.Background(), database, 999)
	if err != nil {
		t.Fatalf("GetCategory: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing category, got %+v", got)
	}
}

func TestGetCategoryByNameIsCaseSensitive(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateCategory(ctx, database, "Phone")

	got, err := GetCategoryByName(ctx, database, "Phone")
	if err != nil {
		t.Fatalf("GetCategoryByName: %v", err)
	}
	if got == nil {
		t.Fatal("expected exact match to be found")
	}

	got, err = GetCategoryByName(ctx, database, "phone")
	if err != nil {
		t.Fatalf("GetCategoryByName: %v", err)
	}
	if got != nil {
		t.Errorf("expected no match for different case, got %+v", got)
	}
}

func TestCreateCategoryDuplicateName(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := CreateCategory(ctx, database, "Phone"); err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	_, err := CreateCategory(ctx, database, "Phone")
	if !errors.Is(err, ErrDuplicateName) {
		t.Errorf("expected ErrDuplicateName, got %v", err)
	}
}

func TestListCategoriesSortedByName(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateCategory(ctx, database, "Tablet")
	CreateCategory(ctx, database, "Accessory")
	CreateCategory(ctx, database, "Phone")

	categories, err := ListCategories(ctx, database)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(categories) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(categories))
	}

	want := []string{"Accessory", "Phone", "Tablet"}
	for i, name := range want {
		if categories[i].Name != name {
			t.Errorf("position %d: expected %q, got %q", i, name, categories[i].Name)
		}
	}
}

func TestUpdateCategory(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	category, _ := CreateCategory(ctx, database, "Phone")

	if err := UpdateCategory(ctx, database, category.ID, "Smartphone"); err != nil {
		t.Fatalf("UpdateCategory: %v", err)
	}

	got, _ := GetCategory(ctx, database, category.ID)
	if got.Name != "Smartphone" {
		t.Errorf("expected name 'Smartphone', got %q", got.Name)
	}
}

func TestUpdateCategoryNotFound(t *testing.T) {
	database := db.NewTestDB(t)

	err := UpdateCategory(context.Background(), database, 999, "Smartphone")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteCategoryWithoutItems(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	category, _ := CreateCategory(ctx, database, "Phone")

	if err := DeleteCategory(ctx, database, category.ID); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}

	got, _ := GetCategory(ctx, database, category.ID)
	if got != nil {
		t.Errorf("expected category gone after delete, got %+v", got)
	}
}

func TestDeleteCategoryWithItemsBlocked(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	category, _ := CreateCategory(ctx, database, "Phone")
	supplier, _ := CreateSupplier(ctx, database, "AAA Electronics", "1 Jln A", "", nil)
	_, err := CreateItem(ctx, database, ItemFields{
		Name: "Iphone 14 Pro", SupplierID: supplier.ID, Quantity: 10, Price: 500000,
		CategoryID: &category.ID,
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	err = DeleteCategory(ctx, database, category.ID)
	if !errors.Is(err, ErrHasDependents) {
		t.Fatalf("expected ErrHasDependents, got %v", err)
	}

	// The record must survive the blocked delete.
	got, _ := GetCategory(ctx, database, category.ID)
	if got == nil {
		t.Error("expected category to remain after blocked delete")
	}
}

func TestDeleteCategoryNotFound(t *testing.T) {
	database := db.NewTestDB(t)

	err := DeleteCategory(context.Background(), database, 999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCountCategories(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	count, err := CountCategories(ctx, database)
	if err != nil {
		t.Fatalf("CountCategories: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0, got %d", count)
	}

	CreateCategory(ctx, database, "Phone")
	CreateCategory(ctx, database, "Tablet")

	count, _ = CountCategories(ctx, database)
	if count != 2 {
		t.Errorf("expected 2, got %d", count)
	}
}
