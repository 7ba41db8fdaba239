package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/WongYC-66/odin-InventoryApplication-PostgreSQL/internal/db"
	"github.com/WongYC-66/odin-InventoryApplication-PostgreSQL/internal/model"
)

// newItemFixtures creates a supplier and category for item tests.
func newItemFixtures(t *testing.T, database *sql.DB) (*model.Supplier, *model.Category) {
	t.Helper()
	ctx := context.Background()

	supplier, err := CreateSupplier(ctx, database, "AAA Electronics", "1 Jln A", "", nil)
	if err != nil {
		t.Fatalf("creating fixture supplier: %v", err)
	}
	category, err := CreateCategory(ctx, database, "Phone")
	if err != nil {
		t.Fatalf("creating fixture category: %v", err)
	}
	return supplier, category
}

func TestCreateAndGetItemDenormalized(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	supplier, category := newItemFixtures(t, database)

	item, err := CreateItem(ctx, database, ItemFields{
		Name:       "Iphone 14 Pro",
		SupplierID: supplier.ID,
		Quantity:   10,
		Price:      500000,
		CategoryID: &category.ID,
		ImageURL:   "https://example.com/img.jpg",
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	got, err := GetItem(ctx, database, item.ID)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if got.Name != "Iphone 14 Pro" || got.Quantity != 10 || got.Price != 500000 {
		t.Errorf("unexpected item fields: %+v", got)
	}
	if got.ImageURL != "https://example.com/img.jpg" {
		t.Errorf("expected image url preserved, got %q", got.ImageURL)
	}
	if got.SupplierName != "AAA Electronics" {
		t.Errorf("expected joined supplier name, got %q", got.SupplierName)
	}
	if got.CategoryName != "Phone" {
		t.Errorf("expected joined category name, got %q", got.CategoryName)
	}
}

func TestCreateItemWithoutCategory(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	supplier, _ := newItemFixtures(t, database)

	item, err := CreateItem(ctx, database, ItemFields{
		Name: "Mystery Box", SupplierID: supplier.ID, Quantity: 1, Price: 100,
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	got, _ := GetItem(ctx, database, item.ID)
	if got.CategoryID != nil {
		t.Errorf("expected nil category id, got %v", got.CategoryID)
	}
	if got.CategoryName != "" {
		t.Errorf("expected empty category name, got %q", got.CategoryName)
	}
}

func TestCreateItemInvalidSupplier(t *testing.T) {
	database := db.NewTestDB(t)

	_, err := CreateItem(context.Background(), database, ItemFields{
		Name: "Orphan", SupplierID: 999, Quantity: 1, Price: 100,
	})
	if !errors.Is(err, ErrInvalidReference) {
		t.Errorf("expected ErrInvalidReference, got %v", err)
	}
}

func TestListItemsSortedByNameRegardlessOfInsertionOrder(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	supplier, category := newItemFixtures(t, database)

	for _, name := range []string{"Soundbar X100", "Galaxy S24", "PowerBank"} {
		_, err := CreateItem(ctx, database, ItemFields{
			Name: name, SupplierID: supplier.ID, Quantity: 1, Price: 100, CategoryID: &category.ID,
		})
		if err != nil {
			t.Fatalf("CreateItem %q: %v", name, err)
		}
	}

	items, err := ListItems(ctx, database)
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}

	want := []string{"Galaxy S24", "PowerBank", "Soundbar X100"}
	if len(items) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(items))
	}
	for i, name := range want {
		if items[i].Name != name {
			t.Errorf("position %d: expected %q, got %q", i, name, items[i].Name)
		}
	}
}

func TestListItemsByForeignKey(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	supplier, category := newItemFixtures(t, database)

	other, _ := CreateSupplier(ctx, database, "BBB Trading", "Taman B", "", nil)

	CreateItem(ctx, database, ItemFields{Name: "A", SupplierID: supplier.ID, Quantity: 1, Price: 1, CategoryID: &category.ID})
	CreateItem(ctx, database, ItemFields{Name: "B", SupplierID: other.ID, Quantity: 1, Price: 1})

	bySupplier, err := ListItemsBySupplier(ctx, database, supplier.ID)
	if err != nil {
		t.Fatalf("ListItemsBySupplier: %v", err)
	}
	if len(bySupplier) != 1 || bySupplier[0].Name != "A" {
		t.Errorf("expected only item A for supplier, got %+v", bySupplier)
	}

	byCategory, err := ListItemsByCategory(ctx, database, category.ID)
	if err != nil {
		t.Fatalf("ListItemsByCategory: %v", err)
	}
	if len(byCategory) != 1 || byCategory[0].Name != "A" {
		t.Errorf("expected only item A for category, got %+v", byCategory)
	}
}

func TestUpdateItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	supplier, category := newItemFixtures(t, database)

	item, _ := CreateItem(ctx, database, ItemFields{
		Name: "Test Phone", SupplierID: supplier.ID, Quantity: 5, Price: 999,
	})

	err := UpdateItem(ctx, database, item.ID, ItemFields{
		Name: "Test Phone Pro", SupplierID: supplier.ID, Quantity: 8, Price: 1999,
		CategoryID: &category.ID,
	})
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}

	got, _ := GetItem(ctx, database, item.ID)
	if got.Name != "Test Phone Pro" || got.Quantity != 8 || got.Price != 1999 {
		t.Errorf("unexpected fields after update: %+v", got)
	}
	if got.CategoryName != "Phone" {
		t.Errorf("expected joined category after update, got %q", got.CategoryName)
	}
}

func TestUpdateItemNotFound(t *testing.T) {
	database := db.NewTestDB(t)
	supplier, _ := newItemFixtures(t, database)

	err := UpdateItem(context.Background(), database, 999, ItemFields{
		Name: "Ghost", SupplierID: supplier.ID, Quantity: 1, Price: 1,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	supplier, _ := newItemFixtures(t, database)

	item, _ := CreateItem(ctx, database, ItemFields{
		Name: "Test Phone", SupplierID: supplier.ID, Quantity: 5, Price: 999,
	})

	if err := DeleteItem(ctx, database, item.ID); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}

	got, _ := GetItem(ctx, database, item.ID)
	if got != nil {
		t.Errorf("expected item gone after delete, got %+v", got)
	}

	if err := DeleteItem(ctx, database, item.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestCountItems(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	supplier, _ := newItemFixtures(t, database)

	count, _ := CountItems(ctx, database)
	if count != 0 {
		t.Errorf("expected 0, got %d", count)
	}

	CreateItem(ctx, database, ItemFields{Name: "A", SupplierID: supplier.ID, Quantity: 1, Price: 1})
	CreateItem(ctx, database, ItemFields{Name: "B", SupplierID: supplier.ID, Quantity: 1, Price: 1})

	count, _ = CountItems(ctx, database)
	if count != 2 {
		t.Errorf("expected 2, got %d", count)
	}
}
