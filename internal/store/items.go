package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/WongYC-66/odin-InventoryApplication-PostgreSQL/internal/model"
)

// itemSelect is the denormalized item read: supplier and category names are
// joined in so list and detail pages never need a second lookup. Category is
// a LEFT JOIN because older rows may carry none.
const itemSelect = `
	SELECT i.item_id, i.item_name, i.supplier_id, i.quantity, i.price,
	       i.category_id, i.image_url, s.supplier_name, c.category_name
	FROM item i
	LEFT JOIN supplier s ON s.supplier_id = i.supplier_id
	LEFT JOIN category c ON c.category_id = i.category_id`

// ItemFields are the writable columns of an item.
type ItemFields struct {
	Name       string
	SupplierID int64
	Quantity   int64
	Price      int64
	CategoryID *int64
	ImageURL   string
}

// CreateItem inserts a new item and returns the stored, denormalized record.
// Returns ErrInvalidReference if the supplier or category does not exist.
func CreateItem(ctx context.Context, db *sql.DB, f ItemFields) (*model.Item, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO item (item_name, supplier_id, quantity, price, category_id, image_url)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		f.Name, f.SupplierID, f.Quantity, f.Price, nullInt(f.CategoryID), nullString(f.ImageURL),
	)
	if err != nil {
		return nil, wrapWriteErr("creating item", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting item id: %w", err)
	}

	return GetItem(ctx, db, id)
}

// GetItem returns a denormalized item by ID, or nil if it does not exist.
func GetItem(ctx context.Context, db *sql.DB, id int64) (*model.Item, error) {
	row := db.QueryRowContext(ctx, itemSelect+` WHERE i.item_id = ?`, id)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// ListItems returns all items sorted by name, with supplier and category
// names joined in.
func ListItems(ctx context.Context, db *sql.DB) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx, itemSelect+` ORDER BY i.item_name`)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

// ListItemsBySupplier returns all items referencing a supplier, sorted by
// name.
func ListItemsBySupplier(ctx context.Context, db *sql.DB, supplierID int64) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx,
		itemSelect+` WHERE i.supplier_id = ? ORDER BY i.item_name`, supplierID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items by supplier: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

// ListItemsByCategory returns all items referencing a category, sorted by
// name.
func ListItemsByCategory(ctx context.Context, db *sql.DB, categoryID int64) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx,
		itemSelect+` WHERE i.category_id = ? ORDER BY i.item_name`, categoryID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items by category: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

// UpdateItem overwrites an item's fields. Returns ErrNotFound if no row
// matched, ErrInvalidReference if a reference does not exist.
func UpdateItem(ctx context.Context, db *sql.DB, id int64, f ItemFields) error {
	result, err := db.ExecContext(ctx,
		`UPDATE item
		 SET item_name = ?, supplier_id = ?, quantity = ?, price = ?, category_id = ?, image_url = ?
		 WHERE item_id = ?`,
		f.Name, f.SupplierID, f.Quantity, f.Price, nullInt(f.CategoryID), nullString(f.ImageURL), id,
	)
	if err != nil {
		return wrapWriteErr("updating item", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("updating item: %w", ErrNotFound)
	}
	return nil
}

// DeleteItem deletes an item. Items have no dependents, so deletion is
// unconditional. Returns ErrNotFound if no row matched.
func DeleteItem(ctx context.Context, db *sql.DB, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM item WHERE item_id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("deleting item: %w", ErrNotFound)
	}
	return nil
}

// CountItems returns the total number of items.
func CountItems(ctx context.Context, db *sql.DB) (int64, error) {
	var count int64
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM item`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting items: %w", err)
	}
	return count, nil
}

// scanItem reads one denormalized item row.
func scanItem(row interface{ Scan(...any) error }) (*model.Item, error) {
	item := &model.Item{}
	var categoryID sql.NullInt64
	var imageURL, supplierName, categoryName sql.NullString
	err := row.Scan(&item.ID, &item.Name, &item.SupplierID, &item.Quantity, &item.Price,
		&categoryID, &imageURL, &supplierName, &categoryName)
	if err != nil {
		return nil, err
	}
	if categoryID.Valid {
		item.CategoryID = &categoryID.Int64
	}
	item.ImageURL = imageURL.String
	item.SupplierName = supplierName.String
	item.CategoryName = categoryName.String
	return item, nil
}

func collectItems(rows *sql.Rows) ([]model.Item, error) {
	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}
