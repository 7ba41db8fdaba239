package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/WongYC-66/odin-InventoryApplication-PostgreSQL/internal/model"
)

// CreateCategory inserts a new category and returns the stored record.
func CreateCategory(ctx context.Context, db *sql.DB, name string) (*model.Category, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO category (category_name) VALUES (?)`,
		name,
	)
	if err != nil {
		return nil, wrapWriteErr("creating category", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting category id: %w", err)
	}

	return GetCategory(ctx, db, id)
}

// GetCategory returns a category by ID, or nil if it does not exist.
func GetCategory(ctx context.Context, db *sql.DB, id int64) (*model.Category, error) {
	c := &model.Category{}
	err := db.QueryRowContext(ctx,
		`SELECT category_id, category_name FROM category WHERE category_id = ?`, id,
	).Scan(&c.ID, &c.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting category: %w", err)
	}
	return c, nil
}

// GetCategoryByName returns a category by exact (case-sensitive) name, or
// nil if none matches. Used for the idempotent-create-by-name check.
func GetCategoryByName(ctx context.Context, db *sql.DB, name string) (*model.Category, error) {
	c := &model.Category{}
	err := db.QueryRowContext(ctx,
		`SELECT category_id, category_name FROM category WHERE category_name = ?`, name,
	).Scan(&c.ID, &c.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting category by name: %w", err)
	}
	return c, nil
}

// ListCategories returns all categories sorted by name.
func ListCategories(ctx context.Context, db *sql.DB) ([]model.Category, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT category_id, category_name FROM category ORDER BY category_name`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// UpdateCategory renames a category. Returns ErrNotFound if no row matched.
func UpdateCategory(ctx context.Context, db *sql.DB, id int64, name string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE category SET category_name = ? WHERE category_id = ?`,
		name, id,
	)
	if err != nil {
		return wrapWriteErr("updating category", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating category: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("updating category: %w", ErrNotFound)
	}
	return nil
}

// DeleteCategory deletes a category unless items still reference it. The
// dependent check and the delete are a single statement, so there is no
// window between them.
func DeleteCategory(ctx context.Context, db *sql.DB, id int64) error {
	result, err := db.ExecContext(ctx,
		`DELETE FROM category
		 WHERE category_id = ?
		   AND NOT EXISTS (SELECT 1 FROM item WHERE item.category_id = category.category_id)`,
		id,
	)
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}
	if n > 0 {
		return nil
	}

	// Nothing deleted: either the category is referenced or it never existed.
	var dependents int
	err = db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM item WHERE category_id = ?`, id,
	).Scan(&dependents)
	if err != nil {
		return fmt.Errorf("checking category dependents: %w", err)
	}
	if dependents > 0 {
		return fmt.Errorf("deleting category: %w", ErrHasDependents)
	}
	return fmt.Errorf("deleting category: %w", ErrNotFound)
}

// CountCategories returns the total number of categories.
func CountCategories(ctx context.Context, db *sql.DB) (int64, error) {
	var count int64
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM category`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting categories: %w", err)
	}
	return count, nil
}
