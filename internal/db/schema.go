package db

import (
	"database/sql"
	"fmt"
)

// schema is the full catalog schema. Name uniqueness and minimum lengths are
// enforced here as well as in the validation layer, and both foreign keys
// restrict deletion while items reference them.
const schema = `
CREATE TABLE IF NOT EXISTS category (
    category_id   INTEGER PRIMARY KEY,
    category_name TEXT NOT NULL UNIQUE CHECK (length(category_name) >= 3)
);

CREATE TABLE IF NOT EXISTS supplier (
    supplier_id         INTEGER PRIMARY KEY,
    supplier_name       TEXT NOT NULL UNIQUE CHECK (length(supplier_name) >= 3),
    address             TEXT NOT NULL,
    contact_number      TEXT,
    registration_number INTEGER
);

CREATE TABLE IF NOT EXISTS item (
    item_id     INTEGER PRIMARY KEY,
    item_name   TEXT NOT NULL,
    supplier_id INTEGER NOT NULL REFERENCES supplier (supplier_id) ON DELETE RESTRICT,
    quantity    INTEGER NOT NULL,
    price       INTEGER NOT NULL,
    category_id INTEGER REFERENCES category (category_id) ON DELETE RESTRICT,
    image_url   TEXT
);

CREATE INDEX IF NOT EXISTS idx_item_supplier ON item(supplier_id);
CREATE INDEX IF NOT EXISTS idx_item_category ON item(category_id);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
