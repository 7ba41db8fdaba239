package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/WongYC-66/odin-InventoryApplication-PostgreSQL/internal/model"
)

const supplierColumns = `supplier_id, supplier_name, address, contact_number, registration_number`

// CreateSupplier inserts a new supplier and returns the stored record.
func CreateSupplier(ctx context.Context, db *sql.DB, name, address, contactNumber string, registrationNumber *int64) (*model.Supplier, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO supplier (supplier_name, address, contact_number, registration_number)
		 VALUES (?, ?, ?, ?)`,
		name, address, nullString(contactNumber), nullInt(registrationNumber),
	)
	if err != nil {
		return nil, wrapWriteErr("creating supplier", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting supplier id: %w", err)
	}

	return GetSupplier(ctx, db, id)
}

// GetSupplier returns a supplier by ID, or nil if it does not exist.
func GetSupplier(ctx context.Context, db *sql.DB, id int64) (*model.Supplier, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+supplierColumns+` FROM supplier WHERE supplier_id = ?`, id,
	)
	s, err := scanSupplier(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting supplier: %w", err)
	}
	return s, nil
}

// GetSupplierByName returns a supplier by exact (case-sensitive) name, or
// nil if none matches.
func GetSupplierByName(ctx context.Context, db *sql.DB, name string) (*model.Supplier, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+supplierColumns+` FROM supplier WHERE supplier_name = ?`, name,
	)
	s, err := scanSupplier(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting supplier by name: %w", err)
	}
	return s, nil
}

// ListSuppliers returns all suppliers sorted by name.
func ListSuppliers(ctx context.Context, db *sql.DB) ([]model.Supplier, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+supplierColumns+` FROM supplier ORDER BY supplier_name`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing suppliers: %w", err)
	}
	defer rows.Close()

	var suppliers []model.Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning supplier: %w", err)
		}
		suppliers = append(suppliers, *s)
	}
	return suppliers, rows.Err()
}

// UpdateSupplier overwrites a supplier's fields. Returns ErrNotFound if no
// row matched.
func UpdateSupplier(ctx context.Context, db *sql.DB, id int64, name, address, contactNumber string, registrationNumber *int64) error {
	result, err := db.ExecContext(ctx,
		`UPDATE supplier
		 SET supplier_name = ?, address = ?, contact_number = ?, registration_number = ?
		 WHERE supplier_id = ?`,
		name, address, nullString(contactNumber), nullInt(registrationNumber), id,
	)
	if err != nil {
		return wrapWriteErr("updating supplier", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating supplier: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("updating supplier: %w", ErrNotFound)
	}
	return nil
}

// DeleteSupplier deletes a supplier unless items still reference it, in a
// single conditional statement.
func DeleteSupplier(ctx context.Context, db *sql.DB, id int64) error {
	result, err := db.ExecContext(ctx,
		`DELETE FROM supplier
		 WHERE supplier_id = ?
		   AND NOT EXISTS (SELECT 1 FROM item WHERE item.supplier_id = supplier.supplier_id)`,
		id,
	)
	if err != nil {
		return fmt.Errorf("deleting supplier: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting supplier: %w", err)
	}
	if n > 0 {
		return nil
	}

	var dependents int
	err = db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM item WHERE supplier_id = ?`, id,
	).Scan(&dependents)
	if err != nil {
		return fmt.Errorf("checking supplier dependents: %w", err)
	}
	if dependents > 0 {
		return fmt.Errorf("deleting supplier: %w", ErrHasDependents)
	}
	return fmt.Errorf("deleting supplier: %w", ErrNotFound)
}

// CountSuppliers returns the total number of suppliers.
func CountSuppliers(ctx context.Context, db *sql.DB) (int64, error) {
	var count int64
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM supplier`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting suppliers: %w", err)
	}
	return count, nil
}

// scanSupplier reads one supplier row, folding nullable columns.
func scanSupplier(row interface{ Scan(...any) error }) (*model.Supplier, error) {
	s := &model.Supplier{}
	var contact sql.NullString
	var reg sql.NullInt64
	if err := row.Scan(&s.ID, &s.Name, &s.Address, &contact, &reg); err != nil {
		return nil, err
	}
	s.ContactNumber = contact.String
	if reg.Valid {
		s.RegistrationNumber = &reg.Int64
	}
	return s, nil
}

// nullString maps "" to NULL so optional columns stay NULL rather than
// storing empty strings.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}
