package db

import (
	"database/sql"
	"fmt"
)

// seedStatements insert the sample data set. Categories and suppliers come
// first so item foreign keys resolve.
var seedStatements = []string{
	`INSERT INTO category (category_name) VALUES
	    ('Tablet'),
	    ('Phone'),
	    ('Phone Case'),
	    ('Accessory'),
	    ('PowerBank'),
	    ('Earphone'),
	    ('Soundbar'),
	    ('Other')`,

	`INSERT INTO supplier (supplier_name, address, contact_number, registration_number) VALUES
	    ('AAA Electronics Supply Sdn Bhd', '13 AAA BBB Jln AAA PJ 01, 12345, Selangor, Malaysia', '03-1234 5678', 10001234),
	    ('BBB Trading Co Sdn Bhd', 'BBB Taman B, 12345, Selangor, Malaysia', '03-8888 8888', 10008888),
	    ('CCC DigitalsExpert Sdn Bhd', 'Digital A, 12345, Selangor, Malaysia', '03-6666 1111', 10001111),
	    ('DDD BerjayaToday Bhd', 'BerjayaToday Bhd Floor 43, KLCC, 12345, Kuala Lumpur, Malaysia', '03-8888 1234', 5555555)`,

	`INSERT INTO item (item_name, supplier_id, quantity, price, category_id) VALUES
	    ('Iphone 14 Pro', 1, 10, 500000, 2),
	    ('Iphone 15 Pro Max', 1, 10, 700000, 2),
	    ('Ipad 10th', 2, 5, 250000, 1),
	    ('Galaxy S24', 3, 8, 450000, 2),
	    ('Soundbar X100', 4, 3, 89900, 7),
	    ('PowerBank 20000mAh', 2, 25, 15900, 5)`,
}

// Seed populates an empty database with sample data. It refuses to run if
// any category already exists so repeated -seed invocations stay harmless.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM category`).Scan(&count); err != nil {
		return fmt.Errorf("checking for existing data: %w", err)
	}
	if count > 0 {
		return nil
	}

	for i, stmt := range seedStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("running seed statement %d: %w", i+1, err)
		}
	}
	return nil
}
