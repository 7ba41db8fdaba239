// Package validate checks and normalizes raw form input before it reaches
// the store. Each function inspects every field and returns all violations
// at once; nothing short-circuits. Values are trimmed but never escaped —
// escaping happens at render time via html/template.
package validate

import (
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"
)

// FieldError describes a single validation failure.
type FieldError struct {
	Field   string
	Message string
}

// Errors is an ordered list of field errors.
type Errors []FieldError

// Has reports whether any error exists for the given field.
func (e Errors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// CategoryInput is a normalized category form submission.
type CategoryInput struct {
	Name string
}

// SupplierInput is a normalized supplier form submission.
type SupplierInput struct {
	Name               string
	Address            string
	ContactNumber      string
	RegistrationNumber *int64
}

// ItemInput is a normalized item form submission.
type ItemInput struct {
	Name       string
	SupplierID int64
	Quantity   int64
	Price      int64
	CategoryID int64
	ImageURL   string
}

// Category validates a category form.
func Category(form url.Values) (CategoryInput, Errors) {
	var errs Errors

	name := strings.TrimSpace(form.Get("name"))
	if utf8.RuneCountInString(name) < 3 {
		errs = append(errs, FieldError{"name", "Category name must contain at least 3 characters"})
	}

	return CategoryInput{Name: name}, errs
}

// Supplier validates a supplier form.
func Supplier(form url.Values) (SupplierInput, Errors) {
	var errs Errors

	in := SupplierInput{
		Name:          strings.TrimSpace(form.Get("name")),
		Address:       strings.TrimSpace(form.Get("address")),
		ContactNumber: strings.TrimSpace(form.Get("contact_number")),
	}

	if n := utf8.RuneCountInString(in.Name); n < 3 || n > 50 {
		errs = append(errs, FieldError{"name", "Supplier name must be between 3 - 50 characters"})
	}
	if n := utf8.RuneCountInString(in.Address); n < 1 || n > 100 {
		errs = append(errs, FieldError{"address", "Address must be between 1 - 100 characters"})
	}

	// Registration number is optional, but must be all-numeric if present.
	if reg := strings.TrimSpace(form.Get("registration_number")); reg != "" {
		if !isNumeric(reg) {
			errs = append(errs, FieldError{"registration_number", "Registration number has non-numeric characters"})
		} else if v, err := strconv.ParseInt(reg, 10, 64); err != nil {
			errs = append(errs, FieldError{"registration_number", "Registration number is out of range"})
		} else {
			in.RegistrationNumber = &v
		}
	}

	return in, errs
}

// Item validates an item form. Supplier and category ids are checked for
// presence and shape only; whether they reference existing records is the
// store's concern at write time.
func Item(form url.Values) (ItemInput, Errors) {
	var errs Errors

	in := ItemInput{
		Name:     strings.TrimSpace(form.Get("name")),
		ImageURL: strings.TrimSpace(form.Get("image_url")),
	}

	if in.Name == "" {
		errs = append(errs, FieldError{"name", "Name must not be empty"})
	}

	in.SupplierID, errs = requiredID(form, "supplier", "Supplier", errs)

	if qty := strings.TrimSpace(form.Get("quantity")); qty == "" {
		errs = append(errs, FieldError{"quantity", "Quantity must not be empty"})
	} else if !isNumeric(qty) {
		errs = append(errs, FieldError{"quantity", "Quantity has non-numeric characters"})
	} else if v, err := strconv.ParseInt(qty, 10, 64); err != nil {
		errs = append(errs, FieldError{"quantity", "Quantity is out of range"})
	} else {
		in.Quantity = v
	}

	if price := strings.TrimSpace(form.Get("price")); price == "" {
		errs = append(errs, FieldError{"price", "Price must not be empty"})
	} else if !isNumeric(price) {
		errs = append(errs, FieldError{"price", "Price has non-numeric characters"})
	} else if v, err := strconv.ParseInt(price, 10, 64); err != nil {
		errs = append(errs, FieldError{"price", "Price is out of range"})
	} else {
		in.Price = v
	}

	in.CategoryID, errs = requiredID(form, "category", "Category", errs)

	return in, errs
}

// requiredID parses a mandatory reference field.
func requiredID(form url.Values, field, label string, errs Errors) (int64, Errors) {
	raw := strings.TrimSpace(form.Get(field))
	if raw == "" {
		return 0, append(errs, FieldError{field, label + " must not be empty"})
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, append(errs, FieldError{field, label + " is invalid"})
	}
	return id, errs
}

// isNumeric reports whether s consists solely of ASCII digits.
func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
