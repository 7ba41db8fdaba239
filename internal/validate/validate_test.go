package validate

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategory(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		wantName  string
		wantError bool
	}{
		{"too short", "TV", "", true},
		{"minimum length", "LED", "LED", false},
		{"trims whitespace", "  Phone  ", "Phone", false},
		{"whitespace only", "   ", "", true},
		{"empty", "", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			in, errs := Category(url.Values{"name": {tc.input}})
			if tc.wantError {
				assert.True(t, errs.Has("name"))
			} else {
				assert.Empty(t, errs)
				assert.Equal(t, tc.wantName, in.Name)
			}
		})
	}
}

func TestSupplier(t *testing.T) {
	valid := url.Values{
		"name":    {"AAA Electronics"},
		"address": {"1 Jln A"},
	}

	in, errs := Supplier(valid)
	assert.Empty(t, errs)
	assert.Equal(t, "AAA Electronics", in.Name)
	assert.Equal(t, "1 Jln A", in.Address)
	assert.Nil(t, in.RegistrationNumber)
}

func TestSupplierRegistrationNumber(t *testing.T) {
	base := url.Values{
		"name":    {"AAA Electronics"},
		"address": {"1 Jln A"},
	}

	// Absent passes (optional).
	_, errs := Supplier(base)
	assert.False(t, errs.Has("registration_number"))

	// Non-numeric fails.
	base.Set("registration_number", "12A4")
	_, errs = Supplier(base)
	assert.True(t, errs.Has("registration_number"))

	// All-numeric parses.
	base.Set("registration_number", "10001234")
	in, errs := Supplier(base)
	assert.Empty(t, errs)
	if assert.NotNil(t, in.RegistrationNumber) {
		assert.Equal(t, int64(10001234), *in.RegistrationNumber)
	}
}

func TestSupplierCollectsAllErrors(t *testing.T) {
	_, errs := Supplier(url.Values{
		"name":                {"AB"},
		"address":             {""},
		"registration_number": {"12A4"},
	})

	assert.Len(t, errs, 3)
	assert.True(t, errs.Has("name"))
	assert.True(t, errs.Has("address"))
	assert.True(t, errs.Has("registration_number"))
}

func TestItem(t *testing.T) {
	in, errs := Item(url.Values{
		"name":     {"Test Phone"},
		"supplier": {"1"},
		"quantity": {"5"},
		"price":    {"999"},
		"category": {"2"},
	})

	assert.Empty(t, errs)
	assert.Equal(t, "Test Phone", in.Name)
	assert.Equal(t, int64(1), in.SupplierID)
	assert.Equal(t, int64(5), in.Quantity)
	assert.Equal(t, int64(999), in.Price)
	assert.Equal(t, int64(2), in.CategoryID)
}

func TestItemMissingCategory(t *testing.T) {
	_, errs := Item(url.Values{
		"name":     {"Test Phone"},
		"supplier": {"1"},
		"quantity": {"5"},
		"price":    {"999"},
		"category": {""},
	})

	assert.True(t, errs.Has("category"))
	assert.False(t, errs.Has("name"))
}

func TestItemNonNumericFields(t *testing.T) {
	_, errs := Item(url.Values{
		"name":     {"Test Phone"},
		"supplier": {"1"},
		"quantity": {"five"},
		"price":    {"9.99"},
		"category": {"2"},
	})

	assert.True(t, errs.Has("quantity"))
	assert.True(t, errs.Has("price"))
}

func TestItemOutOfRangeNumbers(t *testing.T) {
	// All-digit values too large for int64 must be rejected, not clamped.
	in, errs := Item(url.Values{
		"name":     {"Test Phone"},
		"supplier": {"1"},
		"quantity": {"99999999999999999999"},
		"price":    {"99999999999999999999"},
		"category": {"2"},
	})

	assert.True(t, errs.Has("quantity"))
	assert.True(t, errs.Has("price"))
	assert.Zero(t, in.Quantity)
	assert.Zero(t, in.Price)
}

func TestItemCollectsAllErrors(t *testing.T) {
	_, errs := Item(url.Values{})
	assert.Len(t, errs, 5)
}
