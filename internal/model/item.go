package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Item is a stocked product. It references exactly one supplier and at most
// one category; both references restrict deletion of their targets.
type Item struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	SupplierID int64  `json:"supplier_id"`
	Quantity   int64  `json:"quantity"`
	Price      int64  `json:"price"` // minor currency units
	CategoryID *int64 `json:"category_id,omitempty"`
	ImageURL   string `json:"image_url,omitempty"`

	// Joined fields (not always populated).
	SupplierName string `json:"supplier_name,omitempty"`
	CategoryName string `json:"category_name,omitempty"`
}

// URL returns the detail page path for the item.
func (i *Item) URL() string {
	return fmt.Sprintf("/catalog/item/%d", i.ID)
}

// SupplierURL returns the detail page path for the item's supplier.
func (i *Item) SupplierURL() string {
	return fmt.Sprintf("/catalog/supplier/%d", i.SupplierID)
}

// CategoryURL returns the detail page path for the item's category, or an
// empty string if the item has none.
func (i *Item) CategoryURL() string {
	if i.CategoryID == nil {
		return ""
	}
	return fmt.Sprintf("/catalog/category/%d", *i.CategoryID)
}

// DisplayPrice renders the stored minor-unit price as a fixed two-place
// decimal, e.g. 500000 -> "5000.00".
func (i *Item) DisplayPrice() string {
	return decimal.New(i.Price, -2).StringFixed(2)
}
