package model

import "fmt"

// Supplier is a company items are sourced from. Names are unique.
type Supplier struct {
	ID                 int64  `json:"id"`
	Name               string `json:"name"`
	Address            string `json:"address"`
	ContactNumber      string `json:"contact_number,omitempty"`
	RegistrationNumber *int64 `json:"registration_number,omitempty"`
}

// URL returns the detail page path for the supplier.
func (s *Supplier) URL() string {
	return fmt.Sprintf("/catalog/supplier/%d", s.ID)
}
