package model

import "fmt"

// Category groups items. Names are unique and at least three characters.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// URL returns the detail page path for the category. Derived from the id at
// read time, never stored.
func (c *Category) URL() string {
	return fmt.Sprintf("/catalog/category/%d", c.ID)
}
