// Package product holds the product catalog data model.
package product

// Product is a catalog entry.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
}

// State is the product store's state.
type State struct {
	Products []Product `json:"products"`
}

// Initial returns the empty catalog.
func Initial() State {
	return State{Products: []Product{}}
}

// Patch is a partial update of a Product. Nil fields are left unchanged.
// The ID is not patchable.
type Patch struct {
	Name        *string  `json:"name,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Description *string  `json:"description,omitempty"`
}

// Apply returns p with every non-nil field of the patch merged in.
func (pt Patch) Apply(p Product) Product {
	if pt.Name != nil {
		p.Name = *pt.Name
	}
	if pt.Price != nil {
		p.Price = *pt.Price
	}
	if pt.Description != nil {
		p.Description = *pt.Description
	}
	return p
}

// IsEmpty reports whether the patch changes nothing.
func (pt Patch) IsEmpty() bool {
	return pt.Name == nil && pt.Price == nil && pt.Description == nil
}
