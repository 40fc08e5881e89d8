package entity

// Category is the top level of the catalog hierarchy. It exclusively owns its
// Subcategories; deleting a category cascades through them.
type Category struct {
	ID   int64
	Name string // unique across the catalog
}
