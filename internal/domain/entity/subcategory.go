package entity

// Subcategory belongs to exactly one Category and exclusively owns its
// Products. The parent is held by id only; product membership is resolved
// through the repository, never via back-pointers.
type Subcategory struct {
	ID         int64
	Name       string // unique
	CategoryID int64
}
