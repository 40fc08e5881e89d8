package entity

// Store is a retail location carrying products through its PriceLists.
type Store struct {
	ID   int64
	Name string
	City string
}
