package entity

// Product is a catalog item. It belongs to exactly one Subcategory and may be
// carried by any number of stores, one PriceList per store. PriceList ids are
// an association, not exclusive ownership: deleting a product removes its
// price lists and their history, but never a store.
type Product struct {
	ID            int64
	SubcategoryID int64
	Name          string
	Brand         string
	Quantity      int // positive amount in Unit
	Unit          Unit
	Manufacturer  string
}
