package dto

// ProductDTO is the transfer shape of a Product. Price lists are carried by id
// only; attaching them is a separate update operation, never part of create.
type ProductDTO struct {
	ID            int64   `json:"id"`
	SubcategoryID int64   `json:"subcategory_id"`
	Name          string  `json:"name"`
	Brand         string  `json:"brand"`
	Quantity      int     `json:"quantity"`
	Unit          string  `json:"unit"`
	Manufacturer  string  `json:"manufacturer"`
	PriceListIDs  []int64 `json:"price_list_ids"`
}

// ProductSearchRequest filters the product search. CategoryName and
// SubcategoryName are mutually exclusive.
type ProductSearchRequest struct {
	Keyword         string `query:"search_keyword"`
	CategoryName    string `query:"category_name"`
	SubcategoryName string `query:"subcategory_name"`
	SortDirection   string `query:"sorting_direction"` // asc | desc, asc when empty
}
