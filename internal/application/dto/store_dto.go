package dto

// StoreDTO is the transfer shape of a Store.
type StoreDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	City string `json:"city"`
}

// StoreSearchRequest filters stores by city and/or name.
type StoreSearchRequest struct {
	City          string `query:"city_name"`
	Name          string `query:"store_name"`
	SortDirection string `query:"sorting_direction"` // asc | desc, asc when empty
}
