package dto

// CategoryDTO is the transfer shape of a Category. The subcategory list is
// carried in full, recursively: category views are whole-tree browse views.
type CategoryDTO struct {
	ID            int64            `json:"id"`
	Name          string           `json:"name"`
	Subcategories []SubcategoryDTO `json:"subcategories"`
}

// SubcategoryDTO is the transfer shape of a Subcategory. Child products are
// carried by id only, to keep payloads bounded.
type SubcategoryDTO struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	CategoryID int64   `json:"category_id"`
	ProductIDs []int64 `json:"product_ids"`
}
