package repository

import "github.com/akazantsev/pricewatch/internal/domain/entity"

// SubcategoryRepository is the persistence port for Subcategory. Product
// membership is stored on the product side (products.subcategory_id); the
// replace method detaches products dropped from the list without deleting them.
type SubcategoryRepository interface {
	Create(s *entity.Subcategory) error // assigns s.ID
	GetByID(id int64) (*entity.Subcategory, error)
	ExistsByID(id int64) (bool, error)
	ListAll() ([]*entity.Subcategory, error)                // name ascending
	ListByCategory(categoryID int64) ([]*entity.Subcategory, error) // name ascending
	ListProductIDs(subcategoryID int64) ([]int64, error)    // id ascending
	ReplaceProductMembership(subcategoryID int64, productIDs []int64) error
	Update(s *entity.Subcategory) error
	Delete(id int64) error // cascades to products and their price lists
}
