package repository

import "github.com/akazantsev/pricewatch/internal/domain/entity"

// ProductRepository is the persistence port for Product. Search methods match
// the keyword case-insensitively as a substring of name, brand or manufacturer
// (logically OR-ed); an empty keyword matches everything. Results are sorted
// by name in the requested direction.
type ProductRepository interface {
	Create(p *entity.Product) error // assigns p.ID
	GetByID(id int64) (*entity.Product, error)
	ExistsByID(id int64) (bool, error)
	SearchByKeyword(keyword string, asc bool) ([]*entity.Product, error)
	SearchByCategory(categoryName, keyword string, asc bool) ([]*entity.Product, error)
	SearchBySubcategory(subcategoryName, keyword string, asc bool) ([]*entity.Product, error)
	ListPriceListIDs(productID int64) ([]int64, error) // id ascending
	ReplacePriceLists(productID int64, priceListIDs []int64) error
	Update(p *entity.Product) error
	Delete(id int64) error // cascades to price lists and their history
}
