package repository

import "github.com/akazantsev/pricewatch/internal/domain/entity"

// CategoryRepository is the persistence port for Category.
// Get methods return (nil, nil) when no record matches.
type CategoryRepository interface {
	Create(c *entity.Category) error // assigns c.ID
	GetByID(id int64) (*entity.Category, error)
	GetByName(name string) (*entity.Category, error)
	ExistsByID(id int64) (bool, error)
	ListAll() ([]*entity.Category, error) // name ascending
	Update(c *entity.Category) error
	Delete(id int64) error // cascades to subcategories, products, price lists, prices
}
