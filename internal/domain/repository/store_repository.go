package repository

import "github.com/akazantsev/pricewatch/internal/domain/entity"

// StoreRepository is the persistence port for Store. Search filters by exact
// city and/or name match (case-insensitive); empty filters are ignored.
type StoreRepository interface {
	Create(s *entity.Store) error // assigns s.ID
	GetByID(id int64) (*entity.Store, error)
	ExistsByID(id int64) (bool, error)
	ListAll() ([]*entity.Store, error) // name ascending
	Search(city, name string, asc bool) ([]*entity.Store, error)
	Update(s *entity.Store) error
	Delete(id int64) error // cascades to the store's price lists
}
