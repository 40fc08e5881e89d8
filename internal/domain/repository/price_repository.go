package repository

import (
	"time"

	"github.com/akazantsev/pricewatch/internal/domain/entity"
)

// PriceRepository is the persistence port for Price history entries.
// ListByPriceList returns entries in insertion order (id ascending); the
// pricing engine's tie-break depends on that order.
type PriceRepository interface {
	Create(p *entity.Price) error // assigns p.ID
	GetByID(id int64) (*entity.Price, error)
	ExistsByID(id int64) (bool, error)
	ListByPriceList(priceListID int64) ([]*entity.Price, error)
	ListByPriceListBetween(priceListID int64, start, end time.Time) ([]*entity.Price, error) // date descending, inclusive window
	Update(p *entity.Price) error
	Delete(id int64) error
	DeleteByPriceList(priceListID int64) error
}
