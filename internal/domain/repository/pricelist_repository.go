package repository

import (
	"github.com/shopspring/decimal"

	"github.com/akazantsev/pricewatch/internal/domain/entity"
)

// PriceListRepository is the persistence port for PriceList.
type PriceListRepository interface {
	Create(pl *entity.PriceList) error // assigns pl.ID
	GetByID(id int64) (*entity.PriceList, error)
	ExistsByID(id int64) (bool, error)
	ListAll() ([]*entity.PriceList, error)
	ListByProducts(productIDs []int64) ([]*entity.PriceList, error)
	ListByProductsAndStores(productIDs, storeIDs []int64) ([]*entity.PriceList, error)
	Update(pl *entity.PriceList) error
	UpdateCurrentPrice(id int64, price decimal.Decimal) error
	Delete(id int64) error // cascades to price history
}
