package ports

import (
	"context"

	"github.com/akazantsev/pricewatch/internal/domain/repository"
)

// RepoSet bundles the record-store ports bound to a single unit of work.
type RepoSet struct {
	Categories    repository.CategoryRepository
	Subcategories repository.SubcategoryRepository
	Products      repository.ProductRepository
	PriceLists    repository.PriceListRepository
	Prices        repository.PriceRepository
	Stores        repository.StoreRepository
}

// TxRunner executes fn inside one atomic transaction. Every repository in the
// RepoSet passed to fn writes through that transaction; returning an error
// rolls everything back.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx RepoSet) error) error
}
