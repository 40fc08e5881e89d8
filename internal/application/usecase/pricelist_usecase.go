package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/akazantsev/pricewatch/internal/application/dto"
	"github.com/akazantsev/pricewatch/internal/application/ports"
	"github.com/akazantsev/pricewatch/internal/application/pricing"
	"github.com/akazantsev/pricewatch/internal/domain"
	"github.com/akazantsev/pricewatch/internal/domain/entity"
	"github.com/akazantsev/pricewatch/internal/domain/repository"
)

// PriceListUseCase covers per-(store, product) pricing records, their history,
// and the comparison queries.
type PriceListUseCase struct {
	priceLists repository.PriceListRepository
	prices     repository.PriceRepository
	products   repository.ProductRepository
	stores     repository.StoreRepository
	tx         ports.TxRunner
}

// NewPriceListUseCase wires the use case.
func NewPriceListUseCase(
	priceLists repository.PriceListRepository,
	prices repository.PriceRepository,
	products repository.ProductRepository,
	stores repository.StoreRepository,
	tx ports.TxRunner,
) *PriceListUseCase {
	return &PriceListUseCase{
		priceLists: priceLists,
		prices:     prices,
		products:   products,
		stores:     stores,
		tx:         tx,
	}
}

// ToDTO maps a price list with its full history and the carrying store's name.
func (uc *PriceListUseCase) ToDTO(pl *entity.PriceList) (dto.PriceListDTO, error) {
	history, err := uc.prices.ListByPriceList(pl.ID)
	if err != nil {
		return dto.PriceListDTO{}, fmt.Errorf("list price history: %w", err)
	}
	return uc.assemble(pl, history)
}

func (uc *PriceListUseCase) assemble(pl *entity.PriceList, history []*entity.Price) (dto.PriceListDTO, error) {
	store, err := uc.stores.GetByID(pl.StoreID)
	if err != nil {
		return dto.PriceListDTO{}, fmt.Errorf("get store: %w", err)
	}
	storeName := ""
	if store != nil {
		storeName = store.Name
	}
	historyDTOs := make([]dto.PriceDTO, 0, len(history))
	for _, p := range history {
		historyDTOs = append(historyDTOs, priceToDTO(p))
	}
	return dto.PriceListDTO{
		ID:           pl.ID,
		StoreID:      pl.StoreID,
		StoreName:    storeName,
		ProductID:    pl.ProductID,
		CurrentPrice: pl.CurrentPrice,
		PriceHistory: historyDTOs,
	}, nil
}

// fromDTO resolves the transfer shape. With a non-empty history the current
// price is overridden by the derivation, ignoring whatever the caller sent; an
// empty history uses the supplied current price verbatim, normalized.
func (uc *PriceListUseCase) fromDTO(in dto.PriceListDTO) (*entity.PriceList, []*entity.Price, error) {
	if err := validateID("store", in.StoreID, uc.stores.ExistsByID); err != nil {
		return nil, nil, err
	}
	if err := validateID("product", in.ProductID, uc.products.ExistsByID); err != nil {
		return nil, nil, err
	}

	history := make([]*entity.Price, 0, len(in.PriceHistory))
	for _, h := range in.PriceHistory {
		history = append(history, &entity.Price{
			ID:          h.ID,
			PriceListID: in.ID,
			Price:       pricing.Normalize(h.Price),
			Date:        entity.DateOf(h.Date),
		})
	}

	pl := &entity.PriceList{ID: in.ID, StoreID: in.StoreID, ProductID: in.ProductID}
	if len(history) > 0 {
		current, err := pricing.CurrentPrice(history)
		if err != nil {
			return nil, nil, err
		}
		pl.CurrentPrice = current
	} else {
		pl.CurrentPrice = pricing.Normalize(in.CurrentPrice)
	}
	return pl, history, nil
}

// Create persists a new price list and its history entries atomically.
func (uc *PriceListUseCase) Create(ctx context.Context, in dto.PriceListDTO) (dto.PriceListDTO, error) {
	if err := requireNewID("priceList", in.ID); err != nil {
		return dto.PriceListDTO{}, err
	}
	pl, history, err := uc.fromDTO(in)
	if err != nil {
		return dto.PriceListDTO{}, err
	}
	err = uc.tx.Run(ctx, func(tx ports.RepoSet) error {
		if err := tx.PriceLists.Create(pl); err != nil {
			return fmt.Errorf("create price list: %w", err)
		}
		for _, h := range history {
			h.ID = 0
			h.PriceListID = pl.ID
			if err := tx.Prices.Create(h); err != nil {
				return fmt.Errorf("create price entry: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return dto.PriceListDTO{}, err
	}
	return uc.FindByID(ctx, pl.ID)
}

// FindAll returns every price list with history.
func (uc *PriceListUseCase) FindAll(ctx context.Context) ([]dto.PriceListDTO, error) {
	list, err := uc.priceLists.ListAll()
	if err != nil {
		return nil, fmt.Errorf("list price lists: %w", err)
	}
	out := make([]dto.PriceListDTO, 0, len(list))
	for _, pl := range list {
		d, err := uc.ToDTO(pl)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// FindByID loads one price list with history.
func (uc *PriceListUseCase) FindByID(ctx context.Context, id int64) (dto.PriceListDTO, error) {
	pl, err := uc.priceLists.GetByID(id)
	if err != nil {
		return dto.PriceListDTO{}, fmt.Errorf("get price list: %w", err)
	}
	if pl == nil {
		return dto.PriceListDTO{}, fmt.Errorf("%w: priceList not found with id %d", domain.ErrNotFound, id)
	}
	return uc.ToDTO(pl)
}

// Update overwrites the price list. The payload's history replaces the
// stored history wholesale: a non-empty one re-derives the current price, an
// empty one clears the stored history and takes the supplied current price
// verbatim. The current price therefore always matches the latest stored
// entry when any remain.
func (uc *PriceListUseCase) Update(ctx context.Context, in dto.PriceListDTO) (dto.PriceListDTO, error) {
	if err := validateID("priceList", in.ID, uc.priceLists.ExistsByID); err != nil {
		return dto.PriceListDTO{}, err
	}
	pl, history, err := uc.fromDTO(in)
	if err != nil {
		return dto.PriceListDTO{}, err
	}
	err = uc.tx.Run(ctx, func(tx ports.RepoSet) error {
		if err := tx.PriceLists.Update(pl); err != nil {
			return fmt.Errorf("update price list: %w", err)
		}
		if err := tx.Prices.DeleteByPriceList(pl.ID); err != nil {
			return fmt.Errorf("clear price history: %w", err)
		}
		for _, h := range history {
			h.ID = 0
			h.PriceListID = pl.ID
			if err := tx.Prices.Create(h); err != nil {
				return fmt.Errorf("create price entry: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return dto.PriceListDTO{}, err
	}
	return uc.FindByID(ctx, in.ID)
}

// Delete removes the price list and its history.
func (uc *PriceListUseCase) Delete(ctx context.Context, id int64) error {
	if err := validateID("priceList", id, uc.priceLists.ExistsByID); err != nil {
		return err
	}
	if err := uc.priceLists.Delete(id); err != nil {
		return fmt.Errorf("delete price list: %w", err)
	}
	return nil
}

// Compare returns the price lists of the given products, one per store
// carrying the product, optionally restricted to a set of stores. An empty
// match set is NotFound.
func (uc *PriceListUseCase) Compare(ctx context.Context, in dto.PriceComparisonRequest) ([]dto.PriceListDTO, error) {
	list, err := uc.findForComparison(in.ProductIDs, in.StoreIDs)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PriceListDTO, 0, len(list))
	for _, pl := range list {
		d, err := uc.ToDTO(pl)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// CompareDynamics is Compare with each history restricted to the inclusive
// [start, end] window, newest first. A price list with no entries in the
// window still appears, with an empty history.
func (uc *PriceListUseCase) CompareDynamics(ctx context.Context, in dto.PriceDynamicsRequest) ([]dto.PriceListDTO, error) {
	start := entity.DateOf(in.StartDate)
	end := entity.DateOf(in.EndDate)
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end_date %s is before start_date %s",
			domain.ErrBadRequest, end.Format(time.DateOnly), start.Format(time.DateOnly))
	}
	list, err := uc.findForComparison(in.ProductIDs, in.StoreIDs)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PriceListDTO, 0, len(list))
	for _, pl := range list {
		window, err := uc.prices.ListByPriceListBetween(pl.ID, start, end)
		if err != nil {
			return nil, fmt.Errorf("list price history window: %w", err)
		}
		d, err := uc.assemble(pl, window)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (uc *PriceListUseCase) findForComparison(productIDs, storeIDs []int64) ([]*entity.PriceList, error) {
	if len(productIDs) == 0 {
		return nil, fmt.Errorf("%w: product_ids is required", domain.ErrBadRequest)
	}
	var (
		list []*entity.PriceList
		err  error
	)
	if len(storeIDs) > 0 {
		list, err = uc.priceLists.ListByProductsAndStores(productIDs, storeIDs)
	} else {
		list, err = uc.priceLists.ListByProducts(productIDs)
	}
	if err != nil {
		return nil, fmt.Errorf("list price lists: %w", err)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: priceLists not found with productsId %v and storesId %v",
			domain.ErrNotFound, productIDs, storeIDs)
	}
	return list, nil
}

// RecomputeCurrentPrice reloads the full history, derives the current price,
// and persists it in one transaction.
func (uc *PriceListUseCase) RecomputeCurrentPrice(ctx context.Context, id int64) error {
	if err := validateID("priceList", id, uc.priceLists.ExistsByID); err != nil {
		return err
	}
	return uc.tx.Run(ctx, func(tx ports.RepoSet) error {
		return pricing.Recompute(tx.PriceLists, tx.Prices, id)
	})
}

// ValidateID exposes the identity check to collaborators.
func (uc *PriceListUseCase) ValidateID(id int64) error {
	return validateID("priceList", id, uc.priceLists.ExistsByID)
}
