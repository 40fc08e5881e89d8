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

// PriceUseCase covers single price-history entries. Every mutation re-derives
// the owning price list's current price inside the same transaction, so a
// caller cannot mutate history without the derived price following.
type PriceUseCase struct {
	prices     repository.PriceRepository
	priceLists repository.PriceListRepository
	tx         ports.TxRunner
}

// NewPriceUseCase wires the use case.
func NewPriceUseCase(prices repository.PriceRepository, priceLists repository.PriceListRepository, tx ports.TxRunner) *PriceUseCase {
	return &PriceUseCase{prices: prices, priceLists: priceLists, tx: tx}
}

func priceToDTO(p *entity.Price) dto.PriceDTO {
	return dto.PriceDTO{
		ID:          p.ID,
		PriceListID: p.PriceListID,
		Price:       p.Price,
		Date:        p.Date,
	}
}

// FromDTO resolves the transfer shape, normalizing money and truncating the
// date to a calendar day.
func (uc *PriceUseCase) FromDTO(in dto.PriceDTO) (*entity.Price, error) {
	if err := validateID("priceList", in.PriceListID, uc.priceLists.ExistsByID); err != nil {
		return nil, err
	}
	return &entity.Price{
		ID:          in.ID,
		PriceListID: in.PriceListID,
		Price:       pricing.Normalize(in.Price),
		Date:        entity.DateOf(in.Date),
	}, nil
}

// Create persists a new history entry and re-derives the current price in one
// transaction.
func (uc *PriceUseCase) Create(ctx context.Context, in dto.PriceDTO) (dto.PriceDTO, error) {
	if err := requireNewID("price", in.ID); err != nil {
		return dto.PriceDTO{}, err
	}
	p, err := uc.FromDTO(in)
	if err != nil {
		return dto.PriceDTO{}, err
	}
	err = uc.tx.Run(ctx, func(tx ports.RepoSet) error {
		if err := tx.Prices.Create(p); err != nil {
			return fmt.Errorf("create price: %w", err)
		}
		return pricing.Recompute(tx.PriceLists, tx.Prices, p.PriceListID)
	})
	if err != nil {
		return dto.PriceDTO{}, err
	}
	return priceToDTO(p), nil
}

// FindByID loads one history entry.
func (uc *PriceUseCase) FindByID(ctx context.Context, id int64) (dto.PriceDTO, error) {
	p, err := uc.prices.GetByID(id)
	if err != nil {
		return dto.PriceDTO{}, fmt.Errorf("get price: %w", err)
	}
	if p == nil {
		return dto.PriceDTO{}, fmt.Errorf("%w: price not found with id %d", domain.ErrNotFound, id)
	}
	return priceToDTO(p), nil
}

// FindBetween returns the history of a price list inside the inclusive
// [start, end] window, newest first. Used standalone it reports an empty
// window as NotFound; the dynamics comparison tolerates empty windows itself.
func (uc *PriceUseCase) FindBetween(ctx context.Context, priceListID int64, start, end time.Time) ([]dto.PriceDTO, error) {
	if err := validateID("priceList", priceListID, uc.priceLists.ExistsByID); err != nil {
		return nil, err
	}
	list, err := uc.prices.ListByPriceListBetween(priceListID, entity.DateOf(start), entity.DateOf(end))
	if err != nil {
		return nil, fmt.Errorf("list prices: %w", err)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: no prices found for priceList %d between %s and %s",
			domain.ErrNotFound, priceListID, start.Format(time.DateOnly), end.Format(time.DateOnly))
	}
	out := make([]dto.PriceDTO, 0, len(list))
	for _, p := range list {
		out = append(out, priceToDTO(p))
	}
	return out, nil
}

// Update overwrites a history entry and re-derives the affected price lists.
// When the entry moves between lists, both get re-derived.
func (uc *PriceUseCase) Update(ctx context.Context, in dto.PriceDTO) (dto.PriceDTO, error) {
	if err := validateID("price", in.ID, uc.prices.ExistsByID); err != nil {
		return dto.PriceDTO{}, err
	}
	before, err := uc.prices.GetByID(in.ID)
	if err != nil {
		return dto.PriceDTO{}, fmt.Errorf("get price: %w", err)
	}
	p, err := uc.FromDTO(in)
	if err != nil {
		return dto.PriceDTO{}, err
	}
	err = uc.tx.Run(ctx, func(tx ports.RepoSet) error {
		if err := tx.Prices.Update(p); err != nil {
			return fmt.Errorf("update price: %w", err)
		}
		if err := pricing.Recompute(tx.PriceLists, tx.Prices, p.PriceListID); err != nil {
			return err
		}
		if before != nil && before.PriceListID != p.PriceListID {
			return pricing.Recompute(tx.PriceLists, tx.Prices, before.PriceListID)
		}
		return nil
	})
	if err != nil {
		return dto.PriceDTO{}, err
	}
	return priceToDTO(p), nil
}

// Delete removes a history entry and re-derives the owning price list.
// Removing the last entry fails: a non-empty-history list must keep a
// derivable current price.
func (uc *PriceUseCase) Delete(ctx context.Context, id int64) error {
	if err := validateID("price", id, uc.prices.ExistsByID); err != nil {
		return err
	}
	p, err := uc.prices.GetByID(id)
	if err != nil {
		return fmt.Errorf("get price: %w", err)
	}
	if p == nil {
		// deleted between the existence check and the load
		return fmt.Errorf("%w: price does not exist with id %d", domain.ErrInvalidID, id)
	}
	return uc.tx.Run(ctx, func(tx ports.RepoSet) error {
		if err := tx.Prices.Delete(id); err != nil {
			return fmt.Errorf("delete price: %w", err)
		}
		return pricing.Recompute(tx.PriceLists, tx.Prices, p.PriceListID)
	})
}

// ValidateID exposes the identity check to collaborators.
func (uc *PriceUseCase) ValidateID(id int64) error {
	return validateID("price", id, uc.prices.ExistsByID)
}
