package importer

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/akazantsev/pricewatch/internal/application/dto"
	"github.com/akazantsev/pricewatch/internal/application/ports"
	"github.com/akazantsev/pricewatch/internal/application/pricing"
	"github.com/akazantsev/pricewatch/internal/application/usecase"
	"github.com/akazantsev/pricewatch/internal/domain"
	"github.com/akazantsev/pricewatch/internal/domain/entity"
	"github.com/akazantsev/pricewatch/pkg/logger"
)

// Importer ingests row-oriented sheets of Products, PriceLists, or Prices.
// Every cell is validated before anything is written; the whole batch then
// commits in one transaction. A failing row aborts the entire import, there
// is no partial success.
type Importer struct {
	tx            ports.TxRunner
	subcategories *usecase.SubcategoryUseCase
	products      *usecase.ProductUseCase
	priceLists    *usecase.PriceListUseCase
	stores        *usecase.StoreUseCase
	log           *logger.Logger
}

// New wires the pipeline.
func New(
	tx ports.TxRunner,
	subcategories *usecase.SubcategoryUseCase,
	products *usecase.ProductUseCase,
	priceLists *usecase.PriceListUseCase,
	stores *usecase.StoreUseCase,
	log *logger.Logger,
) *Importer {
	return &Importer{
		tx:            tx,
		subcategories: subcategories,
		products:      products,
		priceLists:    priceLists,
		stores:        stores,
		log:           log,
	}
}

// Column layouts are fixed per entity:
//
//	Product:   [subcategoryId, name, brand, quantity, unit, manufacturer]
//	PriceList: [storeId, productId, currentPrice]
//	Price:     [priceListId, price, date]
//
// A cell beyond the layout rejects the row as data not owned by the entity; a
// row with a blank leading key column is a sheet-formatting gap and skipped.

// ImportProducts ingests a product sheet.
func (im *Importer) ImportProducts(ctx context.Context, sheet *Sheet) ([]dto.ProductDTO, error) {
	batch := uuid.NewString()
	im.log.Info().Str("batch_id", batch).Int("rows", len(sheet.Rows)).Msg("product import started")

	var parsed []dto.ProductDTO
	for i, row := range sheet.Rows {
		if i == 0 || rowBlank(row) {
			continue
		}
		var d dto.ProductDTO
		for j, cell := range row {
			if cell.IsEmpty() {
				continue
			}
			addr := CellAddress(j, i)
			switch j {
			case 0:
				id, err := intCell(cell, addr)
				if err != nil {
					return nil, err
				}
				if err := im.subcategories.ValidateID(id); err != nil {
					return nil, fmt.Errorf("%w, cell address %s", err, addr)
				}
				d.SubcategoryID = id
			case 1:
				name, err := textCell(cell, addr)
				if err != nil {
					return nil, err
				}
				d.Name = name
			case 2:
				brand, err := textCell(cell, addr)
				if err != nil {
					return nil, err
				}
				d.Brand = brand
			case 3:
				qty, err := intCell(cell, addr)
				if err != nil {
					return nil, err
				}
				d.Quantity = int(qty)
			case 4:
				text, err := textCell(cell, addr)
				if err != nil {
					return nil, err
				}
				unit, err := entity.ParseUnit(text)
				if err != nil {
					return nil, fmt.Errorf("%w, cell address %s", err, addr)
				}
				d.Unit = string(unit)
			case 5:
				manufacturer, err := textCell(cell, addr)
				if err != nil {
					return nil, err
				}
				d.Manufacturer = manufacturer
			default:
				return nil, fmt.Errorf("%w: data not owned by Product in cell %s", domain.ErrBadRequest, addr)
			}
		}
		parsed = append(parsed, d)
	}

	out := make([]dto.ProductDTO, 0, len(parsed))
	err := im.tx.Run(ctx, func(tx ports.RepoSet) error {
		for _, d := range parsed {
			p, err := im.products.FromDTO(d)
			if err != nil {
				return err
			}
			if err := tx.Products.Create(p); err != nil {
				return fmt.Errorf("create product: %w", err)
			}
			d.ID = p.ID
			d.PriceListIDs = []int64{}
			out = append(out, d)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	im.log.Info().Str("batch_id", batch).Int("imported", len(out)).Msg("product import committed")
	return out, nil
}

// ImportPriceLists ingests a price-list sheet. History cannot arrive through
// a sheet, so the current price column is taken verbatim, normalized.
func (im *Importer) ImportPriceLists(ctx context.Context, sheet *Sheet) ([]dto.PriceListDTO, error) {
	batch := uuid.NewString()
	im.log.Info().Str("batch_id", batch).Int("rows", len(sheet.Rows)).Msg("price list import started")

	var parsed []*entity.PriceList
	for i, row := range sheet.Rows {
		if i == 0 || rowBlank(row) {
			continue
		}
		pl := &entity.PriceList{}
		for j, cell := range row {
			if cell.IsEmpty() {
				continue
			}
			addr := CellAddress(j, i)
			switch j {
			case 0:
				id, err := intCell(cell, addr)
				if err != nil {
					return nil, err
				}
				if err := im.stores.ValidateID(id); err != nil {
					return nil, fmt.Errorf("%w, cell address %s", err, addr)
				}
				pl.StoreID = id
			case 1:
				id, err := intCell(cell, addr)
				if err != nil {
					return nil, err
				}
				if err := im.products.ValidateID(id); err != nil {
					return nil, fmt.Errorf("%w, cell address %s", err, addr)
				}
				pl.ProductID = id
			case 2:
				price, err := moneyCell(cell, addr)
				if err != nil {
					return nil, err
				}
				pl.CurrentPrice = pricing.Normalize(price)
			default:
				return nil, fmt.Errorf("%w: data not owned by PriceList in cell %s", domain.ErrBadRequest, addr)
			}
		}
		parsed = append(parsed, pl)
	}

	out := make([]dto.PriceListDTO, 0, len(parsed))
	err := im.tx.Run(ctx, func(tx ports.RepoSet) error {
		for _, pl := range parsed {
			if err := tx.PriceLists.Create(pl); err != nil {
				return fmt.Errorf("create price list: %w", err)
			}
			out = append(out, dto.PriceListDTO{
				ID:           pl.ID,
				StoreID:      pl.StoreID,
				ProductID:    pl.ProductID,
				CurrentPrice: pl.CurrentPrice,
				PriceHistory: []dto.PriceDTO{},
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	im.log.Info().Str("batch_id", batch).Int("imported", len(out)).Msg("price list import committed")
	return out, nil
}

// ImportPrices ingests a price-history sheet. After the batch is written,
// every distinct price list it touched gets its current price re-derived
// exactly once, inside the same transaction.
func (im *Importer) ImportPrices(ctx context.Context, sheet *Sheet) ([]dto.PriceDTO, error) {
	batch := uuid.NewString()
	im.log.Info().Str("batch_id", batch).Int("rows", len(sheet.Rows)).Msg("price import started")

	var parsed []*entity.Price
	for i, row := range sheet.Rows {
		if i == 0 || rowBlank(row) {
			continue
		}
		p := &entity.Price{}
		for j, cell := range row {
			if cell.IsEmpty() {
				continue
			}
			addr := CellAddress(j, i)
			switch j {
			case 0:
				id, err := intCell(cell, addr)
				if err != nil {
					return nil, err
				}
				if err := im.priceLists.ValidateID(id); err != nil {
					return nil, fmt.Errorf("%w, cell address %s", err, addr)
				}
				p.PriceListID = id
			case 1:
				price, err := moneyCell(cell, addr)
				if err != nil {
					return nil, err
				}
				p.Price = pricing.Normalize(price)
			case 2:
				date, err := dateCell(cell, addr)
				if err != nil {
					return nil, err
				}
				p.Date = entity.DateOf(date)
			default:
				return nil, fmt.Errorf("%w: data not owned by Price in cell %s", domain.ErrBadRequest, addr)
			}
		}
		parsed = append(parsed, p)
	}

	out := make([]dto.PriceDTO, 0, len(parsed))
	err := im.tx.Run(ctx, func(tx ports.RepoSet) error {
		seen := make(map[int64]bool)
		var affected []int64
		for _, p := range parsed {
			if err := tx.Prices.Create(p); err != nil {
				return fmt.Errorf("create price: %w", err)
			}
			if !seen[p.PriceListID] {
				seen[p.PriceListID] = true
				affected = append(affected, p.PriceListID)
			}
			out = append(out, dto.PriceDTO{
				ID:          p.ID,
				PriceListID: p.PriceListID,
				Price:       p.Price,
				Date:        p.Date,
			})
		}
		for _, id := range affected {
			if err := pricing.Recompute(tx.PriceLists, tx.Prices, id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	im.log.Info().Str("batch_id", batch).Int("imported", len(out)).Msg("price import committed")
	return out, nil
}

// rowBlank reports a sheet-formatting gap: an empty row or one whose leading
// key column is blank.
func rowBlank(row []Cell) bool {
	return len(row) == 0 || row[0].IsEmpty()
}
