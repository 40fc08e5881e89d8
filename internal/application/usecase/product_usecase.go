package usecase

import (
	"context"
	"fmt"

	"github.com/akazantsev/pricewatch/internal/application/dto"
	"github.com/akazantsev/pricewatch/internal/application/ports"
	"github.com/akazantsev/pricewatch/internal/domain"
	"github.com/akazantsev/pricewatch/internal/domain/entity"
	"github.com/akazantsev/pricewatch/internal/domain/repository"
)

// ProductUseCase covers product CRUD and the filtered catalog search.
type ProductUseCase struct {
	products      repository.ProductRepository
	subcategories repository.SubcategoryRepository
	priceLists    repository.PriceListRepository
	tx            ports.TxRunner
}

// NewProductUseCase wires the use case.
func NewProductUseCase(
	products repository.ProductRepository,
	subcategories repository.SubcategoryRepository,
	priceLists repository.PriceListRepository,
	tx ports.TxRunner,
) *ProductUseCase {
	return &ProductUseCase{
		products:      products,
		subcategories: subcategories,
		priceLists:    priceLists,
		tx:            tx,
	}
}

// ToDTO maps a product to its transfer shape; price lists travel as ids only,
// to keep the payload bounded.
func (uc *ProductUseCase) ToDTO(p *entity.Product) (dto.ProductDTO, error) {
	priceListIDs, err := uc.products.ListPriceListIDs(p.ID)
	if err != nil {
		return dto.ProductDTO{}, fmt.Errorf("list product price lists: %w", err)
	}
	return dto.ProductDTO{
		ID:            p.ID,
		SubcategoryID: p.SubcategoryID,
		Name:          p.Name,
		Brand:         p.Brand,
		Quantity:      p.Quantity,
		Unit:          string(p.Unit),
		Manufacturer:  p.Manufacturer,
		PriceListIDs:  priceListIDs,
	}, nil
}

// FromDTO resolves the transfer shape into an entity. The subcategory
// reference is identity-validated; price-list associations are never touched
// through this path.
func (uc *ProductUseCase) FromDTO(in dto.ProductDTO) (*entity.Product, error) {
	if err := validateID("subcategory", in.SubcategoryID, uc.subcategories.ExistsByID); err != nil {
		return nil, err
	}
	unit, err := entity.ParseUnit(in.Unit)
	if err != nil {
		return nil, err
	}
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: product quantity must be a positive integer, got %d", domain.ErrBadRequest, in.Quantity)
	}
	return &entity.Product{
		ID:            in.ID,
		SubcategoryID: in.SubcategoryID,
		Name:          in.Name,
		Brand:         in.Brand,
		Quantity:      in.Quantity,
		Unit:          unit,
		Manufacturer:  in.Manufacturer,
	}, nil
}

// Create persists a new product with no price lists attached.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.ProductDTO) (dto.ProductDTO, error) {
	if err := requireNewID("product", in.ID); err != nil {
		return dto.ProductDTO{}, err
	}
	p, err := uc.FromDTO(in)
	if err != nil {
		return dto.ProductDTO{}, err
	}
	if err := uc.products.Create(p); err != nil {
		return dto.ProductDTO{}, fmt.Errorf("create product: %w", err)
	}
	return uc.ToDTO(p)
}

// FindByID loads one product.
func (uc *ProductUseCase) FindByID(ctx context.Context, id int64) (dto.ProductDTO, error) {
	p, err := uc.products.GetByID(id)
	if err != nil {
		return dto.ProductDTO{}, fmt.Errorf("get product: %w", err)
	}
	if p == nil {
		return dto.ProductDTO{}, fmt.Errorf("%w: product not found with id %d", domain.ErrNotFound, id)
	}
	return uc.ToDTO(p)
}

// Update overwrites the product's scalar fields and replaces its full
// price-list association list in one transaction. Price lists dropped from
// the list are detached, not deleted.
func (uc *ProductUseCase) Update(ctx context.Context, in dto.ProductDTO) (dto.ProductDTO, error) {
	if err := validateID("product", in.ID, uc.products.ExistsByID); err != nil {
		return dto.ProductDTO{}, err
	}
	p, err := uc.FromDTO(in)
	if err != nil {
		return dto.ProductDTO{}, err
	}
	err = uc.tx.Run(ctx, func(tx ports.RepoSet) error {
		for _, plID := range in.PriceListIDs {
			if err := validateID("priceList", plID, tx.PriceLists.ExistsByID); err != nil {
				return err
			}
		}
		if err := tx.Products.Update(p); err != nil {
			return fmt.Errorf("update product: %w", err)
		}
		if err := tx.Products.ReplacePriceLists(p.ID, in.PriceListIDs); err != nil {
			return fmt.Errorf("replace product price lists: %w", err)
		}
		return nil
	})
	if err != nil {
		return dto.ProductDTO{}, err
	}
	return uc.FindByID(ctx, in.ID)
}

// Delete removes the product and cascades to its price lists and their
// history; the stores carrying it are untouched.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	if err := validateID("product", id, uc.products.ExistsByID); err != nil {
		return err
	}
	if err := uc.products.Delete(id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// Search runs the keyword/category/subcategory filtered product search.
// Category and subcategory scopes are mutually exclusive; an empty match set
// is reported as NotFound.
func (uc *ProductUseCase) Search(ctx context.Context, in dto.ProductSearchRequest) ([]dto.ProductDTO, error) {
	asc, err := ParseSortDirection(in.SortDirection)
	if err != nil {
		return nil, err
	}
	if in.CategoryName != "" && in.SubcategoryName != "" {
		return nil, fmt.Errorf("%w: filtering by category_name and subcategory_name at the same time is not allowed", domain.ErrBadRequest)
	}

	var list []*entity.Product
	switch {
	case in.CategoryName != "":
		list, err = uc.products.SearchByCategory(in.CategoryName, in.Keyword, asc)
	case in.SubcategoryName != "":
		list, err = uc.products.SearchBySubcategory(in.SubcategoryName, in.Keyword, asc)
	default:
		list, err = uc.products.SearchByKeyword(in.Keyword, asc)
	}
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: no products found for keyword %q, category %q, subcategory %q",
			domain.ErrNotFound, in.Keyword, in.CategoryName, in.SubcategoryName)
	}

	out := make([]dto.ProductDTO, 0, len(list))
	for _, p := range list {
		d, err := uc.ToDTO(p)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// ValidateID exposes the identity check to collaborators.
func (uc *ProductUseCase) ValidateID(id int64) error {
	return validateID("product", id, uc.products.ExistsByID)
}
