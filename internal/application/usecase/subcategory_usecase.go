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

// SubcategoryUseCase covers the middle level of the catalog hierarchy.
// Updates follow upsert-by-replace semantics: name, parent category and the
// whole product membership list are overwritten, never patched.
type SubcategoryUseCase struct {
	subcategories repository.SubcategoryRepository
	categories    repository.CategoryRepository
	products      repository.ProductRepository
	tx            ports.TxRunner
}

// NewSubcategoryUseCase wires the use case. All collaborators are fixed at
// construction.
func NewSubcategoryUseCase(
	subcategories repository.SubcategoryRepository,
	categories repository.CategoryRepository,
	products repository.ProductRepository,
	tx ports.TxRunner,
) *SubcategoryUseCase {
	return &SubcategoryUseCase{
		subcategories: subcategories,
		categories:    categories,
		products:      products,
		tx:            tx,
	}
}

// ToDTO maps a subcategory to its transfer shape; child products travel as
// ids only.
func (uc *SubcategoryUseCase) ToDTO(s *entity.Subcategory) (dto.SubcategoryDTO, error) {
	productIDs, err := uc.subcategories.ListProductIDs(s.ID)
	if err != nil {
		return dto.SubcategoryDTO{}, fmt.Errorf("list subcategory products: %w", err)
	}
	return dto.SubcategoryDTO{
		ID:         s.ID,
		Name:       s.Name,
		CategoryID: s.CategoryID,
		ProductIDs: productIDs,
	}, nil
}

// Create builds a fresh subcategory. Product membership cannot be attached
// here; it is populated by a later Update.
func (uc *SubcategoryUseCase) Create(ctx context.Context, in dto.SubcategoryDTO) (dto.SubcategoryDTO, error) {
	if err := requireNewID("subcategory", in.ID); err != nil {
		return dto.SubcategoryDTO{}, err
	}
	if err := validateID("category", in.CategoryID, uc.categories.ExistsByID); err != nil {
		return dto.SubcategoryDTO{}, err
	}
	s := &entity.Subcategory{Name: in.Name, CategoryID: in.CategoryID}
	if err := uc.subcategories.Create(s); err != nil {
		return dto.SubcategoryDTO{}, fmt.Errorf("create subcategory: %w", err)
	}
	return uc.ToDTO(s)
}

// FindAll returns every subcategory sorted by name.
func (uc *SubcategoryUseCase) FindAll(ctx context.Context) ([]dto.SubcategoryDTO, error) {
	list, err := uc.subcategories.ListAll()
	if err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}
	out := make([]dto.SubcategoryDTO, 0, len(list))
	for _, s := range list {
		d, err := uc.ToDTO(s)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// FindByID loads one subcategory.
func (uc *SubcategoryUseCase) FindByID(ctx context.Context, id int64) (dto.SubcategoryDTO, error) {
	s, err := uc.subcategories.GetByID(id)
	if err != nil {
		return dto.SubcategoryDTO{}, fmt.Errorf("get subcategory: %w", err)
	}
	if s == nil {
		return dto.SubcategoryDTO{}, fmt.Errorf("%w: subcategory not found with id %d", domain.ErrNotFound, id)
	}
	return uc.ToDTO(s)
}

// Update applies upsert-by-replace: the name change and the membership
// replacement commit together, or neither does.
func (uc *SubcategoryUseCase) Update(ctx context.Context, in dto.SubcategoryDTO) (dto.SubcategoryDTO, error) {
	if err := validateID("subcategory", in.ID, uc.subcategories.ExistsByID); err != nil {
		return dto.SubcategoryDTO{}, err
	}
	var updated *entity.Subcategory
	err := uc.tx.Run(ctx, func(tx ports.RepoSet) error {
		s, err := uc.applyTx(tx, in, 0)
		if err != nil {
			return err
		}
		updated = s
		return nil
	})
	if err != nil {
		return dto.SubcategoryDTO{}, err
	}
	return uc.ToDTO(updated)
}

// Delete removes the subcategory and, through ownership, its products and
// their price lists.
func (uc *SubcategoryUseCase) Delete(ctx context.Context, id int64) error {
	if err := validateID("subcategory", id, uc.subcategories.ExistsByID); err != nil {
		return err
	}
	if err := uc.subcategories.Delete(id); err != nil {
		return fmt.Errorf("delete subcategory: %w", err)
	}
	return nil
}

// ValidateID exposes the identity check to collaborators (import pipeline).
func (uc *SubcategoryUseCase) ValidateID(id int64) error {
	return validateID("subcategory", id, uc.subcategories.ExistsByID)
}

// applyTx converts a transfer shape inside a transaction. An existing id
// means upsert-by-replace: overwrite name and parent, replace the whole
// product membership (products dropped from the list are detached, not
// deleted). A zero id builds a fresh subcategory with no membership.
// defaultCategoryID fills an absent parent reference when the subcategory
// arrives nested inside a category payload.
func (uc *SubcategoryUseCase) applyTx(tx ports.RepoSet, in dto.SubcategoryDTO, defaultCategoryID int64) (*entity.Subcategory, error) {
	categoryID := in.CategoryID
	if categoryID == 0 {
		categoryID = defaultCategoryID
	}
	if err := validateID("category", categoryID, tx.Categories.ExistsByID); err != nil {
		return nil, err
	}

	if in.ID == 0 {
		s := &entity.Subcategory{Name: in.Name, CategoryID: categoryID}
		if err := tx.Subcategories.Create(s); err != nil {
			return nil, fmt.Errorf("create subcategory: %w", err)
		}
		return s, nil
	}

	if err := validateID("subcategory", in.ID, tx.Subcategories.ExistsByID); err != nil {
		return nil, err
	}
	s, err := tx.Subcategories.GetByID(in.ID)
	if err != nil {
		return nil, fmt.Errorf("get subcategory: %w", err)
	}
	if s == nil {
		// deleted between the existence check and the load
		return nil, fmt.Errorf("%w: subcategory does not exist with id %d", domain.ErrInvalidID, in.ID)
	}
	s.Name = in.Name
	s.CategoryID = categoryID
	for _, pid := range in.ProductIDs {
		if err := validateID("product", pid, tx.Products.ExistsByID); err != nil {
			return nil, err
		}
	}
	if err := tx.Subcategories.Update(s); err != nil {
		return nil, fmt.Errorf("update subcategory: %w", err)
	}
	if err := tx.Subcategories.ReplaceProductMembership(s.ID, in.ProductIDs); err != nil {
		return nil, fmt.Errorf("replace subcategory products: %w", err)
	}
	return s, nil
}
