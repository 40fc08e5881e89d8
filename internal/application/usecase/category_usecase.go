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

// CategoryUseCase covers the top level of the catalog hierarchy. Category
// views are whole-tree views: transfer shapes carry the full subcategory list.
type CategoryUseCase struct {
	categories    repository.CategoryRepository
	subcategories *SubcategoryUseCase
	tx            ports.TxRunner
}

// NewCategoryUseCase wires the use case.
func NewCategoryUseCase(categories repository.CategoryRepository, subcategories *SubcategoryUseCase, tx ports.TxRunner) *CategoryUseCase {
	return &CategoryUseCase{categories: categories, subcategories: subcategories, tx: tx}
}

// ToDTO maps a category with its full recursive subcategory list.
func (uc *CategoryUseCase) ToDTO(c *entity.Category) (dto.CategoryDTO, error) {
	subs, err := uc.subcategories.subcategories.ListByCategory(c.ID)
	if err != nil {
		return dto.CategoryDTO{}, fmt.Errorf("list category subcategories: %w", err)
	}
	subDTOs := make([]dto.SubcategoryDTO, 0, len(subs))
	for _, s := range subs {
		d, err := uc.subcategories.ToDTO(s)
		if err != nil {
			return dto.CategoryDTO{}, err
		}
		subDTOs = append(subDTOs, d)
	}
	return dto.CategoryDTO{ID: c.ID, Name: c.Name, Subcategories: subDTOs}, nil
}

// Create persists a new category together with any nested subcategories. The
// whole graph commits in one transaction.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CategoryDTO) (dto.CategoryDTO, error) {
	if err := requireNewID("category", in.ID); err != nil {
		return dto.CategoryDTO{}, err
	}
	if existing, err := uc.categories.GetByName(in.Name); err != nil {
		return dto.CategoryDTO{}, fmt.Errorf("check category name: %w", err)
	} else if existing != nil {
		return dto.CategoryDTO{}, fmt.Errorf("%w: category name %q already exists", domain.ErrDuplicate, in.Name)
	}
	var created *entity.Category
	err := uc.tx.Run(ctx, func(tx ports.RepoSet) error {
		c := &entity.Category{Name: in.Name}
		if err := tx.Categories.Create(c); err != nil {
			return fmt.Errorf("create category: %w", err)
		}
		for _, sub := range in.Subcategories {
			if _, err := uc.subcategories.applyTx(tx, sub, c.ID); err != nil {
				return err
			}
		}
		created = c
		return nil
	})
	if err != nil {
		return dto.CategoryDTO{}, err
	}
	return uc.ToDTO(created)
}

// FindAll returns every category sorted by name, each with its full tree.
func (uc *CategoryUseCase) FindAll(ctx context.Context) ([]dto.CategoryDTO, error) {
	list, err := uc.categories.ListAll()
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	out := make([]dto.CategoryDTO, 0, len(list))
	for _, c := range list {
		d, err := uc.ToDTO(c)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// FindByID loads one category tree.
func (uc *CategoryUseCase) FindByID(ctx context.Context, id int64) (dto.CategoryDTO, error) {
	c, err := uc.categories.GetByID(id)
	if err != nil {
		return dto.CategoryDTO{}, fmt.Errorf("get category: %w", err)
	}
	if c == nil {
		return dto.CategoryDTO{}, fmt.Errorf("%w: category not found with id %d", domain.ErrNotFound, id)
	}
	return uc.ToDTO(c)
}

// Update overwrites the category name and applies the nested subcategory list
// with upsert-by-replace semantics, all in one transaction.
func (uc *CategoryUseCase) Update(ctx context.Context, in dto.CategoryDTO) (dto.CategoryDTO, error) {
	if err := validateID("category", in.ID, uc.categories.ExistsByID); err != nil {
		return dto.CategoryDTO{}, err
	}
	err := uc.tx.Run(ctx, func(tx ports.RepoSet) error {
		c := &entity.Category{ID: in.ID, Name: in.Name}
		if err := tx.Categories.Update(c); err != nil {
			return fmt.Errorf("update category: %w", err)
		}
		for _, sub := range in.Subcategories {
			if _, err := uc.subcategories.applyTx(tx, sub, in.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return dto.CategoryDTO{}, err
	}
	return uc.FindByID(ctx, in.ID)
}

// Delete removes the category and cascades through subcategories, products,
// price lists and history.
func (uc *CategoryUseCase) Delete(ctx context.Context, id int64) error {
	if err := validateID("category", id, uc.categories.ExistsByID); err != nil {
		return err
	}
	if err := uc.categories.Delete(id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// ValidateID exposes the identity check to collaborators.
func (uc *CategoryUseCase) ValidateID(id int64) error {
	return validateID("category", id, uc.categories.ExistsByID)
}
