package usecase

import (
	"context"
	"fmt"

	"github.com/akazantsev/pricewatch/internal/application/dto"
	"github.com/akazantsev/pricewatch/internal/domain"
	"github.com/akazantsev/pricewatch/internal/domain/entity"
	"github.com/akazantsev/pricewatch/internal/domain/repository"
)

// StoreUseCase covers store CRUD and the city/name browse search.
type StoreUseCase struct {
	stores repository.StoreRepository
}

// NewStoreUseCase wires the use case.
func NewStoreUseCase(stores repository.StoreRepository) *StoreUseCase {
	return &StoreUseCase{stores: stores}
}

func storeToDTO(s *entity.Store) dto.StoreDTO {
	return dto.StoreDTO{ID: s.ID, Name: s.Name, City: s.City}
}

// Create persists a new store.
func (uc *StoreUseCase) Create(ctx context.Context, in dto.StoreDTO) (dto.StoreDTO, error) {
	if err := requireNewID("store", in.ID); err != nil {
		return dto.StoreDTO{}, err
	}
	s := &entity.Store{Name: in.Name, City: in.City}
	if err := uc.stores.Create(s); err != nil {
		return dto.StoreDTO{}, fmt.Errorf("create store: %w", err)
	}
	return storeToDTO(s), nil
}

// FindAll returns every store sorted by name.
func (uc *StoreUseCase) FindAll(ctx context.Context) ([]dto.StoreDTO, error) {
	list, err := uc.stores.ListAll()
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	out := make([]dto.StoreDTO, 0, len(list))
	for _, s := range list {
		out = append(out, storeToDTO(s))
	}
	return out, nil
}

// FindByID loads one store.
func (uc *StoreUseCase) FindByID(ctx context.Context, id int64) (dto.StoreDTO, error) {
	s, err := uc.stores.GetByID(id)
	if err != nil {
		return dto.StoreDTO{}, fmt.Errorf("get store: %w", err)
	}
	if s == nil {
		return dto.StoreDTO{}, fmt.Errorf("%w: store not found with id %d", domain.ErrNotFound, id)
	}
	return storeToDTO(s), nil
}

// Search filters stores by city and/or name with a chosen sort direction. An
// empty match set is NotFound.
func (uc *StoreUseCase) Search(ctx context.Context, in dto.StoreSearchRequest) ([]dto.StoreDTO, error) {
	asc, err := ParseSortDirection(in.SortDirection)
	if err != nil {
		return nil, err
	}
	list, err := uc.stores.Search(in.City, in.Name, asc)
	if err != nil {
		return nil, fmt.Errorf("search stores: %w", err)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: no stores found by cityName %q and storeName %q", domain.ErrNotFound, in.City, in.Name)
	}
	out := make([]dto.StoreDTO, 0, len(list))
	for _, s := range list {
		out = append(out, storeToDTO(s))
	}
	return out, nil
}

// Update overwrites the store's fields.
func (uc *StoreUseCase) Update(ctx context.Context, in dto.StoreDTO) (dto.StoreDTO, error) {
	if err := validateID("store", in.ID, uc.stores.ExistsByID); err != nil {
		return dto.StoreDTO{}, err
	}
	s := &entity.Store{ID: in.ID, Name: in.Name, City: in.City}
	if err := uc.stores.Update(s); err != nil {
		return dto.StoreDTO{}, fmt.Errorf("update store: %w", err)
	}
	return storeToDTO(s), nil
}

// Delete removes the store and its price lists with their history. Products
// are never deleted transitively through a store.
func (uc *StoreUseCase) Delete(ctx context.Context, id int64) error {
	if err := validateID("store", id, uc.stores.ExistsByID); err != nil {
		return err
	}
	if err := uc.stores.Delete(id); err != nil {
		return fmt.Errorf("delete store: %w", err)
	}
	return nil
}

// ValidateID exposes the identity check to collaborators.
func (uc *StoreUseCase) ValidateID(id int64) error {
	return validateID("store", id, uc.stores.ExistsByID)
}
