package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akazantsev/pricewatch/internal/application/dto"
	"github.com/akazantsev/pricewatch/internal/domain"
)

func TestCategoryCreate_WithNestedSubcategories(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	out, err := f.categories.Create(ctx, dto.CategoryDTO{
		Name: "Dairy",
		Subcategories: []dto.SubcategoryDTO{
			{Name: "Milk"},
			{Name: "Cheese"},
		},
	})
	require.NoError(t, err)
	require.Len(t, out.Subcategories, 2)
	for _, s := range out.Subcategories {
		assert.Equal(t, out.ID, s.CategoryID, "nested subcategory inherits the new category as parent")
	}
}

func TestCategoryCreate_DuplicateName(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.category(t, "Dairy")
	_, err := f.categories.Create(ctx, dto.CategoryDTO{Name: "Dairy"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// Updating a category upserts its nested subcategory list: existing ids are
// overwritten, zero ids become fresh subcategories under this category.
func TestCategoryUpdate_UpsertsNestedSubcategories(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	c := f.category(t, "Dairy")
	s := f.subcategory(t, "Milk", c.ID)

	out, err := f.categories.Update(ctx, dto.CategoryDTO{
		ID:   c.ID,
		Name: "Dairy & Eggs",
		Subcategories: []dto.SubcategoryDTO{
			{ID: s.ID, Name: "Milk & Cream"},
			{Name: "Eggs"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Dairy & Eggs", out.Name)
	require.Len(t, out.Subcategories, 2)

	names := []string{out.Subcategories[0].Name, out.Subcategories[1].Name}
	assert.ElementsMatch(t, []string{"Milk & Cream", "Eggs"}, names)
}

func TestCategoryFindAll_SortedByName(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.category(t, "Produce")
	f.category(t, "Bakery")
	f.category(t, "Dairy")

	out, err := f.categories.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "Bakery", out[0].Name)
	assert.Equal(t, "Dairy", out[1].Name)
	assert.Equal(t, "Produce", out[2].Name)
}

func TestCategoryDelete_CascadesToTree(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	c := f.category(t, "Dairy")
	s := f.subcategory(t, "Milk", c.ID)
	p := f.product(t, "Whole Milk", s.ID)

	require.NoError(t, f.categories.Delete(ctx, c.ID))

	_, err := f.subcategories.FindByID(ctx, s.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.products.FindByID(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
