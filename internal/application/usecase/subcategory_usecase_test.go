package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akazantsev/pricewatch/internal/application/dto"
	"github.com/akazantsev/pricewatch/internal/domain"
)

func TestSubcategoryCreate_RequiresExistingCategory(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.subcategories.Create(ctx, dto.SubcategoryDTO{Name: "Milk", CategoryID: 99})
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestSubcategoryCreate_StartsWithNoProducts(t *testing.T) {
	f := newFixture()

	c := f.category(t, "Dairy")
	s := f.subcategory(t, "Milk", c.ID)

	assert.Equal(t, c.ID, s.CategoryID)
	assert.Empty(t, s.ProductIDs)
}

// Update replaces the whole product membership: products dropped from the
// list stay in the catalog but lose their subcategory reference.
func TestSubcategoryUpdate_ReplacesMembershipAndDetachesDropped(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	c := f.category(t, "Dairy")
	s := f.subcategory(t, "Milk", c.ID)
	p1 := f.product(t, "Whole Milk", s.ID)
	p2 := f.product(t, "Skim Milk", s.ID)
	p3 := f.product(t, "Butter", s.ID)

	out, err := f.subcategories.Update(ctx, dto.SubcategoryDTO{
		ID:         s.ID,
		Name:       "Milk & Cream",
		CategoryID: c.ID,
		ProductIDs: []int64{p1.ID, p2.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, "Milk & Cream", out.Name)
	assert.ElementsMatch(t, []int64{p1.ID, p2.ID}, out.ProductIDs)

	// the dropped product still exists, just detached
	got, err := f.products.FindByID(ctx, p3.ID)
	require.NoError(t, err)
	assert.Zero(t, got.SubcategoryID)
}

// An omitted product list arrives as a nil slice and means the same as an
// empty one: every current member is detached.
func TestSubcategoryUpdate_NilMembershipDetachesAll(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	c := f.category(t, "Dairy")
	s := f.subcategory(t, "Milk", c.ID)
	p := f.product(t, "Whole Milk", s.ID)

	out, err := f.subcategories.Update(ctx, dto.SubcategoryDTO{
		ID:         s.ID,
		Name:       "Milk",
		CategoryID: c.ID,
		ProductIDs: nil,
	})
	require.NoError(t, err)
	assert.Empty(t, out.ProductIDs)

	got, err := f.products.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Zero(t, got.SubcategoryID)
}

func TestSubcategoryUpdate_RejectsUnknownProductID(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	c := f.category(t, "Dairy")
	s := f.subcategory(t, "Milk", c.ID)

	_, err := f.subcategories.Update(ctx, dto.SubcategoryDTO{
		ID:         s.ID,
		Name:       "Milk",
		CategoryID: c.ID,
		ProductIDs: []int64{12345},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestSubcategoryFindByID_Unknown(t *testing.T) {
	f := newFixture()

	_, err := f.subcategories.FindByID(context.Background(), 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
