package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(t *testing.T, v string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(v)
	require.NoError(t, err)
	return d
}

func int64Ptr(v int64) *int64 {
	return &v
}

func TestResolveTargetVariantMergesProductExtras(t *testing.T) {
	weight := dec(t, "150")
	snap := NewSnapshot(nil, nil, nil, nil, nil, nil, []Product{
		{
			ID:   1,
			Name: "latte",
			Ingredients: []ExtraIngredient{
				{IngredientID: 7, Quantity: dec(t, "1")},
			},
			Consumables: []ExtraConsumable{
				{ConsumableID: 8, Quantity: dec(t, "1")},
			},
			Variants: []ProductVariant{
				{
					ID:             10,
					Name:           "large",
					OutputWeight:   &weight,
					MasterRecipeID: int64Ptr(3),
					Ingredients: []ExtraIngredient{
						{IngredientID: 9, Quantity: dec(t, "2")},
					},
				},
			},
		},
	})

	target, ok := snap.ResolveTarget(1, int64Ptr(10))
	require.True(t, ok)

	assert.Equal(t, "latte (large)", target.Name)
	assert.True(t, target.OutputWeight.Equal(weight))
	require.NotNil(t, target.MasterRecipeID)
	assert.Equal(t, int64(3), *target.MasterRecipeID)

	// variant-level extras come first, product-level follow
	require.Len(t, target.Ingredients, 2)
	assert.Equal(t, int64(9), target.Ingredients[0].IngredientID)
	assert.Equal(t, int64(7), target.Ingredients[1].IngredientID)
	require.Len(t, target.Consumables, 1)
	assert.Equal(t, int64(8), target.Consumables[0].ConsumableID)
}

func TestResolveTargetSimpleProduct(t *testing.T) {
	snap := NewSnapshot(nil, nil, nil, nil, nil, nil, []Product{
		{ID: 2, Name: "espresso", MasterRecipeID: int64Ptr(6)},
	})

	target, ok := snap.ResolveTarget(2, nil)
	require.True(t, ok)
	assert.Equal(t, "espresso", target.Name)
	assert.True(t, target.OutputWeight.IsZero())
}

func TestResolveTargetMisses(t *testing.T) {
	snap := NewSnapshot(nil, nil, nil, nil, nil, nil, []Product{
		{ID: 1, Name: "latte", Variants: []ProductVariant{{ID: 10, Name: "large"}}},
		{ID: 2, Name: "espresso"},
	})

	_, ok := snap.ResolveTarget(99, nil)
	assert.False(t, ok)

	_, ok = snap.ResolveTarget(1, int64Ptr(99))
	assert.False(t, ok)

	// a real variant id paired with the wrong product must not resolve
	_, ok = snap.ResolveTarget(2, int64Ptr(10))
	assert.False(t, ok)
}

func TestRecipeLookup(t *testing.T) {
	snap := NewSnapshot(nil, nil, nil, nil, nil, []MasterRecipe{{ID: 5, Name: "dough"}}, nil)

	recipe, ok := snap.Recipe(5)
	require.True(t, ok)
	assert.Equal(t, "dough", recipe.Name)

	_, ok = snap.Recipe(6)
	assert.False(t, ok)
}
