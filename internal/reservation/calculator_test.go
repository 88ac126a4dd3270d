package reservation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftline/pos-terminal/internal/catalog"
	"github.com/craftline/pos-terminal/pkg/types"
)

func dec(t *testing.T, v string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(v)
	require.NoError(t, err)
	return d
}

func decPtr(t *testing.T, v string) *decimal.Decimal {
	t.Helper()
	d := dec(t, v)
	return &d
}

func int64Ptr(v int64) *int64 {
	return &v
}

// testSnapshot: product 1 has variant 10 producing 200 units of yield from
// recipe 5 (ingredient 100 at 10%), plus 5 units of ingredient 100 and
// 2 units of consumable 200 per sale. Product 2 is a simple product with
// recipe 6 (ingredient 101, absolute 4).
func testSnapshot(t *testing.T) *catalog.Snapshot {
	t.Helper()
	recipes := []catalog.MasterRecipe{
		{
			ID:   5,
			Name: "dough",
			Items: []catalog.RecipeItem{
				{IngredientID: 100, Quantity: dec(t, "10"), IsPercentage: true},
			},
		},
		{
			ID:   6,
			Name: "brew",
			Items: []catalog.RecipeItem{
				{IngredientID: 101, Quantity: dec(t, "4"), IsPercentage: false},
			},
		},
	}
	products := []catalog.Product{
		{
			ID:   1,
			Name: "croissant",
			Variants: []catalog.ProductVariant{
				{
					ID:             10,
					Name:           "large",
					OutputWeight:   decPtr(t, "200"),
					MasterRecipeID: int64Ptr(5),
					Ingredients: []catalog.ExtraIngredient{
						{IngredientID: 100, Quantity: dec(t, "5")},
					},
					Consumables: []catalog.ExtraConsumable{
						{ConsumableID: 200, Quantity: dec(t, "2")},
					},
				},
				{
					ID:   11,
					Name: "weightless",
					// no output weight declared; percentage items yield zero
					MasterRecipeID: int64Ptr(5),
				},
			},
		},
		{
			ID:             2,
			Name:           "espresso",
			MasterRecipeID: int64Ptr(6),
			Consumables: []catalog.ExtraConsumable{
				{ConsumableID: 201, Quantity: dec(t, "1")},
			},
		},
	}
	return catalog.NewSnapshot(nil, nil, nil, nil, nil, recipes, products)
}

func TestComputeUnresolvedLinesContributeNothing(t *testing.T) {
	snap := testSnapshot(t)
	lines := []types.CartLine{
		{ProductID: 99, Quantity: 3},
		{ProductID: 1, VariantID: int64Ptr(99), Quantity: 2},
		// variant of a different product must not resolve through product 2
		{ProductID: 2, VariantID: int64Ptr(10), Quantity: 1},
	}

	agg := Compute(lines, snap)

	assert.Empty(t, agg.Ingredients)
	assert.Empty(t, agg.Consumables)
}

func TestComputePercentageOfYield(t *testing.T) {
	snap := testSnapshot(t)
	lines := []types.CartLine{
		{ProductID: 1, VariantID: int64Ptr(10), Quantity: 3},
	}

	agg := Compute(lines, snap)

	// recipe: (10/100)*200*3 = 60, extra: 5*3 = 15, summed not replaced
	assert.True(t, agg.Ingredients[100].Equal(dec(t, "75")), "got %s", agg.Ingredients[100])
	assert.True(t, agg.Consumables[200].Equal(dec(t, "6")), "got %s", agg.Consumables[200])
}

func TestComputeMissingOutputWeightYieldsZeroForPercentageItems(t *testing.T) {
	snap := testSnapshot(t)
	lines := []types.CartLine{
		{ProductID: 1, VariantID: int64Ptr(11), Quantity: 4},
	}

	agg := Compute(lines, snap)

	assert.True(t, agg.Ingredients[100].IsZero(), "got %s", agg.Ingredients[100])
}

func TestComputeSimpleProductUsesItsOwnCard(t *testing.T) {
	snap := testSnapshot(t)
	lines := []types.CartLine{
		{ProductID: 2, Quantity: 2},
	}

	agg := Compute(lines, snap)

	assert.True(t, agg.Ingredients[101].Equal(dec(t, "8")), "got %s", agg.Ingredients[101])
	assert.True(t, agg.Consumables[201].Equal(dec(t, "2")), "got %s", agg.Consumables[201])
}

func TestComputeModifiersDrawIngredients(t *testing.T) {
	snap := testSnapshot(t)
	lines := []types.CartLine{
		{
			ProductID: 2,
			Quantity:  3,
			Modifiers: []types.Modifier{
				{ModifierID: 300, Quantity: dec(t, "1.5")},
			},
		},
	}

	agg := Compute(lines, snap)

	assert.True(t, agg.Ingredients[300].Equal(dec(t, "4.5")), "got %s", agg.Ingredients[300])
}

func TestComputeModifiersSkippedWhenLineUnresolved(t *testing.T) {
	snap := testSnapshot(t)
	lines := []types.CartLine{
		{
			ProductID: 99,
			Quantity:  3,
			Modifiers: []types.Modifier{
				{ModifierID: 300, Quantity: dec(t, "1")},
			},
		},
	}

	agg := Compute(lines, snap)

	assert.Empty(t, agg.Ingredients)
}

func TestComputeSumsAcrossLines(t *testing.T) {
	snap := testSnapshot(t)
	lines := []types.CartLine{
		{ProductID: 1, VariantID: int64Ptr(10), Quantity: 1},
		{ProductID: 1, VariantID: int64Ptr(10), Quantity: 2},
	}

	agg := Compute(lines, snap)

	// per unit: 20 recipe + 5 extra = 25; three units total
	assert.True(t, agg.Ingredients[100].Equal(dec(t, "75")), "got %s", agg.Ingredients[100])
	assert.True(t, agg.Consumables[200].Equal(dec(t, "6")), "got %s", agg.Consumables[200])
}

func TestComputeMissingRecipeContributesNothing(t *testing.T) {
	recipesGone := catalog.NewSnapshot(nil, nil, nil, nil, nil, nil, []catalog.Product{
		{
			ID:             3,
			Name:           "mystery",
			MasterRecipeID: int64Ptr(42),
		},
	})
	lines := []types.CartLine{
		{ProductID: 3, Quantity: 5},
	}

	agg := Compute(lines, recipesGone)

	assert.Empty(t, agg.Ingredients)
}

func TestComputeNilSnapshot(t *testing.T) {
	agg := Compute([]types.CartLine{{ProductID: 1, Quantity: 1}}, nil)

	assert.Empty(t, agg.Ingredients)
	assert.Empty(t, agg.Consumables)
}
