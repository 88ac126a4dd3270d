package reservation

import (
	"github.com/shopspring/decimal"

	"github.com/craftline/pos-terminal/internal/catalog"
	"github.com/craftline/pos-terminal/pkg/types"
)

var oneHundred = decimal.NewFromInt(100)

// Aggregate is the summed ingredient/consumable draw-down implied by the
// current cart. It is advisory: nothing gates checkout on it.
type Aggregate struct {
	Ingredients map[int64]decimal.Decimal `json:"ingredients"`
	Consumables map[int64]decimal.Decimal `json:"consumables"`
}

func newAggregate() Aggregate {
	return Aggregate{
		Ingredients: make(map[int64]decimal.Decimal),
		Consumables: make(map[int64]decimal.Decimal),
	}
}

func (a Aggregate) addIngredient(id int64, qty decimal.Decimal) {
	a.Ingredients[id] = a.Ingredients[id].Add(qty)
}

func (a Aggregate) addConsumable(id int64, qty decimal.Decimal) {
	a.Consumables[id] = a.Consumables[id].Add(qty)
}

// Compute expands the cart lines into total ingredient and consumable
// quantities using the given catalog snapshot. Pure: no side effects, no
// remote calls.
//
// A line whose (product_id, variant_id) pair does not resolve in the
// snapshot contributes nothing; cart and catalog can be transiently out of
// sync and that is a defined edge case, not an error.
func Compute(lines []types.CartLine, snap *catalog.Snapshot) Aggregate {
	agg := newAggregate()
	if snap == nil {
		return agg
	}

	for _, line := range lines {
		target, ok := snap.ResolveTarget(line.ProductID, line.VariantID)
		if !ok {
			continue
		}
		lineQty := decimal.NewFromInt(line.Quantity)

		if target.MasterRecipeID != nil {
			if recipe, ok := snap.Recipe(*target.MasterRecipeID); ok {
				for _, item := range recipe.Items {
					agg.addIngredient(item.IngredientID, recipeContribution(item, target.OutputWeight, lineQty))
				}
			}
		}

		// Extra ingredients sum with the recipe contribution for the same
		// ingredient id; they never replace it.
		for _, extra := range target.Ingredients {
			agg.addIngredient(extra.IngredientID, extra.Quantity.Mul(lineQty))
		}

		for _, extra := range target.Consumables {
			agg.addConsumable(extra.ConsumableID, extra.Quantity.Mul(lineQty))
		}

		// Modifiers reference ingredients directly.
		for _, mod := range line.Modifiers {
			agg.addIngredient(mod.ModifierID, mod.Quantity.Mul(lineQty))
		}
	}

	return agg
}

// recipeContribution resolves one recipe item for one cart line. Percentage
// items are a share of the target's output weight; a target with no declared
// output weight yields zero for them.
func recipeContribution(item catalog.RecipeItem, outputWeight, lineQty decimal.Decimal) decimal.Decimal {
	if item.IsPercentage {
		return item.Quantity.Div(oneHundred).Mul(outputWeight).Mul(lineQty)
	}
	return item.Quantity.Mul(lineQty)
}
