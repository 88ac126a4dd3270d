package catalog

import "github.com/shopspring/decimal"

// Snapshot is an immutable view of the warehouse reference data. A new
// snapshot replaces the previous one wholesale on refresh; readers never
// observe a partially updated state.
type Snapshot struct {
	Categories    []Category
	Units         []Unit
	Ingredients   []Ingredient
	Consumables   []Consumable
	ProcessGroups []ProcessGroup
	Recipes       []MasterRecipe
	Products      []Product

	productsByID map[int64]*Product
	variantIndex map[int64]variantRef
	recipesByID  map[int64]*MasterRecipe
}

type variantRef struct {
	product *Product
	variant *ProductVariant
}

// Target is what one cart line draws stock from: a variant, or a simple
// product acting as its own sellable unit. Extra ingredients merge the
// variant-level and product-level declarations.
type Target struct {
	Name           string
	OutputWeight   decimal.Decimal
	MasterRecipeID *int64
	Ingredients    []ExtraIngredient
	Consumables    []ExtraConsumable
}

func NewSnapshot(
	categories []Category,
	units []Unit,
	ingredients []Ingredient,
	consumables []Consumable,
	processGroups []ProcessGroup,
	recipes []MasterRecipe,
	products []Product,
) *Snapshot {
	s := &Snapshot{
		Categories:    categories,
		Units:         units,
		Ingredients:   ingredients,
		Consumables:   consumables,
		ProcessGroups: processGroups,
		Recipes:       recipes,
		Products:      products,
		productsByID:  make(map[int64]*Product, len(products)),
		variantIndex:  make(map[int64]variantRef),
		recipesByID:   make(map[int64]*MasterRecipe, len(recipes)),
	}
	for i := range s.Products {
		p := &s.Products[i]
		s.productsByID[p.ID] = p
		for j := range p.Variants {
			v := &p.Variants[j]
			s.variantIndex[v.ID] = variantRef{product: p, variant: v}
		}
	}
	for i := range s.Recipes {
		s.recipesByID[s.Recipes[i].ID] = &s.Recipes[i]
	}
	return s
}

// EmptySnapshot returns a snapshot with no reference data loaded.
func EmptySnapshot() *Snapshot {
	return NewSnapshot(nil, nil, nil, nil, nil, nil, nil)
}

func (s *Snapshot) Product(id int64) (*Product, bool) {
	p, ok := s.productsByID[id]
	return p, ok
}

func (s *Snapshot) Recipe(id int64) (*MasterRecipe, bool) {
	r, ok := s.recipesByID[id]
	return r, ok
}

// ResolveTarget resolves a cart line's (product_id, variant_id) pair.
// The bool result is false when the catalog has no matching entry; callers
// treat that as a transient cart/catalog divergence, not an error.
func (s *Snapshot) ResolveTarget(productID int64, variantID *int64) (Target, bool) {
	product, ok := s.productsByID[productID]
	if !ok {
		return Target{}, false
	}

	if variantID == nil {
		return Target{
			Name:           product.Name,
			OutputWeight:   weightOrZero(product.OutputWeight),
			MasterRecipeID: product.MasterRecipeID,
			Ingredients:    mergeExtraIngredients(nil, product.Ingredients),
			Consumables:    mergeExtraConsumables(nil, product.Consumables),
		}, true
	}

	ref, ok := s.variantIndex[*variantID]
	if !ok || ref.product.ID != productID {
		return Target{}, false
	}

	return Target{
		Name:           product.Name + " (" + ref.variant.Name + ")",
		OutputWeight:   weightOrZero(ref.variant.OutputWeight),
		MasterRecipeID: ref.variant.MasterRecipeID,
		Ingredients:    mergeExtraIngredients(ref.variant.Ingredients, product.Ingredients),
		Consumables:    mergeExtraConsumables(ref.variant.Consumables, product.Consumables),
	}, true
}

func weightOrZero(w *decimal.Decimal) decimal.Decimal {
	if w == nil {
		return decimal.Zero
	}
	return *w
}

func mergeExtraIngredients(own, inherited []ExtraIngredient) []ExtraIngredient {
	merged := make([]ExtraIngredient, 0, len(own)+len(inherited))
	merged = append(merged, own...)
	merged = append(merged, inherited...)
	return merged
}

func mergeExtraConsumables(own, inherited []ExtraConsumable) []ExtraConsumable {
	merged := make([]ExtraConsumable, 0, len(own)+len(inherited))
	merged = append(merged, own...)
	merged = append(merged, inherited...)
	return merged
}
