package catalog

import "github.com/shopspring/decimal"

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Unit struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Ingredient struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	UnitID        *int64          `json:"unit_id"`
	StockQuantity decimal.Decimal `json:"stock_quantity"`
}

type Consumable struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	UnitID        *int64          `json:"unit_id"`
	StockQuantity decimal.Decimal `json:"stock_quantity"`
}

type ProcessGroup struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type RecipeItem struct {
	IngredientID int64           `json:"ingredient_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	IsPercentage bool            `json:"is_percentage"`
}

// MasterRecipe is the technical card producing one unit of a target's yield.
// Percentage items are interpreted against the owning target's output weight.
type MasterRecipe struct {
	ID    int64        `json:"id"`
	Name  string       `json:"name"`
	Items []RecipeItem `json:"items"`
}

type ExtraIngredient struct {
	IngredientID int64           `json:"ingredient_id"`
	Quantity     decimal.Decimal `json:"quantity"`
}

type ExtraConsumable struct {
	ConsumableID int64           `json:"consumable_id"`
	Quantity     decimal.Decimal `json:"quantity"`
}

type ProductVariant struct {
	ID             int64             `json:"id"`
	Name           string            `json:"name"`
	Price          decimal.Decimal   `json:"price"`
	StockQuantity  *decimal.Decimal  `json:"stock_quantity"`
	OutputWeight   *decimal.Decimal  `json:"output_weight"`
	MasterRecipeID *int64            `json:"master_recipe_id"`
	Ingredients    []ExtraIngredient `json:"ingredients"`
	Consumables    []ExtraConsumable `json:"consumables"`
}

type Product struct {
	ID             int64             `json:"id"`
	Name           string            `json:"name"`
	Price          decimal.Decimal   `json:"price"`
	CategoryID     *int64            `json:"category_id"`
	TrackStock     bool              `json:"track_stock"`
	StockQuantity  *decimal.Decimal  `json:"stock_quantity"`
	OutputWeight   *decimal.Decimal  `json:"output_weight"`
	MasterRecipeID *int64            `json:"master_recipe_id"`
	Ingredients    []ExtraIngredient `json:"ingredients"`
	Consumables    []ExtraConsumable `json:"consumables"`
	Variants       []ProductVariant  `json:"variants"`
}
