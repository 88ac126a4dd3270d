package types

import "github.com/shopspring/decimal"

// CartLine is one product-variant selection in the active cart.
// Price is a display cache carried from the cart service; it is never
// used as a pricing authority.
type CartLine struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"product_id"`
	VariantID *int64          `json:"variant_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
	Modifiers []Modifier      `json:"modifiers"`
}

type Customer struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
