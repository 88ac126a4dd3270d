package types

import "github.com/shopspring/decimal"

type CheckoutItem struct {
	ProductID int64      `json:"product_id"`
	VariantID *int64     `json:"variant_id"`
	Quantity  int64      `json:"quantity"`
	Modifiers []Modifier `json:"modifiers"`
}

// CheckoutPayload is the order submission. It intentionally carries no
// client-computed total: the order service is the sole price authority.
type CheckoutPayload struct {
	Items         []CheckoutItem `json:"items"`
	PaymentMethod string         `json:"payment_method"`
	CustomerID    *int64         `json:"customer_id"`
}

// CheckoutResult is the terminal outcome of one checkout attempt.
// Total is the server-reported price and is only set on success.
type CheckoutResult struct {
	Success bool            `json:"success"`
	Text    string          `json:"text"`
	Total   decimal.Decimal `json:"total"`
}
