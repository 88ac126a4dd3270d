package types

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

func init() {
	// Upstream services expect plain JSON numbers for quantities and prices.
	decimal.MarshalJSONWithoutQuotes = true
}

// Modifier is the canonical modifier record. Historically the cart service
// has returned modifiers both as bare ingredient ids and as structured
// objects; decoding collapses both shapes into this one.
type Modifier struct {
	ModifierID int64           `json:"modifier_id"`
	Quantity   decimal.Decimal `json:"quantity"`
}

func (m *Modifier) UnmarshalJSON(data []byte) error {
	var bare int64
	if err := json.Unmarshal(data, &bare); err == nil {
		m.ModifierID = bare
		m.Quantity = decimal.NewFromInt(1)
		return nil
	}

	var obj struct {
		ModifierID *int64           `json:"modifier_id"`
		ID         *int64           `json:"id"`
		Quantity   *decimal.Decimal `json:"quantity"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("modifier must be an id or an object: %w", err)
	}

	switch {
	case obj.ModifierID != nil:
		m.ModifierID = *obj.ModifierID
	case obj.ID != nil:
		m.ModifierID = *obj.ID
	default:
		return fmt.Errorf("modifier object is missing an id")
	}

	if obj.Quantity != nil {
		m.Quantity = *obj.Quantity
	} else {
		m.Quantity = decimal.NewFromInt(1)
	}
	return nil
}
