package types

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestModifierDecodesBareID(t *testing.T) {
	var m Modifier
	if err := json.Unmarshal([]byte(`42`), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m.ModifierID != 42 {
		t.Fatalf("expected id 42, got %d", m.ModifierID)
	}
	if !m.Quantity.Equal(decimal.NewFromInt(1)) {
		t.Fatalf("bare id defaults quantity to 1, got %s", m.Quantity)
	}
}

func TestModifierDecodesObject(t *testing.T) {
	var m Modifier
	if err := json.Unmarshal([]byte(`{"modifier_id": 7, "quantity": 2.5}`), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m.ModifierID != 7 {
		t.Fatalf("expected id 7, got %d", m.ModifierID)
	}
	if !m.Quantity.Equal(decimal.RequireFromString("2.5")) {
		t.Fatalf("expected quantity 2.5, got %s", m.Quantity)
	}
}

func TestModifierDecodesLegacyIDField(t *testing.T) {
	var m Modifier
	if err := json.Unmarshal([]byte(`{"id": 9}`), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m.ModifierID != 9 {
		t.Fatalf("expected id 9, got %d", m.ModifierID)
	}
	if !m.Quantity.Equal(decimal.NewFromInt(1)) {
		t.Fatalf("missing quantity defaults to 1, got %s", m.Quantity)
	}
}

func TestModifierRejectsObjectWithoutID(t *testing.T) {
	var m Modifier
	if err := json.Unmarshal([]byte(`{"quantity": 3}`), &m); err == nil {
		t.Fatal("expected error for object with no id")
	}
}

func TestModifierRejectsOtherShapes(t *testing.T) {
	var m Modifier
	if err := json.Unmarshal([]byte(`"seven"`), &m); err == nil {
		t.Fatal("expected error for string modifier")
	}
}

func TestModifierEncodesQuantityAsNumber(t *testing.T) {
	out, err := json.Marshal(Modifier{ModifierID: 7, Quantity: decimal.RequireFromString("2.5")})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"modifier_id":7,"quantity":2.5}` {
		t.Fatalf("unexpected encoding %s", out)
	}
}
