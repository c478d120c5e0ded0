package pizzeria

import (
	"github.com/vmihailenco/msgpack/v5"
)

// pizzaRecord is the msgpack shape of a Pizza snapshot.
type pizzaRecord struct {
	Type      string   `msgpack:"type"`
	Size      string   `msgpack:"size"`
	Toppings  []string `msgpack:"toppings"`
	BasePrice float64  `msgpack:"base_price"`
}

// EncodePizza serializes a pizza snapshot using msgpack encoding.
// Ingredient identities are not encoded; they belong to a registry.
func EncodePizza(p Pizza) ([]byte, error) {
	return msgpack.Marshal(pizzaRecord{
		Type:      p.kind,
		Size:      p.size,
		Toppings:  p.toppings,
		BasePrice: p.basePrice,
	})
}

// DecodePizza rebuilds a pizza from bytes produced by EncodePizza.
func DecodePizza(data []byte) (Pizza, error) {
	var rec pizzaRecord
	if err := msgpack.Unmarshal(data, &rec); err != nil {
		return Pizza{}, err
	}
	return NewBuilder().
		SetType(rec.Type).
		SetSize(rec.Size).
		SetBasePrice(rec.BasePrice).
		AddAllToppings(rec.Toppings...).
		Build(), nil
}
