package pizzeria

import (
	"fmt"
	"slices"
)

// Pizza is an immutable pizza description. The only way to obtain a
// populated Pizza is through a Builder (or DecodePizza); any change
// requires building a new one.
//
// The zero value is a legal, empty pizza priced at zero.
type Pizza struct {
	registry    *IngredientRegistry
	kind        string
	size        string
	toppings    []string
	ingredients []*Ingredient
	basePrice   float64
}

// Type returns the pizza type, e.g. "Margherita".
func (p Pizza) Type() string {
	return p.kind
}

// Size returns the pizza size, e.g. "Large".
func (p Pizza) Size() string {
	return p.size
}

// BasePrice returns the price before topping surcharges.
func (p Pizza) BasePrice() float64 {
	return p.basePrice
}

// Toppings returns a copy of the topping names in the order they were added.
func (p Pizza) Toppings() []string {
	return slices.Clone(p.toppings)
}

// Ingredients returns the canonical identities of the toppings when the
// pizza was built with a registry, or nil otherwise.
func (p Pizza) Ingredients() []*Ingredient {
	return slices.Clone(p.ingredients)
}

// Clone returns a copy that shares no slices with p.
func (p Pizza) Clone() Pizza {
	return Pizza{
		registry:    p.registry,
		kind:        p.kind,
		size:        p.size,
		basePrice:   p.basePrice,
		toppings:    slices.Clone(p.toppings),
		ingredients: slices.Clone(p.ingredients),
	}
}

// Builder stages the fields of a Pizza. Setters overwrite, AddAllToppings
// appends, and Build snapshots the staged state without resetting it.
// No field is required.
//
// Example:
//
//	pizza := pizzeria.NewBuilder().
//	    SetType("Margherita").
//	    SetSize("Large").
//	    SetBasePrice(500).
//	    AddAllToppings("Cheese", "Olives").
//	    Build()
type Builder struct {
	registry    *IngredientRegistry
	kind        string
	size        string
	toppings    []string
	ingredients []*Ingredient
	basePrice   float64
}

// NewBuilder creates a Builder with no staged fields and no toppings.
func NewBuilder() *Builder {
	return &Builder{toppings: make([]string, 0)}
}

// WithRegistry makes the builder intern every topping it receives.
// Toppings added before the call are interned immediately.
func (b *Builder) WithRegistry(reg *IngredientRegistry) *Builder {
	b.registry = reg
	b.ingredients = nil
	if reg != nil {
		b.ingredients = reg.InternAll(b.toppings...)
	}
	return b
}

// SetType stages the pizza type.
func (b *Builder) SetType(kind string) *Builder {
	b.kind = kind
	return b
}

// SetSize stages the pizza size.
func (b *Builder) SetSize(size string) *Builder {
	b.size = size
	return b
}

// SetBasePrice stages the base price.
func (b *Builder) SetBasePrice(price float64) *Builder {
	b.basePrice = price
	return b
}

// AddAllToppings appends toppings to the staged list.
func (b *Builder) AddAllToppings(toppings ...string) *Builder {
	b.toppings = append(b.toppings, toppings...)
	if b.registry != nil {
		b.ingredients = append(b.ingredients, b.registry.InternAll(toppings...)...)
	}
	return b
}

// Build returns a Pizza holding the staged values at the time of the call.
// The builder keeps its state, so later calls see earlier additions.
func (b *Builder) Build() Pizza {
	return Pizza{
		registry:    b.registry,
		kind:        b.kind,
		size:        b.size,
		basePrice:   b.basePrice,
		toppings:    slices.Clone(b.toppings),
		ingredients: slices.Clone(b.ingredients),
	}
}

// BuildStrict is Build with validation: type and size must be set.
// The error wraps ErrInvalidPizzaSpec.
func (b *Builder) BuildStrict() (Pizza, error) {
	switch {
	case b.kind == "":
		return Pizza{}, fmt.Errorf("%w: type is empty", ErrInvalidPizzaSpec)
	case b.size == "":
		return Pizza{}, fmt.Errorf("%w: size is empty", ErrInvalidPizzaSpec)
	}
	return b.Build(), nil
}
