package pizzeria

import (
	"context"
	"slices"
)

// Command rebuilds a pizza from a base pizza and renders the result.
//
// Rebuild is the pure half, Execute rebuilds and then renders through the
// command's Renderer.
type Command interface {
	Rebuild(base Pizza) Pizza
	Execute(ctx context.Context, base Pizza) Receipt
}

// DefaultCommand re-renders the base pizza as is.
//
// The topping given to NewDefaultCommand is stored but is not applied to the
// rebuilt pizza: a DefaultCommand for "Mushroom" never adds Mushroom. Use
// CustomizeCommand to change toppings.
type DefaultCommand struct {
	renderer *Renderer
	topping  string
}

// NewDefaultCommand creates a DefaultCommand rendering through renderer.
// A nil renderer is replaced by one that discards notifications.
func NewDefaultCommand(renderer *Renderer, topping string) *DefaultCommand {
	return &DefaultCommand{renderer: rendererOrDefault(renderer), topping: topping}
}

// Topping returns the topping the command was created with.
func (c *DefaultCommand) Topping() string {
	return c.topping
}

// Rebuild copies every field of base into a new pizza. Ingredient
// identities come from the registry base was built with, if any.
func (*DefaultCommand) Rebuild(base Pizza) Pizza {
	return NewBuilder().
		WithRegistry(base.registry).
		SetType(base.kind).
		SetSize(base.size).
		SetBasePrice(base.basePrice).
		AddAllToppings(base.toppings...).
		Build()
}

// Execute rebuilds base and renders it.
func (c *DefaultCommand) Execute(ctx context.Context, base Pizza) Receipt {
	return c.renderer.Render(ctx, c.Rebuild(base))
}

// CustomizeCommand replaces type, size, and toppings while keeping the base
// price of the pizza it is applied to. The base price cannot be customized.
type CustomizeCommand struct {
	renderer *Renderer
	kind     string
	size     string
	toppings []string
}

// NewCustomizeCommand creates a CustomizeCommand rendering through renderer.
// A nil renderer is replaced by one that discards notifications.
func NewCustomizeCommand(renderer *Renderer, kind, size string, toppings []string) *CustomizeCommand {
	return &CustomizeCommand{
		renderer: rendererOrDefault(renderer),
		kind:     kind,
		size:     size,
		toppings: slices.Clone(toppings),
	}
}

// Rebuild takes type, size, and toppings from the command and the base price
// and ingredient registry from base.
func (c *CustomizeCommand) Rebuild(base Pizza) Pizza {
	return NewBuilder().
		WithRegistry(base.registry).
		SetType(c.kind).
		SetSize(c.size).
		SetBasePrice(base.basePrice).
		AddAllToppings(c.toppings...).
		Build()
}

// Execute rebuilds base and renders it.
func (c *CustomizeCommand) Execute(ctx context.Context, base Pizza) Receipt {
	return c.renderer.Render(ctx, c.Rebuild(base))
}

func rendererOrDefault(r *Renderer) *Renderer {
	if r == nil {
		return NewRenderer(nil)
	}
	return r
}
