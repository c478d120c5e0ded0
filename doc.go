// Package pizzeria models the order-processing pipeline of a pizza shop:
// ingredient interning, a pizza builder with pricing, order commands, a
// fulfillment step chain, and an order-confirmation handshake.
//
// # Overview
//
// Every operation is synchronous and runs to completion on the caller's
// goroutine. Nothing is persisted. Domain events are reported as
// Notification values through a Notifier, so the presentation (console,
// GUI, log sink) is the caller's choice.
//
// # Building and pricing
//
//	pizza := pizzeria.NewBuilder().
//	    SetType("Margherita").
//	    SetSize("Large").
//	    SetBasePrice(500).
//	    AddAllToppings("Cheese", "Olives").
//	    Build()
//
//	renderer := pizzeria.NewRenderer(notifier)
//	receipt := renderer.Render(ctx, pizza)
//	// receipt.Total == 800: 500 + 2*150
//
// Each topping costs ToppingSurcharge (150). Render returns the priced
// Receipt and emits the summary line.
//
// # Ingredients
//
// IngredientRegistry hands out one shared *Ingredient per name. A Builder
// attached with WithRegistry interns every topping it receives.
//
//	reg := pizzeria.NewIngredientRegistry()
//	reg.Intern("Cheese") == reg.Intern("Cheese") // true
//
// # Commands
//
// A Command rebuilds a pizza from a base pizza and renders it:
//
//   - DefaultCommand: re-renders the base pizza unchanged
//   - CustomizeCommand: new type, size, and toppings, base price kept
//
// # Fulfillment
//
// StepChain runs steps in order over a Ticket. DefaultChain wires the four
// stages:
//
//	chain := pizzeria.DefaultChain(notifier)
//	defer chain.Close()
//	ticket, err := chain.Process(ctx, pizzeria.NewTicket(pizza))
//	// notifier saw: accepted, cooking, packed, handed over
//
// Chains can be rewired at runtime (Push, Unshift, After, Before, Remove,
// Replace, Link) and replayed from any step with ProcessFrom.
//
// # Order confirmation
//
//	manager := pizzeria.NewManager(notifier)
//	customer := pizzeria.NewCustomer("Asha", notifier)
//	pizzeria.Connect(manager, customer, notifier)
//	_ = customer.SearchOrder(ctx)
//	manager.Confirmed() // true
//
// The handshake and the step chain are independent; confirming an order
// does not start fulfillment.
package pizzeria
