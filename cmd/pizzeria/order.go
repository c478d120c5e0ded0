package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/zoobzio/pizzeria"
)

// orderOptions holds everything the order command needs.
type orderOptions struct {
	kind      string
	size      string
	toppings  []string
	customer  string
	ticket    string
	format    string
	custom    customOptions
	basePrice float64
	strict    bool
	confirm   bool
}

type customOptions struct {
	kind     string
	size     string
	toppings []string
}

func (c customOptions) set() bool {
	return c.kind != "" || c.size != "" || len(c.toppings) > 0
}

var (
	orderOpts orderOptions

	orderCmd = &cobra.Command{
		Use:   "order",
		Short: "Build, price, and fulfil a pizza",
		Long: `Build a pizza from flags, price it, and walk it through the
fulfillment stages (accepted, cooking, packed, handed over).

Any --custom-* flag rebuilds the pizza with those values before pricing;
the base price always comes from --base-price.`,
		Example: `  pizzeria order --type Margherita --size Large --base-price 500 --topping Cheese --topping Olives
  pizzeria order --type Margherita --size Medium --base-price 400 --custom-type Veg --custom-topping Corn
  pizzeria order --type Farmhouse --size Large --base-price 650 --confirm --customer Asha --ticket order.msgpack`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			orderOpts.format = outputFormat
			return runOrder(cmd.Context(), orderOpts, cmd.OutOrStdout())
		},
	}
)

func init() {
	f := orderCmd.Flags()
	f.StringVar(&orderOpts.kind, "type", "", "Pizza type")
	f.StringVar(&orderOpts.size, "size", "", "Pizza size")
	f.Float64Var(&orderOpts.basePrice, "base-price", 0, "Base price in rupees")
	f.StringArrayVar(&orderOpts.toppings, "topping", nil, "Topping to add (repeatable)")
	f.StringVar(&orderOpts.custom.kind, "custom-type", "", "Rebuild with this type")
	f.StringVar(&orderOpts.custom.size, "custom-size", "", "Rebuild with this size")
	f.StringArrayVar(&orderOpts.custom.toppings, "custom-topping", nil, "Rebuild with these toppings (repeatable)")
	f.BoolVar(&orderOpts.strict, "strict", false, "Reject pizzas without a type or size")
	f.BoolVar(&orderOpts.confirm, "confirm", false, "Run the order-confirmation handshake before fulfillment")
	f.StringVar(&orderOpts.customer, "customer", "Customer", "Customer display name for --confirm")
	f.StringVar(&orderOpts.ticket, "ticket", "", "Write the priced pizza snapshot to this file")
}

func runOrder(ctx context.Context, opts orderOptions, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	sink, flush, err := newSink(opts.format, out)
	if err != nil {
		return err
	}
	defer flush() //nolint:errcheck

	registry := pizzeria.NewIngredientRegistry()
	builder := pizzeria.NewBuilder().
		WithRegistry(registry).
		SetType(opts.kind).
		SetSize(opts.size).
		SetBasePrice(opts.basePrice).
		AddAllToppings(opts.toppings...)

	var pizza pizzeria.Pizza
	if opts.strict {
		if pizza, err = builder.BuildStrict(); err != nil {
			return err
		}
	} else {
		pizza = builder.Build()
	}

	if opts.confirm {
		manager := pizzeria.NewManager(sink)
		customer := pizzeria.NewCustomer(opts.customer, sink)
		pizzeria.Connect(manager, customer, sink)
		if err := customer.SearchOrder(ctx); err != nil {
			return err
		}
	}

	renderer := pizzeria.NewRenderer(sink)
	var command pizzeria.Command = pizzeria.NewDefaultCommand(renderer, firstOrEmpty(opts.toppings))
	if opts.custom.set() {
		command = pizzeria.NewCustomizeCommand(renderer, opts.custom.kind, opts.custom.size, opts.custom.toppings)
	}
	receipt := command.Execute(ctx, pizza)

	chain := pizzeria.DefaultChain(sink)
	defer chain.Close() //nolint:errcheck
	if _, err := chain.Process(ctx, pizzeria.NewTicket(receipt.Pizza)); err != nil {
		return err
	}

	if opts.ticket != "" {
		if err := writeTicket(opts.ticket, receipt.Pizza); err != nil {
			return err
		}
	}
	return nil
}

func writeTicket(path string, pizza pizzeria.Pizza) error {
	data, err := pizzeria.EncodePizza(pizza)
	if err != nil {
		return fmt.Errorf("encode ticket: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write ticket: %w", err)
	}
	return nil
}

func firstOrEmpty(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
