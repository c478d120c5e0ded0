package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/zoobzio/pizzeria"
)

var (
	confirmCustomer string

	confirmCmd = &cobra.Command{
		Use:   "confirm",
		Short: "Run the order-confirmation handshake",
		Long: `Run the customer -> mediator -> manager handshake and report whether
the manager confirmed the order.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfirm(cmd.Context(), confirmCustomer, outputFormat, cmd.OutOrStdout())
		},
	}
)

func init() {
	confirmCmd.Flags().StringVar(&confirmCustomer, "customer", "Customer", "Customer display name")
}

func runConfirm(ctx context.Context, customerName, format string, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	sink, flush, err := newSink(format, out)
	if err != nil {
		return err
	}
	defer flush() //nolint:errcheck

	manager := pizzeria.NewManager(sink)
	customer := pizzeria.NewCustomer(customerName, sink)
	pizzeria.Connect(manager, customer, sink)

	if err := customer.SearchOrder(ctx); err != nil {
		return err
	}
	if format == formatText {
		fmt.Fprintf(out, "confirmed: %t\n", manager.Confirmed())
	}
	return nil
}
