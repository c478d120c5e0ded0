package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/zoobzio/pizzeria"
)

var (
	replayFrom string

	replayCmd = &cobra.Command{
		Use:   "replay <ticket>",
		Short: "Re-price and re-fulfil a saved order ticket",
		Long: `Load a ticket written by "order --ticket", print its summary, and
replay the fulfillment stages. Use --from to start at a later stage.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd.Context(), args[0], replayFrom, outputFormat, cmd.OutOrStdout())
		},
	}
)

func init() {
	replayCmd.Flags().StringVar(&replayFrom, "from", "",
		"Stage to resume from: accepting, cooking, packing, or handover")
}

func runReplay(ctx context.Context, path, from, format string, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read ticket: %w", err)
	}
	pizza, err := pizzeria.DecodePizza(data)
	if err != nil {
		return fmt.Errorf("decode ticket: %w", err)
	}

	sink, flush, err := newSink(format, out)
	if err != nil {
		return err
	}
	defer flush() //nolint:errcheck

	receipt := pizzeria.NewDefaultCommand(pizzeria.NewRenderer(sink), "").Execute(ctx, pizza)

	chain := pizzeria.DefaultChain(sink)
	defer chain.Close() //nolint:errcheck

	ticket := pizzeria.NewTicket(receipt.Pizza)
	if from == "" {
		_, err = chain.Process(ctx, ticket)
	} else {
		_, err = chain.ProcessFrom(ctx, ticket, from)
	}
	return err
}
