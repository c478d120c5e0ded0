package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	rootCmd = &cobra.Command{
		Use:   "pizzeria",
		Short: "Order, price, and fulfil pizzas from the terminal",
		Long: `pizzeria drives the pizza order pipeline from the command line.

Build and price a pizza, walk it through the fulfillment stages, run the
order-confirmation handshake between a customer and the manager, and
replay saved order tickets.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	outputFormat string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", formatText,
		"Notification output: text (one line per event) or log (structured JSON)")

	rootCmd.AddCommand(orderCmd)
	rootCmd.AddCommand(confirmCmd)
	rootCmd.AddCommand(replayCmd)
}
