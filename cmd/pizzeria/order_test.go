package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zoobzio/pizzeria"
)

var stageLines = []string{
	"Order is accepted.",
	"Pizza is being cooked.",
	"Pizza is being packed.",
	"Pizza is handed over to the driver for delivery.",
}

func lines(buf *bytes.Buffer) []string {
	return strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
}

func TestRunOrder(t *testing.T) {
	ctx := context.Background()
	base := orderOptions{
		kind:      "Margherita",
		size:      "Large",
		basePrice: 500,
		toppings:  []string{"Cheese", "Olives"},
		format:    formatText,
	}

	t.Run("Default", func(t *testing.T) {
		var buf bytes.Buffer
		if err := runOrder(ctx, base, &buf); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := append([]string{
			"Pizza: Margherita, Size: Large, Toppings: Cheese, Olives ",
			"Total Price : Rs 800.0",
		}, stageLines...)
		got := lines(&buf)
		if strings.Join(got, "|") != strings.Join(want, "|") {
			t.Errorf("expected %q, got %q", want, got)
		}
	})

	t.Run("Customized", func(t *testing.T) {
		opts := base
		opts.custom = customOptions{kind: "Veg", toppings: []string{"Corn"}}
		var buf bytes.Buffer
		if err := runOrder(ctx, opts, &buf); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got := lines(&buf)
		if got[0] != "Pizza: Veg, Size: , Toppings: Corn " || got[1] != "Total Price : Rs 650.0" {
			t.Errorf("unexpected summary: %q", got[:2])
		}
	})

	t.Run("Confirm First", func(t *testing.T) {
		opts := base
		opts.confirm = true
		opts.customer = "Asha"
		var buf bytes.Buffer
		if err := runOrder(ctx, opts, &buf); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got := lines(&buf)
		want := []string{"Asha : Pizza Ordered", "Order Manager: Find Order", "Manager : Order Confirmation"}
		for i, w := range want {
			if got[i] != w {
				t.Errorf("line %d: expected %q, got %q", i, w, got[i])
			}
		}
		if len(got) != 3+2+len(stageLines) {
			t.Errorf("expected %d lines, got %d", 3+2+len(stageLines), len(got))
		}
	})

	t.Run("Strict", func(t *testing.T) {
		opts := base
		opts.strict = true
		opts.size = ""
		var buf bytes.Buffer
		err := runOrder(ctx, opts, &buf)
		if !errors.Is(err, pizzeria.ErrInvalidPizzaSpec) {
			t.Errorf("expected ErrInvalidPizzaSpec, got %v", err)
		}
		if buf.Len() != 0 {
			t.Errorf("expected no output, got %q", buf.String())
		}
	})

	t.Run("Writes Ticket", func(t *testing.T) {
		opts := base
		opts.ticket = filepath.Join(t.TempDir(), "order.msgpack")
		if err := runOrder(ctx, opts, &bytes.Buffer{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		data, err := os.ReadFile(opts.ticket)
		if err != nil {
			t.Fatalf("read ticket: %v", err)
		}
		pizza, err := pizzeria.DecodePizza(data)
		if err != nil {
			t.Fatalf("decode ticket: %v", err)
		}
		if pizza.TotalPrice() != 800 {
			t.Errorf("expected total 800, got %v", pizza.TotalPrice())
		}
	})

	t.Run("Bad Format", func(t *testing.T) {
		opts := base
		opts.format = "xml"
		if err := runOrder(ctx, opts, &bytes.Buffer{}); err == nil {
			t.Error("expected error for unknown format")
		}
	})
}

func TestRunConfirm(t *testing.T) {
	var buf bytes.Buffer
	if err := runConfirm(context.Background(), "Ravi", formatText, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{
		"Ravi : Pizza Ordered",
		"Order Manager: Find Order",
		"Manager : Order Confirmation",
		"confirmed: true",
	}
	got := lines(&buf)
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRunReplay(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "order.msgpack")
	pizza := pizzeria.NewBuilder().
		SetType("Farmhouse").
		SetSize("Medium").
		SetBasePrice(600).
		AddAllToppings("Onion").
		Build()
	if err := writeTicket(path, pizza); err != nil {
		t.Fatalf("write ticket: %v", err)
	}

	t.Run("Full", func(t *testing.T) {
		var buf bytes.Buffer
		if err := runReplay(ctx, path, "", formatText, &buf); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got := lines(&buf)
		if got[1] != "Total Price : Rs 750.0" {
			t.Errorf("unexpected total line %q", got[1])
		}
		if strings.Join(got[2:], "|") != strings.Join(stageLines, "|") {
			t.Errorf("unexpected stages %q", got[2:])
		}
	})

	t.Run("From Packing", func(t *testing.T) {
		var buf bytes.Buffer
		if err := runReplay(ctx, path, "packing", formatText, &buf); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got := lines(&buf)
		if strings.Join(got[2:], "|") != strings.Join(stageLines[2:], "|") {
			t.Errorf("unexpected stages %q", got[2:])
		}
	})

	t.Run("Unknown Stage", func(t *testing.T) {
		err := runReplay(ctx, path, "baking", formatText, &bytes.Buffer{})
		if !errors.Is(err, pizzeria.ErrStepNotFound) {
			t.Errorf("expected ErrStepNotFound, got %v", err)
		}
	})

	t.Run("Missing File", func(t *testing.T) {
		err := runReplay(ctx, filepath.Join(t.TempDir(), "nope"), "", formatText, &bytes.Buffer{})
		if err == nil {
			t.Error("expected read error")
		}
	})
}
