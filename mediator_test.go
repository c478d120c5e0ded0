package pizzeria

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/zoobzio/clockz"
)

func TestOrderHandshake(t *testing.T) {
	ctx := context.Background()

	t.Run("Three Hops In Order", func(t *testing.T) {
		rec := NewRecorder()
		manager := NewManager(rec)
		customer := NewCustomer("Asha", rec)
		mediator := Connect(manager, customer, rec)

		if manager.Confirmed() {
			t.Fatal("flag must start false")
		}
		if err := customer.SearchOrder(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []string{
			"Asha : Pizza Ordered",
			"Order Manager: Find Order",
			"Manager : Order Confirmation",
		}
		got := rec.Messages()
		if len(got) != len(want) {
			t.Fatalf("expected %d notifications, got %q", len(want), got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("notification %d: expected %q, got %q", i, want[i], got[i])
			}
		}
		wantKinds := []Kind{KindOrderPlaced, KindOrderFound, KindOrderConfirmed}
		for i, k := range rec.Kinds() {
			if k != wantKinds[i] {
				t.Errorf("kind %d: expected %s, got %s", i, wantKinds[i], k)
			}
		}
		if !manager.Confirmed() {
			t.Error("expected manager to confirm")
		}
		if mediator.Manager() != manager || mediator.Customer() != customer {
			t.Error("mediator should expose its users")
		}
		if customer.OrderMediator() != mediator || manager.OrderMediator() != mediator {
			t.Error("Connect should link both users")
		}
	})

	t.Run("Confirmation Is Idempotent", func(t *testing.T) {
		rec := NewRecorder()
		manager := NewManager(rec)
		manager.OrderConfirmation(ctx)
		manager.OrderConfirmation(ctx)

		if !manager.Confirmed() {
			t.Error("expected flag to stay true")
		}
		if rec.Len() != 2 {
			t.Errorf("expected a notification per call, got %d", rec.Len())
		}
	})

	t.Run("Managers Do Not Share Flag", func(t *testing.T) {
		a, b := NewManager(nil), NewManager(nil)
		a.OrderConfirmation(ctx)
		if b.Confirmed() {
			t.Error("confirmation must be scoped to the manager")
		}
	})

	t.Run("No Mediator", func(t *testing.T) {
		rec := NewRecorder()
		customer := NewCustomer("Ravi", rec)

		err := customer.SearchOrder(ctx)
		if !errors.Is(err, ErrNoMediator) {
			t.Fatalf("expected ErrNoMediator, got %v", err)
		}
		if rec.Len() != 0 {
			t.Errorf("expected no notifications, got %d", rec.Len())
		}
	})

	t.Run("NewOrderMediator Does Not Link", func(t *testing.T) {
		manager, customer := NewManager(nil), NewCustomer("Ravi", nil)
		m := NewOrderMediator(manager, customer, nil)

		if customer.OrderMediator() != nil {
			t.Error("expected customer to stay unlinked")
		}
		customer.SetOrderMediator(m)
		if err := customer.SearchOrder(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !manager.Confirmed() {
			t.Error("expected confirmation after linking")
		}
	})

	t.Run("FindOrder Directly", func(t *testing.T) {
		rec := NewRecorder()
		manager := NewManager(rec)
		NewOrderMediator(manager, nil, rec).FindOrder(ctx)

		if !manager.Confirmed() || rec.Len() != 2 {
			t.Errorf("expected find + confirm, got %q", rec.Messages())
		}
	})

	t.Run("Uses Clocks", func(t *testing.T) {
		clock := clockz.NewFakeClock()
		clock.Advance(3 * time.Hour)
		rec := NewRecorder()

		manager := NewManager(rec).WithClock(clock)
		customer := NewCustomer("Asha", rec).WithClock(clock)
		Connect(manager, customer, rec).WithClock(clock)

		if err := customer.SearchOrder(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, n := range rec.Notifications() {
			if !n.Timestamp.Equal(clock.Now()) {
				t.Errorf("%q: expected %v, got %v", n.Message, clock.Now(), n.Timestamp)
			}
		}
	})

	t.Run("Customer Name", func(t *testing.T) {
		if NewCustomer("Asha", nil).Name() != "Asha" {
			t.Error("expected customer name")
		}
	})
}
