package pizzeria

import (
	"context"
	"sync"
	"testing"
)

func TestRecorder(t *testing.T) {
	ctx := context.Background()

	t.Run("Keeps Order", func(t *testing.T) {
		rec := NewRecorder()
		rec.Notify(ctx, Notification{Kind: KindOrderPlaced, Message: "one"})
		rec.Notify(ctx, Notification{Kind: KindOrderFound, Message: "two"})

		msgs := rec.Messages()
		if len(msgs) != 2 || msgs[0] != "one" || msgs[1] != "two" {
			t.Errorf("unexpected messages: %q", msgs)
		}
		kinds := rec.Kinds()
		if kinds[0] != KindOrderPlaced || kinds[1] != KindOrderFound {
			t.Errorf("unexpected kinds: %v", kinds)
		}
	})

	t.Run("Returns Copies", func(t *testing.T) {
		rec := NewRecorder()
		rec.Notify(ctx, Notification{Message: "one"})
		notes := rec.Notifications()
		notes[0].Message = "changed"
		if rec.Messages()[0] != "one" {
			t.Error("Notifications must return a copy")
		}
	})

	t.Run("Reset", func(t *testing.T) {
		rec := NewRecorder()
		rec.Notify(ctx, Notification{Message: "one"})
		rec.Reset()
		if rec.Len() != 0 {
			t.Errorf("expected empty recorder, got %d", rec.Len())
		}
	})

	t.Run("Concurrent", func(t *testing.T) {
		rec := NewRecorder()
		var wg sync.WaitGroup
		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				rec.Notify(ctx, Notification{Message: "x"})
			}()
		}
		wg.Wait()
		if rec.Len() != 100 {
			t.Errorf("expected 100 notifications, got %d", rec.Len())
		}
	})
}

func TestMulti(t *testing.T) {
	a, b := NewRecorder(), NewRecorder()
	n := Multi(a, nil, b)
	n.Notify(context.Background(), Notification{Message: "hello"})

	if a.Len() != 1 || b.Len() != 1 {
		t.Errorf("expected both recorders to receive, got %d and %d", a.Len(), b.Len())
	}
}

func TestDiscardAndString(t *testing.T) {
	Discard.Notify(context.Background(), Notification{Message: "dropped"})

	n := Notification{Message: "Order is accepted."}
	if n.String() != "Order is accepted." {
		t.Errorf("expected message from String, got %q", n.String())
	}
}
