package pizzeria

import (
	"slices"
	"sync"
	"testing"
)

func TestIngredientRegistry(t *testing.T) {
	t.Run("Same Name Same Identity", func(t *testing.T) {
		reg := NewIngredientRegistry()
		a := reg.Intern("Cheese")
		b := reg.Intern("Cheese")

		if a != b {
			t.Error("expected identical pointers for equal names")
		}
		if a.Name() != "Cheese" {
			t.Errorf("expected name Cheese, got %q", a.Name())
		}
		if reg.Len() != 1 {
			t.Errorf("expected 1 ingredient, got %d", reg.Len())
		}
	})

	t.Run("Different Names Distinct Identities", func(t *testing.T) {
		reg := NewIngredientRegistry()
		if reg.Intern("Cheese") == reg.Intern("Olives") {
			t.Error("expected distinct identities for different names")
		}
		if reg.Len() != 2 {
			t.Errorf("expected 2 ingredients, got %d", reg.Len())
		}
	})

	t.Run("Registries Are Independent", func(t *testing.T) {
		if NewIngredientRegistry().Intern("Corn") == NewIngredientRegistry().Intern("Corn") {
			t.Error("expected separate registries to hand out separate identities")
		}
	})

	t.Run("Swap Returns Canonical Identity", func(t *testing.T) {
		reg := NewIngredientRegistry()
		cheese := reg.Intern("Cheese")
		olives := cheese.Swap("Olives")

		if olives != reg.Intern("Olives") {
			t.Error("expected Swap to return the registry's identity")
		}
		if cheese.Name() != "Cheese" {
			t.Errorf("Swap must not modify the receiver, got %q", cheese.Name())
		}
		if cheese.Swap("Cheese") != cheese {
			t.Error("expected Swap to the same name to return the receiver")
		}
	})

	t.Run("InternAll Keeps Order And Duplicates", func(t *testing.T) {
		reg := NewIngredientRegistry()
		got := reg.InternAll("Corn", "Cheese", "Corn")

		if len(got) != 3 {
			t.Fatalf("expected 3 identities, got %d", len(got))
		}
		if got[0] != got[2] {
			t.Error("expected duplicate names to share an identity")
		}
		if reg.Len() != 2 {
			t.Errorf("expected 2 distinct ingredients, got %d", reg.Len())
		}
	})

	t.Run("Names Sorted", func(t *testing.T) {
		reg := NewIngredientRegistry()
		reg.InternAll("Olives", "Cheese", "Corn")
		want := []string{"Cheese", "Corn", "Olives"}
		if got := reg.Names(); !slices.Equal(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("Metrics", func(t *testing.T) {
		reg := NewIngredientRegistry()
		reg.InternAll("Cheese", "Cheese", "Olives")

		if v := reg.Metrics().Counter(IngredientsInternedTotal).Value(); v != 2 {
			t.Errorf("expected 2 interned, got %f", v)
		}
		if v := reg.Metrics().Counter(IngredientsReusedTotal).Value(); v != 1 {
			t.Errorf("expected 1 reused, got %f", v)
		}
		if v := reg.Metrics().Gauge(IngredientsPoolSize).Value(); v != 2 {
			t.Errorf("expected pool size 2, got %f", v)
		}
	})

	t.Run("Concurrent Intern", func(t *testing.T) {
		reg := NewIngredientRegistry()
		const workers = 50
		results := make([]*Ingredient, workers)

		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = reg.Intern("Paneer")
			}(i)
		}
		wg.Wait()

		for i, ing := range results {
			if ing != results[0] {
				t.Fatalf("worker %d got a different identity", i)
			}
		}
		if reg.Len() != 1 {
			t.Errorf("expected 1 ingredient, got %d", reg.Len())
		}
	})
}

func TestIngredientRegistryZeroValue(t *testing.T) {
	var reg IngredientRegistry

	a := reg.Intern("Cheese")
	if a != reg.Intern("Cheese") {
		t.Error("expected the same identity from a zero-value registry")
	}
	if reg.Len() != 1 {
		t.Errorf("expected 1 ingredient, got %d", reg.Len())
	}
	if v := reg.Metrics().Counter(IngredientsInternedTotal).Value(); v != 1 {
		t.Errorf("expected 1 interned, got %v", v)
	}
}
