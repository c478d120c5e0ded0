package pizzeria

import (
	"slices"
	"sync"

	"github.com/zoobzio/metricz"
)

// Observability constants for the IngredientRegistry.
const (
	IngredientsInternedTotal = metricz.Key("ingredients.interned.total")
	IngredientsReusedTotal   = metricz.Key("ingredients.reused.total")
	IngredientsPoolSize      = metricz.Key("ingredients.pool.size")
)

// Ingredient is the canonical identity of an ingredient name.
// Within one IngredientRegistry there is exactly one *Ingredient per name,
// so identities can be compared with ==.
type Ingredient struct {
	registry *IngredientRegistry
	name     string
}

// Name returns the ingredient name.
func (i *Ingredient) Name() string {
	return i.name
}

// String returns the ingredient name.
func (i *Ingredient) String() string {
	return i.name
}

// Swap returns the canonical identity for name from the same registry.
// The receiver is never modified.
func (i *Ingredient) Swap(name string) *Ingredient {
	return i.registry.Intern(name)
}

// IngredientRegistry interns ingredient names. Identities are created lazily
// on first request and live as long as the registry; there is no eviction.
//
// The zero value is an empty registry ready to use. IngredientRegistry is safe for concurrent use.
//
// Example:
//
//	reg := pizzeria.NewIngredientRegistry()
//	a := reg.Intern("Cheese")
//	b := reg.Intern("Cheese")
//	// a == b
type IngredientRegistry struct {
	pool    map[string]*Ingredient
	metrics *metricz.Registry
	once    sync.Once
	mu      sync.RWMutex
}

// NewIngredientRegistry creates an empty registry.
func NewIngredientRegistry() *IngredientRegistry {
	r := &IngredientRegistry{}
	r.init()
	return r
}

func (r *IngredientRegistry) init() {
	r.once.Do(func() {
		metrics := metricz.New()
		metrics.Counter(IngredientsInternedTotal)
		metrics.Counter(IngredientsReusedTotal)
		metrics.Gauge(IngredientsPoolSize)

		r.mu.Lock()
		r.pool = make(map[string]*Ingredient)
		r.metrics = metrics
		r.mu.Unlock()
	})
}

// Intern returns the identity for name, creating it if this is the first
// request for that name.
func (r *IngredientRegistry) Intern(name string) *Ingredient {
	r.init()

	r.mu.RLock()
	ing, ok := r.pool[name]
	r.mu.RUnlock()
	if ok {
		r.metrics.Counter(IngredientsReusedTotal).Inc()
		return ing
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Another goroutine may have won the race between the two locks.
	if ing, ok := r.pool[name]; ok {
		r.metrics.Counter(IngredientsReusedTotal).Inc()
		return ing
	}

	ing = &Ingredient{registry: r, name: name}
	r.pool[name] = ing
	r.metrics.Counter(IngredientsInternedTotal).Inc()
	r.metrics.Gauge(IngredientsPoolSize).Set(float64(len(r.pool)))
	return ing
}

// InternAll interns every name, preserving order and duplicates.
func (r *IngredientRegistry) InternAll(names ...string) []*Ingredient {
	out := make([]*Ingredient, len(names))
	for i, name := range names {
		out[i] = r.Intern(name)
	}
	return out
}

// Len returns the number of distinct ingredients interned so far.
func (r *IngredientRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.pool)
}

// Names returns the interned names in sorted order.
func (r *IngredientRegistry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.pool))
	for name := range r.pool {
		names = append(names, name)
	}
	r.mu.RUnlock()
	slices.Sort(names)
	return names
}

// Metrics returns the metrics registry for this registry.
func (r *IngredientRegistry) Metrics() *metricz.Registry {
	r.init()
	return r.metrics
}
