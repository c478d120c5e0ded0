package pizzeria

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/zoobzio/clockz"
	"github.com/zoobzio/metricz"
)

// ToppingSurcharge is the flat price added per topping, in rupees.
const ToppingSurcharge = 150

// RendererName is the notification source used by Renderer.
const RendererName Name = "renderer"

// Observability constants for the Renderer.
const (
	RendererRenderedTotal = metricz.Key("renderer.rendered.total")
	RendererLastTotal     = metricz.Key("renderer.last_total")
)

// ToppingsPrice returns the surcharge for all toppings.
func (p Pizza) ToppingsPrice() float64 {
	return float64(len(p.toppings) * ToppingSurcharge)
}

// TotalPrice returns the base price plus the topping surcharge.
func (p Pizza) TotalPrice() float64 {
	return p.basePrice + p.ToppingsPrice()
}

// Summary returns the human-readable order line with the total price.
func (p Pizza) Summary() string {
	return fmt.Sprintf("Pizza: %s, Size: %s, Toppings: %s \nTotal Price : Rs %s",
		p.kind, p.size, strings.Join(p.toppings, ", "), formatRupees(p.TotalPrice()))
}

// formatRupees prints whole amounts with one decimal ("800.0") and keeps
// every significant digit otherwise.
func formatRupees(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

// Receipt is the priced result of rendering a Pizza.
type Receipt struct {
	Pizza         Pizza
	Summary       string
	ToppingsPrice float64
	Total         float64
}

// Renderer prices pizzas and emits their summary line.
//
// A Renderer remembers the total of the most recent render. This is the one
// piece of shared state in the pricing path: renders through the same
// Renderer overwrite each other's LastTotal, last writer wins. Callers that
// need a specific total should use the returned Receipt instead.
type Renderer struct {
	notifier  Notifier
	clock     clockz.Clock
	metrics   *metricz.Registry
	lastTotal float64
	mu        sync.RWMutex
}

// NewRenderer creates a Renderer that emits summaries to notifier.
// A nil notifier discards them.
func NewRenderer(notifier Notifier) *Renderer {
	metrics := metricz.New()
	metrics.Counter(RendererRenderedTotal)
	metrics.Gauge(RendererLastTotal)

	return &Renderer{
		notifier: notifierOrDiscard(notifier),
		metrics:  metrics,
	}
}

// Render prices pizza, records the total as LastTotal, and emits a
// KindPizzaSummary notification.
func (r *Renderer) Render(ctx context.Context, pizza Pizza) Receipt {
	receipt := Receipt{
		Pizza:         pizza,
		Summary:       pizza.Summary(),
		ToppingsPrice: pizza.ToppingsPrice(),
		Total:         pizza.TotalPrice(),
	}

	r.mu.Lock()
	r.lastTotal = receipt.Total
	r.mu.Unlock()

	r.metrics.Counter(RendererRenderedTotal).Inc()
	r.metrics.Gauge(RendererLastTotal).Set(receipt.Total)

	r.notifier.Notify(ctx, Notification{
		Kind:      KindPizzaSummary,
		Source:    RendererName,
		Message:   receipt.Summary,
		Timestamp: r.getClock().Now(),
	})
	return receipt
}

// LastTotal returns the total of the most recent Render, or zero.
func (r *Renderer) LastTotal() float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastTotal
}

// Metrics returns the metrics registry for this renderer.
func (r *Renderer) Metrics() *metricz.Registry {
	return r.metrics
}

// WithClock sets a custom clock for notification timestamps.
func (r *Renderer) WithClock(clock clockz.Clock) *Renderer {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clock = clock
	return r
}

func (r *Renderer) getClock() clockz.Clock {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.clock == nil {
		return clockz.RealClock
	}
	return r.clock
}
