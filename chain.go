package pizzeria

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/zoobzio/clockz"
	"github.com/zoobzio/hookz"
	"github.com/zoobzio/metricz"
	"github.com/zoobzio/tracez"
)

// DefaultChainName names the chain built by DefaultChain.
const DefaultChainName Name = "fulfillment"

// Observability constants for the StepChain.
const (
	// Metrics.
	ChainProcessedTotal = metricz.Key("chain.processed.total")
	ChainSuccessesTotal = metricz.Key("chain.successes.total")
	ChainFailuresTotal  = metricz.Key("chain.failures.total")
	ChainStepsCompleted = metricz.Key("chain.steps.completed")
	ChainStepsTotal     = metricz.Key("chain.steps.total")
	ChainDurationMs     = metricz.Key("chain.duration.ms")

	// Spans.
	ChainProcessSpan = tracez.Key("chain.process")
	ChainStepSpan    = tracez.Key("chain.step")

	// Tags.
	ChainTagStepCount  = tracez.Tag("chain.step_count")
	ChainTagStepNumber = tracez.Tag("chain.step_number")
	ChainTagStepName   = tracez.Tag("chain.step_name")
	ChainTagTicketID   = tracez.Tag("chain.ticket_id")
	ChainTagSuccess    = tracez.Tag("chain.success")
	ChainTagError      = tracez.Tag("chain.error")

	// Hook event keys.
	ChainEventStepComplete = hookz.Key("chain.step_complete")
	ChainEventAllComplete  = hookz.Key("chain.all_complete")
)

// ChainEvent is emitted via hookz as each step completes and when a run
// reaches the end of the chain.
type ChainEvent struct {
	Timestamp      time.Time     // When the event occurred
	Name           Name          // Chain name
	StepName       Name          // Step that completed (step_complete only)
	TicketID       string        // Ticket being processed
	Stage          Stage         // Ticket stage after the step
	StepNumber     int           // 1-based position of the step in this run
	TotalSteps     int           // Steps in this run
	CompletedSteps int           // Steps completed (all_complete only)
	Duration       time.Duration // Step duration
	TotalDuration  time.Duration // Run duration (all_complete only)
}

// StepChain runs an ordered list of steps over a ticket. Each step runs once,
// synchronously, in order; the ticket returned by one step is handed to the
// next. A step with nothing after it simply ends the run.
//
// The order is whatever the caller wires: the usual order is
// Accepting, Cooking, Packing, Handover (see DefaultChain), but any order or
// subset is allowed and the chain can be rewired at runtime with Push,
// Unshift, After, Before, Remove, Replace, and Link.
//
// StepChain is safe for concurrent use. Each run works on a snapshot of the
// step list taken when it starts.
//
// # Observability
//
// Metrics:
//   - chain.processed.total: Counter of runs
//   - chain.successes.total: Counter of runs that reached the end
//   - chain.failures.total: Counter of runs stopped by the context
//   - chain.steps.completed: Gauge of steps completed in the last run
//   - chain.steps.total: Gauge of steps in the last run
//   - chain.duration.ms: Gauge of the last run's duration
//
// Traces:
//   - chain.process: Parent span for a run
//   - chain.step: Child span for each step
//
// Events (via hooks, delivered asynchronously):
//   - chain.step_complete: Fired as each step completes
//   - chain.all_complete: Fired when a run reaches the end
type StepChain struct {
	name    Name
	steps   []Step
	clock   clockz.Clock
	metrics *metricz.Registry
	tracer  *tracez.Tracer
	hooks   *hookz.Hooks[ChainEvent]
	mu      sync.RWMutex
}

// NewStepChain creates a chain with optional initial steps.
//
// Example:
//
//	rec := pizzeria.NewRecorder()
//	chain := pizzeria.NewStepChain("fulfillment",
//	    pizzeria.Accepting(rec),
//	    pizzeria.Cooking(rec),
//	    pizzeria.Packing(rec),
//	    pizzeria.Handover(rec),
//	)
//	ticket, err := chain.Process(ctx, pizzeria.NewTicket(pizza))
func NewStepChain(name Name, steps ...Step) *StepChain {
	metrics := metricz.New()
	metrics.Counter(ChainProcessedTotal)
	metrics.Counter(ChainSuccessesTotal)
	metrics.Counter(ChainFailuresTotal)
	metrics.Gauge(ChainStepsCompleted)
	metrics.Gauge(ChainStepsTotal)
	metrics.Gauge(ChainDurationMs)

	return &StepChain{
		name:    name,
		steps:   slices.Clone(steps),
		metrics: metrics,
		tracer:  tracez.New(),
		hooks:   hookz.New[ChainEvent](),
	}
}

// DefaultChain wires Accepting, Cooking, Packing, Handover, all reporting
// to notifier.
func DefaultChain(notifier Notifier) *StepChain {
	return NewStepChain(DefaultChainName,
		Accepting(notifier),
		Cooking(notifier),
		Packing(notifier),
		Handover(notifier),
	)
}

// Register appends steps to the chain.
func (c *StepChain) Register(steps ...Step) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.steps = append(c.steps, steps...)
}

// Link replaces the chain's steps with steps, in the given order.
func (c *StepChain) Link(steps ...Step) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.steps = slices.Clone(steps)
}

// Process runs every step, head to tail, on t.
//
// The context is checked before each step. If it is done, the run stops and
// a *StepError is returned along with the ticket as it stood. A step that
// panics is recovered the same way, with the panic as the error's cause.
func (c *StepChain) Process(ctx context.Context, t Ticket) (Ticket, error) {
	c.mu.RLock()
	steps := slices.Clone(c.steps)
	c.mu.RUnlock()
	return c.run(ctx, steps, t)
}

// ProcessFrom runs the chain starting at the first step named name, replaying
// it and every step after it. It returns ErrStepNotFound if no step has that
// name.
func (c *StepChain) ProcessFrom(ctx context.Context, t Ticket, name Name) (Ticket, error) {
	c.mu.RLock()
	idx := c.indexOf(name)
	var steps []Step
	if idx >= 0 {
		steps = slices.Clone(c.steps[idx:])
	}
	c.mu.RUnlock()

	if idx < 0 {
		return t, fmt.Errorf("%w: %q", ErrStepNotFound, name)
	}
	return c.run(ctx, steps, t)
}

func (c *StepChain) run(ctx context.Context, steps []Step, t Ticket) (result Ticket, err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	clock := c.getClock()

	c.metrics.Counter(ChainProcessedTotal).Inc()
	c.metrics.Gauge(ChainStepsTotal).Set(float64(len(steps)))
	start := clock.Now()

	ctx, span := c.tracer.StartSpan(ctx, ChainProcessSpan)
	span.SetTag(ChainTagStepCount, strconv.Itoa(len(steps)))
	span.SetTag(ChainTagTicketID, t.ID)
	defer func() {
		c.metrics.Gauge(ChainDurationMs).Set(float64(clock.Since(start).Milliseconds()))
		if err == nil {
			span.SetTag(ChainTagSuccess, "true")
			c.metrics.Counter(ChainSuccessesTotal).Inc()
		} else {
			span.SetTag(ChainTagSuccess, "false")
			span.SetTag(ChainTagError, err.Error())
			c.metrics.Counter(ChainFailuresTotal).Inc()
		}
		span.Finish()
	}()

	result = t
	completed := 0
	c.metrics.Gauge(ChainStepsCompleted).Set(0)

	for i, step := range steps {
		select {
		case <-ctx.Done():
			return result, &StepError{
				Err:       ctx.Err(),
				Ticket:    result,
				Path:      []Name{c.name, step.Name()},
				Duration:  clock.Since(start),
				Timeout:   errors.Is(ctx.Err(), context.DeadlineExceeded),
				Canceled:  errors.Is(ctx.Err(), context.Canceled),
				Timestamp: clock.Now(),
			}
		default:
		}

		stepCtx, stepSpan := c.tracer.StartSpan(ctx, ChainStepSpan)
		stepSpan.SetTag(ChainTagStepNumber, strconv.Itoa(i+1))
		stepSpan.SetTag(ChainTagStepName, step.Name())

		stepStart := clock.Now()
		out, stepErr := c.processStep(stepCtx, step, result, clock, start)
		stepDuration := clock.Since(stepStart)
		if stepErr != nil {
			stepSpan.SetTag(ChainTagError, stepErr.Error())
			stepSpan.Finish()
			return result, stepErr
		}
		stepSpan.Finish()
		result = out

		completed++
		c.metrics.Gauge(ChainStepsCompleted).Set(float64(completed))

		_ = c.hooks.Emit(ctx, ChainEventStepComplete, ChainEvent{ //nolint:errcheck
			Name:       c.name,
			StepName:   step.Name(),
			TicketID:   result.ID,
			Stage:      result.Stage,
			StepNumber: i + 1,
			TotalSteps: len(steps),
			Duration:   stepDuration,
			Timestamp:  clock.Now(),
		})
	}

	_ = c.hooks.Emit(ctx, ChainEventAllComplete, ChainEvent{ //nolint:errcheck
		Name:           c.name,
		TicketID:       result.ID,
		Stage:          result.Stage,
		TotalSteps:     len(steps),
		CompletedSteps: completed,
		TotalDuration:  clock.Since(start),
		Timestamp:      clock.Now(),
	})

	return result, nil
}

// processStep runs one step, recovering a panic as a *StepError.
func (c *StepChain) processStep(ctx context.Context, step Step, t Ticket, clock clockz.Clock, start time.Time) (result Ticket, err error) {
	defer recoverFromPanic(&result, &err, []Name{c.name, step.Name()}, t, clock, start)
	return step.Process(ctx, t), nil
}

// indexOf must be called with c.mu held.
func (c *StepChain) indexOf(name Name) int {
	return slices.IndexFunc(c.steps, func(s Step) bool { return s.Name() == name })
}

// Len returns the number of steps.
func (c *StepChain) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.steps)
}

// Clear removes all steps.
func (c *StepChain) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.steps = c.steps[:0]
}

// Unshift adds steps to the front of the chain (runs first).
func (c *StepChain) Unshift(steps ...Step) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.steps = slices.Insert(c.steps, 0, steps...)
}

// Push adds steps to the back of the chain (runs last).
func (c *StepChain) Push(steps ...Step) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.steps = append(c.steps, steps...)
}

// Shift removes and returns the first step.
func (c *StepChain) Shift() (Step, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.steps) == 0 {
		return nil, ErrEmptyChain
	}
	step := c.steps[0]
	c.steps = c.steps[1:]
	return step, nil
}

// Pop removes and returns the last step.
func (c *StepChain) Pop() (Step, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.steps) == 0 {
		return nil, ErrEmptyChain
	}
	last := len(c.steps) - 1
	step := c.steps[last]
	c.steps = c.steps[:last]
	return step, nil
}

// Names returns the step names in order.
func (c *StepChain) Names() []Name {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]Name, len(c.steps))
	for i, step := range c.steps {
		names[i] = step.Name()
	}
	return names
}

// Remove removes the first step named name.
func (c *StepChain) Remove(name Name) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(name)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrStepNotFound, name)
	}
	c.steps = slices.Delete(c.steps, i, i+1)
	return nil
}

// Replace swaps the first step named name for step.
func (c *StepChain) Replace(name Name, step Step) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(name)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrStepNotFound, name)
	}
	c.steps[i] = step
	return nil
}

// After inserts steps right after the first step named name.
func (c *StepChain) After(name Name, steps ...Step) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(name)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrStepNotFound, name)
	}
	c.steps = slices.Insert(c.steps, i+1, steps...)
	return nil
}

// Before inserts steps right before the first step named name.
func (c *StepChain) Before(name Name, steps ...Step) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(name)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrStepNotFound, name)
	}
	c.steps = slices.Insert(c.steps, i, steps...)
	return nil
}

// Name returns the chain name.
func (c *StepChain) Name() Name {
	return c.name
}

// Metrics returns the metrics registry for this chain.
func (c *StepChain) Metrics() *metricz.Registry {
	return c.metrics
}

// Tracer returns the tracer for this chain.
func (c *StepChain) Tracer() *tracez.Tracer {
	return c.tracer
}

// WithClock sets a custom clock for durations and timestamps.
func (c *StepChain) WithClock(clock clockz.Clock) *StepChain {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clock = clock
	return c
}

func (c *StepChain) getClock() clockz.Clock {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.clock == nil {
		return clockz.RealClock
	}
	return c.clock
}

// Close shuts down the tracer and hooks.
func (c *StepChain) Close() error {
	if c.tracer != nil {
		c.tracer.Close()
	}
	c.hooks.Close()
	return nil
}

// OnStepComplete registers a handler fired after each step.
// Handlers run asynchronously; use the step's Notifier for ordered output.
func (c *StepChain) OnStepComplete(handler func(context.Context, ChainEvent) error) error {
	_, err := c.hooks.Hook(ChainEventStepComplete, handler)
	return err
}

// OnAllComplete registers a handler fired when a run reaches the end of the
// chain. Handlers run asynchronously.
func (c *StepChain) OnAllComplete(handler func(context.Context, ChainEvent) error) error {
	_, err := c.hooks.Hook(ChainEventAllComplete, handler)
	return err
}
