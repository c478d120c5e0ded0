package pizzeria

import "context"

// Step is one handler in a StepChain. It receives the ticket, does its work
// (typically emitting a notification), and returns the ticket for the next
// step. Steps do not return errors; a panicking step is recovered by the
// chain.
//
// StageStep and Processor implement Step.
type Step interface {
	Process(context.Context, Ticket) Ticket
	Name() Name
}

// Name is a type alias for step and chain names.
//
// Example:
//
//	const (
//	    InspectName pizzeria.Name = "inspect"
//	    BoxName     pizzeria.Name = "box"
//	)
type Name = string

// Processor is a named step built from a plain function.
type Processor struct {
	fn   func(context.Context, Ticket) Ticket
	name Name
}

// Process implements Step.
func (p Processor) Process(ctx context.Context, t Ticket) Ticket {
	return p.fn(ctx, t)
}

// Name returns the processor name.
func (p Processor) Name() Name {
	return p.name
}

// Transform creates a Step from fn. Use it for custom steps that do not map
// onto one of the fulfillment stages.
//
// Example:
//
//	inspect := pizzeria.Transform("inspect", func(_ context.Context, t pizzeria.Ticket) pizzeria.Ticket {
//	    log.Printf("ticket %s at %s", t.ID, t.Stage)
//	    return t
//	})
func Transform(name Name, fn func(context.Context, Ticket) Ticket) Processor {
	return Processor{name: name, fn: fn}
}

// Effect creates a Step that observes the ticket without changing it.
// The ticket always passes through unchanged.
//
// Example:
//
//	audit := pizzeria.Effect("audit", func(ctx context.Context, t pizzeria.Ticket) {
//	    auditLog.Record(ctx, t.ID, t.Stage)
//	})
func Effect(name Name, fn func(context.Context, Ticket)) Processor {
	return Processor{
		name: name,
		fn: func(ctx context.Context, t Ticket) Ticket {
			fn(ctx, t)
			return t
		},
	}
}
