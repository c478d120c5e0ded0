package pizzeria

import (
	"slices"

	"github.com/google/uuid"
)

// Stage is a fulfillment stage of an order.
type Stage int

// Fulfillment stages, in their usual order.
const (
	StageNone Stage = iota
	StageAccepting
	StageCooking
	StagePacking
	StageHandover
)

var stageNames = map[Stage]Name{
	StageNone:      "none",
	StageAccepting: "accepting",
	StageCooking:   "cooking",
	StagePacking:   "packing",
	StageHandover:  "handover",
}

var stageMessages = map[Stage]string{
	StageAccepting: "Order is accepted.",
	StageCooking:   "Pizza is being cooked.",
	StagePacking:   "Pizza is being packed.",
	StageHandover:  "Pizza is handed over to the driver for delivery.",
}

var stageKinds = map[Stage]Kind{
	StageAccepting: KindOrderAccepted,
	StageCooking:   KindOrderCooking,
	StagePacking:   KindOrderPacked,
	StageHandover:  KindOrderHandover,
}

// String returns the stage name.
func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "unknown"
}

// Message returns the notification text for the stage.
func (s Stage) Message() string {
	return stageMessages[s]
}

// Kind returns the notification kind for the stage.
func (s Stage) Kind() Kind {
	return stageKinds[s]
}

// Ticket is an order moving through a StepChain.
type Ticket struct {
	ID      string
	Pizza   Pizza
	History []Stage // Stages reached, in order
	Stage   Stage   // Most recent stage
}

// NewTicket creates a ticket for pizza with a fresh ID.
func NewTicket(pizza Pizza) Ticket {
	return Ticket{
		ID:    uuid.NewString(),
		Pizza: pizza,
	}
}

// Advance returns a copy of t at stage s.
func (t Ticket) Advance(s Stage) Ticket {
	history := make([]Stage, len(t.History), len(t.History)+1)
	copy(history, t.History)
	t.History = append(history, s)
	t.Stage = s
	return t
}

// Clone returns a deep copy of t.
func (t Ticket) Clone() Ticket {
	t.Pizza = t.Pizza.Clone()
	t.History = slices.Clone(t.History)
	return t
}
