package pizzeria

import (
	"context"
	"sync"

	"github.com/zoobzio/clockz"
)

// StageStep announces a fulfillment stage and advances the ticket to it.
//
// Process emits the stage's fixed message to the notifier and returns the
// ticket with the stage appended to its history. Linking and ordering are
// the chain's job; a StageStep has no notion of what runs after it.
type StageStep struct {
	notifier Notifier
	clock    clockz.Clock
	stage    Stage
	mu       sync.RWMutex
}

// NewStageStep creates the step for stage. A nil notifier discards
// notifications.
func NewStageStep(stage Stage, notifier Notifier) *StageStep {
	return &StageStep{
		stage:    stage,
		notifier: notifierOrDiscard(notifier),
	}
}

// Accepting creates the order-accepted step.
func Accepting(notifier Notifier) *StageStep {
	return NewStageStep(StageAccepting, notifier)
}

// Cooking creates the cooking step.
func Cooking(notifier Notifier) *StageStep {
	return NewStageStep(StageCooking, notifier)
}

// Packing creates the packing step.
func Packing(notifier Notifier) *StageStep {
	return NewStageStep(StagePacking, notifier)
}

// Handover creates the driver handover step.
func Handover(notifier Notifier) *StageStep {
	return NewStageStep(StageHandover, notifier)
}

// Process implements Step.
func (s *StageStep) Process(ctx context.Context, t Ticket) Ticket {
	s.notifier.Notify(ctx, Notification{
		Kind:      s.stage.Kind(),
		Source:    s.Name(),
		Message:   s.stage.Message(),
		TicketID:  t.ID,
		Timestamp: s.getClock().Now(),
	})
	return t.Advance(s.stage)
}

// Name returns the stage name.
func (s *StageStep) Name() Name {
	return s.stage.String()
}

// Stage returns the stage this step announces.
func (s *StageStep) Stage() Stage {
	return s.stage
}

// WithClock sets a custom clock for notification timestamps.
func (s *StageStep) WithClock(clock clockz.Clock) *StageStep {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock = clock
	return s
}

func (s *StageStep) getClock() clockz.Clock {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.clock == nil {
		return clockz.RealClock
	}
	return s.clock
}
