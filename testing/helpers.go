// Package testing provides test utilities for code built on pizzeria.
//
// It includes a mock step for wiring into a StepChain and assertion helpers
// for notifications captured by a pizzeria.Recorder.
//
// Example usage:
//
//	func TestMyChain(t *testing.T) {
//		rec := pizzeria.NewRecorder()
//		inspect := pizzeriatesting.NewMockStep(t, "inspect")
//
//		chain := pizzeria.NewStepChain("kitchen", pizzeria.Cooking(rec), inspect)
//		_, err := chain.Process(context.Background(), pizzeria.NewTicket(pizza))
//
//		pizzeriatesting.AssertNoError(t, err)
//		pizzeriatesting.AssertProcessed(t, inspect, 1)
//		pizzeriatesting.AssertMessages(t, rec, "Pizza is being cooked.")
//	}
package testing

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/zoobzio/pizzeria"
)

// MockStep is a pizzeria.Step that records every call. By default it returns
// the ticket unchanged; WithAdvance makes it advance the ticket to a stage.
type MockStep struct { //nolint:govet // fieldalignment: test helper
	t           *testing.T
	name        string
	callCount   int64
	lastInput   pizzeria.Ticket
	advance     pizzeria.Stage
	mu          sync.RWMutex
	callHistory []MockCall
	maxHistory  int
}

// MockCall is a single recorded call to a MockStep.
type MockCall struct {
	Input     pizzeria.Ticket
	Timestamp time.Time
	Context   context.Context
}

// NewMockStep creates a mock step named name.
func NewMockStep(t *testing.T, name string) *MockStep {
	return &MockStep{
		t:          t,
		name:       name,
		maxHistory: 100,
	}
}

// WithAdvance makes the mock advance each ticket to stage.
func (m *MockStep) WithAdvance(stage pizzeria.Stage) *MockStep {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.advance = stage
	return m
}

// WithHistorySize sets how many calls to keep. Zero disables history.
func (m *MockStep) WithHistorySize(size int) *MockStep {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.maxHistory = size
	if size == 0 {
		m.callHistory = nil
	} else if len(m.callHistory) > size {
		m.callHistory = m.callHistory[len(m.callHistory)-size:]
	}
	return m
}

// Name implements pizzeria.Step.
func (m *MockStep) Name() pizzeria.Name {
	return m.name
}

// Process implements pizzeria.Step.
func (m *MockStep) Process(ctx context.Context, ticket pizzeria.Ticket) pizzeria.Ticket {
	atomic.AddInt64(&m.callCount, 1)

	m.mu.Lock()
	m.lastInput = ticket
	if m.maxHistory > 0 {
		m.callHistory = append(m.callHistory, MockCall{
			Input:     ticket,
			Timestamp: time.Now(),
			Context:   ctx,
		})
		if len(m.callHistory) > m.maxHistory {
			m.callHistory = m.callHistory[1:]
		}
	}
	advance := m.advance
	m.mu.Unlock()

	if advance != pizzeria.StageNone {
		return ticket.Advance(advance)
	}
	return ticket
}

// CallCount returns the number of times Process has been called.
func (m *MockStep) CallCount() int {
	return int(atomic.LoadInt64(&m.callCount))
}

// LastInput returns the ticket from the most recent call.
func (m *MockStep) LastInput() pizzeria.Ticket {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastInput
}

// CallHistory returns a copy of the recorded calls.
func (m *MockStep) CallHistory() []MockCall {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.maxHistory == 0 {
		return nil
	}
	return slices.Clone(m.callHistory)
}

// Reset clears call tracking.
func (m *MockStep) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	atomic.StoreInt64(&m.callCount, 0)
	m.lastInput = pizzeria.Ticket{}
	m.callHistory = nil
}

// Assertion Helpers

// AssertProcessed verifies that a mock step was called exactly n times.
func AssertProcessed(t *testing.T, mock *MockStep, expectedCalls int) {
	t.Helper()
	if actual := mock.CallCount(); actual != expectedCalls {
		t.Errorf("expected mock step %s to be called %d times, but was called %d times",
			mock.name, expectedCalls, actual)
	}
}

// AssertNotProcessed verifies that a mock step was never called.
func AssertNotProcessed(t *testing.T, mock *MockStep) {
	t.Helper()
	AssertProcessed(t, mock, 0)
}

// AssertMessages verifies the recorder saw exactly the given messages, in order.
func AssertMessages(t *testing.T, rec *pizzeria.Recorder, expected ...string) {
	t.Helper()
	if actual := rec.Messages(); !slices.Equal(actual, expected) {
		t.Errorf("expected messages %q, got %q", expected, actual)
	}
}

// AssertKinds verifies the recorder saw exactly the given kinds, in order.
func AssertKinds(t *testing.T, rec *pizzeria.Recorder, expected ...pizzeria.Kind) {
	t.Helper()
	if actual := rec.Kinds(); !slices.Equal(actual, expected) {
		t.Errorf("expected kinds %v, got %v", expected, actual)
	}
}

// AssertStages verifies a ticket's stage history.
func AssertStages(t *testing.T, ticket pizzeria.Ticket, expected ...pizzeria.Stage) {
	t.Helper()
	if !slices.Equal(ticket.History, expected) {
		t.Errorf("expected stage history %v, got %v", expected, ticket.History)
	}
}

// AssertNoError fails the test immediately if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertTotal verifies a receipt total.
func AssertTotal(t *testing.T, receipt pizzeria.Receipt, expected float64) {
	t.Helper()
	if receipt.Total != expected {
		t.Errorf("expected total %v, got %v", expected, receipt.Total)
	}
}
