package pizzeria

import (
	"context"
	"sync"
	"time"
)

// Kind identifies the domain event a Notification describes.
type Kind string

// Notification kinds emitted by the pipeline.
const (
	KindOrderAccepted  Kind = "order.accepted"
	KindOrderCooking   Kind = "order.cooking"
	KindOrderPacked    Kind = "order.packed"
	KindOrderHandover  Kind = "order.handed_over"
	KindOrderPlaced    Kind = "order.placed"
	KindOrderFound     Kind = "order.found"
	KindOrderConfirmed Kind = "order.confirmed"
	KindPizzaSummary   Kind = "pizza.summary"
)

// Notification is a single human-readable line emitted for a domain event.
// Presentation is left to the Notifier: a console, a GUI dialog, or a log sink
// can all render the same Notification.
type Notification struct {
	Timestamp time.Time
	Kind      Kind
	Source    Name   // Component that emitted the notification
	Message   string // Human-readable text
	TicketID  string // Set for step chain notifications only
}

// String returns the notification message.
func (n Notification) String() string {
	return n.Message
}

// Notifier receives notifications synchronously, in emission order.
type Notifier interface {
	Notify(context.Context, Notification)
}

// NotifierFunc adapts a plain function to the Notifier interface.
type NotifierFunc func(context.Context, Notification)

// Notify calls f.
func (f NotifierFunc) Notify(ctx context.Context, n Notification) {
	f(ctx, n)
}

// Discard is a Notifier that drops every notification.
var Discard Notifier = NotifierFunc(func(context.Context, Notification) {})

// Multi fans a notification out to every notifier in order.
// Nil notifiers are skipped.
func Multi(notifiers ...Notifier) Notifier {
	targets := make([]Notifier, 0, len(notifiers))
	for _, n := range notifiers {
		if n != nil {
			targets = append(targets, n)
		}
	}
	return NotifierFunc(func(ctx context.Context, n Notification) {
		for _, target := range targets {
			target.Notify(ctx, n)
		}
	})
}

// Recorder is an in-memory Notifier that keeps every notification in the
// order it was received. It is safe for concurrent use.
type Recorder struct {
	notifications []Notification
	mu            sync.RWMutex
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Notify appends n to the recording.
func (r *Recorder) Notify(_ context.Context, n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, n)
}

// Notifications returns a copy of everything recorded so far.
func (r *Recorder) Notifications() []Notification {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Notification, len(r.notifications))
	copy(out, r.notifications)
	return out
}

// Messages returns the recorded messages in order.
func (r *Recorder) Messages() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.notifications))
	for i, n := range r.notifications {
		out[i] = n.Message
	}
	return out
}

// Kinds returns the recorded kinds in order.
func (r *Recorder) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Kind, len(r.notifications))
	for i, n := range r.notifications {
		out[i] = n.Kind
	}
	return out
}

// Len returns the number of recorded notifications.
func (r *Recorder) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.notifications)
}

// Reset drops all recorded notifications.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = nil
}

func notifierOrDiscard(n Notifier) Notifier {
	if n == nil {
		return Discard
	}
	return n
}
