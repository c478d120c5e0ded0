package pizzeria

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/zoobzio/clockz"
)

// Notification sources for the confirmation handshake.
const (
	CustomerName Name = "customer"
	MediatorName Name = "order-mediator"
	ManagerName  Name = "manager"
)

// user is the capability shared by Manager and Customer: a link to the
// mediator, set once after construction.
type user struct {
	mediator *OrderMediator
	mu       sync.RWMutex
}

// SetOrderMediator links the user to m.
func (u *user) SetOrderMediator(m *OrderMediator) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.mediator = m
}

// OrderMediator returns the linked mediator, or nil.
func (u *user) OrderMediator() *OrderMediator {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.mediator
}

// Manager confirms orders. Its confirmation flag starts false, is set by
// OrderConfirmation, and is never reset.
type Manager struct {
	user
	notifier  Notifier
	clock     clockz.Clock
	confirmed atomic.Bool
}

// NewManager creates a Manager reporting to notifier.
func NewManager(notifier Notifier) *Manager {
	return &Manager{notifier: notifierOrDiscard(notifier)}
}

// OrderConfirmation sets the confirmation flag and announces it.
// Calling it again leaves the flag set.
func (m *Manager) OrderConfirmation(ctx context.Context) {
	m.confirmed.Store(true)
	m.notifier.Notify(ctx, Notification{
		Kind:      KindOrderConfirmed,
		Source:    ManagerName,
		Message:   "Manager : Order Confirmation",
		Timestamp: clockOrReal(m.clock).Now(),
	})
}

// Confirmed reports whether OrderConfirmation has been called.
func (m *Manager) Confirmed() bool {
	return m.confirmed.Load()
}

// WithClock sets a custom clock for notification timestamps.
// It must be called before the manager is shared.
func (m *Manager) WithClock(clock clockz.Clock) *Manager {
	m.clock = clock
	return m
}

// Customer places orders through an OrderMediator.
type Customer struct {
	user
	notifier Notifier
	clock    clockz.Clock
	name     string
}

// NewCustomer creates a Customer whose display name appears in the
// order-placed notification.
func NewCustomer(name string, notifier Notifier) *Customer {
	return &Customer{name: name, notifier: notifierOrDiscard(notifier)}
}

// Name returns the customer's display name.
func (c *Customer) Name() string {
	return c.name
}

// SearchOrder announces the order and asks the mediator to find it.
// It returns ErrNoMediator if SetOrderMediator was never called.
func (c *Customer) SearchOrder(ctx context.Context) error {
	m := c.OrderMediator()
	if m == nil {
		return fmt.Errorf("customer %q: %w", c.name, ErrNoMediator)
	}
	c.notifier.Notify(ctx, Notification{
		Kind:      KindOrderPlaced,
		Source:    CustomerName,
		Message:   c.name + " : Pizza Ordered",
		Timestamp: clockOrReal(c.clock).Now(),
	})
	m.FindOrder(ctx)
	return nil
}

// WithClock sets a custom clock for notification timestamps.
// It must be called before the customer is shared.
func (c *Customer) WithClock(clock clockz.Clock) *Customer {
	c.clock = clock
	return c
}

// OrderMediator carries a customer's order lookup to the manager.
// The handshake is a fixed synchronous hop: Customer.SearchOrder ->
// OrderMediator.FindOrder -> Manager.OrderConfirmation. Nothing is returned
// to the customer; the outcome is the manager's flag.
type OrderMediator struct {
	manager  *Manager
	customer *Customer
	notifier Notifier
	clock    clockz.Clock
}

// NewOrderMediator creates a mediator between manager and customer.
//
// It does not link the users back to the mediator; use Connect for that.
func NewOrderMediator(manager *Manager, customer *Customer, notifier Notifier) *OrderMediator {
	return &OrderMediator{
		manager:  manager,
		customer: customer,
		notifier: notifierOrDiscard(notifier),
	}
}

// Connect creates a mediator and links both users to it.
func Connect(manager *Manager, customer *Customer, notifier Notifier) *OrderMediator {
	m := NewOrderMediator(manager, customer, notifier)
	manager.SetOrderMediator(m)
	customer.SetOrderMediator(m)
	return m
}

// FindOrder announces the lookup and hands confirmation to the manager.
func (m *OrderMediator) FindOrder(ctx context.Context) {
	m.notifier.Notify(ctx, Notification{
		Kind:      KindOrderFound,
		Source:    MediatorName,
		Message:   "Order Manager: Find Order",
		Timestamp: clockOrReal(m.clock).Now(),
	})
	m.manager.OrderConfirmation(ctx)
}

// Manager returns the mediator's manager.
func (m *OrderMediator) Manager() *Manager {
	return m.manager
}

// Customer returns the mediator's customer.
func (m *OrderMediator) Customer() *Customer {
	return m.customer
}

// WithClock sets a custom clock for notification timestamps.
// It must be called before the mediator is shared.
func (m *OrderMediator) WithClock(clock clockz.Clock) *OrderMediator {
	m.clock = clock
	return m
}

func clockOrReal(clock clockz.Clock) clockz.Clock {
	if clock == nil {
		return clockz.RealClock
	}
	return clock
}
