// Package ledger records one player's cash flow over a game: buy-ins,
// the checkout amount and what they put toward shared food and drink.
package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/coder/quartz"
	"github.com/google/uuid"
)

// DefaultBuyIn is recorded for a new player when no buy-ins are given.
const DefaultBuyIn = 50

// ErrIndexOutOfRange is returned when removing a buy-in that doesn't exist.
var ErrIndexOutOfRange = errors.New("buy-in index out of range")

// BuyIn is a single recorded buy-in.
type BuyIn struct {
	Amount int
	Time   time.Time
}

// Ledger holds the raw facts for one player. Derived values are computed
// on every call and never stored.
type Ledger struct {
	ID   uuid.UUID
	Name string

	history  []BuyIn // newest first
	checkout int
	spent    int
	clock    quartz.Clock
}

type options struct {
	buyIns   []int
	checkout int
	spent    int
	clock    quartz.Clock
}

// Option configures a new Ledger.
type Option func(*options)

// WithBuyIns sets the initial buy-ins. Calling it with no amounts starts
// the ledger with an empty history.
func WithBuyIns(amounts ...int) Option {
	return func(o *options) {
		o.buyIns = append([]int{}, amounts...)
	}
}

// WithCheckout sets the initial checkout amount.
func WithCheckout(amount int) Option {
	return func(o *options) { o.checkout = amount }
}

// WithSpent sets the initial food/drink contribution.
func WithSpent(amount int) Option {
	return func(o *options) { o.spent = amount }
}

// WithClock sets the clock used to timestamp buy-ins.
func WithClock(clock quartz.Clock) Option {
	return func(o *options) { o.clock = clock }
}

// New creates a ledger for the named player.
func New(name string, opts ...Option) *Ledger {
	o := options{buyIns: []int{DefaultBuyIn}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.clock == nil {
		o.clock = quartz.NewReal()
	}

	l := &Ledger{
		ID:       uuid.New(),
		Name:     name,
		checkout: o.checkout,
		spent:    o.spent,
		clock:    o.clock,
	}
	now := o.clock.Now()
	for _, amount := range o.buyIns {
		l.history = append(l.history, BuyIn{Amount: amount, Time: now})
	}
	return l
}

// TotalBuyIn returns the sum of all recorded buy-ins.
func (l *Ledger) TotalBuyIn() int {
	total := 0
	for _, b := range l.history {
		total += b.Amount
	}
	return total
}

// Current returns the player's raw net result; positive means ahead.
func (l *Ledger) Current() int {
	return l.checkout - l.TotalBuyIn()
}

// Winning reports whether the player is break-even or ahead.
func (l *Ledger) Winning() bool {
	return l.Current() >= 0
}

func (l *Ledger) Checkout() int { return l.checkout }

func (l *Ledger) Spent() int { return l.spent }

// History returns a copy of the buy-ins, newest first.
func (l *Ledger) History() []BuyIn {
	out := make([]BuyIn, len(l.history))
	copy(out, l.history)
	return out
}

// AddBuyIn records a new buy-in at the front of the history. Invalid input
// is ignored and reported as false.
func (l *Ledger) AddBuyIn(input string) bool {
	amount, ok := ParseAmount(input)
	if !ok {
		return false
	}
	l.history = append([]BuyIn{{Amount: amount, Time: l.clock.Now()}}, l.history...)
	return true
}

// SetCheckout replaces the checkout amount. Invalid input is ignored.
func (l *Ledger) SetCheckout(input string) bool {
	amount, ok := ParseAmount(input)
	if !ok {
		return false
	}
	l.checkout = amount
	return true
}

// SetSpent replaces the food/drink contribution. Invalid input is ignored.
func (l *Ledger) SetSpent(input string) bool {
	amount, ok := ParseAmount(input)
	if !ok {
		return false
	}
	l.spent = amount
	return true
}

// RemoveBuyIn deletes the buy-in at index in the newest-first history.
func (l *Ledger) RemoveBuyIn(index int) error {
	if index < 0 || index >= len(l.history) {
		return fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, index, len(l.history))
	}
	l.history = append(l.history[:index], l.history[index+1:]...)
	return nil
}

// Reset clears every amount. ID and name are kept.
func (l *Ledger) Reset() {
	l.history = nil
	l.checkout = 0
	l.spent = 0
}

func (l *Ledger) String() string {
	return fmt.Sprintf("%s (in %d, out %d, net %+d)", l.Name, l.TotalBuyIn(), l.checkout, l.Current())
}
