// Package session holds the players of one home game and recomputes the
// settlement from them on demand.
package session

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/lox/pokercal/internal/ledger"
	"github.com/lox/pokercal/internal/sessionid"
	"github.com/lox/pokercal/internal/settlement"
)

var (
	ErrEmptyName      = errors.New("player name is required")
	ErrPlayerNotFound = errors.New("player not found")
	ErrAmbiguousName  = errors.New("more than one player has that name")
)

// Session is the ordered set of players at a game. Players are identified
// by their ledger ID; names are display labels and may repeat.
type Session struct {
	ID           string
	Name         string
	DefaultBuyIn int

	players []*ledger.Ledger
	clock   quartz.Clock
	logger  *log.Logger
}

// Option configures a Session.
type Option func(*Session)

func WithClock(clock quartz.Clock) Option {
	return func(s *Session) { s.clock = clock }
}

func WithLogger(logger *log.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

func WithName(name string) Option {
	return func(s *Session) { s.Name = name }
}

// WithDefaultBuyIn sets the buy-in recorded for players added without one.
func WithDefaultBuyIn(amount int) Option {
	return func(s *Session) { s.DefaultBuyIn = amount }
}

// New creates an empty session.
func New(opts ...Option) *Session {
	s := &Session{DefaultBuyIn: ledger.DefaultBuyIn}
	for _, opt := range opts {
		opt(s)
	}
	if s.clock == nil {
		s.clock = quartz.NewReal()
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	s.logger = s.logger.WithPrefix("session")
	s.ID = sessionid.New(s.clock)
	return s
}

// Clock returns the clock used for timestamps.
func (s *Session) Clock() quartz.Clock { return s.clock }

// AddPlayer creates a player from raw form input and puts them at the top
// of the table. An invalid buy-in records the default buy-in instead; an
// invalid spent amount records nothing.
func (s *Session) AddPlayer(name, buyIn, spent string) (*ledger.Ledger, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	amount, ok := ledger.ParseAmount(buyIn)
	if !ok {
		amount = s.DefaultBuyIn
	}
	opts := []ledger.Option{ledger.WithBuyIns(amount), ledger.WithClock(s.clock)}
	if n, ok := ledger.ParseAmount(spent); ok {
		opts = append(opts, ledger.WithSpent(n))
	}

	l := ledger.New(name, opts...)
	s.players = append([]*ledger.Ledger{l}, s.players...)
	s.logger.Debug("Added player", "name", name, "id", l.ID, "buy_in", amount, "spent", l.Spent())
	return l, nil
}

// Append adds an existing ledger to the bottom of the table.
func (s *Session) Append(l *ledger.Ledger) {
	s.players = append(s.players, l)
	s.logger.Debug("Added player", "name", l.Name, "id", l.ID, "buy_in", l.TotalBuyIn())
}

// Players returns the players in table order.
func (s *Session) Players() []*ledger.Ledger {
	out := make([]*ledger.Ledger, len(s.players))
	copy(out, s.players)
	return out
}

// Len returns the number of players.
func (s *Session) Len() int { return len(s.players) }

// Player looks a player up by ID.
func (s *Session) Player(id uuid.UUID) (*ledger.Ledger, error) {
	for _, p := range s.players {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, id)
}

// PlayerByName looks a player up by display name, ignoring case.
func (s *Session) PlayerByName(name string) (*ledger.Ledger, error) {
	var found *ledger.Ledger
	for _, p := range s.players {
		if !strings.EqualFold(p.Name, strings.TrimSpace(name)) {
			continue
		}
		if found != nil {
			return nil, fmt.Errorf("%w: %q", ErrAmbiguousName, name)
		}
		found = p
	}
	if found == nil {
		return nil, fmt.Errorf("%w: %q", ErrPlayerNotFound, name)
	}
	return found, nil
}

// RemovePlayer drops a player from the table.
func (s *Session) RemovePlayer(id uuid.UUID) error {
	for i, p := range s.players {
		if p.ID == id {
			s.players = append(s.players[:i], s.players[i+1:]...)
			s.logger.Debug("Removed player", "name", p.Name, "id", id)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrPlayerNotFound, id)
}

// ResetAll clears every player's amounts, keeping the players themselves.
func (s *Session) ResetAll() {
	for _, p := range s.players {
		p.Reset()
	}
	s.logger.Info("Reset all players", "players", len(s.players))
}

// Settle recomputes the settlement from the current players.
func (s *Session) Settle() settlement.Result {
	return settlement.Settle(s.players)
}

// Contribution is one player's share of the food and drink kitty.
type Contribution struct {
	Name  string
	Spent int
}

// Summary is the group-wide view shown under the table.
type Summary struct {
	settlement.Aggregates
	TotalSpent    int
	Contributions []Contribution // players with spent > 0, in table order
}

// Summary recomputes the group totals.
func (s *Session) Summary() Summary {
	sum := Summary{Aggregates: settlement.Aggregate(s.players)}
	for _, p := range s.players {
		sum.TotalSpent += p.Spent()
		if p.Spent() > 0 {
			sum.Contributions = append(sum.Contributions, Contribution{Name: p.Name, Spent: p.Spent()})
		}
	}
	return sum
}
