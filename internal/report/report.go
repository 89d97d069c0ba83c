// Package report turns a session's settlement into something a person can
// read at the end of the night, on screen or as a TOML file.
package report

import (
	"time"

	"github.com/lox/pokercal/internal/session"
)

// Row is one player's line in the report.
type Row struct {
	ID       string `toml:"id"`
	Name     string `toml:"name"`
	BuyIns   []int  `toml:"buy_ins"` // newest first
	BuyIn    int    `toml:"buy_in"`
	Checkout int    `toml:"checkout"`
	Current  int    `toml:"current"`
	Adjusted int    `toml:"adjusted"`
	Final    int    `toml:"final"`
	Spent    int    `toml:"spent"`
}

// Winning reports whether the player finished break-even or ahead before
// any adjustment.
func (r Row) Winning() bool { return r.Current >= 0 }

// Report is a snapshot of a session's settlement.
type Report struct {
	SessionID   string    `toml:"session_id"`
	Session     string    `toml:"session,omitempty"`
	GeneratedAt time.Time `toml:"generated_at"`

	Win        int  `toml:"group_win"`
	Lose       int  `toml:"group_lose"`
	Spent      int  `toml:"group_spent"`
	TotalSpent int  `toml:"total_spent"`
	Mismatched bool `toml:"mismatched"`
	Deficit    int  `toml:"deficit"`
	Surplus    int  `toml:"surplus"`

	Players []Row `toml:"player"`
}

// New recomputes the settlement for s and captures it.
func New(s *session.Session) *Report {
	res := s.Settle()
	sum := s.Summary()

	r := &Report{
		SessionID:   s.ID,
		Session:     s.Name,
		GeneratedAt: s.Clock().Now().UTC(),
		Win:         res.Win,
		Lose:        res.Lose,
		Spent:       res.Spent,
		TotalSpent:  sum.TotalSpent,
		Mismatched:  res.Mismatched,
		Deficit:     res.Deficit(),
		Surplus:     res.Surplus(),
	}

	for i, p := range s.Players() {
		line := res.Lines[i]
		history := p.History()
		buyIns := make([]int, len(history))
		for j, b := range history {
			buyIns[j] = b.Amount
		}
		r.Players = append(r.Players, Row{
			ID:       p.ID.String(),
			Name:     p.Name,
			BuyIns:   buyIns,
			BuyIn:    p.TotalBuyIn(),
			Checkout: p.Checkout(),
			Current:  line.Current,
			Adjusted: line.Adjusted,
			Final:    line.Final,
			Spent:    p.Spent(),
		})
	}
	return r
}
