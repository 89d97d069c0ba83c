package settlement

// Player is the view of a ledger the engine needs.
type Player interface {
	Current() int
	Winning() bool
	Spent() int
}

// Aggregates are group-wide totals derived from every player.
type Aggregates struct {
	Win        int  // sum of current over winning players
	Lose       int  // sum of current over losing players, <= 0
	Spent      int  // sum of positive food/drink contributions
	Mismatched bool // checkouts don't zero-sum against buy-ins
}

// Aggregate computes the group totals for players.
func Aggregate[P Player](players []P) Aggregates {
	var a Aggregates
	sum := 0
	for _, p := range players {
		current := p.Current()
		sum += current
		if p.Winning() {
			a.Win += current
		} else {
			a.Lose += current
		}
		if spent := p.Spent(); spent > 0 {
			a.Spent += spent
		}
	}
	a.Mismatched = sum != 0
	return a
}

// Net is winners' total minus losers' total. Positive means the recorded
// wins exceed the recorded losses.
func (a Aggregates) Net() int {
	return a.Win - abs(a.Lose)
}

// Deficit is how much more was recorded as won than lost.
func (a Aggregates) Deficit() int {
	if n := a.Net(); n > 0 {
		return n
	}
	return 0
}

// Surplus is how much more was recorded as lost than won.
func (a Aggregates) Surplus() int {
	if n := a.Net(); n < 0 {
		return -n
	}
	return 0
}

// Line is one player's settlement.
type Line struct {
	Current  int // raw net result
	Adjusted int // after mismatch adjustment
	Final    int // after food and drink
}

// Result is a full settlement, Lines in player order.
type Result struct {
	Aggregates
	Lines []Line
}

// Settle aggregates players and settles each one.
func Settle[P Player](players []P) Result {
	agg := Aggregate(players)
	res := Result{Aggregates: agg, Lines: make([]Line, len(players))}
	for i, p := range players {
		res.Lines[i] = Line{
			Current:  p.Current(),
			Adjusted: MismatchAdjustment(p, agg.Win, agg.Lose),
			Final:    AfterFood(p, agg.Spent, agg.Win, agg.Lose),
		}
	}
	return res
}

// MismatchAdjustment scales the player's result so that winners and losers
// reconcile to the smaller of the two pools.
//
// A zero groupLose for a losing player can only come from aggregates that
// don't include p; the unadjusted result is returned in that case.
func MismatchAdjustment(p Player, groupWin, groupLose int) int {
	current := p.Current()
	netPositive := groupWin-abs(groupLose) > 0

	switch {
	case netPositive && p.Winning():
		// netPositive implies groupWin > 0
		newWin := float64(abs(groupLose))
		return int(newWin * (float64(current) / float64(groupWin)))
	case netPositive && !p.Winning():
		return current
	case !netPositive && !p.Winning():
		if groupLose == 0 {
			return current
		}
		newLose := float64(-groupWin)
		return int(newLose * float64(current) / float64(groupLose))
	default:
		return current
	}
}

// AfterFood settles the player after mismatch adjustment and shared
// expenses. The scaled side pays groupSpent in proportion to its share of
// the pool; every player gets their own contribution back.
//
// With no winners or no losers there is nothing to split against and the
// adjusted amount is returned as is and expenses are ignored.
func AfterFood(p Player, groupSpent, groupWin, groupLose int) int {
	adjusted := float64(MismatchAdjustment(p, groupWin, groupLose))
	if groupWin == 0 || groupLose == 0 {
		return int(adjusted)
	}

	spent := float64(p.Spent())
	pool := float64(groupSpent)
	netPositive := groupWin-abs(groupLose) > 0

	switch {
	case netPositive && p.Winning():
		// the conversion rounds the product and keeps it out of an FMA
		share := float64(adjusted / float64(abs(groupLose)) * pool)
		return int(adjusted - share + spent)
	case !netPositive && p.Winning():
		share := float64(adjusted / float64(groupWin) * pool)
		return int(adjusted - share + spent)
	default:
		return int(adjusted + spent)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
