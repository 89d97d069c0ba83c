package settlement

import (
	"testing"

	"github.com/lox/pokercal/internal/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stub struct {
	current int
	spent   int
}

func (s stub) Current() int  { return s.current }
func (s stub) Winning() bool { return s.current >= 0 }
func (s stub) Spent() int    { return s.spent }

// sampleTable is the table the app ships with.
func sampleTable() []*ledger.Ledger {
	return []*ledger.Ledger{
		ledger.New("Binh", ledger.WithBuyIns(50, 100), ledger.WithCheckout(120), ledger.WithSpent(20)),
		ledger.New("Hieu", ledger.WithBuyIns(100), ledger.WithCheckout(120)),
		ledger.New("Tai", ledger.WithCheckout(150), ledger.WithSpent(30)),
		ledger.New("Hoang", ledger.WithBuyIns(50, 50), ledger.WithCheckout(50), ledger.WithSpent(10)),
		ledger.New("Do", ledger.WithBuyIns(100, 100), ledger.WithCheckout(350)),
		ledger.New("Long", ledger.WithBuyIns(50, 50), ledger.WithSpent(5)),
	}
}

func TestAggregate(t *testing.T) {
	t.Parallel()

	agg := Aggregate(sampleTable())

	assert.Equal(t, 270, agg.Win)
	assert.Equal(t, -180, agg.Lose)
	assert.Equal(t, 65, agg.Spent)
	assert.True(t, agg.Mismatched)
	assert.Equal(t, 90, agg.Net())
	assert.Equal(t, 90, agg.Deficit())
	assert.Equal(t, 0, agg.Surplus())
}

func TestAggregateEmpty(t *testing.T) {
	t.Parallel()

	agg := Aggregate([]stub{})
	assert.Equal(t, Aggregates{}, agg)
}

func TestAggregateIgnoresNonPositiveSpent(t *testing.T) {
	t.Parallel()

	agg := Aggregate([]stub{{current: 10, spent: 5}, {current: -10, spent: -3}, {current: 0}})
	assert.Equal(t, 5, agg.Spent)
	assert.False(t, agg.Mismatched)
	assert.Equal(t, 10, agg.Win)
	assert.Equal(t, -10, agg.Lose)
}

func TestSettleSampleTable(t *testing.T) {
	t.Parallel()

	res := Settle(sampleTable())
	require.Len(t, res.Lines, 6)

	want := []Line{
		{Current: -30, Adjusted: -30, Final: -10},   // Binh
		{Current: 20, Adjusted: 13, Final: 8},       // Hieu
		{Current: 100, Adjusted: 66, Final: 72},     // Tai
		{Current: -50, Adjusted: -50, Final: -40},   // Hoang
		{Current: 150, Adjusted: 100, Final: 63},    // Do
		{Current: -100, Adjusted: -100, Final: -95}, // Long
	}
	assert.Equal(t, want, res.Lines)
	assert.Equal(t, 270, res.Win)
	assert.Equal(t, -180, res.Lose)
}

func TestMismatchAdjustmentCases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		player    stub
		groupWin  int
		groupLose int
		want      int
	}{
		{"net positive, winning scales to losers", stub{current: 100}, 270, -180, 66},
		{"net positive, losing passes through", stub{current: -50}, 270, -180, -50},
		{"net negative, losing scales to winners", stub{current: -100}, 150, -250, -60},
		{"net negative, winning passes through", stub{current: 100}, 150, -250, 100},
		{"net zero, losing is identity", stub{current: -60}, 60, -60, -60},
		{"net zero, winning is identity", stub{current: 60}, 60, -60, 60},
		{"truncates toward zero for winners", stub{current: 20}, 270, -180, 13},
		{"truncates toward zero for losers", stub{current: -1}, 2, -3, 0},
		{"no losers zeroes winners", stub{current: 30}, 30, 0, 0},
		{"no winners zeroes losers", stub{current: -30}, 0, -80, 0},
		{"zero lose aggregate is guarded", stub{current: -10}, 0, 0, -10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, MismatchAdjustment(tt.player, tt.groupWin, tt.groupLose))
		})
	}
}

func TestAfterFoodCases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		player     stub
		groupSpent int
		groupWin   int
		groupLose  int
		want       int
	}{
		{"net positive, winning pays share", stub{current: 100, spent: 30}, 65, 270, -180, 72},
		{"net positive, losing gets spent back", stub{current: -30, spent: 20}, 65, 270, -180, -10},
		{"net negative, losing gets spent back", stub{current: -100, spent: 20}, 30, 150, -250, -40},
		{"net negative, winning pays share", stub{current: 100, spent: 10}, 30, 150, -250, 90},
		{"no losers ignores expenses", stub{current: 30, spent: 10}, 15, 30, 0, 0},
		{"no winners ignores expenses", stub{current: -30, spent: 10}, 15, 0, -80, 0},
		{"empty table", stub{}, 0, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, AfterFood(tt.player, tt.groupSpent, tt.groupWin, tt.groupLose))
		})
	}
}

func TestMismatchConservationNetPositive(t *testing.T) {
	t.Parallel()

	players := sampleTable()
	res := Settle(players)

	losers, winners := 0, 0
	loserCount, winnerCount := 0, 0
	for i, p := range players {
		if p.Winning() {
			winners += res.Lines[i].Adjusted
			winnerCount++
		} else {
			losers += res.Lines[i].Adjusted
			loserCount++
		}
	}

	assert.InDelta(t, res.Lose, losers, float64(loserCount))
	assert.InDelta(t, -res.Lose, winners, float64(winnerCount))
}

func TestMismatchSymmetricNetNegative(t *testing.T) {
	t.Parallel()

	players := []stub{
		{current: 100, spent: 10},
		{current: 50},
		{current: -100, spent: 20},
		{current: -150},
	}
	res := Settle(players)

	assert.Equal(t, 150, res.Win)
	assert.Equal(t, -250, res.Lose)
	assert.Equal(t, 100, res.Surplus())

	want := []Line{
		{Current: 100, Adjusted: 100, Final: 90},
		{Current: 50, Adjusted: 50, Final: 40},
		{Current: -100, Adjusted: -60, Final: -40},
		{Current: -150, Adjusted: -90, Final: -90},
	}
	assert.Equal(t, want, res.Lines)

	losers := 0
	for _, line := range res.Lines[2:] {
		losers += line.Adjusted
	}
	assert.InDelta(t, -res.Win, losers, 2)
}

func TestBalancedTableNeedsNoAdjustment(t *testing.T) {
	t.Parallel()

	players := []stub{{current: 60, spent: 10}, {current: -60, spent: 20}, {current: 0}}
	res := Settle(players)

	require.False(t, res.Mismatched)
	for i, p := range players {
		assert.Equal(t, p.Current(), res.Lines[i].Adjusted)
	}

	finals := []int{res.Lines[0].Final, res.Lines[1].Final, res.Lines[2].Final}
	assert.Equal(t, []int{40, -40, 0}, finals)
}

func TestAfterFoodPassThroughWithoutImbalance(t *testing.T) {
	t.Parallel()

	tables := map[string][]stub{
		"no losers":  {{current: 30, spent: 10}, {current: 0, spent: 5}},
		"no winners": {{current: -30, spent: 10}, {current: -50, spent: 5}},
	}
	for name, players := range tables {
		res := Settle(players)
		for i, line := range res.Lines {
			assert.Equal(t, line.Adjusted, line.Final, "%s: player %d", name, i)
		}
	}
}
