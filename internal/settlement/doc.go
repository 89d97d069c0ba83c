// Package settlement computes how a home game settles up.
//
// Every function is a pure computation over the players passed in. Nothing
// is cached: callers recompute after each change to a player.
//
// # Policy
//
// Recorded wins and losses rarely match while checkouts are still being
// entered. The engine reconciles them to a single pool size: when winners
// are up more than losers are down, each winner is scaled to the losers'
// total; in the opposite case each loser is scaled to the winners' total.
// The other side passes through unchanged.
//
// Shared food and drink is then charged to the scaled side in proportion to
// each player's share of the pool, and every player is credited back what
// they personally contributed.
//
// # Arithmetic
//
// Ratios are taken in float64 and truncated toward zero, step by step, in
// the same operand order for every branch:
//
//	winner, net positive:  |lose| * (current / win)
//	loser, net negative:   (-win * current) / lose
//
// # Basic Usage
//
//	res := settlement.Settle(players)
//	for i, line := range res.Lines {
//	    fmt.Println(names[i], line.Final)
//	}
package settlement
