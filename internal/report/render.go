package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Options control terminal rendering.
type Options struct {
	NoColor bool
}

const (
	nameWidth   = 8
	amountWidth = 6
)

type styles struct {
	header   lipgloss.Style
	name     lipgloss.Style
	amount   lipgloss.Style
	win      lipgloss.Style
	lose     lipgloss.Style
	finalWin lipgloss.Style
	finalOut lipgloss.Style
	food     lipgloss.Style
	winTag   lipgloss.Style
	loseTag  lipgloss.Style
	alert    lipgloss.Style
	ok       lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	amount := r.NewStyle().Width(amountWidth).Align(lipgloss.Right)
	final := amount.Bold(true).Foreground(lipgloss.Color("#FAFAFA"))
	return styles{
		header:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color("#FFEAA7")),
		name:     r.NewStyle().Width(nameWidth).Bold(true),
		amount:   amount,
		win:      amount.Foreground(lipgloss.Color("#04B575")),
		lose:     amount.Foreground(lipgloss.Color("#FF6B6B")),
		finalWin: final.Background(lipgloss.Color("#04B575")),
		finalOut: final.Background(lipgloss.Color("#FF6B6B")),
		food:     r.NewStyle().Foreground(lipgloss.Color("#FFA500")),
		winTag:   r.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true),
		loseTag:  r.NewStyle().Foreground(lipgloss.Color("#FF6B9D")).Bold(true),
		alert:    r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		ok:       r.NewStyle().Foreground(lipgloss.Color("#626262")),
	}
}

// Render draws the settlement table, the food panel and the group totals.
func Render(w io.Writer, r *Report, opts Options) error {
	renderer := lipgloss.NewRenderer(w)
	if opts.NoColor {
		renderer.SetColorProfile(termenv.Ascii)
	}
	_, err := io.WriteString(w, Table(r, renderer))
	return err
}

// Table renders the report with the given renderer.
func Table(r *Report, renderer *lipgloss.Renderer) string {
	st := newStyles(renderer)

	var b strings.Builder
	if r.Session != "" {
		b.WriteString(st.name.UnsetWidth().Render(r.Session))
		b.WriteString("\n\n")
	}

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		st.name.Render("Name"),
		st.amount.Render("In"),
		st.amount.Render("Out"),
		st.amount.Render("Diff"),
		st.amount.Render("Adj"),
		st.amount.Render("Final"),
	)
	b.WriteString(st.header.Render(header))
	b.WriteString("\n")

	for _, row := range r.Players {
		diff := st.lose
		if row.Winning() {
			diff = st.win
		}
		final := st.finalOut
		if row.Final > 0 {
			final = st.finalWin
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			st.name.Render(truncate(row.Name, nameWidth-1)),
			st.amount.Render(strconv.Itoa(row.BuyIn)),
			st.amount.Render(strconv.Itoa(row.Checkout)),
			diff.Render(strconv.Itoa(row.Current)),
			st.amount.Render(strconv.Itoa(row.Adjusted)),
			final.Render(strconv.Itoa(row.Final)),
		))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(st.food.Render(fmt.Sprintf("Food/drink total = %d", r.TotalSpent)))
	b.WriteString("\n")
	for _, row := range r.Players {
		if row.Spent > 0 {
			fmt.Fprintf(&b, "  %s %d\n", row.Name, row.Spent)
		}
	}
	b.WriteString("\n")

	b.WriteString(banner(r, st))
	b.WriteString("\n")
	return b.String()
}

// banner is the Win / Lose line, with the deficit or surplus when the
// checkouts don't add up.
func banner(r *Report, st styles) string {
	parts := []string{
		st.winTag.Render(fmt.Sprintf("Win %d", r.Win)),
		st.loseTag.Render(fmt.Sprintf("Lose %d", r.Lose)),
	}
	switch {
	case !r.Mismatched:
		parts = append(parts, st.ok.Render("Balanced"))
	case r.Deficit > 0:
		parts = append(parts, st.alert.Render(fmt.Sprintf("Deficit %d", r.Deficit)))
	default:
		parts = append(parts, st.alert.Render(fmt.Sprintf("Surplus %d", r.Surplus)))
	}
	return strings.Join(parts, "  ")
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
