package tui

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokercal/internal/report"
	"github.com/lox/pokercal/internal/session"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()

	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel}) // Quiet logger for tests
	clock := quartz.NewMock(t)
	clock.Set(time.Date(2022, 12, 4, 21, 0, 0, 0, time.UTC))

	s, err := session.DefaultTable().Build(session.WithClock(clock), session.WithLogger(logger))
	require.NoError(t, err)
	return NewModel(s, logger)
}

// submit types line into the input and presses enter.
func submit(t *testing.T, m *Model, line string) tea.Cmd {
	t.Helper()

	m.input.SetValue(line)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return cmd
}

func lastMessage(m *Model) string {
	msgs := m.Messages()
	if len(msgs) == 0 {
		return ""
	}
	return msgs[len(msgs)-1]
}

func TestSelectsFirstPlayer(t *testing.T) {
	m := newTestModel(t)

	require.NotNil(t, m.Selected())
	assert.Equal(t, "Binh", m.Selected().Name)
}

func TestPlayerCommands(t *testing.T) {
	m := newTestModel(t)

	submit(t, m, "select do")
	require.Equal(t, "Do", m.Selected().Name)
	assert.Empty(t, m.input.Value())

	submit(t, m, "buy 50")
	assert.Equal(t, 250, m.Selected().TotalBuyIn())

	submit(t, m, "checkout 300")
	assert.Equal(t, 300, m.Selected().Checkout())

	submit(t, m, "spent 12")
	assert.Equal(t, 12, m.Selected().Spent())

	submit(t, m, "undo 1")
	assert.Equal(t, 200, m.Selected().TotalBuyIn())
	assert.Len(t, m.Selected().History(), 2)
}

func TestInvalidAmountIsIgnored(t *testing.T) {
	m := newTestModel(t)

	for _, line := range []string{"buy abc", "buy -5", "checkout 0", "spent"} {
		submit(t, m, line)
		assert.Equal(t, line, m.input.Value(), "rejected input stays in the box")
	}
	assert.Equal(t, 150, m.Selected().TotalBuyIn())
	assert.Equal(t, 120, m.Selected().Checkout())
	assert.Equal(t, 20, m.Selected().Spent())
	assert.Empty(t, m.Messages())
}

func TestAddAndRemovePlayer(t *testing.T) {
	m := newTestModel(t)

	submit(t, m, "add Zed 40 5")
	players := m.session.Players()
	require.Len(t, players, 7)
	assert.Equal(t, "Zed", players[0].Name)
	assert.Equal(t, 40, players[0].TotalBuyIn())
	assert.Equal(t, 5, players[0].Spent())
	assert.Equal(t, "Zed", m.Selected().Name)

	submit(t, m, "remove zed")
	assert.Equal(t, 6, m.session.Len())
	assert.Nil(t, m.Selected())
	assert.Contains(t, lastMessage(m), "Removed Zed")

	submit(t, m, "buy 10")
	assert.Contains(t, lastMessage(m), "select a player first")
}

func TestResetNeedsConfirmation(t *testing.T) {
	m := newTestModel(t)

	submit(t, m, "reset")
	assert.Contains(t, lastMessage(m), "Are you sure to reset?")
	submit(t, m, "no")
	assert.Contains(t, lastMessage(m), "Reset cancelled")
	assert.Equal(t, 150, m.Selected().TotalBuyIn())

	submit(t, m, "reset")
	submit(t, m, "yes")
	assert.Contains(t, lastMessage(m), "Reset all players")
	for _, p := range m.session.Players() {
		assert.Equal(t, 0, p.TotalBuyIn(), p.Name)
		assert.Equal(t, 0, p.Checkout(), p.Name)
	}
	assert.Equal(t, 6, m.session.Len())
}

func TestCommandErrors(t *testing.T) {
	m := newTestModel(t)

	tests := []struct {
		line string
		want string
	}{
		{"dance", "unknown command"},
		{"select nobody", "player not found"},
		{"select", "usage: select"},
		{"add", "usage: add"},
		{"undo x", "usage: undo"},
		{"undo 9", "out of range"},
		{"export", "usage: export"},
	}
	for _, tt := range tests {
		submit(t, m, tt.line)
		assert.Contains(t, lastMessage(m), tt.want, tt.line)
		assert.Equal(t, tt.line, m.input.Value())
	}
}

func TestExport(t *testing.T) {
	m := newTestModel(t)
	path := filepath.Join(t.TempDir(), "night.toml")

	submit(t, m, "export "+path)
	assert.Contains(t, lastMessage(m), "Wrote")

	r, err := report.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, r.Players, 6)
	assert.Equal(t, 270, r.Win)

	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestQuit(t *testing.T) {
	m := newTestModel(t)

	cmd := submit(t, m, "quit")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestViewShowsSettlement(t *testing.T) {
	m := newTestModel(t)

	assert.Equal(t, "Loading...", m.View())

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	view := m.View()

	for _, want := range []string{"pokercal", "Binh", "Long", "Deficit 90", "Spent (food/drink) 20", "21:00:00"} {
		assert.True(t, strings.Contains(view, want), "view missing %q", want)
	}
}
