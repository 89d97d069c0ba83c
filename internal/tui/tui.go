// Package tui is an interactive terminal front end for a session. Every
// frame recomputes the settlement from the session's players.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/lox/pokercal/internal/ledger"
	"github.com/lox/pokercal/internal/report"
	"github.com/lox/pokercal/internal/session"
)

const (
	maxMessages  = 4
	sidebarWidth = 30
	timeFormat   = "15:04:05"
)

// Model is the Bubble Tea model for a running session.
type Model struct {
	session  *session.Session
	logger   *log.Logger
	renderer *lipgloss.Renderer

	selected uuid.UUID

	history viewport.Model
	input   textinput.Model

	messages     []string
	confirmReset bool
	quitting     bool

	width  int
	height int
}

// NewModel creates a model for s.
func NewModel(s *session.Session, logger *log.Logger) *Model {
	vp := viewport.New(sidebarWidth, 5)

	ti := textinput.New()
	ti.Placeholder = "select Binh, buy 50, checkout 120 ... (help for more)"
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 60
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.Prompt = "> "

	m := &Model{
		session:  s,
		logger:   logger.WithPrefix("tui"),
		renderer: lipgloss.DefaultRenderer(),
		history:  vp,
		input:    ti,
	}
	if players := s.Players(); len(players) > 0 {
		m.selected = players[0].ID
	}
	return m
}

// Init initializes the TUI model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "pgup":
			m.history.HalfPageUp()
			return m, nil
		case "pgdown":
			m.history.HalfPageDown()
			return m, nil
		case "enter":
			done, cmd := m.run(m.input.Value())
			if done {
				m.input.SetValue("")
			}
			if cmd != nil {
				return m, cmd
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.history, cmd = m.history.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	title := HeaderStyle.Render("♠ pokercal")
	if m.session.Name != "" {
		title = lipgloss.JoinHorizontal(lipgloss.Top, title, " ", InfoStyle.Render(m.session.Name))
	}

	table := report.Table(report.New(m.session), m.renderer)
	tableStyle := paneStyle
	if m.session.Summary().Mismatched {
		tableStyle = tableStyle.BorderForeground(lipgloss.Color("#FF6B6B"))
	} else {
		tableStyle = focusedPaneStyle
	}
	tablePane := tableStyle.Render(table)

	sidebar := m.renderSidebar(lipgloss.Height(tablePane) - 2)
	top := lipgloss.JoinHorizontal(lipgloss.Top, tablePane, sidebar)

	bottom := m.renderInputPane()

	return lipgloss.JoinVertical(lipgloss.Left, title, top, bottom)
}

func (m *Model) renderSidebar(height int) string {
	p := m.selectedPlayer()
	if p == nil {
		return paneStyle.Width(sidebarWidth).Height(height).Render(InfoStyle.Render("No player selected"))
	}

	var head strings.Builder
	current := ErrorStyle
	if p.Winning() {
		current = SuccessStyle
	}
	head.WriteString(PlayerNameStyle.Render(p.Name))
	head.WriteString(" ")
	head.WriteString(current.Render(fmt.Sprintf("(%d)", p.Current())))
	head.WriteString("\n")
	head.WriteString("Buy in ")
	head.WriteString(BuyInStyle.Render(fmt.Sprintf(" %d ", p.TotalBuyIn())))
	head.WriteString(" Out ")
	head.WriteString(CheckoutStyle.Render(fmt.Sprintf(" %d ", p.Checkout())))
	head.WriteString("\n")
	head.WriteString(fmt.Sprintf("Spent (food/drink) %d", p.Spent()))

	headText := head.String()
	historyHeight := height - lipgloss.Height(headText) - 1
	if historyHeight < 1 {
		historyHeight = 1
	}
	m.history.Width = sidebarWidth
	m.history.Height = historyHeight
	m.history.SetContent(renderHistory(p.History()))

	body := lipgloss.JoinVertical(lipgloss.Left, headText, "", m.history.View())
	return focusedPaneStyle.Width(sidebarWidth).Height(height).Render(body)
}

func renderHistory(history []ledger.BuyIn) string {
	if len(history) == 0 {
		return InfoStyle.Render("No buy-ins")
	}
	var b strings.Builder
	for i, buyIn := range history {
		fmt.Fprintf(&b, "%2d. %5d  %s\n", i+1, buyIn.Amount, buyIn.Time.Format(timeFormat))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) renderInputPane() string {
	var content strings.Builder
	for _, msg := range m.messages {
		content.WriteString(msg)
		content.WriteString("\n")
	}
	content.WriteString(m.input.View())
	content.WriteString("\n")
	content.WriteString(InfoStyle.Render("Enter to run • PgUp/PgDn scroll history • help for commands • Ctrl+C to quit"))

	width := m.width - 2
	if width < 1 {
		width = 1
	}
	return focusedPaneStyle.Width(width).Render(content.String())
}

func (m *Model) selectedPlayer() *ledger.Ledger {
	if m.selected == uuid.Nil {
		return nil
	}
	p, err := m.session.Player(m.selected)
	if err != nil {
		return nil
	}
	return p
}

func (m *Model) info(msg string) { m.push(SuccessStyle.Render(msg)); m.logger.Info(msg) }

func (m *Model) warn(msg string) { m.push(WarningStyle.Render(msg)) }

func (m *Model) fail(msg string) { m.push(ErrorStyle.Render(msg)); m.logger.Warn(msg) }

func (m *Model) push(msg string) {
	m.messages = append(m.messages, msg)
	if len(m.messages) > maxMessages {
		m.messages = m.messages[len(m.messages)-maxMessages:]
	}
}

// Messages returns the status lines currently shown.
func (m *Model) Messages() []string {
	out := make([]string, len(m.messages))
	copy(out, m.messages)
	return out
}

// Selected returns the selected player, if any.
func (m *Model) Selected() *ledger.Ledger { return m.selectedPlayer() }
