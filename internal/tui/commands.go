package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/pokercal/internal/report"
)

const helpText = "add <name> [buy-in] [spent] · select <name> · buy|checkout|spent <amount> · " +
	"undo <n> · remove <name> · reset · export <file> · quit"

// run executes one command line against the session. It reports whether
// the command was accepted and the input box can be cleared.
func (m *Model) run(line string) (done bool, cmd tea.Cmd) {
	fields := strings.Fields(line)

	if m.confirmReset {
		m.confirmReset = false
		if len(fields) == 1 && strings.EqualFold(fields[0], "yes") {
			m.session.ResetAll()
			m.info("Reset all players")
		} else {
			m.info("Reset cancelled")
		}
		return true, nil
	}

	if len(fields) == 0 {
		return false, nil
	}
	verb, args := strings.ToLower(fields[0]), fields[1:]

	switch verb {
	case "quit", "exit":
		m.quitting = true
		return true, tea.Quit

	case "help", "?":
		m.info(helpText)
		return true, nil

	case "add":
		if len(args) == 0 {
			m.fail("usage: add <name> [buy-in] [spent]")
			return false, nil
		}
		p, err := m.session.AddPlayer(args[0], arg(args, 1), arg(args, 2))
		if err != nil {
			m.fail(err.Error())
			return false, nil
		}
		m.selected = p.ID
		m.info(fmt.Sprintf("Added %s with %d", p.Name, p.TotalBuyIn()))
		return true, nil

	case "select":
		if len(args) != 1 {
			m.fail("usage: select <name>")
			return false, nil
		}
		p, err := m.session.PlayerByName(args[0])
		if err != nil {
			m.fail(err.Error())
			return false, nil
		}
		m.selected = p.ID
		return true, nil

	case "buy", "checkout", "spent":
		p := m.selectedPlayer()
		if p == nil {
			m.fail("select a player first")
			return false, nil
		}
		var ok bool
		switch verb {
		case "buy":
			ok = p.AddBuyIn(arg(args, 0))
		case "checkout":
			ok = p.SetCheckout(arg(args, 0))
		case "spent":
			ok = p.SetSpent(arg(args, 0))
		}
		// invalid amounts are ignored; leave the text for the user to fix
		if ok {
			m.logger.Debug("Updated player", "name", p.Name, "field", verb, "value", arg(args, 0))
		}
		return ok, nil

	case "undo":
		p := m.selectedPlayer()
		if p == nil {
			m.fail("select a player first")
			return false, nil
		}
		n, err := strconv.Atoi(arg(args, 0))
		if err != nil {
			m.fail("usage: undo <n>")
			return false, nil
		}
		if err := p.RemoveBuyIn(n - 1); err != nil {
			m.fail(err.Error())
			return false, nil
		}
		return true, nil

	case "remove":
		if len(args) != 1 {
			m.fail("usage: remove <name>")
			return false, nil
		}
		p, err := m.session.PlayerByName(args[0])
		if err == nil {
			err = m.session.RemovePlayer(p.ID)
		}
		if err != nil {
			m.fail(err.Error())
			return false, nil
		}
		m.info("Removed " + p.Name)
		return true, nil

	case "reset":
		m.confirmReset = true
		m.warn("Are you sure to reset? Type yes to confirm")
		return true, nil

	case "export":
		if len(args) != 1 {
			m.fail("usage: export <file>")
			return false, nil
		}
		if err := report.WriteFile(args[0], report.New(m.session)); err != nil {
			m.fail(err.Error())
			return false, nil
		}
		m.info("Wrote " + args[0])
		return true, nil
	}

	m.fail(fmt.Sprintf("unknown command %q, try help", verb))
	return false, nil
}

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
