package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/pokercal/cmd/pokercal/shared"
	"github.com/lox/pokercal/internal/report"
	"github.com/lox/pokercal/internal/session"
	"github.com/lox/pokercal/internal/tui"
)

// PlayCmd runs the interactive tracker.
type PlayCmd struct {
	Table   string `short:"t" type:"existingfile" env:"POKERCAL_TABLE" help:"Table file (HCL) to start from; the sample table when omitted"`
	Empty   bool   `help:"Start with no players"`
	LogFile string `default:"pokercal.log" help:"Where to write logs while the TUI owns the terminal"`
}

func (cmd *PlayCmd) Run(g *Globals) error {
	logger, closer, err := shared.SetupFileLogger(cmd.LogFile, g.Debug, g.LogFormat)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() {
		if err := closer.Close(); err != nil {
			log.Error("Failed to close log file", "error", err)
		}
	}()

	var s *session.Session
	if cmd.Empty {
		s = session.New(session.WithLogger(logger))
	} else if s, err = loadSession(cmd.Table, logger); err != nil {
		return err
	}
	logger.Info("Starting session", "id", s.ID, "players", s.Len())

	ctx, cancel := shared.SetupSignalHandler(logger)
	defer cancel()

	p := tea.NewProgram(tui.NewModel(s, logger), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	logger.Info("Session finished", "id", s.ID)
	return report.Render(os.Stdout, report.New(s), report.Options{})
}
