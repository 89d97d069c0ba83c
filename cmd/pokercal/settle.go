package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/lox/pokercal/internal/report"
	"github.com/lox/pokercal/internal/session"
)

// SettleCmd prints the settle-up for a table file.
type SettleCmd struct {
	Table   string `short:"t" type:"existingfile" env:"POKERCAL_TABLE" help:"Table file (HCL); the sample table when omitted"`
	Output  string `short:"o" type:"path" help:"Also write the report as TOML to this file"`
	NoColor bool   `env:"NO_COLOR" help:"Disable colour output"`

	stdout io.Writer
}

func (cmd *SettleCmd) Run(logger *log.Logger) error {
	s, err := loadSession(cmd.Table, logger)
	if err != nil {
		return err
	}

	r := report.New(s)
	logger.Debug("Settled table", "session", r.SessionID, "players", len(r.Players), "mismatched", r.Mismatched)

	out := cmd.stdout
	if out == nil {
		out = os.Stdout
	}
	if err := report.Render(out, r, report.Options{NoColor: cmd.NoColor}); err != nil {
		return err
	}

	if cmd.Output != "" {
		if err := report.WriteFile(cmd.Output, r); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		logger.Info("Wrote report", "path", cmd.Output)
	}
	return nil
}

// loadSession builds a session from a table file, or from the sample table
// when path is empty.
func loadSession(path string, logger *log.Logger) (*session.Session, error) {
	cfg := session.DefaultTable()
	if path != "" {
		var err error
		if cfg, err = session.LoadTable(path); err != nil {
			return nil, err
		}
	}
	s, err := cfg.Build(session.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("invalid table: %w", err)
	}
	return s, nil
}
