package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/lox/pokercal/internal/fileutil"
	"github.com/lox/pokercal/internal/session"
)

// InitCmd writes the sample table as a starting point.
type InitCmd struct {
	Path  string `arg:"" optional:"" default:"table.hcl" type:"path" help:"Where to write the table file"`
	Force bool   `short:"f" help:"Overwrite an existing file"`
}

func (cmd *InitCmd) Run(logger *log.Logger) error {
	if _, err := os.Stat(cmd.Path); err == nil && !cmd.Force {
		return fmt.Errorf("%s already exists, use --force to overwrite", cmd.Path)
	}

	err := fileutil.WriteAtomic(cmd.Path, 0o644, func(w io.Writer) error {
		return session.EncodeTable(w, session.DefaultTable())
	})
	if err != nil {
		return fmt.Errorf("writing table file: %w", err)
	}

	logger.Info("Wrote table file", "path", cmd.Path)
	return nil
}
