package report

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/lox/pokercal/internal/fileutil"
)

// Encode writes the report as TOML.
func Encode(w io.Writer, r *Report) error {
	if r == nil {
		return fmt.Errorf("report: nil report")
	}
	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(r)
}

// Decode reads a report written by Encode.
func Decode(rd io.Reader) (*Report, error) {
	var r Report
	if _, err := toml.NewDecoder(rd).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &r, nil
}

// WriteFile encodes the report to filename atomically.
func WriteFile(filename string, r *Report) error {
	return fileutil.WriteAtomic(filename, 0o644, func(w io.Writer) error {
		return Encode(w, r)
	})
}

// ReadFile reads a report from filename.
func ReadFile(filename string) (*Report, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}
