// Package output renders projection results for the CLI: console tables,
// CSV exports and JSON.
package output

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/wealthtrail/household-projector/internal/domain"
)

// Formatter defines a pluggable output formatter that returns a byte slice.
// Implementations should be pure (no side effects besides deterministic formatting).
type Formatter interface {
	Format(result *domain.ProjectionResult) ([]byte, error)
	// Name returns a short identifier for logging / debugging.
	Name() string
}

// FormatterFunc adapter to allow ordinary functions to act as a Formatter.
type FormatterFunc struct {
	ID string
	F  func(*domain.ProjectionResult) ([]byte, error)
}

func (ff FormatterFunc) Format(r *domain.ProjectionResult) ([]byte, error) { return ff.F(r) }
func (ff FormatterFunc) Name() string                                      { return ff.ID }

// builtInFormatters stores available formatters (extended incrementally).
var builtInFormatters = []Formatter{
	ConsoleFormatter{},
	CSVFormatter{},
	JSONFormatter{},
}

// NormalizeFormatName maps user-facing aliases onto canonical formatter names.
func NormalizeFormatName(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "table", "console", "text":
		return "console"
	case "csv":
		return "csv"
	case "json":
		return "json"
	default:
		return strings.ToLower(strings.TrimSpace(name))
	}
}

// GetFormatterByName fetches a registered formatter, or an error listing the
// available names.
func GetFormatterByName(name string) (Formatter, error) {
	n := NormalizeFormatName(name)
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f, nil
		}
	}
	names := make([]string, len(builtInFormatters))
	for i, f := range builtInFormatters {
		names[i] = f.Name()
	}
	return nil, fmt.Errorf("unknown output format %q (available: %s)", name, strings.Join(names, ", "))
}

// WriteFormatted runs a formatter and writes its output to a timestamped file.
func WriteFormatted(f Formatter, result *domain.ProjectionResult, ext string) (string, error) {
	data, err := f.Format(result)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("projection_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", err
	}
	return filename, nil
}
