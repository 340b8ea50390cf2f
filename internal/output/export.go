package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/seqsum/internal/summary"
)

// OutputFormat represents the available output formats
type OutputFormat string

const (
	// FormatText is the human-readable console report
	FormatText OutputFormat = "text"
	// FormatJSON outputs the export envelope as JSON
	FormatJSON OutputFormat = "json"
	// FormatYAML outputs the export envelope as YAML
	FormatYAML OutputFormat = "yaml"
)

// ParseFormat parses a format name.
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
}

// Extension returns the file extension of exports in this format.
func (f OutputFormat) Extension() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatYAML:
		return ".yaml"
	default:
		return ".txt"
	}
}

// Envelope wraps an exported summary with the pass that produced it.
type Envelope struct {
	SummaryID   uuid.UUID `json:"summary_id" yaml:"summary_id"`
	Source      string    `json:"source,omitempty" yaml:"source,omitempty"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
	Summary     RunView   `json:"summary" yaml:"summary"`
}

// NewEnvelope wraps a summary for export.
func NewEnvelope(id uuid.UUID, source string, generatedAt time.Time, s *summary.RunSummary) Envelope {
	return Envelope{
		SummaryID:   id,
		Source:      source,
		GeneratedAt: generatedAt.UTC(),
		Summary:     NewRunView(s),
	}
}

// WriteEnvelope writes env to w in the given format. Text renders the
// console report with colors from scheme.
func WriteEnvelope(w io.Writer, env Envelope, format OutputFormat, scheme *ColorScheme) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(env)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(env); err != nil {
			return err
		}
		return enc.Close()
	case FormatText:
		if scheme == nil {
			scheme = NoColorScheme()
		}
		return NewReport(w, scheme).Write(env)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// WriteCompressed writes env through a zstd encoder.
func WriteCompressed(w io.Writer, env Envelope, format OutputFormat) error {
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return err
	}
	if err := WriteEnvelope(zw, env, format, nil); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

// WriteFile writes env to path, compressing when path ends in .zst.
func WriteFile(path string, env Envelope, format OutputFormat) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".zst") {
		err = WriteCompressed(f, env, format)
	} else {
		err = WriteEnvelope(f, env, format, nil)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ReadFile reads an exported file, decompressing it when path ends in .zst.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(filepath.Ext(path), ".zst") {
		return data, nil
	}
	dec, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	plain, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress %s: %w", path, err)
	}
	return plain, nil
}
