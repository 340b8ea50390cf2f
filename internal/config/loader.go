package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/seqsum/internal/metrics"
	"github.com/wesleyorama2/seqsum/pkg/jsonschema"
)

//go:embed run.schema.json
var runSchemaJSON string

var runSchema = jsonschema.MustCompile("run.schema.json", runSchemaJSON)

// zstdExt marks a compressed fixture; the extension before it picks the format.
const zstdExt = ".zst"

// LoadRun loads a run fixture from a file.
//
// The file format is determined by extension:
//   - .yaml, .yml -> YAML
//   - .json -> JSON, checked against the run schema
//   - any of the above followed by .zst -> zstd-compressed
func LoadRun(path string) (*RunDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read run file: %w", err)
	}
	return ParseRun(data, path)
}

// ParseRun parses and validates fixture data. The format is determined by
// the extension of path, defaulting to YAML.
func ParseRun(data []byte, path string) (*RunDocument, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == zstdExt {
		plain, err := decompress(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress run file: %w", err)
		}
		data = plain
		ext = strings.ToLower(filepath.Ext(strings.TrimSuffix(path, filepath.Ext(path))))
	}

	var doc RunDocument
	switch ext {
	case ".json":
		if errs := runSchema.ValidateJSON(data); len(errs) > 0 {
			return nil, fmt.Errorf("run file does not match schema: %w", errs)
		}
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to parse JSON run file: %w", err)
		}
	case ".yaml", ".yml", "":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML run file: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse run file (unknown format %s): %w", ext, err)
		}
	}

	if errs := ValidateRun(&doc); len(errs) > 0 {
		return nil, errs
	}
	return &doc, nil
}

// LoadRunMetrics loads a fixture and builds its metric stores.
func LoadRunMetrics(path string) (*metrics.RunMetrics, error) {
	doc, err := LoadRun(path)
	if err != nil {
		return nil, err
	}
	m, err := doc.RunMetrics()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

func decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return io.ReadAll(dec)
}
