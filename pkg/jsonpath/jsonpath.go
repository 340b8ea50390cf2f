// Package jsonpath queries exported run summaries with a subset of JSONPath:
// dotted fields, quoted bracket fields, array indexes and the [*] wildcard.
package jsonpath

import (
	"fmt"
	"math"
	"strings"

	"github.com/tidwall/gjson"
)

// Query evaluates a JSONPath expression against a JSON document.
func Query(json string, path string) (gjson.Result, error) {
	if json == "" {
		return gjson.Result{}, fmt.Errorf("empty JSON string")
	}
	if path == "" {
		return gjson.Result{}, fmt.Errorf("empty JSONPath expression")
	}
	if !gjson.Valid(json) {
		return gjson.Result{}, fmt.Errorf("invalid JSON document")
	}

	gpath, err := convertToGjsonPath(path)
	if err != nil {
		return gjson.Result{}, err
	}
	result := gjson.Get(json, gpath)
	if !result.Exists() {
		return gjson.Result{}, fmt.Errorf("path not found: %s", path)
	}
	return result, nil
}

// Extract returns the value at path as a string. Objects and arrays are
// returned as raw JSON, null as "null".
func Extract(json string, path string) (string, error) {
	result, err := Query(json, path)
	if err != nil {
		return "", err
	}
	switch result.Type {
	case gjson.Null:
		return "null", nil
	case gjson.JSON:
		return result.Raw, nil
	default:
		return result.String(), nil
	}
}

// ExtractMultiple extracts several named values. Values that were found are
// returned even when others fail.
func ExtractMultiple(json string, paths map[string]string) (map[string]string, error) {
	if json == "" {
		return nil, fmt.Errorf("empty JSON string")
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no JSONPath expressions provided")
	}

	results := make(map[string]string)
	var errors []string
	for name, path := range paths {
		value, err := Extract(json, path)
		if err != nil {
			errors = append(errors, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		results[name] = value
	}
	if len(errors) > 0 {
		return results, fmt.Errorf("extraction errors: %s", strings.Join(errors, "; "))
	}
	return results, nil
}

// Floats returns the numbers at path. A scalar yields one value, an array
// one value per element. Nulls become NaN.
func Floats(json string, path string) ([]float64, error) {
	result, err := Query(json, path)
	if err != nil {
		return nil, err
	}
	var values []float64
	var bad error
	collect := func(r gjson.Result) {
		switch r.Type {
		case gjson.Number:
			values = append(values, r.Float())
		case gjson.Null:
			values = append(values, math.NaN())
		default:
			if bad == nil {
				bad = fmt.Errorf("%s: %s is not a number", path, r.Raw)
			}
		}
	}
	if result.IsArray() {
		result.ForEach(func(_, v gjson.Result) bool {
			collect(v)
			return true
		})
	} else {
		collect(result)
	}
	if bad != nil {
		return nil, bad
	}
	return values, nil
}

// convertToGjsonPath converts a JSONPath expression to gjson syntax:
//
//	$.reads[0].lanes[*].tile_count -> reads.0.lanes.#.tile_count
//	$['total']['yield_g']          -> total.yield_g
func convertToGjsonPath(path string) (string, error) {
	path = strings.TrimPrefix(strings.TrimSpace(path), "$")
	if path == "" {
		return "@this", nil
	}

	var parts []string
	for len(path) > 0 {
		switch path[0] {
		case '.':
			path = path[1:]
			end := strings.IndexAny(path, ".[")
			if end < 0 {
				end = len(path)
			}
			if end == 0 {
				return "", fmt.Errorf("empty field name in JSONPath expression")
			}
			parts = append(parts, escape(path[:end]))
			path = path[end:]
		case '[':
			end := strings.IndexByte(path, ']')
			if end < 0 {
				return "", fmt.Errorf("unterminated bracket in JSONPath expression")
			}
			inner := strings.TrimSpace(path[1:end])
			path = path[end+1:]
			switch {
			case inner == "*":
				parts = append(parts, "#")
			case len(inner) >= 2 && (inner[0] == '\'' || inner[0] == '"') && inner[len(inner)-1] == inner[0]:
				parts = append(parts, escape(inner[1:len(inner)-1]))
			case inner != "" && strings.Trim(inner, "0123456789") == "":
				parts = append(parts, inner)
			default:
				return "", fmt.Errorf("unsupported JSONPath selector [%s]", inner)
			}
		default:
			// A bare leading field, as in "reads[0]".
			end := strings.IndexAny(path, ".[")
			if end < 0 {
				end = len(path)
			}
			parts = append(parts, escape(path[:end]))
			path = path[end:]
		}
	}
	return strings.Join(parts, "."), nil
}

// escape protects gjson's special characters inside a field name.
func escape(field string) string {
	var sb strings.Builder
	for _, r := range field {
		switch r {
		case '.', '*', '?', '#', '|', '@', '\\':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
