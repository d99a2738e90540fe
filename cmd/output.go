package cmd

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/s0up4200/apivideo/apivideo"
	"github.com/s0up4200/apivideo/filter"
)

// Output formats accepted by --output
const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

func validateOutputFormat(format string) error {
	switch format {
	case outputTable, outputJSON, outputYAML:
		return nil
	}
	return fmt.Errorf("invalid output format: %s (must be table, json or yaml)", format)
}

// fielder is implemented by the api.video models
type fielder interface {
	Fields() map[string]any
}

// renderList writes items in the selected format. table prints one summary
// line per item.
func renderList[T fielder](w io.Writer, format string, items []T, table func(w io.Writer, item T)) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	case outputYAML:
		rows := make([]map[string]any, 0, len(items))
		for _, item := range items {
			rows = append(rows, item.Fields())
		}
		return encodeYAML(w, rows)
	}

	if len(items) == 0 {
		fmt.Fprintln(w, "No results found.")
		return nil
	}

	fmt.Fprintf(w, "\nFound %d:\n", len(items))
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for _, item := range items {
		table(w, item)
	}
	return nil
}

// renderItem writes a single item. table prints every field.
func renderItem[T fielder](w io.Writer, format string, item T) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(item)
	case outputYAML:
		return encodeYAML(w, item.Fields())
	}

	fields := item.Fields()
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sortKeys(keys)

	for _, key := range keys {
		fmt.Fprintf(w, "%-22s %s\n", key+":", formatValue(fields[key]))
	}
	return nil
}

func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}

// formatValue renders nested assets and logos on one line
func formatValue(v any) string {
	switch val := v.(type) {
	case *apivideo.LiveAssets:
		if val == nil {
			return "-"
		}
		return joinNonEmpty("hls="+val.HLS, "player="+val.Player, "thumbnail="+val.Thumbnail)
	case *apivideo.PlayerLogo:
		if val == nil {
			return "-"
		}
		return joinNonEmpty("logo="+val.Logo, "link="+val.Link)
	case string:
		if val == "" {
			return "-"
		}
		return val
	}
	return fmt.Sprint(v)
}

func joinNonEmpty(pairs ...string) string {
	parts := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		if !strings.HasSuffix(pair, "=") {
			parts = append(parts, pair)
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}

// sortKeys orders id fields first, then alphabetically
func sortKeys(keys []string) {
	rank := func(key string) string {
		if strings.HasSuffix(key, "Id") {
			return "0" + key
		}
		return "1" + key
	}
	slices.SortFunc(keys, func(a, b string) int {
		return cmp.Compare(rank(a), rank(b))
	})
}

// compileFilter resolves expression as a configured filter name first, then
// compiles it. An empty expression disables filtering.
func compileFilter(expression string, named map[string]string) (*filter.Filter, error) {
	if expression == "" {
		return nil, nil
	}
	if saved, ok := named[expression]; ok {
		expression = saved
	}

	f, err := filter.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}
	return f, nil
}

// printBatchResult reports a batch delete and returns an error if any id failed
func printBatchResult(w io.Writer, kind string, result apivideo.BatchDeleteResult) error {
	for _, id := range result.Successful {
		fmt.Fprintf(w, "✓ Deleted %s %s\n", kind, id)
	}
	for _, failure := range result.Failed {
		fmt.Fprintf(w, "✗ %v\n", failure)
	}

	if len(result.Failed) > 0 {
		return fmt.Errorf("failed to delete %d of %d %ss", len(result.Failed), result.Requested, kind)
	}
	return nil
}
