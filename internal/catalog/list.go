package catalog

import (
	"context"
	"fmt"
	"io"

	"github.com/dyluth/primer/pkg/registry"
)

// OutputFormat specifies how to format the material list output.
type OutputFormat string

const (
	// OutputFormatDefault uses a table format with truncated text fields
	OutputFormatDefault OutputFormat = "default"

	// OutputFormatJSONL outputs complete materials as line-delimited JSON
	OutputFormatJSONL OutputFormat = "jsonl"
)

// ParseOutputFormat maps a --output flag value to an OutputFormat.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case OutputFormatDefault, OutputFormatJSONL:
		return OutputFormat(s), nil
	default:
		return "", fmt.Errorf("unknown output format: %s", s)
	}
}

// Filter narrows the list output. Zero values disable each criterion.
// All criteria are ANDed together.
type Filter struct {
	Subject       string             // Exact match on subject
	Owner         registry.Principal // Exact match on owner
	AvailableOnly bool
}

func (f *Filter) matches(m registry.Material) bool {
	if f == nil {
		return true
	}
	if f.Subject != "" && m.Subject != f.Subject {
		return false
	}
	if f.Owner != "" && m.Owner != f.Owner {
		return false
	}
	if f.AvailableOnly && !m.Available {
		return false
	}
	return true
}

// ListMaterials walks identifiers 1..count in allocation order and writes the
// materials matching filter to w.
func ListMaterials(ctx context.Context, reader Reader, instanceName string, format OutputFormat, filter *Filter, w io.Writer) error {
	if _, err := ParseOutputFormat(string(format)); err != nil {
		return err
	}

	count, err := reader.MaterialCount(ctx)
	if err != nil {
		return fmt.Errorf("failed to read material count: %w", err)
	}

	var materials []registry.Material
	for id := registry.MaterialID(1); uint64(id) <= count; id++ {
		m, ok, err := reader.GetMaterial(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to fetch material %d: %w", id, err)
		}
		if !ok || !filter.matches(m) {
			continue
		}
		materials = append(materials, m)
	}

	switch format {
	case OutputFormatJSONL:
		if err := FormatJSONL(w, materials); err != nil {
			return fmt.Errorf("failed to format JSONL output: %w", err)
		}
	default:
		FormatTable(w, materials, instanceName)
	}

	return nil
}
