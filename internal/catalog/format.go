package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dyluth/primer/pkg/registry"
)

// FormatTable writes materials as a table with columns ID, TITLE, SUBJECT,
// GRADE, OWNER, HEIGHT and AVAILABLE.
// Returns the number of materials formatted.
func FormatTable(w io.Writer, materials []registry.Material, instanceName string) int {
	if len(materials) == 0 {
		fmt.Fprintf(w, "No materials found for instance '%s'\n", instanceName)
		return 0
	}

	fmt.Fprintf(w, "Materials for instance '%s':\n\n", instanceName)

	fmt.Fprintf(w, "%-6s %-30s %-14s %-14s %-14s %-8s %s\n",
		"ID", "TITLE", "SUBJECT", "GRADE", "OWNER", "HEIGHT", "AVAILABLE")
	fmt.Fprintf(w, "%-6s %-30s %-14s %-14s %-14s %-8s %s\n",
		"------", "------------------------------", "--------------", "--------------", "--------------", "--------", "---------")

	for _, m := range materials {
		fmt.Fprintf(w, "%-6d %-30s %-14s %-14s %-14s %-8d %s\n",
			m.ID,
			truncate(m.Title, 30),
			truncate(m.Subject, 14),
			truncate(m.GradeLevel, 14),
			formatOwner(m.Owner),
			m.CreatedAt,
			formatAvailable(m.Available),
		)
	}

	noun := "material"
	if len(materials) != 1 {
		noun = "materials"
	}
	fmt.Fprintf(w, "\n%d %s found\n", len(materials), noun)

	return len(materials)
}

// FormatJSONL writes one compact JSON object per line.
func FormatJSONL(w io.Writer, materials []registry.Material) error {
	for _, m := range materials {
		data, err := json.Marshal(m)
		if err != nil {
			return fmt.Errorf("failed to marshal material to JSON: %w", err)
		}

		if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
			return fmt.Errorf("failed to write JSONL output: %w", err)
		}
	}

	return nil
}

// FormatSingleJSON writes a single material as pretty-printed JSON.
func FormatSingleJSON(w io.Writer, m registry.Material) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal material to JSON: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write JSON output: %w", err)
	}

	fmt.Fprintln(w)

	return nil
}

// truncate keeps the first line of s and shortens it to max runes.
// Empty text renders as "-".
func truncate(s string, max int) string {
	line := strings.TrimSpace(strings.SplitN(s, "\n", 2)[0])
	if line == "" {
		return "-"
	}

	runes := []rune(line)
	if len(runes) > max {
		return string(runes[:max-3]) + "..."
	}
	return line
}

// formatOwner shortens long principals to their first and last characters.
func formatOwner(p registry.Principal) string {
	runes := []rune(string(p))
	if len(runes) == 0 {
		return "-"
	}
	if len(runes) > 14 {
		return string(runes[:6]) + "…" + string(runes[len(runes)-6:])
	}
	return string(p)
}

func formatAvailable(available bool) string {
	if available {
		return "yes"
	}
	return "no"
}
