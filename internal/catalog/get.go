// Package catalog renders registry contents for the CLI.
package catalog

import (
	"context"
	"fmt"
	"io"

	"github.com/dyluth/primer/pkg/registry"
)

// Reader is the read side of a registry: direct lookup and count.
type Reader interface {
	GetMaterial(ctx context.Context, id registry.MaterialID) (registry.Material, bool, error)
	MaterialCount(ctx context.Context) (uint64, error)
}

// GetMaterial retrieves a single material and writes it as pretty-printed JSON to w.
// Returns a *MaterialNotFoundError if no material has the given ID.
func GetMaterial(ctx context.Context, reader Reader, id registry.MaterialID, w io.Writer) error {
	m, ok, err := reader.GetMaterial(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch material: %w", err)
	}
	if !ok {
		return &MaterialNotFoundError{ID: id}
	}

	if err := FormatSingleJSON(w, m); err != nil {
		return fmt.Errorf("failed to format material: %w", err)
	}

	return nil
}

// MaterialNotFoundError reports a lookup for an identifier that was never allocated.
type MaterialNotFoundError struct {
	ID registry.MaterialID
}

func (e *MaterialNotFoundError) Error() string {
	return fmt.Sprintf("material with ID %d not found", e.ID)
}

// IsNotFound returns true if the error is a MaterialNotFoundError.
func IsNotFound(err error) bool {
	_, ok := err.(*MaterialNotFoundError)
	return ok
}
