package registry

import (
	"fmt"
	"strconv"
)

// MaterialID identifies a registered material.
// Identifiers start at 1 and are allocated in strictly increasing order.
type MaterialID uint64

// String returns the decimal form of the identifier.
func (id MaterialID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// ParseMaterialID parses a decimal material identifier.
// Zero is rejected because it is never allocated.
func ParseMaterialID(s string) (MaterialID, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid material ID %q: must be a positive integer", s)
	}
	if n == 0 {
		return 0, fmt.Errorf("invalid material ID %q: must be >= 1", s)
	}
	return MaterialID(n), nil
}

// Principal is an opaque caller identity. The registry only compares
// principals for equality.
type Principal string

// Height is the logical timestamp supplied by the execution context.
type Height uint64

// Details holds the descriptive fields of a material. None of them are
// validated; empty text is accepted as-is.
type Details struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Subject     string `json:"subject"`
	GradeLevel  string `json:"grade_level"`
}

// Material is a registered record.
// Owner and CreatedAt never change after registration; Available is the only
// mutable field.
type Material struct {
	ID          MaterialID `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Subject     string     `json:"subject"`
	GradeLevel  string     `json:"grade_level"`
	Owner       Principal  `json:"owner"`
	CreatedAt   Height     `json:"created_at"`
	Available   bool       `json:"available"`
}

// Details returns the descriptive fields of the material.
func (m Material) Details() Details {
	return Details{
		Title:       m.Title,
		Description: m.Description,
		Subject:     m.Subject,
		GradeLevel:  m.GradeLevel,
	}
}

func newMaterial(id MaterialID, d Details, owner Principal, at Height) Material {
	return Material{
		ID:          id,
		Title:       d.Title,
		Description: d.Description,
		Subject:     d.Subject,
		GradeLevel:  d.GradeLevel,
		Owner:       owner,
		CreatedAt:   at,
		Available:   true,
	}
}

// EventKind names the registry change carried by a MaterialEvent.
type EventKind string

const (
	// EventRegistered is published after a material is registered
	EventRegistered EventKind = "registered"

	// EventAvailabilityChanged is published after the owner updates availability
	EventAvailabilityChanged EventKind = "availability_changed"
)

// Validate checks if the EventKind is a known value.
func (k EventKind) Validate() error {
	switch k {
	case EventRegistered, EventAvailabilityChanged:
		return nil
	default:
		return fmt.Errorf("unknown event kind: %q", k)
	}
}

// MaterialEvent is published on the instance's material events channel.
// The material is the state immediately after the change.
type MaterialEvent struct {
	ID       string    `json:"id"` // UUID - unique per published event
	Kind     EventKind `json:"kind"`
	Material Material  `json:"material"`
	AtMs     int64     `json:"at_ms"` // Unix timestamp in milliseconds when the event was published
}
