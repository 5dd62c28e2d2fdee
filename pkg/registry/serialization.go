package registry

import (
	"fmt"
	"strconv"
)

// Serialization helpers for converting between materials and Redis hashes.
//
// Every field is stored as its own hash field so that the availability script
// can read the owner and write the flag without decoding the whole record.

// Hash field names.
const (
	fieldID          = "id"
	fieldTitle       = "title"
	fieldDescription = "description"
	fieldSubject     = "subject"
	fieldGradeLevel  = "grade_level"
	fieldOwner       = "owner"
	fieldCreatedAt   = "created_at"
	fieldAvailable   = "available"
)

// MaterialToHash converts a Material to a Redis hash.
// Available is encoded as "1" or "0".
func MaterialToHash(m Material) map[string]interface{} {
	return map[string]interface{}{
		fieldID:          m.ID.String(),
		fieldTitle:       m.Title,
		fieldDescription: m.Description,
		fieldSubject:     m.Subject,
		fieldGradeLevel:  m.GradeLevel,
		fieldOwner:       string(m.Owner),
		fieldCreatedAt:   strconv.FormatUint(uint64(m.CreatedAt), 10),
		fieldAvailable:   encodeBool(m.Available),
	}
}

// HashToMaterial converts a Redis hash back to a Material.
func HashToMaterial(hash map[string]string) (Material, error) {
	id, err := strconv.ParseUint(hash[fieldID], 10, 64)
	if err != nil {
		return Material{}, fmt.Errorf("invalid id field: %w", err)
	}

	createdAt, err := strconv.ParseUint(hash[fieldCreatedAt], 10, 64)
	if err != nil {
		return Material{}, fmt.Errorf("invalid created_at field: %w", err)
	}

	available, err := decodeBool(hash[fieldAvailable])
	if err != nil {
		return Material{}, fmt.Errorf("invalid available field: %w", err)
	}

	return Material{
		ID:          MaterialID(id),
		Title:       hash[fieldTitle],
		Description: hash[fieldDescription],
		Subject:     hash[fieldSubject],
		GradeLevel:  hash[fieldGradeLevel],
		Owner:       Principal(hash[fieldOwner]),
		CreatedAt:   Height(createdAt),
		Available:   available,
	}, nil
}

func encodeBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func decodeBool(s string) (bool, error) {
	switch s {
	case "1":
		return true, nil
	case "0":
		return false, nil
	default:
		return false, fmt.Errorf("expected \"1\" or \"0\", got %q", s)
	}
}
