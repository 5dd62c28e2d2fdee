package registry

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMaterialID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    MaterialID
		wantErr string
	}{
		{name: "one", input: "1", want: 1},
		{name: "large", input: "18446744073709551615", want: 18446744073709551615},
		{name: "zero", input: "0", wantErr: "must be >= 1"},
		{name: "negative", input: "-1", wantErr: "must be a positive integer"},
		{name: "not a number", input: "abc", wantErr: "must be a positive integer"},
		{name: "empty", input: "", wantErr: "must be a positive integer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMaterialID(tt.input)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.input, got.String())
		})
	}
}

func TestEventKindValidate(t *testing.T) {
	assert.NoError(t, EventRegistered.Validate())
	assert.NoError(t, EventAvailabilityChanged.Validate())

	err := EventKind("deleted").Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown event kind")
}

func TestMaterialDetails(t *testing.T) {
	d := Details{Title: "History Timeline", Description: "Visual timeline of world events", Subject: "History", GradeLevel: "Elementary"}
	m := newMaterial(3, d, user1, 42)

	assert.Equal(t, d, m.Details())
	assert.Equal(t, MaterialID(3), m.ID)
	assert.Equal(t, Height(42), m.CreatedAt)
	assert.True(t, m.Available)
}

func TestMaterialJSON(t *testing.T) {
	m := newMaterial(1, mathWorkbook(), user1, 100)

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Equal(t, "Math Workbook", fields["title"])
	assert.Equal(t, "High School", fields["grade_level"])
	assert.Equal(t, string(user1), fields["owner"])
	assert.Equal(t, float64(100), fields["created_at"])
	assert.Equal(t, true, fields["available"])
}
