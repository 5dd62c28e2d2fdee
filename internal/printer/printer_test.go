package printer

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capture redirects both writers for the duration of a test
func capture(t *testing.T) (stdout, stderr *bytes.Buffer) {
	t.Helper()
	stdout, stderr = &bytes.Buffer{}, &bytes.Buffer{}

	prevOut, prevErr, prevNoColor := Output, Errors, color.NoColor
	Output, Errors, color.NoColor = stdout, stderr, true
	t.Cleanup(func() {
		Output, Errors, color.NoColor = prevOut, prevErr, prevNoColor
	})

	return stdout, stderr
}

func TestError(t *testing.T) {
	t.Run("returns error with title", func(t *testing.T) {
		_, stderr := capture(t)

		err := Error("material not found", "No material has ID 7.", []string{})
		require.Error(t, err)
		require.Equal(t, "material not found", err.Error())
		assert.Contains(t, stderr.String(), "material not found")
		assert.Contains(t, stderr.String(), "No material has ID 7.")
	})

	t.Run("single suggestion printed as-is", func(t *testing.T) {
		_, stderr := capture(t)

		err := Error("Test Error", "Explanation", []string{"Try this fix"})
		require.Equal(t, "Test Error", err.Error())
		assert.Contains(t, stderr.String(), "Try this fix")
		assert.NotContains(t, stderr.String(), "Either:")
	})

	t.Run("multiple suggestions are numbered", func(t *testing.T) {
		_, stderr := capture(t)

		err := Error("Test Error", "Explanation", []string{"First option", "Second option"})
		require.Equal(t, "Test Error", err.Error())
		assert.Contains(t, stderr.String(), "Either:")
		assert.Contains(t, stderr.String(), "  1. First option")
		assert.Contains(t, stderr.String(), "  2. Second option")
	})
}

func TestErrorWithContext(t *testing.T) {
	_, stderr := capture(t)

	err := ErrorWithContext("not the owner", "", map[string]string{
		"Material": "1",
		"Owner":    "user1",
	}, []string{"Fix it"})
	require.Equal(t, "not the owner", err.Error())
	assert.Contains(t, stderr.String(), "  Material: 1")
	assert.Contains(t, stderr.String(), "  Owner: user1")
}

func TestMessages(t *testing.T) {
	stdout, stderr := capture(t)

	Success("registered %d\n", 1)
	Warning("careful\n")
	Step("event\n")
	Info("plain %s\n", "text")

	out := stdout.String()
	assert.Contains(t, out, "✓ registered 1")
	assert.Contains(t, out, "⚠️  careful")
	assert.Contains(t, out, "→ event")
	assert.Contains(t, out, "plain text")
	assert.Empty(t, stderr.String())
}

func TestAvailability(t *testing.T) {
	capture(t)

	assert.Equal(t, "available", Availability(true))
	assert.Equal(t, "unavailable", Availability(false))
}
