package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `version: "1.0"
instance: school-library
redis:
  addr: "redis.internal:6380"
  password: "secret"
  db: 2
caller: "ST1SJ3DTE5DN7X54YDH5D64R3BCB6A2AG2ZQ8YPD5"
`)

	config, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "1.0", config.Version)
	assert.Equal(t, "school-library", config.Instance)
	assert.Equal(t, "redis.internal:6380", config.Redis.Addr)
	assert.Equal(t, "secret", config.Redis.Password)
	assert.Equal(t, 2, config.Redis.DB)
	assert.Equal(t, "ST1SJ3DTE5DN7X54YDH5D64R3BCB6A2AG2ZQ8YPD5", config.Caller)
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `version: "1.0"
`)

	config, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultInstance, config.Instance)
	require.NotNil(t, config.Redis)
	assert.Equal(t, DefaultRedisAddr, config.Redis.Addr)
	assert.Empty(t, config.Caller)
}

func TestLoad_FileNotFound(t *testing.T) {
	config, err := Load("/nonexistent/primer.yml")
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, `version: "1.0"
redis:
  - this is invalid
    yaml syntax
`)

	config, err := Load(path)
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoad_InvalidConfig(t *testing.T) {
	path := writeConfig(t, `version: "2.0"
`)

	config, err := Load(path)
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "invalid configuration")
	assert.Contains(t, err.Error(), "unsupported version: 2.0")
}

func TestValidate(t *testing.T) {
	t.Run("rejects negative redis db", func(t *testing.T) {
		config := &PrimerConfig{Version: "1.0", Redis: &RedisConfig{DB: -1}}
		err := config.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "redis.db must be >= 0")
	})

	t.Run("rejects bad instance name", func(t *testing.T) {
		config := &PrimerConfig{Version: "1.0", Instance: "Bad_Name"}
		err := config.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid instance name")
	})

	t.Run("default config is valid", func(t *testing.T) {
		assert.NoError(t, Default().Validate())
	})
}

func TestValidateInstanceName(t *testing.T) {
	valid := []string{"default", "a", "school-1", "0abc"}
	for _, name := range valid {
		assert.NoError(t, ValidateInstanceName(name), name)
	}

	invalid := map[string]string{
		"":                       "cannot be empty",
		"-leading":               "invalid instance name",
		"trailing-":              "invalid instance name",
		"UPPER":                  "invalid instance name",
		"has space":              "invalid instance name",
		strings.Repeat("a", 64): "too long",
	}
	for name, want := range invalid {
		err := ValidateInstanceName(name)
		require.Error(t, err, name)
		assert.Contains(t, err.Error(), want)
	}
}

func TestLoadOrDefault(t *testing.T) {
	t.Run("missing file gives defaults", func(t *testing.T) {
		config, err := LoadOrDefault(filepath.Join(t.TempDir(), DefaultFileName))
		require.NoError(t, err)
		assert.Equal(t, Default(), config)
	})

	t.Run("existing file is loaded", func(t *testing.T) {
		path := writeConfig(t, `version: "1.0"
instance: other
`)
		config, err := LoadOrDefault(path)
		require.NoError(t, err)
		assert.Equal(t, "other", config.Instance)
	})
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)

	require.NoError(t, Write(path, Default(), false))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), loaded)

	err = Write(path, Default(), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	custom := Default()
	custom.Instance = "replaced"
	require.NoError(t, Write(path, custom, true))

	loaded, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "replaced", loaded.Instance)
}
