package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetByKey(t *testing.T) {
	cfg := &Config{ClientID: "abc123", Concurrency: 4}

	id, err := cfg.Get("client_id")
	require.NoError(t, err)
	assert.Equal(t, "abc123", id)

	conc, err := cfg.Get("concurrency")
	require.NoError(t, err)
	assert.Equal(t, "4", conc)

	_, err = cfg.Get("nonexistent")
	assert.Error(t, err)
}

func TestAssignParsesTypes(t *testing.T) {
	cfg := &Config{}

	require.NoError(t, cfg.assign("default_output", "json"))
	assert.Equal(t, "json", cfg.DefaultOutput)

	require.NoError(t, cfg.assign("concurrency", "16"))
	assert.Equal(t, 16, cfg.Concurrency)

	assert.Error(t, cfg.assign("concurrency", "lots"))
	assert.Error(t, cfg.assign("bogus", "x"))
}

func TestKeysCoverAllFields(t *testing.T) {
	assert.Equal(t, []string{"client_id", "client_secret", "default_output", "concurrency"}, Keys())
}
