package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_ProductionSkipsDebug(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("production", &buf)

	log.Debug().Msg("hidden")
	assert.Empty(t, buf.String())

	log.Info().Str("quote_id", "q1").Msg("quote submitted")
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "quote submitted", entry["message"])
	assert.Equal(t, "production", entry["env"])
	assert.Equal(t, "q1", entry["quote_id"])
	assert.Equal(t, "albino-contracts", entry["service"])
}

func TestNewWithWriter_DevelopmentLogsDebug(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("development", &buf)
	log.Debug().Msg("visible")
	assert.Contains(t, buf.String(), "visible")
}
