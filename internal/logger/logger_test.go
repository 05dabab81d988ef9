package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSON_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSON(&buf, false)

	log.Debug().Msg("hidden")
	log.Info().Int("threads", 4).Msg("trial finished")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var event map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &event))
	assert.Equal(t, "info", event["level"])
	assert.Equal(t, "trial finished", event["message"])
	assert.EqualValues(t, 4, event["threads"])
}

func TestNew_DebugEnabled(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, true, true)

	log.Debug().Str("format", "yuv420p").Msg("worker started")
	assert.Contains(t, buf.String(), "worker started")
	assert.Contains(t, buf.String(), "format=yuv420p")
}

func TestExtend_AddsContext(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSON(&buf, true).Extend(NewJSON(&buf, true).With().Int("worker", 3))

	log.Warn().Msg("conversion failed")
	assert.Contains(t, buf.String(), `"worker":3`)
}

func TestNop_Discards(t *testing.T) {
	log := Nop()
	assert.NotPanics(t, func() {
		log.Error().Msg("nothing")
	})
}
