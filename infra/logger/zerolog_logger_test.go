package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologLoggerMethods(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	l := NewZerologLogger("test")
	require.NotNil(t, l)
	l.Debugf("debug %d", 1)
	l.Debugw("debug", map[string]any{"k": 1})
	l.Infof("info %s", "test")
	l.Warnf("warn")
	l.Errorf("error")
}

func TestZerologLoggerFields(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.GlobalLevel())
	require.NoError(t, SetLevel("debug"))

	var buf bytes.Buffer
	l := NewZerologLoggerTo(&buf, "runner")
	l.Debugw("moore done", map[string]any{"late": 2})

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "runner", line["component"])
	assert.Equal(t, "moore done", line["message"])
	assert.EqualValues(t, 2, line["late"])
}

func TestSetLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.GlobalLevel())
	assert.NoError(t, SetLevel(""))
	assert.NoError(t, SetLevel("WARN"))
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
	assert.Error(t, SetLevel("loud"))

	var buf bytes.Buffer
	NewZerologLoggerTo(&buf, "quiet").Infof("dropped")
	assert.Zero(t, buf.Len())
}
