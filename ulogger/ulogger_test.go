package ulogger

import (
	"bytes"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New("mining", WithWriter(&buf), WithPretty(false), WithLevel("debug"))

	logger.Infof("found nonce %d", 3708)

	var line map[string]interface{}
	require.NoError(t, jsoniter.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "mining", line["service"])
	assert.Equal(t, "found nonce 3708", line["message"])
}

func TestZeroLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New("mempool", WithWriter(&buf), WithPretty(false), WithLevel("warn"))

	logger.Debugf("hidden")
	logger.Infof("hidden")
	logger.Warnf("shown")

	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
	assert.Contains(t, buf.String(), "shown")
	assert.Equal(t, int(zerolog.WarnLevel), logger.LogLevel())
}

func TestZeroLogger_BadLevelFallsBackToInfo(t *testing.T) {
	logger := NewZeroLogger("x", WithWriter(&bytes.Buffer{}), WithLevel("loud"))
	assert.Equal(t, int(zerolog.InfoLevel), logger.LogLevel())
}

func TestZeroLogger_NewInheritsOptions(t *testing.T) {
	var buf bytes.Buffer
	parent := New("main", WithWriter(&buf), WithPretty(false), WithLevel("error"))
	child := parent.New("txnpicker")

	child.Warnf("dropped")
	child.Errorf("kept")

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, "kept")
	assert.Contains(t, out, `"service":"txnpicker"`)
}

func TestZeroLogger_Pretty(t *testing.T) {
	var buf bytes.Buffer
	logger := New("mining", WithWriter(&buf))

	logger.Infof("hello")

	assert.Contains(t, buf.String(), "| INFO  |")
	assert.Contains(t, buf.String(), "mining")
	assert.Contains(t, buf.String(), "hello")
}
