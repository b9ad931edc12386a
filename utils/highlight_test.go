package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderJSON_Plain(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderJSON(&buf, []byte(`{"files":[]}`), "dracula", false))
	assert.Equal(t, "{\n  \"files\": []\n}\n", buf.String())
}

func TestRenderJSON_Highlighted(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderJSON(&buf, []byte(`{"files":[{"path":"a.ts"}]}`), "dracula", true))

	out := buf.String()
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "a.ts")
}

func TestRenderJSON_InvalidInput(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, RenderJSON(&buf, []byte(`{"files":`), "dracula", false))
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger("debug")
	require.NoError(t, err)
	assert.NotNil(t, logger)

	_, err = NewLogger("loud")
	assert.Error(t, err)
}
