package main

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/senso-ai/senso-cli/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputFormatterPrintRaw(t *testing.T) {
	f := &OutputFormatter{}

	stdout, _ := captureOutput(t, func() {
		require.NoError(t, f.PrintRaw(json.RawMessage(`{"a":1,"b":[2,3]}`)))
	})
	assert.Equal(t, "{\n  \"a\": 1,\n  \"b\": [\n    2,\n    3\n  ]\n}\n", stdout)

	// A nil payload (204 responses) prints nothing.
	stdout, _ = captureOutput(t, func() {
		require.NoError(t, f.PrintRaw(nil))
	})
	assert.Empty(t, stdout)
}

func TestOutputFormatterSuccessPlain(t *testing.T) {
	f := &OutputFormatter{}
	stdout, _ := captureOutput(t, func() {
		require.NoError(t, f.Success("done", map[string]any{"ignored": true}))
	})
	assert.Equal(t, "done\n", stdout)
}

func TestOutputFormatterSuccessJSONSingleDocument(t *testing.T) {
	f := &OutputFormatter{jsonMode: true}
	stdout, _ := captureOutput(t, func() {
		require.NoError(t, f.Success("done", map[string]any{"path": "/tmp/c.json"}))
	})

	var doc map[string]any
	dec := json.NewDecoder(strings.NewReader(stdout))
	require.NoError(t, dec.Decode(&doc))
	assert.False(t, dec.More(), "json mode must emit exactly one document")

	assert.Equal(t, true, doc["success"])
	assert.Equal(t, "done", doc["message"])
	assert.Equal(t, "/tmp/c.json", doc["path"])
}

func TestOutputFormatterErrorPlain(t *testing.T) {
	f := &OutputFormatter{}
	var retErr error
	stdout, stderr := captureOutput(t, func() {
		retErr = f.Error("something broke", nil)
	})

	require.Error(t, retErr)
	assert.Empty(t, stdout)
	assert.Equal(t, "Error: something broke\n", stderr)
}

func TestOutputFormatterErrorJSON(t *testing.T) {
	f := &OutputFormatter{jsonMode: true}
	var retErr error
	_, stderr := captureOutput(t, func() {
		retErr = f.Error("something broke", assert.AnError)
	})

	require.Error(t, retErr)
	assert.Contains(t, retErr.Error(), "something broke")

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(stderr), &doc))
	assert.Equal(t, false, doc["success"])
	assert.Equal(t, "something broke", doc["error"])
	assert.NotEmpty(t, doc["details"])
}

func TestOutputFormatterAPIError(t *testing.T) {
	f := &OutputFormatter{}
	apiErr := &api.APIError{
		Status:     http.StatusNotFound,
		StatusText: http.StatusText(http.StatusNotFound),
	}

	var retErr error
	_, stderr := captureOutput(t, func() {
		retErr = f.APIError(apiErr)
	})

	assert.Equal(t, apiErr, retErr)
	assert.Equal(t, "Error: Resource not found.\n", stderr)
}
