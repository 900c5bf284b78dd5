package gateway

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResponseCapture_BuffersWritesAndStatus(t *testing.T) {
	capture := newResponseCapture()
	capture.Header().Set("Content-Type", "application/json")
	capture.WriteHeader(http.StatusCreated)
	_, err := capture.Write([]byte(`{"ok":true}`))

	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, capture.statusCode)
	assert.Equal(t, `{"ok":true}`, capture.body.String())
	assert.Equal(t, "application/json", capture.Header().Get("Content-Type"))
}

func TestSSEFramed(t *testing.T) {
	assert.True(t, sseFramed([]byte("event: message\ndata: {}\n\n")))
	assert.True(t, sseFramed([]byte("data: {}\n\n")))
	assert.False(t, sseFramed([]byte(`{"jsonrpc":"2.0"}`)))
}

func TestExtractJSONFromSSE(t *testing.T) {
	frame := []byte("event: message\ndata: {\"jsonrpc\":\"2.0\",\"id\":1}\n\n")
	assert.Equal(t, []byte(`{"jsonrpc":"2.0","id":1}`), extractJSONFromSSE(frame))

	assert.Nil(t, extractJSONFromSSE([]byte(`{"jsonrpc":"2.0"}`)), "non-SSE input returns nil")
}

func TestReframeAsSSE_RoundTrips(t *testing.T) {
	original := []byte(`{"a":1}`)
	framed := reframeAsSSE(original)
	assert.Equal(t, original, extractJSONFromSSE(framed))
}
