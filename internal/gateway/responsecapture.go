package gateway

import (
	"bytes"
	"net/http"
	"strings"
)

// responseCapture buffers an http.ResponseWriter's output so a caller can
// inspect and rewrite it before it reaches the real client. Grounded on
// the pack's MCP tools/list interception pattern (a response-capture
// writer plus an SSE/JSON extractor), generalized here from
// description-overriding to annotation/_meta injection.
type responseCapture struct {
	header     http.Header
	body       bytes.Buffer
	statusCode int
}

func newResponseCapture() *responseCapture {
	return &responseCapture{header: make(http.Header), statusCode: http.StatusOK}
}

func (r *responseCapture) Header() http.Header { return r.header }

func (r *responseCapture) Write(b []byte) (int, error) { return r.body.Write(b) }

func (r *responseCapture) WriteHeader(statusCode int) { r.statusCode = statusCode }

// sseFramed reports whether body looks like an SSE event stream rather
// than a bare JSON document.
func sseFramed(body []byte) bool {
	s := string(body)
	return strings.HasPrefix(s, "event:") || strings.HasPrefix(s, "data:")
}

// extractJSONFromSSE pulls the JSON payload out of one "event:
// message\ndata: {...}\n\n" frame. Returns nil if body isn't SSE-framed.
func extractJSONFromSSE(body []byte) []byte {
	if !sseFramed(body) {
		return nil
	}
	for _, line := range strings.Split(string(body), "\n") {
		line = strings.TrimSpace(line)
		if data, ok := strings.CutPrefix(line, "data:"); ok {
			data = strings.TrimSpace(data)
			if data != "" {
				return []byte(data)
			}
		}
	}
	return nil
}

// reframeAsSSE re-wraps a JSON document in the same SSE envelope the
// original response used, so rewriting tools/list doesn't change framing
// the client negotiated for.
func reframeAsSSE(jsonBody []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString("event: message\n")
	buf.WriteString("data: ")
	buf.Write(jsonBody)
	buf.WriteString("\n\n")
	return buf.Bytes()
}
