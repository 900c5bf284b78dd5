package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flaim/fantasy-mcp-gateway/internal/model"
)

func TestPlatformRouter_Execute_UnknownPlatform(t *testing.T) {
	r := NewPlatformRouter(map[string]string{"espn": "http://example.invalid"}, 0)

	result := r.Execute(context.Background(), "get_standings", model.ToolParams{Platform: model.PlatformYahoo}, "tok", model.CorrelationContext{})

	assert.False(t, result.Success)
	assert.Equal(t, model.CodePlatformNotSupported, result.Code)
}

func TestPlatformRouter_Execute_ForwardsAuthAndCorrelationHeaders(t *testing.T) {
	var gotAuth, gotCorrelation string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotCorrelation = r.Header.Get("X-Correlation-ID")
		require.Equal(t, "/execute", r.URL.Path)

		var body adapterExecuteRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "get_standings", body.Tool)

		_ = json.NewEncoder(w).Encode(model.OK(map[string]string{"league": body.Params.LeagueID}))
	}))
	defer srv.Close()

	r := NewPlatformRouter(map[string]string{"espn": srv.URL}, 0)
	params := model.ToolParams{Platform: model.PlatformESPN, Sport: model.SportFootball, LeagueID: "99"}
	result := r.Execute(context.Background(), "get_standings", params, "tok-abc", model.CorrelationContext{CorrelationID: "corr-xyz"})

	assert.Equal(t, "Bearer tok-abc", gotAuth)
	assert.Equal(t, "corr-xyz", gotCorrelation)
	assert.True(t, result.Success)
}

func TestPlatformRouter_Execute_NonSuccessStatusIsPlatformError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	r := NewPlatformRouter(map[string]string{"espn": srv.URL}, 0)
	result := r.Execute(context.Background(), "get_standings", model.ToolParams{Platform: model.PlatformESPN}, "tok", model.CorrelationContext{})

	assert.False(t, result.Success)
	assert.Equal(t, model.CodePlatformError, result.Code)
}
