package adapter

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flaim/fantasy-mcp-gateway/internal/espnhandlers/common"
	"github.com/flaim/fantasy-mcp-gateway/internal/model"
)

func doExecute(t *testing.T, r *Router, body string) model.AdapterResult {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/execute", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	r.ServeExecute(w, req)

	var result model.AdapterResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
	return result
}

func TestServeExecute_MalformedBodyIsRoutingError(t *testing.T) {
	r := New(nil, common.Deps{}, common.Deps{}, common.Deps{}, common.Deps{}, nil)

	result := doExecute(t, r, `{not json`)

	assert.False(t, result.Success)
	assert.Equal(t, model.CodeRoutingError, result.Code)
}

func TestServeExecute_InvalidParamsIsValidationError(t *testing.T) {
	r := New(nil, common.Deps{}, common.Deps{}, common.Deps{}, common.Deps{}, nil)

	body := `{"tool":"get_standings","params":{"platform":"espn","sport":"football"}}`
	result := doExecute(t, r, body)

	assert.False(t, result.Success)
	assert.Equal(t, model.CodeValidationError, result.Code)
}

func TestServeExecute_UnsupportedSport(t *testing.T) {
	r := New(nil, common.Deps{}, common.Deps{}, common.Deps{}, common.Deps{}, nil)

	body := `{"tool":"get_standings","params":{"platform":"espn","sport":"football","league_id":"1","season_year":2024}}`
	result := doExecute(t, r, body)

	assert.False(t, result.Success)
	assert.Equal(t, model.CodeSportNotSupported, result.Code)
}

func TestServeExecute_UnknownToolDispatchesToUnknownToolError(t *testing.T) {
	football := common.Deps{Sport: model.SportFootball}
	r := New(nil, football, common.Deps{}, common.Deps{}, common.Deps{}, nil)

	body := `{"tool":"get_waiver_wire","params":{"platform":"espn","sport":"football","league_id":"1","season_year":2024}}`
	result := doExecute(t, r, body)

	assert.False(t, result.Success)
	assert.Equal(t, model.CodeUnknownTool, result.Code)
}

func TestBearerFromHeader_PrefersExplicitAuthHeaderField(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/execute", nil)
	req.Header.Set("Authorization", "Bearer from-request-header")

	got := bearerFromHeader("Bearer from-body-field", req)

	assert.Equal(t, "from-body-field", got)
}

func TestBearerFromHeader_FallsBackToRequestHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/execute", nil)
	req.Header.Set("Authorization", "Bearer from-request-header")

	got := bearerFromHeader("", req)

	assert.Equal(t, "from-request-header", got)
}
