package adapter

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flaim/fantasy-mcp-gateway/internal/authclient"
	"github.com/flaim/fantasy-mcp-gateway/internal/espnclient"
	"github.com/flaim/fantasy-mcp-gateway/internal/espnhandlers/common"
	"github.com/flaim/fantasy-mcp-gateway/internal/model"
)

func doAdapterPost(t *testing.T, handler http.HandlerFunc, path, body, bearer string) model.AdapterResult {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	handler(w, req)

	var result model.AdapterResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
	return result
}

func TestServeInitialize_MissingAuthHeaderIsDenied(t *testing.T) {
	r := New(nil, common.Deps{}, common.Deps{}, common.Deps{}, common.Deps{}, nil)

	result := doAdapterPost(t, r.ServeInitialize, "/onboarding/initialize", `{}`, "")

	assert.False(t, result.Success)
	assert.Equal(t, model.CodeAuthMissing, result.Code)
}

func TestServeInitialize_UnsupportedSport(t *testing.T) {
	r := New(nil, common.Deps{}, common.Deps{}, common.Deps{}, common.Deps{}, nil)

	body := `{"sport":"football","leagueId":"1"}`
	result := doAdapterPost(t, r.ServeInitialize, "/onboarding/initialize", body, "tok")

	assert.False(t, result.Success)
	assert.Equal(t, model.CodeSportNotSupported, result.Code)
}

func TestServeInitialize_ProbesAndReturnsBasicInfo(t *testing.T) {
	authSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer authSrv.Close()

	espnSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":1,"seasonId":2024,"settings":{"name":"My League"},"teams":[{"id":1,"location":"Team","nickname":"One"}]}`))
	}))
	defer espnSrv.Close()

	football := common.Deps{
		Sport: model.SportFootball,
		Auth:  authclient.New(authSrv.URL, time.Second),
		ESPN:  espnclient.New(espnSrv.URL, time.Second),
	}
	r := New(nil, football, common.Deps{}, common.Deps{}, common.Deps{}, nil)

	body := `{"sport":"football","leagueId":"1"}`
	result := doAdapterPost(t, r.ServeInitialize, "/onboarding/initialize", body, "tok")

	assert.True(t, result.Success)
}

func TestServeDiscoverSeasons_DiscoveryEngineNotWired(t *testing.T) {
	football := common.Deps{Sport: model.SportFootball, Auth: authclient.New("http://example.invalid", time.Second)}
	r := New(nil, football, common.Deps{}, common.Deps{}, common.Deps{}, nil)

	body := `{"sport":"football","leagueId":"1"}`
	result := doAdapterPost(t, r.ServeDiscoverSeasons, "/onboarding/discover-seasons", body, "tok")

	assert.False(t, result.Success)
	assert.Equal(t, model.CodeInternalError, result.Code)
}

func TestServeDiscoverSeasons_MissingAuthHeaderIsDenied(t *testing.T) {
	r := New(nil, common.Deps{}, common.Deps{}, common.Deps{}, common.Deps{}, nil)

	result := doAdapterPost(t, r.ServeDiscoverSeasons, "/onboarding/discover-seasons", `{}`, "")

	assert.False(t, result.Success)
	assert.Equal(t, model.CodeAuthMissing, result.Code)
}
