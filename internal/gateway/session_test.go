package gateway

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flaim/fantasy-mcp-gateway/internal/authclient"
	"github.com/flaim/fantasy-mcp-gateway/internal/model"
)

func TestGroupLeagues_SplitsActiveInactiveAndOlderSeasons(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

	leagues := []model.LeagueConfig{
		// Active league with four seasons on file; only the two most
		// recent should stay in `active`, the rest move to `olderSeasons`.
		{Platform: model.PlatformESPN, Sport: model.SportFootball, LeagueID: "1", SeasonYear: 2025},
		{Platform: model.PlatformESPN, Sport: model.SportFootball, LeagueID: "1", SeasonYear: 2024},
		{Platform: model.PlatformESPN, Sport: model.SportFootball, LeagueID: "1", SeasonYear: 2023},
		{Platform: model.PlatformESPN, Sport: model.SportFootball, LeagueID: "1", SeasonYear: 2022},
		// Inactive league: newest season predates the active threshold.
		{Platform: model.PlatformESPN, Sport: model.SportBaseball, LeagueID: "2", SeasonYear: 2020},
	}

	active, inactive, older := groupLeagues(leagues, now)

	require.Len(t, active, 1)
	assert.Equal(t, "1", active[0].LeagueID)
	assert.Equal(t, []int{2025, 2024}, active[0].Seasons)
	assert.Empty(t, active[0].Reason, "get_user_session rows carry no reason")

	require.Len(t, older, 1)
	assert.Equal(t, "1", older[0].LeagueID)
	assert.Equal(t, []int{2023, 2022}, older[0].Seasons)
	assert.Equal(t, "season_too_old", older[0].Reason)

	require.Len(t, inactive, 1)
	assert.Equal(t, "2", inactive[0].LeagueID)
	assert.Equal(t, []int{2020}, inactive[0].Seasons)
	assert.Equal(t, "league_inactive", inactive[0].Reason)
}

func TestGroupLeagues_YahooDedupesByLeagueName(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	leagues := []model.LeagueConfig{
		{Platform: model.PlatformYahoo, Sport: model.SportFootball, LeagueID: "111", LeagueName: "Dynasty League", SeasonYear: 2025},
		{Platform: model.PlatformYahoo, Sport: model.SportFootball, LeagueID: "222", LeagueName: "Dynasty League", SeasonYear: 2024},
	}

	active, _, _ := groupLeagues(leagues, now)

	require.Len(t, active, 1, "yahoo's legacy per-season league ids collapse to one group keyed by league name")
	assert.Equal(t, []int{2025, 2024}, active[0].Seasons)
}

func TestResolveDefaults_PrefersConfiguredDefaultSport(t *testing.T) {
	active := []SessionLeague{
		{Sport: model.SportFootball, LeagueID: "10"},
		{Sport: model.SportBaseball, LeagueID: "20"},
	}
	prefs := authclient.Preferences{
		DefaultSport:   model.SportBaseball,
		DefaultLeagues: map[model.Sport]string{model.SportFootball: "10", model.SportBaseball: "20"},
	}

	id, sport := resolveDefaults(active, prefs)
	assert.Equal(t, "20", id)
	assert.Equal(t, model.SportBaseball, sport)
}

func TestResolveDefaults_FallsBackToFirstActiveLeague(t *testing.T) {
	active := []SessionLeague{{Sport: model.SportFootball, LeagueID: "10"}}

	id, sport := resolveDefaults(active, authclient.Preferences{})
	assert.Equal(t, "10", id)
	assert.Equal(t, model.SportFootball, sport)
}

func TestResolveDefaults_NoActiveLeaguesReturnsEmpty(t *testing.T) {
	id, sport := resolveDefaults(nil, authclient.Preferences{})
	assert.Empty(t, id)
	assert.Empty(t, sport)
}

func TestCurrentSeasonsBySport_CoversAllTrackedSports(t *testing.T) {
	seasons := currentSeasonsBySport(time.Now())
	assert.Len(t, seasons, 4)
	for _, sp := range trackedSports {
		assert.Contains(t, seasons, sp)
	}
}
