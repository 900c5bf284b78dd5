package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadGateway_Defaults(t *testing.T) {
	cfg, err := LoadGateway(nil)

	require.NoError(t, err)
	assert.Equal(t, ":8090", cfg.Addr)
	assert.Equal(t, "/mcp", cfg.MCPPath)
	assert.Equal(t, "/fantasy/mcp", cfg.FantasyMCPPath)
	assert.Equal(t, 5*time.Second, cfg.IntrospectTimeout)
	assert.Equal(t, "http://localhost:8091", cfg.AdapterBaseURLs["espn"])
}

func TestLoadGateway_FlagsOverrideDefaults(t *testing.T) {
	cfg, err := LoadGateway([]string{
		"--addr=:9999",
		"--mcp-path=/custom-mcp",
		"--introspect-timeout=10s",
		"--espn-adapter-url=http://espn-adapter:8080",
	})

	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, "/custom-mcp", cfg.MCPPath)
	assert.Equal(t, 10*time.Second, cfg.IntrospectTimeout)
	assert.Equal(t, "http://espn-adapter:8080", cfg.AdapterBaseURLs["espn"])
}

func TestLoadAdapter_Defaults(t *testing.T) {
	cfg, err := LoadAdapter(nil)

	require.NoError(t, err)
	assert.Equal(t, ":8091", cfg.Addr)
	assert.Equal(t, "https://fantasy.espn.com", cfg.UpstreamBaseURL)
	assert.Equal(t, 7*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, 24*time.Hour, cfg.PlayerCacheTTL)
	assert.Equal(t, 2000, cfg.Discovery.MinYear)
	assert.Equal(t, 2, cfg.Discovery.MaxConsecutiveMisses)
	assert.Equal(t, 200*time.Millisecond, cfg.Discovery.ProbeDelay)
	assert.Equal(t, time.Second, cfg.Discovery.RetryDelay)
}

func TestLoadAdapter_DiscoveryFlagsOverride(t *testing.T) {
	cfg, err := LoadAdapter([]string{
		"--discovery-min-year=1995",
		"--discovery-max-misses=5",
	})

	require.NoError(t, err)
	assert.Equal(t, 1995, cfg.Discovery.MinYear)
	assert.Equal(t, 5, cfg.Discovery.MaxConsecutiveMisses)
}

func TestLoadGateway_InvalidFlagIsError(t *testing.T) {
	_, err := LoadGateway([]string{"--not-a-real-flag"})

	assert.Error(t, err)
}
