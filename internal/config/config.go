// Package config loads gateway and adapter configuration from flags, env
// vars (FLAIM_ prefix) and an optional config.yaml, the way the pack's
// sibling gateways (Sentinel-Gate, stormlightlabs-baseball) layer viper
// over pflag rather than reading os.Getenv ad hoc.
package config

import (
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Gateway holds the MCP gateway's runtime configuration.
type Gateway struct {
	Addr               string
	MCPPath            string
	FantasyMCPPath     string
	AuthServiceBaseURL string
	AdapterBaseURLs    map[string]string // platform -> adapter /execute base URL
	IntrospectTimeout  time.Duration
	LeagueFetchTimeout time.Duration
	OpenAIChallenge    string
	PublicSiteURL      string
	ExternalBaseURL    string // this gateway's own public base URL, used in resource/resource_metadata advertisement
}

// Adapter holds the ESPN platform adapter's runtime configuration.
type Adapter struct {
	Addr               string
	AuthServiceBaseURL string
	UpstreamBaseURL    string
	UpstreamTimeout    time.Duration
	PlayerCacheTTL     time.Duration
	Discovery          DiscoveryConfig
}

// DiscoveryConfig carries the historical season discovery engine's tunable
// constants.
type DiscoveryConfig struct {
	MinYear             int
	MaxConsecutiveMisses int
	ProbeDelay          time.Duration
	RetryDelay          time.Duration
}

func newViper(envPrefix string, fs *pflag.FlagSet) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if fs != nil {
		_ = v.BindPFlags(fs)
	}
	_ = v.ReadInConfig() // config.yaml is optional; ignore "not found"
	return v
}

// LoadGateway reads gateway config from flags/env/file, in that
// precedence order (flags highest, via viper's layering).
func LoadGateway(args []string) (Gateway, error) {
	fs := pflag.NewFlagSet("gateway", pflag.ContinueOnError)
	fs.String("addr", ":8090", "HTTP listen address")
	fs.String("mcp-path", "/mcp", "canonical MCP JSON-RPC path")
	fs.String("fantasy-mcp-path", "/fantasy/mcp", "legacy MCP JSON-RPC path")
	fs.String("auth-service-url", "https://auth.flaim.internal", "external auth/credential service base URL")
	fs.String("espn-adapter-url", "http://localhost:8091", "ESPN platform adapter base URL")
	fs.Duration("introspect-timeout", 5*time.Second, "bearer token introspection timeout")
	fs.Duration("league-fetch-timeout", 5*time.Second, "auth-service league fetch timeout")
	fs.String("openai-apps-challenge", "", "verification token for /.well-known/openai-apps-challenge")
	fs.String("public-site-url", "https://flaim.app", "redirect target for favicon/apple-icon requests")
	fs.String("external-base-url", "https://mcp.flaim.app", "this gateway's own public base URL, advertised in OAuth resource metadata")
	if err := fs.Parse(args); err != nil {
		return Gateway{}, err
	}

	v := newViper("FLAIM", fs)
	return Gateway{
		Addr:               v.GetString("addr"),
		MCPPath:            v.GetString("mcp-path"),
		FantasyMCPPath:     v.GetString("fantasy-mcp-path"),
		AuthServiceBaseURL: v.GetString("auth-service-url"),
		AdapterBaseURLs: map[string]string{
			"espn": v.GetString("espn-adapter-url"),
		},
		IntrospectTimeout:  v.GetDuration("introspect-timeout"),
		LeagueFetchTimeout: v.GetDuration("league-fetch-timeout"),
		OpenAIChallenge:    v.GetString("openai-apps-challenge"),
		PublicSiteURL:      v.GetString("public-site-url"),
		ExternalBaseURL:    v.GetString("external-base-url"),
	}, nil
}

// LoadAdapter reads ESPN adapter config from flags/env/file.
func LoadAdapter(args []string) (Adapter, error) {
	fs := pflag.NewFlagSet("espn-adapter", pflag.ContinueOnError)
	fs.String("addr", ":8091", "HTTP listen address")
	fs.String("auth-service-url", "https://auth.flaim.internal", "external auth/credential service base URL")
	fs.String("upstream-base-url", "https://fantasy.espn.com", "ESPN upstream API base URL")
	fs.Duration("upstream-timeout", 7*time.Second, "ESPN upstream HTTP timeout")
	fs.Duration("player-cache-ttl", 24*time.Hour, "per-sport player directory cache TTL")
	fs.Int("discovery-min-year", 2000, "earliest season year the discovery engine will probe")
	fs.Int("discovery-max-misses", 2, "consecutive misses before discovery halts")
	fs.Duration("discovery-probe-delay", 200*time.Millisecond, "pacing delay between discovery probes")
	fs.Duration("discovery-retry-delay", time.Second, "delay before the one-shot retry on a non-miss error")
	if err := fs.Parse(args); err != nil {
		return Adapter{}, err
	}

	v := newViper("FLAIM", fs)
	return Adapter{
		Addr:               v.GetString("addr"),
		AuthServiceBaseURL: v.GetString("auth-service-url"),
		UpstreamBaseURL:    v.GetString("upstream-base-url"),
		UpstreamTimeout:    v.GetDuration("upstream-timeout"),
		PlayerCacheTTL:     v.GetDuration("player-cache-ttl"),
		Discovery: DiscoveryConfig{
			MinYear:              v.GetInt("discovery-min-year"),
			MaxConsecutiveMisses: v.GetInt("discovery-max-misses"),
			ProbeDelay:           v.GetDuration("discovery-probe-delay"),
			RetryDelay:           v.GetDuration("discovery-retry-delay"),
		},
	}, nil
}
