// Package playercache implements the one long-lived piece of state the
// core owns: a 24-hour per-sport, per-season player directory, in-memory
// with a TTL rather than on-disk JSON, since directory entries are
// transient lookup aids, not durable records.
package playercache

import (
	"sync"
	"time"

	"github.com/flaim/fantasy-mcp-gateway/internal/model"
)

// Entry is one player's directory row.
type Entry struct {
	ID                string
	FullName          string
	DefaultPositionID int
	ProTeamID         int
	PercentOwned      float64
}

type key struct {
	sport model.Sport
	year  int
}

type row struct {
	players   map[string]Entry
	expiresAt time.Time
}

// Cache is a TTL-bounded directory keyed by (sport, canonicalYear).
// Entries are immutable within their TTL; on expiry the next reader
// refetches and repopulates via the supplied loader.
type Cache struct {
	mu  sync.Mutex
	ttl time.Duration
	rows map[key]row
}

// New builds an empty cache with the given TTL (default: 24h).
func New(ttl time.Duration) *Cache {
	return &Cache{ttl: ttl, rows: make(map[key]row)}
}

// Loader fetches a fresh directory for (sport, canonicalYear) from
// upstream on a cache miss or expiry.
type Loader func() (map[string]Entry, error)

// Get returns the cached directory for (sport, canonicalYear), invoking
// load on a miss or TTL expiry. A loader error is returned to the caller
// and nothing is written to the cache on failure.
func (c *Cache) Get(sport model.Sport, canonicalYear int, load Loader) (map[string]Entry, error) {
	k := key{sport: sport, year: canonicalYear}

	c.mu.Lock()
	r, ok := c.rows[k]
	c.mu.Unlock()
	if ok && time.Now().Before(r.expiresAt) {
		return r.players, nil
	}

	players, err := load()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.rows[k] = row{players: players, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()
	return players, nil
}

// Invalidate drops the cached entry for (sport, canonicalYear), forcing
// the next Get to refetch. Exposed for tests.
func (c *Cache) Invalidate(sport model.Sport, canonicalYear int) {
	c.mu.Lock()
	delete(c.rows, key{sport: sport, year: canonicalYear})
	c.mu.Unlock()
}
