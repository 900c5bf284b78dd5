// Package idmap provides the disjoint numeric-ID → name lookup tables
// every per-sport handler needs. The same shape serves position, lineup
// slot, and pro-team tables; keeping it as one generic Table makes the
// disjointness between maps a property of which Table a caller holds, not
// of ad hoc per-sport code.
package idmap

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Tables bundles the two disjoint lookup tables every sport package
// builds: Position for a player's natural position, Slot for roster-slot
// meaning. Kept as one shared type so handler code written against it is
// sport-agnostic.
type Tables struct {
	Position *Table
	Slot     *Table
}

// Table is an immutable id->name lookup with a graceful fallback for
// unknown ids, logged at most once per process per unknown id.
type Table struct {
	name     string
	fallback string // e.g. "POS", "SLOT"
	values   map[int]string
	logger   *zap.Logger

	mu     sync.Mutex
	warned map[int]bool
}

// New builds a Table. logger may be nil, in which case unknown-id
// warnings are silently dropped (used by tests).
func New(name, fallback string, values map[int]string, logger *zap.Logger) *Table {
	return &Table{
		name:     name,
		fallback: fallback,
		values:   values,
		logger:   logger,
		warned:   make(map[int]bool),
	}
}

// Name resolves id to its display name, falling back to "<fallback>_<id>"
// for unrecognized ids and logging the first occurrence of each.
func (t *Table) Name(id int) string {
	if n, ok := t.values[id]; ok {
		return n
	}
	t.warnOnce(id)
	return fmt.Sprintf("%s_%d", t.fallback, id)
}

// Has reports whether id is a recognized member of this table, without
// triggering the unknown-id warning.
func (t *Table) Has(id int) bool {
	_, ok := t.values[id]
	return ok
}

// Len reports how many ids this table recognizes.
func (t *Table) Len() int {
	return len(t.values)
}

// SelfCheck verifies both of a sport's lookup tables are present and
// non-empty, logging one diagnostic line naming the entry counts. A
// misconfigured sport package (a nil or empty table) fails fast here
// rather than silently resolving every player to its numeric fallback.
func (t Tables) SelfCheck(sport string, logger *zap.Logger) error {
	if t.Position == nil || t.Position.Len() == 0 {
		return fmt.Errorf("idmap: %s position table is empty", sport)
	}
	if t.Slot == nil || t.Slot.Len() == 0 {
		return fmt.Errorf("idmap: %s slot table is empty", sport)
	}
	if logger != nil {
		logger.Info("idmap: self-check ok",
			zap.String("sport", sport),
			zap.Int("position_entries", t.Position.Len()),
			zap.Int("slot_entries", t.Slot.Len()),
		)
	}
	return nil
}

func (t *Table) warnOnce(id int) {
	t.mu.Lock()
	already := t.warned[id]
	t.warned[id] = true
	t.mu.Unlock()
	if already || t.logger == nil {
		return
	}
	t.logger.Warn("idmap: unrecognized id",
		zap.String("table", t.name),
		zap.Int("id", id),
		zap.String("fallback", fmt.Sprintf("%s_%d", t.fallback, id)),
	)
}
