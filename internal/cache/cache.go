// Arcanum - Spell Synergy Prediction Engine
// Copyright 2026 Ash Verel (ashverel)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ashverel/arcanum

// Package cache provides the time-bounded prediction cache.
//
// The cache maps a canonical, order-independent request key to a
// previously computed value so repeated requests for the same semantic
// input avoid recomputation. Entries expire after a fixed TTL (24 hours
// for predictions), removed lazily on lookup or eagerly by Sweep.
//
// This package has no dependencies on other internal packages so the
// synergy engine can use it without circular imports.
package cache

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

// Entry is a cached value with its creation timestamp. Entries are
// read-only after creation; the cache exclusively owns them.
type Entry struct {
	Data      interface{}
	CreatedAt time.Time
}

// Stats is a snapshot of cache contents and performance counters.
type Stats struct {
	// TotalEntries counts all entries, including expired ones not yet
	// swept.
	TotalEntries int `json:"total_entries"`

	// ActiveEntries counts only non-expired entries.
	ActiveEntries int `json:"active_entries"`

	// OldestEntryAgeMS is the age of the oldest entry in milliseconds,
	// computed over all entries including expired ones.
	OldestEntryAgeMS int64 `json:"oldest_entry_age_ms"`

	Hits      int64     `json:"hits"`
	Misses    int64     `json:"misses"`
	Evictions int64     `json:"evictions"`
	LastSweep time.Time `json:"last_sweep"`
}

// Cache is a thread-safe TTL store. It supports concurrent readers and
// writers; callers that need at-most-one computation per key layer a
// singleflight group on top.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Entry
	ttl     time.Duration
	now     func() time.Time

	statsMu   sync.Mutex
	hits      int64
	misses    int64
	evictions int64
	lastSweep time.Time
}

// New creates a cache with the given TTL.
func New(ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]Entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// SetClock replaces the cache's time source. Tests use this to simulate
// entry aging without sleeping.
func (c *Cache) SetClock(now func() time.Time) {
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
}

// Get returns the cached value for key if present and younger than the
// TTL. An expired entry is removed and counted as a miss.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	entry, exists := c.entries[key]
	now := c.now()
	c.mu.RUnlock()

	if !exists {
		c.recordMiss()
		return nil, false
	}

	if now.Sub(entry.CreatedAt) >= c.ttl {
		c.mu.Lock()
		// Re-check under the write lock; Put may have refreshed it.
		if current, ok := c.entries[key]; ok && current.CreatedAt.Equal(entry.CreatedAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		c.recordMiss()
		c.recordEvictions(1)
		return nil, false
	}

	c.recordHit()
	return entry.Data, true
}

// Put inserts or overwrites the value for key, stamped with the current
// time.
func (c *Cache) Put(key string, value interface{}) {
	c.mu.Lock()
	c.entries[key] = Entry{Data: value, CreatedAt: c.now()}
	c.mu.Unlock()
}

// Sweep removes all entries whose age is at least the TTL, in place.
// It is safe to call on a timer or on demand.
func (c *Cache) Sweep() int {
	c.mu.Lock()
	now := c.now()
	removed := 0
	for key, entry := range c.entries {
		if now.Sub(entry.CreatedAt) >= c.ttl {
			delete(c.entries, key)
			removed++
		}
	}
	c.mu.Unlock()

	c.statsMu.Lock()
	c.evictions += int64(removed)
	c.lastSweep = now
	c.statsMu.Unlock()

	return removed
}

// Clear removes all entries unconditionally.
func (c *Cache) Clear() {
	c.mu.Lock()
	evicted := int64(len(c.entries))
	c.entries = make(map[string]Entry)
	c.mu.Unlock()

	c.statsMu.Lock()
	c.evictions += evicted
	c.statsMu.Unlock()
}

// Stats returns a snapshot of the cache state.
func (c *Cache) Stats() Stats {
	c.mu.RLock()
	now := c.now()
	total := len(c.entries)
	active := 0
	var oldest time.Duration
	for _, entry := range c.entries {
		age := now.Sub(entry.CreatedAt)
		if age < c.ttl {
			active++
		}
		if age > oldest {
			oldest = age
		}
	}
	c.mu.RUnlock()

	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	return Stats{
		TotalEntries:     total,
		ActiveEntries:    active,
		OldestEntryAgeMS: oldest.Milliseconds(),
		Hits:             c.hits,
		Misses:           c.misses,
		Evictions:        c.evictions,
		LastSweep:        c.lastSweep,
	}
}

// TTL returns the configured time-to-live.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

func (c *Cache) recordHit() {
	c.statsMu.Lock()
	c.hits++
	c.statsMu.Unlock()
}

func (c *Cache) recordMiss() {
	c.statsMu.Lock()
	c.misses++
	c.statsMu.Unlock()
}

func (c *Cache) recordEvictions(n int64) {
	c.statsMu.Lock()
	c.evictions += n
	c.statsMu.Unlock()
}

// SpellRef is the portion of a spell identity that participates in a
// prediction cache key.
type SpellRef struct {
	Name   string `json:"name"`
	School string `json:"school"`
	Level  int    `json:"level"`
}

// keyTuple is the canonical request tuple hashed into a cache key.
type keyTuple struct {
	Spells           []SpellRef `json:"spells"`
	CharacterClass   string     `json:"character_class"`
	Terrain          string     `json:"terrain"`
	CombatDifficulty string     `json:"combat_difficulty"`
}

// Key builds a canonical cache key for a prediction request. Spell
// identities are sorted before hashing, so swapping argument order
// yields the same key.
func Key(spells []SpellRef, characterClass, terrain, combatDifficulty string) string {
	sorted := append([]SpellRef(nil), spells...)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		if a.School != b.School {
			return a.School < b.School
		}
		return a.Level < b.Level
	})

	tuple := keyTuple{
		Spells:           sorted,
		CharacterClass:   characterClass,
		Terrain:          terrain,
		CombatDifficulty: combatDifficulty,
	}

	data, err := json.Marshal(tuple)
	if err != nil {
		// Marshal on this shape should never fail; fall back to an
		// unhashed representation.
		return fmt.Sprintf("predict:%v", tuple)
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("predict:%x", hash[:16])
}
