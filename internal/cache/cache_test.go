// Arcanum - Spell Synergy Prediction Engine
// Copyright 2026 Ash Verel (ashverel)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ashverel/arcanum

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestCache_PutGet(t *testing.T) {
	t.Parallel()

	c := New(24 * time.Hour)

	if _, ok := c.Get("missing"); ok {
		t.Error("Get() on empty cache reported a hit")
	}

	c.Put("key-1", "value-1")
	got, ok := c.Get("key-1")
	if !ok {
		t.Fatal("Get() missed a freshly inserted entry")
	}
	if got.(string) != "value-1" {
		t.Errorf("Get() = %v, want value-1", got)
	}

	// Put overwrites unconditionally.
	c.Put("key-1", "value-2")
	got, ok = c.Get("key-1")
	if !ok || got.(string) != "value-2" {
		t.Errorf("Get() after overwrite = %v, %v; want value-2, true", got, ok)
	}
}

func TestCache_Expiry(t *testing.T) {
	t.Parallel()

	c := New(24 * time.Hour)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now := base
	c.SetClock(func() time.Time { return now })

	c.Put("key", "value")

	// Just inside the TTL.
	now = base.Add(24*time.Hour - time.Second)
	if _, ok := c.Get("key"); !ok {
		t.Fatal("entry expired before the TTL elapsed")
	}

	// Exactly at the TTL the entry is expired.
	now = base.Add(24 * time.Hour)
	if _, ok := c.Get("key"); ok {
		t.Fatal("entry survived past the TTL")
	}

	// The lazy expiry removed the entry.
	if stats := c.Stats(); stats.TotalEntries != 0 {
		t.Errorf("TotalEntries = %d after lazy expiry, want 0", stats.TotalEntries)
	}
}

func TestCache_Sweep(t *testing.T) {
	t.Parallel()

	c := New(time.Hour)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now := base
	c.SetClock(func() time.Time { return now })

	c.Put("old-1", 1)
	c.Put("old-2", 2)

	now = base.Add(30 * time.Minute)
	c.Put("fresh", 3)

	now = base.Add(61 * time.Minute)
	if removed := c.Sweep(); removed != 2 {
		t.Errorf("Sweep() = %d, want 2", removed)
	}

	stats := c.Stats()
	if stats.TotalEntries != 1 {
		t.Errorf("TotalEntries = %d after sweep, want 1", stats.TotalEntries)
	}
	if stats.Evictions != 2 {
		t.Errorf("Evictions = %d, want 2", stats.Evictions)
	}
	if !stats.LastSweep.Equal(now) {
		t.Errorf("LastSweep = %v, want %v", stats.LastSweep, now)
	}
	if _, ok := c.Get("fresh"); !ok {
		t.Error("sweep removed a non-expired entry")
	}
}

func TestCache_Clear(t *testing.T) {
	t.Parallel()

	c := New(time.Hour)
	for i := 0; i < 5; i++ {
		c.Put(fmt.Sprintf("key-%d", i), i)
	}

	c.Clear()

	stats := c.Stats()
	if stats.TotalEntries != 0 {
		t.Errorf("TotalEntries = %d after clear, want 0", stats.TotalEntries)
	}
	if stats.Evictions != 5 {
		t.Errorf("Evictions = %d after clear, want 5", stats.Evictions)
	}
}

func TestCache_Stats(t *testing.T) {
	t.Parallel()

	c := New(time.Hour)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now := base
	c.SetClock(func() time.Time { return now })

	c.Put("expired", 1)
	now = base.Add(45 * time.Minute)
	c.Put("active-1", 2)
	c.Put("active-2", 3)

	now = base.Add(70 * time.Minute)
	stats := c.Stats()

	if stats.TotalEntries != 3 {
		t.Errorf("TotalEntries = %d, want 3", stats.TotalEntries)
	}
	if stats.ActiveEntries != 2 {
		t.Errorf("ActiveEntries = %d, want 2", stats.ActiveEntries)
	}
	if want := (70 * time.Minute).Milliseconds(); stats.OldestEntryAgeMS != want {
		t.Errorf("OldestEntryAgeMS = %d, want %d", stats.OldestEntryAgeMS, want)
	}
}

func TestCache_HitMissCounters(t *testing.T) {
	t.Parallel()

	c := New(time.Hour)

	c.Get("missing")
	c.Put("key", 1)
	c.Get("key")
	c.Get("key")

	stats := c.Stats()
	if stats.Hits != 2 {
		t.Errorf("Hits = %d, want 2", stats.Hits)
	}
	if stats.Misses != 1 {
		t.Errorf("Misses = %d, want 1", stats.Misses)
	}
}

func TestCache_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	c := New(time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", i%4)
			for j := 0; j < 100; j++ {
				c.Put(key, j)
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()

	if stats := c.Stats(); stats.TotalEntries != 4 {
		t.Errorf("TotalEntries = %d, want 4", stats.TotalEntries)
	}
}

func TestKey_OrderIndependent(t *testing.T) {
	t.Parallel()

	fireball := SpellRef{Name: "Fireball", School: "Evocation", Level: 3}
	shield := SpellRef{Name: "Shield", School: "Abjuration", Level: 1}
	haste := SpellRef{Name: "Haste", School: "Transmutation", Level: 3}

	a := Key([]SpellRef{fireball, shield, haste}, "Wizard", "dungeon", "hard")
	b := Key([]SpellRef{haste, fireball, shield}, "Wizard", "dungeon", "hard")
	if a != b {
		t.Errorf("keys differ across spell orders: %q vs %q", a, b)
	}
}

func TestKey_DistinguishesRequests(t *testing.T) {
	t.Parallel()

	spells := []SpellRef{
		{Name: "Fireball", School: "Evocation", Level: 3},
		{Name: "Shield", School: "Abjuration", Level: 1},
	}

	base := Key(spells, "Wizard", "dungeon", "hard")

	variants := []string{
		Key(spells, "Cleric", "dungeon", "hard"),
		Key(spells, "Wizard", "forest", "hard"),
		Key(spells, "Wizard", "dungeon", "easy"),
		Key(spells[:1], "Wizard", "dungeon", "hard"),
		Key([]SpellRef{spells[0], {Name: "Shield", School: "Abjuration", Level: 2}}, "Wizard", "dungeon", "hard"),
	}
	for i, variant := range variants {
		if variant == base {
			t.Errorf("variant %d produced the same key as the base request", i)
		}
	}
}

func TestKey_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	spells := []SpellRef{
		{Name: "Shield", School: "Abjuration", Level: 1},
		{Name: "Fireball", School: "Evocation", Level: 3},
	}

	Key(spells, "Wizard", "dungeon", "hard")

	if spells[0].Name != "Shield" || spells[1].Name != "Fireball" {
		t.Errorf("Key() reordered the caller's slice: %v", spells)
	}
}
