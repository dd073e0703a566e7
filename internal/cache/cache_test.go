// Garderobe - Wardrobe Cataloguing and Outfit Recommendation
// Copyright 2026 Garderobe Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe/garderobe

package cache

import (
	"testing"
	"time"
)

func TestCacheRoundTrip(t *testing.T) {
	c := New(time.Minute)

	c.Set("key", "value")
	got, ok := c.Get("key")
	if !ok {
		t.Fatal("Get() miss, want hit")
	}
	if got != "value" {
		t.Errorf("Get() = %v, want value", got)
	}
}

func TestCacheMiss(t *testing.T) {
	c := New(time.Minute)

	if _, ok := c.Get("absent"); ok {
		t.Error("Get() hit on absent key")
	}
	stats := c.GetStats()
	if stats.Misses != 1 {
		t.Errorf("Misses = %d, want 1", stats.Misses)
	}
}

func TestCacheExpiry(t *testing.T) {
	c := New(time.Minute)

	c.SetWithTTL("key", "value", -time.Second)
	if _, ok := c.Get("key"); ok {
		t.Error("Get() hit on expired entry")
	}
	stats := c.GetStats()
	if stats.Evictions != 1 {
		t.Errorf("Evictions = %d, want 1", stats.Evictions)
	}
}

func TestCacheDelete(t *testing.T) {
	c := New(time.Minute)

	c.Set("key", "value")
	c.Delete("key")
	if _, ok := c.Get("key"); ok {
		t.Error("Get() hit after Delete()")
	}
}

func TestCacheClear(t *testing.T) {
	c := New(time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Clear()
	if _, ok := c.Get("a"); ok {
		t.Error("Get(a) hit after Clear()")
	}
	if _, ok := c.Get("b"); ok {
		t.Error("Get(b) hit after Clear()")
	}
}

func TestCacheCleanupRemovesExpired(t *testing.T) {
	c := New(time.Minute)

	c.SetWithTTL("old", "value", -time.Second)
	c.Set("fresh", "value")
	c.cleanup()

	c.mu.RLock()
	_, oldExists := c.entries["old"]
	_, freshExists := c.entries["fresh"]
	c.mu.RUnlock()

	if oldExists {
		t.Error("expired entry survived cleanup")
	}
	if !freshExists {
		t.Error("fresh entry removed by cleanup")
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	c := New(time.Minute)
	done := make(chan struct{})

	for i := 0; i < 4; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				c.Set("shared", j)
				c.Get("shared")
				c.Delete("shared")
			}
		}()
	}
	for i := 0; i < 4; i++ {
		<-done
	}
}
