// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cache provides the byte cache used to front page lookups, with an
// in-memory and a Redis implementation.
package cache

import (
	"context"
	"time"
)

// Cache is a thread-safe byte cache. Get returns ErrCacheMiss for absent or
// expired keys.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key. A zero ttl uses the cache default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Has(ctx context.Context, key string) (bool, error)
	Close() error
}

// PrefixDeleter is implemented by caches that can drop a key range.
type PrefixDeleter interface {
	DeleteByPrefix(ctx context.Context, prefix string) error
}

// StatsProvider is implemented by caches that keep hit/miss counters.
type StatsProvider interface {
	Stats() Stats
	ResetStats()
}

// Stats holds cache statistics.
type Stats struct {
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	Sets    int64   `json:"sets"`
	Items   int     `json:"items"`
	HitRate float64 `json:"hitRate"`
	Size    int64   `json:"sizeBytes,omitempty"`
}

func newStats(hits, misses, sets int64, items int, size int64) Stats {
	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}
	return Stats{Hits: hits, Misses: misses, Sets: sets, Items: items, HitRate: hitRate, Size: size}
}

// Error represents an error type for cache operations.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrCacheMiss indicates the key was not found in cache or has expired.
	ErrCacheMiss Error = "cache miss"

	// ErrCacheClosed indicates the cache has been closed.
	ErrCacheClosed Error = "cache closed"
)
