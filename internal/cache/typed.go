// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"encoding/json"
	"time"
)

// TypedCache stores values of one type as JSON in a Cache.
type TypedCache[T any] struct {
	cache      Cache
	prefix     string
	defaultTTL time.Duration
}

// NewTypedCache wraps cache. Every key is namespaced by prefix.
func NewTypedCache[T any](cache Cache, prefix string, defaultTTL time.Duration) *TypedCache[T] {
	return &TypedCache[T]{
		cache:      cache,
		prefix:     prefix,
		defaultTTL: defaultTTL,
	}
}

// Get returns the cached value and true, or nil and false on a miss or a
// value that no longer decodes.
func (c *TypedCache[T]) Get(ctx context.Context, key string) (*T, bool) {
	data, err := c.cache.Get(ctx, c.prefix+key)
	if err != nil {
		return nil, false
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, false
	}
	return &value, true
}

// Set stores a value with the default TTL.
func (c *TypedCache[T]) Set(ctx context.Context, key string, value *T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.cache.Set(ctx, c.prefix+key, data, c.defaultTTL)
}

// Delete removes a key.
func (c *TypedCache[T]) Delete(ctx context.Context, key string) error {
	return c.cache.Delete(ctx, c.prefix+key)
}

// Clear removes every key under the prefix when the cache supports it, and
// the whole cache otherwise.
func (c *TypedCache[T]) Clear(ctx context.Context) error {
	if pd, ok := c.cache.(PrefixDeleter); ok {
		return pd.DeleteByPrefix(ctx, c.prefix)
	}
	return c.cache.Clear(ctx)
}

// GetOrSet returns the cached value or computes, stores and returns it.
// A failed store does not fail the call.
func (c *TypedCache[T]) GetOrSet(ctx context.Context, key string, fn func() (*T, error)) (*T, error) {
	if value, ok := c.Get(ctx, key); ok {
		return value, nil
	}

	value, err := fn()
	if err != nil {
		return nil, err
	}
	_ = c.Set(ctx, key, value)
	return value, nil
}
