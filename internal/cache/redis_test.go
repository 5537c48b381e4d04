// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"
)

// skipIfNoRedis skips the test if Redis is not configured.
func skipIfNoRedis(t *testing.T) string {
	url := os.Getenv("PAGESMITH_TEST_REDIS_URL")
	if url == "" {
		t.Skip("Skipping Redis tests: PAGESMITH_TEST_REDIS_URL not set")
	}
	return url
}

func TestRedisCache_Basic(t *testing.T) {
	url := skipIfNoRedis(t)

	cache, err := NewRedisCacheFromURL(url, "pagesmith-test:", time.Minute)
	if err != nil {
		t.Fatalf("failed to create Redis cache: %v", err)
	}
	defer func() { _ = cache.Close() }()

	ctx := context.Background()
	_ = cache.Clear(ctx)

	if err := cache.Set(ctx, "key", []byte("value"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := cache.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != "value" {
		t.Errorf("Get returned %q, want %q", got, "value")
	}

	if has, err := cache.Has(ctx, "key"); err != nil || !has {
		t.Errorf("Has = %v, %v", has, err)
	}

	_ = cache.Set(ctx, "page:1", []byte("x"), 0)
	if err := cache.DeleteByPrefix(ctx, "page:"); err != nil {
		t.Fatalf("DeleteByPrefix: %v", err)
	}
	if _, err := cache.Get(ctx, "page:1"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected miss after prefix delete, got %v", err)
	}

	if err := cache.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := cache.Get(ctx, "key"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss, got %v", err)
	}

	if s := cache.Stats(); s.Hits < 1 || s.Sets < 2 {
		t.Errorf("unexpected stats %+v", s)
	}
}

func TestRedisCache_RequiresURL(t *testing.T) {
	if _, err := NewRedisCache(RedisCacheOptions{}); err == nil {
		t.Error("expected error for empty URL")
	}
}
