// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"
)

type countingSweeper struct{ calls int }

func (c *countingSweeper) SweepIdle() int {
	c.calls++
	return 0
}

type fakePruner struct {
	olderThan time.Duration
	err       error
}

func (f *fakePruner) DeleteOldEvents(_ context.Context, olderThan time.Duration) (int64, error) {
	f.olderThan = olderThan
	return 2, f.err
}

func TestNew(t *testing.T) {
	logger := testLogger()

	s := New(logger)
	if s == nil {
		t.Fatal("New() returned nil")
	}
	if s.cron == nil {
		t.Error("New() scheduler has nil cron")
	}
	if s.Registry() == nil {
		t.Error("New() scheduler has nil registry")
	}
}

func TestScheduler_StartStop(t *testing.T) {
	s := New(testLogger())
	if err := s.AddJob("noop", "does nothing", "@every 1h", func(context.Context) error { return nil }); err != nil {
		t.Fatalf("AddJob() error = %v", err)
	}

	s.Start()
	s.Stop()
}

func TestAddJob_InvalidSchedule(t *testing.T) {
	s := New(testLogger())
	err := s.AddJob("bad", "", "not a schedule", func(context.Context) error { return nil })
	if err == nil {
		t.Fatal("AddJob() should reject an invalid schedule")
	}
	if len(s.Registry().List()) != 0 {
		t.Error("failed job should not be registered")
	}
}

func TestSessionSweepJob(t *testing.T) {
	sw := &countingSweeper{}
	s := New(testLogger())
	if err := s.AddJob("session-sweep", "Drop idle sessions", DefaultSweepSchedule, SessionSweepJob(sw)); err != nil {
		t.Fatalf("AddJob() error = %v", err)
	}

	if err := s.Registry().TriggerNow("session-sweep"); err != nil {
		t.Fatalf("TriggerNow() error = %v", err)
	}
	if sw.calls != 1 {
		t.Errorf("SweepIdle calls = %d, want 1", sw.calls)
	}
}

func TestEventRetentionJob(t *testing.T) {
	p := &fakePruner{}
	job := EventRetentionJob(p, 30*24*time.Hour, testLogger())

	if err := job(context.Background()); err != nil {
		t.Fatalf("job error = %v", err)
	}
	if p.olderThan != 30*24*time.Hour {
		t.Errorf("olderThan = %v", p.olderThan)
	}

	p.err = errors.New("db down")
	if err := job(context.Background()); !errors.Is(err, p.err) {
		t.Errorf("job error = %v, want %v", err, p.err)
	}
}
