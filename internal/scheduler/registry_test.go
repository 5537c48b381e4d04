// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/robfig/cron/v3"
)

// testLogger creates a test logger that only prints errors.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestNewRegistry(t *testing.T) {
	c := cron.New()
	logger := testLogger()

	registry := NewRegistry(c, logger)

	if registry == nil {
		t.Fatal("NewRegistry returned nil")
	}
	if registry.logger != logger {
		t.Error("registry.logger not set correctly")
	}
	if registry.jobs == nil {
		t.Error("registry.jobs should be initialized")
	}
}

func TestRegister(t *testing.T) {
	cronInst := cron.New()
	defer cronInst.Stop()
	registry := NewRegistry(cronInst, testLogger())

	entryID, err := cronInst.AddFunc("@every 1h", func() {})
	if err != nil {
		t.Fatalf("failed to add cron job: %v", err)
	}

	registry.Register("test-job", "A test job", "@every 1h", entryID, func() error { return nil })

	jobs := registry.List()
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(jobs))
	}

	job := jobs[0]
	if job.Name != "test-job" {
		t.Errorf("Name = %q, want %q", job.Name, "test-job")
	}
	if job.Description != "A test job" {
		t.Errorf("Description = %q, want %q", job.Description, "A test job")
	}
	if job.Schedule != "@every 1h" {
		t.Errorf("Schedule = %q, want %q", job.Schedule, "@every 1h")
	}
}

func TestListSorted(t *testing.T) {
	registry := NewRegistry(nil, testLogger())
	noop := func() error { return nil }

	registry.Register("zeta", "", "@daily", 0, noop)
	registry.Register("alpha", "", "@daily", 0, noop)
	registry.Register("mid", "", "@daily", 0, noop)

	jobs := registry.List()
	want := []string{"alpha", "mid", "zeta"}
	for i, name := range want {
		if jobs[i].Name != name {
			t.Errorf("jobs[%d] = %q, want %q", i, jobs[i].Name, name)
		}
	}
}

func TestTriggerNow(t *testing.T) {
	registry := NewRegistry(nil, testLogger())
	boom := errors.New("boom")
	called := false

	registry.Register("ok", "", "@daily", 0, func() error {
		called = true
		return nil
	})
	registry.Register("fails", "", "@daily", 0, func() error { return boom })

	if err := registry.TriggerNow("ok"); err != nil {
		t.Fatalf("TriggerNow(ok) error = %v", err)
	}
	if !called {
		t.Error("job was not run")
	}
	if err := registry.TriggerNow("fails"); !errors.Is(err, boom) {
		t.Errorf("TriggerNow(fails) error = %v, want %v", err, boom)
	}
	if err := registry.TriggerNow("missing"); err == nil {
		t.Error("TriggerNow(missing) should fail")
	}
}
