// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the periodic maintenance jobs of the server.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Default schedules.
const (
	DefaultSweepSchedule     = "@every 1m"
	DefaultRetentionSchedule = "@daily"
)

// jobTimeout bounds a single job run.
const jobTimeout = 5 * time.Minute

// Scheduler handles scheduled maintenance tasks.
type Scheduler struct {
	cron     *cron.Cron
	registry *Registry
	logger   *slog.Logger
}

// New creates a new scheduler instance.
func New(logger *slog.Logger) *Scheduler {
	c := cron.New()
	return &Scheduler{
		cron:     c,
		registry: NewRegistry(c, logger),
		logger:   logger,
	}
}

// Registry returns the job registry.
func (s *Scheduler) Registry() *Registry {
	return s.registry
}

// AddJob schedules fn under name. Errors returned by fn are logged.
func (s *Scheduler) AddJob(name, description, schedule string, fn func(ctx context.Context) error) error {
	run := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		return fn(ctx)
	}
	entryID, err := s.cron.AddFunc(schedule, func() {
		if err := run(); err != nil {
			s.logger.Error("scheduled job failed", "job", name, "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("scheduling %s with %q: %w", name, schedule, err)
	}
	s.registry.Register(name, description, schedule, entryID, run)
	return nil
}

// Start begins running scheduled jobs.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop gracefully stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// Sweeper drops idle editing sessions.
type Sweeper interface {
	SweepIdle() int
}

// EventPruner deletes old event log entries.
type EventPruner interface {
	DeleteOldEvents(ctx context.Context, olderThan time.Duration) (int64, error)
}

// SessionSweepJob returns a job that drops idle editing sessions.
func SessionSweepJob(sw Sweeper) func(context.Context) error {
	return func(context.Context) error {
		sw.SweepIdle()
		return nil
	}
}

// EventRetentionJob returns a job that deletes events older than retention.
func EventRetentionJob(p EventPruner, retention time.Duration, logger *slog.Logger) func(context.Context) error {
	return func(ctx context.Context) error {
		n, err := p.DeleteOldEvents(ctx, retention)
		if err != nil {
			return err
		}
		if n > 0 {
			logger.Info("old events deleted", "count", n)
		}
		return nil
	}
}
