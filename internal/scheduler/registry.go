// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// registeredJob holds metadata about a registered cron job.
type registeredJob struct {
	name        string
	description string
	schedule    string
	entryID     cron.EntryID
	run         func() error
}

// JobInfo is the public view of a registered job.
type JobInfo struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Schedule    string    `json:"schedule"`
	LastRun     time.Time `json:"lastRun"`
	NextRun     time.Time `json:"nextRun"`
}

// Registry tracks the jobs added to a cron instance.
type Registry struct {
	cron   *cron.Cron
	logger *slog.Logger
	mu     sync.RWMutex
	jobs   map[string]*registeredJob
}

// NewRegistry creates a registry for jobs of c.
func NewRegistry(c *cron.Cron, logger *slog.Logger) *Registry {
	return &Registry{
		cron:   c,
		logger: logger,
		jobs:   make(map[string]*registeredJob),
	}
}

// Register records a job after it has been added to the cron instance.
func (r *Registry) Register(name, description, schedule string, entryID cron.EntryID, run func() error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.jobs[name] = &registeredJob{
		name:        name,
		description: description,
		schedule:    schedule,
		entryID:     entryID,
		run:         run,
	}
	r.logger.Debug("registered scheduled job", "name", name, "schedule", schedule)
}

// List returns all registered jobs sorted by name.
func (r *Registry) List() []JobInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]JobInfo, 0, len(r.jobs))
	for _, job := range r.jobs {
		info := JobInfo{
			Name:        job.name,
			Description: job.description,
			Schedule:    job.schedule,
		}
		if r.cron != nil {
			entry := r.cron.Entry(job.entryID)
			info.NextRun = entry.Next
			info.LastRun = entry.Prev
		}
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// TriggerNow runs a job immediately in the calling goroutine.
func (r *Registry) TriggerNow(name string) error {
	r.mu.RLock()
	job, ok := r.jobs[name]
	r.mu.RUnlock()

	if !ok {
		return fmt.Errorf("job not found: %s", name)
	}

	r.logger.Info("manually triggering job", "name", name)
	return job.run()
}
