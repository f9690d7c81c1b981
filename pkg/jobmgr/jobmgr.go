// Package jobmgr runs named background jobs with cancellation and
// lifecycle reporting. Marcus uses it for long-lived loops like the rage
// cooldown sweeper.
//
//	jm := jobmgr.NewManager(func(msg string) {
//	    log.Println("[INFO] job:", msg)
//	})
//	_ = jm.StartAsync("rage-sweeper", sweep)
//	// later...
//	_ = jm.Stop("rage-sweeper")
//
// No retries, no worker pools, no persistence. Each job gets its own
// goroutine and is dropped from the table when it returns.
package jobmgr

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// StatusReporter receives lifecycle events for jobs. Messages look like
// "running:rage-sweeper", "error:rage-sweeper:...", "done:rage-sweeper".
type StatusReporter func(string)

// Manager starts, stops and tracks jobs. Safe for concurrent use.
type Manager struct {
	mu       sync.Mutex
	jobs     map[string]context.CancelFunc
	Reporter StatusReporter
}

// NewManager creates a Manager. The reporter callback may be nil.
func NewManager(reporter StatusReporter) *Manager {
	return &Manager{
		jobs:     make(map[string]context.CancelFunc),
		Reporter: reporter,
	}
}

// StartAsync launches a job in its own goroutine and returns immediately.
// A name can only run once at a time. Finished jobs are removed from the
// table whether they succeeded or failed.
func (m *Manager) StartAsync(name string, runner func(ctx context.Context) error) error {
	ctx, cancel := context.WithCancel(context.Background())

	m.mu.Lock()
	if _, exists := m.jobs[name]; exists {
		m.mu.Unlock()
		cancel()
		return fmt.Errorf("job '%s' is already running", name)
	}
	m.jobs[name] = cancel
	m.mu.Unlock()

	go func() {
		m.report("running:" + name)

		if err := runner(ctx); err != nil {
			m.report("error:" + name + ":" + err.Error())
		} else {
			m.report("done:" + name)
		}

		m.mu.Lock()
		delete(m.jobs, name)
		m.mu.Unlock()
	}()

	return nil
}

// Stop cancels a running job by name.
func (m *Manager) Stop(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cancel, ok := m.jobs[name]
	if !ok {
		return fmt.Errorf("job '%s' not running", name)
	}

	cancel()
	delete(m.jobs, name)
	return nil
}

// List returns the active job names, sorted.
func (m *Manager) List() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, 0, len(m.jobs))
	for k := range m.jobs {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Status summarizes active jobs for display, e.g.
// "Running jobs: rage-sweeper". With nothing running: "No jobs are running."
func (m *Manager) Status() string {
	active := m.List()
	if len(active) == 0 {
		return "No jobs are running."
	}
	return fmt.Sprintf("Running jobs: %s", strings.Join(active, ", "))
}

func (m *Manager) report(s string) {
	if m.Reporter != nil {
		m.Reporter(s)
	}
}
