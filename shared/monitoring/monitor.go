package monitoring

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/wizqo2024/wizqo-sub002/shared/logging"
)

// ComponentStatus is the last recorded outcome for an upstream or job.
type ComponentStatus struct {
	Name        string    `json:"name"`
	Healthy     bool      `json:"healthy"`
	LastRun     time.Time `json:"lastRun"`
	LastError   string    `json:"lastError,omitempty"`
	Consecutive int       `json:"consecutiveFailures"`
}

// Monitor tracks the health of upstream calls and maintenance jobs.
// Upstream failures are absorbed by fallbacks, so a component only counts as
// unhealthy after repeated consecutive failures.
type Monitor struct {
	mu         sync.RWMutex
	components map[string]*ComponentStatus
	threshold  int
	startedAt  time.Time
	log        *logging.Logger
}

func NewMonitor(log *logging.Logger) *Monitor {
	if log == nil {
		log = logging.Nop()
	}
	return &Monitor{
		components: make(map[string]*ComponentStatus),
		threshold:  3,
		startedAt:  time.Now(),
		log:        log,
	}
}

func (m *Monitor) component(name string) *ComponentStatus {
	c, ok := m.components[name]
	if !ok {
		c = &ComponentStatus{Name: name, Healthy: true}
		m.components[name] = c
	}
	return c
}

func (m *Monitor) RecordSuccess(name, summary string, duration time.Duration) {
	m.mu.Lock()
	c := m.component(name)
	c.Healthy = true
	c.LastRun = time.Now()
	c.LastError = ""
	c.Consecutive = 0
	m.mu.Unlock()

	m.log.Debug("component ok", "component", name, "summary", summary, "duration", duration)
}

// RecordFailure notes a failure that was recovered by a fallback tier.
func (m *Monitor) RecordFailure(name string, err error, duration time.Duration) {
	m.mu.Lock()
	c := m.component(name)
	c.LastRun = time.Now()
	c.LastError = err.Error()
	c.Consecutive++
	if c.Consecutive >= m.threshold {
		c.Healthy = false
	}
	consecutive := c.Consecutive
	m.mu.Unlock()

	m.log.Warn("component failure", "component", name, "error", err, "consecutive", consecutive, "duration", duration)
}

func (m *Monitor) IsHealthy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.components {
		if !c.Healthy {
			return false
		}
	}
	return true
}

// Components returns a snapshot sorted by name.
func (m *Monitor) Components() []ComponentStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]ComponentStatus, 0, len(m.components))
	for _, c := range m.components {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (m *Monitor) GetStatusSummary() string {
	components := m.Components()
	if len(components) == 0 {
		return fmt.Sprintf("up %s, no upstream calls yet", time.Since(m.startedAt).Round(time.Second))
	}

	var parts []string
	for _, c := range components {
		state := "ok"
		if !c.Healthy {
			state = "failing"
		} else if c.Consecutive > 0 {
			state = "degraded"
		}
		parts = append(parts, fmt.Sprintf("%s=%s", c.Name, state))
	}
	return strings.Join(parts, ", ")
}
