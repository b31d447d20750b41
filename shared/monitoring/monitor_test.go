package monitoring

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestMonitorThreshold(t *testing.T) {
	m := NewMonitor(nil)

	if !m.IsHealthy() {
		t.Fatal("new monitor should be healthy")
	}
	if !strings.Contains(m.GetStatusSummary(), "no upstream calls yet") {
		t.Errorf("unexpected summary: %s", m.GetStatusSummary())
	}

	for i := 0; i < 2; i++ {
		m.RecordFailure("youtube", errors.New("quota exceeded"), time.Millisecond)
	}
	if !m.IsHealthy() {
		t.Error("two failures should not flip health")
	}
	if !strings.Contains(m.GetStatusSummary(), "youtube=degraded") {
		t.Errorf("summary = %s, want degraded", m.GetStatusSummary())
	}

	m.RecordFailure("youtube", errors.New("quota exceeded"), time.Millisecond)
	if m.IsHealthy() {
		t.Error("three consecutive failures should flip health")
	}

	m.RecordSuccess("youtube", "selected video", time.Millisecond)
	if !m.IsHealthy() {
		t.Error("success should restore health")
	}

	components := m.Components()
	if len(components) != 1 || components[0].LastError != "" {
		t.Errorf("Components() = %+v", components)
	}
}
