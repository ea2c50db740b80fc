package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCounters(t *testing.T) {
	m := New()

	m.Mutation("team", "add", "ok")
	m.Mutation("team", "add", "ok")
	m.Mutation("news", "delete", "not_found")
	m.PersistFailure("tujitume-data")
	m.Login("failure")
	m.Submission("contact", "accepted")
	m.Notification("admin", "sent")

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"team add", testutil.ToFloat64(m.mutations.WithLabelValues("team", "add", "ok")), 2},
		{"news delete", testutil.ToFloat64(m.mutations.WithLabelValues("news", "delete", "not_found")), 1},
		{"persist", testutil.ToFloat64(m.persistFailures.WithLabelValues("tujitume-data")), 1},
		{"login", testutil.ToFloat64(m.logins.WithLabelValues("failure")), 1},
		{"submission", testutil.ToFloat64(m.submissions.WithLabelValues("contact", "accepted")), 1},
		{"notification", testutil.ToFloat64(m.notifications.WithLabelValues("admin", "sent")), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.Mutation("team", "add", "ok")
	m.PersistFailure("k")
	m.Login("success")
	m.Submission("contact", "accepted")
	m.Notification("admin", "sent")
	if err := m.WriteTextfile("ignored"); err != nil {
		t.Errorf("WriteTextfile on nil: %v", err)
	}
	if m.Registry() != nil {
		t.Error("Registry on nil: want nil")
	}
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.Login("success")

	path := filepath.Join(t.TempDir(), "tujitume.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(b), `tujitume_admin_logins_total{outcome="success"} 1`) {
		t.Errorf("textfile missing login counter:\n%s", b)
	}
}
