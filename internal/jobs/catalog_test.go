package jobs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleCatalog = `
jobs:
  - id: wazuh-index-health
    name: Wazuh indexer cluster health collection
    interval_minutes: 10
    type: http_collect
    target: http://127.0.0.1:5000/collect/wazuh_index_health
  - id: agent-sync
    name: Agent inventory sync
    interval_minutes: 15
    type: http_collect
    target: http://127.0.0.1:5000/collect/agent_sync
    timeout_seconds: 120
  - id: pulse
    name: Scheduler heartbeat
    interval_minutes: 1
    type: heartbeat
`

func TestParseCatalog(t *testing.T) {
	cat, err := ParseCatalog([]byte(sampleCatalog))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(cat.Jobs) != 3 {
		t.Fatalf("jobs count = %d, want 3", len(cat.Jobs))
	}

	first := cat.Jobs[0]
	if first.ID != "wazuh-index-health" {
		t.Errorf("id = %q, want wazuh-index-health", first.ID)
	}
	if first.IntervalMinutes != 10 {
		t.Errorf("interval_minutes = %d, want 10", first.IntervalMinutes)
	}
	if first.Type != TypeHTTPCollect {
		t.Errorf("type = %q, want %q", first.Type, TypeHTTPCollect)
	}
	if cat.Jobs[1].TimeoutSeconds != 120 {
		t.Errorf("timeout_seconds = %d, want 120", cat.Jobs[1].TimeoutSeconds)
	}
	if cat.Jobs[2].Type != TypeHeartbeat {
		t.Errorf("type = %q, want %q", cat.Jobs[2].Type, TypeHeartbeat)
	}
}

func TestParseCatalog_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "missing id",
			yaml:    "jobs:\n  - name: x\n    interval_minutes: 5\n    type: heartbeat\n",
			wantErr: "id is required",
		},
		{
			name:    "duplicate id",
			yaml:    "jobs:\n  - id: a\n    name: x\n    interval_minutes: 5\n    type: heartbeat\n  - id: a\n    name: y\n    interval_minutes: 5\n    type: heartbeat\n",
			wantErr: "duplicate id",
		},
		{
			name:    "missing name",
			yaml:    "jobs:\n  - id: a\n    interval_minutes: 5\n    type: heartbeat\n",
			wantErr: "name is required",
		},
		{
			name:    "zero interval",
			yaml:    "jobs:\n  - id: a\n    name: x\n    interval_minutes: 0\n    type: heartbeat\n",
			wantErr: "interval_minutes must be positive",
		},
		{
			name:    "negative interval",
			yaml:    "jobs:\n  - id: a\n    name: x\n    interval_minutes: -5\n    type: heartbeat\n",
			wantErr: "interval_minutes must be positive",
		},
		{
			name:    "interval too large to schedule",
			yaml:    "jobs:\n  - id: a\n    name: x\n    interval_minutes: 200000000\n    type: heartbeat\n",
			wantErr: "interval_minutes must be at most",
		},
		{
			name:    "missing type",
			yaml:    "jobs:\n  - id: a\n    name: x\n    interval_minutes: 5\n",
			wantErr: "type is required",
		},
		{
			name:    "not yaml",
			yaml:    "{{{",
			wantErr: "parse catalog",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.yaml")
	if err := os.WriteFile(path, []byte(sampleCatalog), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	cat, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cat.Jobs) != 3 {
		t.Errorf("jobs count = %d, want 3", len(cat.Jobs))
	}
}

func TestLoadCatalog_MissingFile(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
