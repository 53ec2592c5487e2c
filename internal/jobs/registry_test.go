package jobs

import (
	"strings"
	"testing"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	logger := discardLogger()
	reg := NewRegistry(logger)
	reg.Register(NewHTTPCollector(logger))
	reg.Register(NewHeartbeat(logger))
	return reg
}

func TestRegistry_Get(t *testing.T) {
	reg := testRegistry(t)

	run, err := reg.Get(TypeHTTPCollect)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if run.Type() != TypeHTTPCollect {
		t.Errorf("type = %q, want %q", run.Type(), TypeHTTPCollect)
	}

	if _, err := reg.Get("ssh_check"); err == nil {
		t.Error("expected error for unregistered type")
	}
}

func TestRegistrations(t *testing.T) {
	reg := testRegistry(t)
	cat, err := ParseCatalog([]byte(sampleCatalog))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	regs, err := reg.Registrations(cat)
	if err != nil {
		t.Fatalf("registrations: %v", err)
	}
	if len(regs) != 3 {
		t.Fatalf("count = %d, want 3", len(regs))
	}
	for i, r := range regs {
		if r.Body == nil {
			t.Errorf("regs[%d].Body = nil", i)
		}
	}
	if regs[0].ID != "wazuh-index-health" || regs[0].IntervalMinutes != 10 {
		t.Errorf("regs[0] = %+v, want wazuh-index-health/10", regs[0])
	}
}

func TestRegistrations_UnknownTypeFailsCatalog(t *testing.T) {
	reg := testRegistry(t)
	cat := &Catalog{Jobs: []Spec{
		{ID: "a", Name: "x", IntervalMinutes: 5, Type: "ssh_check"},
	}}

	_, err := reg.Registrations(cat)
	if err == nil {
		t.Fatal("expected error for unknown runner type")
	}
	if !strings.Contains(err.Error(), "ssh_check") {
		t.Errorf("error = %v, want offending type named", err)
	}
}

func TestRegistrations_InvalidEntryFailsCatalog(t *testing.T) {
	reg := testRegistry(t)
	cat := &Catalog{Jobs: []Spec{
		{ID: "a", Name: "x", IntervalMinutes: 5, Type: TypeHTTPCollect}, // no target
	}}

	if _, err := reg.Registrations(cat); err == nil {
		t.Fatal("expected error for http_collect without target")
	}
}
