package api

import (
	"context"
	"testing"
)

func TestModule_Name(t *testing.T) {
	m := NewModule(Config{Addr: ":0"}, &mockLogger{})

	if name := m.Name(); name != "api" {
		t.Errorf("Name() = %q, want 'api'", name)
	}
	if m.cfg.AllowOrigins != "*" {
		t.Errorf("AllowOrigins = %q, want '*'", m.cfg.AllowOrigins)
	}
}

func TestModule_StartWithoutDependencies(t *testing.T) {
	m := NewModule(Config{Addr: ":0"}, &mockLogger{})

	if err := m.Start(context.Background()); err == nil {
		t.Fatal("Start() expected error without dependencies")
	}
	if err := m.Stop(context.Background()); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
	if m.Health(context.Background()).Healthy {
		t.Error("expected unhealthy module before start")
	}
}

func TestModule_Dependencies(t *testing.T) {
	deps := NewModule(Config{}, &mockLogger{}).Dependencies()
	want := map[string]bool{"auth": true, "catalog": true, "task": true, "annotation": true}

	if len(deps) != len(want) {
		t.Fatalf("Dependencies() = %v", deps)
	}
	for _, d := range deps {
		if !want[d] {
			t.Errorf("unexpected dependency %q", d)
		}
	}
}
