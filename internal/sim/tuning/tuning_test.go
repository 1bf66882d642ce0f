package tuning

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault_SaneValues(t *testing.T) {
	d := Default()
	if d.TickRateHz <= 0 || d.DaySeconds <= 0 || d.MaxAgents <= 0 {
		t.Fatalf("core defaults missing: %+v", d)
	}
	if d.Vision.BaseRange <= d.Hearing.BaseRange {
		t.Fatalf("vision should out-range idle hearing")
	}
	if d.Police.WarnEscalate >= d.Police.WarnTimeout {
		t.Fatalf("escalation must come before the warning expires")
	}
	if d.Path.NodeCap <= 0 {
		t.Fatalf("pathfinder needs a node budget")
	}
}

func TestLoad_OverlaysOnDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.yaml")
	body := "max_agents: 7\nvision:\n  base_range: 99\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	tun, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if tun.MaxAgents != 7 {
		t.Fatalf("override not applied, max_agents = %d", tun.MaxAgents)
	}
	if tun.Vision.BaseRange != 99 {
		t.Fatalf("nested override not applied, base_range = %v", tun.Vision.BaseRange)
	}
	// Untouched keys keep their defaults.
	if tun.Hearing.BaseRange != Default().Hearing.BaseRange {
		t.Fatalf("defaults lost on overlay")
	}
}

func TestLoad_MissingFileErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("missing file should error")
	}
}

func TestLoad_MalformedYAMLErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.yaml")
	if err := os.WriteFile(path, []byte(":\n  - ["), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("malformed yaml should error")
	}
}
