package config

import (
	"os"
	"path/filepath"
	"testing"
)

const testYAML = `
classifier:
  screw_max_angle: 25
  edge_min_angle: 65
ingest:
  listen_addr: "127.0.0.1:7420"
sinks:
  console:
    enabled: true
  sqlite:
    path: "results.db"
controllers:
  - type: rest
    rest:
      listen_addr: "127.0.0.1"
      port: 8090
`

func TestYAMLProviderLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(testYAML), 0o644); err != nil {
		t.Fatalf("writing test config: %v", err)
	}

	p := NewYAMLProvider(path)
	cfg, err := p.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.Classifier.ScrewMaxAngle != 25 || cfg.Classifier.EdgeMinAngle != 65 {
		t.Errorf("classifier thresholds = %v/%v, want 25/65", cfg.Classifier.ScrewMaxAngle, cfg.Classifier.EdgeMinAngle)
	}
	if cfg.Ingest.ListenAddr != "127.0.0.1:7420" {
		t.Errorf("ingest listen addr = %q", cfg.Ingest.ListenAddr)
	}
	if cfg.Sinks.Console == nil || !cfg.Sinks.Console.Enabled {
		t.Error("console sink not enabled")
	}
	if cfg.Sinks.SQLite == nil || cfg.Sinks.SQLite.Path != "results.db" {
		t.Error("sqlite sink not configured")
	}
	if cfg.Sinks.TimescaleDB != nil {
		t.Error("timescaledb sink unexpectedly configured")
	}
	if len(cfg.Controllers) != 1 || cfg.Controllers[0].RESTServer == nil {
		t.Fatalf("controllers = %+v, want one REST server", cfg.Controllers)
	}
	if cfg.Controllers[0].RESTServer.Port != 8090 {
		t.Errorf("REST port = %d, want 8090", cfg.Controllers[0].RESTServer.Port)
	}
	if !p.IsReadOnly() {
		t.Error("YAML provider should be read-only")
	}
}

func TestYAMLProviderMissingFile(t *testing.T) {
	p := NewYAMLProvider(filepath.Join(t.TempDir(), "nope.yaml"))
	if _, err := p.LoadConfig(); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
