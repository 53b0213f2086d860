package config

import "testing"

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Host != "127.0.0.1" {
		t.Fatalf("host=%s want=127.0.0.1", cfg.Host)
	}
	if cfg.PortRangeStart != 3080 {
		t.Fatalf("portRangeStart=%d want=3080", cfg.PortRangeStart)
	}
	if cfg.PortRangeSize != 100 {
		t.Fatalf("portRangeSize=%d want=100", cfg.PortRangeSize)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("SLIDEPRESENTER_PORT_START", "4500")
	t.Setenv("SLIDEPRESENTER_ROOT", "/tmp/workspace")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.PortRangeStart != 4500 {
		t.Fatalf("portRangeStart=%d want=4500", cfg.PortRangeStart)
	}
	if cfg.RootDir != "/tmp/workspace" {
		t.Fatalf("rootDir=%s want=/tmp/workspace", cfg.RootDir)
	}
}

func TestLoadConfigRejectsEmptyRange(t *testing.T) {
	t.Setenv("SLIDEPRESENTER_PORT_RANGE", "0")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error for zero port range")
	}
}
