package config

import (
	"os"
	"path/filepath"
	"testing"
)

type testConfig struct {
	Service      string `mapstructure:"service"`
	Region       string `mapstructure:"region"`
	BuildTimeout int    `mapstructure:"build_timeout"`
	TLS          struct {
		CAFile string `mapstructure:"ca_file"`
	} `mapstructure:"tls"`
}

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	yaml := `
service: compute
region: RegionOne
build_timeout: 30
tls:
  ca_file: /etc/ssl/ca.pem
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	var cfg testConfig
	if err := Load("compute", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Service != "compute" || cfg.Region != "RegionOne" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.BuildTimeout != 30 {
		t.Errorf("build_timeout = %d, want 30", cfg.BuildTimeout)
	}
	if cfg.TLS.CAFile != "/etc/ssl/ca.pem" {
		t.Errorf("tls.ca_file = %q", cfg.TLS.CAFile)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(path, []byte("region: RegionOne\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("COMPUTE_REGION", "RegionTwo")

	var cfg testConfig
	if err := Load("compute", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Region != "RegionTwo" {
		t.Errorf("environment should win, got %q", cfg.Region)
	}
}

func TestLoad_EnvOnly(t *testing.T) {
	t.Setenv("IMAGE_SERVICE", "image")
	t.Setenv("IMAGE_BUILD_TIMEOUT", "15")

	var cfg testConfig
	if err := Load("image", &cfg, WithFileSystem(fakeFS{})); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Service != "image" || cfg.BuildTimeout != 15 {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoad_MissingFilesOK(t *testing.T) {
	var cfg testConfig
	if err := Load("nothing", &cfg, WithFileSystem(fakeFS{})); err != nil {
		t.Fatalf("missing files should not fail: %v", err)
	}
}

func TestLoad_EnvFile(t *testing.T) {
	fs := fakeFS{exists: map[string]bool{".env": true}, loaded: map[string]bool{}}
	var cfg testConfig
	if err := Load("compute", &cfg, WithFileSystem(fs)); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !fs.loaded[".env"] {
		t.Error("expected .env to be loaded")
	}
}

type fakeFS struct {
	exists map[string]bool
	loaded map[string]bool
}

func (f fakeFS) Exists(path string) bool { return f.exists[path] }

func (f fakeFS) LoadEnv(path string) error {
	if f.loaded == nil {
		return nil
	}
	f.loaded[path] = true
	return nil
}
