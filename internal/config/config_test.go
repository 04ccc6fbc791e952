package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vango-dev/vnp/internal/errors"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Server.Port != DefaultPort {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, DefaultPort)
	}
	if cfg.Server.Host != DefaultHost {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, DefaultHost)
	}
	if cfg.Pages != DefaultPages {
		t.Errorf("Pages = %q, want %q", cfg.Pages, DefaultPages)
	}
	if !cfg.HashRouting {
		t.Error("HashRouting should default to true")
	}
	if cfg.AuthRedirect != "/login" {
		t.Errorf("AuthRedirect = %q, want /login", cfg.AuthRedirect)
	}
	if cfg.DefaultSEO["title"] == "" {
		t.Error("DefaultSEO should carry a title")
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := Load(tmpDir)
	if err == nil {
		t.Fatal("Expected error for missing config")
	}
	var ve *errors.Error
	if !stderrors.As(err, &ve) || ve.Code != "E141" {
		t.Errorf("missing config error = %v, want E141", err)
	}

	configPath := filepath.Join(tmpDir, ConfigFileName)
	configJSON := `{
  "name": "forge",
  "pages": "src/pages",
  "hashRouting": false,
  "renderDelay": "50ms",
  "server": {
    "port": 8080
  },
  "tracing": {
    "enabled": true
  }
}
`
	if err := os.WriteFile(configPath, []byte(configJSON), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Name != "forge" {
		t.Errorf("Name = %q, want forge", cfg.Name)
	}
	if cfg.HashRouting {
		t.Error("HashRouting = true, want false")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.Host != DefaultHost {
		t.Errorf("Server.Host = %q, want default", cfg.Server.Host)
	}
	if cfg.Tracing.TracerName != DefaultNamespace {
		t.Errorf("Tracing.TracerName = %q, want default", cfg.Tracing.TracerName)
	}
	if got := cfg.PagesPath(); got != filepath.Join(tmpDir, "src/pages") {
		t.Errorf("PagesPath() = %q", got)
	}
	if d, err := cfg.RenderDelayDuration(); err != nil || d != 50*time.Millisecond {
		t.Errorf("RenderDelayDuration() = %v, %v", d, err)
	}
	if d, _ := cfg.ReadyTimeoutDuration(); d != DefaultReadyTimeout {
		t.Errorf("ReadyTimeoutDuration() = %v, want %v", d, DefaultReadyTimeout)
	}
	if cfg.Address() != "localhost:8080" {
		t.Errorf("Address() = %q", cfg.Address())
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(tmpDir)
	var ve *errors.Error
	if !stderrors.As(err, &ve) || ve.Code != "E120" {
		t.Errorf("Load() error = %v, want E120", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		wantCode string
	}{
		{"defaults", func(*Config) {}, ""},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, "E122"},
		{"relative redirect", func(c *Config) { c.AuthRedirect = "login" }, "E123"},
		{"protocol relative redirect", func(c *Config) { c.AuthRedirect = "//evil.example" }, "E123"},
		{"bad delay", func(c *Config) { c.RenderDelay = "soon" }, "E121"},
		{"negative timeout", func(c *Config) { c.ReadyTimeout = "-1s" }, "E121"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantCode == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			var ve *errors.Error
			if !stderrors.As(err, &ve) || ve.Code != tt.wantCode {
				t.Errorf("Validate() = %v, want %s", err, tt.wantCode)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, ConfigFileName)

	cfg := New()
	cfg.Name = "saved"
	if err := cfg.Save(); err == nil {
		t.Error("Save() without a path should fail")
	}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}
	if cfg.Path() != path || cfg.Dir() != tmpDir {
		t.Errorf("Path() = %q, Dir() = %q", cfg.Path(), cfg.Dir())
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if loaded.Name != "saved" || !loaded.HashRouting {
		t.Errorf("loaded = %+v", loaded)
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, ConfigFileName), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "app", "pages", "Home")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	got, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatalf("FindProjectRoot() error = %v", err)
	}
	want, _ := filepath.EvalSymlinks(root)
	gotEval, _ := filepath.EvalSymlinks(got)
	if gotEval != want {
		t.Errorf("FindProjectRoot() = %q, want %q", got, root)
	}
}
