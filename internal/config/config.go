package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/vango-dev/vnp/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "vnp.json"

	// DefaultPort is the default server port.
	DefaultPort = 3000

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultPages is the default pages directory.
	DefaultPages = "app/pages"

	// DefaultAuthRedirect is where unauthenticated users are sent.
	DefaultAuthRedirect = "/login"

	// DefaultRenderDelay is the debounce window between the leaving state
	// and the content swap.
	DefaultRenderDelay = 200 * time.Millisecond

	// DefaultReadyTimeout bounds the startup wait for the session service.
	DefaultReadyTimeout = 5 * time.Second

	// DefaultNamespace is the default metrics namespace and tracer name.
	DefaultNamespace = "vnp"
)

// Config represents the complete vnp.json configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	// Pages is the path to the pages directory.
	Pages string `json:"pages,omitempty"`

	// HashRouting serves every page from "/" and keeps the route in the
	// URL fragment. Path-based entry URLs are redirected to "/#<path>".
	HashRouting bool `json:"hashRouting"`

	// AuthRedirect is the landing route for unauthenticated users on
	// protected routes.
	AuthRedirect string `json:"authRedirect,omitempty"`

	// DefaultSEO is merged under every page's own SEO descriptor.
	DefaultSEO map[string]string `json:"defaultSEO,omitempty"`

	// RenderDelay is the render debounce window (e.g., "200ms").
	RenderDelay string `json:"renderDelay,omitempty"`

	// ReadyTimeout bounds the startup readiness wait (e.g., "5s").
	ReadyTimeout string `json:"readyTimeout,omitempty"`

	// Server contains HTTP server configuration.
	Server ServerConfig `json:"server,omitempty"`

	// Metrics contains Prometheus configuration.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	// Tracing contains OpenTelemetry configuration.
	Tracing TracingConfig `json:"tracing,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled"`
	Namespace string `json:"namespace,omitempty"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	Enabled    bool   `json:"enabled"`
	TracerName string `json:"tracerName,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Pages:        DefaultPages,
		HashRouting:  true,
		AuthRedirect: DefaultAuthRedirect,
		DefaultSEO: map[string]string{
			"title":       "VNP Forge",
			"description": "Ultra-fast AI Site Builder",
			"keywords":    "go, spa, server-driven",
		},
		RenderDelay:  DefaultRenderDelay.String(),
		ReadyTimeout: DefaultReadyTimeout.String(),
		Server: ServerConfig{
			Host: DefaultHost,
			Port: DefaultPort,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: DefaultNamespace,
		},
		Tracing: TracingConfig{
			TracerName: DefaultNamespace,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for vnp.json in the directory.
func Load(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	return LoadFile(configPath)
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E141").
				WithDetail("No vnp.json found in " + filepath.Dir(path)).
				WithSuggestion("Create vnp.json at the project root")
		}
		return nil, errors.New("E120").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E120").
			WithDetail("Failed to parse vnp.json: " + err.Error()).
			WithSuggestion("Check that vnp.json is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E120").Wrap(err)
	}

	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E120").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Pages == "" {
		c.Pages = DefaultPages
	}
	if c.AuthRedirect == "" {
		c.AuthRedirect = DefaultAuthRedirect
	}
	if c.RenderDelay == "" {
		c.RenderDelay = DefaultRenderDelay.String()
	}
	if c.ReadyTimeout == "" {
		c.ReadyTimeout = DefaultReadyTimeout.String()
	}
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = DefaultNamespace
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("E122").
			WithDetail("Port must be between 0 and 65535, got " + strconv.Itoa(c.Server.Port))
	}
	if !strings.HasPrefix(c.AuthRedirect, "/") || strings.HasPrefix(c.AuthRedirect, "//") {
		return errors.New("E123").
			WithDetail("authRedirect is " + strconv.Quote(c.AuthRedirect))
	}
	if _, err := c.RenderDelayDuration(); err != nil {
		return err
	}
	if _, err := c.ReadyTimeoutDuration(); err != nil {
		return err
	}
	return nil
}

// RenderDelayDuration parses RenderDelay.
func (c *Config) RenderDelayDuration() (time.Duration, error) {
	return parseDuration("renderDelay", c.RenderDelay, DefaultRenderDelay)
}

// ReadyTimeoutDuration parses ReadyTimeout.
func (c *Config) ReadyTimeoutDuration() (time.Duration, error) {
	return parseDuration("readyTimeout", c.ReadyTimeout, DefaultReadyTimeout)
}

func parseDuration(field, value string, fallback time.Duration) (time.Duration, error) {
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		return 0, errors.New("E121").
			WithDetail(field + " is " + strconv.Quote(value)).
			WithSuggestion(`Use Go duration syntax such as "200ms" or "5s"`)
	}
	return d, nil
}

// Address returns the address string for the HTTP server.
func (c *Config) Address() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// PagesPath returns the absolute path to the pages directory.
func (c *Config) PagesPath() string {
	path := c.Pages
	if path == "" {
		path = DefaultPages
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir(), path)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	path := filepath.Join(dir, ConfigFileName)
	_, err := os.Stat(path)
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing vnp.json, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E141").
				WithDetail("No vnp.json found in " + startDir + " or any parent directory").
				WithSuggestion("Create vnp.json at the project root")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working directory.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}

	return Load(root)
}
