package server

import (
	"net/http"
	"net/url"
	"time"

	"github.com/vango-dev/vnp/pkg/render"
	"github.com/vango-dev/vnp/pkg/seo"
)

// Config configures a Server.
type Config struct {
	// SocketPath is the WebSocket endpoint. Default: "/ws".
	SocketPath string

	// HashRouting keeps routes in the URL fragment.
	HashRouting bool

	// DefaultSEO is used for the shell document.
	DefaultSEO seo.Meta

	// RenderDelay is the debounce window of each session's scheduler.
	RenderDelay time.Duration

	// LoginRedirect is where a successful sign-in lands. Default: "/".
	LoginRedirect string

	// SessionTTL is how long a sign-in lasts. Default: 24h.
	SessionTTL time.Duration

	// CheckOrigin validates the WebSocket request origin.
	// Default: SameOriginCheck.
	CheckOrigin func(r *http.Request) bool

	// ReadTimeout is the maximum idle time between client messages.
	// Pongs count as messages.
	ReadTimeout time.Duration

	// WriteTimeout bounds every frame write.
	WriteTimeout time.Duration

	// HeartbeatInterval is the ping interval.
	HeartbeatInterval time.Duration

	// MaxMessageSize limits incoming messages in bytes.
	MaxMessageSize int64

	// ShutdownTimeout bounds graceful shutdown in Run.
	ShutdownTimeout time.Duration

	// Lang is the document language. Default: "en".
	Lang string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		SocketPath:        "/ws",
		HashRouting:       true,
		RenderDelay:       render.DefaultDelay,
		LoginRedirect:     "/",
		SessionTTL:        24 * time.Hour,
		CheckOrigin:       SameOriginCheck,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      10 * time.Second,
		HeartbeatInterval: 30 * time.Second,
		MaxMessageSize:    16 * 1024,
		ShutdownTimeout:   30 * time.Second,
		Lang:              "en",
	}
}

// withDefaults fills unset fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.SocketPath == "" {
		c.SocketPath = d.SocketPath
	}
	if c.RenderDelay < 0 {
		c.RenderDelay = d.RenderDelay
	}
	if c.LoginRedirect == "" {
		c.LoginRedirect = d.LoginRedirect
	}
	if c.SessionTTL <= 0 {
		c.SessionTTL = d.SessionTTL
	}
	if c.CheckOrigin == nil {
		c.CheckOrigin = d.CheckOrigin
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = d.ReadTimeout
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = d.WriteTimeout
	}
	if c.HeartbeatInterval <= 0 {
		c.HeartbeatInterval = d.HeartbeatInterval
	}
	if c.MaxMessageSize <= 0 {
		c.MaxMessageSize = d.MaxMessageSize
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = d.ShutdownTimeout
	}
	if c.Lang == "" {
		c.Lang = d.Lang
	}
	return c
}

// SameOriginCheck validates that the WebSocket request origin matches the host.
func SameOriginCheck(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		// No Origin header (e.g., same-origin request or curl)
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}

	host := r.Host
	if host == "" {
		return false
	}
	return originURL.Host == host
}
