package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vango-dev/vnp/pkg/auth"
	"github.com/vango-dev/vnp/pkg/middleware"
	"github.com/vango-dev/vnp/pkg/render"
	"github.com/vango-dev/vnp/pkg/routepath"
	"github.com/vango-dev/vnp/pkg/seo"
	"github.com/vango-dev/vnp/pkg/shell"
)

// SessionCookie is the cookie holding the sign-in session ID.
const SessionCookie = "vnp_session"

// Server serves a shell to browsers.
type Server struct {
	shell    *shell.Shell
	config   Config
	upgrader websocket.Upgrader

	store    *auth.Store
	metrics  *middleware.Metrics
	gatherer prometheus.Gatherer

	mu       sync.Mutex
	sessions map[string]*Session
	nextID   atomic.Uint64

	logger *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server's logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSessionStore enables /login and /logout backed by store. Signed-in
// principals are attached to the context hooks receive.
func WithSessionStore(store *auth.Store) Option {
	return func(s *Server) {
		s.store = store
	}
}

// WithMetrics records session, navigation and render metrics in m and
// serves g on /metrics. g may be nil to skip the endpoint.
func WithMetrics(m *middleware.Metrics, g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.metrics = m
		s.gatherer = g
	}
}

// New creates a server for sh.
func New(sh *shell.Shell, cfg Config, opts ...Option) *Server {
	cfg = cfg.withDefaults()
	s := &Server{
		shell:  sh,
		config: cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     cfg.CheckOrigin,
		},
		sessions: make(map[string]*Session),
		logger:   slog.Default().With("component", "server"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP surface of the server.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(s.principal)

	r.Get(s.config.SocketPath, s.HandleWebSocket)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	if s.store != nil {
		r.Post("/login", s.handleLogin)
		r.Post("/logout", s.handleLogout)
	}
	r.Get("/*", s.handleDocument)
	return r
}

// principal attaches the signed-in principal of the request, if any.
func (s *Server) principal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.store == nil {
			next.ServeHTTP(w, r)
			return
		}
		c, err := r.Cookie(SessionCookie)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		p, ok, err := s.store.Load(r.Context(), c.Value)
		if err != nil {
			s.logger.Warn("session lookup failed", "error", err)
		}
		if ok {
			r = r.WithContext(auth.WithPrincipal(r.Context(), p))
		}
		next.ServeHTTP(w, r)
	})
}

// handleDocument serves the shell page. With hash routing, path-based
// entry URLs are redirected to their fragment form first.
func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	if target, ok := shell.EntryRedirect(r.URL, s.config.HashRouting); ok {
		http.Redirect(w, r, target, http.StatusFound)
		return
	}

	meta := s.config.DefaultSEO
	if loc, err := routepath.Clean(r.URL.Path); err == nil {
		if e, ok := s.shell.Table().Lookup(loc.Route()); ok {
			meta = seo.Merge(s.config.DefaultSEO, e.SEO)
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := render.WriteDocument(w, render.Document{
		Meta:        meta,
		SocketPath:  s.config.SocketPath,
		HashRouting: s.config.HashRouting,
		Lang:        s.config.Lang,
	})
	if err != nil {
		s.logger.Error("document write failed", "error", err)
	}
}

// entryURL returns the browser URL for an application path.
func (s *Server) entryURL(path string) string {
	if s.config.HashRouting && path != "/" {
		return "/#" + path
	}
	return path
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	username := r.PostForm.Get("username")
	if username == "" {
		http.Redirect(w, r, s.entryURL("/login"), http.StatusSeeOther)
		return
	}

	id, err := s.store.Create(r.Context(), auth.Principal{Username: username}, s.config.SessionTTL)
	if err != nil {
		s.logger.Error("session create failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(s.config.SessionTTL / time.Second),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	s.logger.Info("signed in", "user", username)
	http.Redirect(w, r, s.entryURL(s.config.LoginRedirect), http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(SessionCookie); err == nil {
		if err := s.store.Delete(r.Context(), c.Value); err != nil {
			s.logger.Warn("session delete failed", "error", err)
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleWebSocket upgrades the request and runs a session until the
// connection closes.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		if s.metrics != nil {
			s.metrics.RecordWebSocketError("upgrade")
		}
		return
	}

	ctx := context.Background()
	if p, ok := auth.PrincipalFrom(r.Context()); ok {
		ctx = auth.WithPrincipal(ctx, p)
	}

	id := strconv.FormatUint(s.nextID.Add(1), 10)
	sess, err := newSession(ctx, id, conn, s)
	if err != nil {
		s.logger.Error("session setup failed", "error", err)
		conn.Close()
		return
	}

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()
	if s.metrics != nil {
		s.metrics.SessionOpened()
	}

	go sess.heartbeat()
	sess.readLoop()
}

// removeSession forgets a closed session.
func (s *Server) removeSession(id string) {
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if ok && s.metrics != nil {
		s.metrics.SessionClosed()
	}
}

// SessionCount returns the number of open sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Close closes every open session.
func (s *Server) Close() {
	s.mu.Lock()
	sessions := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.Close()
	}
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	s.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
