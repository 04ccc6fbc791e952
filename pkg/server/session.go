package server

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vango-dev/vnp/pkg/render"
	"github.com/vango-dev/vnp/pkg/routepath"
	"github.com/vango-dev/vnp/pkg/router"
	"github.com/vango-dev/vnp/pkg/seo"
	"github.com/vango-dev/vnp/pkg/shell"
	"github.com/vango-dev/vnp/pkg/vdom"
)

// Session is one browser connection. It is the display its scheduler
// drives and the SEO updater its pages report to.
type Session struct {
	id     string
	conn   *websocket.Conn
	server *Server

	// wmu serializes writes on conn
	wmu sync.Mutex

	router  *router.Router
	sched   *render.Scheduler
	started bool

	ctx    context.Context
	cancel context.CancelFunc
	closed atomic.Bool
	once   sync.Once

	logger *slog.Logger
}

func newSession(ctx context.Context, id string, conn *websocket.Conn, srv *Server) (*Session, error) {
	ctx, cancel := context.WithCancel(ctx)
	logger := srv.logger.With("session", id)
	s := &Session{
		id:     id,
		conn:   conn,
		server: srv,
		ctx:    ctx,
		cancel: cancel,
		logger: logger,
	}

	s.router = router.New(
		router.WithLogger(logger),
		router.WithContext(ctx),
		router.WithRedirectHandler(s.redirected),
	)
	opts := []render.SchedulerOption{
		render.WithDelay(srv.config.RenderDelay),
		render.WithLogger(logger),
	}
	if srv.metrics != nil {
		opts = append(opts, render.WithObserver(srv.metrics))
	}
	s.sched = render.NewScheduler(s, opts...)

	if err := srv.shell.Register(s.router, s.sched, s, shell.WithScroller(s)); err != nil {
		cancel()
		return nil, err
	}
	return s, nil
}

// ID returns the session ID.
func (s *Session) ID() string {
	return s.id
}

// SetLeaving implements render.Display.
func (s *Session) SetLeaving(leaving bool) {
	s.send(leavingFrame(leaving))
}

// Swap implements render.Display. A tree that fails to serialize leaves
// the current content in place.
func (s *Session) Swap(node *vdom.VNode) {
	html, err := vdom.RenderHTML(node)
	if err != nil {
		s.logger.Error("render failed", "code", "E241", "error", err)
		return
	}
	s.send(Frame{Type: FrameSwap, HTML: html})
}

// UpdateMeta implements seo.Updater.
func (s *Session) UpdateMeta(_ context.Context, m seo.Meta) error {
	s.send(Frame{Type: FrameMeta, Meta: m})
	return nil
}

// ScrollTop implements shell.Scroller.
func (s *Session) ScrollTop() {
	s.send(Frame{Type: FrameScroll})
}

// send writes a frame. A failed write closes the connection, which ends
// the read loop.
func (s *Session) send(f Frame) {
	if s.closed.Load() {
		return
	}

	s.wmu.Lock()
	defer s.wmu.Unlock()

	s.conn.SetWriteDeadline(time.Now().Add(s.server.config.WriteTimeout))
	if err := s.conn.WriteJSON(f); err != nil {
		s.logger.Debug("write failed", "type", f.Type, "error", err)
		if s.server.metrics != nil {
			s.server.metrics.RecordWebSocketError("write")
		}
		s.conn.Close()
	}
}

// readLoop reads navigation frames until the connection closes.
func (s *Session) readLoop() {
	defer s.Close()

	s.conn.SetReadLimit(s.server.config.MaxMessageSize)
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(s.server.config.ReadTimeout))
	})

	for {
		s.conn.SetReadDeadline(time.Now().Add(s.server.config.ReadTimeout))

		var f Frame
		if err := s.conn.ReadJSON(&f); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
				if s.server.metrics != nil {
					s.server.metrics.RecordWebSocketError("read")
				}
			}
			return
		}

		switch f.Type {
		case FrameNavigate:
			s.navigate(f.Path)
		default:
			s.logger.Warn("unknown frame type", "type", f.Type)
		}
	}
}

// navigate runs a client navigation. The first one waits for the shell to
// be ready and resolves the entry location.
func (s *Session) navigate(path string) {
	var res router.Result
	if !s.started {
		s.started = true
		s.server.shell.Ready(s.ctx)
		s.router.SetLocation(path)
		res = s.router.Resolve(s.ctx)
	} else {
		res = s.router.Navigate(s.ctx, path)
	}

	requested, _ := routepath.SplitQuery(path)
	s.settle(res, requested)
}

// redirected reports a redirect that ran outside a client navigation.
func (s *Session) redirected(res router.Result) {
	s.settle(res, "")
}

// settle records a finished navigation and moves the client's location
// when it ended somewhere other than requested.
func (s *Session) settle(res router.Result, requested string) {
	if s.server.metrics != nil {
		s.server.metrics.RecordNavigation(res)
	}
	if res.Err != nil {
		s.logger.Debug("navigation ended with error", "path", res.Path, "outcome", res.Outcome, "error", res.Err)
	}
	if res.Outcome == router.Resolved && (res.Redirects > 0 || res.Path != requested) {
		s.send(Frame{Type: FrameLocation, Path: res.Path})
	}
}

// heartbeat pings the client until the session closes.
func (s *Session) heartbeat() {
	ticker := time.NewTicker(s.server.config.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.wmu.Lock()
			err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(s.server.config.WriteTimeout))
			s.wmu.Unlock()
			if err != nil {
				s.conn.Close()
				return
			}
		case <-s.ctx.Done():
			return
		}
	}
}

// Close ends the session. It is safe to call more than once.
func (s *Session) Close() {
	s.once.Do(func() {
		s.closed.Store(true)
		s.cancel()
		s.sched.Stop()
		s.conn.Close()
		s.server.removeSession(s.id)
		s.logger.Debug("session closed")
	})
}
