package remote

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"

	"github.com/matzehuels/coachmark/pkg/errors"
	"github.com/matzehuels/coachmark/pkg/geom"
	"github.com/matzehuels/coachmark/pkg/overlay"
	"github.com/matzehuels/coachmark/pkg/term"
	"github.com/matzehuels/coachmark/pkg/tour"
)

// DefaultTimeout bounds one navigation request.
const DefaultTimeout = 10 * time.Second

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithBubble sets the bubble used to render frame views.
func WithBubble(b term.Bubble) Option {
	return func(s *Server) { s.bubble = b }
}

// WithTimeout bounds navigation requests.
func WithTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// Server serves one overlay.
type Server struct {
	overlay *overlay.Overlay
	bubble  term.Bubble
	logger  *log.Logger
	timeout time.Duration
	router  chi.Router

	mu     sync.Mutex
	screen term.Screen
}

// New returns a server driving o over screen.
func New(o *overlay.Overlay, screen term.Screen, opts ...Option) *Server {
	s := &Server{
		overlay: o,
		screen:  screen,
		bubble:  term.DefaultBubble,
		logger:  log.Default(),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/frame", s.handleFrame)
	r.Route("/tour", func(r chi.Router) {
		r.Get("/", s.handleState)
		r.Post("/next", s.navigate(o.Next))
		r.Post("/back", s.navigate(o.Back))
		r.Post("/skip", s.navigate(o.Skip))
		r.Post("/reset", s.navigate(o.Reset))
		r.Post("/tap", s.handleTap)
	})
	s.router = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// SetScreen replaces the screen frames are rendered on.
func (s *Server) SetScreen(screen term.Screen) {
	s.mu.Lock()
	s.screen = screen
	s.mu.Unlock()
}

type stateResponse struct {
	Position int   `json:"position"`
	Hidden   bool  `json:"hidden"`
	Order    []int `json:"order"`
}

type navResponse struct {
	Committed bool          `json:"committed"`
	State     stateResponse `json:"state"`
}

type rectJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

type buttonJSON struct {
	Label  string   `json:"label"`
	Bounds rectJSON `json:"bounds"`
}

type frameResponse struct {
	Position  int          `json:"position"`
	Target    rectJSON     `json:"target"`
	Viewport  rectJSON     `json:"viewport"`
	Hole      rectJSON     `json:"hole"`
	Content   rectJSON     `json:"content"`
	Alignment string       `json:"alignment"`
	Strategy  string       `json:"strategy"`
	Fits      bool         `json:"fits"`
	Buttons   []buttonJSON `json:"buttons"`
	View      string       `json:"view,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type tapRequest struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

func toRect(r geom.Rect) rectJSON {
	return rectJSON{X: r.Left, Y: r.Top, W: r.Width(), H: r.Height()}
}

func (s *Server) state() stateResponse {
	t := s.overlay.Tour()
	p := t.Position()
	return stateResponse{Position: p, Hidden: p == tour.Hidden, Order: t.Order()}
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.state())
}

// handleFrame renders the current frame. ?view=1 adds the plain-text
// rendering.
func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	view, f, ok := term.Snapshot(s.overlay, s.screen, s.bubble)
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, errors.New(errors.ErrCodeNotFound, "no current target"))
		return
	}

	resp := frameResponse{
		Position:  f.Position,
		Target:    toRect(f.Target.Bounds),
		Viewport:  toRect(f.Viewport),
		Hole:      toRect(f.Hole),
		Content:   toRect(f.Content),
		Alignment: f.Placement.Alignment.String(),
		Strategy:  f.Placement.Strategy,
		Fits:      f.Placement.Fits,
		Buttons:   make([]buttonJSON, 0, len(f.Buttons)),
	}
	for _, b := range f.Buttons {
		resp.Buttons = append(resp.Buttons, buttonJSON{Label: b.Label, Bounds: toRect(b.Bounds)})
	}
	if r.URL.Query().Get("view") != "" {
		resp.View = ansi.Strip(view)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) navigate(fn func(context.Context) (bool, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
		defer cancel()
		committed, err := fn(ctx)
		s.respondNav(w, committed, err)
	}
}

func (s *Server) handleTap(w http.ResponseWriter, r *http.Request) {
	var req tapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode tap"))
		return
	}
	if req.X == nil || req.Y == nil {
		writeError(w, http.StatusBadRequest, errors.New(errors.ErrCodeInvalidInput, "tap needs x and y"))
		return
	}

	// Tap routes against the last rendered frame.
	s.mu.Lock()
	term.Snapshot(s.overlay, s.screen, s.bubble)
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()
	committed, err := s.overlay.Tap(ctx, geom.Offset{X: *req.X, Y: *req.Y})
	s.respondNav(w, committed, err)
}

func (s *Server) respondNav(w http.ResponseWriter, committed bool, err error) {
	if err != nil {
		writeError(w, http.StatusGatewayTimeout, err)
		return
	}
	writeJSON(w, http.StatusOK, navResponse{Committed: committed, State: s.state()})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"took", time.Since(start),
			"id", middleware.GetReqID(r.Context()))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: errors.UserMessage(err), Code: string(errors.GetCode(err))})
}
