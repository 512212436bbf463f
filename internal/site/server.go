package site

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"playbeat/internal/api"
	"playbeat/internal/config"
	"playbeat/internal/feedback"
	"playbeat/internal/logging"
	"playbeat/internal/rating"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

// Options configures a Server.
type Options struct {
	// Token guards mutating API routes. Empty disables the check.
	Token string
	// ContactRatePerMinute limits contact submissions per client IP. Zero
	// disables limiting.
	ContactRatePerMinute int
	// ClockInterval paces the clock stream; zero means one second.
	ClockInterval time.Duration
	// Now overrides the clock source.
	Now func() time.Time
	// Status overrides the /api/status payload with daemon runtime details.
	Status func(context.Context) api.Status
	Logger *slog.Logger
}

// Server is the Play Beat HTTP handler.
type Server struct {
	svc        *api.Service
	site       config.Site
	token      string
	limiter    *clientLimiter
	background *Background
	interval   time.Duration
	now        func() time.Time
	status     func(context.Context) api.Status
	logger     *slog.Logger
	page       *template.Template
	handler    http.Handler
}

// New builds the handler for svc.
func New(svc *api.Service, opts Options) (*Server, error) {
	if svc == nil {
		return nil, errors.New("site requires api service")
	}
	page, err := template.New("index.html.tmpl").ParseFS(templateFS, "templates/index.html.tmpl")
	if err != nil {
		return nil, err
	}
	a := svc.App()
	s := &Server{
		svc:        svc,
		site:       a.Config.Site,
		token:      opts.Token,
		limiter:    newClientLimiter(opts.ContactRatePerMinute),
		background: NewBackground(a.Bell),
		interval:   opts.ClockInterval,
		now:        opts.Now,
		status:     opts.Status,
		logger:     opts.Logger,
		page:       page,
	}
	if s.logger == nil {
		s.logger = a.Logger
	}
	if s.now == nil {
		s.now = time.Now
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handlePage)

	mux.HandleFunc("POST /actions/playlist/add", s.handleActionAdd)
	mux.HandleFunc("POST /actions/playlist/remove", s.handleActionRemove)
	mux.HandleFunc("POST /actions/playlist/clear", s.handleActionClear)
	mux.HandleFunc("POST /actions/play", s.handleActionPlay)
	mux.HandleFunc("POST /actions/rate", s.handleActionRate)
	mux.HandleFunc("POST /actions/theme", s.handleActionTheme)
	mux.HandleFunc("POST /actions/background", s.handleActionBackground)
	mux.HandleFunc("POST /actions/quote", s.handleActionQuote)
	mux.HandleFunc("POST /actions/contact", s.handleActionContact)

	mux.HandleFunc("GET /api/tracks", s.handleTracks)
	mux.HandleFunc("GET /api/playlist", s.handlePlaylist)
	mux.HandleFunc("POST /api/playlist", authMiddleware(s.token, s.handlePlaylistAdd))
	mux.HandleFunc("DELETE /api/playlist", authMiddleware(s.token, s.handlePlaylistClear))
	mux.HandleFunc("DELETE /api/playlist/{id}", authMiddleware(s.token, s.handlePlaylistRemove))
	mux.HandleFunc("POST /api/playlist/prune", authMiddleware(s.token, s.handlePlaylistPrune))
	mux.HandleFunc("POST /api/play/{id}", authMiddleware(s.token, s.handlePlay))
	mux.HandleFunc("GET /api/ratings", s.handleRatings)
	mux.HandleFunc("GET /api/ratings/{key}", s.handleRating)
	mux.HandleFunc("PUT /api/ratings/{key}", authMiddleware(s.token, s.handleRate))
	mux.HandleFunc("GET /api/theme", s.handleTheme)
	mux.HandleFunc("POST /api/theme/toggle", authMiddleware(s.token, s.handleThemeToggle))
	mux.HandleFunc("GET /api/quote", s.handleQuote)
	mux.HandleFunc("POST /api/contact", s.handleContact)
	mux.HandleFunc("GET /api/clock", s.handleClock)
	mux.HandleFunc("GET /api/greeting", s.handleGreeting)
	mux.HandleFunc("GET /api/nav", s.handleNav)
	mux.HandleFunc("GET /api/status", s.handleStatus)

	s.handler = s.withRequestContext(mux)
	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Background exposes the page background cycle.
func (s *Server) Background() *Background {
	return s.background
}

// withRequestContext attaches a correlation id and a bump recorder to every
// request.
func (s *Server) withRequestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get("X-Request-ID"))
		if id == "" {
			id = logging.NewRequestID()
		}
		ctx := logging.WithRequestID(r.Context(), id)
		ctx = feedback.WithRecorder(ctx, &feedback.Recorder{})
		w.Header().Set("X-Request-ID", id)

		start := time.Now()
		next.ServeHTTP(w, r.WithContext(ctx))
		logging.WithContext(ctx, s.log()).Debug("request served",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.Duration("elapsed", time.Since(start)),
		)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	if targets := feedback.RecorderFrom(r.Context()).Targets(); len(targets) > 0 {
		w.Header().Set("X-Playbeat-Bump", strings.Join(targets, ","))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log().Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	s.writeJSON(w, r, status, map[string]string{"error": message})
}

// writeFailure maps service errors onto HTTP statuses.
func (s *Server) writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, api.ErrUnknownTrack):
		s.writeError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, rating.ErrInvalidRating):
		s.writeError(w, r, http.StatusBadRequest, err.Error())
	default:
		logging.ErrorWithContext(logging.WithContext(r.Context(), s.log()), "request failed", "request_failed",
			logging.String("path", r.URL.Path),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check data directory permissions and free space"),
			logging.String(logging.FieldImpact, "the change was not saved"),
		)
		s.writeError(w, r, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) log() *slog.Logger {
	if s.logger != nil {
		return s.logger.With(logging.String(logging.FieldComponent, "site"))
	}
	return logging.NewNop()
}
