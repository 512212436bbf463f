package site

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"playbeat/internal/api"
	"playbeat/internal/clock"
	"playbeat/internal/logging"
	"playbeat/internal/theme"
)

const maxBodyBytes = 64 << 10

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	return id, err == nil
}

// systemTheme reads the client's colour scheme hint.
func systemTheme(r *http.Request) theme.Theme {
	return theme.FromClientHint(r.Header.Get("Sec-CH-Prefers-Color-Scheme"))
}

func (s *Server) handleTracks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	s.writeJSON(w, r, http.StatusOK, s.svc.Tracks(r.Context(), query.Get("genre"), query.Get("q")))
}

func (s *Server) handlePlaylist(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, s.svc.Playlist(r.Context()))
}

func (s *Server) handlePlaylistAdd(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID int `json:"id"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	change, err := s.svc.AddToPlaylist(r.Context(), req.ID)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, change)
}

func (s *Server) handlePlaylistRemove(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.writeError(w, r, http.StatusBadRequest, "invalid track id")
		return
	}
	pl, err := s.svc.RemoveFromPlaylist(r.Context(), id)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, pl)
}

func (s *Server) handlePlaylistClear(w http.ResponseWriter, r *http.Request) {
	pl, err := s.svc.ClearPlaylist(r.Context())
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, pl)
}

func (s *Server) handlePlaylistPrune(w http.ResponseWriter, r *http.Request) {
	res, err := s.svc.PrunePlaylist(r.Context())
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, res)
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.writeError(w, r, http.StatusBadRequest, "invalid track id")
		return
	}
	res, err := s.svc.Play(r.Context(), id)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, res)
}

func (s *Server) handleRatings(w http.ResponseWriter, r *http.Request) {
	all, err := s.svc.Ratings(r.Context())
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, all)
}

func (s *Server) handleRating(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimSpace(r.PathValue("key"))
	if key == "" {
		s.writeError(w, r, http.StatusBadRequest, "rating key required")
		return
	}
	s.writeJSON(w, r, http.StatusOK, s.svc.Rating(r.Context(), key))
}

func (s *Server) handleRate(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimSpace(r.PathValue("key"))
	if key == "" {
		s.writeError(w, r, http.StatusBadRequest, "rating key required")
		return
	}
	var req api.RatingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	res, err := s.svc.Rate(r.Context(), key, req)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, res)
}

func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Accept-CH", "Sec-CH-Prefers-Color-Scheme")
	s.writeJSON(w, r, http.StatusOK, s.svc.Theme(r.Context(), systemTheme(r)))
}

func (s *Server) handleThemeToggle(w http.ResponseWriter, r *http.Request) {
	res, err := s.svc.ToggleTheme(r.Context(), systemTheme(r))
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, res)
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	q, err := s.svc.Quote(r.Context())
	if err != nil {
		s.writeError(w, r, http.StatusServiceUnavailable, err.Error())
		return
	}
	s.writeJSON(w, r, http.StatusOK, q)
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	if !s.limiter.allow(r) {
		logging.WarnWithContext(logging.WithContext(r.Context(), s.log()), "contact rate limit exceeded", "contact_rate_limited",
			logging.String("client", clientIP(r)),
			logging.String(logging.FieldErrorHint, "raise site.contact_rate_per_minute if legitimate traffic is throttled"),
			logging.String(logging.FieldImpact, "contact message rejected"),
		)
		s.writeError(w, r, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}
	var req api.ContactRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	s.writeJSON(w, r, http.StatusOK, s.svc.Contact(r.Context(), req))
}

// handleClock streams one server-sent event per tick. ?count=N stops after N
// ticks.
func (s *Server) handleClock(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("count"))
	rc := http.NewResponseController(w)
	_ = rc.SetWriteDeadline(time.Time{})

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	sent := 0
	err := clock.Run(r.Context(), s.interval, s.now, func(reading clock.Reading) bool {
		payload, err := json.Marshal(api.Clock{Date: reading.Date, Time: reading.Time})
		if err != nil {
			return false
		}
		if _, err := fmt.Fprintf(w, "event: tick\ndata: %s\n\n", payload); err != nil {
			return false
		}
		if err := rc.Flush(); err != nil {
			return false
		}
		sent++
		return limit <= 0 || sent < limit
	})
	if err != nil {
		s.log().Debug("clock stream closed", logging.Error(err), logging.Int("ticks", sent))
	}
}

func (s *Server) handleGreeting(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	s.writeJSON(w, r, http.StatusOK, api.Greeting{Name: name, Message: Greeting(name)})
}

// handleNav applies one key press to the header link ring.
func (s *Server) handleNav(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	index, _ := strconv.Atoi(query.Get("index"))
	ring := NewRing(len(s.site.Nav), index)
	moved := ring.HandleKey(query.Get("key"), strings.ToUpper(query.Get("focus")))
	resp := struct {
		Index int    `json:"index"`
		Moved bool   `json:"moved"`
		Href  string `json:"href,omitempty"`
	}{Index: ring.Index(), Moved: moved}
	if len(s.site.Nav) > 0 {
		resp.Href = s.site.Nav[ring.Index()].Href
	}
	s.writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	var status api.Status
	if s.status != nil {
		status = s.status(r.Context())
	} else {
		status = s.svc.Status(r.Context())
		status.APIBind = s.svc.App().Config.Paths.APIBind
	}
	s.writeJSON(w, r, http.StatusOK, status)
}
