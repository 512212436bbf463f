package site

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"playbeat/internal/api"
	"playbeat/internal/feedback"
	"playbeat/internal/logging"
	"playbeat/internal/rating"
)

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, http.StatusOK, readViewState(r.URL.Query()), nil)
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, state viewState, form *api.ContactResponse) {
	data := s.buildPage(r.Context(), r, state, form)
	var buf bytes.Buffer
	if err := s.page.Execute(&buf, data); err != nil {
		logging.ErrorWithContext(logging.WithContext(r.Context(), s.log()), "page render failed", "page_render_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check the embedded page template"),
		)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Accept-CH", "Sec-CH-Prefers-Color-Scheme")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// redirect sends the browser back to the page with the view state and any
// regions bumped while handling the action.
func (s *Server) redirect(w http.ResponseWriter, r *http.Request, state viewState) {
	values := state.values()
	if targets := feedback.RecorderFrom(r.Context()).Targets(); len(targets) > 0 {
		values.Set("bump", strings.Join(targets, ","))
	}
	location := "/"
	if encoded := values.Encode(); encoded != "" {
		location += "?" + encoded
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}

func (s *Server) actionFailed(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, api.ErrUnknownTrack) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	logging.ErrorWithContext(logging.WithContext(r.Context(), s.log()), "page action failed", "page_action_failed",
		logging.String("path", r.URL.Path),
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "check data directory permissions and free space"),
		logging.String(logging.FieldImpact, "the change was not saved"),
	)
	http.Error(w, "action failed", http.StatusInternalServerError)
}

func formState(r *http.Request) viewState {
	if err := r.ParseForm(); err != nil {
		return readViewState(nil)
	}
	return readViewState(r.PostForm)
}

func formID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(strings.TrimSpace(r.PostFormValue("id")))
	return id, err == nil
}

func (s *Server) handleActionAdd(w http.ResponseWriter, r *http.Request) {
	state := formState(r)
	id, ok := formID(r)
	if !ok {
		http.Error(w, "invalid track id", http.StatusBadRequest)
		return
	}
	if _, err := s.svc.AddToPlaylist(r.Context(), id); err != nil {
		s.actionFailed(w, r, err)
		return
	}
	s.redirect(w, r, state)
}

func (s *Server) handleActionRemove(w http.ResponseWriter, r *http.Request) {
	state := formState(r)
	id, ok := formID(r)
	if !ok {
		http.Error(w, "invalid track id", http.StatusBadRequest)
		return
	}
	if _, err := s.svc.RemoveFromPlaylist(r.Context(), id); err != nil {
		s.actionFailed(w, r, err)
		return
	}
	s.redirect(w, r, state)
}

func (s *Server) handleActionClear(w http.ResponseWriter, r *http.Request) {
	state := formState(r)
	if _, err := s.svc.ClearPlaylist(r.Context()); err != nil {
		s.actionFailed(w, r, err)
		return
	}
	s.redirect(w, r, state)
}

func (s *Server) handleActionPlay(w http.ResponseWriter, r *http.Request) {
	state := formState(r)
	id, ok := formID(r)
	if !ok {
		http.Error(w, "invalid track id", http.StatusBadRequest)
		return
	}
	if _, err := s.svc.Play(r.Context(), id); err != nil {
		s.actionFailed(w, r, err)
		return
	}
	s.redirect(w, r, state)
}

func (s *Server) handleActionRate(w http.ResponseWriter, r *http.Request) {
	state := formState(r)
	value, err := strconv.Atoi(r.PostFormValue("value"))
	key := strings.TrimSpace(r.PostFormValue("key"))
	if err != nil || key == "" {
		http.Error(w, "invalid rating", http.StatusBadRequest)
		return
	}
	if _, err := s.svc.Rate(r.Context(), key, api.RatingRequest{Value: value}); err != nil {
		if errors.Is(err, rating.ErrInvalidRating) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.actionFailed(w, r, err)
		return
	}
	s.redirect(w, r, state)
}

func (s *Server) handleActionTheme(w http.ResponseWriter, r *http.Request) {
	state := formState(r)
	if _, err := s.svc.ToggleTheme(r.Context(), systemTheme(r)); err != nil {
		s.actionFailed(w, r, err)
		return
	}
	s.redirect(w, r, state)
}

func (s *Server) handleActionBackground(w http.ResponseWriter, r *http.Request) {
	state := formState(r)
	s.background.Next(r.Context())
	s.redirect(w, r, state)
}

func (s *Server) handleActionQuote(w http.ResponseWriter, r *http.Request) {
	state := formState(r)
	q, err := s.svc.Quote(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	state.Quote = quoteIndex(q.Text)
	s.redirect(w, r, state)
}

func (s *Server) handleActionContact(w http.ResponseWriter, r *http.Request) {
	state := formState(r)
	req := api.ContactRequest{
		Name:    r.PostFormValue("contact_name"),
		Email:   r.PostFormValue("contact_email"),
		Message: r.PostFormValue("contact_message"),
	}
	if !s.limiter.allow(r) {
		resp := api.ContactResponse{Status: "Too many messages. Please try again shortly.", Form: req}
		s.renderPage(w, r, http.StatusTooManyRequests, state, &resp)
		return
	}
	resp := s.svc.Contact(r.Context(), req)
	if resp.Sent {
		state.Sent = true
		s.redirect(w, r, state)
		return
	}
	s.renderPage(w, r, http.StatusOK, state, &resp)
}
