package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/dsamastery/internal/models"
)

type themeRequest struct {
	Theme models.Theme `json:"theme"`
}

type sidebarRequest struct {
	Collapsed bool `json:"collapsed"`
}

func (s *Server) handleContentManifest(w http.ResponseWriter, r *http.Request) {
	manifest, err := s.ContentService.Manifest(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, manifest)
}

func (s *Server) handleTopicContent(w http.ResponseWriter, r *http.Request) {
	view, err := s.ContentService.Topic(r.Context(), chi.URLParam(r, "topicID"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}

// handleChapter serves the chapter whose manifest path is the rest of the URL.
func (s *Server) handleChapter(w http.ResponseWriter, r *http.Request) {
	view, err := s.ContentService.Chapter(r.Context(), chi.URLParam(r, "topicID"), chi.URLParam(r, "*"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleClearContentCache(w http.ResponseWriter, r *http.Request) {
	s.ContentService.ClearCache(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReading(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.ContentService.Reading(r.Context()))
}

func (s *Server) handleMarkChapterRead(w http.ResponseWriter, r *http.Request) {
	entry, err := s.ContentService.MarkRead(r.Context(), chi.URLParam(r, "topicID"), chi.URLParam(r, "*"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, entry)
}

func (s *Server) handleResetReading(w http.ResponseWriter, r *http.Request) {
	s.ContentService.ResetReading(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, themeRequest{Theme: s.UIService.Theme(r.Context())})
}

func (s *Server) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	var req themeRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		handleError(w, r, err)
		return
	}
	theme, err := s.UIService.SetTheme(r.Context(), req.Theme)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, themeRequest{Theme: theme})
}

func (s *Server) handleToggleTheme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, themeRequest{Theme: s.UIService.ToggleTheme(r.Context())})
}

func (s *Server) handleSidebar(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, sidebarRequest{Collapsed: s.UIService.SidebarCollapsed(r.Context())})
}

func (s *Server) handleSetSidebar(w http.ResponseWriter, r *http.Request) {
	var req sidebarRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, sidebarRequest{Collapsed: s.UIService.SetSidebarCollapsed(r.Context(), req.Collapsed)})
}
