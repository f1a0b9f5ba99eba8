package api

import (
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/dsamastery/internal/errors"
	"github.com/vytor/dsamastery/internal/logger"
	"github.com/vytor/dsamastery/internal/progress"
	"github.com/vytor/dsamastery/internal/services"
)

const exportFileName = "dsa-mastery-progress.json"

type conceptRequest struct {
	Notes string `json:"notes"`
}

type solveRequest struct {
	TimeSpent *int   `json:"timeSpent"`
	Notes     string `json:"notes"`
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.ProgressService.Progress(r.Context()))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.ProgressService.Stats(r.Context()))
}

func (s *Server) handleExportProgress(w http.ResponseWriter, r *http.Request) {
	data, err := s.ProgressService.Export(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFileName))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleImportProgress(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		log.Warn("failed to read import body: %v", err)
		handleError(w, r, errors.NewBadRequestError(fmt.Sprintf("failed to read body: %v", err)))
		return
	}

	rec, err := s.ProgressService.Import(r.Context(), data)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, rec)
}

func (s *Server) handleResetProgress(w http.ResponseWriter, r *http.Request) {
	s.ProgressService.Reset(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePreferences(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.ProgressService.Preferences(r.Context()))
}

func (s *Server) handleUpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var update progress.PreferencesUpdate
	if err := decodeJSON(w, r, &update, false); err != nil {
		handleError(w, r, err)
		return
	}
	prefs, err := s.ProgressService.UpdatePreferences(r.Context(), update)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, prefs)
}

func (s *Server) handleTopicProgress(w http.ResponseWriter, r *http.Request) {
	summary, err := s.ProgressService.TopicProgress(r.Context(), chi.URLParam(r, "topicID"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, summary)
}

func (s *Server) handleCompleteConcept(w http.ResponseWriter, r *http.Request) {
	var req conceptRequest
	if err := decodeJSON(w, r, &req, true); err != nil {
		handleError(w, r, err)
		return
	}
	cp, err := s.ProgressService.CompleteConcept(r.Context(), chi.URLParam(r, "topicID"), chi.URLParam(r, "conceptID"), req.Notes)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, cp)
}

func (s *Server) handleUncompleteConcept(w http.ResponseWriter, r *http.Request) {
	if err := s.ProgressService.UncompleteConcept(r.Context(), chi.URLParam(r, "topicID"), chi.URLParam(r, "conceptID")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleToggleConcept(w http.ResponseWriter, r *http.Request) {
	completed, err := s.ProgressService.ToggleConcept(r.Context(), chi.URLParam(r, "topicID"), chi.URLParam(r, "conceptID"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]bool{"completed": completed})
}

func (s *Server) handleUpdateProblem(w http.ResponseWriter, r *http.Request) {
	var patch services.ProblemPatch
	if err := decodeJSON(w, r, &patch, false); err != nil {
		handleError(w, r, err)
		return
	}
	pp, err := s.ProgressService.UpdateProblem(r.Context(), chi.URLParam(r, "topicID"), chi.URLParam(r, "problemID"), patch)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, pp)
}

func (s *Server) handleSolveProblem(w http.ResponseWriter, r *http.Request) {
	var req solveRequest
	if err := decodeJSON(w, r, &req, true); err != nil {
		handleError(w, r, err)
		return
	}
	pp, err := s.ProgressService.SolveProblem(r.Context(), chi.URLParam(r, "topicID"), chi.URLParam(r, "problemID"), req.TimeSpent, req.Notes)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, pp)
}
