package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/dsamastery/internal/models"
	"github.com/vytor/dsamastery/internal/services"
)

func (s *Server) handleTopics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.CatalogService.Topics(r.Context()))
}

func (s *Server) handleTopicDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := s.CatalogService.Topic(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, detail)
}

// handleProblems filters by the difficulty, pattern, topic, status, q and
// sort query parameters.
func (s *Server) handleProblems(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := services.ProblemFilter{
		Difficulty: models.Difficulty(q.Get("difficulty")),
		Pattern:    q.Get("pattern"),
		TopicID:    q.Get("topic"),
		Status:     models.ProblemStatus(q.Get("status")),
		Query:      q.Get("q"),
		Sort:       services.ProblemSort(q.Get("sort")),
	}
	problems, err := s.CatalogService.ListProblems(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, problems)
}

func (s *Server) handleProblem(w http.ResponseWriter, r *http.Request) {
	problem, err := s.CatalogService.Problem(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, problem)
}

func (s *Server) handlePatterns(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.CatalogService.Patterns(r.Context()))
}

func (s *Server) handleConcepts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.CatalogService.Concepts(r.Context(), r.URL.Query().Get("topic")))
}

func (s *Server) handleResources(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	writeJSON(w, r, http.StatusOK, s.CatalogService.Resources(r.Context(), q.Get("topic"), q.Get("type")))
}

func (s *Server) handleCompanies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.CatalogService.Companies(r.Context()))
}

func (s *Server) handleCatalogStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.CatalogService.Stats(r.Context()))
}
