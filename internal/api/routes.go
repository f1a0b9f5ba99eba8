package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Get("/progress", s.handleProgress)
		r.Get("/progress/export", s.handleExportProgress)
		r.Post("/progress/import", s.handleImportProgress)
		r.Post("/progress/reset", s.handleResetProgress)
		r.Get("/stats", s.handleStats)
		r.Get("/preferences", s.handlePreferences)
		r.Patch("/preferences", s.handleUpdatePreferences)

		r.Route("/topics/{topicID}", func(r chi.Router) {
			r.Get("/progress", s.handleTopicProgress)
			r.Post("/concepts/{conceptID}", s.handleCompleteConcept)
			r.Delete("/concepts/{conceptID}", s.handleUncompleteConcept)
			r.Post("/concepts/{conceptID}/toggle", s.handleToggleConcept)
			r.Patch("/problems/{problemID}", s.handleUpdateProblem)
			r.Post("/problems/{problemID}/solve", s.handleSolveProblem)
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/hero", s.handleHero)
			r.Get("/mastery", s.handleMastery)
			r.Get("/patterns", s.handlePatternCoverage)
			r.Get("/heatmap", s.handleHeatmap)
			r.Get("/actions", s.handleSmartActions)
			r.Get("/companies", s.handleCompanyReadiness)
		})

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/weekly", s.handleWeeklyActivity)
			r.Get("/pattern-gaps", s.handlePatternGaps)
			r.Get("/review-queue", s.handleReviewQueue)
			r.Get("/calibration", s.handleCalibration)
			r.Get("/solve-times", s.handleSolveTimes)
			r.Get("/deep-dive", s.handleDeepDive)
			r.Get("/milestones", s.handleMilestones)
		})

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/topics", s.handleTopics)
			r.Get("/topics/{id}", s.handleTopicDetail)
			r.Get("/problems", s.handleProblems)
			r.Get("/problems/{id}", s.handleProblem)
			r.Get("/patterns", s.handlePatterns)
			r.Get("/concepts", s.handleConcepts)
			r.Get("/resources", s.handleResources)
			r.Get("/companies", s.handleCompanies)
			r.Get("/stats", s.handleCatalogStats)
		})

		r.Get("/reading", s.handleReading)
		r.Post("/reading/{topicID}/*", s.handleMarkChapterRead)
		r.Delete("/reading", s.handleResetReading)

		r.Get("/ui/theme", s.handleTheme)
		r.Put("/ui/theme", s.handleSetTheme)
		r.Post("/ui/theme/toggle", s.handleToggleTheme)
		r.Get("/ui/sidebar", s.handleSidebar)
		r.Put("/ui/sidebar", s.handleSetSidebar)

		r.Get("/content/manifest", s.handleContentManifest)
		r.Post("/content/cache/clear", s.handleClearContentCache)
		r.Get("/content/{topicID}", s.handleTopicContent)
		r.Get("/content/{topicID}/*", s.handleChapter)
	})

	return r
}
