package api

import "net/http"

func (s *Server) handleHero(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.DashboardService.Hero(r.Context()))
}

func (s *Server) handleMastery(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.DashboardService.Mastery(r.Context()))
}

func (s *Server) handlePatternCoverage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.DashboardService.PatternCoverage(r.Context()))
}

func (s *Server) handleHeatmap(w http.ResponseWriter, r *http.Request) {
	weeks, err := queryInt(r, "weeks")
	if err != nil {
		handleError(w, r, err)
		return
	}
	days, err := s.DashboardService.Heatmap(r.Context(), weeks)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, days)
}

func (s *Server) handleSmartActions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.DashboardService.SmartActions(r.Context()))
}

func (s *Server) handleCompanyReadiness(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		handleError(w, r, err)
		return
	}
	companies, err := s.DashboardService.CompanyReadiness(r.Context(), limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, companies)
}

func (s *Server) handleWeeklyActivity(w http.ResponseWriter, r *http.Request) {
	weeks, err := queryInt(r, "weeks")
	if err != nil {
		handleError(w, r, err)
		return
	}
	weekly, err := s.DashboardService.WeeklyActivity(r.Context(), weeks)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, weekly)
}

func (s *Server) handlePatternGaps(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.DashboardService.PatternGaps(r.Context()))
}

func (s *Server) handleReviewQueue(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.DashboardService.ReviewQueue(r.Context()))
}

func (s *Server) handleCalibration(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.DashboardService.Calibration(r.Context()))
}

func (s *Server) handleSolveTimes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.DashboardService.SolveTimes(r.Context()))
}

func (s *Server) handleDeepDive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.DashboardService.DeepDive(r.Context()))
}

func (s *Server) handleMilestones(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.DashboardService.Milestones(r.Context()))
}
