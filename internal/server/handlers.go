package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/seedtech/candidate-matcher/internal/matching"
	"github.com/seedtech/candidate-matcher/internal/schemas"
	"github.com/seedtech/candidate-matcher/internal/similarity"
	"github.com/seedtech/candidate-matcher/internal/types"
)

// ScoreRequest is the request body for /score. Both persist and
// activate_tags default to true when omitted.
type ScoreRequest struct {
	Candidate    json.RawMessage `json:"candidate"`
	Job          json.RawMessage `json:"job"`
	ActivateTags *bool           `json:"activate_tags,omitempty"`
	Persist      *bool           `json:"persist,omitempty"`
}

// handleSelfTest scores the built-in reference pair.
func (s *Server) handleSelfTest(w http.ResponseWriter, r *http.Request) {
	result := s.matcher.SelfTest(r.Context())
	s.jsonResponse(w, http.StatusOK, result)
}

// handleScore scores a candidate-job pair supplied in the request body.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.Candidate) == 0 || len(req.Job) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "candidate and job are required")
		return
	}

	if err := schemas.ValidateCandidate(req.Candidate); err != nil {
		s.validationError(w, "candidate", err)
		return
	}
	if err := schemas.ValidateJob(req.Job); err != nil {
		s.validationError(w, "job", err)
		return
	}

	var candidate types.Candidate
	if err := json.Unmarshal(req.Candidate, &candidate); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid candidate: "+err.Error())
		return
	}
	var job types.Job
	if err := json.Unmarshal(req.Job, &job); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid job: "+err.Error())
		return
	}

	opts := matching.Options{ActivateTags: true, Persist: true}
	if req.ActivateTags != nil {
		opts.ActivateTags = *req.ActivateTags
	}
	if req.Persist != nil {
		opts.Persist = *req.Persist
	}

	result := s.matcher.Score(r.Context(), &candidate, &job, opts)
	s.jsonResponse(w, http.StatusOK, result)
}

func (s *Server) validationError(w http.ResponseWriter, payload string, err error) {
	var ve *schemas.ValidationError
	if errors.As(err, &ve) {
		fields := make([]map[string]string, 0, len(ve.Errors))
		for _, fe := range ve.Errors {
			fields = append(fields, map[string]string{"field": fe.Field, "message": fe.Message})
		}
		s.jsonResponse(w, http.StatusBadRequest, map[string]any{
			"error":   "invalid " + payload,
			"details": fields,
		})
		return
	}
	s.errorResponse(w, http.StatusBadRequest, "invalid "+payload+": "+err.Error())
}

// handleListJobs proxies the ATS job listing.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	if s.ats == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "ats integration not configured")
		return
	}

	jobs, err := s.ats.ListJobs(r.Context(), queryInt(r, "limit", 50))
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"jobs": jobs})
}

// handleListCandidates proxies the ATS candidate listing.
func (s *Server) handleListCandidates(w http.ResponseWriter, r *http.Request) {
	if s.ats == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "ats integration not configured")
		return
	}

	candidates, err := s.ats.ListCandidates(r.Context(), queryInt(r, "limit", 50))
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"candidates": candidates})
}

// handleMatchJob matches every candidate of one job posting.
func (s *Server) handleMatchJob(w http.ResponseWriter, r *http.Request) {
	if s.directory == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "ats integration not configured")
		return
	}

	shortcode := r.PathValue("shortcode")
	opts := matching.Options{ActivateTags: queryBool(r, "activate_tags", false)}

	report, err := s.matcher.MatchJobCandidates(r.Context(), s.directory, shortcode, queryInt(r, "top_n", 10), opts)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, report)
}

// handleMatchCandidate matches one candidate against one job posting.
func (s *Server) handleMatchCandidate(w http.ResponseWriter, r *http.Request) {
	if s.directory == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "ats integration not configured")
		return
	}

	candidateID := r.PathValue("candidate_id")
	shortcode := r.PathValue("shortcode")
	opts := matching.Options{ActivateTags: queryBool(r, "activate_tags", true)}

	report, err := s.matcher.MatchCandidate(r.Context(), s.directory, candidateID, shortcode, opts)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, report)
}

// handleExportTopMatches builds a ranked report for one job and optionally
// posts it as an ATS comment on the best candidate.
func (s *Server) handleExportTopMatches(w http.ResponseWriter, r *http.Request) {
	if s.directory == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "ats integration not configured")
		return
	}

	shortcode := r.PathValue("shortcode")
	export, err := s.matcher.ExportReport(r.Context(), s.directory, shortcode, queryInt(r, "top_n", 10), matching.Options{})
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, err.Error())
		return
	}

	if queryBool(r, "comment", false) && s.ats != nil && len(export.Data.TopMatches) > 0 {
		best := export.Data.TopMatches[0]
		if err := s.ats.AddComment(r.Context(), best.CandidateID, shortcode, export.MatchSummary); err != nil {
			s.errorResponse(w, http.StatusBadGateway, "export succeeded but comment failed: "+err.Error())
			return
		}
	}

	s.jsonResponse(w, http.StatusOK, export)
}

// handleCacheStats reports per-table similarity cache counts.
func (s *Server) handleCacheStats(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "database not configured")
		return
	}

	stats, err := s.store.CacheStats(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, stats)
}

// handleCacheHardSkills lists recent hard skill similarity entries.
func (s *Server) handleCacheHardSkills(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "database not configured")
		return
	}

	pairs, err := s.store.ListScores(r.Context(), similarity.KindHardSkill, queryInt(r, "limit", 100))
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"count":   len(pairs),
		"entries": pairs,
	})
}

func queryInt(r *http.Request, key string, fallback int) int {
	if raw := r.URL.Query().Get(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return fallback
}

func queryBool(r *http.Request, key string, fallback bool) bool {
	if raw := r.URL.Query().Get(key); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			return v
		}
	}
	return fallback
}
