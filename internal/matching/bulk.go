package matching

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/seedtech/candidate-matcher/internal/types"
)

// Directory supplies job and candidate profiles from the applicant tracking
// system, already parsed into the internal model.
type Directory interface {
	Job(ctx context.Context, shortcode string) (*types.Job, error)
	JobCandidates(ctx context.Context, shortcode string) ([]types.CandidateRef, error)
	Candidate(ctx context.Context, id string) (*types.Candidate, error)
}

// Result provenance markers.
const (
	SourceDatabase         = "database"
	SourceFreshCalculation = "fresh_calculation"
)

// MatchEntry is one candidate's outcome within a bulk run.
type MatchEntry struct {
	CandidateID   string               `json:"candidate_id"`
	CandidateName string               `json:"candidate_name"`
	Score         float64              `json:"score"`
	Details       types.MatchBreakdown `json:"details"`
	Source        string               `json:"source"`
}

// JobMatchReport is the outcome of matching every candidate of one job.
type JobMatchReport struct {
	JobID               string       `json:"job_id"`
	JobTitle            string       `json:"job_title,omitempty"`
	TotalCandidates     int          `json:"total_candidates"`
	ProcessedCandidates int          `json:"processed_candidates"`
	TopMatches          []MatchEntry `json:"top_matches"`
	Source              string       `json:"source,omitempty"`
}

// MatchJobCandidates scores every candidate attached to a job and returns
// the topN best matches. Stored results younger than 24 hours are reused;
// when enough of them exist the run returns without touching the directory
// at all. Individual candidate failures are logged and skipped.
func (m *Matcher) MatchJobCandidates(ctx context.Context, dir Directory, shortcode string, topN int, opts Options) (*JobMatchReport, error) {
	if topN <= 0 {
		topN = 10
	}

	if m.store != nil {
		stored, err := m.store.TopMatches(ctx, shortcode, topN)
		if err != nil {
			m.log.Warn("stored top matches lookup failed", zap.String("job_id", shortcode), zap.Error(err))
		} else {
			fresh := make([]MatchEntry, 0, len(stored))
			for _, result := range stored {
				if time.Since(time.Unix(result.Timestamp, 0)) >= resultFreshness {
					continue
				}
				fresh = append(fresh, MatchEntry{
					CandidateID:   result.CandidateID,
					CandidateName: result.Details.CandidateName,
					Score:         result.TotalScore,
					Details:       result.Details,
					Source:        SourceDatabase,
				})
			}
			if len(fresh) >= topN {
				return &JobMatchReport{
					JobID:               shortcode,
					TotalCandidates:     len(fresh),
					ProcessedCandidates: len(fresh),
					TopMatches:          fresh,
					Source:              SourceDatabase,
				}, nil
			}
		}
	}

	job, err := dir.Job(ctx, shortcode)
	if err != nil {
		return nil, fmt.Errorf("fetching job %s: %w", shortcode, err)
	}
	job.ID = shortcode

	refs, err := dir.JobCandidates(ctx, shortcode)
	if err != nil {
		return nil, fmt.Errorf("fetching candidates for job %s: %w", shortcode, err)
	}

	opts.Persist = true
	var matches []MatchEntry
	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if m.store != nil {
			existing, err := m.store.GetMatch(ctx, shortcode, ref.ID)
			if err != nil {
				m.log.Warn("match result lookup failed", zap.String("candidate_id", ref.ID), zap.Error(err))
			} else if existing != nil && time.Since(time.Unix(existing.Timestamp, 0)) < resultFreshness {
				matches = append(matches, MatchEntry{
					CandidateID:   ref.ID,
					CandidateName: existing.Details.CandidateName,
					Score:         existing.TotalScore,
					Details:       existing.Details,
					Source:        SourceDatabase,
				})
				continue
			}
		}

		candidate, err := dir.Candidate(ctx, ref.ID)
		if err != nil {
			m.log.Warn("skipping candidate", zap.String("candidate_id", ref.ID), zap.Error(err))
			continue
		}
		candidate.ID = ref.ID

		result := m.Score(ctx, candidate, job, opts)
		matches = append(matches, MatchEntry{
			CandidateID:   ref.ID,
			CandidateName: candidate.Name,
			Score:         result.TotalScore,
			Details:       *result,
			Source:        SourceFreshCalculation,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > topN {
		matches = matches[:topN]
	}

	return &JobMatchReport{
		JobID:               shortcode,
		JobTitle:            job.Title,
		TotalCandidates:     len(refs),
		ProcessedCandidates: len(matches),
		TopMatches:          matches,
	}, nil
}

// CandidateMatchReport is a single candidate-job match with provenance.
type CandidateMatchReport struct {
	types.MatchBreakdown
	JobShortcode string `json:"job_shortcode"`
	JobTitle     string `json:"job_title,omitempty"`
	CandidateID  string `json:"candidate_id"`
	Source       string `json:"source"`
}

// MatchCandidate scores one candidate against one job, both fetched from the
// directory unless a fresh stored result exists.
func (m *Matcher) MatchCandidate(ctx context.Context, dir Directory, candidateID, shortcode string, opts Options) (*CandidateMatchReport, error) {
	if m.store != nil {
		existing, err := m.store.GetMatch(ctx, shortcode, candidateID)
		if err != nil {
			m.log.Warn("match result lookup failed", zap.String("candidate_id", candidateID), zap.Error(err))
		} else if existing != nil && time.Since(time.Unix(existing.Timestamp, 0)) < resultFreshness {
			return &CandidateMatchReport{
				MatchBreakdown: existing.Details,
				JobShortcode:   shortcode,
				CandidateID:    candidateID,
				Source:         SourceDatabase,
			}, nil
		}
	}

	job, err := dir.Job(ctx, shortcode)
	if err != nil {
		return nil, fmt.Errorf("fetching job %s: %w", shortcode, err)
	}
	job.ID = shortcode

	candidate, err := dir.Candidate(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("fetching candidate %s: %w", candidateID, err)
	}
	candidate.ID = candidateID

	opts.Persist = true
	result := m.Score(ctx, candidate, job, opts)
	return &CandidateMatchReport{
		MatchBreakdown: *result,
		JobShortcode:   shortcode,
		JobTitle:       job.Title,
		CandidateID:    candidateID,
		Source:         SourceFreshCalculation,
	}, nil
}

// ExportResult wraps a bulk run with a human readable summary suitable for
// posting as an ATS comment.
type ExportResult struct {
	JobShortcode    string          `json:"job_shortcode"`
	JobTitle        string          `json:"job_title"`
	MatchDate       string          `json:"match_date"`
	ExportedMatches int             `json:"exported_matches"`
	MatchSummary    string          `json:"match_summary"`
	Data            *JobMatchReport `json:"data"`
}

// ExportReport runs a bulk match and formats the top candidates as a
// markdown report.
func (m *Matcher) ExportReport(ctx context.Context, dir Directory, shortcode string, topN int, opts Options) (*ExportResult, error) {
	report, err := m.MatchJobCandidates(ctx, dir, shortcode, topN, opts)
	if err != nil {
		return nil, err
	}

	jobTitle := report.JobTitle
	if jobTitle == "" {
		jobTitle = shortcode
	}
	date := time.Now().Format("2006-01-02")

	var sb strings.Builder
	fmt.Fprintf(&sb, "## Top %d Correspondances de Candidats\n\n", topN)
	fmt.Fprintf(&sb, "Offre d'emploi : %s\n", jobTitle)
	fmt.Fprintf(&sb, "Date : %s\n\n", date)

	for i, match := range report.TopMatches {
		fmt.Fprintf(&sb, "%d. **%s** - %.1f%%\n", i+1, match.CandidateName, match.Score*100)
		fmt.Fprintf(&sb, "   - Compétences techniques : %.1f%%\n", match.Details.HardSkillScore*100)
		fmt.Fprintf(&sb, "   - Expérience : %.1f%%\n", match.Details.ExperienceScore*100)
		fmt.Fprintf(&sb, "   - Formation : %.1f%%\n", match.Details.DegreeScore*100)
		fmt.Fprintf(&sb, "   - Langues : %.1f%%\n\n", match.Details.LanguageScore*100)
	}

	return &ExportResult{
		JobShortcode:    shortcode,
		JobTitle:        jobTitle,
		MatchDate:       date,
		ExportedMatches: len(report.TopMatches),
		MatchSummary:    sb.String(),
		Data:            report,
	}, nil
}
