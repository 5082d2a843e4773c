// Package matching orchestrates full candidate-job scoring runs: result
// caching, tag prefiltering, parallel dimension scoring and persistence.
package matching

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/seedtech/candidate-matcher/internal/scoring"
	"github.com/seedtech/candidate-matcher/internal/types"
)

// ResultStore persists and retrieves computed match results.
type ResultStore interface {
	GetMatch(ctx context.Context, jobID, candidateID string) (*types.MatchResult, error)
	UpsertMatch(ctx context.Context, result *types.MatchResult) error
	TopMatches(ctx context.Context, jobID string, limit int) ([]types.MatchResult, error)
}

// Stored results younger than this are served as-is instead of recomputing.
const resultFreshness = 24 * time.Hour

// ReasonNoCommonTags marks results short-circuited by the tag prefilter.
const ReasonNoCommonTags = "Aucun tag commun"

// Options control one scoring run.
type Options struct {
	// ActivateTags enables the tag prefilter: candidate and job must share
	// at least one tag or the run short-circuits to a zero score.
	ActivateTags bool
	// Persist stores the result when both candidate and job carry an ID.
	Persist bool
}

// Matcher combines the scoring engine with result persistence.
type Matcher struct {
	engine *scoring.Engine
	store  ResultStore
	log    *zap.Logger
}

// New builds a matcher. store may be nil; results are then neither cached
// nor persisted.
func New(engine *scoring.Engine, store ResultStore, log *zap.Logger) *Matcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Matcher{engine: engine, store: store, log: log}
}

// commonTags returns the case-insensitive tag intersection, sorted.
func commonTags(candidateTags, jobTags []string) []string {
	jobSet := make(map[string]bool, len(jobTags))
	for _, tag := range jobTags {
		jobSet[strings.ToLower(tag)] = true
	}

	seen := make(map[string]bool)
	var common []string
	for _, tag := range candidateTags {
		lower := strings.ToLower(tag)
		if jobSet[lower] && !seen[lower] {
			seen[lower] = true
			common = append(common, lower)
		}
	}
	sort.Strings(common)
	return common
}

// tagBonus rewards tag overlap: two shared tags add 5%, three or more 10%.
func tagBonus(numCommon int) float64 {
	switch {
	case numCommon >= 3:
		return 0.10
	case numCommon == 2:
		return 0.05
	default:
		return 0
	}
}

// Score computes the full match breakdown for one candidate and one job.
// When both carry IDs and a result younger than 24 hours is stored, that
// result is returned without recomputation.
func (m *Matcher) Score(ctx context.Context, candidate *types.Candidate, job *types.Job, opts Options) *types.MatchBreakdown {
	if m.store != nil && candidate.ID != "" && job.ID != "" {
		cached, err := m.store.GetMatch(ctx, job.ID, candidate.ID)
		if err != nil {
			m.log.Warn("match result lookup failed",
				zap.String("job_id", job.ID),
				zap.String("candidate_id", candidate.ID),
				zap.Error(err))
		} else if cached != nil && time.Since(time.Unix(cached.Timestamp, 0)) < resultFreshness {
			return &cached.Details
		}
	}

	start := time.Now()

	var common []string
	if opts.ActivateTags {
		common = commonTags(candidate.Tags, job.Tags)
		if len(common) == 0 {
			result := &types.MatchBreakdown{
				CandidateName:    candidate.Name,
				Reason:           ReasonNoCommonTags,
				SoftSkillDetails: []types.SoftSkillDetail{},
				CommonTags:       []string{},
			}
			m.persist(ctx, candidate, job, result, opts)
			return result
		}
	}
	bonus := tagBonus(len(common))

	weights := m.engine.AdaptiveWeights(job)

	var (
		expScore    float64
		expDetails  []types.ExperienceDetail
		degScore    float64
		degDetails  *types.DegreeDetail
		hardScore   float64
		hardDetails map[string]types.HardSkillDetail
		softScore   float64
		softDetails []types.SoftSkillDetail
		langScore   float64
		langDetails map[string]types.LanguageDetail
		salScore    float64
		remoteScore float64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(m.guarded(scoring.DimExperience, func() {
		expScore, expDetails = m.engine.CompareExperiences(gctx, candidate.Experiences, job.RequiredExperiences)
	}))
	g.Go(m.guarded(scoring.DimDegree, func() {
		degScore, degDetails = m.engine.DiplomaScore(gctx, candidate.Degree, job.RequiredDegree)
	}))
	g.Go(m.guarded(scoring.DimHardSkills, func() {
		hardScore, hardDetails = m.engine.CompareHardSkills(gctx, candidate.HardSkills, job.HardSkills)
	}))
	g.Go(m.guarded(scoring.DimSoftSkills, func() {
		softScore, softDetails = m.engine.CompareSoftSkills(gctx, candidate.SoftSkills, job.RequiredSoftSkills)
	}))
	g.Go(m.guarded(scoring.DimLanguages, func() {
		langScore, langDetails = m.engine.CompareLanguages(candidate.Languages, job.RequiredLanguages)
	}))
	g.Go(m.guarded(scoring.DimSalary, func() {
		salScore = scoring.SalaryScore(candidate.MinSalary, job.Salary)
	}))
	g.Go(m.guarded(scoring.DimRemoteWork, func() {
		remoteScore = scoring.RemoteWorkScore(candidate.WantsRemote, job.OffersRemote)
	}))
	_ = g.Wait()

	weighted := map[string]float64{
		scoring.DimHardSkills: weights[scoring.DimHardSkills] * hardScore,
		scoring.DimSoftSkills: weights[scoring.DimSoftSkills] * softScore,
		scoring.DimExperience: weights[scoring.DimExperience] * expScore,
		scoring.DimDegree:     weights[scoring.DimDegree] * degScore,
		scoring.DimSalary:     weights[scoring.DimSalary] * salScore,
		scoring.DimRemoteWork: weights[scoring.DimRemoteWork] * remoteScore,
		scoring.DimLanguages:  weights[scoring.DimLanguages] * langScore,
	}

	var total float64
	for _, w := range weighted {
		total += w
	}
	// The bonus multiplier may push the total slightly above 1.0; callers
	// treat the score as a ranking value, so it is not clamped.
	total *= 1 + bonus

	if common == nil {
		common = []string{}
	}
	if softDetails == nil {
		softDetails = []types.SoftSkillDetail{}
	}

	result := &types.MatchBreakdown{
		TotalScore:        total,
		CandidateName:     candidate.Name,
		WeightedScores:    weighted,
		Weights:           weights,
		ExperienceScore:   expScore,
		ExperienceDetails: expDetails,
		DegreeScore:       degScore,
		DegreeDetails:     degDetails,
		SalaryScore:       salScore,
		RemoteWorkScore:   remoteScore,
		HardSkillScore:    hardScore,
		HardSkillDetails:  hardDetails,
		LanguageScore:     langScore,
		LanguageDetails:   langDetails,
		SoftSkillScore:    softScore,
		SoftSkillDetails:  softDetails,
		TagBonus:          bonus,
		CommonTags:        common,
		ComputationTime:   time.Since(start).Seconds(),
	}

	m.persist(ctx, candidate, job, result, opts)
	return result
}

// guarded wraps one scorer so a panic in a single dimension degrades that
// dimension to its zero value instead of failing the whole run.
func (m *Matcher) guarded(dimension string, fn func()) func() error {
	return func() error {
		defer func() {
			if r := recover(); r != nil {
				m.log.Error("dimension scorer panicked",
					zap.String("dimension", dimension),
					zap.Any("panic", r))
			}
		}()
		fn()
		return nil
	}
}

func (m *Matcher) persist(ctx context.Context, candidate *types.Candidate, job *types.Job, result *types.MatchBreakdown, opts Options) {
	if !opts.Persist || m.store == nil || candidate.ID == "" || job.ID == "" {
		return
	}
	err := m.store.UpsertMatch(ctx, &types.MatchResult{
		JobID:       job.ID,
		CandidateID: candidate.ID,
		TotalScore:  result.TotalScore,
		Details:     *result,
		Timestamp:   time.Now().Unix(),
	})
	if err != nil {
		m.log.Warn("failed to persist match result",
			zap.String("job_id", job.ID),
			zap.String("candidate_id", candidate.ID),
			zap.Error(err))
	}
}
