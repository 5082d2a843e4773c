package matching

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seedtech/candidate-matcher/internal/scoring"
	"github.com/seedtech/candidate-matcher/internal/types"
)

// stubSimilarity rates identical texts 1.0, known pairs by table and
// everything else 0.5. It counts calls so tests can assert short-circuits.
type stubSimilarity struct {
	mu     sync.Mutex
	scores map[string]float64
	calls  int
}

func pairKey(a, b string) string {
	a, b = strings.ToLower(strings.TrimSpace(a)), strings.ToLower(strings.TrimSpace(b))
	if a > b {
		a, b = b, a
	}
	return a + "|" + b
}

func (s *stubSimilarity) lookup(a, b string) float64 {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b)) {
		return 1.0
	}
	if score, ok := s.scores[pairKey(a, b)]; ok {
		return score
	}
	return 0.5
}

func (s *stubSimilarity) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *stubSimilarity) NameSimilarity(_ context.Context, a, b string) float64 {
	return s.lookup(a, b)
}
func (s *stubSimilarity) HardSkillSimilarity(_ context.Context, a, b string) float64 {
	return s.lookup(a, b)
}
func (s *stubSimilarity) SoftSkillSimilarity(_ context.Context, a, b string) float64 {
	return s.lookup(a, b)
}
func (s *stubSimilarity) DegreeSimilarity(_ context.Context, a, b string) float64 {
	return s.lookup(a, b)
}

// memResults is an in-memory ResultStore.
type memResults struct {
	mu      sync.Mutex
	results map[string]*types.MatchResult
	upserts int
}

func newMemResults() *memResults {
	return &memResults{results: map[string]*types.MatchResult{}}
}

func (s *memResults) key(jobID, candidateID string) string { return jobID + "|" + candidateID }

func (s *memResults) GetMatch(_ context.Context, jobID, candidateID string) (*types.MatchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.results[s.key(jobID, candidateID)]; ok {
		copied := *r
		return &copied, nil
	}
	return nil, nil
}

func (s *memResults) UpsertMatch(_ context.Context, result *types.MatchResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upserts++
	copied := *result
	s.results[s.key(result.JobID, result.CandidateID)] = &copied
	return nil
}

func (s *memResults) TopMatches(_ context.Context, jobID string, limit int) ([]types.MatchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []types.MatchResult
	for _, r := range s.results {
		if r.JobID == jobID {
			out = append(out, *r)
		}
	}
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].TotalScore > out[i].TotalScore {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func newTestMatcher(sim scoring.Similarity, store ResultStore) *Matcher {
	return New(scoring.NewEngine(sim, nil), store, nil)
}

func TestScore_NoCommonTagsShortCircuits(t *testing.T) {
	sim := &stubSimilarity{}
	store := newMemResults()
	m := newTestMatcher(sim, store)

	candidate := SelfTestCandidate()
	candidate.Tags = []string{"java"}
	job := SelfTestJob()
	job.Tags = []string{"python"}

	result := m.Score(context.Background(), candidate, job, Options{ActivateTags: true, Persist: true})

	assert.Zero(t, result.TotalScore)
	assert.Equal(t, ReasonNoCommonTags, result.Reason)
	assert.Empty(t, result.CommonTags)
	assert.Zero(t, sim.callCount(), "no scorer may run when tags do not overlap")
	// The zero result is still persisted.
	assert.Equal(t, 1, store.upserts)
}

func TestScore_TagsIgnoredWhenFilterInactive(t *testing.T) {
	sim := &stubSimilarity{}
	m := newTestMatcher(sim, nil)

	candidate := SelfTestCandidate()
	candidate.Tags = []string{"java"}
	job := SelfTestJob()
	job.Tags = []string{"python"}

	result := m.Score(context.Background(), candidate, job, Options{})

	assert.Greater(t, result.TotalScore, 0.0)
	assert.Zero(t, result.TagBonus)
	assert.Empty(t, result.CommonTags)
}

func TestScore_ReferencePair(t *testing.T) {
	sim := &stubSimilarity{}
	m := newTestMatcher(sim, nil)

	result := m.Score(context.Background(), SelfTestCandidate(), SelfTestJob(), Options{ActivateTags: true})

	// Two shared tags: full stack, javascript.
	assert.Equal(t, []string{"full stack", "javascript"}, result.CommonTags)
	assert.Equal(t, 0.05, result.TagBonus)

	// All mandatory hard skills match exactly.
	assert.InDelta(t, 1.0, result.HardSkillScore, 1e-9)
	assert.InDelta(t, 1.0, result.LanguageScore, 1e-9)
	assert.Equal(t, 1.0, result.SalaryScore)
	assert.Equal(t, 1.0, result.RemoteWorkScore)
	assert.InDelta(t, 1.0, result.DegreeScore, 1e-9)

	// Experience titles rate at the stub default 0.5, durations are met:
	// 0.6*0.5 + 0.4*1.0 = 0.7 for both categories.
	assert.InDelta(t, 0.7, result.ExperienceScore, 1e-9)

	// Two exact soft skill matches plus one at the 0.5 default.
	assert.InDelta(t, 2.5/3.0, result.SoftSkillScore, 1e-9)

	expected := (0.40*1.0 + 0.10*(2.5/3.0) + 0.20*0.7 + 0.15*1.0 +
		0.025*1.0 + 0.025*1.0 + 0.10*1.0) * 1.05
	assert.InDelta(t, expected, result.TotalScore, 1e-9)

	var weightSum float64
	for _, w := range result.Weights {
		weightSum += w
	}
	assert.InDelta(t, 1.0, weightSum, 1e-6)
}

func TestScore_FreshStoredResultReused(t *testing.T) {
	sim := &stubSimilarity{}
	store := newMemResults()
	require.NoError(t, store.UpsertMatch(context.Background(), &types.MatchResult{
		JobID:       "test_job_1",
		CandidateID: "test_candidate_1",
		TotalScore:  0.42,
		Details:     types.MatchBreakdown{TotalScore: 0.42, CandidateName: "Jane Doe"},
		Timestamp:   time.Now().Unix(),
	}))
	m := newTestMatcher(sim, store)

	result := m.Score(context.Background(), SelfTestCandidate(), SelfTestJob(), Options{ActivateTags: true})

	assert.InDelta(t, 0.42, result.TotalScore, 1e-9)
	assert.Zero(t, sim.callCount())
}

func TestScore_StaleStoredResultRecomputed(t *testing.T) {
	sim := &stubSimilarity{}
	store := newMemResults()
	require.NoError(t, store.UpsertMatch(context.Background(), &types.MatchResult{
		JobID:       "test_job_1",
		CandidateID: "test_candidate_1",
		TotalScore:  0.42,
		Details:     types.MatchBreakdown{TotalScore: 0.42},
		Timestamp:   time.Now().Add(-25 * time.Hour).Unix(),
	}))
	m := newTestMatcher(sim, store)

	result := m.Score(context.Background(), SelfTestCandidate(), SelfTestJob(), Options{ActivateTags: true, Persist: true})

	assert.Greater(t, math.Abs(result.TotalScore-0.42), 1e-3)
	assert.Greater(t, sim.callCount(), 0)
	// The stale row was replaced.
	assert.Equal(t, 2, store.upserts)
}

func TestTagBonus(t *testing.T) {
	assert.Equal(t, 0.0, tagBonus(0))
	assert.Equal(t, 0.0, tagBonus(1))
	assert.Equal(t, 0.05, tagBonus(2))
	assert.Equal(t, 0.10, tagBonus(3))
	assert.Equal(t, 0.10, tagBonus(7))
}

func TestCommonTags(t *testing.T) {
	common := commonTags(
		[]string{"Full Stack", "JAVASCRIPT", "react"},
		[]string{"javascript", "full stack", "vue"},
	)
	assert.Equal(t, []string{"full stack", "javascript"}, common)

	assert.Empty(t, commonTags([]string{"a"}, []string{"b"}))
	assert.Empty(t, commonTags(nil, []string{"b"}))
}

func TestSelfTest(t *testing.T) {
	m := newTestMatcher(&stubSimilarity{}, nil)

	result := m.SelfTest(context.Background())

	assert.Greater(t, result.TotalScore, 0.7)
	assert.Equal(t, 0.05, result.TagBonus)
	assert.Equal(t, "Jane Doe", result.CandidateName)
}

// stubDirectory serves canned jobs and candidates and counts lookups.
type stubDirectory struct {
	job        *types.Job
	refs       []types.CandidateRef
	candidates map[string]*types.Candidate
	failing    map[string]bool
	jobCalls   int
}

func (d *stubDirectory) Job(_ context.Context, shortcode string) (*types.Job, error) {
	d.jobCalls++
	if d.job == nil {
		return nil, errors.New("job not found")
	}
	copied := *d.job
	return &copied, nil
}

func (d *stubDirectory) JobCandidates(_ context.Context, _ string) ([]types.CandidateRef, error) {
	return d.refs, nil
}

func (d *stubDirectory) Candidate(_ context.Context, id string) (*types.Candidate, error) {
	if d.failing[id] {
		return nil, errors.New("profile unavailable")
	}
	if c, ok := d.candidates[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, errors.New("candidate not found")
}

func bulkFixture() *stubDirectory {
	strong := SelfTestCandidate()
	strong.ID = "cand-strong"

	weak := SelfTestCandidate()
	weak.ID = "cand-weak"
	weak.Name = "John Smith"
	weak.HardSkills = []string{"PHP"}
	weak.SoftSkills = []string{"Communication"}

	return &stubDirectory{
		job: SelfTestJob(),
		refs: []types.CandidateRef{
			{ID: "cand-weak", Name: "John Smith"},
			{ID: "cand-strong", Name: "Jane Doe"},
			{ID: "cand-broken"},
		},
		candidates: map[string]*types.Candidate{
			"cand-strong": strong,
			"cand-weak":   weak,
		},
		failing: map[string]bool{"cand-broken": true},
	}
}

func TestMatchJobCandidates_FreshComputation(t *testing.T) {
	dir := bulkFixture()
	store := newMemResults()
	m := newTestMatcher(&stubSimilarity{}, store)

	report, err := m.MatchJobCandidates(context.Background(), dir, "test_job_1", 10, Options{})
	require.NoError(t, err)

	assert.Equal(t, 3, report.TotalCandidates)
	assert.Equal(t, 2, report.ProcessedCandidates, "the failing candidate is skipped")
	require.Len(t, report.TopMatches, 2)

	// Sorted by score, best first.
	assert.Equal(t, "cand-strong", report.TopMatches[0].CandidateID)
	assert.Greater(t, report.TopMatches[0].Score, report.TopMatches[1].Score)
	for _, match := range report.TopMatches {
		assert.Equal(t, SourceFreshCalculation, match.Source)
	}

	// Results were persisted for reuse.
	assert.Equal(t, 2, store.upserts)
}

func TestMatchJobCandidates_ReusesStoredResults(t *testing.T) {
	store := newMemResults()
	now := time.Now().Unix()
	for i, id := range []string{"c1", "c2"} {
		require.NoError(t, store.UpsertMatch(context.Background(), &types.MatchResult{
			JobID:       "test_job_1",
			CandidateID: id,
			TotalScore:  0.9 - float64(i)*0.1,
			Details:     types.MatchBreakdown{CandidateName: id},
			Timestamp:   now,
		}))
	}

	dir := bulkFixture()
	m := newTestMatcher(&stubSimilarity{}, store)

	report, err := m.MatchJobCandidates(context.Background(), dir, "test_job_1", 2, Options{})
	require.NoError(t, err)

	assert.Equal(t, SourceDatabase, report.Source)
	assert.Len(t, report.TopMatches, 2)
	assert.Zero(t, dir.jobCalls, "stored results avoid directory traffic")
}

func TestMatchJobCandidates_StaleStoredResultsIgnored(t *testing.T) {
	store := newMemResults()
	stale := time.Now().Add(-48 * time.Hour).Unix()
	for _, id := range []string{"c1", "c2"} {
		require.NoError(t, store.UpsertMatch(context.Background(), &types.MatchResult{
			JobID:       "test_job_1",
			CandidateID: id,
			TotalScore:  0.9,
			Timestamp:   stale,
		}))
	}

	dir := bulkFixture()
	m := newTestMatcher(&stubSimilarity{}, store)

	report, err := m.MatchJobCandidates(context.Background(), dir, "test_job_1", 2, Options{})
	require.NoError(t, err)

	assert.NotEqual(t, SourceDatabase, report.Source)
	assert.Equal(t, 1, dir.jobCalls)
	for _, match := range report.TopMatches {
		assert.Equal(t, SourceFreshCalculation, match.Source)
	}
}

func TestMatchCandidate_Fresh(t *testing.T) {
	dir := bulkFixture()
	m := newTestMatcher(&stubSimilarity{}, newMemResults())

	report, err := m.MatchCandidate(context.Background(), dir, "cand-strong", "test_job_1", Options{ActivateTags: true})
	require.NoError(t, err)

	assert.Equal(t, SourceFreshCalculation, report.Source)
	assert.Equal(t, "test_job_1", report.JobShortcode)
	assert.Equal(t, "cand-strong", report.CandidateID)
	assert.Greater(t, report.TotalScore, 0.0)
}

func TestMatchCandidate_StoredResult(t *testing.T) {
	store := newMemResults()
	require.NoError(t, store.UpsertMatch(context.Background(), &types.MatchResult{
		JobID:       "test_job_1",
		CandidateID: "cand-strong",
		TotalScore:  0.66,
		Details:     types.MatchBreakdown{TotalScore: 0.66},
		Timestamp:   time.Now().Unix(),
	}))

	dir := bulkFixture()
	m := newTestMatcher(&stubSimilarity{}, store)

	report, err := m.MatchCandidate(context.Background(), dir, "cand-strong", "test_job_1", Options{})
	require.NoError(t, err)

	assert.Equal(t, SourceDatabase, report.Source)
	assert.InDelta(t, 0.66, report.TotalScore, 1e-9)
	assert.Zero(t, dir.jobCalls)
}

func TestExportReport(t *testing.T) {
	dir := bulkFixture()
	m := newTestMatcher(&stubSimilarity{}, newMemResults())

	export, err := m.ExportReport(context.Background(), dir, "test_job_1", 5, Options{})
	require.NoError(t, err)

	assert.Equal(t, 2, export.ExportedMatches)
	assert.Contains(t, export.MatchSummary, "Jane Doe")
	assert.Contains(t, export.MatchSummary, "Compétences techniques")
	assert.Contains(t, export.MatchSummary, export.JobTitle)
	require.NotNil(t, export.Data)
	assert.Equal(t, "test_job_1", export.Data.JobID)
}
