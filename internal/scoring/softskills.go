package scoring

import (
	"context"

	"github.com/seedtech/candidate-matcher/internal/types"
)

// CompareSoftSkills scores the candidate's behavioural skills against the
// job's. The direction is deliberately candidate-first: each candidate skill
// finds its closest required skill, and the final score averages those best
// matches. A candidate with many unrelated soft skills dilutes their own
// score.
func (e *Engine) CompareSoftSkills(ctx context.Context, candidateSkills, requiredSkills []string) (float64, []types.SoftSkillDetail) {
	if len(candidateSkills) == 0 || len(requiredSkills) == 0 {
		return 0, nil
	}

	var (
		bestScores []float64
		details    []types.SoftSkillDetail
	)

	for _, candidateSkill := range candidateSkills {
		var (
			bestScore    float64
			bestRequired string
		)
		for i, requiredSkill := range requiredSkills {
			score := e.sim.SoftSkillSimilarity(ctx, candidateSkill, requiredSkill)
			if score > bestScore || i == 0 {
				bestScore = score
				bestRequired = requiredSkill
			}
		}

		bestScores = append(bestScores, bestScore)
		details = append(details, types.SoftSkillDetail{
			CandidateSkill: candidateSkill,
			RequiredSkill:  bestRequired,
			Score:          bestScore,
		})
	}

	return mean(bestScores), details
}
