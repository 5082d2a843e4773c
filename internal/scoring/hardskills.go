package scoring

import (
	"context"

	"github.com/seedtech/candidate-matcher/internal/types"
)

// A mandatory skill with no candidate match above this similarity scores
// zero; near misses do not partially satisfy a hard requirement.
const mandatorySkillThreshold = 0.8

// CompareHardSkills scores the candidate's technical skills against the
// job's requirements. Each required skill is matched to the candidate's most
// similar skill. Mandatory skills below the threshold contribute zero and
// record no matched skill; recommended skills always contribute their raw
// best similarity.
func (e *Engine) CompareHardSkills(ctx context.Context, candidateSkills []string, requiredSkills []types.RequiredSkill) (float64, map[string]types.HardSkillDetail) {
	if len(candidateSkills) == 0 || len(requiredSkills) == 0 {
		return 0, nil
	}

	var (
		mandatory   []float64
		recommended []float64
	)
	details := make(map[string]types.HardSkillDetail, len(requiredSkills))

	for _, req := range requiredSkills {
		var (
			maxScore  float64
			bestSkill string
		)
		for _, skill := range candidateSkills {
			if score := e.sim.HardSkillSimilarity(ctx, skill, req.Skill); score > maxScore {
				maxScore = score
				bestSkill = skill
			}
		}

		finalScore := maxScore
		switch req.Category {
		case types.CategoryMandatory:
			if maxScore < mandatorySkillThreshold {
				finalScore = 0
				bestSkill = ""
			}
			mandatory = append(mandatory, finalScore)
		case types.CategoryRecommended:
			recommended = append(recommended, maxScore)
		}

		details[req.Skill] = types.HardSkillDetail{
			CandidateSkill: bestSkill,
			Score:          finalScore,
			Category:       req.Category,
		}
	}

	return combineCategories(mandatory, recommended), details
}
