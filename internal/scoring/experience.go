package scoring

import (
	"context"

	"github.com/seedtech/candidate-matcher/internal/types"
)

// durationScore rates candidate tenure against the required duration. More
// experience than asked for is not rewarded beyond 1.0.
func durationScore(candidateMonths, requiredMonths int) float64 {
	if requiredMonths <= 0 {
		return 1.0
	}
	score := float64(candidateMonths) / float64(requiredMonths)
	if score > 1.0 {
		return 1.0
	}
	return score
}

// experienceMatch rates one candidate experience against one requirement.
// The title carries more weight than the duration.
func (e *Engine) experienceMatch(ctx context.Context, candidate types.Experience, required types.RequiredExperience) (float64, map[string]float64) {
	nameScore := e.sim.NameSimilarity(ctx, candidate.Name, required.Name)
	durScore := durationScore(candidate.Months, required.Months)

	subScores := map[string]float64{
		"name_score":     nameScore,
		"duration_score": durScore,
	}
	return 0.6*nameScore + 0.4*durScore, subScores
}

// CompareExperiences scores the candidate's experience history against the
// job's required experiences. Each requirement is matched to the candidate's
// best fitting experience; mandatory and recommended requirements then
// aggregate at 0.7/0.3.
func (e *Engine) CompareExperiences(ctx context.Context, candidate []types.Experience, required []types.RequiredExperience) (float64, []types.ExperienceDetail) {
	if len(candidate) == 0 || len(required) == 0 {
		return 0, nil
	}

	var (
		mandatory   []float64
		recommended []float64
		details     []types.ExperienceDetail
	)

	for _, req := range required {
		var (
			bestScore     float64
			bestSubScores = map[string]float64{"name_score": 0, "duration_score": 0}
			bestMatchName string
		)
		for _, cand := range candidate {
			score, subScores := e.experienceMatch(ctx, cand, req)
			if score > bestScore {
				bestScore = score
				bestSubScores = subScores
				bestMatchName = cand.Name
			}
		}

		switch req.Category {
		case types.CategoryMandatory:
			mandatory = append(mandatory, bestScore)
		case types.CategoryRecommended:
			recommended = append(recommended, bestScore)
		}

		details = append(details, types.ExperienceDetail{
			RequiredExpName: req.Name,
			BestMatchName:   bestMatchName,
			Category:        req.Category,
			BestScore:       bestScore,
			SubScores:       bestSubScores,
		})
	}

	return combineCategories(mandatory, recommended), details
}
