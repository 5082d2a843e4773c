package scoring

import (
	"strings"

	"github.com/seedtech/candidate-matcher/internal/types"
)

// languageLevelScore rates a candidate proficiency against a required one on
// the ordinal scale. Shortfalls cost 0.4 per missing level for required
// languages and 0.2 for recommended ones; exceeding the requirement never
// pushes the score above 1.0.
func languageLevelScore(candidateLevel, requiredLevel string, required bool) float64 {
	diff := languageLevels[strings.ToLower(candidateLevel)] - languageLevels[strings.ToLower(requiredLevel)]

	if diff < 0 {
		penalty := 0.2
		if required {
			penalty = 0.4
		}
		score := 1.0 - penalty*float64(-diff)
		if score < 0 {
			return 0
		}
		return score
	}

	score := 1.0 + 0.05*float64(diff)
	if score > 1.0 {
		return 1.0
	}
	return score
}

// CompareLanguages scores the candidate's language proficiencies against the
// job's requirements. Languages the candidate does not list rate as "rien".
// Required and recommended languages aggregate at 0.7/0.3.
func (e *Engine) CompareLanguages(candidateLanguages map[string]string, requiredLanguages map[string]types.LanguageRequirement) (float64, map[string]types.LanguageDetail) {
	if len(requiredLanguages) == 0 {
		return 0, nil
	}

	var (
		required    []float64
		recommended []float64
	)
	details := make(map[string]types.LanguageDetail, len(requiredLanguages))

	for language, requirement := range requiredLanguages {
		candidateLevel, ok := candidateLanguages[strings.ToLower(language)]
		if !ok {
			candidateLevel = "rien"
		}

		score := languageLevelScore(candidateLevel, requirement.Level, requirement.Required)
		if requirement.Required {
			required = append(required, score)
		} else {
			recommended = append(recommended, score)
		}

		details[language] = types.LanguageDetail{
			CandidateLevel: candidateLevel,
			RequiredLevel:  requirement.Level,
			Score:          score,
			Required:       requirement.Required,
		}
	}

	return combineCategories(required, recommended), details
}
