package scoring

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/seedtech/candidate-matcher/internal/types"
)

// diplomaAbbreviations expands common degree abbreviations before level and
// field extraction, so "Master IA" and "Master Intelligence Artificielle"
// compare as the same field.
var diplomaAbbreviations = []struct {
	pattern *regexp.Regexp
	full    string
}{
	{regexp.MustCompile(`(?i)\bIA\b`), "Intelligence Artificielle"},
	{regexp.MustCompile(`(?i)\bAI\b`), "Intelligence Artificielle"},
	{regexp.MustCompile(`(?i)\bCS\b`), "Computer Science"},
	{regexp.MustCompile(`(?i)\bSWE\b`), "Software Engineering"},
	{regexp.MustCompile(`(?i)\bIT\b`), "Information Technology"},
}

// degreeLevelsByLength holds the level labels longest first, so "master 2"
// is recognized before "master".
var degreeLevelsByLength = func() []string {
	terms := make([]string, 0, len(degreeLevels))
	for term := range degreeLevels {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if len(terms[i]) != len(terms[j]) {
			return len(terms[i]) > len(terms[j])
		}
		return terms[i] < terms[j]
	})
	return terms
}()

func expandDiplomaAbbreviations(name string) string {
	for _, abbr := range diplomaAbbreviations {
		name = abbr.pattern.ReplaceAllString(name, abbr.full)
	}
	return name
}

// splitDegree separates a degree string into its level label and field of
// study. "Master en Informatique" yields ("master", "informatique").
func splitDegree(degree string) (level, field string) {
	if degree == "" {
		return "", ""
	}

	degree = strings.ToLower(degree)
	field = degree

	for _, term := range degreeLevelsByLength {
		if strings.HasPrefix(degree, term) {
			level = term
			field = strings.TrimSpace(degree[len(term):])
			field = strings.TrimSpace(strings.TrimPrefix(field, "en "))
			field = strings.TrimSpace(strings.TrimPrefix(field, "in "))
			return level, field
		}
	}

	// The level may sit in the middle of the string ("diplôme master 2 info").
	for _, term := range degreeLevelsByLength {
		if idx := strings.Index(degree, term); idx >= 0 {
			level = term
			field = strings.TrimSpace(degree[:idx] + degree[idx+len(term):])
			return level, field
		}
	}

	return "", field
}

// DiplomaScore rates the candidate's degree against the required one. The
// level dominates at 70%; candidates at or above the required level get full
// level credit. The field contributes the remaining 30% through similarity.
func (e *Engine) DiplomaScore(ctx context.Context, candidateDegree, requiredDegree string) (float64, *types.DegreeDetail) {
	if candidateDegree == "" || requiredDegree == "" {
		return 0, nil
	}

	candidateDegree = expandDiplomaAbbreviations(candidateDegree)
	requiredDegree = expandDiplomaAbbreviations(requiredDegree)

	candidateLevel, candidateField := splitDegree(candidateDegree)
	requiredLevel, requiredField := splitDegree(requiredDegree)

	candidateValue := degreeLevels[candidateLevel]
	requiredValue := degreeLevels[requiredLevel]

	var levelScore float64
	if requiredValue > 0 {
		levelScore = float64(candidateValue) / float64(requiredValue)
		if levelScore > 1.0 {
			levelScore = 1.0
		}
	} else if candidateValue > 0 {
		levelScore = 1.0
	}

	fieldSimilarity := e.sim.DegreeSimilarity(ctx, candidateField, requiredField)
	finalScore := 0.7*levelScore + 0.3*fieldSimilarity

	return finalScore, &types.DegreeDetail{
		CandidateLevel:  candidateLevel,
		RequiredLevel:   requiredLevel,
		LevelScore:      levelScore,
		CandidateField:  candidateField,
		RequiredField:   requiredField,
		FieldSimilarity: fieldSimilarity,
	}
}
