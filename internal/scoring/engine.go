// Package scoring computes per-dimension match scores between a candidate
// profile and a job posting.
package scoring

import (
	"context"

	"go.uber.org/zap"
)

// Similarity is the text comparison surface the scorers depend on. The
// concrete implementation resolves through caches and the LLM oracle, but
// scorers only see scores in [0,1].
type Similarity interface {
	NameSimilarity(ctx context.Context, a, b string) float64
	HardSkillSimilarity(ctx context.Context, a, b string) float64
	SoftSkillSimilarity(ctx context.Context, a, b string) float64
	DegreeSimilarity(ctx context.Context, a, b string) float64
}

// Scoring dimensions. These names key the weight maps and the weighted score
// breakdown in persisted results.
const (
	DimHardSkills = "hard_skills"
	DimSoftSkills = "soft_skills"
	DimExperience = "experience"
	DimDegree     = "degree"
	DimSalary     = "salary"
	DimRemoteWork = "remote_work"
	DimLanguages  = "languages"
)

// Mandatory and recommended sub-scores aggregate at 0.7/0.3 whenever both
// sides are present.
const (
	mandatoryShare   = 0.7
	recommendedShare = 0.3
)

// Engine evaluates the individual scoring dimensions.
type Engine struct {
	sim Similarity
	log *zap.Logger
}

// NewEngine builds an engine over the given similarity source.
func NewEngine(sim Similarity, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{sim: sim, log: log}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// combineCategories folds mandatory and recommended score lists into one
// value. A missing category hands its full weight to the other.
func combineCategories(mandatory, recommended []float64) float64 {
	switch {
	case len(mandatory) > 0 && len(recommended) > 0:
		return mandatoryShare*mean(mandatory) + recommendedShare*mean(recommended)
	case len(mandatory) > 0:
		return mean(mandatory)
	case len(recommended) > 0:
		return mean(recommended)
	default:
		return 0
	}
}
