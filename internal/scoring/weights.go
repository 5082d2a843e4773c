package scoring

import (
	"math"

	"go.uber.org/zap"

	"github.com/seedtech/candidate-matcher/internal/types"
)

// absentDimensions lists the dimensions the job posting gives no criteria
// for. Absent dimensions are excluded from scoring entirely.
func absentDimensions(job *types.Job) []string {
	var absent []string
	if len(job.HardSkills) == 0 {
		absent = append(absent, DimHardSkills)
	}
	if len(job.RequiredExperiences) == 0 {
		absent = append(absent, DimExperience)
	}
	if job.RequiredDegree == "" {
		absent = append(absent, DimDegree)
	}
	if job.Salary == nil {
		absent = append(absent, DimSalary)
	}
	if job.OffersRemote == nil {
		absent = append(absent, DimRemoteWork)
	}
	if len(job.RequiredLanguages) == 0 {
		absent = append(absent, DimLanguages)
	}
	if len(job.RequiredSoftSkills) == 0 {
		absent = append(absent, DimSoftSkills)
	}
	return absent
}

// AdaptiveWeights rebalances BaseWeights for one job. Absent dimensions are
// zeroed and their mass is redistributed proportionally across the present
// adjustable dimensions. Salary and remote work keep their base weight when
// present and never absorb redistributed mass. Whenever at least one
// adjustable dimension is present, the weights sum to 1.0.
func (e *Engine) AdaptiveWeights(job *types.Job) map[string]float64 {
	weights := make(map[string]float64, len(BaseWeights))
	for dim, w := range BaseWeights {
		weights[dim] = w
	}

	absent := make(map[string]bool)
	for _, dim := range absentDimensions(job) {
		absent[dim] = true
		weights[dim] = 0
	}

	var fixedSum, adjustableSum float64
	var adjustable []string
	for dim, w := range weights {
		if absent[dim] {
			continue
		}
		if fixedFields[dim] {
			fixedSum += w
		} else {
			adjustable = append(adjustable, dim)
			adjustableSum += w
		}
	}

	var baseSum float64
	for _, w := range BaseWeights {
		baseSum += w
	}
	massToRedistribute := baseSum - fixedSum - adjustableSum

	if adjustableSum > 0 {
		ratio := (adjustableSum + massToRedistribute) / adjustableSum
		for _, dim := range adjustable {
			weights[dim] *= ratio
		}
	}

	var finalSum float64
	for _, w := range weights {
		finalSum += w
	}
	if math.Abs(finalSum-1.0) > 1e-6 {
		e.log.Warn("adaptive weights do not sum to 1.0",
			zap.Float64("sum", finalSum),
			zap.String("job_id", job.ID))
	}

	return weights
}
