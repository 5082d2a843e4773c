package scoring

// SalaryScore checks whether the job's salary meets the candidate's minimum.
// Missing or non-positive values on either side never penalize.
func SalaryScore(candidateMinSalary, jobSalary *float64) float64 {
	if candidateMinSalary == nil || *candidateMinSalary <= 0 {
		return 1.0
	}
	if jobSalary == nil || *jobSalary <= 0 {
		return 1.0
	}
	if *jobSalary >= *candidateMinSalary {
		return 1.0
	}
	return 0.0
}

// RemoteWorkScore checks whether the job's remote policy matches the
// candidate's preference. Unknown on either side never penalizes.
func RemoteWorkScore(candidateWantsRemote, jobOffersRemote *bool) float64 {
	if candidateWantsRemote == nil || jobOffersRemote == nil {
		return 1.0
	}
	if *candidateWantsRemote == *jobOffersRemote {
		return 1.0
	}
	return 0.0
}
