package scoring

// BaseWeights is the nominal importance of each scoring dimension. The values
// sum to 1.0; AdaptiveWeights rebalances them per job.
var BaseWeights = map[string]float64{
	DimHardSkills: 0.40,
	DimSoftSkills: 0.10,
	DimExperience: 0.20,
	DimDegree:     0.15,
	DimSalary:     0.025,
	DimRemoteWork: 0.025,
	DimLanguages:  0.10,
}

// fixedFields never absorb weight freed by absent dimensions. Salary and
// remote preferences are binary fit signals, not competencies.
var fixedFields = map[string]bool{
	DimSalary:     true,
	DimRemoteWork: true,
}

// languageLevels maps French proficiency labels to an ordinal scale.
// Unknown labels rate as 0.
var languageLevels = map[string]int{
	"aucun":               0,
	"rien":                0,
	"débutant":            1,
	"basique":             1,
	"intermédiaire":       2,
	"moyen":               2,
	"avancé":              3,
	"courant":             3,
	"bilingue":            4,
	"maternelle":          4,
	"bilingue/maternelle": 4,
	"natif":               4,
}

// degreeLevels maps French degree labels to years of post-secondary study.
var degreeLevels = map[string]int{
	"bac+1":               1,
	"licence 1":           1,
	"bac+2":               2,
	"dut":                 2,
	"bts":                 2,
	"licence 2":           2,
	"licence":             3,
	"licence 3":           3,
	"bachelor":            3,
	"bac+3":               3,
	"bba":                 4,
	"master 1":            4,
	"mastère 1":           4,
	"mastère spécialisé":  4,
	"bac+4":               4,
	"master 2":            5,
	"master":              5,
	"mastère 2":           5,
	"msc":                 5,
	"diplôme d'ingénieur": 5,
	"ingénieur":           5,
	"mba":                 5,
	"doctorat":            6,
	"phd":                 6,
}
