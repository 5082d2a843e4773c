package matching

import (
	"context"

	"github.com/seedtech/candidate-matcher/internal/types"
)

// SelfTestCandidate is the reference profile used by the self test.
func SelfTestCandidate() *types.Candidate {
	remote := true
	minSalary := 35000.0
	return &types.Candidate{
		ID:   "test_candidate_1",
		Name: "Jane Doe",
		Experiences: []types.Experience{
			{Name: "Développeur Full Stack", Months: 18, Description: "Développement d'applications web avec React et Node.js"},
			{Name: "Développeur Frontend", Months: 12, Description: "Création d'interfaces utilisateur avec Vue.js"},
		},
		Degree:      "Master en Informatique",
		WantsRemote: &remote,
		MinSalary:   &minSalary,
		HardSkills:  []string{"JavaScript", "React", "Node.js", "Python", "Docker"},
		SoftSkills:  []string{"Communication", "Travail d'équipe", "Résolution de problèmes"},
		Tags:        []string{"full stack", "javascript", "développeur web"},
		Languages:   map[string]string{"français": "bilingue/maternelle", "anglais": "courant"},
	}
}

// SelfTestJob is the reference posting used by the self test.
func SelfTestJob() *types.Job {
	remote := true
	salary := 40000.0
	return &types.Job{
		ID:    "test_job_1",
		Title: "Développeur FullStack JavaScript",
		RequiredExperiences: []types.RequiredExperience{
			{Experience: types.Experience{Name: "Développeur Web", Months: 12, Description: "Développement d'applications web modernes"}, Category: types.CategoryMandatory},
			{Experience: types.Experience{Name: "DevOps", Months: 6, Description: "Mise en place de pipelines CI/CD"}, Category: types.CategoryRecommended},
		},
		RequiredDegree: "Licence en Informatique",
		OffersRemote:   &remote,
		Salary:         &salary,
		HardSkills: []types.RequiredSkill{
			{Skill: "JavaScript", Category: types.CategoryMandatory},
			{Skill: "React", Category: types.CategoryMandatory},
			{Skill: "Node.js", Category: types.CategoryMandatory},
			{Skill: "Docker", Category: types.CategoryRecommended},
		},
		RequiredSoftSkills: []string{"Communication", "Travail d'équipe"},
		Tags:               []string{"full stack", "javascript", "node.js"},
		RequiredLanguages: map[string]types.LanguageRequirement{
			"français": {Level: "courant", Required: true},
			"anglais":  {Level: "intermédiaire", Required: false},
		},
	}
}

// SelfTest scores the built-in reference pair end to end without persisting
// the result. It exercises every dimension and the tag bonus, which makes it
// a cheap smoke check of the whole scoring stack.
func (m *Matcher) SelfTest(ctx context.Context) *types.MatchBreakdown {
	return m.Score(ctx, SelfTestCandidate(), SelfTestJob(), Options{ActivateTags: true})
}
