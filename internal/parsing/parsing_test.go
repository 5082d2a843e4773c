package parsing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateMonths(t *testing.T) {
	assert.Equal(t, 12, CalculateMonths("2022-01-15", "2023-01-15"))
	assert.Equal(t, 11, CalculateMonths("2022-01-15", "2023-01-14"))
	assert.Equal(t, 6, CalculateMonths("2022-01-01", "2022-07-01"))
	assert.Equal(t, 0, CalculateMonths("2022-01-01", "2022-01-20"))
	assert.Equal(t, 0, CalculateMonths("", "2023-01-01"))
	assert.Equal(t, 0, CalculateMonths("not-a-date", "2023-01-01"))
	assert.Equal(t, 0, CalculateMonths("2022-01-01", "not-a-date"))
	// End before start counts as no experience.
	assert.Equal(t, 0, CalculateMonths("2023-01-01", "2022-01-01"))
}

func TestCalculateMonths_OpenEnded(t *testing.T) {
	start := time.Now().AddDate(0, -6, 0).Format("2006-01-02")
	months := CalculateMonths(start, "")
	assert.InDelta(t, 6, months, 1)
}

func TestExtractText(t *testing.T) {
	assert.Equal(t, "", ExtractText(""))

	text := ExtractText("<ul><li>Python avancé</li><li>SQL</li></ul>")
	assert.Contains(t, text, "Python avancé")
	assert.Contains(t, text, "SQL")
	// Blocks are separated so requirement lists split cleanly.
	assert.Contains(t, text, "\n-")

	assert.Equal(t, "texte brut", ExtractText("texte brut"))
}

func TestExtractSoftSkills(t *testing.T) {
	skills := ExtractSoftSkills("Grande capacité de communication et de travail d'équipe, autonomie appréciée")
	assert.Contains(t, skills, "communication")
	assert.Contains(t, skills, "travail d'équipe")
	assert.Contains(t, skills, "autonomie")
	assert.NotContains(t, skills, "leadership")

	assert.Empty(t, ExtractSoftSkills(""))
}

func TestParseCandidate(t *testing.T) {
	record := &CandidateRecord{
		ID:        "cand-1",
		Candidate: PersonName{Firstname: "Jane", Lastname: "Doe"},
		Summary:   "<p>Développeuse avec un fort esprit de collaboration et grande autonomie</p>",
		ExperienceEntries: []ExperienceEntry{
			{Title: "Développeur Full Stack", StartDate: "2021-01-01", EndDate: "2022-07-01", Summary: "<p>React et Node.js</p>"},
		},
		EducationEntries: []EducationEntry{{Degree: "Master en Informatique"}},
		Skills:           []NamedItem{{Name: "JavaScript"}, {Name: "React"}},
		Languages: []LanguageEntry{
			{Name: "Français", Proficiency: "Bilingue"},
			{Name: "Anglais", Proficiency: "Courant"},
		},
		Location: &LocationInfo{Telecommuting: true},
		Salary:   &SalaryInfo{SalaryFrom: 38000},
	}

	candidate := ParseCandidate(record)
	require.NotNil(t, candidate)

	assert.Equal(t, "cand-1", candidate.ID)
	assert.Equal(t, "Jane Doe", candidate.Name)
	require.Len(t, candidate.Experiences, 1)
	assert.Equal(t, "Développeur Full Stack", candidate.Experiences[0].Name)
	assert.Equal(t, 18, candidate.Experiences[0].Months)
	assert.Equal(t, "Master en Informatique", candidate.Degree)
	assert.Equal(t, []string{"JavaScript", "React"}, candidate.HardSkills)
	assert.Contains(t, candidate.SoftSkills, "collaboration")
	assert.Contains(t, candidate.SoftSkills, "autonomie")
	assert.Equal(t, "bilingue", candidate.Languages["français"])
	assert.Equal(t, "courant", candidate.Languages["anglais"])
	require.NotNil(t, candidate.WantsRemote)
	assert.True(t, *candidate.WantsRemote)
	require.NotNil(t, candidate.MinSalary)
	assert.Equal(t, 38000.0, *candidate.MinSalary)

	// Tags mix skills and title words, lowercased, without stopwords.
	assert.Contains(t, candidate.Tags, "javascript")
	assert.Contains(t, candidate.Tags, "développeur")
	assert.Contains(t, candidate.Tags, "stack")
	assert.NotContains(t, candidate.Tags, "avec")
}

func TestParseCandidate_Defaults(t *testing.T) {
	candidate := ParseCandidate(&CandidateRecord{ID: "cand-2"})
	require.NotNil(t, candidate)

	require.NotNil(t, candidate.WantsRemote)
	assert.False(t, *candidate.WantsRemote)
	require.NotNil(t, candidate.MinSalary)
	assert.Equal(t, defaultCandidateMinSalary, *candidate.MinSalary)
	assert.Empty(t, candidate.Degree)

	assert.Nil(t, ParseCandidate(nil))
}

func TestParseJob(t *testing.T) {
	record := &JobRecord{
		ID:    "job-1",
		Title: "Développeur FullStack",
		Requirements: "<ul>" +
			"<li>Expérience confirmée en développement web moderne</li>" +
			"<li>Maîtrise de JavaScript et des frameworks récents</li>" +
			"<li>Bonne connaissance des bases de données SQL</li>" +
			"<li>Notions de déploiement continu appréciées</li>" +
			"<li>Anglais courant requis pour nos clients</li>" +
			"</ul>",
		Description: "<p>Poste en télétravail. Stack: React, Docker, PostgreSQL. Communication et travail d'équipe essentiels.</p>",
		Education:   "Licence en Informatique",
		Keywords:    []string{"FullStack"},
		Salary:      &SalaryInfo{SalaryFrom: 42000},
	}

	job := ParseJob(record)
	require.NotNil(t, job)

	assert.Equal(t, "job-1", job.ID)
	assert.Equal(t, "Licence en Informatique", job.RequiredDegree)

	// Five substantial requirements, the first three mandatory.
	require.Len(t, job.RequiredExperiences, 5)
	assert.Equal(t, "mandatory", string(job.RequiredExperiences[0].Category))
	assert.Equal(t, "mandatory", string(job.RequiredExperiences[2].Category))
	assert.Equal(t, "recommended", string(job.RequiredExperiences[3].Category))
	assert.Equal(t, 12, job.RequiredExperiences[0].Months)

	// Description keywords become recommended skills without duplicates.
	var keywordSkills []string
	for _, skill := range job.HardSkills {
		keywordSkills = append(keywordSkills, skill.Skill)
	}
	assert.Contains(t, keywordSkills, "React")
	assert.Contains(t, keywordSkills, "Docker")
	assert.Contains(t, keywordSkills, "PostgreSQL")

	assert.Contains(t, job.RequiredSoftSkills, "communication")
	assert.Contains(t, job.RequiredSoftSkills, "travail d'équipe")

	require.Contains(t, job.RequiredLanguages, "anglais")
	assert.Equal(t, "courant", job.RequiredLanguages["anglais"].Level)
	assert.True(t, job.RequiredLanguages["anglais"].Required)

	require.NotNil(t, job.OffersRemote)
	assert.True(t, *job.OffersRemote)
	require.NotNil(t, job.Salary)
	assert.Equal(t, 42000.0, *job.Salary)

	assert.Contains(t, job.Tags, "fullstack")
}

func TestParseJob_LongRequirementTruncated(t *testing.T) {
	long := strings45() + strings45()
	record := &JobRecord{
		ID:           "job-2",
		Requirements: "<li>" + long + "</li>",
	}

	job := ParseJob(record)
	require.NotNil(t, job)
	require.NotEmpty(t, job.RequiredExperiences)
	name := job.RequiredExperiences[0].Name
	assert.True(t, len([]rune(name)) <= 53)
	assert.Contains(t, name, "...")
	// The full text survives in the description.
	assert.Equal(t, long, job.RequiredExperiences[0].Description)
}

func strings45() string {
	return "une très longue exigence détaillée du poste "
}
