package parsing

import (
	"strings"

	"github.com/seedtech/candidate-matcher/internal/types"
)

// Raw ATS record shapes, mirroring the Workable SPI v3 payloads.

// PersonName is the nested name block of a candidate record.
type PersonName struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

// ExperienceEntry is one position in a candidate's work history.
type ExperienceEntry struct {
	Title     string `json:"title"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Summary   string `json:"summary"`
}

// EducationEntry is one degree in a candidate's education history.
type EducationEntry struct {
	Degree string `json:"degree"`
}

// NamedItem is a generic named record (skills and similar lists).
type NamedItem struct {
	Name string `json:"name"`
}

// LanguageEntry is a declared language proficiency.
type LanguageEntry struct {
	Name        string `json:"name"`
	Proficiency string `json:"proficiency"`
}

// LocationInfo carries the remote work flag of a record.
type LocationInfo struct {
	Telecommuting bool `json:"telecommuting"`
}

// SalaryInfo carries the salary range floor of a record.
type SalaryInfo struct {
	SalaryFrom float64 `json:"salary_from"`
}

// CandidateRecord is a full candidate profile as returned by the ATS.
type CandidateRecord struct {
	ID                string            `json:"id"`
	Candidate         PersonName        `json:"candidate"`
	Summary           string            `json:"summary"`
	ExperienceEntries []ExperienceEntry `json:"experience_entries"`
	EducationEntries  []EducationEntry  `json:"education_entries"`
	Skills            []NamedItem       `json:"skills"`
	Languages         []LanguageEntry   `json:"languages"`
	Tags              []string          `json:"tags"`
	Location          *LocationInfo     `json:"location"`
	Salary            *SalaryInfo       `json:"salary"`
}

// JobRecord is a full job posting as returned by the ATS.
type JobRecord struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Requirements string        `json:"requirements"`
	Education    string        `json:"education"`
	Keywords     []string      `json:"keywords"`
	Tags         []string      `json:"tags"`
	Location     *LocationInfo `json:"location"`
	Salary       *SalaryInfo   `json:"salary"`
}

// Defaults applied when the ATS omits salary information.
const (
	defaultCandidateMinSalary = 1100.0
	defaultJobSalary          = 1200.0
)

// ParseCandidate converts a raw candidate record into the internal model.
// Soft skills are mined from the summary and experience descriptions; tags
// derive from explicit tags, skill names and experience title words.
func ParseCandidate(record *CandidateRecord) *types.Candidate {
	if record == nil {
		return nil
	}

	var experiences []types.Experience
	for _, entry := range record.ExperienceEntries {
		experiences = append(experiences, types.Experience{
			Name:        entry.Title,
			Months:      CalculateMonths(entry.StartDate, entry.EndDate),
			Description: ExtractText(entry.Summary),
		})
	}

	var degree string
	if len(record.EducationEntries) > 0 {
		degree = record.EducationEntries[0].Degree
	}

	var hardSkills []string
	for _, skill := range record.Skills {
		hardSkills = append(hardSkills, skill.Name)
	}

	var softSkills []string
	if summary := ExtractText(record.Summary); summary != "" {
		softSkills = append(softSkills, ExtractSoftSkills(summary)...)
	}
	for _, entry := range record.ExperienceEntries {
		if description := ExtractText(entry.Summary); description != "" {
			softSkills = append(softSkills, ExtractSoftSkills(description)...)
		}
	}
	softSkills = dedupe(softSkills, 10)

	languages := make(map[string]string)
	for _, lang := range record.Languages {
		name := strings.ToLower(lang.Name)
		proficiency := strings.ToLower(lang.Proficiency)
		if name != "" && proficiency != "" {
			languages[name] = proficiency
		}
	}

	var tags []string
	for _, tag := range record.Tags {
		tags = append(tags, strings.ToLower(tag))
	}
	for _, skill := range hardSkills {
		if skill != "" {
			tags = append(tags, strings.ToLower(skill))
		}
	}
	for _, exp := range experiences {
		for _, word := range strings.Fields(strings.ToLower(exp.Name)) {
			if len(word) > 3 && !titleStopwords[word] {
				tags = append(tags, word)
			}
		}
	}
	tags = dedupe(tags, 20)

	wantsRemote := record.Location != nil && record.Location.Telecommuting
	minSalary := defaultCandidateMinSalary
	if record.Salary != nil && record.Salary.SalaryFrom > 0 {
		minSalary = record.Salary.SalaryFrom
	}

	return &types.Candidate{
		ID:          record.ID,
		Name:        strings.TrimSpace(record.Candidate.Firstname + " " + record.Candidate.Lastname),
		Experiences: experiences,
		Degree:      degree,
		WantsRemote: &wantsRemote,
		MinSalary:   &minSalary,
		HardSkills:  hardSkills,
		SoftSkills:  softSkills,
		Tags:        tags,
		Languages:   languages,
	}
}

// techKeywords are scanned for in job descriptions to pick up skills the
// requirements section does not spell out.
var techKeywords = []string{
	"Python", "JavaScript", "TypeScript", "Java", "C#", "C++", "Ruby", "PHP", "Swift", "Kotlin",
	"React", "Angular", "Vue", "Node.js", "Django", "Flask", "Spring", "ASP.NET",
	"AWS", "Azure", "GCP", "Docker", "Kubernetes", "CI/CD", "DevOps",
	"SQL", "MongoDB", "PostgreSQL", "MySQL", "NoSQL", "Redis",
	"Machine Learning", "AI", "Data Science", "Big Data", "Analytics",
	"Git", "Agile", "Scrum", "REST API", "GraphQL",
}

// languageKeywords map requirement-text mentions to canonical language names.
var languageKeywords = map[string]string{
	"anglais": "anglais", "english": "anglais",
	"français": "français", "french": "français",
	"espagnol": "espagnol", "spanish": "espagnol",
	"allemand": "allemand", "german": "allemand",
}

// ParseJob converts a raw job record into the internal model. Requirement
// bullet points become required experiences and hard skills; the first three
// are treated as mandatory. Languages and soft skills are mined from the
// requirement and description text.
func ParseJob(record *JobRecord) *types.Job {
	if record == nil {
		return nil
	}

	requirementsText := ExtractText(record.Requirements)
	var requirements []string
	for _, req := range strings.Split(requirementsText, textSeparator) {
		if req = strings.TrimSpace(req); req != "" {
			requirements = append(requirements, req)
		}
	}

	var requiredExperiences []types.RequiredExperience
	var hardSkills []types.RequiredSkill
	for i, req := range requirements {
		category := types.CategoryRecommended
		if i < 3 {
			category = types.CategoryMandatory
		}
		if len(req) > 10 {
			requiredExperiences = append(requiredExperiences, types.RequiredExperience{
				Experience: types.Experience{
					Name:        truncate(req, 50),
					Months:      12,
					Description: req,
				},
				Category: category,
			})
		}
		if len(req) > 5 {
			hardSkills = append(hardSkills, types.RequiredSkill{
				Skill:    truncate(req, 50),
				Category: category,
			})
		}
	}

	descriptionText := ExtractText(record.Description)
	lowerDescription := strings.ToLower(descriptionText)
	for _, keyword := range techKeywords {
		lower := strings.ToLower(keyword)
		if !strings.Contains(lowerDescription, lower) {
			continue
		}
		known := false
		for _, skill := range hardSkills {
			if strings.EqualFold(skill.Skill, keyword) {
				known = true
				break
			}
		}
		if !known {
			hardSkills = append(hardSkills, types.RequiredSkill{
				Skill:    keyword,
				Category: types.CategoryRecommended,
			})
		}
	}

	softSkills := ExtractSoftSkills(descriptionText + " " + requirementsText)

	lowerRequirements := strings.ToLower(requirementsText)
	requiredLanguages := make(map[string]types.LanguageRequirement)
	for keyword, language := range languageKeywords {
		idx := strings.Index(lowerRequirements, keyword)
		if idx < 0 {
			continue
		}

		// Inspect the text right after the mention for level and
		// requirement hints.
		context := lowerRequirements[idx+len(keyword):]
		if len(context) > 50 {
			context = context[:50]
		}

		level := "intermédiaire"
		switch {
		case strings.Contains(context, "courant") || strings.Contains(context, "fluent"):
			level = "courant"
		case strings.Contains(context, "bilingue") || strings.Contains(context, "bilingual") ||
			strings.Contains(context, "native") || strings.Contains(context, "maternelle"):
			level = "bilingue/maternelle"
		case strings.Contains(context, "débutant") || strings.Contains(context, "basic") ||
			strings.Contains(context, "notions"):
			level = "débutant"
		}

		required := strings.Contains(context, "obligatoire") ||
			strings.Contains(context, "requis") ||
			strings.Contains(context, "required")

		requiredLanguages[language] = types.LanguageRequirement{Level: level, Required: required}
	}
	if len(requiredLanguages) == 0 {
		requiredLanguages = nil
	}

	var tags []string
	for _, tag := range record.Tags {
		tags = append(tags, strings.ToLower(tag))
	}
	for _, keyword := range record.Keywords {
		tags = append(tags, strings.ToLower(keyword))
	}
	for _, skill := range hardSkills {
		if skill.Skill != "" {
			tags = append(tags, strings.ToLower(skill.Skill))
		}
	}
	tags = dedupe(tags, 20)

	offersRemote := (record.Location != nil && record.Location.Telecommuting) ||
		strings.Contains(lowerDescription, "remote") ||
		strings.Contains(lowerDescription, "télétravail")

	salary := defaultJobSalary
	if record.Salary != nil && record.Salary.SalaryFrom > 0 {
		salary = record.Salary.SalaryFrom
	}

	return &types.Job{
		ID:                  record.ID,
		Title:               record.Title,
		RequiredExperiences: requiredExperiences,
		RequiredDegree:      record.Education,
		OffersRemote:        &offersRemote,
		Salary:              &salary,
		HardSkills:          hardSkills,
		RequiredSoftSkills:  softSkills,
		Tags:                tags,
		RequiredLanguages:   requiredLanguages,
	}
}
