// Package types defines the candidate, job and match result data model.
package types

// Category classifies a job requirement as mandatory or recommended.
// Mandatory requirements dominate aggregation (0.7 vs 0.3) and, for hard
// skills, gate the contribution at a similarity threshold.
type Category string

// Requirement categories
const (
	CategoryMandatory   Category = "mandatory"
	CategoryRecommended Category = "recommended"
)

// Experience is a single professional experience entry.
type Experience struct {
	Name        string `json:"name"`
	Months      int    `json:"months"`
	Description string `json:"description,omitempty"`
}

// RequiredExperience is an experience a job asks for, with its category.
type RequiredExperience struct {
	Experience
	Category Category `json:"category"`
}

// RequiredSkill is a hard skill a job asks for, with its category.
type RequiredSkill struct {
	Skill    string   `json:"skill"`
	Category Category `json:"category"`
}

// LanguageRequirement describes the proficiency a job expects for a language.
// Required=false means the language is merely recommended and shortfalls are
// penalized more gently.
type LanguageRequirement struct {
	Level    string `json:"level"`
	Required bool   `json:"required"`
}

// Candidate is the structured candidate profile produced by the parsing layer.
// WantsRemote and MinSalary are pointers so that "unknown" is representable:
// missing data must never penalize a candidate.
type Candidate struct {
	ID          string            `json:"id,omitempty"`
	Name        string            `json:"name"`
	Experiences []Experience      `json:"experiences"`
	Degree      string            `json:"degree,omitempty"`
	WantsRemote *bool             `json:"wants_remote,omitempty"`
	MinSalary   *float64          `json:"min_salary,omitempty"`
	HardSkills  []string          `json:"hard_skills"`
	SoftSkills  []string          `json:"soft_skills"`
	Tags        []string          `json:"tags"`
	Languages   map[string]string `json:"languages"`
}

// CandidateRef is a lightweight candidate summary, as returned by ATS
// listing endpoints before the full profile is fetched.
type CandidateRef struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// Job is the structured job posting produced by the parsing layer.
type Job struct {
	ID                  string                         `json:"id,omitempty"`
	Title               string                         `json:"title"`
	RequiredExperiences []RequiredExperience           `json:"required_experiences"`
	RequiredDegree      string                         `json:"required_degree,omitempty"`
	OffersRemote        *bool                          `json:"offers_remote,omitempty"`
	Salary              *float64                       `json:"salary,omitempty"`
	HardSkills          []RequiredSkill                `json:"hard_skills"`
	RequiredSoftSkills  []string                       `json:"required_soft_skills"`
	Tags                []string                       `json:"tags"`
	RequiredLanguages   map[string]LanguageRequirement `json:"required_languages"`
}

// ExperienceDetail records, for one required experience, the best matching
// candidate experience and its sub-scores.
type ExperienceDetail struct {
	RequiredExpName string             `json:"required_exp_name"`
	BestMatchName   string             `json:"best_match_name"`
	Category        Category           `json:"category"`
	BestScore       float64            `json:"best_score"`
	SubScores       map[string]float64 `json:"sub_scores"`
}

// HardSkillDetail records the best candidate match for one required skill.
// CandidateSkill is empty when a mandatory skill fell below the gate.
type HardSkillDetail struct {
	CandidateSkill string   `json:"candidate_skill,omitempty"`
	Score          float64  `json:"score"`
	Category       Category `json:"category"`
}

// SoftSkillDetail records the best required-skill match for one candidate
// soft skill.
type SoftSkillDetail struct {
	CandidateSkill string  `json:"candidate_skill"`
	RequiredSkill  string  `json:"required_skill"`
	Score          float64 `json:"score"`
}

// DegreeDetail is the breakdown of a degree comparison.
type DegreeDetail struct {
	CandidateLevel  string  `json:"candidate_level"`
	RequiredLevel   string  `json:"required_level"`
	LevelScore      float64 `json:"level_score"`
	CandidateField  string  `json:"candidate_field"`
	RequiredField   string  `json:"required_field"`
	FieldSimilarity float64 `json:"field_similarity"`
}

// LanguageDetail is the breakdown of one language comparison.
type LanguageDetail struct {
	CandidateLevel string  `json:"candidate_level"`
	RequiredLevel  string  `json:"required_level"`
	Score          float64 `json:"score"`
	Required       bool    `json:"required"`
}

// MatchBreakdown is the complete per-dimension result of one scoring run.
// TotalScore is nominally in [0,1] but may exceed 1.0 slightly after the tag
// bonus multiplier; that is accepted, not clamped.
type MatchBreakdown struct {
	TotalScore        float64                    `json:"total_score"`
	CandidateName     string                     `json:"candidate_name,omitempty"`
	Reason            string                     `json:"reason,omitempty"`
	WeightedScores    map[string]float64         `json:"weighted_scores,omitempty"`
	Weights           map[string]float64         `json:"weights,omitempty"`
	ExperienceScore   float64                    `json:"experience_score"`
	ExperienceDetails []ExperienceDetail         `json:"experience_details"`
	DegreeScore       float64                    `json:"degree_score"`
	DegreeDetails     *DegreeDetail              `json:"degree_details,omitempty"`
	SalaryScore       float64                    `json:"salary_score"`
	RemoteWorkScore   float64                    `json:"remote_work_score"`
	HardSkillScore    float64                    `json:"hard_skill_score"`
	HardSkillDetails  map[string]HardSkillDetail `json:"hard_skill_details,omitempty"`
	LanguageScore     float64                    `json:"language_score"`
	LanguageDetails   map[string]LanguageDetail  `json:"language_details,omitempty"`
	SoftSkillScore    float64                    `json:"soft_skill_score"`
	SoftSkillDetails  []SoftSkillDetail          `json:"soft_skill_details"`
	TagBonus          float64                    `json:"tag_bonus"`
	CommonTags        []string                   `json:"common_tags"`
	ComputationTime   float64                    `json:"computation_time,omitempty"`
}

// MatchResult is a persisted scoring outcome, unique per (job, candidate).
// Timestamp is unix seconds; freshness checks compare against it directly.
type MatchResult struct {
	JobID       string         `json:"job_id"`
	CandidateID string         `json:"candidate_id"`
	TotalScore  float64        `json:"total_score"`
	Details     MatchBreakdown `json:"details"`
	Timestamp   int64          `json:"timestamp"`
}
