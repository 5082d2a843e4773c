package similarity

// skillRelations is the static knowledge base of related technical skills,
// keyed by normalized base skill. It answers the common cases up front so
// that the oracle is only consulted for genuinely novel pairs.
var skillRelations = map[string][]string{
	// Programming languages and associated technologies
	"javascript": {"js", "es6", "ecmascript", "typescript", "angular", "react", "vue", "nodejs", "jquery"},
	"typescript": {"ts", "javascript", "angular", "react"},
	"python":     {"django", "flask", "fastapi", "numpy", "pandas", "scipy", "tensorflow", "pytorch", "scikitlearn", "machine learning"},
	"java":       {"spring", "hibernate", "j2ee", "kotlin", "scala", "android"},
	"c#":         {"dotnet", "net", "aspnet", "entity framework", "xamarin", "unity"},
	"c++":        {"c", "stl", "boost", "qt", "unreal engine"},
	"php":        {"laravel", "symfony", "wordpress", "drupal", "magento"},
	"ruby":       {"ruby on rails", "sinatra", "rspec"},
	"swift":      {"ios", "cocoa", "objectivec", "xcode"},
	"go":         {"golang", "gin", "echo"},
	"rust":       {"cargo", "actix", "tokio"},

	// Web technologies
	"html":    {"html5", "css", "web development", "frontend"},
	"css":     {"scss", "sass", "less", "bootstrap", "tailwind", "styled components", "html"},
	"react":   {"reactjs", "jsx", "redux", "react native", "javascript", "typescript"},
	"angular": {"angularjs", "typescript", "javascript"},
	"vue":     {"vuejs", "nuxt", "javascript"},

	// Databases
	"sql":        {"mysql", "postgresql", "oracle", "ms sql", "sqlite", "database", "db"},
	"nosql":      {"mongodb", "couchdb", "firebase", "dynamodb", "database", "db"},
	"mongodb":    {"mongo", "nosql", "database", "db"},
	"postgresql": {"postgres", "sql", "database", "db"},

	// Cloud & DevOps
	"aws":        {"amazon web services", "ec2", "s3", "lambda", "cloud"},
	"azure":      {"microsoft azure", "cloud"},
	"gcp":        {"google cloud platform", "cloud"},
	"docker":     {"container", "kubernetes", "k8s", "devops"},
	"kubernetes": {"k8s", "container orchestration", "docker", "devops"},
	"cicd":       {"continuous integration", "continuous deployment", "jenkins", "github actions", "gitlab ci", "devops"},

	// Data science
	"machine learning": {"ml", "ai", "artificial intelligence", "data science", "deep learning", "neural networks"},
	"data science":     {"machine learning", "statistics", "data analysis", "big data", "python", "r"},
	"tensorflow":       {"keras", "deep learning", "machine learning", "python"},
	"pytorch":          {"deep learning", "machine learning", "python"},

	// Mobile development
	"android":      {"kotlin", "java", "mobile development"},
	"ios":          {"swift", "objectivec", "mobile development"},
	"react native": {"react", "mobile development", "javascript", "typescript"},
	"flutter":      {"dart", "mobile development"},

	// Version control
	"git": {"github", "gitlab", "bitbucket", "version control"},

	// Misc
	"agile":    {"scrum", "kanban", "jira", "project management"},
	"rest api": {"api", "restful", "web services"},
	"graphql":  {"api", "apollo"},
}

// Relation scores: a direct base↔related match is a near-synonym, two skills
// related to the same base are cousins.
const (
	relationDirectScore = 0.85
	relationSharedScore = 0.70
)

// CheckSkillRelation reports the predefined similarity between two hard
// skills, if any. Operands are expected to be already normalized.
func CheckSkillRelation(skill1, skill2 string) (float64, bool) {
	// Direct matches take precedence over shared-base matches regardless of
	// map iteration order.
	for base, related := range skillRelations {
		if (skill1 == base && contains(related, skill2)) ||
			(skill2 == base && contains(related, skill1)) {
			return relationDirectScore, true
		}
	}
	for _, related := range skillRelations {
		if contains(related, skill1) && contains(related, skill2) {
			return relationSharedScore, true
		}
	}
	return 0, false
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
