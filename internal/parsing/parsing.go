// Package parsing converts raw ATS records into the internal candidate and
// job model.
package parsing

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const dateLayout = "2006-01-02"

// CalculateMonths returns the whole months between two YYYY-MM-DD dates. An
// empty end date means "still ongoing" and counts up to today. Unparseable
// dates yield 0.
func CalculateMonths(startDate, endDate string) int {
	if startDate == "" {
		return 0
	}

	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return 0
	}

	end := time.Now()
	if endDate != "" {
		end, err = time.Parse(dateLayout, endDate)
		if err != nil {
			return 0
		}
	}

	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if end.Day() < start.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

// textSeparator joins extracted text fragments. Requirement lists split on
// it downstream, so each HTML block becomes one requirement entry.
const textSeparator = "\n-"

// ExtractText strips HTML from content, joining the text fragments with the
// block separator. Content that fails to parse is returned as-is.
func ExtractText(content string) string {
	if content == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return content
	}

	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode && strings.TrimSpace(n.Data) != "" {
			parts = append(parts, n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, node := range doc.Nodes {
		walk(node)
	}

	return strings.Join(parts, textSeparator)
}

// softSkillVocabulary lists the behavioural skill keywords recognized in
// free text, in both French and English.
var softSkillVocabulary = []string{
	"communication", "teamwork", "travail d'équipe", "leadership",
	"problem solving", "résolution de problèmes", "creativity", "créativité",
	"adaptability", "adaptabilité", "time management", "gestion du temps",
	"critical thinking", "organisation", "collaboration", "autonomie", "autonomy",
	"attention to detail", "attention aux détails", "flexibility", "flexibilité",
	"interpersonal", "interpersonnel", "motivation", "persuasion", "negotiation", "négociation",
}

// ExtractSoftSkills finds known behavioural skill keywords in text.
func ExtractSoftSkills(text string) []string {
	if text == "" {
		return nil
	}

	lower := strings.ToLower(text)
	var found []string
	for _, skill := range softSkillVocabulary {
		if strings.Contains(lower, skill) {
			found = append(found, skill)
		}
	}
	return found
}

// dedupe keeps the first occurrence of each string, up to limit entries.
func dedupe(values []string, limit int) []string {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
		if len(out) == limit {
			break
		}
	}
	return out
}

// titleStopwords are connector words excluded from tag derivation.
var titleStopwords = map[string]bool{
	"and": true, "with": true, "pour": true, "avec": true, "dans": true, "chez": true,
}

// truncate limits s to max runes, appending an ellipsis when cut.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
