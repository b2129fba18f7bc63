package extract

import (
	"regexp"
	"strings"
)

// Strategy is one extraction attempt: pure text in, candidate out. Strategies
// are tried in a fixed priority order; the first success wins.
type Strategy func(text string) (string, bool)

var (
	emailRe = regexp.MustCompile(`[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}`)
	phoneRe = regexp.MustCompile(`(?:\+?1[\s.\-]?)?\(?\d{3}\)?[\s.\-]?\d{3}[\s.\-]?\d{4}`)

	// Capitalization patterns for person names, in priority order.
	nameTwoWordRe   = regexp.MustCompile(`\b[A-Z][a-z]+ [A-Z][a-z]+\b`)
	nameInitialRe   = regexp.MustCompile(`\b[A-Z][a-z]+ [A-Z]\. [A-Z][a-z]+\b`)
	nameThreeWordRe = regexp.MustCompile(`\b[A-Z][a-z]+ [A-Z][a-z]+(?: [A-Z][a-z]+)?\b`)

	companyWorksAtRe = regexp.MustCompile(`\bworks at ([A-Z][\w&.'\-]*(?: [A-Z][\w&.'\-]*){0,3})`)
	companyAtRe      = regexp.MustCompile(`\bat ([A-Z][\w&.'\-]*(?: [A-Z][\w&.'\-]*){0,3})`)
	companySuffixRe  = regexp.MustCompile(`\b([A-Z][\w&.'\-]*(?: [A-Z][\w&.'\-]*){0,2}) (?:Inc\.?|LLC|Corp\.?|Ltd\.?)\b`)
	companyDashRe    = regexp.MustCompile(`- ([A-Z][\w&.'\-]*(?: [A-Z][\w&.'\-]*){0,3})`)

	titleSeniorityRe = regexp.MustCompile(`(?i)\b((?:senior|junior|lead|principal|staff|chief|head of|vp of|vice president of|director of)\s+(?:[a-z]+\s+)?(?:engineer|engineering|developer|manager|designer|analyst|consultant|architect|marketing|sales|product|operations|scientist|officer|executive))\b`)
	titlePhraseRe    = regexp.MustCompile(`(?i)\b(ceo|cto|cfo|coo|founder|co-founder|owner|president|software engineer|product manager|account executive|sales manager|marketing manager|business development|data scientist|project manager|general manager|operations manager|recruiter)\b`)

	locationCityStateRe   = regexp.MustCompile(`\b([A-Z][a-z]+(?: [A-Z][a-z]+)*), ([A-Z]{2})\b`)
	locationCityCountryRe = regexp.MustCompile(`\b([A-Z][a-z]+(?: [A-Z][a-z]+)*) ([A-Z][a-z]+), ([A-Z][a-z]+)\b`)

	leadingConnectorRe = regexp.MustCompile(`^(?:The|A|An) `)
)

// NameStrategies returns the ordered name cascade for a result's combined
// text: three capitalization patterns, stoplist-filtered, then synthesis from
// the title's capitalized words.
func NameStrategies(title string) []Strategy {
	patterns := func(re *regexp.Regexp) Strategy {
		return func(text string) (string, bool) {
			for _, m := range dedupe(re.FindAllString(text, -1)) {
				if len(strings.Fields(m)) < 2 {
					continue
				}
				if containsStopWord(m) {
					continue
				}
				return m, true
			}
			return "", false
		}
	}

	return []Strategy{
		patterns(nameTwoWordRe),
		patterns(nameInitialRe),
		patterns(nameThreeWordRe),
		func(string) (string, bool) { return synthesizeNameFromTitle(title) },
	}
}

// synthesizeNameFromTitle joins the first two capitalized, non-stoplisted
// words of a result title.
func synthesizeNameFromTitle(title string) (string, bool) {
	var words []string
	for _, tok := range strings.Fields(title) {
		tok = strings.Trim(tok, `.,:;"'()|`)
		if len(tok) < 2 || !isCapitalizedWord(tok) || containsStopWord(tok) {
			continue
		}
		words = append(words, tok)
		if len(words) == 2 {
			return strings.Join(words, " "), true
		}
	}
	return "", false
}

func isCapitalizedWord(s string) bool {
	if s == "" {
		return false
	}
	first := rune(s[0])
	if first < 'A' || first > 'Z' {
		return false
	}
	for _, r := range s[1:] {
		if (r < 'a' || r > 'z') && r != '\'' && r != '-' {
			return false
		}
	}
	return true
}

// CompanyStrategies is the ordered company cascade: "works at X", "at X",
// "X Inc./LLC/Corp.", then "- X". Leading connector words are stripped from
// the capture.
var CompanyStrategies = []Strategy{
	captureStrategy(companyWorksAtRe),
	captureStrategy(companyAtRe),
	captureStrategy(companySuffixRe),
	captureStrategy(companyDashRe),
}

func captureStrategy(re *regexp.Regexp) Strategy {
	return func(text string) (string, bool) {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			c := cleanCompany(m[0], m[1], re == companySuffixRe)
			if c != "" {
				return c, true
			}
		}
		return "", false
	}
}

// trailingFurniture are capitalized page words the greedy company capture
// tends to swallow ("at Acme Inc Contact: ...").
var trailingFurniture = map[string]bool{
	"contact": true, "email": true, "jobs": true, "job": true,
	"hiring": true, "careers": true, "page": true, "profile": true,
	"view": true, "join": true,
}

func cleanCompany(full, captured string, keepSuffix bool) string {
	c := captured
	if keepSuffix {
		// the suffix pattern's interesting text is the whole match (X Inc.)
		c = full
	}
	c = leadingConnectorRe.ReplaceAllString(strings.TrimSpace(c), "")
	c = strings.Trim(c, ".,")

	fields := strings.Fields(c)
	for len(fields) > 0 && trailingFurniture[strings.ToLower(strings.Trim(fields[len(fields)-1], ".,:;"))] {
		fields = fields[:len(fields)-1]
	}
	c = strings.Join(fields, " ")

	if c == "" || len(fields) > 4 {
		return ""
	}
	return c
}

// TitleStrategies is the ordered job-title cascade: seniority+domain keyword,
// then a fixed list of common title phrases.
var TitleStrategies = []Strategy{
	func(text string) (string, bool) {
		if m := titleSeniorityRe.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1]), true
		}
		return "", false
	},
	func(text string) (string, bool) {
		if m := titlePhraseRe.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1]), true
		}
		return "", false
	},
}

// LocationStrategies matches "City, ST" then "City State, Country".
var LocationStrategies = []Strategy{
	func(text string) (string, bool) {
		if m := locationCityStateRe.FindString(text); m != "" {
			return m, true
		}
		return "", false
	},
	func(text string) (string, bool) {
		if m := locationCityCountryRe.FindString(text); m != "" {
			return m, true
		}
		return "", false
	},
}

// runStrategies tries each strategy in order and returns the first success.
func runStrategies(strategies []Strategy, text string) (string, bool) {
	for _, s := range strategies {
		if v, ok := s(text); ok {
			return v, true
		}
	}
	return "", false
}

func dedupe(in []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
