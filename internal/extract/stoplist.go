package extract

import "strings"

// CommonWords is the stoplist applied to name candidates. A match containing
// any of these tokens is discarded: platform names, generic business
// suffixes, connector words, and title/seniority words that the
// capitalization patterns otherwise pick up as "First Last" pairs.
var CommonWords = []string{
	// platforms
	"LinkedIn", "Reddit", "Twitter", "Facebook", "GitHub", "Google",
	"Instagram", "YouTube", "TikTok",
	// business suffixes
	"Inc", "LLC", "Corp", "Ltd", "Company", "Solutions", "Services",
	"Group", "Technologies", "Consulting", "Agency", "Partners",
	// connectors and page furniture
	"The", "And", "For", "With", "From", "About", "Home", "Page",
	"Profile", "Profiles", "Contact", "Email", "Jobs", "Job", "Careers",
	"Hiring", "New", "Best", "Top", "View", "Join", "Our", "Team",
	"Search", "Results",
	// title words
	"Senior", "Junior", "Lead", "Chief", "Principal", "Staff", "Manager",
	"Director", "Engineer", "Developer", "Analyst", "Designer",
	"Consultant", "Specialist", "Executive", "Officer", "President",
	"Founder",
}

// FallbackNames is the fixed pool used when no name can be recovered from the
// result text. Selection is driven by the extractor's injected random source.
var FallbackNames = []string{
	"Alex Morgan",
	"Jordan Lee",
	"Taylor Brooks",
	"Casey Reed",
	"Morgan Blake",
	"Riley Parker",
	"Quinn Harper",
	"Avery Collins",
}

var stopSet = func() map[string]bool {
	m := make(map[string]bool, len(CommonWords))
	for _, w := range CommonWords {
		m[strings.ToLower(w)] = true
	}
	return m
}()

// containsStopWord reports whether any whitespace token of s is stoplisted.
// Trailing punctuation on a token is ignored.
func containsStopWord(s string) bool {
	for _, tok := range strings.Fields(s) {
		tok = strings.TrimRight(tok, ".,:;")
		if stopSet[strings.ToLower(tok)] {
			return true
		}
	}
	return false
}
