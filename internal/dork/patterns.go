package dork

import (
	"fmt"
	"regexp"
	"strings"

	"leadgen-engine/internal/domain"
)

// Pattern is one dork template. Templates may contain placeholder tokens
// ({industry}, {role}, {location}, {city}, {state}, {company_type}, {domain})
// that Expand fills from criteria.
type Pattern struct {
	Category string
	Template string
}

// Category names for the built-in catalog.
const (
	CategoryContactInfo  = "contact_info"
	CategoryProfessional = "professional_networks"
	CategoryDirectories  = "directories"
	CategorySocial       = "social"
	CategoryWebsites     = "websites"
)

// Catalog is the built-in dork template library, grouped by category.
var Catalog = []Pattern{
	{CategoryContactInfo, `"{industry}" "{location}" (email OR "contact us" OR @gmail.com OR @outlook.com)`},
	{CategoryContactInfo, `"{role}" "{city}" intext:email intext:phone`},
	{CategoryContactInfo, `"{industry}" "contact" "{city}" -jobs -hiring`},
	{CategoryProfessional, `site:linkedin.com/in "{role}" "{location}" (email OR contact)`},
	{CategoryProfessional, `site:linkedin.com/company "{industry}" "{city}"`},
	{CategoryProfessional, `site:github.com "{role}" "{location}" email`},
	{CategoryDirectories, `site:yelp.com "{industry}" "{city}" phone`},
	{CategoryDirectories, `site:yellowpages.com "{industry}" "{state}"`},
	{CategoryDirectories, `"{industry}" directory "{location}" contact`},
	{CategorySocial, `site:twitter.com "{role}" "{industry}" contact`},
	{CategorySocial, `site:reddit.com "{industry}" "{city}" (email OR DM)`},
	{CategoryWebsites, `"{company_type}" "{location}" "contact us" email`},
	{CategoryWebsites, `site:{domain} "{industry}" (email OR contact)`},
}

// UnresolvedPolicy controls what happens to a clause whose placeholder has no
// criteria value. The upstream behaviour was to leave the literal token in the
// query, which is never useful; dropping the clause is the default here.
type UnresolvedPolicy int

const (
	DropUnresolved UnresolvedPolicy = iota
	LeaveUnresolved
	ErrorUnresolved
)

func ParseUnresolvedPolicy(s string) (UnresolvedPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "drop":
		return DropUnresolved, nil
	case "leave":
		return LeaveUnresolved, nil
	case "error":
		return ErrorUnresolved, nil
	}
	return DropUnresolved, fmt.Errorf("unknown unresolved placeholder policy %q", s)
}

var tokenRe = regexp.MustCompile(`\{[a-z_]+\}`)

// Expand substitutes placeholder tokens from criteria. Tokens with no value
// are handled per policy: the whole clause containing the token is dropped,
// the literal token is left in place, or an error is returned. Returns the
// empty string when nothing content-bearing survives.
func Expand(p Pattern, c domain.SearchCriteria, policy UnresolvedPolicy) (string, error) {
	values := map[string]string{
		"{industry}":     c.PrimaryIndustry(),
		"{role}":         strings.TrimSpace(c.JobTitle),
		"{location}":     c.Location.String(),
		"{city}":         strings.TrimSpace(c.Location.City),
		"{state}":        strings.TrimSpace(c.Location.State),
		"{company_type}": strings.TrimSpace(c.CompanySize),
		"{domain}":       "", // only meaningful when the caller scopes to a site
	}

	replaced := tokenRe.ReplaceAllStringFunc(p.Template, func(tok string) string {
		if v, ok := values[tok]; ok && v != "" {
			return v
		}
		return tok // leave for clause handling below
	})

	if !tokenRe.MatchString(replaced) {
		return replaced, nil
	}

	switch policy {
	case LeaveUnresolved:
		return replaced, nil
	case ErrorUnresolved:
		return "", fmt.Errorf("pattern %q: unresolved placeholder %s", p.Template, tokenRe.FindString(replaced))
	}

	// DropUnresolved: remove every clause still carrying a token.
	var kept []string
	hasContent := false
	for _, clause := range splitClauses(replaced) {
		if tokenRe.MatchString(clause) {
			continue
		}
		kept = append(kept, clause)
		if !strings.HasPrefix(clause, "site:") {
			hasContent = true
		}
	}
	if !hasContent {
		return "", nil
	}
	return strings.Join(kept, " "), nil
}

// splitClauses splits a query on whitespace, keeping quoted phrases and
// parenthesized groups as single clauses.
func splitClauses(s string) []string {
	var out []string
	var cur strings.Builder
	depth := 0
	inQuote := false
	flush := func() {
		if cur.Len() > 0 {
			out = append(out, cur.String())
			cur.Reset()
		}
	}
	for _, r := range s {
		switch {
		case r == '"':
			inQuote = !inQuote
			cur.WriteRune(r)
		case r == '(' && !inQuote:
			depth++
			cur.WriteRune(r)
		case r == ')' && !inQuote:
			if depth > 0 {
				depth--
			}
			cur.WriteRune(r)
		case r == ' ' && !inQuote && depth == 0:
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return out
}
