package enhance

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"leadgen-engine/internal/domain"
)

// Enhancer merges completion-derived fields over a pattern-derived lead.
// MaxPerBatch caps how many leads of one batch get enhanced; the upstream
// behaviour of enhancing only the first lead is the default (cost control).
type Enhancer struct {
	Completer   Completer
	MaxPerBatch int
}

func New(c Completer, maxPerBatch int) *Enhancer {
	if maxPerBatch < 0 {
		maxPerBatch = 0
	}
	return &Enhancer{Completer: c, MaxPerBatch: maxPerBatch}
}

// fields the completion may supply; anything else in the returned object is
// ignored.
type enhancedFields struct {
	Name     string `json:"name"`
	Company  string `json:"company"`
	JobTitle string `json:"jobTitle"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

// EnhanceBatch enhances up to MaxPerBatch leads in place. Always succeeds;
// failures leave the pattern-derived leads untouched.
func (e *Enhancer) EnhanceBatch(ctx context.Context, leads []domain.CandidateLead, snippets []string) {
	if e == nil || e.Completer == nil || e.MaxPerBatch == 0 {
		return
	}
	n := e.MaxPerBatch
	if n > len(leads) {
		n = len(leads)
	}
	for i := 0; i < n; i++ {
		snippet := ""
		if i < len(snippets) {
			snippet = snippets[i]
		}
		e.enhance(ctx, &leads[i], snippet)
	}
}

func (e *Enhancer) enhance(ctx context.Context, lead *domain.CandidateLead, snippet string) {
	missing := missingFields(*lead)
	if len(missing) == 0 {
		return
	}

	prompt := buildPrompt(*lead, snippet, missing)
	text, err := e.Completer.Complete(ctx, prompt)
	if err != nil {
		log.Printf("[enhance] completion failed, keeping pattern-derived lead: %v", err)
		return
	}

	obj, ok := ExtractJSONObject(text)
	if !ok {
		log.Printf("[enhance] no JSON object in completion output, skipping")
		return
	}

	var f enhancedFields
	if err := json.Unmarshal(obj, &f); err != nil {
		log.Printf("[enhance] unusable JSON in completion output: %v", err)
		return
	}

	// Only previously-missing fields are merged.
	if f.Email != "" && lead.Email == "" {
		lead.Email = strings.TrimSpace(f.Email)
	}
	if f.Phone != "" && lead.Phone == "" {
		lead.Phone = strings.TrimSpace(f.Phone)
	}
	if f.Name != "" && !lead.HasRealName() {
		lead.Name = strings.TrimSpace(f.Name)
		lead.NameIsFallback = false
	}
	if f.Company != "" && !lead.HasCompany() {
		lead.Company = strings.TrimSpace(f.Company)
	}
	if f.JobTitle != "" && lead.JobTitle == domain.GenericJobTitle {
		lead.JobTitle = strings.TrimSpace(f.JobTitle)
	}
	if f.Location != "" && lead.Location == domain.LocationNotSpecified {
		lead.Location = strings.TrimSpace(f.Location)
	}
}

func missingFields(l domain.CandidateLead) []string {
	var out []string
	if l.Email == "" {
		out = append(out, "email")
	}
	if l.Phone == "" {
		out = append(out, "phone")
	}
	if !l.HasRealName() {
		out = append(out, "name")
	}
	if !l.HasCompany() {
		out = append(out, "company")
	}
	if l.JobTitle == domain.GenericJobTitle {
		out = append(out, "jobTitle")
	}
	if l.Location == domain.LocationNotSpecified {
		out = append(out, "location")
	}
	return out
}

func buildPrompt(l domain.CandidateLead, snippet string, missing []string) string {
	known, _ := json.Marshal(l)
	return fmt.Sprintf(
		"Given this partially-extracted sales lead and the search snippet it came from, "+
			"reply with a single JSON object containing only these missing fields when the snippet supports them: %s.\n"+
			"Do not guess. Omit fields you cannot determine.\n\nLead: %s\n\nSnippet: %s",
		strings.Join(missing, ", "), string(known), snippet,
	)
}

// ExtractJSONObject locates an embedded JSON object by scanning from the
// first '{' to the last '}'. Missing or malformed JSON means "no enhancement
// available", not an error.
func ExtractJSONObject(s string) (json.RawMessage, bool) {
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end <= start {
		return nil, false
	}
	raw := json.RawMessage(s[start : end+1])
	if !json.Valid(raw) {
		return nil, false
	}
	return raw, true
}
