package rank

import (
	"strings"

	"leadgen-engine/internal/domain"
)

// WeightScorer scores a candidate lead by which fields were recovered and how
// well they line up with the original criteria. Clamped to [0,100] after
// summing.
type WeightScorer struct {
	Weights Weights
}

func NewWeightScorer(w Weights) WeightScorer {
	return WeightScorer{Weights: w}
}

func (s WeightScorer) Score(lead domain.CandidateLead, criteria domain.SearchCriteria) int {
	w := s.Weights
	score := w.Base

	if strings.TrimSpace(lead.Email) != "" {
		score += w.Email
	}
	if strings.TrimSpace(lead.Phone) != "" {
		score += w.Phone
	}
	if lead.HasRealName() {
		score += w.Name
	}
	if lead.HasCompany() {
		score += w.Company
	}

	industry := strings.ToLower(lead.Industry)
	for _, ind := range criteria.Industries {
		ind = strings.ToLower(strings.TrimSpace(ind))
		if ind != "" && strings.Contains(industry, ind) {
			score += w.IndustryMatch
			break
		}
	}

	if city := strings.ToLower(strings.TrimSpace(criteria.Location.City)); city != "" {
		if strings.Contains(strings.ToLower(lead.Location), city) {
			score += w.LocationMatch
		}
	}

	if title := strings.ToLower(strings.TrimSpace(criteria.JobTitle)); title != "" {
		if strings.Contains(strings.ToLower(lead.JobTitle), title) {
			score += w.TitleMatch
		}
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// Keep is the validation gate applied after scoring: the fixed quality
// threshold plus the hard requireEmail/requirePhone filters.
func Keep(lead domain.CandidateLead, criteria domain.SearchCriteria) (keep bool, reason string) {
	if criteria.RequireEmail && strings.TrimSpace(lead.Email) == "" {
		return false, "missing_email"
	}
	if criteria.RequirePhone && strings.TrimSpace(lead.Phone) == "" {
		return false, "missing_phone"
	}
	if lead.Score < MinScore {
		return false, "below_threshold"
	}
	return true, ""
}
