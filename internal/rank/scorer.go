package rank

import "leadgen-engine/internal/domain"

type Scorer interface {
	Score(lead domain.CandidateLead, criteria domain.SearchCriteria) int
}

// Weights are the per-signal score contributions. The sums deliberately can
// exceed 100 before clamping; the ceiling is the clamp, not the weights.
type Weights struct {
	Base          int `yaml:"base" json:"base"`
	Email         int `yaml:"email" json:"email"`
	Phone         int `yaml:"phone" json:"phone"`
	Name          int `yaml:"name" json:"name"`
	Company       int `yaml:"company" json:"company"`
	IndustryMatch int `yaml:"industry_match" json:"industry_match"`
	LocationMatch int `yaml:"location_match" json:"location_match"`
	TitleMatch    int `yaml:"title_match" json:"title_match"`
}

func DefaultWeights() Weights {
	return Weights{
		Base:          50,
		Email:         25,
		Phone:         20,
		Name:          15,
		Company:       10,
		IndustryMatch: 10,
		LocationMatch: 10,
		TitleMatch:    15,
	}
}

// MinScore is the quality threshold below which leads are discarded.
const MinScore = 60
