package rank

import (
	"testing"

	"leadgen-engine/internal/domain"
)

func baseLead() domain.CandidateLead {
	return domain.CandidateLead{
		Name:           "Fallback Person",
		NameIsFallback: true,
		Company:        domain.CompanyNotSpecified,
		JobTitle:       domain.GenericJobTitle,
		Location:       domain.LocationNotSpecified,
	}
}

func TestScore_BaseOnly(t *testing.T) {
	s := NewWeightScorer(DefaultWeights())
	if got := s.Score(baseLead(), domain.SearchCriteria{}); got != 50 {
		t.Errorf("bare lead score = %d, want 50", got)
	}
}

func TestScore_EmailAddsExactly25(t *testing.T) {
	s := NewWeightScorer(DefaultWeights())
	lead := baseLead()
	without := s.Score(lead, domain.SearchCriteria{})

	lead.Email = "a@b.com"
	with := s.Score(lead, domain.SearchCriteria{})
	if with-without != 25 {
		t.Errorf("email delta = %d, want 25", with-without)
	}
}

func TestScore_FieldWeights(t *testing.T) {
	s := NewWeightScorer(DefaultWeights())
	tests := []struct {
		name   string
		mutate func(*domain.CandidateLead)
		want   int
	}{
		{"phone", func(l *domain.CandidateLead) { l.Phone = "555-555-0100" }, 70},
		{"real name", func(l *domain.CandidateLead) { l.Name = "Jane Smith"; l.NameIsFallback = false }, 65},
		{"company", func(l *domain.CandidateLead) { l.Company = "Acme" }, 60},
	}
	for _, tt := range tests {
		lead := baseLead()
		tt.mutate(&lead)
		if got := s.Score(lead, domain.SearchCriteria{}); got != tt.want {
			t.Errorf("%s: score = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestScore_CriteriaMatches(t *testing.T) {
	s := NewWeightScorer(DefaultWeights())
	c := domain.SearchCriteria{
		Industries: []string{"Technology"},
		Location:   domain.Location{City: "Austin"},
		JobTitle:   "Engineer",
	}
	lead := baseLead()
	lead.Industry = "Technology"
	lead.Location = "Austin, TX"
	lead.JobTitle = "Senior Engineer"

	// 50 + 10 industry + 10 location + 15 title
	if got := s.Score(lead, c); got != 85 {
		t.Errorf("score = %d, want 85", got)
	}
}

func TestScore_ClampAt100(t *testing.T) {
	s := NewWeightScorer(DefaultWeights())
	c := domain.SearchCriteria{
		Industries: []string{"Technology"},
		Location:   domain.Location{City: "Austin"},
		JobTitle:   "Engineer",
	}
	lead := domain.CandidateLead{
		Name:     "Jane Smith",
		Company:  "Acme Inc",
		JobTitle: "Senior Engineer",
		Email:    "jane@acme.com",
		Phone:    "(512) 555-0134",
		Location: "Austin, TX",
		Industry: "Technology",
	}
	if got := s.Score(lead, c); got != 100 {
		t.Errorf("score = %d, want clamp at 100", got)
	}
}

func TestKeep_Threshold(t *testing.T) {
	under := domain.CandidateLead{Score: 59}
	if keep, reason := Keep(under, domain.SearchCriteria{}); keep || reason != "below_threshold" {
		t.Errorf("score 59 should be discarded, keep=%v reason=%q", keep, reason)
	}
	at := domain.CandidateLead{Score: 60}
	if keep, _ := Keep(at, domain.SearchCriteria{}); !keep {
		t.Error("score 60 should be kept")
	}
}

func TestKeep_RequiredFields(t *testing.T) {
	lead := domain.CandidateLead{Score: 95, Phone: "555-555-0100"}

	if keep, reason := Keep(lead, domain.SearchCriteria{RequireEmail: true}); keep || reason != "missing_email" {
		t.Errorf("requireEmail must discard regardless of score, keep=%v reason=%q", keep, reason)
	}

	lead.Email = "x@y.com"
	lead.Phone = ""
	if keep, reason := Keep(lead, domain.SearchCriteria{RequirePhone: true}); keep || reason != "missing_phone" {
		t.Errorf("requirePhone must discard regardless of score, keep=%v reason=%q", keep, reason)
	}

	lead.Phone = "555-555-0100"
	if keep, _ := Keep(lead, domain.SearchCriteria{RequireEmail: true, RequirePhone: true}); !keep {
		t.Error("lead with both contact fields should pass")
	}
}
