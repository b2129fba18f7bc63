// Package dedupe merges leads gathered across platforms. Keyed by email when
// present, otherwise name+company; a key collision keeps the higher-scored
// lead, ties keep the first seen. No cross-key merging of partial records.
package dedupe

import "leadgen-engine/internal/domain"

// Dedupe is a single linear pass with a key -> best-lead map. Output order is
// first-seen key order; callers sort by score afterwards.
func Dedupe(leads []domain.CandidateLead) []domain.CandidateLead {
	best := make(map[string]domain.CandidateLead, len(leads))
	var order []string

	for _, lead := range leads {
		key := lead.DedupeKey()
		cur, ok := best[key]
		if !ok {
			best[key] = lead
			order = append(order, key)
			continue
		}
		if lead.Score > cur.Score {
			best[key] = lead
		}
	}

	out := make([]domain.CandidateLead, 0, len(order))
	for _, key := range order {
		out = append(out, best[key])
	}
	return out
}
