package contacts

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// MatchType buckets a duplicate score.
type MatchType string

const (
	MatchNone   MatchType = "none"
	MatchLow    MatchType = "low"
	MatchMedium MatchType = "medium"
	MatchHigh   MatchType = "high"
	MatchExact  MatchType = "exact"
)

// Reason explains one field's contribution to a duplicate score.
type Reason struct {
	Field   string
	Score   float64
	Message string
}

// DuplicateScore is an ephemeral per-comparison result; it is recomputed on
// every query and never persisted. IsExact is a verbatim field-by-field
// equality check, independent of the fuzzy Score.
type DuplicateScore struct {
	Score     float64
	Reasons   []Reason
	MatchType MatchType
	IsExact   bool
}

// field weights
const (
	weightName      = 30.0
	weightPhones    = 40.0
	weightAddress   = 15.0
	weightCategory  = 10.0
	weightSpecialty = 5.0
)

// DefaultDuplicateThreshold is the score floor used by duplicate listings.
const DefaultDuplicateThreshold = 0.5

// StringSimilarity is normalized Levenshtein similarity: 1 − distance /
// max(len). Inputs are trimmed and compared case-insensitively; an empty
// side yields 0, equal normalized strings yield 1.
func StringSimilarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	maxLen := utf8.RuneCountInString(a)
	if l := utf8.RuneCountInString(b); l > maxLen {
		maxLen = l
	}
	return 1 - float64(dist)/float64(maxLen)
}

// CalculateDuplicateScore compares two contacts with a weighted multi-field
// score normalized by the weights that actually applied: a field enters the
// denominator only when at least one side has data for it (category always
// counts).
func CalculateDuplicateScore(newContact, existing Person) DuplicateScore {
	var total, possible float64
	var reasons []Reason

	if strings.TrimSpace(newContact.Name) != "" || strings.TrimSpace(existing.Name) != "" {
		sim := StringSimilarity(newContact.Name, existing.Name)
		possible += weightName
		total += sim * weightName
		if sim > 0 {
			reasons = append(reasons, Reason{"name", sim, fmt.Sprintf("names are %.0f%% similar", sim*100)})
		}
	}

	newPhones := validPhoneSet(newContact.Phones)
	existingPhones := validPhoneSet(existing.Phones)
	if len(newPhones) > 0 && len(existingPhones) > 0 {
		overlap := phoneOverlap(newPhones, existingPhones)
		possible += weightPhones
		total += overlap * weightPhones
		if overlap > 0 {
			reasons = append(reasons, Reason{"phones", overlap, fmt.Sprintf("%.0f%% of phone numbers shared", overlap*100)})
		}
	}

	if strings.TrimSpace(newContact.Address) != "" || strings.TrimSpace(existing.Address) != "" {
		sim := StringSimilarity(newContact.Address, existing.Address)
		possible += weightAddress
		total += sim * weightAddress
		if sim > 0 {
			reasons = append(reasons, Reason{"address", sim, fmt.Sprintf("addresses are %.0f%% similar", sim*100)})
		}
	}

	// category always participates in the denominator
	possible += weightCategory
	if newContact.Category == existing.Category {
		total += weightCategory
		reasons = append(reasons, Reason{"category", 1, "same category"})
	}

	if strings.TrimSpace(newContact.Specialty) != "" || strings.TrimSpace(existing.Specialty) != "" {
		sim := StringSimilarity(newContact.Specialty, existing.Specialty)
		possible += weightSpecialty
		total += sim * weightSpecialty
		if sim > 0 {
			reasons = append(reasons, Reason{"specialty", sim, fmt.Sprintf("specialties are %.0f%% similar", sim*100)})
		}
	}

	score := 0.0
	if possible > 0 {
		score = total / possible
	}
	return DuplicateScore{
		Score:     score,
		Reasons:   reasons,
		MatchType: matchTypeFor(score),
		IsExact:   isExactMatch(newContact, existing),
	}
}

func matchTypeFor(score float64) MatchType {
	switch {
	case score >= 0.95:
		return MatchExact
	case score >= 0.70:
		return MatchHigh
	case score >= 0.50:
		return MatchMedium
	case score >= 0.30:
		return MatchLow
	}
	return MatchNone
}

// isExactMatch requires verbatim equality of every compared field,
// phones as a sorted set.
func isExactMatch(a, b Person) bool {
	if a.Name != b.Name || a.Category != b.Category ||
		a.Address != b.Address || a.Specialty != b.Specialty || a.Notes != b.Notes {
		return false
	}
	ap := append([]string(nil), a.Phones...)
	bp := append([]string(nil), b.Phones...)
	sort.Strings(ap)
	sort.Strings(bp)
	if len(ap) != len(bp) {
		return false
	}
	for i := range ap {
		if ap[i] != bp[i] {
			return false
		}
	}
	return true
}

func validPhoneSet(phones []string) map[string]bool {
	set := map[string]bool{}
	for _, p := range phones {
		c := CleanPhone(p)
		if c != "" {
			set[c] = true
		}
	}
	return set
}

// phoneOverlap is |common| / max(|a|, |b|).
func phoneOverlap(a, b map[string]bool) float64 {
	common := 0
	for p := range a {
		if b[p] {
			common++
		}
	}
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	return float64(common) / float64(maxLen)
}

// PotentialDuplicate pairs a candidate with its score.
type PotentialDuplicate struct {
	Person Person
	Score  DuplicateScore
}

// FindPotentialDuplicates scores newContact against the whole list and
// returns candidates at or above threshold, best first.
func FindPotentialDuplicates(newContact Person, existing []Person, threshold float64) []PotentialDuplicate {
	var out []PotentialDuplicate
	for _, e := range existing {
		s := CalculateDuplicateScore(newContact, e)
		if s.Score >= threshold {
			out = append(out, PotentialDuplicate{Person: e, Score: s})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score.Score > out[j].Score.Score })
	return out
}
