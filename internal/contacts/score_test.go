package contacts

import (
	"math"
	"testing"
)

func TestStringSimilarity(t *testing.T) {
	if got := StringSimilarity("Ram Kumar", "ram kumar "); got != 1 {
		t.Fatalf("case/trim insensitive equality should be 1, got %v", got)
	}
	if got := StringSimilarity("", "anything"); got != 0 {
		t.Fatalf("empty side should be 0, got %v", got)
	}
	got := StringSimilarity("kitten", "sitting")
	want := 1 - 3.0/7.0
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("kitten/sitting = %v, want %v", got, want)
	}
	if got := StringSimilarity("abc", "xyz"); got != 0 {
		t.Fatalf("disjoint strings = %v, want 0", got)
	}
}

func TestSelfScoreIsExact(t *testing.T) {
	c := Person{
		ID: "1", Name: "Ram Kumar", Category: "plumber",
		Phones: []string{"9876543210"}, Address: "12 Main Road", Specialty: "bathroom fittings",
	}
	s := CalculateDuplicateScore(c, c)
	if s.Score != 1 {
		t.Fatalf("self score = %v, want 1", s.Score)
	}
	if s.MatchType != MatchExact {
		t.Fatalf("self match type = %v", s.MatchType)
	}
	if !s.IsExact {
		t.Fatalf("self comparison must be exact")
	}
}

func TestNearIdenticalContacts(t *testing.T) {
	a := Person{Name: "Ram Kumar", Phones: []string{"9876543210"}}
	b := Person{Name: "Ram Kumar ", Phones: []string{"9876543210"}}
	s := CalculateDuplicateScore(a, b)
	if s.Score < 0.95 {
		t.Fatalf("score = %v, want >= 0.95", s.Score)
	}
	if s.MatchType != MatchExact && s.MatchType != MatchHigh {
		t.Fatalf("match type = %v", s.MatchType)
	}
	// trailing space breaks verbatim equality
	if s.IsExact {
		t.Fatalf("IsExact must be verbatim, trailing space should fail it")
	}
}

func TestIsExactIndependentOfPhoneOrder(t *testing.T) {
	a := Person{Name: "X", Phones: []string{"1111111111", "2222222222"}}
	b := Person{Name: "X", Phones: []string{"2222222222", "1111111111"}}
	if !CalculateDuplicateScore(a, b).IsExact {
		t.Fatalf("phone order must not affect IsExact")
	}
}

func TestPhoneWeightSkippedWhenEmpty(t *testing.T) {
	a := Person{Name: "Ram Kumar"}
	b := Person{Name: "Ram Kumar"}
	s := CalculateDuplicateScore(a, b)
	// name 30 + category 10 of possible 40: still a perfect normalized score
	if s.Score != 1 {
		t.Fatalf("score without phones = %v, want 1", s.Score)
	}
}

func TestDifferentCategoryLowersScore(t *testing.T) {
	a := Person{Name: "Ram Kumar", Category: "plumber", Phones: []string{"9876543210"}}
	b := Person{Name: "Ram Kumar", Category: "electrician", Phones: []string{"9876543210"}}
	s := CalculateDuplicateScore(a, b)
	want := 70.0 / 80.0
	if math.Abs(s.Score-want) > 1e-9 {
		t.Fatalf("score = %v, want %v", s.Score, want)
	}
	if s.IsExact {
		t.Fatalf("different categories cannot be exact")
	}
}

func TestPartialPhoneOverlap(t *testing.T) {
	a := Person{Name: "A", Phones: []string{"1111111111", "2222222222"}}
	b := Person{Name: "B", Phones: []string{"2222222222"}}
	s := CalculateDuplicateScore(a, b)
	var phoneReason *Reason
	for i := range s.Reasons {
		if s.Reasons[i].Field == "phones" {
			phoneReason = &s.Reasons[i]
		}
	}
	if phoneReason == nil || math.Abs(phoneReason.Score-0.5) > 1e-9 {
		t.Fatalf("phone overlap = %+v, want 0.5", phoneReason)
	}
}

func TestMatchTypeThresholds(t *testing.T) {
	cases := []struct {
		score float64
		want  MatchType
	}{
		{0.96, MatchExact}, {0.95, MatchExact}, {0.80, MatchHigh}, {0.70, MatchHigh},
		{0.60, MatchMedium}, {0.50, MatchMedium}, {0.40, MatchLow}, {0.30, MatchLow},
		{0.29, MatchNone}, {0, MatchNone},
	}
	for _, c := range cases {
		if got := matchTypeFor(c.score); got != c.want {
			t.Fatalf("matchTypeFor(%v) = %v, want %v", c.score, got, c.want)
		}
	}
}

func TestFindPotentialDuplicates(t *testing.T) {
	target := Person{Name: "Ram Kumar", Phones: []string{"9876543210"}}
	existing := []Person{
		{ID: "a", Name: "Ram Kumar", Phones: []string{"9876543210"}},
		{ID: "b", Name: "Shyam Singh", Phones: []string{"1234512345"}},
		{ID: "c", Name: "Ram Kumarr", Phones: []string{"9876543210"}},
	}
	got := FindPotentialDuplicates(target, existing, DefaultDuplicateThreshold)
	if len(got) != 2 {
		t.Fatalf("want 2 candidates, got %d", len(got))
	}
	if got[0].Person.ID != "a" {
		t.Fatalf("results not sorted best-first: %v", got[0].Person.ID)
	}
	for _, pd := range got {
		if pd.Score.Score < DefaultDuplicateThreshold {
			t.Fatalf("candidate below threshold: %v", pd.Score.Score)
		}
	}
}
