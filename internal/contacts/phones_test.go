package contacts

import (
	"reflect"
	"testing"
)

func TestCleanAndDeduplicatePhones(t *testing.T) {
	got := CleanAndDeduplicatePhones([]string{"987 654 3210", "9876543210"})
	if !reflect.DeepEqual(got, []string{"9876543210"}) {
		t.Fatalf("got %v", got)
	}
	got = CleanAndDeduplicatePhones([]string{" ", "", "  "})
	if !reflect.DeepEqual(got, []string{""}) {
		t.Fatalf("empty input should yield the sentinel slot, got %v", got)
	}
	got = CleanAndDeduplicatePhones([]string{"1111111111", "2222222222", "111 111 1111"})
	if !reflect.DeepEqual(got, []string{"1111111111", "2222222222"}) {
		t.Fatalf("order not preserved or dedup failed: %v", got)
	}
}

func TestValidatePhone(t *testing.T) {
	if err := ValidatePhone("987 654 3210"); err != nil {
		t.Fatalf("spaced ten-digit number should validate: %v", err)
	}
	if err := ValidatePhone("98765abc10"); err == nil {
		t.Fatalf("non-digit value must fail")
	}
	if err := ValidatePhone("12345"); err == nil {
		t.Fatalf("short value must fail")
	}
	// the two failure modes read differently
	nonDigit := ValidatePhone("98765abc10").Error()
	short := ValidatePhone("12345").Error()
	if nonDigit == short {
		t.Fatalf("want distinct messages, both %q", nonDigit)
	}
}

func TestCheckInternalDuplicates(t *testing.T) {
	r := CheckInternalDuplicates([]string{"9876543210", "987 654 3210", "1111111111"})
	if !r.HasDuplicates || !reflect.DeepEqual(r.DuplicateNumbers, []string{"9876543210"}) {
		t.Fatalf("got %+v", r)
	}
	r = CheckInternalDuplicates([]string{"9876543210", "1111111111"})
	if r.HasDuplicates {
		t.Fatalf("distinct numbers flagged: %+v", r)
	}
}

func TestFindAllSharedPhoneNumbers(t *testing.T) {
	people := []Person{
		{ID: "a", Name: "A", Phones: []string{"9876543210"}},
		{ID: "b", Name: "B", Phones: []string{"9876543210", "2222222222"}},
		{ID: "c", Name: "C", Phones: []string{"2222222222"}},
		{ID: "d", Name: "D", Phones: []string{"3333333333"}},
		{ID: "e", Name: "E", Phones: []string{"badphone"}},
		{ID: "f", Name: "F", Phones: []string{"badphone"}},
	}
	shared := FindAllSharedPhoneNumbers(people)
	if len(shared) != 2 {
		t.Fatalf("want 2 shared numbers, got %v", shared)
	}
	if len(shared["9876543210"]) != 2 || len(shared["2222222222"]) != 2 {
		t.Fatalf("owner lists wrong: %v", shared)
	}
	if _, ok := shared["3333333333"]; ok {
		t.Fatalf("single-owner number must not appear")
	}
	if _, ok := shared["badphone"]; ok {
		t.Fatalf("invalid numbers must not be indexed")
	}
}
