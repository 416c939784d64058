package contacts

import (
	"fmt"
	"sort"
	"strings"
)

// CleanPhone strips all whitespace from a phone value.
func CleanPhone(p string) string {
	return strings.Join(strings.Fields(p), "")
}

// ValidPhone reports whether a cleaned value is exactly ten digits.
func ValidPhone(p string) bool {
	p = CleanPhone(p)
	if len(p) != 10 {
		return false
	}
	for _, r := range p {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ValidatePhone checks one phone value and returns a user-facing error.
// Non-digit content and wrong length get distinct messages.
func ValidatePhone(p string) error {
	p = CleanPhone(p)
	for _, r := range p {
		if r < '0' || r > '9' {
			return fmt.Errorf("phone number %q contains non-digit characters", p)
		}
	}
	if len(p) != 10 {
		return fmt.Errorf("phone number %q must be exactly 10 digits, has %d", p, len(p))
	}
	return nil
}

// CleanAndDeduplicatePhones strips whitespace from every entry, drops
// blanks and duplicates, preserving first-seen order. An all-empty result
// collapses to the [""] sentinel so form UIs always have one input slot.
func CleanAndDeduplicatePhones(phones []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, p := range phones {
		c := CleanPhone(p)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	if len(out) == 0 {
		return []string{""}
	}
	return out
}

// InternalDuplicates flags repeated numbers inside one contact's own phone
// list, a form validation error rather than a cross-contact rule.
type InternalDuplicates struct {
	HasDuplicates    bool
	DuplicateNumbers []string
}

// CheckInternalDuplicates reports every number that occurs more than once
// in the list after cleaning.
func CheckInternalDuplicates(phones []string) InternalDuplicates {
	counts := map[string]int{}
	for _, p := range phones {
		c := CleanPhone(p)
		if c == "" {
			continue
		}
		counts[c]++
	}
	var dups []string
	for p, n := range counts {
		if n > 1 {
			dups = append(dups, p)
		}
	}
	sort.Strings(dups)
	return InternalDuplicates{HasDuplicates: len(dups) > 0, DuplicateNumbers: dups}
}

// FindAllSharedPhoneNumbers indexes every valid ten-digit number to its
// owners and keeps entries with two or more. Advisory only: sharing a
// number is legitimate and never blocks a save.
func FindAllSharedPhoneNumbers(people []Person) map[string][]Person {
	index := map[string][]Person{}
	for _, person := range people {
		seen := map[string]bool{}
		for _, p := range person.Phones {
			c := CleanPhone(p)
			if !ValidPhone(c) || seen[c] {
				continue
			}
			seen[c] = true
			index[c] = append(index[c], person)
		}
	}
	for phone, owners := range index {
		if len(owners) < 2 {
			delete(index, phone)
		}
	}
	return index
}
