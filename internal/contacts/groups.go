package contacts

import "sort"

// DuplicateGroup is one set of contacts suspected to be the same person.
type DuplicateGroup struct {
	// Phone is the shared number when the group formed by phone, empty for
	// similarity-based groups.
	Phone    string
	Contacts []Person
	Reason   string
}

// similarityGroupThreshold gates the second, fuzzy grouping stage.
const similarityGroupThreshold = 0.7

// FindDuplicateGroups discovers duplicate sets in two passes: first every
// valid ten-digit number shared by two or more contacts forms a group, then
// the still-ungrouped contacts are scanned pairwise and greedily pulled
// together at similarity >= 0.7, first match wins.
//
// This is deliberately NOT transitive-closure clustering: two groups that
// share a member through different phone numbers stay separate, matching
// the established review-modal behavior.
func FindDuplicateGroups(people []Person) []DuplicateGroup {
	var groups []DuplicateGroup
	grouped := map[string]bool{}

	shared := FindAllSharedPhoneNumbers(people)
	phones := make([]string, 0, len(shared))
	for p := range shared {
		phones = append(phones, p)
	}
	sort.Strings(phones)
	for _, phone := range phones {
		owners := shared[phone]
		groups = append(groups, DuplicateGroup{
			Phone:    phone,
			Contacts: owners,
			Reason:   "share phone number " + phone,
		})
		for _, o := range owners {
			grouped[o.ID] = true
		}
	}

	for i := 0; i < len(people); i++ {
		if grouped[people[i].ID] {
			continue
		}
		var members []Person
		for j := i + 1; j < len(people); j++ {
			if grouped[people[j].ID] {
				continue
			}
			if nameSimilar(people[i], people[j]) {
				members = append(members, people[j])
			}
		}
		if len(members) == 0 {
			continue
		}
		members = append([]Person{people[i]}, members...)
		for _, m := range members {
			grouped[m.ID] = true
		}
		groups = append(groups, DuplicateGroup{
			Contacts: members,
			Reason:   "similar contact details",
		})
	}
	return groups
}

// nameSimilar gates the fuzzy pass on the name field (with the address as
// a secondary signal), not the full weighted score: two records with
// disjoint phone sets would never reach 0.7 overall even with identical
// names.
func nameSimilar(a, b Person) bool {
	if StringSimilarity(a.Name, b.Name) >= similarityGroupThreshold {
		return true
	}
	return a.Address != "" && b.Address != "" &&
		StringSimilarity(a.Address, b.Address) >= similarityGroupThreshold &&
		StringSimilarity(a.Name, b.Name) >= 0.5
}
