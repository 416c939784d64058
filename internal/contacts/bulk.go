package contacts

import (
	"fmt"
	"strings"
)

// ParseBulkContacts parses one category's bulk-edit batch: one contact per
// line, "Name | phone [/ phone...] | address | specialty | notes", comma as
// fallback separator, blank lines ignored. The whole batch is validated
// before anything is accepted and ALL problems come back at once as
// line-numbered messages: invalid phone values, the same phone under two
// different names within the batch, and phones already owned by a contact
// outside the batch. A repeated identical name+phone row collapses into one
// contact instead of erroring.
//
// Duplicate checking is scoped to this batch plus existingNotInBatch; the
// caller passes only contacts NOT being re-edited by the batch, which is
// what lets the same row move between category batches without tripping
// the check.
func ParseBulkContacts(text, category string, existingNotInBatch []Person) ([]Person, []string) {
	var people []Person
	var errs []string

	type phoneOwner struct {
		name string
		line int
	}
	batchPhones := map[string]phoneOwner{}

	existingByPhone := map[string]Person{}
	for _, e := range existingNotInBatch {
		for _, p := range e.Phones {
			c := CleanPhone(p)
			if c != "" {
				existingByPhone[c] = e
			}
		}
	}

	byName := map[string]int{} // lowercased name -> index into people

	for lineNo, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		sep := "|"
		if !strings.Contains(line, "|") {
			sep = ","
		}
		fields := strings.Split(line, sep)
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}

		name := fields[0]
		if name == "" {
			errs = append(errs, fmt.Sprintf("line %d: missing contact name", lineNo+1))
			continue
		}

		var phones []string
		if len(fields) > 1 {
			for _, p := range strings.FieldsFunc(fields[1], func(r rune) bool { return r == '/' || r == ';' }) {
				if c := CleanPhone(p); c != "" {
					phones = append(phones, c)
				}
			}
		}

		lineOK := true
		for _, p := range phones {
			if err := ValidatePhone(p); err != nil {
				errs = append(errs, fmt.Sprintf("line %d: %v", lineNo+1, err))
				lineOK = false
				continue
			}
			if owner, ok := batchPhones[p]; ok && !strings.EqualFold(owner.name, name) {
				errs = append(errs, fmt.Sprintf(
					"line %d: phone %s already used by %q on line %d", lineNo+1, p, owner.name, owner.line))
				lineOK = false
				continue
			}
			if e, ok := existingByPhone[p]; ok {
				errs = append(errs, fmt.Sprintf(
					"line %d: phone %s already belongs to existing contact %q", lineNo+1, p, e.Name))
				lineOK = false
			}
		}
		if !lineOK {
			continue
		}
		for _, p := range phones {
			if _, ok := batchPhones[p]; !ok {
				batchPhones[p] = phoneOwner{name: name, line: lineNo + 1}
			}
		}

		p := Person{
			Name:     name,
			Category: category,
			Phones:   CleanAndDeduplicatePhones(phones),
		}
		if len(fields) > 2 {
			p.Address = fields[2]
		}
		if len(fields) > 3 {
			p.Specialty = fields[3]
		}
		if len(fields) > 4 {
			p.Notes = strings.Join(fields[4:], " ")
		}

		if idx, ok := byName[strings.ToLower(name)]; ok {
			// same name again: treat as the same contact, union the fields
			people[idx] = MergeContacts(people[idx], p, MergeOptions{MergePhones: true, MergeNotes: true})
			continue
		}
		p.ID = ""
		byName[strings.ToLower(name)] = len(people)
		people = append(people, p)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	for i := range people {
		people[i] = assignID(people[i])
	}
	return people, nil
}

func assignID(p Person) Person {
	if p.ID == "" {
		np := NewPerson(p.Name, p.Category, p.Phones)
		np.Address, np.Specialty, np.Notes, np.Photo = p.Address, p.Specialty, p.Notes, p.Photo
		return np
	}
	return p
}
