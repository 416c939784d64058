// Package contacts implements the contacts directory core: person records,
// phone cleaning and validation, Levenshtein-based duplicate scoring, merge
// policy and duplicate-group discovery. Everything here is pure and
// synchronous; persistence and UI policy live with the callers.
package contacts

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Person is one contact record. Phones hold cleaned (space-stripped)
// values, unique within the record; the same number may still appear on
// other records, which is a duplicate-detection signal, not a constraint.
type Person struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Category  string   `json:"category"`
	Phones    []string `json:"phones"`
	Address   string   `json:"address,omitempty"`
	Specialty string   `json:"specialty,omitempty"`
	Notes     string   `json:"notes,omitempty"`
	Photo     string   `json:"photo,omitempty"`
}

// NewPerson allocates a record with a fresh id and cleaned phones.
func NewPerson(name, category string, phones []string) Person {
	return Person{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(name),
		Category: category,
		Phones:   CleanAndDeduplicatePhones(phones),
	}
}

// Category is one entry of the contacts taxonomy.
type Category struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	IsDefault bool   `json:"isDefault,omitempty"`
}

// OtherCategoryID is the catch-all bucket, always sorted last.
const OtherCategoryID = "other"

// SortCategories orders the taxonomy alphabetically by label,
// case-insensitive, with the "other" bucket pinned to the end.
func SortCategories(cats []Category) []Category {
	out := append([]Category(nil), cats...)
	sort.SliceStable(out, func(i, j int) bool {
		if (out[i].ID == OtherCategoryID) != (out[j].ID == OtherCategoryID) {
			return out[j].ID == OtherCategoryID
		}
		return strings.ToLower(out[i].Label) < strings.ToLower(out[j].Label)
	})
	return out
}
