// Package repository provides row-level access to the pricebook database.
// All writes are upserts: the persistence model is last-write-wins, and
// conflict resolution between concurrent editors is out of scope.
package repository

import "time"

// PriceList is one stored catalog. The tree itself travels as JSON so
// arbitrary nesting depth and the __orderKeys ordering contract round-trip
// verbatim.
type PriceList struct {
	ID        string
	Name      string
	TreeJSON  string
	UpdatedAt time.Time
}

// ContactRow is the stored form of a contact; phones travel as a JSON
// array.
type ContactRow struct {
	ID         string
	Name       string
	Category   string
	PhonesJSON string
	Address    string
	Specialty  string
	Notes      string
	Photo      string
	UpdatedAt  time.Time
}

// CategoryRow is one contacts-taxonomy entry.
type CategoryRow struct {
	ID        string
	Label     string
	IsDefault bool
}
