package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jask/pricebook/internal/contacts"
	"github.com/jask/pricebook/internal/database"
	"github.com/jask/pricebook/internal/database/repository"
	"github.com/jask/pricebook/internal/vcf"
)

// ContactService loads and stores contacts and runs duplicate detection
// over the stored directory.
type ContactService struct {
	Contacts   *repository.ContactRepo
	Categories *repository.ContactCategoryRepo
	Threshold  float64
}

func (s *ContactService) threshold() float64 {
	if s.Threshold > 0 {
		return s.Threshold
	}
	return contacts.DefaultDuplicateThreshold
}

// List returns every contact, decoded.
func (s *ContactService) List(ctx context.Context) ([]contacts.Person, error) {
	rows, err := s.Contacts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	out := make([]contacts.Person, 0, len(rows))
	for _, r := range rows {
		p, err := personFromRow(r)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Save upserts one contact.
func (s *ContactService) Save(ctx context.Context, p contacts.Person) error {
	row, err := rowFromPerson(p)
	if err != nil {
		return err
	}
	if err := s.Contacts.Upsert(ctx, row); err != nil {
		return fmt.Errorf("save contact: %w", err)
	}
	return nil
}

// Delete removes one contact.
func (s *ContactService) Delete(ctx context.Context, id string) error {
	if err := s.Contacts.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	return nil
}

// ListCategories returns the taxonomy in display order: alphabetical with
// the catch-all bucket pinned last.
func (s *ContactService) ListCategories(ctx context.Context) ([]contacts.Category, error) {
	rows, err := s.Categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	cats := make([]contacts.Category, 0, len(rows))
	for _, r := range rows {
		cats = append(cats, contacts.Category{ID: r.ID, Label: r.Label, IsDefault: r.IsDefault})
	}
	return contacts.SortCategories(cats), nil
}

// PotentialDuplicates scores a candidate against the stored directory.
func (s *ContactService) PotentialDuplicates(ctx context.Context, p contacts.Person) ([]contacts.PotentialDuplicate, error) {
	existing, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	// never match a record against itself on re-save
	filtered := existing[:0]
	for _, e := range existing {
		if e.ID != p.ID {
			filtered = append(filtered, e)
		}
	}
	return contacts.FindPotentialDuplicates(p, filtered, s.threshold()), nil
}

// DuplicateGroups runs group discovery over the whole directory.
func (s *ContactService) DuplicateGroups(ctx context.Context) ([]contacts.DuplicateGroup, error) {
	people, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return contacts.FindDuplicateGroups(people), nil
}

// Merge applies the merge policy and persists the survivor, removing the
// merged-away record.
func (s *ContactService) Merge(ctx context.Context, existing, incoming contacts.Person, opts contacts.MergeOptions) (contacts.Person, error) {
	merged := contacts.MergeContacts(existing, incoming, opts)
	if err := s.Save(ctx, merged); err != nil {
		return contacts.Person{}, err
	}
	if incoming.ID != "" && incoming.ID != merged.ID {
		if err := s.Delete(ctx, incoming.ID); err != nil {
			return contacts.Person{}, err
		}
	}
	return merged, nil
}

// VCFImportResult summarizes an import run.
type VCFImportResult struct {
	Imported   int
	SkippedDup int
}

// ImportVCF parses a vCard stream and inserts every card that is not an
// exact duplicate of a stored contact. Fuzzy matches are NOT skipped here;
// they are advisory and surfaced by the duplicate review flow instead.
func (s *ContactService) ImportVCF(ctx context.Context, r io.Reader) (VCFImportResult, error) {
	parsed, err := vcf.Parse(r)
	if err != nil {
		return VCFImportResult{}, fmt.Errorf("import vcf: %w", err)
	}
	existing, err := s.List(ctx)
	if err != nil {
		return VCFImportResult{}, err
	}

	var res VCFImportResult
	var rows []repository.ContactRow
	for _, p := range parsed {
		exact := false
		for _, e := range existing {
			if contacts.CalculateDuplicateScore(p, e).IsExact {
				exact = true
				break
			}
		}
		if exact {
			res.SkippedDup++
			continue
		}
		row, err := rowFromPerson(p)
		if err != nil {
			return VCFImportResult{}, err
		}
		rows = append(rows, row)
		existing = append(existing, p)
		res.Imported++
	}
	if err := s.Contacts.UpsertBatch(ctx, rows); err != nil {
		return VCFImportResult{}, fmt.Errorf("import vcf: %w", err)
	}
	return res, nil
}

// ExportVCF writes the whole directory as vCard 3.0.
func (s *ContactService) ExportVCF(ctx context.Context, w io.Writer) error {
	people, err := s.List(ctx)
	if err != nil {
		return err
	}
	return vcf.Export(w, people)
}

// BulkEditCategory validates and applies one category's bulk-edit batch:
// the batch replaces the category's contacts wholesale. Validation errors
// reject the entire batch, all reported at once with line numbers, and
// nothing is written. Duplicate-phone checks run against contacts OUTSIDE
// the batch's category only, so re-listing an unchanged row never trips
// them.
func (s *ContactService) BulkEditCategory(ctx context.Context, category, text string) ([]contacts.Person, []string, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	var outside []contacts.Person
	for _, p := range all {
		if p.Category != category {
			outside = append(outside, p)
		}
	}

	batch, errs := contacts.ParseBulkContacts(text, category, outside)
	if len(errs) > 0 {
		return nil, errs, nil
	}

	rows := make([]repository.ContactRow, 0, len(batch))
	for _, p := range batch {
		row, err := rowFromPerson(p)
		if err != nil {
			return nil, nil, err
		}
		rows = append(rows, row)
	}
	// one transaction: a failure mid-write must leave the category intact
	if err := s.Contacts.ReplaceCategory(ctx, category, rows); err != nil {
		return nil, nil, fmt.Errorf("replace category batch: %w", err)
	}
	return batch, nil, nil
}

func personFromRow(r repository.ContactRow) (contacts.Person, error) {
	var phones []string
	if r.PhonesJSON != "" {
		if err := json.Unmarshal([]byte(r.PhonesJSON), &phones); err != nil {
			return contacts.Person{}, fmt.Errorf("decode phones for %s: %w", r.ID, err)
		}
	}
	return contacts.Person{
		ID:        r.ID,
		Name:      r.Name,
		Category:  r.Category,
		Phones:    phones,
		Address:   r.Address,
		Specialty: r.Specialty,
		Notes:     r.Notes,
		Photo:     r.Photo,
	}, nil
}

func rowFromPerson(p contacts.Person) (repository.ContactRow, error) {
	phones, err := json.Marshal(p.Phones)
	if err != nil {
		return repository.ContactRow{}, fmt.Errorf("encode phones: %w", err)
	}
	return repository.ContactRow{
		ID:         p.ID,
		Name:       p.Name,
		Category:   p.Category,
		PhonesJSON: string(phones),
		Address:    p.Address,
		Specialty:  p.Specialty,
		Notes:      p.Notes,
		Photo:      p.Photo,
		UpdatedAt:  database.Now(),
	}, nil
}
