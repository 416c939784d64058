package contacts

import "strings"

// MergeSeparator joins two notes fields when both sides carry text.
const MergeSeparator = "\n\n--- Merged from duplicate ---\n"

// MergeOptions selects the per-field merge policy.
type MergeOptions struct {
	PreferNew   bool
	MergePhones bool
	MergeNotes  bool
}

// MergeContacts combines an existing record with an incoming one. Scalar
// fields take the incoming value when PreferNew is set or the existing side
// is empty; phones are unioned when MergePhones, otherwise replaced
// wholesale when PreferNew; notes are concatenated with MergeSeparator when
// MergeNotes and both sides have text. The existing id always survives.
func MergeContacts(existing, incoming Person, opts MergeOptions) Person {
	out := existing
	out.Name = pickScalar(existing.Name, incoming.Name, opts.PreferNew)
	out.Category = pickScalar(existing.Category, incoming.Category, opts.PreferNew)
	out.Address = pickScalar(existing.Address, incoming.Address, opts.PreferNew)
	out.Specialty = pickScalar(existing.Specialty, incoming.Specialty, opts.PreferNew)
	out.Photo = pickScalar(existing.Photo, incoming.Photo, opts.PreferNew)

	switch {
	case opts.MergePhones:
		out.Phones = CleanAndDeduplicatePhones(append(append([]string(nil), existing.Phones...), incoming.Phones...))
	case opts.PreferNew:
		out.Phones = CleanAndDeduplicatePhones(incoming.Phones)
	default:
		out.Phones = CleanAndDeduplicatePhones(existing.Phones)
	}

	switch {
	case opts.MergeNotes && strings.TrimSpace(existing.Notes) != "" && strings.TrimSpace(incoming.Notes) != "":
		out.Notes = existing.Notes + MergeSeparator + incoming.Notes
	default:
		out.Notes = pickScalar(existing.Notes, incoming.Notes, opts.PreferNew)
	}
	return out
}

func pickScalar(existing, incoming string, preferNew bool) string {
	if preferNew && strings.TrimSpace(incoming) != "" {
		return incoming
	}
	if strings.TrimSpace(existing) == "" {
		return incoming
	}
	return existing
}
