package vcf

import (
	"strings"
	"testing"

	"github.com/jask/pricebook/internal/contacts"
)

const sampleVCF = "BEGIN:VCARD\r\n" +
	"VERSION:3.0\r\n" +
	"N:Kumar;Ram;;;\r\n" +
	"FN:Ram Kumar\r\n" +
	"TEL;TYPE=CELL:987 654 3210\r\n" +
	"TEL;TYPE=HOME:9876543210\r\n" +
	"ADR;TYPE=WORK:;;12 Main Road;Pune;;411001;\r\n" +
	"TITLE:Plumber\r\n" +
	"NOTE:fast\\, reliable\r\n" +
	"END:VCARD\r\n" +
	"BEGIN:VCARD\r\n" +
	"VERSION:3.0\r\n" +
	"N:Singh;Shyam;;;\r\n" +
	"TEL:1111111111\r\n" +
	"END:VCARD\r\n"

func TestParse(t *testing.T) {
	people, err := Parse(strings.NewReader(sampleVCF))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(people) != 2 {
		t.Fatalf("want 2 contacts, got %d", len(people))
	}
	p := people[0]
	if p.Name != "Ram Kumar" {
		t.Fatalf("name = %q", p.Name)
	}
	if len(p.Phones) != 1 || p.Phones[0] != "9876543210" {
		t.Fatalf("phones must be cleaned and deduped: %v", p.Phones)
	}
	if !strings.Contains(p.Address, "12 Main Road") || !strings.Contains(p.Address, "Pune") {
		t.Fatalf("address = %q", p.Address)
	}
	if p.Specialty != "Plumber" {
		t.Fatalf("specialty = %q", p.Specialty)
	}
	if p.Notes != "fast, reliable" {
		t.Fatalf("note unescaping failed: %q", p.Notes)
	}
	if p.ID == "" {
		t.Fatalf("parsed contacts need ids")
	}

	// second card has no FN; falls back to the structured name
	if people[1].Name != "Shyam Singh" {
		t.Fatalf("structured name fallback = %q", people[1].Name)
	}
}

func TestParseFoldedLine(t *testing.T) {
	folded := "BEGIN:VCARD\r\nVERSION:3.0\r\nFN:Ram\r\nNOTE:first part\r\n  and the rest\r\nEND:VCARD\r\n"
	people, err := Parse(strings.NewReader(folded))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(people) != 1 || people[0].Notes != "first part and the rest" {
		t.Fatalf("unfolding failed: %+v", people)
	}
}

func TestParseSkipsEmptyCards(t *testing.T) {
	people, err := Parse(strings.NewReader("BEGIN:VCARD\r\nVERSION:3.0\r\nEND:VCARD\r\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(people) != 0 {
		t.Fatalf("card without name or phones should be dropped: %+v", people)
	}
}

func TestExportRoundTrip(t *testing.T) {
	src := []contacts.Person{{
		ID: "1", Name: "Ram Kumar", Category: "plumber",
		Phones: []string{"9876543210"}, Address: "12 Main Road",
		Specialty: "bathroom fittings", Notes: "line one\nline two",
	}}
	var b strings.Builder
	if err := Export(&b, src); err != nil {
		t.Fatalf("Export: %v", err)
	}
	back, err := Parse(strings.NewReader(b.String()))
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if len(back) != 1 {
		t.Fatalf("want 1 contact back, got %d", len(back))
	}
	p := back[0]
	if p.Name != src[0].Name || p.Phones[0] != "9876543210" ||
		p.Category != "plumber" || p.Notes != "line one\nline two" {
		t.Fatalf("round trip mismatch: %+v", p)
	}
}
