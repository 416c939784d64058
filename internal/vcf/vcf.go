// Package vcf reads and writes vCard 3.0 contact files, the exchange
// format used by phone contact pickers. Parsed records come back in the
// same shape the contacts package works with; callers run them through
// phone validation and duplicate scoring before inserting.
package vcf

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/jask/pricebook/internal/contacts"
)

// Parse decodes every vCard in the stream. Folded lines (continuations
// starting with a space or tab) are unfolded before property parsing;
// unknown properties are skipped. Phones are cleaned and deduplicated per
// record on the way out.
func Parse(r io.Reader) ([]contacts.Person, error) {
	lines, err := unfold(r)
	if err != nil {
		return nil, err
	}

	var people []contacts.Person
	var cur *contacts.Person
	for _, line := range lines {
		name, params, value, ok := splitProperty(line)
		if !ok {
			continue
		}
		switch name {
		case "BEGIN":
			if strings.EqualFold(value, "VCARD") {
				p := contacts.NewPerson("", contacts.OtherCategoryID, nil)
				p.Phones = nil
				cur = &p
			}
			continue
		case "END":
			if cur != nil && strings.EqualFold(value, "VCARD") {
				if cur.Name != "" || len(cur.Phones) > 0 {
					cur.Phones = contacts.CleanAndDeduplicatePhones(cur.Phones)
					people = append(people, *cur)
				}
				cur = nil
			}
			continue
		}
		if cur == nil {
			continue
		}
		switch name {
		case "FN":
			cur.Name = unescape(value)
		case "N":
			if cur.Name == "" {
				cur.Name = structuredName(value)
			}
		case "TEL":
			if v := strings.TrimSpace(value); v != "" {
				cur.Phones = append(cur.Phones, v)
			}
		case "ADR":
			if cur.Address == "" {
				cur.Address = joinComponents(value)
			}
		case "NOTE":
			cur.Notes = unescape(value)
		case "ORG", "TITLE":
			if cur.Specialty == "" {
				cur.Specialty = unescape(value)
			}
		case "CATEGORIES":
			if first, _, _ := strings.Cut(value, ","); first != "" {
				cur.Category = strings.ToLower(strings.TrimSpace(first))
			}
		case "PHOTO":
			if strings.Contains(strings.ToUpper(params), "ENCODING=B") ||
				strings.Contains(strings.ToUpper(params), "BASE64") {
				cur.Photo = strings.TrimSpace(value)
			}
		}
	}
	return people, nil
}

func unfold(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024) // photos fold into long properties
	var lines []string
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if len(lines) > 0 && (strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")) {
			lines[len(lines)-1] += line[1:]
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read vcf: %w", err)
	}
	return lines, nil
}

// splitProperty breaks "NAME;PARAM=X:value" into its parts. The property
// name is upper-cased; group prefixes ("item1.TEL") are dropped.
func splitProperty(line string) (name, params, value string, ok bool) {
	head, value, found := strings.Cut(line, ":")
	if !found {
		return "", "", "", false
	}
	name, params, _ = strings.Cut(head, ";")
	if _, after, found := strings.Cut(name, "."); found {
		name = after
	}
	return strings.ToUpper(strings.TrimSpace(name)), params, value, true
}

// structuredName renders an N property (family;given;middle;prefix;suffix)
// as a display name.
func structuredName(value string) string {
	parts := strings.Split(value, ";")
	var out []string
	// given name first
	if len(parts) > 1 && parts[1] != "" {
		out = append(out, unescape(parts[1]))
	}
	if parts[0] != "" {
		out = append(out, unescape(parts[0]))
	}
	return strings.Join(out, " ")
}

func joinComponents(value string) string {
	var out []string
	for _, c := range strings.Split(value, ";") {
		if c = strings.TrimSpace(unescape(c)); c != "" {
			out = append(out, c)
		}
	}
	return strings.Join(out, ", ")
}

func unescape(s string) string {
	r := strings.NewReplacer(`\n`, "\n", `\N`, "\n", `\,`, ",", `\;`, ";", `\\`, `\`)
	return r.Replace(s)
}

// Export writes the contacts as vCard 3.0, one card per record.
func Export(w io.Writer, people []contacts.Person) error {
	for _, p := range people {
		var b strings.Builder
		b.WriteString("BEGIN:VCARD\r\nVERSION:3.0\r\n")
		fmt.Fprintf(&b, "FN:%s\r\n", escape(p.Name))
		for _, phone := range p.Phones {
			if phone != "" {
				fmt.Fprintf(&b, "TEL;TYPE=CELL:%s\r\n", phone)
			}
		}
		if p.Address != "" {
			fmt.Fprintf(&b, "ADR;TYPE=WORK:;;%s;;;;\r\n", escape(p.Address))
		}
		if p.Specialty != "" {
			fmt.Fprintf(&b, "TITLE:%s\r\n", escape(p.Specialty))
		}
		if p.Notes != "" {
			fmt.Fprintf(&b, "NOTE:%s\r\n", escape(p.Notes))
		}
		if p.Category != "" {
			fmt.Fprintf(&b, "CATEGORIES:%s\r\n", escape(p.Category))
		}
		b.WriteString("END:VCARD\r\n")
		if _, err := io.WriteString(w, b.String()); err != nil {
			return fmt.Errorf("write vcf: %w", err)
		}
	}
	return nil
}

func escape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, "\n", `\n`, ",", `\,`, ";", `\;`)
	return r.Replace(s)
}
