package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/pricebook/internal/contacts"
	"github.com/jask/pricebook/internal/pricetree"
)

// itemForm edits one tree entry. For a new entry parentPath is the target
// category ("" for root) and path is empty; for an edit path points at the
// existing node.
type itemForm struct {
	parentPath string
	path       string
	kind       pricetree.Kind
	fields     []textinput.Model
	labels     []string
	focus      int
}

const (
	fldName = iota
	fldRetail
	fldBulk
	fldCost
	fldSellUnit
	fldCostUnit
	fldNotes
)

func newItemForm(parentPath, path string, kind pricetree.Kind, n *pricetree.Node, name string) *itemForm {
	f := &itemForm{parentPath: parentPath, path: path, kind: kind}
	if kind == pricetree.KindCategory {
		f.labels = []string{"Name"}
	} else {
		f.labels = []string{"Name", "Retail", "Bulk", "Cost", "Sell unit", "Cost unit", "Notes"}
	}
	for i, label := range f.labels {
		in := textinput.New()
		in.Placeholder = label
		in.CharLimit = 120
		if i == 0 {
			in.Focus()
		}
		f.fields = append(f.fields, in)
	}
	f.fields[fldName].SetValue(name)
	if n != nil && kind == pricetree.KindItem {
		f.fields[fldRetail].SetValue(formatPrice(n.RetailSell))
		f.fields[fldBulk].SetValue(formatPrice(n.BulkSell))
		f.fields[fldCost].SetValue(formatPrice(n.Cost))
		f.fields[fldSellUnit].SetValue(n.SellUnit)
		f.fields[fldCostUnit].SetValue(n.CostUnit)
		f.fields[fldNotes].SetValue(n.Notes)
	}
	return f
}

func formatPrice(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (f *itemForm) form() pricetree.Form {
	out := pricetree.Form{Name: strings.TrimSpace(f.fields[fldName].Value())}
	if f.kind == pricetree.KindItem {
		out.RetailSell = f.fields[fldRetail].Value()
		out.BulkSell = f.fields[fldBulk].Value()
		out.Cost = f.fields[fldCost].Value()
		out.SellUnit = f.fields[fldSellUnit].Value()
		out.CostUnit = f.fields[fldCostUnit].Value()
		out.Notes = f.fields[fldNotes].Value()
	}
	return out
}

func (f *itemForm) next() { f.setFocus((f.focus + 1) % len(f.fields)) }
func (f *itemForm) prev() { f.setFocus((f.focus - 1 + len(f.fields)) % len(f.fields)) }
func (f *itemForm) setFocus(i int) {
	f.fields[f.focus].Blur()
	f.focus = i
	f.fields[f.focus].Focus()
}

func (f *itemForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.fields[f.focus], cmd = f.fields[f.focus].Update(msg)
	return cmd
}

// contactForm edits one person. An empty id means a new contact.
type contactForm struct {
	id     string
	photo  string
	fields []textinput.Model
	labels []string
	focus  int
}

const (
	cfName = iota
	cfCategory
	cfPhones
	cfAddress
	cfSpecialty
	cfNotes
)

func newContactForm(p contacts.Person) *contactForm {
	f := &contactForm{id: p.ID, photo: p.Photo}
	f.labels = []string{"Name", "Category", "Phones", "Address", "Specialty", "Notes"}
	for i, label := range f.labels {
		in := textinput.New()
		in.Placeholder = label
		in.CharLimit = 200
		if i == 0 {
			in.Focus()
		}
		f.fields = append(f.fields, in)
	}
	f.fields[cfName].SetValue(p.Name)
	f.fields[cfCategory].SetValue(p.Category)
	f.fields[cfPhones].SetValue(strings.Join(p.Phones, ", "))
	f.fields[cfAddress].SetValue(p.Address)
	f.fields[cfSpecialty].SetValue(p.Specialty)
	f.fields[cfNotes].SetValue(p.Notes)
	return f
}

func (f *contactForm) person() contacts.Person {
	var phones []string
	for _, part := range strings.FieldsFunc(f.fields[cfPhones].Value(), func(r rune) bool {
		return r == ',' || r == '/' || r == ';'
	}) {
		if s := contacts.CleanPhone(part); s != "" {
			phones = append(phones, s)
		}
	}
	category := strings.TrimSpace(f.fields[cfCategory].Value())
	if category == "" {
		category = contacts.OtherCategoryID
	}
	p := contacts.NewPerson(strings.TrimSpace(f.fields[cfName].Value()), category, phones)
	if f.id != "" {
		p.ID = f.id
	}
	p.Address = strings.TrimSpace(f.fields[cfAddress].Value())
	p.Specialty = strings.TrimSpace(f.fields[cfSpecialty].Value())
	p.Notes = f.fields[cfNotes].Value()
	p.Photo = f.photo
	return p
}

func (f *contactForm) next() { f.setFocus((f.focus + 1) % len(f.fields)) }
func (f *contactForm) prev() { f.setFocus((f.focus - 1 + len(f.fields)) % len(f.fields)) }
func (f *contactForm) setFocus(i int) {
	f.fields[f.focus].Blur()
	f.focus = i
	f.fields[f.focus].Focus()
}

func (f *contactForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.fields[f.focus], cmd = f.fields[f.focus].Update(msg)
	return cmd
}
