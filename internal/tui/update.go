package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/pricebook/internal/contacts"
	"github.com/jask/pricebook/internal/pricetree"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case catalogLoadedMsg:
		if msg.err != nil {
			m.lastErr = msg.err
			return m, nil
		}
		m.tree = msg.tree
		m.listName = msg.name
		m.flattenTree()
		return m, nil

	case contactsLoadedMsg:
		if msg.err != nil {
			m.lastErr = msg.err
			return m, nil
		}
		m.people = msg.people
		m.categories = msg.cats
		if m.contactCursor >= len(m.people) {
			m.contactCursor = len(m.people) - 1
		}
		if m.contactCursor < 0 {
			m.contactCursor = 0
		}
		return m, nil

	case groupsLoadedMsg:
		if msg.err != nil {
			m.lastErr = msg.err
			return m, nil
		}
		m.groups = msg.groups
		if m.dupCursor >= len(m.groups) {
			m.dupCursor = 0
		}
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.lastErr = msg.err
			return m, nil
		}
		m.lastErr = nil
		m.status = msg.status
		return m, nil

	case dupeWarningMsg:
		m.dupeWarnings = msg.warnings
		return m, nil

	case bulkRejectedMsg:
		// the whole batch was rejected; keep the editor open with every
		// line-numbered error in view
		m.bulkErrs = msg.errs
		return m, nil

	case bulkAppliedMsg:
		m.bulkEditor = nil
		m.bulkErrs = nil
		m.status = "updated category " + msg.category
		return m, m.loadContactsCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	// overlays swallow everything else
	if m.bulkEditor != nil {
		return m.updateBulkEditor(msg)
	}
	if m.itemForm != nil {
		return m.updateItemForm(msg)
	}
	if m.contactForm != nil {
		return m.updateContactForm(msg)
	}
	if m.searching {
		return m.updateSearch(msg)
	}

	switch {
	case key.Matches(msg, m.keys.NextTab):
		m.tab = (m.tab + 1) % tabCount
		if m.tab == tabDuplicates {
			return m, m.loadGroupsCmd()
		}
		return m, nil
	case key.Matches(msg, m.keys.PrevTab):
		m.tab = (m.tab - 1 + tabCount) % tabCount
		if m.tab == tabDuplicates {
			return m, m.loadGroupsCmd()
		}
		return m, nil
	}

	if msg.String() == "q" {
		return m, tea.Quit
	}

	switch m.tab {
	case tabCatalog:
		return m.updateCatalog(msg)
	case tabContacts:
		return m.updateContacts(msg)
	case tabDuplicates:
		return m.updateDuplicates(msg)
	}
	return m, nil
}

// catalog pane

func (m Model) updateCatalog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.UpDown):
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		row, ok := m.currentRow()
		if !ok {
			return m, nil
		}
		if row.Node.Kind == pricetree.KindCategory {
			m.expanded[row.Path] = !m.expanded[row.Path]
			m.flattenTree()
			return m, nil
		}
		m.itemForm = newItemForm(parentOf(row.Path), row.Path, pricetree.KindItem, row.Node, row.Name)
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		row, ok := m.currentRow()
		if !ok {
			return m, nil
		}
		m.itemForm = newItemForm(parentOf(row.Path), row.Path, row.Node.Kind, row.Node, row.Name)
		return m, nil

	case key.Matches(msg, m.keys.Add):
		// new item next to the cursor, or at root when the list is empty
		parent := ""
		if row, ok := m.currentRow(); ok {
			parent = parentOf(row.Path)
		}
		m.itemForm = newItemForm(parent, "", pricetree.KindItem, nil, "")
		return m, nil

	case key.Matches(msg, m.keys.AddSub):
		// new item inside the highlighted category
		row, ok := m.currentRow()
		if !ok || row.Node.Kind != pricetree.KindCategory {
			m.status = "select a category first"
			return m, nil
		}
		m.itemForm = newItemForm(row.Path, "", pricetree.KindItem, nil, "")
		return m, nil

	case msg.String() == "c":
		parent := ""
		if row, ok := m.currentRow(); ok {
			parent = parentOf(row.Path)
		}
		m.itemForm = newItemForm(parent, "", pricetree.KindCategory, nil, "")
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		row, ok := m.currentRow()
		if !ok {
			return m, nil
		}
		tree, err := pricetree.DeleteItem(m.tree, row.Path)
		if err != nil {
			m.lastErr = err
			return m, nil
		}
		m.tree = tree
		m.flattenTree()
		return m, m.saveCatalogCmd(tree, "deleted "+row.Name)

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.search.SetValue(m.query)
		m.search.Focus()
		return m, nil

	case key.Matches(msg, m.keys.Close):
		if m.query != "" {
			m.query = ""
			m.flattenTree()
		}
		return m, nil

	case key.Matches(msg, m.keys.Sort):
		m.sortMode = nextSort(m.sortMode)
		m.status = "sort: " + string(m.sortMode)
		m.flattenTree()
		return m, nil
	}
	return m, nil
}

func nextSort(s pricetree.SortType) pricetree.SortType {
	switch s {
	case pricetree.SortNone:
		return pricetree.SortAlphabetical
	case pricetree.SortAlphabetical:
		return pricetree.SortAlphaReverse
	case pricetree.SortAlphaReverse:
		return pricetree.SortPriceLow
	case pricetree.SortPriceLow:
		return pricetree.SortPriceHigh
	default:
		return pricetree.SortNone
	}
}

func parentOf(path string) string {
	if i := strings.LastIndex(path, "."); i >= 0 {
		return path[:i]
	}
	return ""
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.query = strings.TrimSpace(m.search.Value())
		m.search.Blur()
		m.flattenTree()
		return m, nil
	case "esc":
		m.searching = false
		m.query = ""
		m.search.Blur()
		m.flattenTree()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m Model) updateItemForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.itemForm
	switch msg.String() {
	case "esc":
		m.itemForm = nil
		return m, nil
	case "tab", "down":
		f.next()
		return m, nil
	case "shift+tab", "up":
		f.prev()
		return m, nil
	case "enter":
		form := f.form()
		var (
			tree pricetree.Tree
			err  error
		)
		if f.path == "" {
			tree, err = pricetree.AddItem(m.tree, f.parentPath, f.kind, form)
		} else {
			tree, err = pricetree.EditItem(m.tree, f.path, form)
		}
		if err != nil {
			m.lastErr = err
			return m, nil
		}
		m.itemForm = nil
		m.tree = tree
		m.flattenTree()
		return m, m.saveCatalogCmd(tree, "saved "+form.Name)
	}
	return m, f.update(msg)
}

// contacts pane

func (m Model) updateContacts(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.UpDown):
		switch msg.String() {
		case "up", "k":
			if m.contactCursor > 0 {
				m.contactCursor--
			}
		case "down", "j":
			if m.contactCursor < len(m.people)-1 {
				m.contactCursor++
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Add):
		m.dupeWarnings = nil
		m.contactForm = newContactForm(contacts.Person{})
		return m, nil

	case key.Matches(msg, m.keys.Enter), key.Matches(msg, m.keys.Edit):
		p, ok := m.currentPerson()
		if !ok {
			return m, nil
		}
		m.dupeWarnings = nil
		m.contactForm = newContactForm(p)
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		p, ok := m.currentPerson()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			if err := m.contacts.Delete(context.Background(), p.ID); err != nil {
				return savedMsg{err: err}
			}
			return savedMsg{status: "deleted " + p.Name}
		}

	case key.Matches(msg, m.keys.BulkEdit):
		p, ok := m.currentPerson()
		category := contacts.OtherCategoryID
		if ok {
			category = p.Category
		}
		m.openBulkEditor(category)
		return m, nil

	case key.Matches(msg, m.keys.Duplicates):
		m.tab = tabDuplicates
		return m, m.loadGroupsCmd()
	}
	return m, nil
}

func (m Model) updateContactForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.contactForm
	switch msg.String() {
	case "esc":
		m.contactForm = nil
		m.dupeWarnings = nil
		return m, nil
	case "tab", "down":
		f.next()
		return m, nil
	case "shift+tab", "up":
		f.prev()
		return m, nil
	case "enter":
		p := f.person()
		if p.Name == "" {
			m.lastErr = fmt.Errorf("contact needs a name")
			return m, nil
		}
		for _, raw := range p.Phones {
			if err := contacts.ValidatePhone(raw); err != nil {
				m.lastErr = err
				return m, nil
			}
		}
		if dup := contacts.CheckInternalDuplicates(p.Phones); dup.HasDuplicates {
			m.lastErr = fmt.Errorf("phone listed twice: %s", strings.Join(dup.DuplicateNumbers, ", "))
			return m, nil
		}
		m.contactForm = nil
		save := func() tea.Msg {
			if err := m.contacts.Save(context.Background(), p); err != nil {
				return savedMsg{err: err}
			}
			return savedMsg{status: "saved " + p.Name}
		}
		warn := func() tea.Msg {
			dups, err := m.contacts.PotentialDuplicates(context.Background(), p)
			if err != nil {
				return savedMsg{err: err}
			}
			return dupeWarningMsg{warnings: dups}
		}
		return m, tea.Sequence(tea.Batch(save, warn), m.loadContactsCmd())
	}
	return m, f.update(msg)
}

// bulk edit overlay

type bulkRejectedMsg struct {
	errs []string
}

type bulkAppliedMsg struct {
	category string
}

func (m Model) updateBulkEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.bulkEditor = nil
		m.bulkErrs = nil
		return m, nil
	case "ctrl+s":
		text := m.bulkEditor.Value()
		category := m.bulkCat
		return m, func() tea.Msg {
			_, errs, err := m.contacts.BulkEditCategory(context.Background(), category, text)
			if err != nil {
				return savedMsg{err: err}
			}
			if len(errs) > 0 {
				return bulkRejectedMsg{errs: errs}
			}
			return bulkAppliedMsg{category: category}
		}
	}
	var cmd tea.Cmd
	*m.bulkEditor, cmd = m.bulkEditor.Update(msg)
	return m, cmd
}

// duplicates pane

func (m Model) updateDuplicates(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.UpDown):
		switch msg.String() {
		case "up", "k":
			if m.dupCursor > 0 {
				m.dupCursor--
			}
		case "down", "j":
			if m.dupCursor < len(m.groups)-1 {
				m.dupCursor++
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Merge):
		if m.dupCursor >= len(m.groups) {
			return m, nil
		}
		g := m.groups[m.dupCursor]
		if len(g.Contacts) < 2 {
			return m, nil
		}
		existing, incoming := g.Contacts[0], g.Contacts[1]
		return m, tea.Sequence(func() tea.Msg {
			_, err := m.contacts.Merge(context.Background(), existing, incoming,
				contacts.MergeOptions{MergePhones: true, MergeNotes: true})
			if err != nil {
				return savedMsg{err: err}
			}
			return savedMsg{status: "merged into " + existing.Name}
		}, m.loadContactsCmd(), m.loadGroupsCmd())
	}
	return m, nil
}

func (m *Model) openBulkEditor(category string) {
	ta := textarea.New()
	ta.SetWidth(max(40, m.width-8))
	ta.SetHeight(max(8, m.height/2))
	body := bulkSeedText(m.people, category)
	ta.SetValue(body)
	ta.Focus()
	m.bulkEditor = &ta
	m.bulkCat = category
	m.bulkErrs = nil
}

// bulkSeedText pre-fills the editor with the category's current rows so an
// unchanged line round-trips without tripping validation.
func bulkSeedText(people []contacts.Person, category string) string {
	var b strings.Builder
	for _, p := range people {
		if p.Category != category {
			continue
		}
		fmt.Fprintf(&b, "%s | %s | %s | %s | %s\n",
			p.Name, strings.Join(p.Phones, " / "), p.Address, p.Specialty,
			strings.ReplaceAll(p.Notes, "\n", " "))
	}
	return b.String()
}
