package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/pricebook/internal/config"
	"github.com/jask/pricebook/internal/contacts"
	"github.com/jask/pricebook/internal/photocache"
	"github.com/jask/pricebook/internal/pricetree"
	"github.com/jask/pricebook/internal/service"
)

const appName = "Pricebook"

// Tab indices
const (
	tabCatalog    = 0
	tabContacts   = 1
	tabDuplicates = 2
	tabCount      = 3
)

// treeRow is one visible line of the catalog pane: a node flattened out of
// the tree in display order, with collapsed categories pruning their
// subtrees.
type treeRow struct {
	Path  string
	Name  string
	Depth int
	Node  *pricetree.Node
}

// Bubble Tea messages

type catalogLoadedMsg struct {
	name string
	tree pricetree.Tree
	err  error
}

type contactsLoadedMsg struct {
	people []contacts.Person
	cats   []contacts.Category
	err    error
}

type groupsLoadedMsg struct {
	groups []contacts.DuplicateGroup
	err    error
}

type savedMsg struct {
	status string
	err    error
}

type dupeWarningMsg struct {
	warnings []contacts.PotentialDuplicate
}

// Model is the root Bubble Tea model. All mutation happens through the
// service layer; the tree and contact slices held here are display copies.
type Model struct {
	catalog  *service.CatalogService
	contacts *service.ContactService
	photos   *photocache.Cache
	cfg      config.Config

	width  int
	height int
	tab    int
	keys   keyMap
	help   help.Model

	status  string
	lastErr error

	// catalog pane
	listName  string
	tree      pricetree.Tree
	sortMode  pricetree.SortType
	expanded  map[string]bool
	rows      []treeRow
	cursor    int
	searching bool
	search    textinput.Model
	query     string

	itemForm *itemForm

	// contacts pane
	people        []contacts.Person
	categories    []contacts.Category
	contactCursor int
	contactForm   *contactForm
	dupeWarnings  []contacts.PotentialDuplicate

	// bulk edit overlay
	bulkEditor *textarea.Model
	bulkCat    string
	bulkErrs   []string

	// duplicates pane
	groups    []contacts.DuplicateGroup
	dupCursor int
}

// New wires the root model. The photo cache is injected so tests can pass
// an in-memory one.
func New(cfg config.Config, catalog *service.CatalogService, contactSvc *service.ContactService, photos *photocache.Cache) Model {
	search := textinput.New()
	search.Placeholder = "search items"
	search.Prompt = "/ "
	search.CharLimit = 80

	sortMode := pricetree.SortType(cfg.UI.DefaultSort)
	switch sortMode {
	case pricetree.SortNone, pricetree.SortAlphabetical, pricetree.SortAlphaReverse,
		pricetree.SortPriceLow, pricetree.SortPriceHigh:
	default:
		sortMode = pricetree.SortNone
	}

	return Model{
		catalog:  catalog,
		contacts: contactSvc,
		photos:   photos,
		cfg:      cfg,
		keys:     newKeyMap(),
		help:     help.New(),
		tree:     pricetree.NewTree(),
		sortMode: sortMode,
		expanded: make(map[string]bool),
		search:   search,
		listName: "Price List",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCatalogCmd(), m.loadContactsCmd())
}

func (m Model) loadCatalogCmd() tea.Cmd {
	return func() tea.Msg {
		tree, name, err := m.catalog.Load(context.Background(), service.DefaultPriceListID)
		return catalogLoadedMsg{name: name, tree: tree, err: err}
	}
}

func (m Model) loadContactsCmd() tea.Cmd {
	return func() tea.Msg {
		people, err := m.contacts.List(context.Background())
		if err != nil {
			return contactsLoadedMsg{err: err}
		}
		cats, err := m.contacts.ListCategories(context.Background())
		return contactsLoadedMsg{people: people, cats: cats, err: err}
	}
}

func (m Model) loadGroupsCmd() tea.Cmd {
	return func() tea.Msg {
		groups, err := m.contacts.DuplicateGroups(context.Background())
		return groupsLoadedMsg{groups: groups, err: err}
	}
}

func (m Model) saveCatalogCmd(tree pricetree.Tree, status string) tea.Cmd {
	return func() tea.Msg {
		err := m.catalog.Save(context.Background(), service.DefaultPriceListID, m.listName, tree)
		return savedMsg{status: status, err: err}
	}
}

// displayTree is the tree after the active search filter and sort are
// applied. Both transforms are pure, so the stored tree is untouched.
func (m Model) displayTree() pricetree.Tree {
	t := m.tree
	if m.query != "" {
		t = pricetree.FilterData(t, m.query)
	}
	return pricetree.SortData(t, m.sortMode)
}

// flattenTree produces the visible rows. A search expands everything so
// matches are never hidden behind a collapsed category.
func (m *Model) flattenTree() {
	t := m.displayTree()
	m.rows = m.rows[:0]
	var walk func(prefix string, names []string, nodes map[string]*pricetree.Node, depth int)
	walk = func(prefix string, names []string, nodes map[string]*pricetree.Node, depth int) {
		for _, name := range names {
			n := nodes[name]
			path := name
			if prefix != "" {
				path = prefix + "." + name
			}
			m.rows = append(m.rows, treeRow{Path: path, Name: name, Depth: depth, Node: n})
			if n.Kind == pricetree.KindCategory && (m.expanded[path] || m.query != "") {
				walk(path, n.ChildKeys(), n.Children, depth+1)
			}
		}
	}
	walk("", t.Keys(), t.Nodes, 0)
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) currentRow() (treeRow, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return treeRow{}, false
	}
	return m.rows[m.cursor], true
}

func (m Model) currentPerson() (contacts.Person, bool) {
	if m.contactCursor < 0 || m.contactCursor >= len(m.people) {
		return contacts.Person{}, false
	}
	return m.people[m.contactCursor], true
}
