package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/pricebook/internal/pricetree"
	"github.com/jask/pricebook/internal/units"
)

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	switch {
	case m.bulkEditor != nil:
		b.WriteString(m.renderBulkEditor())
	case m.itemForm != nil:
		b.WriteString(m.renderItemForm())
	case m.contactForm != nil:
		b.WriteString(m.renderContactForm())
	default:
		switch m.tab {
		case tabCatalog:
			b.WriteString(m.renderCatalog())
		case tabContacts:
			b.WriteString(m.renderContacts())
		case tabDuplicates:
			b.WriteString(m.renderDuplicates())
		}
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(footerStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m Model) renderTabs() string {
	names := []string{"Catalog", "Contacts", "Duplicates"}
	parts := make([]string, 0, len(names)+1)
	parts = append(parts, titleStyle.Render(appName))
	for i, name := range names {
		if i == m.tab {
			parts = append(parts, activeTabStyle.Render(name))
		} else {
			parts = append(parts, tabStyle.Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) renderCatalog() string {
	var b strings.Builder
	if m.searching {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	} else if m.query != "" {
		b.WriteString(matchStyle.Render("filter: " + m.query))
		b.WriteString("\n")
	}

	if len(m.rows) == 0 {
		b.WriteString(dimStyle.Render("  no items — press a to add one, c for a category"))
		b.WriteString("\n")
		return b.String()
	}

	visible := m.visibleWindow(len(m.rows), m.cursor)
	for i := visible.start; i < visible.end; i++ {
		row := m.rows[i]
		b.WriteString(m.renderTreeRow(row, i == m.cursor))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderTreeRow(row treeRow, selected bool) string {
	indent := strings.Repeat("  ", row.Depth)
	prefix := "  "
	if selected {
		prefix = cursorStyle.Render("> ")
	}
	if row.Node.Kind == pricetree.KindCategory {
		marker := "▸"
		if m.expanded[row.Path] || m.query != "" {
			marker = "▾"
		}
		return prefix + indent + categoryStyle.Render(marker+" "+row.Name)
	}

	n := row.Node
	line := prefix + indent + row.Name + "  " +
		priceStyle.Render(m.money(n.RetailSell)) +
		unitStyle.Render("/"+n.SellUnit)
	if n.BulkSell != n.RetailSell {
		line += dimStyle.Render("  bulk " + m.money(n.BulkSell))
	}
	if n.Cost > 0 {
		if profit, pct, ok := units.Profit(n.RetailSell, n.SellUnit, n.Cost, n.CostUnit); ok {
			line += dimStyle.Render(fmt.Sprintf("  +%s (%.0f%%)", m.money(profit), pct))
		} else {
			line += warningStyle.Render("  N/A (different units)")
		}
	}
	return line
}

func (m Model) money(v float64) string {
	return m.cfg.UI.CurrencySymbol + trimFloat(v)
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

func (m Model) renderContacts() string {
	var b strings.Builder
	if len(m.people) == 0 {
		b.WriteString(dimStyle.Render("  no contacts — press a to add one"))
		b.WriteString("\n")
		return b.String()
	}
	visible := m.visibleWindow(len(m.people), m.contactCursor)
	for i := visible.start; i < visible.end; i++ {
		p := m.people[i]
		prefix := "  "
		if i == m.contactCursor {
			prefix = cursorStyle.Render("> ")
		}
		photo := " "
		if m.photos != nil && m.photos.Has(p.ID) {
			photo = "◉"
		}
		line := fmt.Sprintf("%s%s %-24s %s", prefix, photo, p.Name,
			dimStyle.Render(strings.Join(p.Phones, ", ")))
		if p.Category != "" {
			line += "  " + tabStyle.Render(p.Category)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if len(m.dupeWarnings) > 0 {
		b.WriteString("\n")
		b.WriteString(warningStyle.Render("possible duplicates of the saved contact:"))
		b.WriteString("\n")
		for _, d := range m.dupeWarnings {
			b.WriteString(fmt.Sprintf("  %s  %.0f%% %s\n",
				d.Person.Name, d.Score.Score*100, dimStyle.Render(string(d.Score.MatchType))))
		}
	}
	return b.String()
}

func (m Model) renderDuplicates() string {
	var b strings.Builder
	if len(m.groups) == 0 {
		b.WriteString(dimStyle.Render("  no duplicate groups found"))
		b.WriteString("\n")
		return b.String()
	}
	for i, g := range m.groups {
		prefix := "  "
		if i == m.dupCursor {
			prefix = cursorStyle.Render("> ")
		}
		header := g.Reason
		if g.Phone != "" {
			header = "shared phone " + g.Phone
		}
		b.WriteString(prefix + warningStyle.Render(header))
		b.WriteString("\n")
		for _, p := range g.Contacts {
			b.WriteString(fmt.Sprintf("      %s  %s\n", p.Name,
				dimStyle.Render(strings.Join(p.Phones, ", "))))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  m merges the highlighted group's first two contacts"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderItemForm() string {
	f := m.itemForm
	title := "Edit entry"
	if f.path == "" {
		title = "New entry"
		if f.parentPath != "" {
			title += " in " + f.parentPath
		}
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")
	for i, in := range f.fields {
		b.WriteString(fieldLabelStyle.Render(f.labels[i]))
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("enter save · tab next field · esc cancel"))
	return modalStyle.Render(b.String())
}

func (m Model) renderContactForm() string {
	f := m.contactForm
	title := "New contact"
	if f.id != "" {
		title = "Edit contact"
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")
	for i, in := range f.fields {
		b.WriteString(fieldLabelStyle.Render(f.labels[i]))
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("phones: 10 digits, separate with , or /"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("enter save · tab next field · esc cancel"))
	return modalStyle.Render(b.String())
}

func (m Model) renderBulkEditor() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Bulk edit · " + m.bulkCat))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Name | phones | address | specialty | notes"))
	b.WriteString("\n\n")
	b.WriteString(m.bulkEditor.View())
	b.WriteString("\n")
	if len(m.bulkErrs) > 0 {
		b.WriteString(errorStyle.Render(fmt.Sprintf("%d errors, nothing saved:", len(m.bulkErrs))))
		b.WriteString("\n")
		for _, e := range m.bulkErrs {
			b.WriteString(errorStyle.Render("  " + e))
			b.WriteString("\n")
		}
	}
	b.WriteString(dimStyle.Render("ctrl+s apply · esc cancel"))
	return modalStyle.Render(b.String())
}

func (m Model) renderStatusBar() string {
	if m.lastErr != nil {
		return statusBarStyle.Render(errorStyle.Render("error: " + m.lastErr.Error()))
	}
	left := m.status
	if left == "" {
		left = m.listName
	}
	stats := pricetree.CollectStats(m.tree)
	right := fmt.Sprintf("%d categories · %d items · %d contacts",
		stats.Categories, stats.Items, len(m.people))
	return statusBarStyle.Render(left + "   " + dimStyle.Render(right))
}

type window struct {
	start, end int
}

// visibleWindow keeps the cursor inside the scrolling viewport.
func (m Model) visibleWindow(total, cursor int) window {
	rows := m.height - 6
	if rows < 5 {
		rows = 5
	}
	if total <= rows {
		return window{0, total}
	}
	start := cursor - rows/2
	if start < 0 {
		start = 0
	}
	if start+rows > total {
		start = total - rows
	}
	return window{start, start + rows}
}
