// Package bulktext serializes a price tree to and from the plain-text
// bulk-edit format: one node per line, two spaces of indentation per
// nesting level, items carrying pipe-delimited pricing fields.
//
// The format is a stable contract:
//
//	Category Name
//	  Item Name | retailPrice | costPrice | sellUnit | costUnit
//
// Trailing item fields are optional ("piece" default), commas are accepted
// as a fallback separator, malformed numbers coerce silently to zero and
// blank lines are ignored.
package bulktext

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jask/pricebook/internal/pricetree"
)

const indent = "  "

var titleCaser = cases.Title(language.English)

// ToTitleCase normalizes a display name the same way the add/edit forms do.
func ToTitleCase(s string) string {
	return titleCaser.String(strings.TrimSpace(s))
}

// Export writes the tree depth-first, honouring explicit order keys and
// falling back to natural key order where none are recorded.
func Export(tree pricetree.Tree) string {
	var b strings.Builder
	for _, name := range tree.Keys() {
		exportNode(&b, name, tree.Nodes[name], 0)
	}
	return b.String()
}

func exportNode(b *strings.Builder, name string, n *pricetree.Node, depth int) {
	pad := strings.Repeat(indent, depth)
	if n.Kind == pricetree.KindItem {
		fmt.Fprintf(b, "%s%s | %s | %s | %s | %s\n",
			pad, name, formatPrice(n.RetailSell), formatPrice(n.Cost), n.SellUnit, n.CostUnit)
		return
	}
	b.WriteString(pad + name + "\n")
	for _, childName := range n.ChildKeys() {
		exportNode(b, childName, n.Children[childName], depth+1)
	}
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Import parses bulk-edit text back into a tree. Indentation depth is
// leading spaces divided by two; a line containing a separator is an item,
// any other non-blank line is a category. A stack tracks nesting: each line
// pops entries at or below its own level, so a line's ancestors are exactly
// the still-stacked shallower categories. Order keys are recorded from
// insertion order on every level.
func Import(text string) (pricetree.Tree, error) {
	tree := pricetree.NewTree()
	tree.OrderKeys = []string{}

	type frame struct {
		level int
		nodes map[string]*pricetree.Node
		order *[]string
	}
	stack := []frame{{level: -1, nodes: tree.Nodes, order: &tree.OrderKeys}}

	for lineNo, raw := range strings.Split(text, "\n") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		level := (len(raw) - len(strings.TrimLeft(raw, " "))) / 2
		line := strings.TrimSpace(raw)

		for stack[len(stack)-1].level >= level {
			stack = stack[:len(stack)-1]
		}
		top := stack[len(stack)-1]

		name, node, err := parseLine(line)
		if err != nil {
			return pricetree.NewTree(), fmt.Errorf("line %d: %w", lineNo+1, err)
		}
		if _, exists := top.nodes[name]; !exists {
			*top.order = append(*top.order, name)
		}
		top.nodes[name] = node
		if node.Kind == pricetree.KindCategory {
			stack = append(stack, frame{level: level, nodes: node.Children, order: &node.OrderKeys})
		}
	}
	return tree, nil
}

func parseLine(line string) (string, *pricetree.Node, error) {
	sep := "|"
	if !strings.Contains(line, "|") {
		if strings.Contains(line, ",") {
			sep = ","
		} else {
			name := ToTitleCase(line)
			if name == "" {
				return "", nil, fmt.Errorf("empty category name")
			}
			return name, &pricetree.Node{
				Kind:      pricetree.KindCategory,
				Children:  map[string]*pricetree.Node{},
				OrderKeys: []string{},
			}, nil
		}
	}

	fields := strings.Split(line, sep)
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	name := ToTitleCase(fields[0])
	if name == "" {
		return "", nil, fmt.Errorf("item line with empty name")
	}
	n := &pricetree.Node{
		Kind:     pricetree.KindItem,
		SellUnit: pricetree.DefaultUnit,
		CostUnit: pricetree.DefaultUnit,
	}
	if len(fields) > 1 {
		n.RetailSell = parsePrice(fields[1])
	}
	n.BulkSell = n.RetailSell
	if len(fields) > 2 {
		n.Cost = parsePrice(fields[2])
	}
	if len(fields) > 3 && fields[3] != "" {
		n.SellUnit = fields[3]
	}
	if len(fields) > 4 && fields[4] != "" {
		n.CostUnit = fields[4]
	}
	return name, n, nil
}

func parsePrice(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
