package pricetree

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jask/pricebook/internal/units"
)

// The normalizer rewrites numeric+unit phrases ("1/2 inch", `1/2"`, "12mm")
// into a canonical <number><tag>unit token before stripping punctuation, so
// every spelling of a size matches every other. One shared function serves
// both stored names and live queries; the tables come from the units
// catalog so search and conversion cannot disagree about aliases.
var (
	numberPat  = `\d+(?:\.\d+)?(?:\s*/\s*\d+)?`
	unitWordRe *regexp.Regexp
	unitSymRe  *regexp.Regexp
	stripRe    = regexp.MustCompile(`[^a-z0-9]+`)
	aliasTags  = units.AliasTags()
)

func init() {
	words := make([]string, 0, len(aliasTags))
	for alias := range aliasTags {
		if alias == `"` || alias == "'" {
			continue
		}
		words = append(words, alias)
	}
	// longest first so "square foot" wins over "foot"
	sort.Slice(words, func(i, j int) bool {
		if len(words[i]) != len(words[j]) {
			return len(words[i]) > len(words[j])
		}
		return words[i] < words[j]
	})
	for i, w := range words {
		words[i] = strings.ReplaceAll(regexp.QuoteMeta(w), " ", `\s+`)
	}
	unitWordRe = regexp.MustCompile(`(` + numberPat + `)\s*(` + strings.Join(words, "|") + `)\b`)
	unitSymRe = regexp.MustCompile(`(` + numberPat + `)\s*(["'])`)
}

// NormalizeItemName canonicalizes a name or query for matching: lower-case,
// rewrite numeric+unit phrases through the alias table, then drop all
// whitespace and punctuation.
func NormalizeItemName(text string) string {
	s := strings.ToLower(text)
	s = rewriteUnits(s, unitWordRe)
	s = rewriteUnits(s, unitSymRe)
	return stripRe.ReplaceAllString(s, "")
}

func rewriteUnits(s string, re *regexp.Regexp) string {
	return re.ReplaceAllStringFunc(s, func(m string) string {
		sub := re.FindStringSubmatch(m)
		num := stripRe.ReplaceAllString(sub[1], "")
		alias := strings.Join(strings.Fields(sub[2]), " ")
		tag, ok := aliasTags[alias]
		if !ok {
			return m
		}
		return num + tag + "unit"
	})
}

// FilterData prunes the tree to nodes matching searchText. An empty query
// returns the input unmodified. A node matches on its own normalized name,
// on its normalized dot-path, or because an ancestor matched; a category
// additionally survives when any descendant matches. A category matched by
// name or path keeps its full unfiltered subtree for context.
func FilterData(tree Tree, searchText string) Tree {
	if strings.TrimSpace(searchText) == "" {
		return tree
	}
	query := NormalizeItemName(searchText)
	out := Tree{Nodes: map[string]*Node{}}
	for name, n := range tree.Nodes {
		if kept := filterNode(name, n, "", query, false); kept != nil {
			out.Nodes[name] = kept
		}
	}
	if tree.OrderKeys != nil {
		out.OrderKeys = keepOrder(tree.OrderKeys, out.Nodes)
	}
	return out
}

func filterNode(name string, n *Node, parentPath, query string, parentMatches bool) *Node {
	path := name
	if parentPath != "" {
		path = parentPath + "." + name
	}
	selfMatches := strings.Contains(NormalizeItemName(name), query) ||
		strings.Contains(NormalizeItemName(path), query)

	if selfMatches || parentMatches {
		// already-included branches are not re-filtered; the subtree is
		// shown whole for context
		return n.clone()
	}
	if n.Kind != KindCategory {
		return nil
	}
	kept := map[string]*Node{}
	for childName, child := range n.Children {
		if k := filterNode(childName, child, path, query, false); k != nil {
			kept[childName] = k
		}
	}
	if len(kept) == 0 {
		return nil
	}
	out := &Node{Kind: KindCategory, Children: kept, Notes: n.Notes}
	if n.OrderKeys != nil {
		out.OrderKeys = keepOrder(n.OrderKeys, kept)
	}
	return out
}

func keepOrder(order []string, nodes map[string]*Node) []string {
	out := make([]string, 0, len(nodes))
	for _, k := range order {
		if _, ok := nodes[k]; ok {
			out = append(out, k)
		}
	}
	return out
}
