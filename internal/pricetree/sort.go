package pricetree

import (
	"sort"
	"strings"
)

// SortType selects one of the supported orderings.
type SortType string

const (
	SortNone         SortType = "none"
	SortAlphabetical SortType = "alphabetical"
	SortAlphaReverse SortType = "alphabetical-reverse"
	SortPriceLow     SortType = "price-low"
	SortPriceHigh    SortType = "price-high"
)

// SortData recursively sorts every level of the tree and records the result
// in the order keys (the mapping itself is unordered). The sort is stable
// over the current display order, and category entries always come before
// item entries at the same level regardless of sort type. Price sorts only
// compare prices between two items; all other pairs fall back to names.
func SortData(tree Tree, sortType SortType) Tree {
	out := tree.Clone()
	if sortType == SortNone {
		return out
	}
	out.OrderKeys = sortedKeys(out.Nodes, out.OrderKeys, sortType)
	for _, n := range out.Nodes {
		sortNode(n, sortType)
	}
	return out
}

func sortNode(n *Node, sortType SortType) {
	if n.Kind != KindCategory {
		return
	}
	n.OrderKeys = sortedKeys(n.Children, n.OrderKeys, sortType)
	for _, ch := range n.Children {
		sortNode(ch, sortType)
	}
}

func sortedKeys(nodes map[string]*Node, order []string, sortType SortType) []string {
	keys := orderedKeys(nodes, order)
	sort.SliceStable(keys, func(i, j int) bool {
		a, b := nodes[keys[i]], nodes[keys[j]]
		if a.Kind != b.Kind {
			return a.Kind == KindCategory
		}
		return nodeLess(keys[i], a, keys[j], b, sortType)
	})
	return keys
}

func nodeLess(nameA string, a *Node, nameB string, b *Node, sortType SortType) bool {
	switch sortType {
	case SortAlphabetical:
		return nameCompare(nameA, nameB) < 0
	case SortAlphaReverse:
		return nameCompare(nameA, nameB) > 0
	case SortPriceLow:
		if a.Kind == KindItem && b.Kind == KindItem {
			if a.RetailSell != b.RetailSell {
				return a.RetailSell < b.RetailSell
			}
		}
		return nameCompare(nameA, nameB) < 0
	case SortPriceHigh:
		if a.Kind == KindItem && b.Kind == KindItem {
			if a.RetailSell != b.RetailSell {
				return a.RetailSell > b.RetailSell
			}
		}
		return nameCompare(nameA, nameB) < 0
	}
	return false
}

func nameCompare(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// DeepAddOrderKeys stamps every level's current display order into explicit
// order keys. Run before persistence: the storage format does not promise
// to keep map key order through an encode/decode round trip, so the order
// list is the durable contract.
func DeepAddOrderKeys(tree Tree) Tree {
	out := tree.Clone()
	out.OrderKeys = orderedKeys(out.Nodes, out.OrderKeys)
	for _, n := range out.Nodes {
		deepOrderNode(n)
	}
	return out
}

func deepOrderNode(n *Node) {
	if n.Kind != KindCategory {
		return
	}
	n.OrderKeys = orderedKeys(n.Children, n.OrderKeys)
	for _, ch := range n.Children {
		deepOrderNode(ch)
	}
}
