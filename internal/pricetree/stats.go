package pricetree

import "github.com/jask/pricebook/internal/units"

// Stats aggregates tree-wide counters for the settings view.
type Stats struct {
	Categories int
	Items      int
	MaxDepth   int
	UnitUsage  map[string]int // canonical unit name -> items priced in it
}

// CollectStats walks the whole tree once.
func CollectStats(tree Tree) Stats {
	s := Stats{UnitUsage: map[string]int{}}
	for _, n := range tree.Nodes {
		statsWalk(n, 1, &s)
	}
	return s
}

func statsWalk(n *Node, depth int, s *Stats) {
	if depth > s.MaxDepth {
		s.MaxDepth = depth
	}
	if n.Kind == KindCategory {
		s.Categories++
		for _, ch := range n.Children {
			statsWalk(ch, depth+1, s)
		}
		return
	}
	s.Items++
	// aliases of one unit ("kg", "kilogram") share a bucket, and an item
	// priced in the same unit for sell and cost counts it once
	sell := ""
	if n.SellUnit != "" {
		sell = units.Canonical(n.SellUnit)
		s.UnitUsage[sell]++
	}
	if n.CostUnit != "" {
		if cost := units.Canonical(n.CostUnit); cost != sell {
			s.UnitUsage[cost]++
		}
	}
}
