package pricetree

import (
	"encoding/json"
	"reflect"
	"testing"
)

func item(retail, bulk, cost float64) *Node {
	return &Node{Kind: KindItem, RetailSell: retail, BulkSell: bulk, Cost: cost, SellUnit: "piece", CostUnit: "piece"}
}

func category(children map[string]*Node) *Node {
	if children == nil {
		children = map[string]*Node{}
	}
	return &Node{Kind: KindCategory, Children: children}
}

func sampleTree() Tree {
	return Tree{Nodes: map[string]*Node{
		"Taps": category(map[string]*Node{
			"Angle Valve": {Kind: KindItem, RetailSell: 50, BulkSell: 45, Cost: 40, SellUnit: "piece", CostUnit: "piece"},
			"Bib Cock":    item(120, 110, 90),
		}),
		"Pipes": category(map[string]*Node{
			"Cpvc": category(map[string]*Node{
				"1/2 Inch Pipe": {Kind: KindItem, RetailSell: 180, BulkSell: 170, Cost: 150, SellUnit: "foot", CostUnit: "foot"},
			}),
		}),
		"Teflon Tape": item(15, 12, 8),
	}}
}

func TestJSONRoundTrip(t *testing.T) {
	src := DeepAddOrderKeys(sampleTree())
	data, err := json.Marshal(src)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got Tree
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(src, got) {
		t.Fatalf("round trip mismatch:\n src %+v\n got %+v", src, got)
	}
}

func TestOrderKeysSurviveRoundTrip(t *testing.T) {
	src := sampleTree()
	src.OrderKeys = []string{"Teflon Tape", "Pipes", "Taps"}
	data, err := json.Marshal(src)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got Tree
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := []string{"Teflon Tape", "Pipes", "Taps"}
	if !reflect.DeepEqual(got.Keys(), want) {
		t.Fatalf("keys after round trip = %v, want %v", got.Keys(), want)
	}
}

func TestLegacySellAlias(t *testing.T) {
	raw := `{"Old Item": {"type":"item","sell":99,"cost":80,"sellUnit":"kg","costUnit":"kg"}}`
	var tree Tree
	if err := json.Unmarshal([]byte(raw), &tree); err != nil {
		t.Fatalf("unmarshal legacy: %v", err)
	}
	n := tree.Nodes["Old Item"]
	if n == nil || n.RetailSell != 99 {
		t.Fatalf("legacy sell not read as retailSell: %+v", n)
	}
	if n.BulkSell != 99 {
		t.Fatalf("bulkSell should default to retailSell, got %v", n.BulkSell)
	}

	// legacy field is never written back
	out, err := json.Marshal(tree)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var generic map[string]map[string]any
	if err := json.Unmarshal(out, &generic); err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if _, ok := generic["Old Item"]["sell"]; ok {
		t.Fatalf("legacy sell field re-emitted: %s", out)
	}
	if generic["Old Item"]["retailSell"] != 99.0 {
		t.Fatalf("retailSell missing on write: %s", out)
	}
}

func TestUnknownNodeType(t *testing.T) {
	var tree Tree
	if err := json.Unmarshal([]byte(`{"X": {"type":"widget"}}`), &tree); err == nil {
		t.Fatalf("expected error for unknown node type")
	}
}

func TestCloneIsDeep(t *testing.T) {
	src := sampleTree()
	dup := src.Clone()
	dup.Nodes["Taps"].Children["Angle Valve"].RetailSell = 999
	dup.Nodes["Pipes"].Children["Hdpe"] = category(nil)
	if src.Nodes["Taps"].Children["Angle Valve"].RetailSell != 50 {
		t.Fatalf("clone shares item nodes with source")
	}
	if _, ok := src.Nodes["Pipes"].Children["Hdpe"]; ok {
		t.Fatalf("clone shares child maps with source")
	}
}

// checkInvariants enforces the structural rules: order keys, when present,
// are exactly the key set of their mapping, and every category has a
// non-nil children map.
func checkInvariants(t *testing.T, tree Tree) {
	t.Helper()
	checkOrder(t, "<root>", tree.Nodes, tree.OrderKeys)
	var walk func(path string, n *Node)
	walk = func(path string, n *Node) {
		if n.Kind == KindItem {
			return
		}
		if n.Children == nil {
			t.Fatalf("category %q has nil children", path)
		}
		checkOrder(t, path, n.Children, n.OrderKeys)
		for name, ch := range n.Children {
			walk(path+"."+name, ch)
		}
	}
	for name, n := range tree.Nodes {
		walk(name, n)
	}
}

func checkOrder(t *testing.T, path string, nodes map[string]*Node, order []string) {
	t.Helper()
	if order == nil {
		return
	}
	if len(order) != len(nodes) {
		t.Fatalf("%s: order keys %v do not cover key set (%d nodes)", path, order, len(nodes))
	}
	for _, k := range order {
		if _, ok := nodes[k]; !ok {
			t.Fatalf("%s: order key %q has no node", path, k)
		}
	}
}
