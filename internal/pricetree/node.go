// Package pricetree implements the nested category/item price-list tree:
// a value-type tree addressed by dot-joined paths, with pure operations
// that deep-clone before mutating so callers never see aliasing between
// the old and new tree.
package pricetree

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Kind discriminates the two node variants.
type Kind string

const (
	KindCategory Kind = "category"
	KindItem     Kind = "item"
)

// Node is one entry of the price tree. Category nodes use Children and
// OrderKeys; item nodes use the pricing fields. Names live in the parent
// mapping, not on the node.
type Node struct {
	Kind Kind

	// category fields
	Children  map[string]*Node
	OrderKeys []string // persisted display order of Children's keys

	// item fields
	RetailSell float64
	BulkSell   float64
	Cost       float64
	SellUnit   string
	CostUnit   string

	Notes string
	Photo string
}

// Tree is the root mapping of a price list. Like a category node it carries
// an optional explicit ordering of its keys, persisted as "__orderKeys",
// because map key order does not survive a JSON round trip.
type Tree struct {
	Nodes     map[string]*Node
	OrderKeys []string
}

// NewTree returns an empty tree.
func NewTree() Tree {
	return Tree{Nodes: map[string]*Node{}}
}

// Clone deep-copies the tree.
func (t Tree) Clone() Tree {
	out := Tree{Nodes: make(map[string]*Node, len(t.Nodes))}
	for k, n := range t.Nodes {
		out.Nodes[k] = n.clone()
	}
	if t.OrderKeys != nil {
		out.OrderKeys = append([]string(nil), t.OrderKeys...)
	}
	return out
}

func (n *Node) clone() *Node {
	if n == nil {
		return nil
	}
	c := *n
	if n.Children != nil {
		c.Children = make(map[string]*Node, len(n.Children))
		for k, ch := range n.Children {
			c.Children[k] = ch.clone()
		}
	}
	if n.OrderKeys != nil {
		c.OrderKeys = append([]string(nil), n.OrderKeys...)
	}
	return &c
}

// orderedKeys returns keys in explicit order when present, with any keys
// missing from the order list appended sorted, and stale order entries
// dropped. With no order list all keys come back sorted.
func orderedKeys(nodes map[string]*Node, order []string) []string {
	out := make([]string, 0, len(nodes))
	seen := make(map[string]bool, len(nodes))
	for _, k := range order {
		if _, ok := nodes[k]; ok && !seen[k] {
			out = append(out, k)
			seen[k] = true
		}
	}
	var rest []string
	for k := range nodes {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

// Keys returns the tree's root keys in display order.
func (t Tree) Keys() []string {
	return orderedKeys(t.Nodes, t.OrderKeys)
}

// ChildKeys returns a category node's child keys in display order.
func (n *Node) ChildKeys() []string {
	if n == nil {
		return nil
	}
	return orderedKeys(n.Children, n.OrderKeys)
}

const orderKeysField = "__orderKeys"

type nodeJSON struct {
	Type      string           `json:"type"`
	Children  map[string]*Node `json:"children,omitempty"`
	OrderKeys []string         `json:"__orderKeys,omitempty"`

	RetailSell *float64 `json:"retailSell,omitempty"`
	Sell       *float64 `json:"sell,omitempty"` // legacy alias, read only
	BulkSell   *float64 `json:"bulkSell,omitempty"`
	Cost       *float64 `json:"cost,omitempty"`
	SellUnit   string   `json:"sellUnit,omitempty"`
	CostUnit   string   `json:"costUnit,omitempty"`

	Notes string `json:"notes,omitempty"`
	Photo string `json:"photo,omitempty"`
}

// MarshalJSON encodes the discriminated union. Items always emit their
// three prices; categories always emit children, even when empty.
func (n *Node) MarshalJSON() ([]byte, error) {
	switch n.Kind {
	case KindCategory:
		children := n.Children
		if children == nil {
			children = map[string]*Node{}
		}
		return json.Marshal(struct {
			Type      string           `json:"type"`
			Children  map[string]*Node `json:"children"`
			OrderKeys []string         `json:"__orderKeys,omitempty"`
			Notes     string           `json:"notes,omitempty"`
		}{string(KindCategory), children, n.OrderKeys, n.Notes})
	case KindItem:
		return json.Marshal(struct {
			Type       string  `json:"type"`
			RetailSell float64 `json:"retailSell"`
			BulkSell   float64 `json:"bulkSell"`
			Cost       float64 `json:"cost"`
			SellUnit   string  `json:"sellUnit"`
			CostUnit   string  `json:"costUnit"`
			Notes      string  `json:"notes,omitempty"`
			Photo      string  `json:"photo,omitempty"`
		}{string(KindItem), n.RetailSell, n.BulkSell, n.Cost, n.SellUnit, n.CostUnit, n.Notes, n.Photo})
	}
	return nil, fmt.Errorf("pricetree: marshal node with unknown kind %q", n.Kind)
}

// UnmarshalJSON decodes either variant. The deprecated "sell" field is
// honoured as retailSell when retailSell is absent, and bulkSell defaults
// to retailSell; neither legacy form is ever written back.
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw nodeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch Kind(raw.Type) {
	case KindCategory:
		*n = Node{Kind: KindCategory, Children: raw.Children, OrderKeys: raw.OrderKeys, Notes: raw.Notes}
		if n.Children == nil {
			n.Children = map[string]*Node{}
		}
		return nil
	case KindItem:
		retail := 0.0
		if raw.RetailSell != nil {
			retail = *raw.RetailSell
		} else if raw.Sell != nil {
			retail = *raw.Sell
		}
		bulk := retail
		if raw.BulkSell != nil {
			bulk = *raw.BulkSell
		}
		cost := 0.0
		if raw.Cost != nil {
			cost = *raw.Cost
		}
		*n = Node{
			Kind:       KindItem,
			RetailSell: retail,
			BulkSell:   bulk,
			Cost:       cost,
			SellUnit:   raw.SellUnit,
			CostUnit:   raw.CostUnit,
			Notes:      raw.Notes,
			Photo:      raw.Photo,
		}
		return nil
	}
	return fmt.Errorf("pricetree: unmarshal node with unknown type %q", raw.Type)
}

// MarshalJSON encodes the root mapping with its optional "__orderKeys"
// member alongside the named nodes.
func (t Tree) MarshalJSON() ([]byte, error) {
	obj := make(map[string]json.RawMessage, len(t.Nodes)+1)
	for k, n := range t.Nodes {
		b, err := json.Marshal(n)
		if err != nil {
			return nil, err
		}
		obj[k] = b
	}
	if t.OrderKeys != nil {
		b, err := json.Marshal(t.OrderKeys)
		if err != nil {
			return nil, err
		}
		obj[orderKeysField] = b
	}
	return json.Marshal(obj)
}

// UnmarshalJSON decodes the root mapping, pulling "__orderKeys" out of the
// node namespace.
func (t *Tree) UnmarshalJSON(data []byte) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	out := Tree{Nodes: make(map[string]*Node, len(obj))}
	for k, raw := range obj {
		if k == orderKeysField {
			if err := json.Unmarshal(raw, &out.OrderKeys); err != nil {
				return err
			}
			continue
		}
		var n Node
		if err := json.Unmarshal(raw, &n); err != nil {
			return fmt.Errorf("node %q: %w", k, err)
		}
		out.Nodes[k] = &n
	}
	*t = out
	return nil
}
