package pricetree

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Form carries raw add/edit input. Prices arrive as the user typed them;
// anything unparseable becomes zero rather than an error. Empty name
// validation is the caller's job, the tree does not police it.
type Form struct {
	Name       string
	RetailSell string
	BulkSell   string
	Cost       string
	SellUnit   string
	CostUnit   string
	Notes      string
}

// DefaultUnit is applied when a form leaves a unit blank.
const DefaultUnit = "piece"

func parsePrice(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) {
		return 0
	}
	return v
}

func splitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}

// GetAtPath resolves a dot-joined path to a node, or nil when any segment
// is missing. The empty path addresses the root mapping, which is not a
// node, so it also yields nil.
func GetAtPath(tree Tree, path string) *Node {
	segs := splitPath(path)
	if len(segs) == 0 {
		return nil
	}
	nodes := tree.Nodes
	var cur *Node
	for _, seg := range segs {
		cur = nodes[seg]
		if cur == nil {
			return nil
		}
		nodes = cur.Children
	}
	return cur
}

// container is a mutable view over either the root mapping or a category's
// children, including its order list.
type container struct {
	nodes map[string]*Node
	order *[]string
}

func containerAt(t *Tree, path string) (container, error) {
	if path == "" {
		return container{nodes: t.Nodes, order: &t.OrderKeys}, nil
	}
	n := GetAtPath(*t, path)
	if n == nil {
		return container{}, fmt.Errorf("pricetree: path %q not found", path)
	}
	if n.Kind != KindCategory {
		return container{}, fmt.Errorf("pricetree: path %q is not a category", path)
	}
	if n.Children == nil {
		n.Children = map[string]*Node{}
	}
	return container{nodes: n.Children, order: &n.OrderKeys}, nil
}

func (c container) insert(name string, n *Node) {
	_, existed := c.nodes[name]
	c.nodes[name] = n
	if *c.order != nil && !existed {
		*c.order = append(*c.order, name)
	}
}

func (c container) remove(name string) {
	delete(c.nodes, name)
	if *c.order == nil {
		return
	}
	order := *c.order
	for i, k := range order {
		if k == name {
			*c.order = append(order[:i:i], order[i+1:]...)
			return
		}
	}
}

func (c container) rename(oldName, newName string) {
	if *c.order == nil || oldName == newName {
		return
	}
	order := *c.order
	// renaming onto an existing sibling overwrites it in the mapping, so
	// its order slot has to go too or the list would carry the name twice
	for i, k := range order {
		if k == newName {
			order = append(order[:i:i], order[i+1:]...)
			break
		}
	}
	for i, k := range order {
		if k == oldName {
			order[i] = newName
			break
		}
	}
	*c.order = order
}

func newNodeFromForm(kind Kind, form Form) *Node {
	if kind == KindCategory {
		return &Node{Kind: KindCategory, Children: map[string]*Node{}, Notes: form.Notes}
	}
	n := &Node{
		Kind:       KindItem,
		RetailSell: parsePrice(form.RetailSell),
		Cost:       parsePrice(form.Cost),
		SellUnit:   form.SellUnit,
		CostUnit:   form.CostUnit,
		Notes:      form.Notes,
	}
	if strings.TrimSpace(form.BulkSell) == "" {
		n.BulkSell = n.RetailSell
	} else {
		n.BulkSell = parsePrice(form.BulkSell)
	}
	if n.SellUnit == "" {
		n.SellUnit = DefaultUnit
	}
	if n.CostUnit == "" {
		n.CostUnit = DefaultUnit
	}
	return n
}

// AddItem inserts a new category or item under parentPath (empty for the
// root) and returns the new tree; the input tree is untouched.
func AddItem(tree Tree, parentPath string, kind Kind, form Form) (Tree, error) {
	out := tree.Clone()
	c, err := containerAt(&out, parentPath)
	if err != nil {
		return tree, err
	}
	c.insert(form.Name, newNodeFromForm(kind, form))
	return out, nil
}

// EditItem rewrites the node at path from the form, supporting rename: the
// old key is removed from the parent mapping and the node re-inserted under
// the form's name. Item pricing is overwritten; notes come from the form;
// a photo and a category's subtree are retained.
func EditItem(tree Tree, path string, form Form) (Tree, error) {
	segs := splitPath(path)
	if len(segs) == 0 {
		return tree, fmt.Errorf("pricetree: edit with empty path")
	}
	out := tree.Clone()
	parent := strings.Join(segs[:len(segs)-1], ".")
	c, err := containerAt(&out, parent)
	if err != nil {
		return tree, err
	}
	oldName := segs[len(segs)-1]
	old := c.nodes[oldName]
	if old == nil {
		return tree, fmt.Errorf("pricetree: path %q not found", path)
	}

	next := newNodeFromForm(old.Kind, form)
	next.Photo = old.Photo
	if old.Kind == KindCategory {
		next.Children = old.Children
		next.OrderKeys = old.OrderKeys
	}

	if oldName == form.Name {
		c.nodes[oldName] = next
		return out, nil
	}
	c.rename(oldName, form.Name)
	delete(c.nodes, oldName)
	c.nodes[form.Name] = next
	return out, nil
}

// DeleteItem removes the node at path. Deleting a category key drops its
// whole subtree with it; no cascade is needed.
func DeleteItem(tree Tree, path string) (Tree, error) {
	segs := splitPath(path)
	if len(segs) == 0 {
		return tree, fmt.Errorf("pricetree: delete with empty path")
	}
	out := tree.Clone()
	parent := strings.Join(segs[:len(segs)-1], ".")
	c, err := containerAt(&out, parent)
	if err != nil {
		return tree, err
	}
	name := segs[len(segs)-1]
	if _, ok := c.nodes[name]; !ok {
		return tree, fmt.Errorf("pricetree: path %q not found", path)
	}
	c.remove(name)
	return out, nil
}
