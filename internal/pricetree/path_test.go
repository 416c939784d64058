package pricetree

import (
	"reflect"
	"testing"
)

func TestGetAtPath(t *testing.T) {
	tree := sampleTree()
	if n := GetAtPath(tree, "Taps.Angle Valve"); n == nil || n.RetailSell != 50 {
		t.Fatalf("GetAtPath(Taps.Angle Valve) = %+v", n)
	}
	if n := GetAtPath(tree, "Pipes.Cpvc.1/2 Inch Pipe"); n == nil || n.Kind != KindItem {
		t.Fatalf("three-deep path failed: %+v", n)
	}
	for _, p := range []string{"", "Nope", "Taps.Nope", "Taps.Angle Valve.Deeper"} {
		if n := GetAtPath(tree, p); n != nil {
			t.Fatalf("GetAtPath(%q) = %+v, want nil", p, n)
		}
	}
}

func TestAddItemDefaults(t *testing.T) {
	tree := sampleTree()
	out, err := AddItem(tree, "Taps", KindItem, Form{Name: "Pillar Cock", RetailSell: "250", Cost: "garbage"})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	n := GetAtPath(out, "Taps.Pillar Cock")
	if n == nil {
		t.Fatalf("added item missing")
	}
	if n.SellUnit != "piece" || n.CostUnit != "piece" {
		t.Fatalf("units not defaulted: %+v", n)
	}
	if n.Cost != 0 {
		t.Fatalf("malformed cost should coerce to 0, got %v", n.Cost)
	}
	if n.BulkSell != 250 {
		t.Fatalf("bulk sell should default to retail, got %v", n.BulkSell)
	}
	// purity: input untouched
	if GetAtPath(tree, "Taps.Pillar Cock") != nil {
		t.Fatalf("input tree mutated by AddItem")
	}
	checkInvariants(t, out)
}

func TestAddCategoryAtRoot(t *testing.T) {
	out, err := AddItem(sampleTree(), "", KindCategory, Form{Name: "Fittings"})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	n := out.Nodes["Fittings"]
	if n == nil || n.Kind != KindCategory || n.Children == nil || len(n.Children) != 0 {
		t.Fatalf("new category malformed: %+v", n)
	}
	checkInvariants(t, out)
}

func TestAddItemBadParent(t *testing.T) {
	if _, err := AddItem(sampleTree(), "Missing", KindItem, Form{Name: "X"}); err == nil {
		t.Fatalf("expected error for missing parent")
	}
	if _, err := AddItem(sampleTree(), "Teflon Tape", KindItem, Form{Name: "X"}); err == nil {
		t.Fatalf("expected error for item parent")
	}
}

func TestAddItemMaintainsOrderKeys(t *testing.T) {
	tree := DeepAddOrderKeys(sampleTree())
	out, err := AddItem(tree, "Taps", KindItem, Form{Name: "Pillar Cock", RetailSell: "250"})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	keys := GetAtPath(out, "Taps").ChildKeys()
	if keys[len(keys)-1] != "Pillar Cock" {
		t.Fatalf("new key should append to order, got %v", keys)
	}
	checkInvariants(t, out)
}

func TestEditItemRename(t *testing.T) {
	tree := DeepAddOrderKeys(sampleTree())
	out, err := EditItem(tree, "Taps.Angle Valve", Form{
		Name: "Angle Valve Heavy", RetailSell: "60", BulkSell: "55", Cost: "45",
		SellUnit: "piece", CostUnit: "piece", Notes: "brass body",
	})
	if err != nil {
		t.Fatalf("EditItem: %v", err)
	}
	if GetAtPath(out, "Taps.Angle Valve") != nil {
		t.Fatalf("old key should be gone after rename")
	}
	n := GetAtPath(out, "Taps.Angle Valve Heavy")
	if n == nil || n.RetailSell != 60 || n.Notes != "brass body" {
		t.Fatalf("renamed item wrong: %+v", n)
	}
	// rename keeps the slot's position in the order
	keys := GetAtPath(out, "Taps").ChildKeys()
	want := GetAtPath(tree, "Taps").ChildKeys()
	for i, k := range want {
		if k == "Angle Valve" {
			want[i] = "Angle Valve Heavy"
		}
	}
	if !reflect.DeepEqual(keys, want) {
		t.Fatalf("order after rename = %v, want %v", keys, want)
	}
	checkInvariants(t, out)
}

func TestEditCategoryKeepsSubtree(t *testing.T) {
	tree := sampleTree()
	out, err := EditItem(tree, "Pipes", Form{Name: "Pipes & Tubes", Notes: "updated"})
	if err != nil {
		t.Fatalf("EditItem: %v", err)
	}
	n := GetAtPath(out, "Pipes & Tubes.Cpvc.1/2 Inch Pipe")
	if n == nil || n.RetailSell != 180 {
		t.Fatalf("subtree lost on category rename")
	}
	checkInvariants(t, out)
}

func TestEditItemKeepsPhoto(t *testing.T) {
	tree := sampleTree()
	tree.Nodes["Teflon Tape"].Photo = "base64data"
	out, err := EditItem(tree, "Teflon Tape", Form{Name: "Teflon Tape", RetailSell: "18"})
	if err != nil {
		t.Fatalf("EditItem: %v", err)
	}
	if out.Nodes["Teflon Tape"].Photo != "base64data" {
		t.Fatalf("photo not retained through edit")
	}
}

func TestDeleteItem(t *testing.T) {
	tree := DeepAddOrderKeys(sampleTree())
	out, err := DeleteItem(tree, "Pipes.Cpvc")
	if err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}
	if GetAtPath(out, "Pipes.Cpvc") != nil {
		t.Fatalf("deleted category still present")
	}
	if GetAtPath(tree, "Pipes.Cpvc") == nil {
		t.Fatalf("input tree mutated by DeleteItem")
	}
	if _, err := DeleteItem(out, "Pipes.Cpvc"); err == nil {
		t.Fatalf("expected error deleting missing path")
	}
	checkInvariants(t, out)
}

func TestMutationSequenceKeepsInvariants(t *testing.T) {
	tree := DeepAddOrderKeys(sampleTree())
	var err error
	steps := []func(Tree) (Tree, error){
		func(tr Tree) (Tree, error) { return AddItem(tr, "", KindCategory, Form{Name: "Tools"}) },
		func(tr Tree) (Tree, error) {
			return AddItem(tr, "Tools", KindItem, Form{Name: "Wrench", RetailSell: "300", Cost: "220"})
		},
		func(tr Tree) (Tree, error) {
			return EditItem(tr, "Tools.Wrench", Form{Name: "Pipe Wrench", RetailSell: "320", Cost: "220"})
		},
		func(tr Tree) (Tree, error) { return DeleteItem(tr, "Taps.Bib Cock") },
		func(tr Tree) (Tree, error) { return DeleteItem(tr, "Tools") },
	}
	for i, step := range steps {
		tree, err = step(tree)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		checkInvariants(t, tree)
	}
}

func TestEditRenameOntoSiblingDedupsOrder(t *testing.T) {
	tree, err := AddItem(NewTree(), "", KindItem, Form{Name: "Angle Valve", RetailSell: "50"})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	tree, err = AddItem(tree, "", KindItem, Form{Name: "Bib Cock", RetailSell: "120"})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	tree = DeepAddOrderKeys(tree)

	// rename overwrites the existing sibling; its order slot must go with it
	out, err := EditItem(tree, "Angle Valve", Form{Name: "Bib Cock", RetailSell: "60"})
	if err != nil {
		t.Fatalf("EditItem: %v", err)
	}
	if len(out.Nodes) != 1 {
		t.Fatalf("nodes = %v, want only Bib Cock", out.Keys())
	}
	if want := []string{"Bib Cock"}; !reflect.DeepEqual(out.OrderKeys, want) {
		t.Fatalf("order keys = %v, want %v", out.OrderKeys, want)
	}
	if out.Nodes["Bib Cock"].RetailSell != 60 {
		t.Fatalf("surviving node kept old pricing: %+v", out.Nodes["Bib Cock"])
	}
	checkInvariants(t, out)
}
