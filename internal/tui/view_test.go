package tui

import (
	"strings"
	"testing"

	"github.com/jask/pricebook/internal/config"
	"github.com/jask/pricebook/internal/pricetree"
)

func TestItemRowShowsNAForMixedUnits(t *testing.T) {
	m := New(config.Config{}, nil, nil, nil)
	n := &pricetree.Node{
		Kind:       pricetree.KindItem,
		RetailSell: 100,
		SellUnit:   "piece",
		Cost:       50,
		CostUnit:   "kg",
	}
	line := m.renderTreeRow(treeRow{Path: "Widget", Name: "Widget", Node: n}, false)
	if !strings.Contains(line, "N/A (different units)") {
		t.Fatalf("cross-dimension cost must render N/A, got %q", line)
	}
	if strings.Contains(line, "%") {
		t.Fatalf("no profit percent should render for mixed units: %q", line)
	}
}

func TestItemRowShowsProfitForConvertibleUnits(t *testing.T) {
	m := New(config.Config{}, nil, nil, nil)
	n := &pricetree.Node{
		Kind:       pricetree.KindItem,
		RetailSell: 180,
		BulkSell:   180,
		SellUnit:   "foot",
		Cost:       150,
		CostUnit:   "foot",
	}
	line := m.renderTreeRow(treeRow{Path: "Pipe", Name: "Pipe", Node: n}, false)
	if !strings.Contains(line, "+") || !strings.Contains(line, "%") {
		t.Fatalf("same-unit cost should render profit, got %q", line)
	}
	if strings.Contains(line, "N/A") {
		t.Fatalf("convertible units must not render N/A: %q", line)
	}
}

func TestItemRowZeroCostOmitsProfit(t *testing.T) {
	m := New(config.Config{}, nil, nil, nil)
	n := &pricetree.Node{
		Kind:       pricetree.KindItem,
		RetailSell: 15,
		BulkSell:   15,
		SellUnit:   "piece",
		CostUnit:   "piece",
	}
	line := m.renderTreeRow(treeRow{Path: "Tape", Name: "Tape", Node: n}, false)
	if strings.Contains(line, "N/A") || strings.Contains(line, "%") {
		t.Fatalf("no cost, no profit segment: %q", line)
	}
}
