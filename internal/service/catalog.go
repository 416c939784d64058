// Package service orchestrates the pure engines against the repositories.
// Every mutation follows the optimistic ordering contract: the new value is
// computed synchronously and handed back for display first, and the write
// is a separate single-attempt call the UI fires afterwards, reporting
// failure rather than retrying.
package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jask/pricebook/internal/bulktext"
	"github.com/jask/pricebook/internal/database"
	"github.com/jask/pricebook/internal/database/repository"
	"github.com/jask/pricebook/internal/pricetree"
)

// DefaultPriceListID is the single catalog a fresh install works with.
const DefaultPriceListID = "default"

// CatalogService loads and stores price trees.
type CatalogService struct {
	Lists *repository.PriceListRepo
}

// Load fetches a stored price list and decodes its tree. A missing id
// yields an empty named tree rather than an error so first launch just
// works.
func (s *CatalogService) Load(ctx context.Context, id string) (pricetree.Tree, string, error) {
	pl, err := s.Lists.Get(ctx, id)
	if err != nil {
		return pricetree.NewTree(), "", fmt.Errorf("load price list: %w", err)
	}
	if pl == nil {
		return pricetree.NewTree(), "Price List", nil
	}
	var tree pricetree.Tree
	if err := json.Unmarshal([]byte(pl.TreeJSON), &tree); err != nil {
		return pricetree.NewTree(), "", fmt.Errorf("decode price list %s: %w", id, err)
	}
	if tree.Nodes == nil {
		tree.Nodes = map[string]*pricetree.Node{}
	}
	return tree, pl.Name, nil
}

// Save stamps order keys into the tree and upserts it. Order keys are the
// durable ordering contract; the caller's in-memory tree may rely on map
// iteration plus explicit order, but nothing ordered survives the JSON
// round trip without them.
func (s *CatalogService) Save(ctx context.Context, id, name string, tree pricetree.Tree) error {
	keyed := pricetree.DeepAddOrderKeys(tree)
	data, err := json.Marshal(keyed)
	if err != nil {
		return fmt.Errorf("encode price list: %w", err)
	}
	err = s.Lists.Upsert(ctx, repository.PriceList{
		ID:        id,
		Name:      name,
		TreeJSON:  string(data),
		UpdatedAt: database.Now(),
	})
	if err != nil {
		return fmt.Errorf("save price list: %w", err)
	}
	return nil
}

// ExportText renders the tree in the bulk-edit text format.
func (s *CatalogService) ExportText(tree pricetree.Tree) string {
	return bulktext.Export(tree)
}

// ImportText parses bulk-edit text into a replacement tree.
func (s *CatalogService) ImportText(text string) (pricetree.Tree, error) {
	tree, err := bulktext.Import(text)
	if err != nil {
		return pricetree.NewTree(), fmt.Errorf("parse bulk text: %w", err)
	}
	return tree, nil
}
