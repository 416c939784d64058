package repository

import (
	"context"
	"database/sql"
)

// PriceListRepo handles stored price lists.
type PriceListRepo struct {
	db *sql.DB
}

func NewPriceListRepo(db *sql.DB) *PriceListRepo {
	return &PriceListRepo{db: db}
}

func (r *PriceListRepo) Upsert(ctx context.Context, pl PriceList) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO price_lists(id, name, tree_json, updated_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 name=excluded.name,
	 tree_json=excluded.tree_json,
	 updated_at=excluded.updated_at;
	`, pl.ID, pl.Name, pl.TreeJSON, pl.UpdatedAt)
	return err
}

func (r *PriceListRepo) Get(ctx context.Context, id string) (*PriceList, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, tree_json, updated_at FROM price_lists WHERE id = ?`, id)
	var pl PriceList
	if err := row.Scan(&pl.ID, &pl.Name, &pl.TreeJSON, &pl.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &pl, nil
}

func (r *PriceListRepo) List(ctx context.Context) ([]PriceList, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, tree_json, updated_at FROM price_lists ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []PriceList
	for rows.Next() {
		var pl PriceList
		if err := rows.Scan(&pl.ID, &pl.Name, &pl.TreeJSON, &pl.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, pl)
	}
	return out, rows.Err()
}

func (r *PriceListRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM price_lists WHERE id = ?`, id)
	return err
}
