package repository

import (
	"context"
	"database/sql"

	"github.com/jask/pricebook/internal/database"
)

// ContactCategoryRepo handles the contacts taxonomy.
type ContactCategoryRepo struct {
	db *sql.DB
}

func NewContactCategoryRepo(db *sql.DB) *ContactCategoryRepo {
	return &ContactCategoryRepo{db: db}
}

func (r *ContactCategoryRepo) Upsert(ctx context.Context, c CategoryRow) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO contact_categories(id, label, is_default)
	VALUES (?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 label=excluded.label,
	 is_default=excluded.is_default;
	`, c.ID, c.Label, c.IsDefault)
	return err
}

func (r *ContactCategoryRepo) List(ctx context.Context) ([]CategoryRow, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, label, is_default FROM contact_categories ORDER BY label COLLATE NOCASE`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []CategoryRow
	for rows.Next() {
		var c CategoryRow
		if err := rows.Scan(&c.ID, &c.Label, &c.IsDefault); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Delete removes a taxonomy entry and moves its contacts to the catch-all
// bucket so no row is left pointing at a missing category.
func (r *ContactCategoryRepo) Delete(ctx context.Context, id string) error {
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`UPDATE contacts SET category = 'other' WHERE category = ?`, id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			`DELETE FROM contact_categories WHERE id = ? AND is_default = 0`, id)
		return err
	})
}
