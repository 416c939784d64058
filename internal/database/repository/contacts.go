package repository

import (
	"context"
	"database/sql"

	"github.com/jask/pricebook/internal/database"
)

// ContactRepo handles contact rows.
type ContactRepo struct {
	db *sql.DB
}

func NewContactRepo(db *sql.DB) *ContactRepo {
	return &ContactRepo{db: db}
}

const upsertContactSQL = `
	INSERT INTO contacts(id, name, category, phones_json, address, specialty, notes, photo, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 name=excluded.name,
	 category=excluded.category,
	 phones_json=excluded.phones_json,
	 address=excluded.address,
	 specialty=excluded.specialty,
	 notes=excluded.notes,
	 photo=excluded.photo,
	 updated_at=excluded.updated_at;
	`

func upsertArgs(c ContactRow) []any {
	return []any{c.ID, c.Name, c.Category, c.PhonesJSON, c.Address, c.Specialty, c.Notes, c.Photo, c.UpdatedAt}
}

func (r *ContactRepo) Upsert(ctx context.Context, c ContactRow) error {
	_, err := r.db.ExecContext(ctx, upsertContactSQL, upsertArgs(c)...)
	return err
}

// UpsertBatch writes a set of contacts atomically.
func (r *ContactRepo) UpsertBatch(ctx context.Context, rows []ContactRow) error {
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		for _, c := range rows {
			if _, err := tx.ExecContext(ctx, upsertContactSQL, upsertArgs(c)...); err != nil {
				return err
			}
		}
		return nil
	})
}

// ReplaceCategory swaps one category's contacts for the given rows in a
// single transaction: either the whole batch lands or the category is left
// exactly as it was.
func (r *ContactRepo) ReplaceCategory(ctx context.Context, category string, rows []ContactRow) error {
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM contacts WHERE category = ?`, category); err != nil {
			return err
		}
		for _, c := range rows {
			if _, err := tx.ExecContext(ctx, upsertContactSQL, upsertArgs(c)...); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ContactRepo) Get(ctx context.Context, id string) (*ContactRow, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, name, category, phones_json, address, specialty, notes, photo, updated_at
	FROM contacts WHERE id = ?`, id)
	var c ContactRow
	if err := row.Scan(&c.ID, &c.Name, &c.Category, &c.PhonesJSON, &c.Address, &c.Specialty, &c.Notes, &c.Photo, &c.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *ContactRepo) List(ctx context.Context) ([]ContactRow, error) {
	return r.queryRows(ctx, `
	SELECT id, name, category, phones_json, address, specialty, notes, photo, updated_at
	FROM contacts ORDER BY name COLLATE NOCASE`)
}

func (r *ContactRepo) ListByCategory(ctx context.Context, category string) ([]ContactRow, error) {
	return r.queryRows(ctx, `
	SELECT id, name, category, phones_json, address, specialty, notes, photo, updated_at
	FROM contacts WHERE category = ? ORDER BY name COLLATE NOCASE`, category)
}

func (r *ContactRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = ?`, id)
	return err
}

func (r *ContactRepo) queryRows(ctx context.Context, q string, args ...any) ([]ContactRow, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ContactRow
	for rows.Next() {
		var c ContactRow
		if err := rows.Scan(&c.ID, &c.Name, &c.Category, &c.PhonesJSON, &c.Address, &c.Specialty, &c.Notes, &c.Photo, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
