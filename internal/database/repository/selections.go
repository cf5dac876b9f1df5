package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SelectionRepo stores the ordered selection of each option set.
type SelectionRepo struct {
	db *sql.DB
}

func NewSelectionRepo(db *sql.DB) *SelectionRepo {
	return &SelectionRepo{db: db}
}

// Read returns the selected keys of a set in order. Keys whose option has
// since been removed are skipped.
func (r *SelectionRepo) Read(ctx context.Context, set string) ([]string, error) {
	if err := r.exists(ctx, r.db, set); err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, `
	SELECT s.option_key
	FROM selections s
	JOIN options o ON o.set_name = s.set_name AND o.option_key = s.option_key
	WHERE s.set_name = ?
	ORDER BY s.position`, set)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

// Write replaces the selection of a set. Duplicate keys keep their first
// position.
func (r *SelectionRepo) Write(ctx context.Context, set string, keys []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := r.exists(ctx, tx, set); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM selections WHERE set_name = ?`, set); err != nil {
		return fmt.Errorf("clear selection: %w", err)
	}
	for i, k := range keys {
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO selections(set_name, option_key, position)
		VALUES (?, ?, ?)
		ON CONFLICT(set_name, option_key) DO NOTHING;
		`, set, k, i); err != nil {
			return fmt.Errorf("insert selection %s: %w", k, err)
		}
	}
	return tx.Commit()
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *SelectionRepo) exists(ctx context.Context, q queryer, set string) error {
	var one int
	err := q.QueryRowContext(ctx, `SELECT 1 FROM option_sets WHERE name = ?`, set).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", set, ErrSetNotFound)
	}
	return err
}
