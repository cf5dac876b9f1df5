package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// OptionSetRepo handles option sets and their options.
type OptionSetRepo struct {
	db *sql.DB
}

func NewOptionSetRepo(db *sql.DB) *OptionSetRepo {
	return &OptionSetRepo{db: db}
}

// Upsert writes the set and replaces its options. Option positions follow
// slice order. Stored selections are kept.
func (r *OptionSetRepo) Upsert(ctx context.Context, s OptionSet) error {
	if strings.TrimSpace(s.Name) == "" {
		return errors.New("option set name is required")
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
	INSERT INTO option_sets(name, title)
	VALUES (?, ?)
	ON CONFLICT(name) DO UPDATE SET
	 title=excluded.title;
	`, s.Name, s.Title); err != nil {
		return fmt.Errorf("upsert set %s: %w", s.Name, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM options WHERE set_name = ?`, s.Name); err != nil {
		return fmt.Errorf("clear options: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO options(set_name, option_key, label, position, filter_words)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(set_name, option_key) DO NOTHING;
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, o := range s.Options {
		if _, err := stmt.ExecContext(ctx, s.Name, o.Key, o.Label, i, joinWords(o.FilterWords)); err != nil {
			return fmt.Errorf("insert option %s: %w", o.Key, err)
		}
	}
	return tx.Commit()
}

// List returns every set with option and selection counts, by name.
func (r *OptionSetRepo) List(ctx context.Context) ([]SetSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT s.name, s.title, s.created_at,
	 (SELECT COUNT(*) FROM options o WHERE o.set_name = s.name),
	 (SELECT COUNT(*) FROM selections x WHERE x.set_name = s.name)
	FROM option_sets s
	ORDER BY s.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []SetSummary
	for rows.Next() {
		var s SetSummary
		if err := rows.Scan(&s.Name, &s.Title, &s.CreatedAt, &s.Options, &s.Selected); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Get loads a set with its options in position order.
func (r *OptionSetRepo) Get(ctx context.Context, name string) (OptionSet, error) {
	var s OptionSet
	err := r.db.QueryRowContext(ctx, `SELECT name, title, created_at FROM option_sets WHERE name = ?`, name).
		Scan(&s.Name, &s.Title, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return OptionSet{}, fmt.Errorf("%s: %w", name, ErrSetNotFound)
	}
	if err != nil {
		return OptionSet{}, err
	}

	rows, err := r.db.QueryContext(ctx, `
	SELECT option_key, label, position, filter_words
	FROM options WHERE set_name = ?
	ORDER BY position`, name)
	if err != nil {
		return OptionSet{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var o Option
		var words string
		if err := rows.Scan(&o.Key, &o.Label, &o.Position, &words); err != nil {
			return OptionSet{}, err
		}
		o.FilterWords = splitWords(words)
		s.Options = append(s.Options, o)
	}
	return s, rows.Err()
}

// Delete removes a set, its options and its selection.
func (r *OptionSetRepo) Delete(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM option_sets WHERE name = ?`, name)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%s: %w", name, ErrSetNotFound)
	}
	return nil
}

func joinWords(words []string) string {
	return strings.Join(words, "\n")
}

func splitWords(s string) []string {
	var out []string
	for _, w := range strings.Split(s, "\n") {
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}
