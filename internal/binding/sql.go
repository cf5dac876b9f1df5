package binding

import (
	"context"
	"database/sql"

	"github.com/jask/dualpick/internal/database/repository"
)

// SQL binds one option set's stored selection.
type SQL struct {
	repo *repository.SelectionRepo
	set  string
}

func NewSQL(db *sql.DB, set string) *SQL {
	return &SQL{repo: repository.NewSelectionRepo(db), set: set}
}

func (b *SQL) ReadSelection(ctx context.Context) ([]string, error) {
	return b.repo.Read(ctx, b.set)
}

func (b *SQL) WriteSelection(ctx context.Context, keys []string) error {
	return b.repo.Write(ctx, b.set, keys)
}
