package database

import (
	"context"
	"database/sql"

	"github.com/jask/dualpick/internal/database/repository"
)

// SeedDefaults ensures a demo option set exists for new databases.
// It is idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	sets := repository.NewOptionSetRepo(db)
	existing, err := sets.List(ctx)
	if err == nil && len(existing) > 0 {
		return nil
	}
	demo := repository.OptionSet{
		Name:  "fruit",
		Title: "Fruit",
		Options: []repository.Option{
			{Key: "apple", Label: "Apple", FilterWords: []string{"red", "green"}},
			{Key: "banana", Label: "Banana", FilterWords: []string{"yellow"}},
			{Key: "cherry", Label: "Cherry", FilterWords: []string{"red", "stone"}},
			{Key: "kiwi", Label: "Kiwi", FilterWords: []string{"green"}},
			{Key: "plum", Label: "Plum", FilterWords: []string{"purple", "stone"}},
		},
	}
	return sets.Upsert(ctx, demo)
}
