package repository_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/dualpick/internal/database"
	"github.com/jask/dualpick/internal/database/repository"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.RunMigrations(dbPath))
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func citySet() repository.OptionSet {
	return repository.OptionSet{
		Name:  "cities",
		Title: "Cities",
		Options: []repository.Option{
			{Key: "ams", Label: "Amsterdam", FilterWords: []string{"NL", "capital"}},
			{Key: "ber", Label: "Berlin"},
			{Key: "cph", Label: "Copenhagen"},
		},
	}
}

func TestOptionSetUpsertAndGet(t *testing.T) {
	t.Parallel()
	ctx := testContext(t)
	sets := repository.NewOptionSetRepo(openTestDB(t))

	require.NoError(t, sets.Upsert(ctx, citySet()))
	got, err := sets.Get(ctx, "cities")
	require.NoError(t, err)
	require.Equal(t, "Cities", got.Title)
	require.Len(t, got.Options, 3)
	require.Equal(t, "ams", got.Options[0].Key)
	require.Equal(t, []string{"NL", "capital"}, got.Options[0].FilterWords)
	require.Nil(t, got.Options[1].FilterWords)
	require.Equal(t, 2, got.Options[2].Position)

	next := citySet()
	next.Title = "European cities"
	next.Options = next.Options[1:]
	require.NoError(t, sets.Upsert(ctx, next))
	got, err = sets.Get(ctx, "cities")
	require.NoError(t, err)
	require.Equal(t, "European cities", got.Title)
	require.Len(t, got.Options, 2)
	require.Equal(t, 0, got.Options[0].Position)
}

func TestOptionSetGetMissing(t *testing.T) {
	t.Parallel()
	sets := repository.NewOptionSetRepo(openTestDB(t))
	_, err := sets.Get(testContext(t), "nope")
	require.ErrorIs(t, err, repository.ErrSetNotFound)
	require.ErrorIs(t, sets.Delete(testContext(t), "nope"), repository.ErrSetNotFound)
}

func TestSelectionWriteReadOrder(t *testing.T) {
	t.Parallel()
	ctx := testContext(t)
	db := openTestDB(t)
	sets := repository.NewOptionSetRepo(db)
	sel := repository.NewSelectionRepo(db)
	require.NoError(t, sets.Upsert(ctx, citySet()))

	keys, err := sel.Read(ctx, "cities")
	require.NoError(t, err)
	require.Empty(t, keys)

	require.NoError(t, sel.Write(ctx, "cities", []string{"cph", "ams", "cph"}))
	keys, err = sel.Read(ctx, "cities")
	require.NoError(t, err)
	require.Equal(t, []string{"cph", "ams"}, keys)

	require.NoError(t, sel.Write(ctx, "cities", nil))
	keys, err = sel.Read(ctx, "cities")
	require.NoError(t, err)
	require.Empty(t, keys)
}

func TestSelectionSkipsRemovedOptions(t *testing.T) {
	t.Parallel()
	ctx := testContext(t)
	db := openTestDB(t)
	sets := repository.NewOptionSetRepo(db)
	sel := repository.NewSelectionRepo(db)
	require.NoError(t, sets.Upsert(ctx, citySet()))
	require.NoError(t, sel.Write(ctx, "cities", []string{"ams", "ber"}))

	trimmed := citySet()
	trimmed.Options = trimmed.Options[1:]
	require.NoError(t, sets.Upsert(ctx, trimmed))

	keys, err := sel.Read(ctx, "cities")
	require.NoError(t, err)
	require.Equal(t, []string{"ber"}, keys)
}

func TestSelectionUnknownSet(t *testing.T) {
	t.Parallel()
	sel := repository.NewSelectionRepo(openTestDB(t))
	require.ErrorIs(t, sel.Write(testContext(t), "nope", []string{"a"}), repository.ErrSetNotFound)
	_, err := sel.Read(testContext(t), "nope")
	require.ErrorIs(t, err, repository.ErrSetNotFound)
}

func TestDeleteCascadesAndListCounts(t *testing.T) {
	t.Parallel()
	ctx := testContext(t)
	db := openTestDB(t)
	sets := repository.NewOptionSetRepo(db)
	sel := repository.NewSelectionRepo(db)
	require.NoError(t, sets.Upsert(ctx, citySet()))
	require.NoError(t, sel.Write(ctx, "cities", []string{"ber"}))
	require.NoError(t, database.SeedDefaults(ctx, db))

	list, err := sets.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1, "seeding must not run when sets exist")
	require.Equal(t, 3, list[0].Options)
	require.Equal(t, 1, list[0].Selected)

	require.NoError(t, sets.Delete(ctx, "cities"))
	var n int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM selections").Scan(&n))
	require.Zero(t, n)
}

func TestSeedDefaultsOnEmptyDatabase(t *testing.T) {
	t.Parallel()
	ctx := testContext(t)
	db := openTestDB(t)
	require.NoError(t, database.SeedDefaults(ctx, db))
	require.NoError(t, database.SeedDefaults(ctx, db))

	list, err := repository.NewOptionSetRepo(db).List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "fruit", list[0].Name)
}
