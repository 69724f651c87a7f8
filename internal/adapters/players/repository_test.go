package players_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KillerxG/RPG-YGO-Delta/internal/adapters/players"
	"github.com/KillerxG/RPG-YGO-Delta/internal/domain"
)

func openMemory(t *testing.T) *players.Repository {
	t.Helper()
	repo, db, err := players.Open(":memory:", slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return repo
}

func TestRepository_AddAndList(t *testing.T) {
	repo := openMemory(t)
	ctx := context.Background()

	for _, name := range []string{"KillerxG", "Leonardofake", "Imp"} {
		require.NoError(t, repo.AddPlayer(ctx, name))
	}

	names, err := repo.ListPlayers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"KillerxG", "Leonardofake", "Imp"}, names)

	ok, err := repo.PlayerExists(ctx, "Imp")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.PlayerExists(ctx, "Dartrian")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRepository_DuplicatePlayer(t *testing.T) {
	repo := openMemory(t)
	ctx := context.Background()

	require.NoError(t, repo.AddPlayer(ctx, "Misaki"))
	assert.ErrorIs(t, repo.AddPlayer(ctx, "Misaki"), domain.ErrPlayerAlreadyExists)
}

func TestRepository_EmptyRegistry(t *testing.T) {
	repo := openMemory(t)

	names, err := repo.ListPlayers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestRepository_QueryFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT player_name").WillReturnError(errors.New("disk I/O error"))
	mock.ExpectExec("INSERT INTO players").WithArgs("Angelo").WillReturnError(errors.New("database is locked"))

	repo := players.New(slog.New(slog.DiscardHandler), db)

	_, err = repo.ListPlayers(context.Background())
	assert.ErrorContains(t, err, "disk I/O error")

	err = repo.AddPlayer(context.Background(), "Angelo")
	assert.ErrorContains(t, err, "database is locked")

	assert.NoError(t, mock.ExpectationsWereMet())
}
