package catalog_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KillerxG/RPG-YGO-Delta/internal/adapters/catalog"
	"github.com/KillerxG/RPG-YGO-Delta/internal/domain"
)

func newStore(t *testing.T, files ...string) (*catalog.Store, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	for _, f := range files {
		require.NoError(t, afero.WriteFile(fs, f, []byte("img"), 0o644))
	}
	return catalog.NewStore(fs, nil, slog.New(slog.DiscardHandler)), fs
}

func names(cards []domain.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Name
	}
	return out
}

func TestListPool_NumericThenLexicographic(t *testing.T) {
	store, _ := newStore(t,
		"cards/RPG_Series_1/super raras/2.jpg",
		"cards/RPG_Series_1/super raras/10.jpg",
		"cards/RPG_Series_1/super raras/alpha.jpg",
		"cards/RPG_Series_1/super raras/1.jpg",
	)

	cards, err := store.ListPool(context.Background(), "cards/RPG_Series_1", "super raras")
	require.NoError(t, err)
	assert.Equal(t, []string{"1.jpg", "2.jpg", "10.jpg", "alpha.jpg"}, names(cards))
}

func TestListPool_CaseInsensitiveTextOrder(t *testing.T) {
	store, _ := newStore(t,
		"pool/beta.png",
		"pool/Alpha.png",
		"pool/007.png",
		"pool/-3.png",
		"pool/Gamma.webp",
	)

	cards, err := store.ListPool(context.Background(), "pool", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"-3.png", "007.png", "Alpha.png", "beta.png", "Gamma.webp"}, names(cards))
}

func TestListPool_FiltersExtensionsAndDirectories(t *testing.T) {
	store, fs := newStore(t,
		"pool/1.JPG",
		"pool/2.txt",
		"pool/3.jpeg",
		"pool/notes",
		"pool/.jpg",
	)
	require.NoError(t, fs.MkdirAll("pool/4.png", 0o755))

	cards, err := store.ListPool(context.Background(), "pool", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"1.JPG", "3.jpeg"}, names(cards))
	assert.Equal(t, "1", cards[0].ID)
	assert.Equal(t, "pool/1.JPG", cards[0].Path)
}

func TestListPool_MissingFolderIsEmpty(t *testing.T) {
	store, _ := newStore(t)

	cards, err := store.ListPool(context.Background(), "cards/RPG_Series_9", "secretas raras")
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestListPool_Deterministic(t *testing.T) {
	store, _ := newStore(t, "p/3.gif", "p/b.bmp", "p/1.webp", "p/a.png", "p/20.jpg")

	first, err := store.ListPool(context.Background(), "p", "")
	require.NoError(t, err)
	second, err := store.ListPool(context.Background(), "p", "")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestListPool_CustomExtensions(t *testing.T) {
	fs := afero.NewMemMapFs()
	for _, f := range []string{"p/1.jpg", "p/2.png"} {
		require.NoError(t, afero.WriteFile(fs, f, []byte("img"), 0o644))
	}
	store := catalog.NewStore(fs, []string{"JPG"}, slog.New(slog.DiscardHandler))

	cards, err := store.ListPool(context.Background(), "p", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"1.jpg"}, names(cards))
}

func TestFindCover_FirstExtensionWins(t *testing.T) {
	store, _ := newStore(t, "capa/RPG_Series_3.jpg", "capa/RPG_Series_3.png")

	cover, ok, err := store.FindCover(context.Background(), "capa", "RPG_Series_3")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "capa/RPG_Series_3.png", cover.Path)

	_, ok, err = store.FindCover(context.Background(), "capa", "RPG_Series_4")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOpen_ImagesOnly(t *testing.T) {
	store, _ := newStore(t, "capa/1.jpg", "secrets.txt")

	rc, err := store.Open(context.Background(), "/capa/../capa/1.jpg")
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "img", string(body))

	_, err = store.Open(context.Background(), "secrets.txt")
	assert.ErrorIs(t, err, domain.ErrNotImage)
}

func TestEnsureDir(t *testing.T) {
	store, fs := newStore(t)

	require.NoError(t, store.EnsureDir(context.Background(), "players/Imp/Comum"))
	ok, err := afero.DirExists(fs, "players/Imp/Comum")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNewOSStore(t *testing.T) {
	root := t.TempDir()
	osfs := afero.NewOsFs()
	require.NoError(t, osfs.MkdirAll(filepath.Join(root, "cards", "RPG_Series_1", "super raras"), 0o755))
	for _, name := range []string{"2.jpg", "1.png"} {
		require.NoError(t, afero.WriteFile(osfs, filepath.Join(root, "cards", "RPG_Series_1", "super raras", name), []byte("img"), 0o644))
	}

	store, err := catalog.NewOSStore(root, nil, slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	cards, err := store.ListPool(context.Background(), "cards/RPG_Series_1", "super raras")
	require.NoError(t, err)
	assert.Equal(t, []string{"1.png", "2.jpg"}, names(cards))

	_, err = store.Open(context.Background(), "../../etc/passwd.png")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
