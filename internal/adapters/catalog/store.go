package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/KillerxG/RPG-YGO-Delta/internal/domain"
)

// DefaultExtensions is the image allow-list, in cover lookup order.
var DefaultExtensions = []string{".png", ".jpg", ".jpeg", ".webp", ".bmp", ".gif"}

// Store reads card images from a folder tree. Nothing is cached: every call
// reads the filesystem again.
type Store struct {
	fs   afero.Fs
	exts []string
	log  *slog.Logger
}

func NewStore(fsys afero.Fs, exts []string, logger *slog.Logger) *Store {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	normalized := make([]string, len(exts))
	for i, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		normalized[i] = e
	}
	return &Store{fs: fsys, exts: normalized, log: logger}
}

// NewOSStore serves the folder tree rooted at root on the local disk.
// BasePathFs matches paths by prefix, so root must be absolute.
func NewOSStore(root string, exts []string, logger *slog.Logger) (*Store, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve catalog root %s: %w", root, err)
	}
	return NewStore(afero.NewBasePathFs(afero.NewOsFs(), abs), exts, logger), nil
}

func (s *Store) allowed(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	if ext == "" || ext == name {
		return false
	}
	for _, e := range s.exts {
		if ext == e {
			return true
		}
	}
	return false
}

func (s *Store) ListPool(ctx context.Context, base, tierDir string) ([]domain.Card, error) {
	dir := cleanPath(path.Join(base, tierDir))

	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.log.DebugContext(ctx, "pool folder missing", "dir", dir)
			return nil, nil
		}
		s.log.ErrorContext(ctx, "failed to list pool", "dir", dir, "error", err)
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	cards := make([]domain.Card, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !s.allowed(e.Name()) {
			continue
		}
		cards = append(cards, cardFor(dir, e.Name()))
	}
	SortCards(cards)

	s.log.DebugContext(ctx, "pool listed", "dir", dir, "count", len(cards))

	return cards, nil
}

func (s *Store) FindCover(ctx context.Context, dir, name string) (domain.Card, bool, error) {
	dir = cleanPath(dir)
	for _, ext := range s.exts {
		p := path.Join(dir, name+ext)
		info, err := s.fs.Stat(p)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return domain.Card{}, false, fmt.Errorf("stat %s: %w", p, err)
		}
		if info.IsDir() {
			continue
		}
		return cardFor(dir, name+ext), true, nil
	}
	s.log.DebugContext(ctx, "cover missing", "dir", dir, "name", name)
	return domain.Card{}, false, nil
}

func (s *Store) Open(_ context.Context, p string) (io.ReadCloser, error) {
	p = cleanPath(p)
	if !s.allowed(path.Base(p)) {
		return nil, fmt.Errorf("open %s: %w", p, domain.ErrNotImage)
	}
	f, err := s.fs.Open(p)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", p, err)
	}
	return f, nil
}

func (s *Store) EnsureDir(_ context.Context, p string) error {
	p = cleanPath(p)
	if err := s.fs.MkdirAll(p, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", p, err)
	}
	return nil
}

func cardFor(dir, name string) domain.Card {
	return domain.Card{
		ID:   strings.TrimSuffix(name, path.Ext(name)),
		Name: name,
		Path: path.Join(dir, name),
	}
}

// cleanPath keeps every path relative to the catalog root.
func cleanPath(p string) string {
	return strings.TrimPrefix(path.Clean("/"+p), "/")
}
