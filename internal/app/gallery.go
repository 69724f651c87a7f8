package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"slices"
	"strings"

	"github.com/KillerxG/RPG-YGO-Delta/internal/domain"
	"github.com/KillerxG/RPG-YGO-Delta/internal/ports"
)

var (
	ErrPlayerNotFound    = errors.New("player not found")
	ErrUnknownRarity     = errors.New("unknown rarity")
	ErrInvalidPlayerName = errors.New("invalid player name")
)

// RarityGroup is one rarity folder of a player's collection.
type RarityGroup struct {
	Rarity string
	Cards  []domain.Card
}

// GalleryService browses the per-player, per-rarity card folders.
type GalleryService struct {
	catalog  ports.Catalog
	players  ports.PlayerStore
	dir      string
	rarities []string
	log      *slog.Logger
}

func NewGalleryService(catalog ports.Catalog, players ports.PlayerStore, dir string, rarities []string, logger *slog.Logger) *GalleryService {
	return &GalleryService{
		catalog:  catalog,
		players:  players,
		dir:      dir,
		rarities: rarities,
		log:      logger,
	}
}

func (g *GalleryService) Rarities() []string {
	return slices.Clone(g.rarities)
}

func (g *GalleryService) ListPlayers(ctx context.Context) ([]string, error) {
	players, err := g.players.ListPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return players, nil
}

// AddPlayer registers a player and creates one empty folder per rarity.
func (g *GalleryService) AddPlayer(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidPlayerName, name)
	}

	// Folders before the registry row, so a failed call can be retried.
	for _, r := range g.rarities {
		if err := g.catalog.EnsureDir(ctx, path.Join(g.dir, name, r)); err != nil {
			return fmt.Errorf("create %s folder: %w", r, err)
		}
	}
	if err := g.players.AddPlayer(ctx, name); err != nil {
		return fmt.Errorf("add player: %w", err)
	}

	g.log.InfoContext(ctx, "player added", "player", name)
	return nil
}

// PlayerCards lists one rarity folder of a player.
func (g *GalleryService) PlayerCards(ctx context.Context, player, rarity string) ([]domain.Card, error) {
	if !slices.Contains(g.rarities, rarity) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRarity, rarity)
	}
	if err := g.requirePlayer(ctx, player); err != nil {
		return nil, err
	}

	cards, err := g.catalog.ListPool(ctx, path.Join(g.dir, player), rarity)
	if err != nil {
		return nil, fmt.Errorf("list %s cards of %s: %w", rarity, player, err)
	}
	return cards, nil
}

// PlayerCollection groups every non-empty rarity folder of a player, in
// rarity order.
func (g *GalleryService) PlayerCollection(ctx context.Context, player string) ([]RarityGroup, error) {
	if err := g.requirePlayer(ctx, player); err != nil {
		return nil, err
	}

	var groups []RarityGroup
	for _, r := range g.rarities {
		cards, err := g.catalog.ListPool(ctx, path.Join(g.dir, player), r)
		if err != nil {
			return nil, fmt.Errorf("list %s cards of %s: %w", r, player, err)
		}
		if len(cards) == 0 {
			continue
		}
		groups = append(groups, RarityGroup{Rarity: r, Cards: cards})
	}
	return groups, nil
}

func (g *GalleryService) requirePlayer(ctx context.Context, player string) error {
	ok, err := g.players.PlayerExists(ctx, player)
	if err != nil {
		return fmt.Errorf("look up player: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %q", ErrPlayerNotFound, player)
	}
	return nil
}
