package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/KillerxG/RPG-YGO-Delta/internal/domain"
	"github.com/KillerxG/RPG-YGO-Delta/internal/ports"
)

var (
	ErrSourceNotFound     = errors.New("booster or deck not found")
	ErrPolicyNotAvailable = errors.New("policy not available here")
)

// SourceKind tells boosters and decks apart.
type SourceKind string

const (
	KindBooster SourceKind = "booster"
	KindDeck    SourceKind = "deck"
)

// Layout locates boosters, decks, covers and markers inside the catalog.
type Layout struct {
	CoversDir        string
	BoostersDir      string
	BoosterSuperDir  string
	BoosterSecretDir string
	DecksDir         string
	DeckSuperDir     string
	DeckSecretDir    string
	Marker           string
	AlternateMarker  string
	BoosterNames     []string
	DeckNames        []string
}

// SeriesNames returns prefix1..prefixN.
func SeriesNames(prefix string, n int) []string {
	names := make([]string, n)
	for i := range n {
		names[i] = fmt.Sprintf("%s%d", prefix, i+1)
	}
	return names
}

// PolicySet holds the configured draw policies.
type PolicySet struct {
	Default   domain.PolicyName
	Booster15 domain.Booster15
	Preview   domain.BoosterPreview
	Deck      domain.DeckPreview
}

// Listing is one selectable booster or deck.
type Listing struct {
	Name     string
	Kind     SourceKind
	Cover    domain.Card
	HasCover bool
}

// Opening is the finalized outcome of one open action.
type Opening struct {
	ID     uuid.UUID
	Kind   SourceKind
	Source string
	Result domain.DrawResult
	Reveal []RevealEvent
}

// BoosterService resolves boosters and decks to card pools and draws them.
type BoosterService struct {
	catalog  ports.Catalog
	rng      domain.RNG
	layout   Layout
	policies PolicySet
	log      *slog.Logger
}

func NewBoosterService(catalog ports.Catalog, rng domain.RNG, layout Layout, policies PolicySet, logger *slog.Logger) *BoosterService {
	policies.Booster15.Marker = markerCard(layout.Marker)
	policies.Booster15.AlternateMarker = markerCard(layout.AlternateMarker)
	if policies.Default == "" {
		policies.Default = domain.PolicyBooster15
	}
	return &BoosterService{
		catalog:  catalog,
		rng:      rng,
		layout:   layout,
		policies: policies,
		log:      logger,
	}
}

func markerCard(p string) domain.Card {
	name := path.Base(p)
	return domain.Card{
		ID:   strings.TrimSuffix(name, path.Ext(name)),
		Name: name,
		Path: p,
	}
}

func (s *BoosterService) ListBoosters(ctx context.Context) ([]Listing, error) {
	return s.list(ctx, KindBooster, s.layout.BoosterNames)
}

func (s *BoosterService) ListDecks(ctx context.Context) ([]Listing, error) {
	return s.list(ctx, KindDeck, s.layout.DeckNames)
}

func (s *BoosterService) list(ctx context.Context, kind SourceKind, names []string) ([]Listing, error) {
	out := make([]Listing, 0, len(names))
	for _, name := range names {
		cover, ok, err := s.catalog.FindCover(ctx, s.layout.CoversDir, name)
		if err != nil {
			return nil, fmt.Errorf("find cover for %s: %w", name, err)
		}
		out = append(out, Listing{Name: name, Kind: kind, Cover: cover, HasCover: ok})
	}
	return out, nil
}

// OpenBooster draws a booster with the named policy, or the default one
// when policy is empty.
func (s *BoosterService) OpenBooster(ctx context.Context, name, policy string) (Opening, error) {
	p, err := s.boosterPolicy(policy)
	if err != nil {
		return Opening{}, err
	}
	base := path.Join(s.layout.BoostersDir, name)
	return s.open(ctx, KindBooster, name, s.layout.BoosterNames, base, s.layout.BoosterSuperDir, s.layout.BoosterSecretDir, p)
}

// OpenDeck previews a deck.
func (s *BoosterService) OpenDeck(ctx context.Context, name string) (Opening, error) {
	base := path.Join(s.layout.DecksDir, name)
	return s.open(ctx, KindDeck, name, s.layout.DeckNames, base, s.layout.DeckSuperDir, s.layout.DeckSecretDir, s.policies.Deck)
}

func (s *BoosterService) boosterPolicy(raw string) (domain.Policy, error) {
	name := s.policies.Default
	if raw != "" {
		parsed, err := domain.ParsePolicyName(raw)
		if err != nil {
			return nil, err
		}
		name = parsed
	}

	switch name {
	case domain.PolicyBooster15:
		return s.policies.Booster15, nil
	case domain.PolicyBoosterPreview:
		return s.policies.Preview, nil
	default:
		return nil, fmt.Errorf("%w: %s on boosters", ErrPolicyNotAvailable, name)
	}
}

func (s *BoosterService) open(ctx context.Context, kind SourceKind, name string, known []string, base, superDir, secretDir string, policy domain.Policy) (Opening, error) {
	if !slices.Contains(known, name) {
		return Opening{}, fmt.Errorf("%w: %s %q", ErrSourceNotFound, kind, name)
	}

	supers, err := s.catalog.ListPool(ctx, base, superDir)
	if err != nil {
		return Opening{}, fmt.Errorf("list super rares: %w", err)
	}
	secrets, err := s.catalog.ListPool(ctx, base, secretDir)
	if err != nil {
		return Opening{}, fmt.Errorf("list secret rares: %w", err)
	}

	pools := domain.Pools{
		domain.TierSuperRare:  supers,
		domain.TierSecretRare: secrets,
	}

	result, err := domain.Draw(pools, policy, s.rng)
	if err != nil {
		var insufficient *domain.InsufficientCardsError
		if errors.As(err, &insufficient) {
			s.log.WarnContext(ctx, "not enough cards to open",
				"kind", kind,
				"source", name,
				"policy", policy.Name(),
				"shortfalls", insufficient.Shortfalls,
			)
		}
		return Opening{}, fmt.Errorf("draw %s: %w", name, err)
	}

	opening := Opening{
		ID:     uuid.New(),
		Kind:   kind,
		Source: name,
		Result: result,
		Reveal: ScheduleReveal(result),
	}

	s.log.InfoContext(ctx, "pack opened",
		"opening_id", opening.ID,
		"kind", kind,
		"source", name,
		"policy", result.Policy,
		"super_rares", result.Count(domain.TierSuperRare),
		"secret_rares", result.Count(domain.TierSecretRare),
	)

	return opening, nil
}
