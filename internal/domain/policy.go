package domain

import "fmt"

// PolicyName identifies a draw policy.
type PolicyName string

const (
	PolicyBooster15      PolicyName = "booster-15"
	PolicyBoosterPreview PolicyName = "booster-4+1"
	PolicyDeckPreview    PolicyName = "deck-preview"
)

// ParsePolicyName maps a raw policy name to a known PolicyName.
func ParsePolicyName(raw string) (PolicyName, error) {
	switch n := PolicyName(raw); n {
	case PolicyBooster15, PolicyBoosterPreview, PolicyDeckPreview:
		return n, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, raw)
	}
}

// Policy is one pack-opening algorithm.
type Policy interface {
	Name() PolicyName
	Draw(pools Pools, rng RNG) ([]DrawnCard, error)
}

// Booster15 samples SuperCount super rares, adds a secret rare, fills a
// bonus slot and closes the pack with a marker card.
type Booster15 struct {
	SuperCount        int
	BonusSecretChance float64
	Marker            Card
	AlternateMarker   Card
}

func (Booster15) Name() PolicyName { return PolicyBooster15 }

func (p Booster15) validate() error {
	if p.SuperCount < 0 {
		return fmt.Errorf("%w: super count %d", ErrInvalidPolicy, p.SuperCount)
	}
	if p.BonusSecretChance < 0 || p.BonusSecretChance > 1 {
		return fmt.Errorf("%w: bonus secret chance %v", ErrInvalidPolicy, p.BonusSecretChance)
	}
	return nil
}

func (p Booster15) Draw(pools Pools, rng RNG) ([]DrawnCard, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	supers := pools[TierSuperRare]
	secrets := pools[TierSecretRare]

	cards := make([]DrawnCard, 0, p.SuperCount+3)
	for _, c := range sample(supers, p.SuperCount, rng) {
		cards = append(cards, DrawnCard{Card: c, Tier: TierSuperRare})
	}
	if len(secrets) > 0 {
		cards = append(cards, DrawnCard{Card: choice(secrets, rng), Tier: TierSecretRare})
	}

	// The roll happens even when the secret pool is empty.
	if rng.Float64() < p.BonusSecretChance && len(secrets) > 0 {
		cards = append(cards, DrawnCard{Card: choice(secrets, rng), Tier: TierSecretRare, Bonus: true})
	} else if len(supers) > 0 {
		cards = append(cards, DrawnCard{Card: choice(supers, rng), Tier: TierSuperRare, Bonus: true})
	}

	shuffle(cards, rng)

	marker := p.Marker
	if countTier(cards, TierSecretRare) >= 2 {
		marker = p.AlternateMarker
	}
	return append(cards, DrawnCard{Card: marker, Tier: TierMarker}), nil
}

// BoosterPreview draws SuperCount distinct super rares followed by
// SecretCount secret rare choices. Short pools refuse the draw.
type BoosterPreview struct {
	SuperCount  int
	SecretCount int
}

func (BoosterPreview) Name() PolicyName { return PolicyBoosterPreview }

func (p BoosterPreview) Draw(pools Pools, rng RNG) ([]DrawnCard, error) {
	if p.SuperCount < 0 || p.SecretCount < 0 {
		return nil, fmt.Errorf("%w: counts %d/%d", ErrInvalidPolicy, p.SuperCount, p.SecretCount)
	}
	err := requireMinimums(p.Name(), pools, map[Tier]int{
		TierSuperRare:  p.SuperCount,
		TierSecretRare: min(p.SecretCount, 1),
	})
	if err != nil {
		return nil, err
	}

	cards := make([]DrawnCard, 0, p.SuperCount+p.SecretCount)
	for _, c := range sample(pools[TierSuperRare], p.SuperCount, rng) {
		cards = append(cards, DrawnCard{Card: c, Tier: TierSuperRare})
	}
	for range p.SecretCount {
		cards = append(cards, DrawnCard{Card: choice(pools[TierSecretRare], rng), Tier: TierSecretRare})
	}
	return cards, nil
}

// DeckPreview shows the first SuperCount super rares and the first
// SecretCount secret rares in catalog order. It never consumes randomness.
type DeckPreview struct {
	SuperCount  int
	SecretCount int
}

func (DeckPreview) Name() PolicyName { return PolicyDeckPreview }

func (p DeckPreview) Draw(pools Pools, _ RNG) ([]DrawnCard, error) {
	if p.SuperCount < 0 || p.SecretCount < 0 {
		return nil, fmt.Errorf("%w: counts %d/%d", ErrInvalidPolicy, p.SuperCount, p.SecretCount)
	}
	err := requireMinimums(p.Name(), pools, map[Tier]int{
		TierSuperRare:  p.SuperCount,
		TierSecretRare: p.SecretCount,
	})
	if err != nil {
		return nil, err
	}

	cards := make([]DrawnCard, 0, p.SuperCount+p.SecretCount)
	for _, c := range pools[TierSuperRare][:p.SuperCount] {
		cards = append(cards, DrawnCard{Card: c, Tier: TierSuperRare})
	}
	for _, c := range pools[TierSecretRare][:p.SecretCount] {
		cards = append(cards, DrawnCard{Card: c, Tier: TierSecretRare})
	}
	return cards, nil
}
