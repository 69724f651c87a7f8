package domain

// RNG abstracts random number generation for deterministic testing.
type RNG interface {
	// Intn returns a non-negative random int in [0, n).
	Intn(n int) int
	// Float64 returns a random float in [0.0, 1.0).
	Float64() float64
}

// Tier is the rarity tag attached to a drawn card for display purposes.
type Tier string

const (
	TierCommon     Tier = "common"
	TierSuperRare  Tier = "super_rare"
	TierSecretRare Tier = "secret_rare"
	TierMarker     Tier = "marker"
)

// DisplayName returns a human-readable label for the tier.
func (t Tier) DisplayName() string {
	switch t {
	case TierCommon:
		return "Common"
	case TierSuperRare:
		return "Super Rare"
	case TierSecretRare:
		return "Secret Rare"
	case TierMarker:
		return ""
	default:
		return string(t)
	}
}

// Card identifies one card image. Path is relative to the catalog root.
type Card struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
}

// Pools holds the card pools of one booster or deck, keyed by tier.
type Pools map[Tier][]Card

// DrawnCard is a card placed in a draw result.
type DrawnCard struct {
	Card
	Tier     Tier `json:"tier"`
	Position int  `json:"position"`
	// Bonus marks the extra slot of a booster-15 draw. It is drawn from the
	// whole pool, so it may repeat a sampled card.
	Bonus bool `json:"bonus,omitempty"`
}

// DrawResult is one pack-opening outcome, in display order.
type DrawResult struct {
	Policy PolicyName
	Cards  []DrawnCard
}

// Count returns how many cards of tier t the result holds.
func (r DrawResult) Count(t Tier) int {
	return countTier(r.Cards, t)
}
