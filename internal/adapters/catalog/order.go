package catalog

import (
	"math/big"
	"slices"
	"strings"

	"github.com/KillerxG/RPG-YGO-Delta/internal/domain"
)

// sortKey orders integer stems by value ahead of every other stem, which
// sort case-insensitively. The file name breaks remaining ties.
type sortKey struct {
	num  *big.Int
	text string
	name string
}

func keyFor(c domain.Card) sortKey {
	if n, ok := new(big.Int).SetString(strings.TrimSpace(c.ID), 10); ok {
		return sortKey{num: n, name: c.Name}
	}
	return sortKey{text: strings.ToLower(c.ID), name: c.Name}
}

func compareKeys(a, b sortKey) int {
	switch {
	case a.num != nil && b.num != nil:
		if c := a.num.Cmp(b.num); c != 0 {
			return c
		}
	case a.num != nil:
		return -1
	case b.num != nil:
		return 1
	default:
		if c := strings.Compare(a.text, b.text); c != 0 {
			return c
		}
	}
	return strings.Compare(a.name, b.name)
}

// SortCards orders cards in catalog order, in place.
func SortCards(cards []domain.Card) {
	keys := make(map[string]sortKey, len(cards))
	for _, c := range cards {
		keys[c.Path] = keyFor(c)
	}
	slices.SortFunc(cards, func(a, b domain.Card) int {
		return compareKeys(keys[a.Path], keys[b.Path])
	})
}
