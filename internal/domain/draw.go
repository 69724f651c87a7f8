package domain

// Draw runs policy over pools. Positions in the result are 1-based.
// A refused draw returns an *InsufficientCardsError and no cards.
func Draw(pools Pools, policy Policy, rng RNG) (DrawResult, error) {
	if policy == nil {
		return DrawResult{}, ErrUnknownPolicy
	}

	cards, err := policy.Draw(pools, rng)
	if err != nil {
		return DrawResult{}, err
	}
	for i := range cards {
		cards[i].Position = i + 1
	}

	return DrawResult{
		Policy: policy.Name(),
		Cards:  cards,
	}, nil
}

// sample returns min(k, len(pool)) distinct cards, uniform over subsets.
func sample(pool []Card, k int, rng RNG) []Card {
	k = min(k, len(pool))

	// Fisher-Yates partial shuffle: only need first k elements.
	indices := make([]int, len(pool))
	for i := range indices {
		indices[i] = i
	}
	for i := range k {
		j := i + rng.Intn(len(indices)-i)
		indices[i], indices[j] = indices[j], indices[i]
	}

	out := make([]Card, k)
	for i := range k {
		out[i] = pool[indices[i]]
	}
	return out
}

func choice(pool []Card, rng RNG) Card {
	return pool[rng.Intn(len(pool))]
}

func shuffle(cards []DrawnCard, rng RNG) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

func countTier(cards []DrawnCard, t Tier) int {
	n := 0
	for _, c := range cards {
		if c.Tier == t {
			n++
		}
	}
	return n
}
