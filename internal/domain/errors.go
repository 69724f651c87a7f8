package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrUnknownPolicy       = errors.New("unknown draw policy")
	ErrInvalidPolicy       = errors.New("invalid draw policy parameters")
	ErrNotImage            = errors.New("not an allowed image file")
	ErrPlayerAlreadyExists = errors.New("player already exists")
)

// Shortfall describes one pool that is below a policy's minimum.
type Shortfall struct {
	Have int `json:"have"`
	Need int `json:"need"`
}

// Missing returns how many cards the pool lacks.
func (s Shortfall) Missing() int {
	return s.Need - s.Have
}

// InsufficientCardsError is returned when a policy refuses to draw because
// one or more pools are below its minimum. No cards are produced.
type InsufficientCardsError struct {
	Policy     PolicyName
	Shortfalls map[Tier]Shortfall
}

func (e *InsufficientCardsError) Error() string {
	tiers := make([]string, 0, len(e.Shortfalls))
	for t := range e.Shortfalls {
		tiers = append(tiers, string(t))
	}
	sort.Strings(tiers)

	parts := make([]string, len(tiers))
	for i, t := range tiers {
		s := e.Shortfalls[Tier(t)]
		parts[i] = fmt.Sprintf("%s have %d need %d", t, s.Have, s.Need)
	}
	return fmt.Sprintf("insufficient cards for %s: %s", e.Policy, strings.Join(parts, ", "))
}

// requireMinimums checks every pool against its minimum and reports all
// shortfalls at once.
func requireMinimums(policy PolicyName, pools Pools, minimums map[Tier]int) error {
	var shortfalls map[Tier]Shortfall
	for tier, need := range minimums {
		have := len(pools[tier])
		if have >= need {
			continue
		}
		if shortfalls == nil {
			shortfalls = make(map[Tier]Shortfall)
		}
		shortfalls[tier] = Shortfall{Have: have, Need: need}
	}
	if shortfalls != nil {
		return &InsufficientCardsError{Policy: policy, Shortfalls: shortfalls}
	}
	return nil
}
