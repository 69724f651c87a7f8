package app_test

import (
	"testing"
	"time"

	"github.com/KillerxG/RPG-YGO-Delta/internal/app"
	"github.com/KillerxG/RPG-YGO-Delta/internal/domain"
)

func result(policy domain.PolicyName, tiers ...domain.Tier) domain.DrawResult {
	res := domain.DrawResult{Policy: policy}
	for i, tier := range tiers {
		res.Cards = append(res.Cards, domain.DrawnCard{Tier: tier, Position: i + 1})
	}
	return res
}

func TestScheduleReveal_Booster15(t *testing.T) {
	res := result(domain.PolicyBooster15,
		domain.TierSuperRare, domain.TierSecretRare, domain.TierSuperRare, domain.TierMarker)

	events := app.ScheduleReveal(res)
	if len(events) != 4 {
		t.Fatalf("expected 4 events, got %d", len(events))
	}
	for i, e := range events {
		if e.Index != i {
			t.Errorf("event %d: unexpected index %d", i, e.Index)
		}
		if want := time.Duration(i) * 400 * time.Millisecond; e.Delay != want {
			t.Errorf("event %d: expected delay %v, got %v", i, want, e.Delay)
		}
		if e.Card.Position != i+1 {
			t.Errorf("event %d: events must follow result order", i)
		}
	}
	if events[3].Card.Tier != domain.TierMarker {
		t.Error("expected marker revealed last")
	}
}

func TestScheduleReveal_BoosterPreviewFades(t *testing.T) {
	res := result(domain.PolicyBoosterPreview,
		domain.TierSuperRare, domain.TierSuperRare, domain.TierSuperRare, domain.TierSuperRare, domain.TierSecretRare)

	events := app.ScheduleReveal(res)
	if events[4].Delay != 1200*time.Millisecond {
		t.Errorf("expected secret delay 1.2s, got %v", events[4].Delay)
	}
	if events[0].Duration != 900*time.Millisecond {
		t.Errorf("expected super fade 900ms, got %v", events[0].Duration)
	}
	if events[4].Duration != 1200*time.Millisecond {
		t.Errorf("expected secret fade 1.2s, got %v", events[4].Duration)
	}
}

func TestScheduleReveal_DeckGrid(t *testing.T) {
	tiers := make([]domain.Tier, 12)
	for i := range tiers {
		tiers[i] = domain.TierSuperRare
	}
	events := app.ScheduleReveal(result(domain.PolicyDeckPreview, tiers...))

	cases := map[int]time.Duration{
		0:  0,
		4:  320 * time.Millisecond,
		5:  60 * time.Millisecond,
		11: 80*time.Millisecond + 120*time.Millisecond,
	}
	for idx, want := range cases {
		if events[idx].Delay != want {
			t.Errorf("event %d: expected delay %v, got %v", idx, want, events[idx].Delay)
		}
	}
	if events[0].Duration != 300*time.Millisecond {
		t.Errorf("expected fade 300ms, got %v", events[0].Duration)
	}
}
