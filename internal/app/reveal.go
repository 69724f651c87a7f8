package app

import (
	"time"

	"github.com/KillerxG/RPG-YGO-Delta/internal/domain"
)

// RevealEvent tells a presentation scheduler when to show one card.
type RevealEvent struct {
	Index    int
	Delay    time.Duration
	Duration time.Duration
	Card     domain.DrawnCard
}

// RevealTiming describes the stagger of one policy's result screen.
// With Columns set, cards are laid out in a grid and the delay grows by
// Step per column and RowStep per row.
type RevealTiming struct {
	Step       time.Duration
	RowStep    time.Duration
	Columns    int
	Fade       time.Duration
	SecretFade time.Duration
}

var revealTimings = map[domain.PolicyName]RevealTiming{
	domain.PolicyBooster15: {
		Step: 400 * time.Millisecond,
	},
	domain.PolicyBoosterPreview: {
		Step:       300 * time.Millisecond,
		Fade:       900 * time.Millisecond,
		SecretFade: 1200 * time.Millisecond,
	},
	domain.PolicyDeckPreview: {
		Step:    80 * time.Millisecond,
		RowStep: 60 * time.Millisecond,
		Columns: 5,
		Fade:    300 * time.Millisecond,
	},
}

// ScheduleReveal lays the cards of res out as a finite event list, in
// result order.
func ScheduleReveal(res domain.DrawResult) []RevealEvent {
	return ScheduleRevealWith(res, revealTimings[res.Policy])
}

func ScheduleRevealWith(res domain.DrawResult, timing RevealTiming) []RevealEvent {
	events := make([]RevealEvent, len(res.Cards))
	for i, c := range res.Cards {
		delay := time.Duration(i) * timing.Step
		if timing.Columns > 0 {
			delay = time.Duration(i%timing.Columns)*timing.Step + time.Duration(i/timing.Columns)*timing.RowStep
		}

		fade := timing.Fade
		if c.Tier == domain.TierSecretRare && timing.SecretFade > 0 {
			fade = timing.SecretFade
		}

		events[i] = RevealEvent{
			Index:    i,
			Delay:    delay,
			Duration: fade,
			Card:     c,
		}
	}
	return events
}
