package ws

import (
	"encoding/json"

	"github.com/KillerxG/RPG-YGO-Delta/internal/domain"
)

type (
	EventType string

	Envelope[EventData any] struct {
		Type      EventType `json:"type"`
		EventData EventData `json:"event_data"`
	}
	EnvelopeIn struct {
		Type      EventType       `json:"type"`
		EventData json.RawMessage `json:"event_data"`
	}
)

const (
	EventTypeOpenBooster EventType = "open_booster"
	EventTypeOpenDeck    EventType = "open_deck"
)

type (
	OpenBooster struct {
		Name   string `json:"name"`
		Policy string `json:"policy,omitempty"`
	}

	OpenDeck struct {
		Name string `json:"name"`
	}
)

const (
	EventTypeDrawOpened   EventType = "draw_opened"
	EventTypeCardRevealed EventType = "card_revealed"
	EventTypeDrawFinished EventType = "draw_finished"
	EventTypeError        EventType = "error"
)

type (
	DrawOpenedEvent = Envelope[DrawOpened]
	DrawOpened      struct {
		OpeningID string `json:"opening_id"`
		Kind      string `json:"kind"`
		Source    string `json:"source"`
		Policy    string `json:"policy"`
		Total     int    `json:"total"`
	}

	CardRevealedEvent = Envelope[CardRevealed]
	CardRevealed      struct {
		OpeningID  string           `json:"opening_id"`
		Index      int              `json:"index"`
		DelayMS    int64            `json:"delay_ms"`
		DurationMS int64            `json:"duration_ms"`
		Card       domain.DrawnCard `json:"card"`
		Label      string           `json:"label,omitempty"`
	}

	DrawFinishedEvent = Envelope[DrawFinished]
	DrawFinished      struct {
		OpeningID   string `json:"opening_id"`
		SuperRares  int    `json:"super_rares"`
		SecretRares int    `json:"secret_rares"`
	}

	ErrorEvent = Envelope[Error]
	Error      struct {
		Status     int                              `json:"status"`
		Message    string                           `json:"message"`
		Shortfalls map[domain.Tier]domain.Shortfall `json:"shortfalls,omitempty"`
	}
)
