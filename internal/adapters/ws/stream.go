package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/olahol/melody"

	httpadapter "github.com/KillerxG/RPG-YGO-Delta/internal/adapters/http"
	"github.com/KillerxG/RPG-YGO-Delta/internal/app"
	"github.com/KillerxG/RPG-YGO-Delta/internal/domain"
)

const cancelKey = "cancel_stream"

// Opener draws boosters and decks.
type Opener interface {
	OpenBooster(ctx context.Context, name, policy string) (app.Opening, error)
	OpenDeck(ctx context.Context, name string) (app.Opening, error)
}

// WaitFunc blocks for d or until ctx is done.
type WaitFunc func(ctx context.Context, d time.Duration) error

type Option func(*Stream)

// WithWait replaces the timer used between reveal events.
func WithWait(wait WaitFunc) Option {
	return func(s *Stream) { s.wait = wait }
}

// Stream plays opening results to websocket clients following their reveal
// schedule. Each session runs at most one stream; a new request cancels the
// previous one and a disconnect cancels whatever is running.
type Stream struct {
	m      *melody.Melody
	opener Opener
	log    *slog.Logger
	wait   WaitFunc
}

func New(logger *slog.Logger, m *melody.Melody, opener Opener, opts ...Option) *Stream {
	s := &Stream{
		m:      m,
		opener: opener,
		log:    logger,
		wait:   sleep,
	}
	for _, opt := range opts {
		opt(s)
	}

	m.HandleConnect(s.connected)
	m.HandleDisconnect(s.disconnected)
	m.HandleMessage(s.handleMessage)
	m.HandleMessageBinary(s.handleMessage)
	return s
}

func (s *Stream) Register(e *echo.Echo) {
	e.GET("/ws", func(c echo.Context) error {
		return s.m.HandleRequest(c.Response(), c.Request())
	})
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (s *Stream) connected(session *melody.Session) {
	s.log.InfoContext(session.Request.Context(), "reveal stream connected",
		"remote_address", session.RemoteAddr().String(),
	)
}

func (s *Stream) disconnected(session *melody.Session) {
	s.cancel(session)
	s.log.InfoContext(session.Request.Context(), "reveal stream disconnected",
		"remote_address", session.RemoteAddr().String(),
	)
}

func (s *Stream) cancel(session *melody.Session) {
	v, ok := session.Get(cancelKey)
	if !ok {
		return
	}
	if cancel, ok := v.(context.CancelFunc); ok {
		cancel()
	}
	session.UnSet(cancelKey)
}

func (s *Stream) handleMessage(session *melody.Session, msg []byte) {
	reqCtx := session.Request.Context()

	var envelope EnvelopeIn
	if err := json.Unmarshal(msg, &envelope); err != nil {
		s.log.WarnContext(reqCtx, "failed to unmarshal message", "error", err)
		s.sendError(session, http.StatusBadRequest, fmt.Errorf("malformed message: %w", err))
		return
	}

	s.cancel(session)

	var (
		opening app.Opening
		err     error
	)
	switch envelope.Type {
	case EventTypeOpenBooster:
		var req OpenBooster
		if err := json.Unmarshal(envelope.EventData, &req); err != nil {
			s.sendError(session, http.StatusBadRequest, fmt.Errorf("malformed %s: %w", envelope.Type, err))
			return
		}
		opening, err = s.opener.OpenBooster(reqCtx, req.Name, req.Policy)
	case EventTypeOpenDeck:
		var req OpenDeck
		if err := json.Unmarshal(envelope.EventData, &req); err != nil {
			s.sendError(session, http.StatusBadRequest, fmt.Errorf("malformed %s: %w", envelope.Type, err))
			return
		}
		opening, err = s.opener.OpenDeck(reqCtx, req.Name)
	default:
		s.log.WarnContext(reqCtx, "unknown message type", "type", envelope.Type)
		s.sendError(session, http.StatusBadRequest, fmt.Errorf("unknown message type %q", envelope.Type))
		return
	}
	if err != nil {
		s.send(session, s.errorEvent(reqCtx, err))
		return
	}

	ctx, cancel := context.WithCancel(reqCtx)
	session.Set(cancelKey, context.CancelFunc(cancel))
	go s.play(ctx, session, opening)
}

func (s *Stream) play(ctx context.Context, session *melody.Session, o app.Opening) {
	id := o.ID.String()
	start := time.Now()

	s.send(session, DrawOpenedEvent{
		Type: EventTypeDrawOpened,
		EventData: DrawOpened{
			OpeningID: id,
			Kind:      string(o.Kind),
			Source:    o.Source,
			Policy:    string(o.Result.Policy),
			Total:     len(o.Result.Cards),
		},
	})

	for _, ev := range o.Reveal {
		if err := s.wait(ctx, time.Until(start.Add(ev.Delay))); err != nil {
			s.log.DebugContext(ctx, "reveal stream cancelled", "opening_id", id, "at", ev.Index)
			return
		}
		if ctx.Err() != nil {
			return
		}
		s.send(session, CardRevealedEvent{
			Type: EventTypeCardRevealed,
			EventData: CardRevealed{
				OpeningID:  id,
				Index:      ev.Index,
				DelayMS:    ev.Delay.Milliseconds(),
				DurationMS: ev.Duration.Milliseconds(),
				Card:       ev.Card,
				Label:      ev.Card.Tier.DisplayName(),
			},
		})
	}

	if ctx.Err() != nil {
		return
	}
	s.send(session, DrawFinishedEvent{
		Type: EventTypeDrawFinished,
		EventData: DrawFinished{
			OpeningID:   id,
			SuperRares:  o.Result.Count(domain.TierSuperRare),
			SecretRares: o.Result.Count(domain.TierSecretRare),
		},
	})
}

func (s *Stream) errorEvent(ctx context.Context, err error) ErrorEvent {
	status, body := httpadapter.StatusFor(err)
	if status == http.StatusInternalServerError {
		s.log.ErrorContext(ctx, "internal error", "error", err)
	}
	return ErrorEvent{
		Type: EventTypeError,
		EventData: Error{
			Status:     status,
			Message:    body.Error,
			Shortfalls: body.Shortfalls,
		},
	}
}

func (s *Stream) sendError(session *melody.Session, status int, err error) {
	s.send(session, ErrorEvent{
		Type:      EventTypeError,
		EventData: Error{Status: status, Message: err.Error()},
	})
}

func (s *Stream) send(session *melody.Session, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		s.log.Error("failed to marshal event", "error", err)
		return
	}
	if err := session.Write(payload); err != nil {
		s.log.Debug("failed to write event", "remote_address", session.RemoteAddr().String(), "error", err)
	}
}
