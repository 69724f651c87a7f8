package ports

import "context"

// PlayerStore is the registry of players whose collections can be browsed.
type PlayerStore interface {
	ListPlayers(ctx context.Context) ([]string, error)
	AddPlayer(ctx context.Context, name string) error
	PlayerExists(ctx context.Context, name string) (bool, error)
}
