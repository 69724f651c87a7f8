package players

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/georgysavva/scany/sqlscan"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"

	"github.com/KillerxG/RPG-YGO-Delta/internal/domain"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Repository is the sqlite-backed player registry.
type Repository struct {
	db  *sql.DB
	log *slog.Logger
}

func New(logger *slog.Logger, db *sql.DB) *Repository {
	return &Repository{
		db:  db,
		log: logger,
	}
}

// Open opens the sqlite database at dsn and brings its schema up to date.
func Open(dsn string, logger *slog.Logger) (*Repository, *sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Every connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, nil, err
	}
	return New(logger, db), db, nil
}

// Migrate applies the embedded migrations.
func Migrate(db *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}
	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("migrator: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

func (r *Repository) ListPlayers(ctx context.Context) ([]string, error) {
	r.log.DebugContext(ctx, "listing players")

	const query = `
		SELECT player_name
		FROM players
		ORDER BY player_id
	`
	var names []string
	if err := sqlscan.Select(ctx, r.db, &names, query); err != nil {
		r.log.ErrorContext(ctx, "failed to list players", "error", err)
		return nil, err
	}

	r.log.DebugContext(ctx, "players listed", "count", len(names))

	return names, nil
}

func (r *Repository) AddPlayer(ctx context.Context, name string) error {
	r.log.DebugContext(ctx, "adding player", "player_name", name)

	const query = `
		INSERT INTO players (player_name)
		VALUES (?)
		ON CONFLICT(player_name) DO NOTHING
	`
	res, err := r.db.ExecContext(ctx, query, name)
	if err != nil {
		r.log.ErrorContext(ctx, "failed to insert player", "error", err)
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		r.log.ErrorContext(ctx, "failed to read affected rows", "error", err)
		return err
	}
	if n == 0 {
		r.log.WarnContext(ctx, "player already exists", "player_name", name)
		return domain.ErrPlayerAlreadyExists
	}

	r.log.DebugContext(ctx, "player added", "player_name", name)

	return nil
}

func (r *Repository) PlayerExists(ctx context.Context, name string) (bool, error) {
	const query = `
		SELECT COUNT(*) FROM players WHERE player_name = ?
	`
	var count int
	if err := sqlscan.Get(ctx, r.db, &count, query, name); err != nil {
		r.log.ErrorContext(ctx, "failed to look up player", "error", err)
		return false, err
	}
	return count > 0, nil
}
