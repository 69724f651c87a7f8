package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"time"

	"github.com/pterm/pterm"

	"github.com/KillerxG/RPG-YGO-Delta/internal/adapters/catalog"
	"github.com/KillerxG/RPG-YGO-Delta/internal/adapters/players"
	"github.com/KillerxG/RPG-YGO-Delta/internal/app"
	"github.com/KillerxG/RPG-YGO-Delta/internal/config"
	"github.com/KillerxG/RPG-YGO-Delta/internal/domain"
)

const usage = `usage: boosterctl <command> [arguments]

commands:
  boosters                      list boosters and their covers
  decks                         list decks and their covers
  open [-policy P] [-reveal] N  open booster N (booster-15 or booster-4+1)
  deck [-reveal] N              preview deck N
  players                       list registered players
  player add NAME               register a player and create its folders
  player NAME [RARITY]          browse a player's cards
`

type stdRNG struct{}

func (stdRNG) Intn(n int) int { return rand.IntN(n) }
func (stdRNG) Float64() float64 { return rand.Float64() }

type cli struct {
	boosters *app.BoosterService
	gallery  *app.GalleryService
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		pterm.Error.Printfln("failed to load config: %v", err)
		os.Exit(1)
	}

	logger := slog.New(pterm.NewSlogHandler(pterm.DefaultLogger.WithLevel(ptermLevel(cfg.LogLevel))))

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, logger, os.Args[1:]); err != nil {
		printError(err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger, args []string) error {
	store, err := catalog.NewOSStore(cfg.Layout.Root, cfg.Layout.Extensions, logger)
	if err != nil {
		return err
	}

	policies, err := cfg.Policies.PolicySet()
	if err != nil {
		return err
	}

	c := &cli{
		boosters: app.NewBoosterService(store, stdRNG{}, cfg.AppLayout(), policies, logger),
	}

	switch args[0] {
	case "players", "player":
		repo, db, err := players.Open(cfg.DatabasePath, logger)
		if err != nil {
			return err
		}
		defer db.Close()
		c.gallery = app.NewGalleryService(store, repo, cfg.Layout.PlayersDir, cfg.Layout.PlayerRarities, logger)
	}

	switch args[0] {
	case "boosters":
		return c.listings(ctx, "Boosters", c.boosters.ListBoosters)
	case "decks":
		return c.listings(ctx, "Decks", c.boosters.ListDecks)
	case "open":
		return c.open(ctx, args[1:], true)
	case "deck":
		return c.open(ctx, args[1:], false)
	case "players":
		return c.players(ctx)
	case "player":
		return c.player(ctx, args[1:])
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func (c *cli) listings(ctx context.Context, title string, list func(context.Context) ([]app.Listing, error)) error {
	ls, err := list(ctx)
	if err != nil {
		return err
	}
	pterm.DefaultSection.Println(title)
	return pterm.DefaultTable.WithHasHeader().WithData(listingRows(ls)).Render()
}

func (c *cli) open(ctx context.Context, args []string, booster bool) error {
	fs := flag.NewFlagSet("open", flag.ContinueOnError)
	policy := fs.String("policy", "", "booster-15 or booster-4+1 (default from BOOSTER_POLICY)")
	reveal := fs.Bool("reveal", false, "print cards following the reveal schedule")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("expected exactly one booster or deck name")
	}
	name := fs.Arg(0)

	var (
		o   app.Opening
		err error
	)
	if booster {
		o, err = c.boosters.OpenBooster(ctx, name, *policy)
	} else {
		o, err = c.boosters.OpenDeck(ctx, name)
	}
	if err != nil {
		return err
	}

	pterm.DefaultSection.Printfln("%s (%s)", o.Source, o.Result.Policy)
	if *reveal {
		if err := playReveal(ctx, o.Reveal); err != nil {
			return err
		}
	} else {
		if err := pterm.DefaultTable.WithHasHeader().WithData(cardRows(o.Result.Cards)).Render(); err != nil {
			return err
		}
	}

	pterm.Info.Printfln("%d super rares, %d secret rares", o.Result.Count(domain.TierSuperRare), o.Result.Count(domain.TierSecretRare))
	return nil
}

// playReveal prints each card once its delay has elapsed.
func playReveal(ctx context.Context, events []app.RevealEvent) error {
	start := time.Now()
	for _, ev := range events {
		t := time.NewTimer(time.Until(start.Add(ev.Delay)))
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		pterm.Println(cardLine(ev.Card))
	}
	return nil
}

func (c *cli) players(ctx context.Context) error {
	names, err := c.gallery.ListPlayers(ctx)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		pterm.Info.Println("no players registered")
		return nil
	}
	pterm.DefaultSection.Println("Players")
	return pterm.DefaultBulletList.WithItems(bullets(names)).Render()
}

func (c *cli) player(ctx context.Context, args []string) error {
	switch {
	case len(args) == 2 && args[0] == "add":
		if err := c.gallery.AddPlayer(ctx, args[1]); err != nil {
			return err
		}
		pterm.Success.Printfln("player %s added", args[1])
		return nil
	case len(args) == 2:
		cards, err := c.gallery.PlayerCards(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		return renderGroups(args[0], []app.RarityGroup{{Rarity: args[1], Cards: cards}})
	case len(args) == 1:
		groups, err := c.gallery.PlayerCollection(ctx, args[0])
		if err != nil {
			return err
		}
		return renderGroups(args[0], groups)
	default:
		return errors.New("expected: player add NAME | player NAME [RARITY]")
	}
}

func printError(err error) {
	var insufficient *domain.InsufficientCardsError
	if !errors.As(err, &insufficient) {
		pterm.Error.Println(err)
		return
	}
	pterm.Error.Printfln("not enough cards for %s", insufficient.Policy)
	for _, tier := range []domain.Tier{domain.TierSuperRare, domain.TierSecretRare} {
		s, ok := insufficient.Shortfalls[tier]
		if !ok {
			continue
		}
		pterm.Warning.Printfln("%s: have %d, need %d (%d missing)", tier.DisplayName(), s.Have, s.Need, s.Missing())
	}
}

func ptermLevel(l slog.Level) pterm.LogLevel {
	switch {
	case l <= slog.LevelDebug:
		return pterm.LogLevelDebug
	case l <= slog.LevelInfo:
		return pterm.LogLevelInfo
	case l <= slog.LevelWarn:
		return pterm.LogLevelWarn
	default:
		return pterm.LogLevelError
	}
}
