package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jwebster45206/adventure-engine/internal/config"
	"github.com/jwebster45206/adventure-engine/internal/logger"
	internalstorage "github.com/jwebster45206/adventure-engine/internal/storage"
	"github.com/jwebster45206/adventure-engine/pkg/agent"
	"github.com/jwebster45206/adventure-engine/pkg/engine"
	"github.com/jwebster45206/adventure-engine/pkg/narrator"
	"github.com/jwebster45206/adventure-engine/pkg/scenario"
	"github.com/jwebster45206/adventure-engine/pkg/state"
	"github.com/jwebster45206/adventure-engine/pkg/storage"
)

const (
	modePlay    = "play"
	modeAIvsAI  = "ai-vs-ai"
	modeWatchAI = "watch-ai"
)

type options struct {
	mode      string
	player    string
	playstyle string
	rival     string
	scout     string
	world     string
	maxTurns  int
	seed      uint64
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	opts, err := parseOptions(flag.NewFlagSet("adventure", flag.ContinueOnError), os.Args[1:], cfg)
	if err != nil {
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// parseOptions reads flags on top of the environment config.
func parseOptions(fs *flag.FlagSet, args []string, cfg *config.Config) (options, error) {
	opts := options{}
	fs.StringVar(&opts.mode, "mode", modePlay, "game mode: play, ai-vs-ai or watch-ai")
	fs.StringVar(&opts.player, "player", "Adventurer", "player name")
	fs.StringVar(&opts.playstyle, "playstyle", string(agent.Balanced), "AI playstyle: aggressive, cautious, balanced or explorer")
	fs.StringVar(&opts.rival, "rival", string(agent.Cautious), "playstyle of the second AI in ai-vs-ai mode")
	fs.StringVar(&opts.scout, "scout", string(agent.Explorer), "playstyle of the third AI in ai-vs-ai mode")
	fs.StringVar(&opts.world, "world", cfg.WorldFile, "world file path or name in the data directory (default: built-in world)")
	fs.IntVar(&opts.maxTurns, "max-turns", cfg.MaxTurns, "turn limit for AI modes")
	fs.Uint64Var(&opts.seed, "seed", cfg.Seed, "random seed (0 = random)")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	switch opts.mode {
	case modePlay, modeAIvsAI, modeWatchAI:
	default:
		fmt.Fprintf(fs.Output(), "unknown mode %q\n", opts.mode)
		return options{}, fmt.Errorf("unknown mode %q", opts.mode)
	}
	if opts.maxTurns <= 0 {
		return options{}, fmt.Errorf("max turns must be positive, got %d", opts.maxTurns)
	}
	return opts, nil
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

func run(ctx context.Context, cfg *config.Config, opts options) error {
	var log *slog.Logger
	if opts.mode == modePlay {
		// The console owns stdout.
		f, err := os.OpenFile(filepath.Join(os.TempDir(), "adventure.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		log = logger.SetupTo(f, cfg)
	} else {
		log = logger.Setup(cfg)
	}

	store, err := internalstorage.New(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to open save store: %w", err)
	}
	defer store.Close()

	world, err := loadWorld(ctx, store, opts.world, log)
	if err != nil {
		return err
	}

	rng := newRand(opts.seed)

	switch opts.mode {
	case modeWatchAI:
		return watchAI(ctx, os.Stdout, store, world, opts, rng, log)
	case modeAIvsAI:
		return aiVsAI(ctx, os.Stdout, world, opts, rng, log)
	default:
		return play(ctx, store, world, opts, rng, log)
	}
}

// loadWorld resolves ref as a file path first and then as a filename in the
// store's worlds directory. An empty ref means the built-in world.
func loadWorld(ctx context.Context, store storage.Storage, ref string, log *slog.Logger) (*scenario.World, error) {
	if ref == "" {
		return nil, nil
	}

	var (
		w   *scenario.World
		err error
	)
	if _, statErr := os.Stat(ref); statErr == nil {
		w, err = scenario.LoadWorld(ref)
	} else {
		w, err = store.GetWorld(ctx, ref)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load world %s: %w", ref, err)
	}

	for _, problem := range w.Validate() {
		log.Warn("World problem", "world", w.Name, "problem", problem)
	}
	return w, nil
}

func play(ctx context.Context, store storage.Storage, world *scenario.World, opts options, rng *rand.Rand, log *slog.Logger) error {
	var worldMap map[string]string
	if world == nil {
		m, err := store.ListWorlds(ctx)
		if err != nil {
			log.Warn("Failed to list worlds", "error", err)
		}
		worldMap = m
	}

	eng := engine.New(opts.player, engine.WithLogger(log))
	s := newSession(eng, store, narrator.New(rng), log)
	s.copy = clipboard.WriteAll

	p := tea.NewProgram(NewConsoleUI(ctx, s, world, worldMap),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}

	fmt.Println(eng.StorySummary())
	return nil
}

func watchAI(ctx context.Context, out io.Writer, store storage.Storage, world *scenario.World, opts options, rng *rand.Rand, log *slog.Logger) error {
	eng := engine.New(opts.player, engine.WithLogger(log))
	eng.InitializeWorld(world)
	dm := narrator.New(rng)

	a := agent.New(opts.player, agent.Playstyle(opts.playstyle), rng)
	runner := agent.NewRunner(a, opts.maxTurns, log)

	fmt.Fprintln(out, dm.IntroduceGame())
	fmt.Fprintf(out, "\n%s (%s) sets off into %s.\n\n", a.Name, a.Playstyle, eng.World().Name)

	logs, err := runner.Run(ctx, eng)
	for _, l := range logs {
		fmt.Fprintf(out, "Turn %d | %s | health %d\n  %s\n  > %s\n  %s\n\n",
			l.Turn, l.Scene, l.Health, l.Description, l.Action, l.Result)
	}
	if err != nil {
		return err
	}

	if eng.Status() == state.StatusWon {
		fmt.Fprintln(out, dm.CongratulateVictory(a.Name))
	}

	stats := a.Stats()
	fmt.Fprintln(out, agent.StoryFromLog(a.Name, logs))
	fmt.Fprintf(out, "Turns: %d  Decisions: %d  Success rate: %.0f%%\n",
		runner.Turns(), stats.Total, stats.SuccessRate*100)
	fmt.Fprintf(out, "Scenes visited: %d  Inventory: %v\n", len(eng.VisitedScenes()), eng.Player().Inventory)

	if err := eng.Save(ctx, store); err != nil {
		log.Warn("Failed to save AI game", "error", err)
	} else {
		fmt.Fprintf(out, "Saved as %s\n", eng.GameID())
	}
	return nil
}

func aiVsAI(ctx context.Context, out io.Writer, world *scenario.World, opts options, rng *rand.Rand, log *slog.Logger) error {
	t := agent.NewTournament([]agent.PlayerConfig{
		{Name: opts.player, Playstyle: agent.Playstyle(opts.playstyle)},
		{Name: "Rival", Playstyle: agent.Playstyle(opts.rival)},
		{Name: "Scout", Playstyle: agent.Playstyle(opts.scout)},
	}, rng, log)
	t.MaxTurns = opts.maxTurns
	t.World = world

	results, err := t.RunAll(ctx)
	if err != nil {
		return err
	}

	for _, res := range results {
		for _, p := range []agent.MatchPlayer{res.Player1, res.Player2} {
			fmt.Fprintf(out, "%s (%s): %d turns, health %d, %d items, score %d\n",
				p.Name, p.Playstyle, p.Turns, p.FinalHealth, len(p.Inventory), p.Score)
		}
		if res.Winner == agent.Draw {
			fmt.Fprintln(out, narrator.AddDrama("It's a draw!", 2))
		} else {
			fmt.Fprintln(out, narrator.AddDrama(res.Winner+" wins!", 3))
		}
	}
	return nil
}
