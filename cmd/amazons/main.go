// Command amazons plays the Game of the Amazons on a text terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/pprof"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hailam/amazons/internal/controller"
	"github.com/hailam/amazons/internal/engine"
	"github.com/hailam/amazons/internal/player"
	"github.com/hailam/amazons/internal/storage"
)

var (
	whiteFlag  = flag.String("white", "", "white player: manual, auto or random")
	blackFlag  = flag.String("black", "", "black player: manual, auto or random")
	seedFlag   = flag.Uint64("seed", 0, "seed for random players (default: stored seed, else time based)")
	depthFlag  = flag.Int("depth", -1, "fixed search depth; 0 uses the move-count heuristic")
	maxDepth   = flag.Int("maxdepth", 0, "cap on the heuristic search depth (0: no cap)")
	workers    = flag.Int("workers", 1, "goroutines used to split the root moves")
	logFile    = flag.String("log", "", "copy every command to this file")
	dbDir      = flag.String("db", "", "database directory (default: platform data dir)")
	noDB       = flag.Bool("nodb", false, "do not load or save preferences and statistics")
	verbose    = flag.Bool("v", false, "debug logging")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("amazons")
	}
}

func run() error {
	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
		log.Info().Str("path", profilePath).Msg("CPU profiling enabled")
	}

	prefs := storage.DefaultPreferences()
	var store *storage.Storage
	if !*noDB {
		var err error
		if store, err = storage.Open(*dbDir); err != nil {
			log.Warn().Err(err).Msg("storage unavailable, continuing without it")
		} else {
			defer store.Close()
			if prefs, err = store.LoadPreferences(); err != nil {
				return err
			}
		}
	}
	applyFlags(prefs, setFlags())

	white, err := player.ParseKind(prefs.White)
	if err != nil {
		return fmt.Errorf("-white: %w", err)
	}
	black, err := player.ParseKind(prefs.Black)
	if err != nil {
		return fmt.Errorf("-black: %w", err)
	}

	var cmdLog io.Writer
	if *logFile != "" {
		f, err := os.Create(*logFile)
		if err != nil {
			return fmt.Errorf("could not create command log: %w", err)
		}
		defer f.Close()
		cmdLog = f
	}

	opts := []engine.Option{engine.WithWorkers(*workers), engine.WithMaxDepth(*maxDepth)}
	if prefs.Depth > 0 {
		opts = append(opts, engine.WithDepth(prefs.Depth))
	}

	cfg := controller.Config{
		In:     os.Stdin,
		Out:    os.Stdout,
		Prompt: os.Stdout,
		Log:    cmdLog,
		White:  white,
		Black:  black,
		Seed:   prefs.Seed,
		Engine: engine.NewEngine(opts...),
	}
	if store != nil {
		cfg.Recorder = store
	}

	log.Debug().
		Stringer("white", white).
		Stringer("black", black).
		Int("depth", prefs.Depth).
		Uint64("seed", prefs.Seed).
		Int("workers", *workers).
		Msg("starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := controller.New(cfg).Run(ctx); err != nil {
		return err
	}

	if store != nil {
		if err := store.SavePreferences(prefs); err != nil {
			return err
		}
		if stats, err := store.LoadStats(); err == nil && stats.GamesPlayed > 0 {
			log.Info().
				Int("games", stats.GamesPlayed).
				Int("white_wins", stats.WhiteWins).
				Int("black_wins", stats.BlackWins).
				Float64("avg_plies", stats.AveragePlies()).
				Msg("statistics")
		}
	}
	return nil
}

// setFlags returns the names of the flags given on the command line.
func setFlags() map[string]bool {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// applyFlags overrides stored preferences with the flags named in set.
// Without -seed the stored seed is kept; a zero seed is drawn from the clock.
func applyFlags(prefs *storage.Preferences, set map[string]bool) {
	if set["white"] {
		prefs.White = *whiteFlag
	}
	if set["black"] {
		prefs.Black = *blackFlag
	}
	if set["depth"] {
		prefs.Depth = *depthFlag
	}
	if set["seed"] {
		prefs.Seed = *seedFlag
	}
	if prefs.Seed == 0 {
		prefs.Seed = uint64(time.Now().UnixNano())
	}
}
