package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/automoto/arenabot/config"
	"github.com/automoto/arenabot/shared/leveldata"
	"github.com/automoto/arenabot/sim"
	"github.com/automoto/arenabot/systems"
	"github.com/charmbracelet/log"
)

func main() {
	p1 := flag.String("p1", "duelist", "Personality of bot 1")
	p2 := flag.String("p2", "rushdown", "Personality of bot 2")
	difficulty := flag.String("difficulty", "normal", "Bot difficulty: easy, normal or hard")
	mapPath := flag.String("map", "", "TMX arena map (empty = built-in arena)")
	presetsPath := flag.String("presets", "", "Personality presets YAML to merge over the built-in ones")
	duration := flag.Duration("duration", config.Sim.MatchDuration, "Match length")
	tick := flag.Duration("tick", config.Sim.Tick, "Simulation tick")
	seed := flag.Uint64("seed", 0, "Random seed (0 = time based)")
	rounds := flag.Int("rounds", 1, "Number of matches to play")
	watch := flag.Bool("watch", false, "Reload -presets between rounds when the file changes")
	realtime := flag.Bool("realtime", false, "Pace the simulation to wall-clock time")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn or error")
	save := flag.Bool("save", false, "Save match telemetry to the user data directory")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	level, err := log.ParseLevel(*logLevel)
	if err != nil {
		logger.Fatal("bad -log-level", "err", err)
	}
	logger.SetLevel(level)

	diff, err := config.ParseDifficulty(*difficulty)
	if err != nil {
		logger.Fatal("bad -difficulty", "err", err)
	}

	bots := config.Bot
	if *presetsPath != "" {
		presets, err := config.LoadFile(*presetsPath)
		if err != nil {
			logger.Fatal("could not load presets", "err", err)
		}
		bots = bots.WithPresets(presets)
	}

	arena := leveldata.Default()
	if *mapPath != "" {
		arena, err = leveldata.LoadArena(os.DirFS(filepath.Dir(*mapPath)), filepath.Base(*mapPath))
		if err != nil {
			logger.Fatal("could not load map", "err", err)
		}
	}

	var watcher *config.Watcher
	if *watch {
		if *presetsPath == "" {
			logger.Fatal("-watch needs -presets")
		}
		watcher, err = config.Watch(*presetsPath)
		if err != nil {
			logger.Fatal("could not watch presets", "err", err)
		}
		defer watcher.Close()
	}

	var store *systems.TelemetryStore
	if *save {
		store, err = systems.OpenTelemetryStore("arenabot", logger)
		if err != nil {
			logger.Warn("telemetry disabled", "err", err)
		}
	}

	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	wins := [2]int{}
	for round := 1; round <= *rounds; round++ {
		bots = reloadPresets(watcher, bots, logger)

		duel, err := sim.New(sim.Options{
			Personalities: [2]string{*p1, *p2},
			Difficulty:    diff,
			Bots:          bots,
			Arena:         arena,
			Duration:      *duration,
			Tick:          *tick,
			Seed:          *seed + uint64(round-1),
			Round:         round,
			Logger:        logger,
		})
		if err != nil {
			logger.Fatal("could not set up duel", "err", err)
		}

		runErr := sim.NewGameLoop(duel, *tick, *realtime).Run(ctx)
		summary := duel.Summary()
		report(summary)
		if summary.Winner >= 0 {
			wins[summary.Winner]++
		}

		if store != nil {
			if err := store.SaveMatch(summary); err != nil {
				logger.Warn("could not save telemetry", "err", err)
			}
		}
		if errors.Is(runErr, context.Canceled) {
			logger.Info("interrupted", "round", round)
			break
		}
	}

	logger.Info("series over", *p1, wins[0], *p2, wins[1], "seed", *seed)
}

// reloadPresets applies the newest presets the watcher has seen, if any.
func reloadPresets(w *config.Watcher, bots config.BotConfigData, logger *log.Logger) config.BotConfigData {
	if w == nil {
		return bots
	}
	for {
		select {
		case p := <-w.Events:
			logger.Info("presets reloaded", "personalities", len(p.Personalities))
			bots = config.Bot.WithPresets(p)
		case err := <-w.Errors:
			logger.Warn("presets reload failed, keeping previous", "err", err)
		default:
			return bots
		}
	}
}

func report(s systems.MatchSummary) {
	fmt.Printf("round %d on %s (%s played)\n", s.Round, s.Map, s.Played.Round(time.Second))
	for _, p := range s.Players {
		fmt.Printf("  %-14s %3d kills %3d deaths  acc %4.0f%%  signatures %d (cut %d)  mercy %d\n",
			p.Name, p.Kills, p.Deaths, p.Accuracy*100, total(p.Signatures), p.SignaturesCut, p.MercyActivations)
		var shares []string
		for _, state := range systems.SortedStates(p.StateShare) {
			shares = append(shares, fmt.Sprintf("%s %.0f%%", state, p.StateShare[state]*100))
		}
		fmt.Printf("  %-14s %s\n", "", strings.Join(shares, "  "))
	}
	switch s.Winner {
	case -1:
		fmt.Println("  draw")
	default:
		fmt.Printf("  winner: %s\n", s.Players[s.Winner].Name)
	}
}

func total(m map[string]int) int {
	n := 0
	for _, v := range m {
		n += v
	}
	return n
}
