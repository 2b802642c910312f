package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"quoridor/agent"
	"quoridor/engine"
	"quoridor/tui"
)

func main() {
	cfg, err := tui.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: config unreadable, using defaults: %v\n", err)
	}

	boardSize := flag.Int("board-size", cfg.BoardSize, "board side length")
	players := flag.Int("players", cfg.Players, "number of players (2 or 4)")
	humanSeat := flag.Int("human-seat", cfg.HumanSeat, "seat played by the human")
	depth := flag.Int("depth", cfg.Depth, "search depth in plies")
	goroutines := flag.Int("goroutines", cfg.Goroutines, "parallel root branches in the searcher")
	opponent := flag.String("opponent", cfg.Opponent, "opponent kind: search, random or ollama")
	ollamaURL := flag.String("ollama-url", "", "ollama generate endpoint")
	ollamaModel := flag.String("ollama-model", "", "ollama model name")
	noHints := flag.Bool("no-hints", !cfg.ShowHints, "hide pawn move hints")
	save := flag.Bool("save", false, "persist these settings as defaults")
	logFile := flag.String("log", "", "append logs to this file (the terminal is busy drawing)")
	flag.Parse()

	cfg.BoardSize = *boardSize
	cfg.Players = *players
	cfg.HumanSeat = *humanSeat
	cfg.Depth = *depth
	cfg.Goroutines = *goroutines
	cfg.Opponent = *opponent
	cfg.ShowHints = !*noHints

	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: f, TimeFormat: time.TimeOnly, NoColor: true})
	} else {
		zerolog.SetGlobalLevel(zerolog.Disabled)
	}

	if *save {
		if err := cfg.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "saving config: %v\n", err)
		}
	}

	var options []engine.Option
	for seat := 1; seat <= cfg.Players; seat++ {
		if seat == cfg.HumanSeat {
			continue
		}
		options = append(options, engine.WithAgent(seat, buildAgent(cfg, *ollamaURL, *ollamaModel, uint64(seat))))
	}

	if err := tui.Run(cfg, options...); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func buildAgent(cfg tui.Config, ollamaURL, ollamaModel string, seed uint64) agent.Agent {
	switch cfg.Opponent {
	case "random":
		return agent.NewRandom(seed)
	case "ollama":
		return agent.NewOllama(
			agent.WithOllamaURL(ollamaURL),
			agent.WithOllamaModel(ollamaModel),
		)
	default:
		return agent.NewSearch(cfg.Depth, cfg.Goroutines)
	}
}
