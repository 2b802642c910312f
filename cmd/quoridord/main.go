package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"quoridor/server"
)

func main() {
	cfg := server.DefaultConfig()

	configPath := flag.String("config", "", "path to a JSON config file")
	addr := flag.String("addr", cfg.Addr, "listen address")
	boardSize := flag.Int("board-size", cfg.BoardSize, "board side length")
	players := flag.Int("players", cfg.Players, "number of players (2 or 4)")
	humanSeat := flag.Int("human-seat", cfg.HumanSeat, "seat played by the human")
	depth := flag.Int("depth", cfg.Depth, "search depth in plies")
	goroutines := flag.Int("goroutines", cfg.Goroutines, "parallel root branches in the searcher")
	opponent := flag.String("opponent", cfg.Opponent, "opponent kind: search, random or ollama")
	ollamaURL := flag.String("ollama-url", cfg.OllamaURL, "ollama generate endpoint")
	ollamaModel := flag.String("ollama-model", cfg.OllamaModel, "ollama model name")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if *configPath != "" {
		data, err := os.ReadFile(*configPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *configPath).Msg("reading config file")
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			log.Fatal().Err(err).Str("path", *configPath).Msg("parsing config file")
		}
	}
	// Flags win over the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "addr":
			cfg.Addr = *addr
		case "board-size":
			cfg.BoardSize = *boardSize
		case "players":
			cfg.Players = *players
		case "human-seat":
			cfg.HumanSeat = *humanSeat
		case "depth":
			cfg.Depth = *depth
		case "goroutines":
			cfg.Goroutines = *goroutines
		case "opponent":
			cfg.Opponent = *opponent
		case "ollama-url":
			cfg.OllamaURL = *ollamaURL
		case "ollama-model":
			cfg.OllamaModel = *ollamaModel
		}
	})

	srv := server.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go srv.Hub().Run(ctx.Done())

	httpSrv := &http.Server{
		Addr:    cfg.Addr,
		Handler: srv.Router(),
	}
	go func() {
		log.Info().Str("addr", cfg.Addr).Msg("quoridord listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
