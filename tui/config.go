package tui

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"github.com/adrg/xdg"
)

var cfgFile = "quoridor/config.json"

// Config holds the terminal client's preferences, persisted as JSON under
// the XDG config home.
type Config struct {
	BoardSize  int    `json:"board_size"`
	Players    int    `json:"players"`
	HumanSeat  int    `json:"human_seat"`
	Depth      int    `json:"depth"`
	Goroutines int    `json:"goroutines"`
	Opponent   string `json:"opponent"`
	ShowHints  bool   `json:"show_hints"`
}

func DefaultConfig() Config {
	return Config{
		BoardSize:  9,
		Players:    2,
		HumanSeat:  2,
		Depth:      3,
		Goroutines: 1,
		Opponent:   "search",
		ShowHints:  true,
	}
}

// LoadConfig reads the saved preferences, falling back to defaults when no
// file exists yet.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path, err := xdg.SearchConfigFile(cfgFile)
	if err != nil {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

// Save writes the preferences back to the XDG config home.
func (c Config) Save() error {
	path, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
