package agent

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"quoridor/game"
)

const (
	defaultOllamaURL   = "http://localhost:11434/api/generate"
	defaultOllamaModel = "gemma3:27b"
	defaultMaxRetries  = 3
)

type OllamaOption func(*Ollama)

// WithOllamaURL points the agent at a non-default generate endpoint.
func WithOllamaURL(url string) OllamaOption {
	return func(a *Ollama) {
		if url != "" {
			a.url = url
		}
	}
}

// WithOllamaModel selects the model to prompt.
func WithOllamaModel(model string) OllamaOption {
	return func(a *Ollama) {
		if model != "" {
			a.model = model
		}
	}
}

// WithOllamaRetries sets how many prompts are attempted before falling back
// to the first legal pawn move.
func WithOllamaRetries(retries int) OllamaOption {
	return func(a *Ollama) {
		if retries > 0 {
			a.maxRetries = retries
		}
	}
}

// WithOllamaClient swaps the HTTP client (tests point it at a stub server).
func WithOllamaClient(client *http.Client) OllamaOption {
	return func(a *Ollama) {
		if client != nil {
			a.client = client
		}
	}
}

// Ollama asks a local LLM for a move. The raw completion is parsed and
// checked against the rules engine; on an invalid answer the prompt is
// retried with the failure reason and the full legal-move lists embedded.
// After maxRetries failures the agent falls back to the first legal pawn
// move rather than submitting a guess the rules would reject.
type Ollama struct {
	url        string
	model      string
	maxRetries int
	client     *http.Client
}

func NewOllama(options ...OllamaOption) *Ollama {
	a := &Ollama{
		url:        defaultOllamaURL,
		model:      defaultOllamaModel,
		maxRetries: defaultMaxRetries,
		client:     &http.Client{Timeout: 120 * time.Second},
	}
	for _, option := range options {
		option(a)
	}
	return a
}

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
	TopK        int     `json:"top_k"`
	TopP        float64 `json:"top_p"`
}

type generateResponse struct {
	Response string `json:"response"`
}

func (a *Ollama) FindMove(gs *game.GameState) (game.Move, error) {
	playerID := gs.CurrentPlayer().ID
	failReason := ""
	withHints := false

	for attempt := 1; attempt <= a.maxRetries; attempt++ {
		prompt := a.buildPrompt(gs, playerID, failReason, withHints)
		raw, err := a.generate(prompt)
		if err != nil {
			log.Warn().Err(err).Int("attempt", attempt).Msg("ollama request failed")
			failReason = "the model returned no usable response"
			withHints = true
			continue
		}
		mv, ok := extractMove(raw, gs.BoardSize)
		if !ok {
			failReason = fmt.Sprintf("the response %q is not a well-formed move", firstLine(raw))
			withHints = true
			continue
		}
		if _, err := gs.Apply(playerID, mv); err != nil {
			failReason = fmt.Sprintf("the move %q was rejected: %s", mv, game.ReasonCode(err))
			withHints = true
			continue
		}
		return mv, nil
	}

	if pawns := gs.LegalPawnMoves(playerID); len(pawns) > 0 {
		fallback := game.PawnMove{To: pawns[0]}
		log.Warn().
			Int("player", playerID).
			Stringer("move", fallback).
			Msg("ollama produced no valid move, falling back to first pawn move")
		return fallback, nil
	}
	return nil, fmt.Errorf("ollama agent: no valid move after %d attempts", a.maxRetries)
}

func (a *Ollama) generate(prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Model:  a.model,
		Prompt: prompt,
		Stream: false,
		Options: generateOptions{
			Temperature: 1.0,
			TopK:        64,
			TopP:        0.95,
		},
	})
	if err != nil {
		return "", err
	}
	resp, err := a.client.Post(a.url, "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama: unexpected status %s", resp.Status)
	}
	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("ollama: decoding response: %w", err)
	}
	return strings.TrimSpace(decoded.Response), nil
}

// buildPrompt summarizes the position and, on retries, includes the previous
// failure and the full legal-move lists so the model can only pick from them.
func (a *Ollama) buildPrompt(gs *game.GameState, playerID int, failReason string, withHints bool) string {
	player, _ := gs.PlayerByID(playerID)
	var b strings.Builder
	b.WriteString("You are an expert Quoridor player. Reply with a single move and nothing else.\n")
	b.WriteString("Formats: 'MOVE <cell>' to step or jump, 'WALL H <cell>' or 'WALL V <cell>' to place a wall.\n\n")

	fmt.Fprintf(&b, "Board: %dx%d. You are player %d, goal %s.\n",
		gs.BoardSize, gs.BoardSize, playerID, goalLabel(player.Goal))
	for i := range gs.Players {
		p := &gs.Players[i]
		role := "opponent"
		if p.ID == playerID {
			role = "you"
		}
		fmt.Fprintf(&b, "Player %d (%s): pawn %s, %d walls left, goal %s, shortest path %d.\n",
			p.ID, role, p.Pos.Coord(), p.WallsLeft, goalLabel(p.Goal), gs.ShortestDistanceToGoal(p.ID))
	}
	walls := gs.PlacedWalls()
	if len(walls) == 0 {
		b.WriteString("Placed walls: none.\n")
	} else {
		parts := make([]string, len(walls))
		for i, w := range walls {
			parts[i] = w.String()
		}
		fmt.Fprintf(&b, "Placed walls: %s.\n", strings.Join(parts, ", "))
	}

	if failReason != "" {
		fmt.Fprintf(&b, "\nYour previous answer failed: %s. Pick a different, valid move.\n", failReason)
	}
	if withHints {
		b.WriteString("\nChoose ONLY from these legal moves.\n")
		var pawn []string
		for _, to := range gs.LegalPawnMoves(playerID) {
			pawn = append(pawn, game.PawnMove{To: to}.String())
		}
		fmt.Fprintf(&b, "Pawn: %s\n", strings.Join(pawn, ", "))
		placements := gs.LegalWallPlacements(playerID)
		if len(placements) > 0 {
			limit := 25
			if len(placements) < limit {
				limit = len(placements)
			}
			var wall []string
			for _, w := range placements[:limit] {
				wall = append(wall, w.String())
			}
			fmt.Fprintf(&b, "Walls: %s\n", strings.Join(wall, ", "))
		}
	}

	b.WriteString("\nYour move:\n")
	return b.String()
}

func goalLabel(g game.Goal) string {
	if g.Axis == game.Rows {
		return fmt.Sprintf("row %d", g.Line+1)
	}
	return fmt.Sprintf("column %c", 'A'+rune(g.Line))
}

// extractMove scans the completion for the first line that parses as a move.
func extractMove(raw string, boardSize int) (game.Move, bool) {
	for _, line := range strings.Split(raw, "\n") {
		line = strings.Trim(strings.TrimSpace(line), "`'\".")
		if line == "" {
			continue
		}
		if mv, err := game.ParseMove(line, boardSize); err == nil {
			return mv, true
		}
	}
	return nil, false
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
