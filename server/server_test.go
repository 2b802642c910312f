package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"quoridor/engine"
	"quoridor/game"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.HumanSeat = 1
	cfg.Opponent = "random"
	s := New(cfg)
	ts := httptest.NewServer(s.Router())
	t.Cleanup(ts.Close)
	return s, ts
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	encoded, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(encoded))
	require.NoError(t, err)
	return resp
}

func decodeMove(t *testing.T, resp *http.Response) moveResponse {
	t.Helper()
	defer resp.Body.Close()
	var mr moveResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&mr))
	return mr
}

func startGame(t *testing.T, ts *httptest.Server) moveResponse {
	t.Helper()
	resp := postJSON(t, ts.URL+"/api/start", startRequest{})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decodeMove(t, resp)
}

func TestEndpointsRequireActiveGame(t *testing.T) {
	_, ts := newTestServer(t)

	for _, tc := range []struct {
		method, path string
	}{
		{http.MethodGet, "/api/state"},
		{http.MethodGet, "/api/hints"},
		{http.MethodPost, "/api/move"},
	} {
		t.Run(tc.path, func(t *testing.T) {
			var resp *http.Response
			var err error
			if tc.method == http.MethodGet {
				resp, err = http.Get(ts.URL + tc.path)
			} else {
				resp, err = http.Post(ts.URL+tc.path, "application/json", strings.NewReader(`{"move":"MOVE E2"}`))
			}
			require.NoError(t, err)
			defer resp.Body.Close()
			require.Equal(t, http.StatusConflict, resp.StatusCode)
		})
	}
}

func TestStartGame(t *testing.T) {
	_, ts := newTestServer(t)
	mr := startGame(t, ts)

	require.True(t, mr.Success)
	require.Equal(t, game.DefaultBoardSize, mr.State.BoardSize)
	require.Equal(t, 1, mr.State.CurrentPlayer, "the human seat opens")
	require.False(t, mr.State.GameOver)
	require.NotNil(t, mr.State.Hints)
	require.True(t, mr.State.Players[1].Bot)

	resp, err := http.Get(ts.URL + "/api/state")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var st engine.Status
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&st))
	require.Zero(t, st.Turn)
}

func TestStartGameOverrides(t *testing.T) {
	_, ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/start", startRequest{BoardSize: 5, Players: 2})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	mr := decodeMove(t, resp)
	require.Equal(t, 5, mr.State.BoardSize)
}

func TestStartGameRejectsUnknownOpponent(t *testing.T) {
	_, ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/start", startRequest{Opponent: "psychic"})
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMoveRejectionsReportReasonCodes(t *testing.T) {
	_, ts := newTestServer(t)
	startGame(t, ts)

	cases := []struct {
		name, move, reason string
	}{
		{"off-board", "MOVE Z9", "InvalidCoordinate"},
		{"too far", "MOVE E5", "IllegalJumpGeometry"},
		{"gibberish", "CASTLE", "MalformedMove"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mr := decodeMove(t, postJSON(t, ts.URL+"/api/move", moveRequest{Move: tc.move}))
			require.False(t, mr.Success)
			require.Equal(t, tc.reason, mr.Reason)
			require.Zero(t, mr.State.Turn, "a rejected move leaves the match untouched")
		})
	}
}

func TestLegalMoveAdvancesTheGame(t *testing.T) {
	_, ts := newTestServer(t)
	startGame(t, ts)

	resp, err := http.Get(ts.URL + "/api/hints")
	require.NoError(t, err)
	defer resp.Body.Close()
	var hints engine.Hints
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&hints))
	require.NotEmpty(t, hints.Pawn)

	mr := decodeMove(t, postJSON(t, ts.URL+"/api/move", moveRequest{Move: hints.Pawn[0]}))
	require.True(t, mr.Success)
	require.Equal(t, 2, mr.State.Turn, "human move plus the bot's reply")
	require.Equal(t, 1, mr.State.CurrentPlayer)
	require.Len(t, mr.State.History, 2)
}

func TestWebsocketBroadcastsStatus(t *testing.T) {
	s, ts := newTestServer(t)
	done := make(chan struct{})
	defer close(done)
	go s.Hub().Run(done)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	defer conn.Close()

	startGame(t, ts)

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg wsMessage
	require.NoError(t, json.Unmarshal(raw, &msg))
	require.Equal(t, "status", msg.Type)
	var st engine.Status
	require.NoError(t, json.Unmarshal(msg.Payload, &st))
	require.Equal(t, game.DefaultBoardSize, st.BoardSize)
}
