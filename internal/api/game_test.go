package api

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"

	"github.com/gmkornilov/chess-play-backend/internal/game"
	"github.com/gmkornilov/chess-play-backend/pkg/board"
	"github.com/gmkornilov/chess-play-backend/pkg/notation"
	"github.com/gmkornilov/chess-play-backend/pkg/rules"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type firstMove struct {
	block bool
}

func (f *firstMove) Suggest(ctx context.Context, pos board.Position) (board.Move, error) {
	if f.block {
		<-ctx.Done()
		return board.Move{}, ctx.Err()
	}
	return rules.LegalMoves(pos)[0], nil
}

func newTestRouter(supplier game.MoveSupplier, mode game.Mode) *gin.Engine {
	session := game.New(supplier, game.Options{
		Mode:         mode,
		AgentTimeout: 20 * time.Millisecond,
		DrawRules:    rules.DrawRules{Automatic: true},
		Logger:       log.New(io.Discard, "", 0),
	})
	return NewRouter(NewGameApi(session))
}

func do(t *testing.T, r http.Handler, method, path, body string) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	out := map[string]interface{}{}
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("%s %s: bad JSON %q: %v", method, path, w.Body.String(), err)
		}
	}
	return w.Code, out
}

func TestFen(t *testing.T) {
	r := newTestRouter(nil, game.Human)
	code, body := do(t, r, http.MethodGet, "/fen", "")
	if code != http.StatusOK {
		t.Fatalf("GET /fen = %d", code)
	}
	if body["fen"] != notation.StartFEN {
		t.Errorf("fen = %v, want start", body["fen"])
	}
	if diff := cmp.Diff([]interface{}{}, body["history"]); diff != "" {
		t.Errorf("history mismatch (-want +got):\n%s", diff)
	}
}

func TestMoveStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"legal", `{"from":"e2","to":"e4"}`, http.StatusOK},
		{"illegal", `{"from":"e2","to":"e5"}`, http.StatusUnprocessableEntity},
		{"malformed square", `{"from":"x9","to":"e4"}`, http.StatusBadRequest},
		{"missing field", `{"from":"e2"}`, http.StatusBadRequest},
		{"not json", `e2e4`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(nil, game.Human)
			code, body := do(t, r, http.MethodPost, "/move", tt.body)
			if code != tt.want {
				t.Errorf("POST /move %s = %d, want %d (%v)", tt.body, code, tt.want, body)
			}
		})
	}
}

func TestMoveAgainstAgent(t *testing.T) {
	r := newTestRouter(&firstMove{}, game.VsAgent)
	code, body := do(t, r, http.MethodPost, "/move", `{"from":"e2","to":"e4","promotion":""}`)
	if code != http.StatusOK {
		t.Fatalf("POST /move = %d (%v)", code, body)
	}
	if body["agent_move"] == nil || body["turn"] != "white" {
		t.Errorf("body = %v, want agent reply and white to move", body)
	}
	history, _ := body["history"].([]interface{})
	if len(history) != 2 {
		t.Errorf("history = %v, want two moves", body["history"])
	}
}

func TestAgentTimeoutAndRetry(t *testing.T) {
	sup := &firstMove{block: true}
	r := newTestRouter(sup, game.VsAgent)

	code, body := do(t, r, http.MethodPost, "/move", `{"from":"e2","to":"e4"}`)
	if code != http.StatusGatewayTimeout {
		t.Fatalf("POST /move = %d, want 504 (%v)", code, body)
	}
	if body["state"] != "awaiting_agent_reply" {
		t.Errorf("state = %v, want awaiting_agent_reply", body["state"])
	}

	if code, _ := do(t, r, http.MethodPost, "/move", `{"from":"d2","to":"d4"}`); code != http.StatusConflict {
		t.Errorf("POST /move while pending = %d, want 409", code)
	}

	sup.block = false
	if code, body := do(t, r, http.MethodPost, "/agent", ""); code != http.StatusOK {
		t.Errorf("POST /agent = %d (%v)", code, body)
	}
	if code, _ := do(t, r, http.MethodPost, "/agent", ""); code != http.StatusConflict {
		t.Errorf("POST /agent without pending turn = %d, want 409", code)
	}
}

func TestGameOverConflict(t *testing.T) {
	r := newTestRouter(nil, game.Human)
	for _, mv := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		do(t, r, http.MethodPost, "/move", `{"from":"`+mv[:2]+`","to":"`+mv[2:]+`"}`)
	}
	_, body := do(t, r, http.MethodGet, "/fen", "")
	if body["reason"] != "checkmate" || body["winner"] != "black" {
		t.Fatalf("GET /fen = %v, want checkmate by black", body)
	}
	if code, _ := do(t, r, http.MethodPost, "/move", `{"from":"a2","to":"a3"}`); code != http.StatusConflict {
		t.Errorf("POST /move after mate = %d, want 409", code)
	}
}

func TestModeAndReset(t *testing.T) {
	r := newTestRouter(nil, game.Human)
	do(t, r, http.MethodPost, "/move", `{"from":"e2","to":"e4"}`)

	code, body := do(t, r, http.MethodPost, "/mode", `{"mode":"ai"}`)
	if code != http.StatusOK || body["mode"] != "ai" {
		t.Errorf("POST /mode = %d %v", code, body)
	}
	if _, body := do(t, r, http.MethodGet, "/fen", ""); body["fen"] != notation.StartFEN || body["mode"] != "ai" {
		t.Errorf("after mode change: %v", body)
	}

	if code, _ := do(t, r, http.MethodPost, "/mode", `{"mode":"robot"}`); code != http.StatusBadRequest {
		t.Errorf("POST /mode robot = %d, want 400", code)
	}

	code, body = do(t, r, http.MethodPost, "/reset", "")
	if code != http.StatusOK || body["message"] != "Game reset" {
		t.Errorf("POST /reset = %d %v", code, body)
	}
}

func TestLegalAndPgn(t *testing.T) {
	r := newTestRouter(nil, game.Human)
	_, body := do(t, r, http.MethodGet, "/legal", "")
	moves, _ := body["moves"].([]interface{})
	if len(moves) != 20 {
		t.Errorf("GET /legal returned %d moves, want 20", len(moves))
	}

	do(t, r, http.MethodPost, "/move", `{"from":"e2","to":"e4"}`)
	req := httptest.NewRequest(http.MethodGet, "/pgn", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "1. e4 *") {
		t.Errorf("GET /pgn = %d %q", w.Code, w.Body.String())
	}
}
