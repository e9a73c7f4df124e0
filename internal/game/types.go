package game

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Mode selects who answers the human's moves.
type Mode int

const (
	// Human means both sides are proposed by callers.
	Human Mode = iota
	// VsAgent means the external move supplier plays Black.
	VsAgent
)

func (m Mode) String() string {
	if m == VsAgent {
		return "ai"
	}
	return "human"
}

// ParseMode accepts "human", and "ai" or "agent" for VsAgent.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "human":
		return Human, nil
	case "ai", "agent":
		return VsAgent, nil
	}
	return Human, fmt.Errorf("%q: %w", name, ErrUnknownMode)
}

// State is the session's position in its turn cycle.
type State int

const (
	AwaitingMove State = iota
	AwaitingAgentReply
	GameOver
)

func (s State) String() string {
	switch s {
	case AwaitingAgentReply:
		return "awaiting_agent_reply"
	case GameOver:
		return "game_over"
	}
	return "awaiting_move"
}

// Outcome classifies the answer to a proposed move.
type Outcome int

const (
	Applied Outcome = iota
	Illegal
	Over
)

func (o Outcome) String() string {
	switch o {
	case Illegal:
		return "illegal"
	case Over:
		return "game_over"
	}
	return "applied"
}

// Snapshot is the serialisable view of the current game.
type Snapshot struct {
	ID      string   `json:"id"`
	FEN     string   `json:"fen"`
	History []string `json:"history"`
	Mode    string   `json:"mode"`
	State   string   `json:"state"`
	Reason  string   `json:"reason,omitempty"`
	Winner  string   `json:"winner,omitempty"`
	Turn    string   `json:"turn"`
	InCheck bool     `json:"in_check"`
}

func (s Snapshot) String() string {
	j, _ := json.MarshalIndent(s, "", "\t")
	return string(j)
}

// Result is returned by ProposeMove and RequestAgentMove. Snapshot always
// reflects the session after the call, including failed calls.
type Result struct {
	Outcome   Outcome
	AgentMove string
	Snapshot  Snapshot
}
