package game

import (
	"errors"
	"fmt"

	"github.com/gmkornilov/chess-play-backend/pkg/board"
	"github.com/gmkornilov/chess-play-backend/pkg/notation"
)

// Sentinel errors returned by Session; the transport layer maps them to status codes.
var (
	// ErrMalformedNotation is returned for unparseable square or promotion text.
	ErrMalformedNotation = notation.ErrMalformedNotation

	// ErrIllegalMove is returned for a well-formed move outside the legal set.
	ErrIllegalMove = errors.New("illegal move")

	ErrGameOver     = errors.New("game is over")
	ErrAgentPending = errors.New("agent reply pending")
	ErrNoAgentTurn  = errors.New("no agent turn pending")
	ErrUnknownMode  = errors.New("unknown mode")

	// ErrSupplierTimeout and ErrSupplierFailed leave the session at the
	// position before the agent turn; the caller may retry.
	ErrSupplierTimeout = errors.New("move supplier timed out")
	ErrSupplierFailed  = errors.New("move supplier failed")

	// ErrContractViolation means the supplier proposed an illegal move.
	// It indicates a defect in the supplier, not bad user input.
	ErrContractViolation = errors.New("move supplier broke its contract")
)

// ContractViolationError records the offending move and the position it was
// proposed for.
type ContractViolationError struct {
	Move board.Move
	FEN  string
}

func (e *ContractViolationError) Error() string {
	return fmt.Sprintf("supplier proposed %s in %q: %v", e.Move, e.FEN, ErrContractViolation)
}

// Unwrap makes errors.Is(err, ErrContractViolation) hold.
func (e *ContractViolationError) Unwrap() error {
	return ErrContractViolation
}
