package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gmkornilov/chess-play-backend/internal/game"
)

type GameApi struct {
	Session *game.Session
}

func NewGameApi(session *game.Session) *GameApi {
	return &GameApi{session}
}

type moveRequest struct {
	From      string `json:"from" binding:"required"`
	To        string `json:"to" binding:"required"`
	Promotion string `json:"promotion"`
}

type modeRequest struct {
	Mode string `json:"mode" binding:"required"`
}

type moveResponse struct {
	game.Snapshot
	Outcome   string `json:"outcome"`
	AgentMove string `json:"agent_move,omitempty"`
	Message   string `json:"message"`
	Error     string `json:"error,omitempty"`
}

// Register mounts the game routes on r.
func (g *GameApi) Register(r gin.IRoutes) {
	r.GET("/fen", g.Fen)
	r.GET("/legal", g.Legal)
	r.GET("/pgn", g.Pgn)
	r.POST("/move", g.Move)
	r.POST("/agent", g.Agent)
	r.POST("/mode", g.Mode)
	r.POST("/reset", g.Reset)
}

func NewRouter(g *GameApi) *gin.Engine {
	r := gin.Default()
	g.Register(r)
	return r
}

func (g *GameApi) Fen(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, g.Session.Snapshot())
}

func (g *GameApi) Legal(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"moves": g.Session.LegalMoves(),
	})
}

func (g *GameApi) Pgn(ctx *gin.Context) {
	text, err := g.Session.PGN()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}
	ctx.Data(http.StatusOK, "application/x-chess-pgn", []byte(text))
}

func (g *GameApi) Move(ctx *gin.Context) {
	var req moveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	res, err := g.Session.ProposeMove(ctx.Request.Context(), req.From, req.To, req.Promotion)
	move := req.From + req.To + req.Promotion
	if err != nil {
		ctx.JSON(statusFor(err), moveResponse{
			Snapshot: res.Snapshot,
			Outcome:  res.Outcome.String(),
			Message:  failureMessage(move, err),
			Error:    err.Error(),
		})
		return
	}

	msg := "Move played: " + move
	if res.AgentMove != "" {
		msg = fmt.Sprintf("You moved %s, AI moved %s", move, res.AgentMove)
	}
	if res.Outcome == game.Over {
		msg += ". Game over: " + res.Snapshot.Reason
	}
	ctx.JSON(http.StatusOK, moveResponse{
		Snapshot:  res.Snapshot,
		Outcome:   res.Outcome.String(),
		AgentMove: res.AgentMove,
		Message:   msg,
	})
}

func (g *GameApi) Agent(ctx *gin.Context) {
	res, err := g.Session.RequestAgentMove(ctx.Request.Context())
	if err != nil {
		ctx.JSON(statusFor(err), moveResponse{
			Snapshot: res.Snapshot,
			Outcome:  res.Outcome.String(),
			Message:  "Agent move failed",
			Error:    err.Error(),
		})
		return
	}
	ctx.JSON(http.StatusOK, moveResponse{
		Snapshot:  res.Snapshot,
		Outcome:   res.Outcome.String(),
		AgentMove: res.AgentMove,
		Message:   "AI moved " + res.AgentMove,
	})
}

func (g *GameApi) Mode(ctx *gin.Context) {
	var req modeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}
	mode, err := game.ParseMode(req.Mode)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}
	g.Session.SetMode(mode)
	ctx.JSON(http.StatusOK, gin.H{
		"mode": mode.String(),
	})
}

func (g *GameApi) Reset(ctx *gin.Context) {
	g.Session.Reset()
	ctx.JSON(http.StatusOK, gin.H{
		"message": "Game reset",
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, game.ErrMalformedNotation):
		return http.StatusBadRequest
	case errors.Is(err, game.ErrIllegalMove):
		return http.StatusUnprocessableEntity
	case errors.Is(err, game.ErrGameOver),
		errors.Is(err, game.ErrAgentPending),
		errors.Is(err, game.ErrNoAgentTurn):
		return http.StatusConflict
	case errors.Is(err, game.ErrSupplierTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, game.ErrSupplierFailed):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func failureMessage(move string, err error) string {
	switch {
	case errors.Is(err, game.ErrIllegalMove), errors.Is(err, game.ErrMalformedNotation):
		return "Illegal move!"
	case errors.Is(err, game.ErrGameOver):
		return "Game is over"
	case errors.Is(err, game.ErrAgentPending):
		return "Waiting for the AI to move"
	}
	return fmt.Sprintf("You moved %s, AI failed to reply", move)
}
