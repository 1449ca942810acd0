package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ArowuTest/bingo-caller/internal/services"
	"github.com/gin-gonic/gin"
)

// GameHandler handles game-related HTTP requests
type GameHandler struct {
	drawService services.DrawService
	sessions    *SessionResolver
}

// NewGameHandler creates a new GameHandler
func NewGameHandler(drawService services.DrawService, sessions *SessionResolver) *GameHandler {
	return &GameHandler{
		drawService: drawService,
		sessions:    sessions,
	}
}

// GetGame handles GET /game
func (h *GameHandler) GetGame(c *gin.Context) {
	game, err := h.drawService.GetGame(c.Request.Context(), h.sessions.Resolve(c))
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load game"})
		return
	}
	c.JSON(http.StatusOK, game)
}

// Draw handles POST /game/draw
func (h *GameHandler) Draw(c *gin.Context) {
	result, err := h.drawService.Draw(c.Request.Context(), h.sessions.Resolve(c))
	if err != nil {
		if errors.Is(err, services.ErrExhausted) {
			c.JSON(http.StatusConflict, gin.H{"error": "All numbers have been drawn!"})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to draw number"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Reset handles POST /game/reset
func (h *GameHandler) Reset(c *gin.Context) {
	game, err := h.drawService.Reset(c.Request.Context(), h.sessions.Resolve(c))
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset game"})
		return
	}
	c.JSON(http.StatusOK, game)
}

// GetLabel handles GET /labels/:number
func (h *GameHandler) GetLabel(c *gin.Context) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Number must be an integer"})
		return
	}
	letter, err := services.Label(number)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Number must be between 1 and 75"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"number":     number,
		"letter":     letter,
		"statusText": services.StatusText(number),
	})
}
