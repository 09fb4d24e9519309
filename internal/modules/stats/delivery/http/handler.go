package http

import (
	statsService "anoa.com/jelajahpath/internal/modules/stats/service"
	"anoa.com/jelajahpath/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type StatsHandler struct {
	service statsService.StatsService
}

func NewStatsHandler(service statsService.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

func (h *StatsHandler) GetUserStats(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	stats, err := h.service.GetUserStats(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, stats)
}

// GetLeaderboard serves anonymous callers too; without a session the
// is_current_user flag simply never matches.
func (h *StatsHandler) GetLeaderboard(c *gin.Context) {
	var currentUserID *uuid.UUID
	if userID, err := response.GetUserID(c); err == nil {
		currentUserID = &userID
	}

	leaderboard, err := h.service.GetLeaderboard(c.Request.Context(), currentUserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, leaderboard)
}

func (h *StatsHandler) GetRewards(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	rewards, err := h.service.GetRewards(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, rewards)
}
