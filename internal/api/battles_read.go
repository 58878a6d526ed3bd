package api

import (
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tvqhuy/linhthu-arena/internal/constants"
	"github.com/tvqhuy/linhthu-arena/internal/dedupe"
	"github.com/tvqhuy/linhthu-arena/internal/game"
)

// GetBattle returns a battle by its shareable code. Only the owning trainer
// may read it.
func (h *BattleHandler) GetBattle(c *gin.Context) {
	code := normalizeBattleCode(c.Param("battleCode"))
	if code == "" || !battleCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleCode})
		return
	}
	b, err := h.repo.FindBattleByCode(code)
	if err != nil || b == nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		return
	}
	email := ""
	if v, ok := c.Get("userEmail"); ok {
		email, _ = v.(string)
	}
	if b.TrainerEmail != email {
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrNotYourBattle})
		return
	}
	out, err := MarshalForContext(c, b)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedEncodeBattle})
		return
	}
	c.JSON(http.StatusOK, out)
}

// ListLeaderboard returns the top trainers by wins (desc), limited to top 10
// by default. Concurrent identical queries are collapsed through the shared
// singleflight group.
func (h *BattleHandler) ListLeaderboard(c *gin.Context) {
	// optional ?limit=N
	limit := 10
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	v, err, _ := dedupe.LeaderboardGroup.Do(fmt.Sprintf("top:%d", limit), func() (interface{}, error) {
		return h.repo.GetTopTrainers(limit)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLeaderboard})
		return
	}
	trainers, _ := v.([]game.Trainer)
	out, err := MarshalForContext(c, trainers)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLeaderboard})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetTrainerStats returns aggregated stats for the authenticated trainer.
func (h *BattleHandler) GetTrainerStats(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		if v, ok := c.Get("userEmail"); ok {
			email, _ = v.(string)
		}
	}
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrEmailRequired})
		return
	}
	t, err := h.repo.GetStatsByEmail(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStats})
		return
	}
	c.JSON(http.StatusOK, t)
}

// UpdateTrainerProfile updates the authenticated trainer's display name.
func (h *BattleHandler) UpdateTrainerProfile(c *gin.Context) {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	// Require authenticated email from context (no fallbacks).
	email := ""
	if v, ok := c.Get("userEmail"); ok {
		email, _ = v.(string)
	}
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrEmailRequired})
		return
	}
	// Accept letters, marks, numbers, apostrophe, dot, hyphen and spaces,
	// length 4-40. Unicode-aware so Vietnamese names work.
	var trainerNameRegex = regexp.MustCompile(`^[\p{L}\p{M}\p{N}.'\- ]{4,40}$`)

	trimmed := strings.TrimSpace(body.Name)
	if !trainerNameRegex.MatchString(trimmed) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrTrainerNameInvalid})
		return
	}

	t, err := h.repo.GetStatsByEmail(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStats})
		return
	}
	t.Name = trimmed
	if err := h.repo.SaveTrainer(t); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateProfile})
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyStatus: "ok"})
}
