package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tvqhuy/linhthu-arena/internal/constants"
	"github.com/tvqhuy/linhthu-arena/internal/engine"
	"github.com/tvqhuy/linhthu-arena/internal/game"
	"github.com/tvqhuy/linhthu-arena/internal/logging"
	"github.com/tvqhuy/linhthu-arena/internal/service"
)

type SubmitActionPayload struct {
	Action   string `json:"action"`
	ActorID  string `json:"actor_id"`
	TargetID string `json:"target_id"`
	UseSkill bool   `json:"use_skill"`
	ItemName string `json:"item_name"`
}

// SubmitAction applies the trainer's action for the current turn. Enemy turns
// are auto-played server-side, so the response always reflects a battle that
// is either waiting for the player again or concluded.
func (h *BattleHandler) SubmitAction(c *gin.Context) {
	code := normalizeBattleCode(c.Param("battleCode"))
	if code == "" || !battleCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleCode})
		return
	}
	var req SubmitActionPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
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

	in := service.ActionInput{
		Type:     game.ActionType(req.Action),
		ActorID:  req.ActorID,
		TargetID: req.TargetID,
		UseSkill: req.UseSkill,
		ItemName: req.ItemName,
	}

	updated, res, err := service.SubmitAction(h.repo, b.ID, email, in, h.actionTimeout, h.roll)
	if err != nil {
		status, msg := actionErrorStatus(err)
		c.JSON(status, gin.H{constants.JSONKeyError: msg, constants.JSONKeyDetails: err.Error()})
		return
	}

	logging.Info("action applied", logging.Fields{
		constants.LogFieldBattleID: updated.ID,
		constants.LogFieldState:    updated.State,
	})

	out, err := MarshalForContext(c, updated)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedEncodeBattle})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"battle": out,
		"result": res,
	})
}

// actionErrorStatus maps service and engine errors onto HTTP statuses. Rule
// violations (wrong turn, bad target) are client errors; ownership and
// lifecycle problems get their own statuses.
func actionErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrBattleNotFound):
		return http.StatusNotFound, constants.ErrBattleNotFound
	case errors.Is(err, service.ErrNotYourBattle):
		return http.StatusForbidden, constants.ErrNotYourBattle
	case errors.Is(err, service.ErrBattleNotInProgress):
		return http.StatusConflict, constants.ErrBattleNotInProgress
	case errors.Is(err, service.ErrUnknownItem):
		return http.StatusBadRequest, constants.ErrUnknownCaptureItem
	case errors.Is(err, engine.ErrUnknownActor),
		errors.Is(err, engine.ErrUnknownTarget),
		errors.Is(err, engine.ErrTargetIncapacitated),
		errors.Is(err, engine.ErrOutOfTurn),
		errors.Is(err, engine.ErrInvalidAction):
		return http.StatusBadRequest, constants.ErrActionRejected
	default:
		return http.StatusInternalServerError, constants.ErrFailedUpdateBattle
	}
}
