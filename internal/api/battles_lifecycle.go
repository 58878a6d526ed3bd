package api

import (
	"math/rand"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tvqhuy/linhthu-arena/internal/constants"
	"github.com/tvqhuy/linhthu-arena/internal/game"
	"github.com/tvqhuy/linhthu-arena/internal/logging"
	"github.com/tvqhuy/linhthu-arena/internal/service"
)

type CreateBattlePayload struct {
	// Party lists the species names of the trainer's creatures, 1 to 3.
	Party       []string `json:"party"`
	TrainerName string   `json:"trainer_name"`
}

// CreateBattle creates a new wild encounter for the authenticated trainer:
// the submitted party faces a randomly drawn enemy party of the same size.
func (h *BattleHandler) CreateBattle(c *gin.Context) {
	var req CreateBattlePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	// Derive identity from session
	trainerEmail := ""
	if v, ok := c.Get("userEmail"); ok {
		trainerEmail, _ = v.(string)
	}
	if v, ok := c.Get("userName"); ok && req.TrainerName == "" {
		req.TrainerName, _ = v.(string)
	}

	if len(req.Party) < 1 || len(req.Party) > 3 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrPartySizeRange})
		return
	}

	partySpecies, err := h.repo.GetSpeciesByNames(req.Party)
	if err != nil || len(partySpecies) != len(req.Party) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrUnknownSpecies})
		return
	}

	allSpecies, err := h.repo.GetSpecies()
	if err != nil || len(allSpecies) == 0 {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchSpecies})
		return
	}

	battle := game.Battle{
		BattleCode:   generateBattleCode(),
		TrainerEmail: trainerEmail,
		TrainerName:  req.TrainerName,
		State:        game.StateIdle,
	}
	for _, sp := range partySpecies {
		battle.Combatants = append(battle.Combatants, service.NewCombatant(sp, game.SidePlayer, 1))
	}
	for range req.Party {
		sp := allSpecies[rand.Intn(len(allSpecies))]
		battle.Combatants = append(battle.Combatants, service.NewCombatant(sp, game.SideEnemy, 1))
	}

	// Upsert trainer profile (name/email)
	_ = h.repo.UpsertTrainer(trainerEmail, req.TrainerName)

	if err := h.repo.CreateBattle(&battle); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateBattle})
		return
	}
	if err := service.StartBattle(h.repo, &battle, h.actionTimeout, h.roll); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateBattle})
		return
	}

	logging.Info("battle created", logging.Fields{
		constants.LogFieldBattleID:   battle.ID,
		constants.LogFieldBattleCode: battle.BattleCode,
		constants.LogFieldTrainer:    req.TrainerName,
	})
	c.JSON(http.StatusCreated, gin.H{
		"battle_id":   battle.ID,
		"battle_code": battle.BattleCode,
		"message":     battle.Message,
	})
}
