package service

import (
	"time"

	"github.com/tvqhuy/linhthu-arena/internal/game"
	"github.com/tvqhuy/linhthu-arena/internal/logging"
)

// HandleTimedOutBattle forfeits a battle whose trainer stopped acting before
// the action deadline. The battle is concluded as fled with no winner and
// does not count toward trainer stats.
func HandleTimedOutBattle(repo BattleRepo, b *game.Battle) error {
	if b.State != game.StateInProgress {
		return nil
	}
	fresh, err := repo.GetBattleByID(b.ID)
	if err != nil || fresh == nil {
		return err
	}
	if fresh.State != game.StateInProgress {
		return nil
	}

	fresh.State = game.StateFled
	fresh.Winner = ""
	fresh.Message = "Battle ended due to inactivity"
	fresh.LastTurnSummary = "Turn timed out: no action was submitted within the allotted time."
	fresh.StatsCounted = true
	fresh.ActionDeadline = time.Time{}
	logging.Info("battle timed out; marking as fled", logging.Fields{"battle_id": fresh.ID})
	return repo.UpdateBattle(fresh)
}
