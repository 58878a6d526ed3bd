package service

import (
	"errors"
	"strings"
	"time"

	"github.com/tvqhuy/linhthu-arena/internal/engine"
	"github.com/tvqhuy/linhthu-arena/internal/game"
	"github.com/tvqhuy/linhthu-arena/internal/storage"
)

var ErrInvalidParty = errors.New("each side needs at least one able combatant")

// StartBattle runs the server-side initialization for a freshly created
// battle: it validates both parties through the engine, stamps the initial
// state, round and action deadline, and persists the battle.
func StartBattle(repo storage.Repository, b *game.Battle, actionTimeout time.Duration, roll func() float64) error {
	s := engine.NewSession(roll)
	if err := s.Start(b.PlayerParty(), b.EnemyParty()); err != nil {
		if errors.Is(err, engine.ErrInvalidParty) {
			return ErrInvalidParty
		}
		return err
	}

	b.State = s.State()
	b.RoundCount = s.Round()
	b.TurnCursor = s.Cursor()
	b.Winner = ""
	b.Message = "A wild " + enemyNames(b) + " appeared. Choose your action."
	b.ActionDeadline = time.Now().Add(actionTimeout)
	b.StatsCounted = false

	return repo.UpdateBattle(b)
}

func enemyNames(b *game.Battle) string {
	names := make([]string, 0, 3)
	for _, c := range b.EnemyParty() {
		names = append(names, c.DisplayName)
	}
	return strings.Join(names, ", ")
}
