package api

import (
	"time"

	"github.com/tvqhuy/linhthu-arena/internal/storage"
)

// BattleHandler groups all battle-related HTTP handlers.
type BattleHandler struct {
	repo          storage.Repository
	actionTimeout time.Duration
	// roll is the random source in [0,1) shared with the battle engine;
	// nil selects math/rand. Tests inject a fixed source.
	roll func() float64
}

// NewBattleHandler creates a new BattleHandler with the given repository and
// configured per-turn action timeout.
func NewBattleHandler(repo storage.Repository, actionTimeout time.Duration) *BattleHandler {
	return &BattleHandler{repo: repo, actionTimeout: actionTimeout}
}
