package service

import (
	"errors"

	"github.com/tvqhuy/linhthu-arena/internal/game"
)

// BattleRepo is the narrow repository surface the battle services need.
// The full storage.Repository satisfies it; tests supply hand-written mocks.
type BattleRepo interface {
	GetBattleByID(id uint) (*game.Battle, error)
	UpdateBattle(b *game.Battle) error
	UpdateStatsOnBattleEnd(b *game.Battle, captures int) error
	GetCaptureItem(name string) (*game.CaptureItem, error)
}

var ErrBattleNotFound = errors.New("battle not found")
