package storage

import (
	"time"

	"github.com/tvqhuy/linhthu-arena/internal/game"
)

type Repository interface {
	GetSpecies() ([]game.Species, error)
	// GetSpeciesByName returns a species by its name (case-insensitive).
	GetSpeciesByName(name string) (*game.Species, error)
	GetSpeciesByNames(names []string) ([]game.Species, error)
	// GetCaptureItem resolves a config-defined capture charm by name.
	GetCaptureItem(name string) (*game.CaptureItem, error)
	GetCaptureItems() ([]game.CaptureItem, error)

	CreateBattle(b *game.Battle) error
	GetBattleByID(id uint) (*game.Battle, error)
	FindBattleByCode(code string) (*game.Battle, error)
	UpdateBattle(b *game.Battle) error
	// FindTimedOutBattles returns battles that are currently in progress
	// and whose action deadline is at or before the provided time. The
	// caller decides how to resolve them (forfeit due to inactivity).
	FindTimedOutBattles(now time.Time) ([]game.Battle, error)

	UpsertTrainer(email, name string) error
	// UpdateStatsOnBattleEnd bumps the owning trainer's aggregates when a
	// battle concludes: battles played always, wins on player victory,
	// plus the number of creatures captured during the battle.
	UpdateStatsOnBattleEnd(b *game.Battle, captures int) error
	GetStatsByEmail(email string) (*game.Trainer, error)
	SaveTrainer(t *game.Trainer) error
	// Leaderboard
	GetTopTrainers(limit int) ([]game.Trainer, error)
}
