package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/tvqhuy/linhthu-arena/internal/game"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sqliteRepository struct {
	db *gorm.DB
	// configByName maps lowercase species name -> config definition (stats).
	configByName map[string]game.Species
	itemByName   map[string]game.CaptureItem
	cache        *LeaderboardCache
}

func NewSQLiteRepository(db *gorm.DB, configSpecies []game.Species, configItems []game.CaptureItem, cache *LeaderboardCache) Repository {
	m := make(map[string]game.Species, len(configSpecies))
	for _, s := range configSpecies {
		m[strings.ToLower(s.Name)] = s
	}
	im := make(map[string]game.CaptureItem, len(configItems))
	for _, it := range configItems {
		im[strings.ToLower(it.Name)] = it
	}
	return &sqliteRepository{db: db, configByName: m, itemByName: im, cache: cache}
}

// applySpeciesConfig overrides persisted species fields from the config
// (config is the source of truth for all stats).
func (r *sqliteRepository) applySpeciesConfig(s *game.Species) {
	if conf, ok := r.configByName[strings.ToLower(s.Name)]; ok {
		s.DisplayName = conf.DisplayName
		s.Element = conf.Element
		s.MaxHP = conf.MaxHP
		s.Attack = conf.Attack
		s.Defense = conf.Defense
		s.Speed = conf.Speed
		s.Magic = conf.Magic
		s.CaptureRate = conf.CaptureRate
		s.Skill = conf.Skill
	}
}

// applyCombatantConfig rehydrates the non-persisted combatant fields
// (capture rate and skill) from the species config.
func (r *sqliteRepository) applyCombatantConfig(c *game.Combatant) {
	if conf, ok := r.configByName[strings.ToLower(c.SpeciesName)]; ok {
		c.CaptureRate = conf.CaptureRate
		c.Skill = conf.Skill
	}
}

func (r *sqliteRepository) GetSpecies() ([]game.Species, error) {
	var species []game.Species
	if err := r.db.Find(&species).Error; err != nil {
		return nil, err
	}
	for i := range species {
		r.applySpeciesConfig(&species[i])
	}
	return species, nil
}

func (r *sqliteRepository) GetSpeciesByName(name string) (*game.Species, error) {
	var s game.Species
	if err := r.db.Where("lower(name) = ?", strings.ToLower(name)).First(&s).Error; err != nil {
		return nil, err
	}
	r.applySpeciesConfig(&s)
	return &s, nil
}

func (r *sqliteRepository) GetSpeciesByNames(names []string) ([]game.Species, error) {
	out := make([]game.Species, 0, len(names))
	for _, n := range names {
		s, err := r.GetSpeciesByName(n)
		if err != nil {
			return nil, fmt.Errorf("species %q: %w", n, err)
		}
		out = append(out, *s)
	}
	return out, nil
}

func (r *sqliteRepository) GetCaptureItem(name string) (*game.CaptureItem, error) {
	if it, ok := r.itemByName[strings.ToLower(name)]; ok {
		return &it, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *sqliteRepository) GetCaptureItems() ([]game.CaptureItem, error) {
	out := make([]game.CaptureItem, 0, len(r.itemByName))
	for _, it := range r.itemByName {
		out = append(out, it)
	}
	return out, nil
}

func (r *sqliteRepository) CreateBattle(b *game.Battle) error {
	return r.db.Create(b).Error
}

func (r *sqliteRepository) GetBattleByID(id uint) (*game.Battle, error) {
	var b game.Battle
	if err := r.db.Preload("Combatants").First(&b, id).Error; err != nil {
		return nil, err
	}
	for i := range b.Combatants {
		r.applyCombatantConfig(&b.Combatants[i])
	}
	return &b, nil
}

func (r *sqliteRepository) FindBattleByCode(code string) (*game.Battle, error) {
	var b game.Battle
	if err := r.db.Preload("Combatants").Where("battle_code = ?", code).First(&b).Error; err != nil {
		return nil, err
	}
	for i := range b.Combatants {
		r.applyCombatantConfig(&b.Combatants[i])
	}
	return &b, nil
}

func (r *sqliteRepository) UpdateBattle(b *game.Battle) error {
	return r.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(b).Error
}

func (r *sqliteRepository) FindTimedOutBattles(now time.Time) ([]game.Battle, error) {
	var battles []game.Battle
	err := r.db.
		Where("state = ? AND action_deadline > ? AND action_deadline <= ?", game.StateInProgress, time.Time{}, now).
		Find(&battles).Error
	if err != nil {
		return nil, err
	}
	return battles, nil
}

func (r *sqliteRepository) UpsertTrainer(email, name string) error {
	t := game.Trainer{Email: email, Name: name}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"name"}),
	}).Create(&t).Error
}

func (r *sqliteRepository) UpdateStatsOnBattleEnd(b *game.Battle, captures int) error {
	if b.TrainerEmail == "" {
		return nil
	}
	var t game.Trainer
	if err := r.db.Where("email = ?", b.TrainerEmail).First(&t).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			t = game.Trainer{Email: b.TrainerEmail, Name: b.TrainerName}
		} else {
			return err
		}
	}
	t.BattlesPlayed++
	if b.State == game.StatePlayerWin {
		t.Wins++
	}
	t.Captures += captures
	if err := r.db.Save(&t).Error; err != nil {
		return err
	}
	// Standings changed; drop the cached leaderboard.
	if r.cache != nil {
		r.cache.Invalidate()
	}
	return nil
}

func (r *sqliteRepository) GetStatsByEmail(email string) (*game.Trainer, error) {
	var t game.Trainer
	if err := r.db.Where("email = ?", email).First(&t).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return &game.Trainer{Email: email}, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *sqliteRepository) SaveTrainer(t *game.Trainer) error {
	return r.db.Save(t).Error
}

// GetTopTrainers returns top N trainers ordered by wins desc, then captures
// desc, then battles played desc. Results are served from the redis cache
// when one is configured.
func (r *sqliteRepository) GetTopTrainers(limit int) ([]game.Trainer, error) {
	if limit <= 0 {
		limit = 10
	}
	if r.cache != nil {
		if trainers, ok := r.cache.Get(limit); ok {
			return trainers, nil
		}
	}
	var trainers []game.Trainer
	if err := r.db.Model(&game.Trainer{}).
		Order("wins DESC").
		Order("captures DESC").
		Order("battles_played DESC").
		Limit(limit).
		Find(&trainers).Error; err != nil {
		return nil, err
	}
	if r.cache != nil {
		r.cache.Set(limit, trainers)
	}
	return trainers, nil
}
