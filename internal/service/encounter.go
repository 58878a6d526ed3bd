package service

import (
	"github.com/google/uuid"
	"github.com/tvqhuy/linhthu-arena/internal/game"
)

// NewCombatant instantiates one creature from its species template. Stats
// are copied from the config-backed species; level is informational for now
// and defaults to 1.
func NewCombatant(sp game.Species, side game.Side, level int) game.Combatant {
	if level < 1 {
		level = 1
	}
	return game.Combatant{
		CombatantUUID: uuid.NewString(),
		SpeciesName:   sp.Name,
		DisplayName:   sp.DisplayName,
		Element:       sp.Element,
		Level:         level,
		Side:          side,
		MaxHP:         sp.MaxHP,
		CurrentHP:     sp.MaxHP,
		Attack:        sp.Attack,
		Defense:       sp.Defense,
		Speed:         sp.Speed,
		Magic:         sp.Magic,
		CaptureRate:   sp.CaptureRate,
		Skill:         sp.Skill,
	}
}

// chooseEnemyAction picks the wild creature's move: attack the weakest living
// player combatant, using the species skill when it has real power behind
// it. Target choice is deterministic (lowest HP, ties by slot) so battles
// replay identically under a fixed random source.
func chooseEnemyAction(participants []*game.Combatant, actor *game.Combatant) (game.ActionType, string, *game.Skill) {
	var target *game.Combatant
	for _, c := range participants {
		if c.Side != game.SidePlayer || !c.CanAct() {
			continue
		}
		if target == nil || c.CurrentHP < target.CurrentHP {
			target = c
		}
	}
	if target == nil {
		return game.ActionAttack, "", nil
	}
	var skill *game.Skill
	if actor.Skill.Name != "" && actor.Skill.Power > 0 {
		s := actor.Skill
		skill = &s
	}
	return game.ActionAttack, target.CombatantUUID, skill
}
