package engine

import (
	"math"

	"github.com/tvqhuy/linhthu-arena/internal/game"
)

// criticalChance is the fixed probability of a critical hit.
const criticalChance = 0.10

// DamageResult describes the outcome of one attack action. It is returned to
// the caller and never stored.
type DamageResult struct {
	Damage     int     `json:"damage"`
	Multiplier float64 `json:"multiplier"`
	Critical   bool    `json:"critical"`
}

// ResolveDamage computes the HP loss inflicted by one attack. The skill, when
// present, adds its power to the attacker's base attack and may override the
// element used for the advantage lookup. criticalRoll must return values in
// [0,1); injecting it keeps the resolver deterministic for tests.
//
// The damage floor of 1 guarantees every hit has an effect; the critical
// doubling applies after the floor.
func ResolveDamage(attacker, defender *game.Combatant, skill *game.Skill, criticalRoll func() float64) DamageResult {
	base := attacker.Attack
	element := attacker.Element
	if skill != nil {
		base += skill.Power
		if skill.Element != "" {
			element = skill.Element
		}
	}

	mult := Advantage(element, defender.Element)
	scaled := int(math.Floor(float64(base) * mult))
	defended := scaled - defender.Defense/2
	if defended < 1 {
		defended = 1
	}

	crit := criticalRoll() < criticalChance
	damage := defended
	if crit {
		damage *= 2
	}
	return DamageResult{Damage: damage, Multiplier: mult, Critical: crit}
}
