package game

import (
	"time"

	"gorm.io/gorm"
)

// Side marks which party a combatant fights for.
type Side string

const (
	SidePlayer Side = "player"
	SideEnemy  Side = "enemy"
)

// Battle states. A battle is created directly into StateInProgress by the
// start service; StateIdle only exists for rows that failed to start.
const (
	StateIdle       = "idle"
	StateInProgress = "in_progress"
	StatePlayerWin  = "player_win"
	StateEnemyWin   = "enemy_win"
	StateFled       = "fled"
)

// ActionType is a player's (or the enemy AI's) chosen action for one turn.
// Using a dedicated type instead of plain string makes code safer and
// self-documenting.
type ActionType string

const (
	ActionAttack  ActionType = "attack"
	ActionCapture ActionType = "capture"
	ActionFlee    ActionType = "flee"
)

// Skill is the optional special move of a species. Power is added to the
// attacker's base attack before the element multiplier; the skill element,
// when set, replaces the wielder's own element for advantage lookup.
type Skill struct {
	Name        string  `json:"name" gorm:"-"`
	Description string  `json:"description" gorm:"-"`
	Power       int     `json:"power" gorm:"-"`
	Element     Element `json:"element" gorm:"-"`
}

type Species struct {
	gorm.Model
	Name string `json:"name"`
	// The following fields are configured via the server config
	// (linhthu_config.json) and should NOT be persisted in the database.
	// Mark them with `gorm:"-"` so GORM ignores them for schema/migration
	// purposes while keeping the fields available in-memory and in JSON
	// responses.
	DisplayName string  `json:"display_name" gorm:"-"`
	Element     Element `json:"element" gorm:"-"`
	MaxHP       int     `json:"max_hp" gorm:"-"`
	Attack      int     `json:"attack" gorm:"-"`
	Defense     int     `json:"defense" gorm:"-"`
	Speed       int     `json:"speed" gorm:"-"`
	Magic       int     `json:"magic" gorm:"-"`
	CaptureRate int     `json:"capture_rate" gorm:"-"`
	Skill       Skill   `json:"skill" gorm:"-"`
}

// TableName overrides the default GORM table name for Species so the
// persisted table is `species_templates` instead of the default `species`.
func (Species) TableName() string { return "species_templates" }

// CaptureItem is a capture charm (bùa) defined in the server config. It is
// never persisted; the config is the single source of truth.
type CaptureItem struct {
	Name        string  `json:"name"`
	DisplayName string  `json:"display_name"`
	Multiplier  float64 `json:"multiplier"`
}

// Combatant is one creature instance participating in a battle. A combatant
// that reaches 0 HP stays in the battle flagged incapacitated so it can still
// be referenced for end-of-battle state export.
type Combatant struct {
	gorm.Model
	BattleID      uint    `json:"-"`
	CombatantUUID string  `json:"combatant_uuid" gorm:"index"`
	SpeciesName   string  `json:"species_name"`
	DisplayName   string  `json:"display_name"`
	Element       Element `json:"element"`
	Level         int     `json:"level"`
	Side          Side    `json:"side"`
	// SlotIndex is the combatant's position in the original party list; it
	// breaks speed ties in turn ordering.
	SlotIndex  int    `json:"slot_index"`
	MaxHP      int    `json:"max_hp"`
	CurrentHP  int    `json:"current_hp"`
	Attack     int    `json:"attack"`
	Defense    int    `json:"defense"`
	Speed      int    `json:"speed"`
	Magic      int    `json:"magic"`
	IsCaptured bool   `json:"is_captured"`
	LastAction string `json:"last_action"`

	// CaptureRate and Skill are denormalized from the species config on
	// every load (config is the source of truth, same as species stats).
	CaptureRate int   `json:"capture_rate" gorm:"-"`
	Skill       Skill `json:"skill" gorm:"-"`
}

// Incapacitated reports whether the combatant is at 0 HP.
func (c *Combatant) Incapacitated() bool { return c.CurrentHP <= 0 }

// CanAct reports whether the combatant may act or be targeted: captured
// combatants are out of the fight even though their HP may be positive.
func (c *Combatant) CanAct() bool { return !c.Incapacitated() && !c.IsCaptured }

type Battle struct {
	gorm.Model
	BattleCode   string      `json:"battle_code" gorm:"unique"`
	TrainerEmail string      `json:"trainer_email"`
	TrainerName  string      `json:"trainer_name"`
	Combatants   []Combatant `json:"combatants"`
	State        string      `json:"state"`
	RoundCount   int         `json:"round_count"`
	// TurnCursor is the position in the full speed-sorted participant list;
	// together with RoundCount it lets a stateless request resume the
	// battle session exactly where the previous one left off.
	TurnCursor      int       `json:"turn_number"`
	Winner          Side      `json:"winner"`
	Message         string    `json:"message"`
	LastTurnSummary string    `json:"last_turn_summary"`
	ActionDeadline  time.Time `json:"action_deadline"`
	StatsCounted    bool      `json:"-"`
}

// PlayerParty returns pointers to the player-side combatants in slot order.
func (b *Battle) PlayerParty() []*Combatant { return b.sideParty(SidePlayer) }

// EnemyParty returns pointers to the enemy-side combatants in slot order.
func (b *Battle) EnemyParty() []*Combatant { return b.sideParty(SideEnemy) }

func (b *Battle) sideParty(side Side) []*Combatant {
	out := make([]*Combatant, 0, len(b.Combatants))
	for i := range b.Combatants {
		if b.Combatants[i].Side == side {
			out = append(out, &b.Combatants[i])
		}
	}
	return out
}

// Trainer stores unique player identity and aggregate stats.
type Trainer struct {
	gorm.Model
	Email         string `json:"email" gorm:"uniqueIndex"`
	Name          string `json:"name"`
	BattlesPlayed int    `json:"battles_played"`
	Wins          int    `json:"wins"`
	Captures      int    `json:"captures"`
}

// Unify the global trainer table name as "trainer_profiles".
func (Trainer) TableName() string { return "trainer_profiles" }
