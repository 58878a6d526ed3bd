package service

import (
	"errors"
	"strings"
	"time"

	"github.com/tvqhuy/linhthu-arena/internal/engine"
	"github.com/tvqhuy/linhthu-arena/internal/game"
)

var (
	ErrBattleNotInProgress = errors.New("battle is not in progress")
	ErrNotYourBattle       = errors.New("battle belongs to another trainer")
	ErrUnknownItem         = errors.New("unknown capture item")
)

// ActionInput is the trainer's chosen move for the current turn.
type ActionInput struct {
	Type     game.ActionType
	ActorID  string
	TargetID string
	// UseSkill makes the attack use the actor's species skill.
	UseSkill bool
	// ItemName selects a configured capture charm; empty means bare-handed.
	ItemName string
}

// SubmitAction applies one player action to a battle and then auto-plays
// enemy turns until control returns to the player or the battle concludes.
// Returns the updated battle and the result of the player's own turn.
func SubmitAction(repo BattleRepo, battleID uint, trainerEmail string, in ActionInput, actionTimeout time.Duration, roll func() float64) (*game.Battle, *engine.TurnResult, error) {
	b, err := repo.GetBattleByID(battleID)
	if err != nil || b == nil {
		return nil, nil, ErrBattleNotFound
	}
	if b.TrainerEmail != trainerEmail {
		return nil, nil, ErrNotYourBattle
	}
	if b.State != game.StateInProgress {
		return nil, nil, ErrBattleNotInProgress
	}

	s := engine.NewSession(roll)
	if err := s.Restore(participantPointers(b), b.RoundCount, b.TurnCursor); err != nil {
		return nil, nil, err
	}

	act, err := buildAction(repo, s, in)
	if err != nil {
		return nil, nil, err
	}

	res, err := s.ExecuteTurn(in.ActorID, act)
	if err != nil {
		return nil, nil, err
	}

	playEnemyTurns(s)

	b.State = s.State()
	b.RoundCount = s.Round()
	b.TurnCursor = s.Cursor()
	b.LastTurnSummary = strings.Join(s.Summary(), "\n")

	switch b.State {
	case game.StateInProgress:
		b.Message = "Choose your action."
		b.ActionDeadline = time.Now().Add(actionTimeout)
	case game.StatePlayerWin:
		b.Winner = game.SidePlayer
		b.Message = "Victory!"
		b.ActionDeadline = time.Time{}
	case game.StateEnemyWin:
		b.Winner = game.SideEnemy
		b.Message = "Your party was defeated."
		b.ActionDeadline = time.Time{}
	case game.StateFled:
		b.Winner = ""
		b.Message = "You fled the battle."
		b.ActionDeadline = time.Time{}
	}

	if b.State != game.StateInProgress && !b.StatsCounted {
		if b.State != game.StateFled {
			_ = repo.UpdateStatsOnBattleEnd(b, countCaptures(b))
		}
		b.StatsCounted = true
	}

	if err := repo.UpdateBattle(b); err != nil {
		return nil, res, err
	}
	return b, res, nil
}

// buildAction translates the API-level input into an engine action,
// resolving the skill and capture item references.
func buildAction(repo BattleRepo, s *engine.Session, in ActionInput) (engine.Action, error) {
	act := engine.Action{Type: in.Type, TargetID: in.TargetID}
	switch in.Type {
	case game.ActionAttack:
		if in.UseSkill {
			actor := findParticipant(s, in.ActorID)
			if actor == nil {
				return act, engine.ErrUnknownActor
			}
			if actor.Skill.Name == "" {
				return act, engine.ErrInvalidAction
			}
			sk := actor.Skill
			act.Skill = &sk
		}
	case game.ActionCapture:
		if in.ItemName != "" {
			item, err := repo.GetCaptureItem(in.ItemName)
			if err != nil || item == nil {
				return act, ErrUnknownItem
			}
			act.Item = item
		}
	case game.ActionFlee:
		// no payload
	default:
		return act, engine.ErrInvalidAction
	}
	return act, nil
}

// playEnemyTurns advances the session through consecutive enemy turns. Each
// wild creature attacks the weakest living player combatant.
func playEnemyTurns(s *engine.Session) {
	for s.State() == game.StateInProgress {
		actor := s.CurrentActor()
		if actor == nil || actor.Side != game.SideEnemy {
			return
		}
		_, targetID, skill := chooseEnemyAction(s.Participants(), actor)
		if targetID == "" {
			return
		}
		if _, err := s.ExecuteTurn(actor.CombatantUUID, engine.Action{
			Type:     game.ActionAttack,
			TargetID: targetID,
			Skill:    skill,
		}); err != nil {
			return
		}
	}
}

func participantPointers(b *game.Battle) []*game.Combatant {
	out := make([]*game.Combatant, len(b.Combatants))
	for i := range b.Combatants {
		out[i] = &b.Combatants[i]
	}
	return out
}

func findParticipant(s *engine.Session, id string) *game.Combatant {
	for _, c := range s.Participants() {
		if c.CombatantUUID == id {
			return c
		}
	}
	return nil
}

func countCaptures(b *game.Battle) int {
	n := 0
	for i := range b.Combatants {
		if b.Combatants[i].Side == game.SideEnemy && b.Combatants[i].IsCaptured {
			n++
		}
	}
	return n
}
