package engine

import (
	"testing"

	"github.com/tvqhuy/linhthu-arena/internal/game"
)

func fireStarter() *game.Combatant {
	return &game.Combatant{
		CombatantUUID: "p1",
		DisplayName:   "Hỏa Long",
		Element:       game.ElementFire,
		Side:          game.SidePlayer,
		MaxHP:         100,
		CurrentHP:     100,
		Attack:        20,
		Defense:       10,
		Speed:         15,
	}
}

func metalBeast() *game.Combatant {
	return &game.Combatant{
		CombatantUUID: "e1",
		DisplayName:   "Kim Ngưu",
		Element:       game.ElementMetal,
		Side:          game.SideEnemy,
		MaxHP:         100,
		CurrentHP:     100,
		Attack:        15,
		Defense:       10,
		Speed:         10,
		CaptureRate:   30,
	}
}

func TestSession_StartRejectsEmptyParty(t *testing.T) {
	s := NewSession(neverCrit)
	if err := s.Start(nil, []*game.Combatant{metalBeast()}); err != ErrInvalidParty {
		t.Fatalf("expected ErrInvalidParty, got %v", err)
	}
	if s.State() != game.StateIdle {
		t.Fatalf("failed start must leave the session idle, got %s", s.State())
	}

	down := fireStarter()
	down.CurrentHP = 0
	if err := s.Start([]*game.Combatant{down}, []*game.Combatant{metalBeast()}); err != ErrInvalidParty {
		t.Fatalf("expected ErrInvalidParty for all-incapacitated party, got %v", err)
	}
}

func TestSession_RejectsActionsOutsideInProgress(t *testing.T) {
	s := NewSession(neverCrit)
	if _, err := s.ExecuteTurn("p1", Action{Type: game.ActionAttack, TargetID: "e1"}); err != ErrInvalidState {
		t.Fatalf("expected ErrInvalidState before start, got %v", err)
	}

	if err := s.Start([]*game.Combatant{fireStarter()}, []*game.Combatant{metalBeast()}); err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}
	if err := s.Start([]*game.Combatant{fireStarter()}, []*game.Combatant{metalBeast()}); err != ErrAlreadyStarted {
		t.Fatalf("expected ErrAlreadyStarted on second start, got %v", err)
	}
}

func TestSession_FireVersusMetalScenario(t *testing.T) {
	player := fireStarter()
	enemy := metalBeast()
	s := NewSession(neverCrit)
	if err := s.Start([]*game.Combatant{player}, []*game.Combatant{enemy}); err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}

	if s.CurrentActor() != player {
		t.Fatalf("faster combatant should act first")
	}

	res, err := s.ExecuteTurn("p1", Action{Type: game.ActionAttack, TargetID: "e1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// base 20 * 1.5 = 30, minus floor(10/2) = 25
	if res.Damage.Damage != 25 || res.Damage.Multiplier != AdvantageStrong || res.Damage.Critical {
		t.Fatalf("unexpected damage result: %+v", res.Damage)
	}
	if enemy.CurrentHP != 75 {
		t.Fatalf("enemy HP should be 75 after one hit, got %d", enemy.CurrentHP)
	}

	// Alternate turns until the enemy drops: 25 damage per player hit
	// means four hits total.
	for s.State() == game.StateInProgress {
		actor := s.CurrentActor()
		target := "e1"
		if actor.Side == game.SideEnemy {
			target = "p1"
		}
		if _, err := s.ExecuteTurn(actor.CombatantUUID, Action{Type: game.ActionAttack, TargetID: target}); err != nil {
			t.Fatalf("unexpected error mid-battle: %v", err)
		}
	}

	if s.State() != game.StatePlayerWin {
		t.Fatalf("expected player win, got %s", s.State())
	}
	if enemy.CurrentHP != 0 {
		t.Fatalf("enemy should be at exactly 0 HP, got %d", enemy.CurrentHP)
	}
	// Enemy landed three counterattacks of 2 damage each (15*0.5=7, minus 5).
	if player.CurrentHP != 94 {
		t.Fatalf("player should be at 94 HP, got %d", player.CurrentHP)
	}
	if s.Round() != 4 {
		t.Fatalf("battle should end in round 4, got %d", s.Round())
	}
}

func TestSession_RejectedActionLeavesStateUnchanged(t *testing.T) {
	player := fireStarter()
	enemy := metalBeast()
	s := NewSession(neverCrit)
	if err := s.Start([]*game.Combatant{player}, []*game.Combatant{enemy}); err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}

	cursor := s.Cursor()
	if _, err := s.ExecuteTurn("p1", Action{Type: game.ActionAttack, TargetID: "ghost"}); err != ErrUnknownTarget {
		t.Fatalf("expected ErrUnknownTarget, got %v", err)
	}
	if _, err := s.ExecuteTurn("ghost", Action{Type: game.ActionAttack, TargetID: "e1"}); err != ErrUnknownActor {
		t.Fatalf("expected ErrUnknownActor, got %v", err)
	}
	if _, err := s.ExecuteTurn("e1", Action{Type: game.ActionAttack, TargetID: "p1"}); err != ErrOutOfTurn {
		t.Fatalf("expected ErrOutOfTurn, got %v", err)
	}
	if s.Cursor() != cursor || enemy.CurrentHP != 100 || player.CurrentHP != 100 {
		t.Fatalf("rejected actions must not mutate the session")
	}
}

func TestSession_AttackOnDownedTargetRejected(t *testing.T) {
	player := fireStarter()
	enemy := metalBeast()
	bystander := metalBeast()
	bystander.CombatantUUID = "e2"
	bystander.CurrentHP = 0

	s := NewSession(neverCrit)
	if err := s.Start([]*game.Combatant{player}, []*game.Combatant{enemy, bystander}); err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}
	if _, err := s.ExecuteTurn("p1", Action{Type: game.ActionAttack, TargetID: "e2"}); err != ErrTargetIncapacitated {
		t.Fatalf("expected ErrTargetIncapacitated, got %v", err)
	}
}

func TestSession_CaptureEndsBattleWhenLastEnemyTaken(t *testing.T) {
	player := fireStarter()
	enemy := metalBeast()
	enemy.CurrentHP = 10 // weakened: hpFactor = 1 - 0.1*0.67 = 0.933

	s := NewSession(fixedRoll(0.01))
	if err := s.Start([]*game.Combatant{player}, []*game.Combatant{enemy}); err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}

	charm := &game.CaptureItem{Name: "bua_vang", Multiplier: 2.0}
	res, err := s.ExecuteTurn("p1", Action{Type: game.ActionCapture, TargetID: "e1", Item: charm})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Capture == nil || !res.Capture.Success {
		t.Fatalf("capture should succeed with roll 0.01, got %+v", res.Capture)
	}
	if !enemy.IsCaptured {
		t.Fatalf("target should be flagged captured")
	}
	if s.State() != game.StatePlayerWin {
		t.Fatalf("capturing the last enemy should win the battle, got %s", s.State())
	}
}

func TestSession_CaptureWithNonPositiveMultiplierRejected(t *testing.T) {
	s := NewSession(fixedRoll(0.5))
	if err := s.Start([]*game.Combatant{fireStarter()}, []*game.Combatant{metalBeast()}); err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}
	bad := &game.CaptureItem{Name: "bua_hong", Multiplier: -1}
	if _, err := s.ExecuteTurn("p1", Action{Type: game.ActionCapture, TargetID: "e1", Item: bad}); err != ErrInvalidAction {
		t.Fatalf("expected ErrInvalidAction, got %v", err)
	}
}

func TestSession_FleeIsTerminalWithoutWinner(t *testing.T) {
	s := NewSession(neverCrit)
	if err := s.Start([]*game.Combatant{fireStarter()}, []*game.Combatant{metalBeast()}); err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}
	res, err := s.ExecuteTurn("p1", Action{Type: game.ActionFlee})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.State != game.StateFled || s.State() != game.StateFled {
		t.Fatalf("expected fled state, got %s", s.State())
	}
	if _, err := s.ExecuteTurn("e1", Action{Type: game.ActionAttack, TargetID: "p1"}); err != ErrInvalidState {
		t.Fatalf("fled session must reject further actions, got %v", err)
	}
}

func TestSession_RestoreResumesMidRound(t *testing.T) {
	player := fireStarter()
	enemy := metalBeast()
	s := NewSession(neverCrit)
	if err := s.Start([]*game.Combatant{player}, []*game.Combatant{enemy}); err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}
	if _, err := s.ExecuteTurn("p1", Action{Type: game.ActionAttack, TargetID: "e1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Rebuild a fresh session from the persisted snapshot.
	s2 := NewSession(neverCrit)
	if err := s2.Restore([]*game.Combatant{player, enemy}, s.Round(), s.Cursor()); err != nil {
		t.Fatalf("unexpected restore error: %v", err)
	}
	if s2.CurrentActor().CombatantUUID != "e1" {
		t.Fatalf("restored session should continue with the enemy turn, got %s", s2.CurrentActor().CombatantUUID)
	}
}
