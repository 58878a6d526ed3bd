package service

import (
	"testing"
	"time"

	"github.com/tvqhuy/linhthu-arena/internal/game"
	"gorm.io/gorm"
)

type mockRepoSA struct {
	battles     map[uint]*game.Battle
	items       map[string]game.CaptureItem
	updated     *game.Battle
	statsCalled bool
	statsCaps   int
}

func (m *mockRepoSA) GetBattleByID(id uint) (*game.Battle, error) {
	if b, ok := m.battles[id]; ok {
		return b, nil
	}
	return nil, ErrBattleNotFound
}

func (m *mockRepoSA) UpdateBattle(b *game.Battle) error {
	m.updated = b
	return nil
}

func (m *mockRepoSA) UpdateStatsOnBattleEnd(b *game.Battle, captures int) error {
	m.statsCalled = true
	m.statsCaps = captures
	return nil
}

func (m *mockRepoSA) GetCaptureItem(name string) (*game.CaptureItem, error) {
	if it, ok := m.items[name]; ok {
		return &it, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func noCrit() float64 { return 0.99 }

func testBattle() *game.Battle {
	b := &game.Battle{
		BattleCode:   "ABCD1234",
		TrainerEmail: "trainer@example.com",
		TrainerName:  "Huy",
		State:        game.StateInProgress,
		RoundCount:   1,
		TurnCursor:   0,
		Combatants: []game.Combatant{
			{
				CombatantUUID: "p1", DisplayName: "Hỏa Long", SpeciesName: "hoa-long",
				Element: game.ElementFire, Side: game.SidePlayer, SlotIndex: 0,
				MaxHP: 100, CurrentHP: 100, Attack: 20, Defense: 10, Speed: 15,
			},
			{
				CombatantUUID: "e1", DisplayName: "Kim Ngưu", SpeciesName: "kim-nguu",
				Element: game.ElementMetal, Side: game.SideEnemy, SlotIndex: 1,
				MaxHP: 100, CurrentHP: 100, Attack: 15, Defense: 10, Speed: 10,
				CaptureRate: 30,
			},
		},
	}
	b.ID = 7
	return b
}

func TestSubmitAction_AttackPlaysEnemyTurn(t *testing.T) {
	b := testBattle()
	mr := &mockRepoSA{battles: map[uint]*game.Battle{7: b}}

	b2, res, err := SubmitAction(mr, 7, "trainer@example.com",
		ActionInput{Type: game.ActionAttack, ActorID: "p1", TargetID: "e1"},
		time.Minute, noCrit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Fire vs Metal: 20*1.5 - 5 = 25.
	if res.Damage == nil || res.Damage.Damage != 25 {
		t.Fatalf("unexpected player damage result: %+v", res.Damage)
	}
	if b2.Combatants[1].CurrentHP != 75 {
		t.Fatalf("enemy should be at 75 HP, got %d", b2.Combatants[1].CurrentHP)
	}
	// The wild creature answered: 15*0.5=7 floored, minus 5 = 2.
	if b2.Combatants[0].CurrentHP != 98 {
		t.Fatalf("player should be at 98 HP after the counterattack, got %d", b2.Combatants[0].CurrentHP)
	}
	if b2.RoundCount != 2 {
		t.Fatalf("expected round 2 after both turns, got %d", b2.RoundCount)
	}
	if mr.updated == nil {
		t.Fatalf("battle must be persisted")
	}
	if b2.ActionDeadline.IsZero() {
		t.Fatalf("deadline must be reset while the battle continues")
	}
}

func TestSubmitAction_BattleConcludesWithStats(t *testing.T) {
	b := testBattle()
	b.Combatants[1].CurrentHP = 20 // one hit from defeat
	mr := &mockRepoSA{battles: map[uint]*game.Battle{7: b}}

	b2, _, err := SubmitAction(mr, 7, "trainer@example.com",
		ActionInput{Type: game.ActionAttack, ActorID: "p1", TargetID: "e1"},
		time.Minute, noCrit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b2.State != game.StatePlayerWin {
		t.Fatalf("expected player win, got %s", b2.State)
	}
	if !mr.statsCalled {
		t.Fatalf("stats must be counted once the battle ends")
	}
	if !b2.StatsCounted {
		t.Fatalf("StatsCounted flag must be set")
	}
}

func TestSubmitAction_CaptureWithItem(t *testing.T) {
	b := testBattle()
	b.Combatants[1].CurrentHP = 5
	mr := &mockRepoSA{
		battles: map[uint]*game.Battle{7: b},
		items:   map[string]game.CaptureItem{"bua_vang": {Name: "bua_vang", Multiplier: 3.0}},
	}

	// Roll 0.4: p = 0.30 * (1 - 0.05*0.67) * 3 ≈ 0.87, capture succeeds.
	roll := func() float64 { return 0.4 }
	b2, res, err := SubmitAction(mr, 7, "trainer@example.com",
		ActionInput{Type: game.ActionCapture, ActorID: "p1", TargetID: "e1", ItemName: "bua_vang"},
		time.Minute, roll)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Capture == nil || !res.Capture.Success {
		t.Fatalf("expected capture success, got %+v", res.Capture)
	}
	if b2.State != game.StatePlayerWin {
		t.Fatalf("capturing the only enemy should end the battle, got %s", b2.State)
	}
	if mr.statsCaps != 1 {
		t.Fatalf("one capture should be recorded, got %d", mr.statsCaps)
	}
}

func TestSubmitAction_RejectsWrongTrainerAndUnknownItem(t *testing.T) {
	b := testBattle()
	mr := &mockRepoSA{battles: map[uint]*game.Battle{7: b}}

	if _, _, err := SubmitAction(mr, 7, "someone-else@example.com",
		ActionInput{Type: game.ActionAttack, ActorID: "p1", TargetID: "e1"},
		time.Minute, noCrit); err != ErrNotYourBattle {
		t.Fatalf("expected ErrNotYourBattle, got %v", err)
	}

	if _, _, err := SubmitAction(mr, 7, "trainer@example.com",
		ActionInput{Type: game.ActionCapture, ActorID: "p1", TargetID: "e1", ItemName: "bua_gia"},
		time.Minute, noCrit); err != ErrUnknownItem {
		t.Fatalf("expected ErrUnknownItem, got %v", err)
	}
	if b.Combatants[1].CurrentHP != 100 {
		t.Fatalf("rejected actions must not mutate the battle")
	}
}

func TestSubmitAction_FleeConcludesWithoutStats(t *testing.T) {
	b := testBattle()
	mr := &mockRepoSA{battles: map[uint]*game.Battle{7: b}}

	b2, _, err := SubmitAction(mr, 7, "trainer@example.com",
		ActionInput{Type: game.ActionFlee, ActorID: "p1"},
		time.Minute, noCrit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b2.State != game.StateFled {
		t.Fatalf("expected fled state, got %s", b2.State)
	}
	if mr.statsCalled {
		t.Fatalf("fled battles must not count toward stats")
	}
}
