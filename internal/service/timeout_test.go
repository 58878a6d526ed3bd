package service

import (
	"testing"

	"github.com/tvqhuy/linhthu-arena/internal/game"
)

func TestHandleTimedOutBattle_MarksFled(t *testing.T) {
	b := testBattle()
	mr := &mockRepoSA{battles: map[uint]*game.Battle{7: b}}

	if err := HandleTimedOutBattle(mr, b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mr.updated == nil {
		t.Fatalf("timed-out battle must be persisted")
	}
	if mr.updated.State != game.StateFled {
		t.Fatalf("expected fled state, got %s", mr.updated.State)
	}
	if !mr.updated.StatsCounted {
		t.Fatalf("timed-out battles must never count toward stats later")
	}
	if !mr.updated.ActionDeadline.IsZero() {
		t.Fatalf("deadline must be cleared")
	}
	if mr.statsCalled {
		t.Fatalf("stats must not be recorded for a timeout")
	}
}

func TestHandleTimedOutBattle_SkipsConcludedBattle(t *testing.T) {
	b := testBattle()
	b.State = game.StatePlayerWin
	mr := &mockRepoSA{battles: map[uint]*game.Battle{7: b}}

	if err := HandleTimedOutBattle(mr, b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mr.updated != nil {
		t.Fatalf("concluded battles must be left alone")
	}
}

func TestHandleTimedOutBattle_RechecksFreshState(t *testing.T) {
	stale := testBattle()
	fresh := testBattle()
	fresh.State = game.StateEnemyWin
	mr := &mockRepoSA{battles: map[uint]*game.Battle{7: fresh}}

	// The scanner holds a stale in-progress copy; the stored battle has
	// since concluded and must not be overwritten.
	if err := HandleTimedOutBattle(mr, stale); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mr.updated != nil {
		t.Fatalf("fresh state must win over the scanner's stale copy")
	}
}
