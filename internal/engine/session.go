package engine

import (
	"errors"
	"math/rand"
	"strconv"

	"github.com/tvqhuy/linhthu-arena/internal/game"
)

var (
	ErrInvalidParty        = errors.New("each side needs at least one able combatant")
	ErrAlreadyStarted      = errors.New("battle session already started")
	ErrInvalidState        = errors.New("battle session is not in progress")
	ErrUnknownActor        = errors.New("unknown actor")
	ErrUnknownTarget       = errors.New("unknown target")
	ErrTargetIncapacitated = errors.New("target is already out of the battle")
	ErrOutOfTurn           = errors.New("combatant is not the current actor")
	ErrInvalidAction       = errors.New("invalid action")
)

// Action is one combatant's move for a single turn.
type Action struct {
	Type     game.ActionType
	TargetID string
	// Skill is optional for attacks; nil means a plain attack with the
	// actor's own element.
	Skill *game.Skill
	// Item is optional for captures; nil means a bare-handed attempt
	// (multiplier 1.0).
	Item *game.CaptureItem
}

// TurnResult reports what a single ExecuteTurn call did. Exactly one of
// Damage or Capture is set for attack/capture actions.
type TurnResult struct {
	ActorID  string          `json:"actor_id"`
	TargetID string          `json:"target_id,omitempty"`
	Action   game.ActionType `json:"action"`
	Damage   *DamageResult   `json:"damage,omitempty"`
	Capture  *CaptureResult  `json:"capture,omitempty"`
	State    string          `json:"state"`
}

// Session drives one battle through the state machine
// Idle -> InProgress -> {PlayerWin, EnemyWin, Fled}. It owns the combatant
// list exclusively: callers mutate state only through ExecuteTurn, and a
// rejected call leaves every combatant untouched. The session is synchronous
// and not safe for concurrent use.
type Session struct {
	state        string
	participants []*game.Combatant
	// order is the full speed-sorted participant list for the current
	// round; cursor indexes into it. Entries that became unable to act
	// after the round started are skipped when the cursor advances.
	order   []*game.Combatant
	cursor  int
	round   int
	roll    func() float64
	summary []string
}

// NewSession creates an idle session. roll is the injected random source in
// [0,1) used for critical and capture rolls; nil selects math/rand.
func NewSession(roll func() float64) *Session {
	if roll == nil {
		roll = rand.Float64
	}
	return &Session{state: game.StateIdle, roll: roll, summary: make([]string, 0, 8)}
}

// Start moves the session from Idle to InProgress. It fails without side
// effects when either party is empty or has no able combatant.
func (s *Session) Start(playerParty, enemyParty []*game.Combatant) error {
	if s.state != game.StateIdle {
		return ErrAlreadyStarted
	}
	if !partyAble(playerParty) || !partyAble(enemyParty) {
		return ErrInvalidParty
	}
	participants := make([]*game.Combatant, 0, len(playerParty)+len(enemyParty))
	participants = append(participants, playerParty...)
	participants = append(participants, enemyParty...)
	for i, c := range participants {
		c.SlotIndex = i
	}
	s.participants = participants
	s.round = 1
	s.order = orderAll(s.participants)
	s.cursor = 0
	s.state = game.StateInProgress
	s.settle()
	return nil
}

// Restore resumes a persisted battle mid-round. The cursor counts positions
// in the full speed-sorted participant list, so recomputing the order here
// yields the same sequence the original session produced.
func (s *Session) Restore(participants []*game.Combatant, round, cursor int) error {
	if s.state != game.StateIdle {
		return ErrAlreadyStarted
	}
	if round < 1 || cursor < 0 || cursor > len(participants) {
		return ErrInvalidState
	}
	if !partyAble(bySide(participants, game.SidePlayer)) || !partyAble(bySide(participants, game.SideEnemy)) {
		return ErrInvalidParty
	}
	s.participants = participants
	s.round = round
	s.order = orderAll(s.participants)
	s.cursor = cursor
	s.state = game.StateInProgress
	s.settle()
	return nil
}

func (s *Session) State() string { return s.state }
func (s *Session) Round() int    { return s.round }
func (s *Session) Cursor() int   { return s.cursor }

// Participants returns a read-only snapshot slice of the session's
// combatants. The combatants themselves are shared; callers must not mutate
// them outside ExecuteTurn.
func (s *Session) Participants() []*game.Combatant {
	out := make([]*game.Combatant, len(s.participants))
	copy(out, s.participants)
	return out
}

// CurrentActor returns the combatant whose turn it is, or nil when the
// session is not in progress.
func (s *Session) CurrentActor() *game.Combatant {
	if s.state != game.StateInProgress {
		return nil
	}
	return s.order[s.cursor]
}

// Summary returns the accumulated human-readable turn log.
func (s *Session) Summary() []string {
	out := make([]string, len(s.summary))
	copy(out, s.summary)
	return out
}

// ExecuteTurn applies one action for the given actor. Malformed actions are
// rejected with a typed error before any state mutation. After a valid
// action the session checks end conditions and advances the turn cursor,
// starting a new round (with a recomputed order) when the current one is
// exhausted.
func (s *Session) ExecuteTurn(actorID string, act Action) (*TurnResult, error) {
	if s.state != game.StateInProgress {
		return nil, ErrInvalidState
	}
	actor := s.find(actorID)
	if actor == nil {
		return nil, ErrUnknownActor
	}
	if s.order[s.cursor] != actor {
		return nil, ErrOutOfTurn
	}

	res := &TurnResult{ActorID: actorID, Action: act.Type}
	switch act.Type {
	case game.ActionAttack:
		if err := s.execAttack(actor, act, res); err != nil {
			return nil, err
		}
	case game.ActionCapture:
		if err := s.execCapture(actor, act, res); err != nil {
			return nil, err
		}
	case game.ActionFlee:
		if actor.Side != game.SidePlayer {
			return nil, ErrInvalidAction
		}
		actor.LastAction = string(game.ActionFlee)
		s.state = game.StateFled
		s.add(actor.DisplayName + " fled the battle")
		res.State = s.state
		return res, nil
	default:
		return nil, ErrInvalidAction
	}

	s.checkEnd()
	if s.state == game.StateInProgress {
		s.cursor++
		s.settle()
	}
	res.State = s.state
	return res, nil
}

func (s *Session) execAttack(actor *game.Combatant, act Action, res *TurnResult) error {
	target := s.find(act.TargetID)
	if target == nil {
		return ErrUnknownTarget
	}
	if target.Side == actor.Side {
		return ErrInvalidAction
	}
	if !target.CanAct() {
		return ErrTargetIncapacitated
	}

	dr := ResolveDamage(actor, target, act.Skill, s.roll)
	target.CurrentHP -= dr.Damage
	if target.CurrentHP < 0 {
		target.CurrentHP = 0
	}
	actor.LastAction = string(game.ActionAttack)
	if act.Skill != nil {
		actor.LastAction = "skill:" + act.Skill.Name
	}

	msg := actor.DisplayName + " attacks (" + advantageTag(dr.Multiplier) + "): " +
		target.DisplayName + " takes " + strconv.Itoa(dr.Damage) + " damage"
	if dr.Critical {
		msg += " (critical)"
	}
	s.add(msg)
	if target.Incapacitated() {
		s.add(target.DisplayName + " is incapacitated!")
	}

	res.TargetID = target.CombatantUUID
	res.Damage = &dr
	return nil
}

func (s *Session) execCapture(actor *game.Combatant, act Action, res *TurnResult) error {
	if actor.Side != game.SidePlayer {
		return ErrInvalidAction
	}
	target := s.find(act.TargetID)
	if target == nil {
		return ErrUnknownTarget
	}
	if target.Side != game.SideEnemy {
		return ErrInvalidAction
	}
	if !target.CanAct() {
		return ErrTargetIncapacitated
	}
	mult := 1.0
	if act.Item != nil {
		if act.Item.Multiplier <= 0 {
			return ErrInvalidAction
		}
		mult = act.Item.Multiplier
	}

	cr := ResolveCapture(target, target.CaptureRate, mult, s.roll)
	actor.LastAction = string(game.ActionCapture)
	if cr.Success {
		target.IsCaptured = true
		s.add(actor.DisplayName + " captured " + target.DisplayName + "!")
	} else {
		s.add(actor.DisplayName + " tried to capture " + target.DisplayName + " but it broke free")
	}

	res.TargetID = target.CombatantUUID
	res.Capture = &cr
	return nil
}

// checkEnd resolves the battle when one side has no able combatant left.
func (s *Session) checkEnd() {
	if !partyAble(bySide(s.participants, game.SideEnemy)) {
		s.state = game.StatePlayerWin
		s.add("All enemy combatants are down. Victory!")
		return
	}
	if !partyAble(bySide(s.participants, game.SidePlayer)) {
		s.state = game.StateEnemyWin
		s.add("The whole party is down. Defeat.")
	}
}

// settle positions the cursor on the next able combatant, rolling over into a
// new round (with a freshly computed order) when the current one is spent.
// Callers must ensure both sides still have an able combatant.
func (s *Session) settle() {
	for {
		for s.cursor < len(s.order) {
			if s.order[s.cursor].CanAct() {
				return
			}
			s.cursor++
		}
		s.round++
		s.order = orderAll(s.participants)
		s.cursor = 0
	}
}

func (s *Session) find(id string) *game.Combatant {
	for _, c := range s.participants {
		if c.CombatantUUID == id {
			return c
		}
	}
	return nil
}

func (s *Session) add(msg string) { s.summary = append(s.summary, msg) }

func partyAble(party []*game.Combatant) bool {
	for _, c := range party {
		if c.CanAct() {
			return true
		}
	}
	return false
}

func bySide(list []*game.Combatant, side game.Side) []*game.Combatant {
	out := make([]*game.Combatant, 0, len(list))
	for _, c := range list {
		if c.Side == side {
			out = append(out, c)
		}
	}
	return out
}

func advantageTag(mult float64) string {
	switch mult {
	case AdvantageStrong:
		return "element advantage x1.5"
	case AdvantageWeak:
		return "element disadvantage x0.5"
	default:
		return "neutral element"
	}
}
