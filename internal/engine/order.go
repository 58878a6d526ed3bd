package engine

import (
	"sort"

	"github.com/tvqhuy/linhthu-arena/internal/game"
)

// TurnOrder returns the acting order for one round: incapacitated and
// captured combatants are excluded, the rest sorted by speed descending with
// ties broken by original slot index. Pure function of its input.
func TurnOrder(combatants []*game.Combatant) []*game.Combatant {
	able := make([]*game.Combatant, 0, len(combatants))
	for _, c := range combatants {
		if c.CanAct() {
			able = append(able, c)
		}
	}
	sortBySpeed(able)
	return able
}

// orderAll sorts every participant, acting or not. The session tracks its turn
// cursor against this full list so the cursor stays meaningful when a
// combatant drops mid-round; spent or fallen entries are skipped at advance
// time.
func orderAll(combatants []*game.Combatant) []*game.Combatant {
	all := make([]*game.Combatant, len(combatants))
	copy(all, combatants)
	sortBySpeed(all)
	return all
}

func sortBySpeed(list []*game.Combatant) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Speed == list[j].Speed {
			return list[i].SlotIndex < list[j].SlotIndex
		}
		return list[i].Speed > list[j].Speed
	})
}
