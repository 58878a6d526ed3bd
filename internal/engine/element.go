package engine

import "github.com/tvqhuy/linhthu-arena/internal/game"

// Element advantage multipliers.
const (
	AdvantageStrong  = 1.5
	AdvantageNeutral = 1.0
	AdvantageWeak    = 0.5
)

// beats encodes the tương khắc cycle: Kim khắc Mộc, Mộc khắc Thổ,
// Thổ khắc Thủy, Thủy khắc Hỏa, Hỏa khắc Kim.
var beats = map[game.Element]game.Element{
	game.ElementMetal: game.ElementWood,
	game.ElementWood:  game.ElementEarth,
	game.ElementEarth: game.ElementWater,
	game.ElementWater: game.ElementFire,
	game.ElementFire:  game.ElementMetal,
}

// advantageTable is the full 5x5 lookup populated from the five beats edges.
// Pairs without a direct cycle relation (same element or two steps apart)
// stay neutral.
var advantageTable = buildAdvantageTable()

func buildAdvantageTable() map[game.Element]map[game.Element]float64 {
	t := make(map[game.Element]map[game.Element]float64, len(game.Elements))
	for _, att := range game.Elements {
		row := make(map[game.Element]float64, len(game.Elements))
		for _, def := range game.Elements {
			switch {
			case beats[att] == def:
				row[def] = AdvantageStrong
			case beats[def] == att:
				row[def] = AdvantageWeak
			default:
				row[def] = AdvantageNeutral
			}
		}
		t[att] = row
	}
	return t
}

// Advantage returns the damage multiplier for an ordered attacker/defender
// element pair. It is total over the element set; unknown elements are
// treated as neutral.
func Advantage(attacker, defender game.Element) float64 {
	if row, ok := advantageTable[attacker]; ok {
		if m, ok := row[defender]; ok {
			return m
		}
	}
	return AdvantageNeutral
}
