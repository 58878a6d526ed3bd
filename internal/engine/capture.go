package engine

import "github.com/tvqhuy/linhthu-arena/internal/game"

// CaptureResult is the outcome of a single capture trial.
type CaptureResult struct {
	Success bool    `json:"success"`
	Roll    float64 `json:"roll"`
}

// ResolveCapture decides whether a capture attempt on target succeeds.
// baseRate is the species capture rate (1..100); itemMultiplier scales the
// probability (1.0 when no charm is used). Lower current HP raises the odds:
// the HP factor runs from 0.33 at full health to 1.0 at zero. The session
// rejects attempts on incapacitated targets before this is called.
func ResolveCapture(target *game.Combatant, baseRate int, itemMultiplier float64, roll func() float64) CaptureResult {
	hpFactor := 1.0
	if target.MaxHP > 0 {
		hpFactor = 1.0 - (float64(target.CurrentHP)/float64(target.MaxHP))*0.67
	}
	p := float64(baseRate) / 100.0 * hpFactor * itemMultiplier
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	r := roll()
	return CaptureResult{Success: r < p, Roll: r}
}
