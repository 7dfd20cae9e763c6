package serpent

import (
	"math"
	"time"
)

// TickAutoBite fires an automatic perfect bite at most once per beat, based
// on upgrade chance plus the idle-escalation bonus. Manual play always has
// priority: a locked mouth skips the beat, and frenzy scores on its own.
// Reports whether a bite fired; a fired bite must be fed to HandlePress so
// it pays out exactly like a manual press.
func (e Engine) TickAutoBite(s *RunState, now time.Time) bool {
	if s.FrenzyActive {
		return false
	}

	chance := e.autoBiteChance(s)
	if chance <= 0 {
		return false
	}

	idleBonus := math.Min(s.IdleSeconds*e.T.IdleEscalationRate, e.T.IdleEscalationCap)
	total := math.Min(chance+idleBonus, 0.95)

	beatIndex := e.BeatIndex(s, now)
	if beatIndex <= s.LastAutoBiteBeatIndex {
		return false
	}
	s.LastAutoBiteBeatIndex = beatIndex

	if e.Rand.Float64() >= total {
		return false
	}

	if !s.MouthOpen {
		return false
	}

	// The auto bite locks the mouth at the uncursed base fraction.
	cooldown := e.BeatInterval(s) * e.T.BiteCooldownFraction
	s.MouthOpen = false
	s.BiteCooldownUntil = now.Add(time.Duration(cooldown * float64(time.Second)))
	s.LastScoredBeatIndex = beatIndex
	e.scoreCombo(s, 2)
	s.LastBiteResult = OutcomePerfect
	return true
}
