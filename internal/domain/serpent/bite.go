package serpent

import (
	"time"

	"ouroverse/internal/domain/catalog"
)

// The bite state machine. A press is evaluated against the absolute beat
// clock; afterwards the mouth locks shut for a fraction of the beat so a
// held key can never score twice. A press while locked is swallowed
// entirely: no outcome, no feedback.

// AttemptBite evaluates a manual press at now.
func (e Engine) AttemptBite(s *RunState, now time.Time) Outcome {
	// Feeding Frenzy bypasses all rhythm rules: every press scores, the
	// mouth never locks, and the streak machinery is skipped.
	if s.FrenzyActive {
		s.FrenzyPresses++
		e.scoreCombo(s, 1)
		// Keep the scored index current so decay doesn't fire after frenzy.
		s.LastScoredBeatIndex = e.BeatIndex(s, now)
		s.LastBiteResult = OutcomePerfect
		return OutcomePerfect
	}

	if !s.MouthOpen {
		return OutcomeSwallowed
	}

	interval := e.BeatInterval(s)
	dist := e.BeatDistance(s, now)
	beatIndex := e.BeatIndex(s, now)

	e.lockMouth(s, now, interval)

	// Double-tap within an already-scored beat is a miss.
	if beatIndex == s.LastScoredBeatIndex {
		return e.resolveMiss(s)
	}

	if dist <= e.PerfectWindow(s) {
		s.LastScoredBeatIndex = beatIndex
		e.scoreCombo(s, 2)
		e.advancePerfectStreak(s, beatIndex)
		s.LastBiteResult = OutcomePerfect
		return OutcomePerfect
	}

	if dist <= e.TimingWindow(s) {
		s.LastScoredBeatIndex = beatIndex
		e.scoreCombo(s, 1)
		s.PerfectStreak = 0 // good breaks the perfect streak
		s.LastBiteResult = OutcomeGood
		return OutcomeGood
	}

	s.PerfectStreak = 0
	return e.resolveMiss(s)
}

// ApplyClientOutcome applies a pre-evaluated outcome from a trusted client.
// It performs the identical state mutation without re-deriving the beat
// distance; the frenzy bypass and the lock transition still apply.
func (e Engine) ApplyClientOutcome(s *RunState, kind Outcome, now time.Time) Outcome {
	interval := e.BeatInterval(s)
	beatIndex := e.BeatIndex(s, now)

	e.lockMouth(s, now, interval)

	if s.FrenzyActive {
		s.FrenzyPresses++
		e.scoreCombo(s, 1)
		s.LastScoredBeatIndex = beatIndex
		s.LastBiteResult = OutcomePerfect
		return OutcomePerfect
	}

	switch kind {
	case OutcomePerfect:
		s.LastScoredBeatIndex = beatIndex
		e.scoreCombo(s, 2)
		e.advancePerfectStreak(s, beatIndex)
		s.LastBiteResult = OutcomePerfect
		return OutcomePerfect
	case OutcomeGood:
		s.LastScoredBeatIndex = beatIndex
		e.scoreCombo(s, 1)
		s.PerfectStreak = 0
		s.LastBiteResult = OutcomeGood
		return OutcomeGood
	default:
		s.PerfectStreak = 0
		return e.resolveMiss(s)
	}
}

// TickMouth reopens the mouth once the cooldown expires. Called every tick.
func (e Engine) TickMouth(s *RunState, now time.Time) {
	if !s.MouthOpen && !now.Before(s.BiteCooldownUntil) {
		s.MouthOpen = true
		s.LastBiteResult = ""
	}
}

func (e Engine) lockMouth(s *RunState, now time.Time, interval float64) {
	cooldown := interval * e.CooldownFraction(s)
	s.MouthOpen = false
	s.BiteCooldownUntil = now.Add(time.Duration(cooldown * float64(time.Second)))
}

// scoreCombo registers hits and refreshes the multiplier and its high-water
// mark.
func (e Engine) scoreCombo(s *RunState, hits int) {
	s.ComboHits += hits
	s.ComboMisses = 0
	s.ComboMultiplier = e.resolveComboMultiplier(s)
	if s.ComboMultiplier > s.Stats.ComboHigh {
		s.Stats.ComboHigh = s.ComboMultiplier
	}
}

// advancePerfectStreak counts a perfect toward Venom Rush and triggers the
// rush once the streak reaches its threshold.
func (e Engine) advancePerfectStreak(s *RunState, beatIndex int64) {
	trigger := e.T.VenomRushTriggerStreak
	if s.ArchetypeID == catalog.ArchetypeRhythmIncarnate {
		trigger = 3
	}
	s.PerfectStreak++
	if s.PerfectStreak >= trigger {
		s.VenomRushActive = true
		s.VenomRushEndBeat = beatIndex + int64(e.T.VenomRushBeats)
		s.PerfectStreak = 0
	}
}

// resolveMiss rolls the combo-save chance; an unsaved miss counts toward
// the miss tolerance and can break the combo.
func (e Engine) resolveMiss(s *RunState) Outcome {
	if e.Rand.Float64() < e.saveChance(s) {
		s.LastBiteResult = OutcomeSaved
		return OutcomeSaved
	}
	e.applyMiss(s)
	s.LastBiteResult = OutcomeMiss
	return OutcomeMiss
}

func (e Engine) applyMiss(s *RunState) {
	s.ComboMisses++
	tolerance := e.T.ComboMissTolerance
	if s.CurseID == catalog.CurseBrittleScales {
		tolerance = max(1, tolerance/2)
	}
	if s.ComboMisses >= tolerance {
		s.ComboHits = 0
		s.ComboMisses = 0
		s.ComboMultiplier = 1.0
	}
}
