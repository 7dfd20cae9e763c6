package serpent

import (
	"math"
	"time"

	"ouroverse/internal/domain/catalog"
)

// The beat clock is absolute: everything is derived on demand from the
// anchor timestamp, never stored per tick. BeatOrigin is moved only by shed
// and ascension, so the beat grid cannot be manipulated by player input.

// NaturalBPM is the milestone-driven tempo: base plus one step per length
// milestone, clamped to [base, max] and snapped down to a multiple of 10.
// The Cosmic Tempo ascension upgrade raises the cap.
func (e Engine) NaturalBPM(s *RunState) float64 {
	maxBPM := e.T.MaxBPM
	for _, uid := range catalog.AscensionOrder {
		level := s.AscensionLevels[uid]
		if level <= 0 {
			continue
		}
		if def := catalog.AscensionUpgrades[uid]; def.Effect == catalog.AscensionMaxBPMBonus {
			maxBPM += def.ValuePerLevel * float64(level)
		}
	}

	milestones := s.SnakeLength / e.T.BPMMilestoneLength
	raw := math.Min(e.T.BaseBPM+float64(milestones)*e.T.BPMPerMilestone, maxBPM)
	snapped := float64((int(raw) / 10) * 10)
	return math.Max(e.T.BaseBPM, math.Min(snapped, maxBPM))
}

// CurrentBPM is the natural BPM unless a post-frenzy override is still
// cooling down above it.
func (e Engine) CurrentBPM(s *RunState) float64 {
	natural := e.NaturalBPM(s)
	if s.PostFrenzyBPM > natural {
		return s.PostFrenzyBPM
	}
	return natural
}

// BeatInterval is the length of one beat in seconds.
func (e Engine) BeatInterval(s *RunState) float64 {
	return 60.0 / e.CurrentBPM(s)
}

func (e Engine) elapsed(s *RunState, now time.Time) float64 {
	el := now.Sub(s.BeatOrigin).Seconds()
	if el < 0 {
		return 0
	}
	return el
}

// BeatIndex is the number of whole beats since the anchor.
func (e Engine) BeatIndex(s *RunState, now time.Time) int64 {
	return int64(e.elapsed(s, now) / e.BeatInterval(s))
}

// BeatProgress is the position within the current beat cycle in [0, 1).
func (e Engine) BeatProgress(s *RunState, now time.Time) float64 {
	interval := e.BeatInterval(s)
	return math.Mod(e.elapsed(s, now), interval) / interval
}

// BeatDistance is the distance in seconds to the nearest beat boundary.
func (e Engine) BeatDistance(s *RunState, now time.Time) float64 {
	interval := e.BeatInterval(s)
	phase := math.Mod(e.elapsed(s, now), interval)
	return math.Min(phase, interval-phase)
}

// TickPostFrenzyBPM steps the override down 10 BPM toward natural on a
// fixed interval and deactivates it once natural is reached. Driven from
// the tick loop so the ramp replays identically from a restored
// (override, next_step) pair.
func (e Engine) TickPostFrenzyBPM(s *RunState, now time.Time) {
	if s.PostFrenzyBPM <= 0 {
		return
	}
	if now.Before(s.PostFrenzyNextStep) {
		return
	}
	natural := e.NaturalBPM(s)
	s.PostFrenzyBPM = math.Max(s.PostFrenzyBPM-10.0, natural)
	if s.PostFrenzyBPM <= natural {
		s.PostFrenzyBPM = 0 // override spent
		return
	}
	s.PostFrenzyNextStep = now.Add(e.T.PostFrenzyStepInterval)
}
