package serpent

import "time"

// Feeding Frenzy: a timed bypass where every press scores unconditionally.
// The event scheduler that decides when a frenzy becomes available is an
// external collaborator; the engine owns the lifecycle because the bite
// resolver's bypass and the post-frenzy BPM ramp depend on it.

// StartFrenzy activates the frenzy window. Each combo tier already earned
// adds bonus duration. The mouth opens immediately so the first press
// scores right away.
func (e Engine) StartFrenzy(s *RunState, now time.Time) {
	tiersEarned := 0
	for _, tier := range e.T.ComboTiers {
		if s.ComboHits >= tier.Hits {
			tiersEarned++
		}
	}
	bonus := time.Duration(tiersEarned) * e.T.FrenzyComboBonusPerTier

	s.FrenzyActive = true
	s.FrenzyEndTime = now.Add(e.T.FrenzyDuration + bonus)
	s.FrenzyPresses = 0
	s.MouthOpen = true
	s.BiteCooldownUntil = time.Time{}
}

// TickFrenzy expires the frenzy, pays the mash reward, and arms the
// post-frenzy BPM override at max tempo with the first step-down deferred.
// Returns the reward paid, zero while the frenzy is still running.
func (e Engine) TickFrenzy(s *RunState, now time.Time) float64 {
	if !s.FrenzyActive || now.Before(s.FrenzyEndTime) {
		return 0
	}
	s.FrenzyActive = false

	reward := s.EssencePerBite * float64(s.FrenzyPresses) * e.T.FrenzyRewardMult
	s.Essence += reward
	s.Stats.TotalEssenceEarned += reward
	s.FrenzyPresses = 0
	e.recomputeLength(s)

	s.PostFrenzyBPM = e.T.MaxBPM
	s.PostFrenzyNextStep = now.Add(e.T.PostFrenzyFirstStep)
	return reward
}
