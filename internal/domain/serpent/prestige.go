package serpent

import (
	"math"
	"time"

	"ouroverse/internal/domain/catalog"
)

// CanShed reports whether the snake has reached the next growth stage.
func (e Engine) CanShed(s *RunState) bool {
	next := s.StageIndex + 1
	if next >= len(e.T.GrowthStages) {
		return false
	}
	return s.SnakeLength >= e.T.GrowthStages[next].MinLength
}

// ScalesReward is what a shed would yield at the current length:
// floor(sqrt(length)), plus flat shed-bonus upgrades, scaled by the Scale
// Harvest ascension upgrade, and cut for the first shed under Shedless Skin.
func (e Engine) ScalesReward(s *RunState) float64 {
	reward := math.Floor(math.Sqrt(float64(s.SnakeLength)))

	for _, uid := range catalog.UpgradeOrder {
		level := s.UpgradeLevel(uid)
		if level <= 0 {
			continue
		}
		if def := catalog.Upgrades[uid]; def.Effect == catalog.EffectShedScaleBonus {
			reward += def.ValuePerLevel * float64(level)
		}
	}

	for _, uid := range catalog.AscensionOrder {
		level := s.AscensionLevels[uid]
		if level <= 0 {
			continue
		}
		if def := catalog.AscensionUpgrades[uid]; def.Effect == catalog.AscensionShedScalesMult {
			reward *= 1.0 + def.ValuePerLevel*float64(level)
		}
	}

	if s.CurseID == catalog.CurseShedlessSkin && s.Stats.Sheds == 0 {
		reward *= catalog.Curses[catalog.CurseShedlessSkin].Magnitude
	}
	return reward
}

// Shed advances one growth stage. Upgrades and scales are kept; length
// resets to half the new stage threshold and every rhythm transient clears.
// The beat grid re-anchors, one of the two sanctioned moves of BeatOrigin.
// Returns the scales earned, zero when shedding is not available.
func (e Engine) Shed(s *RunState, now time.Time) float64 {
	if !e.CanShed(s) {
		return 0
	}

	earned := e.ScalesReward(s)

	s.StageIndex++
	threshold := e.T.GrowthStages[s.StageIndex].MinLength

	s.Scales += earned
	s.TotalScalesEarned += earned

	s.SnakeLength = max(3, threshold/2)
	s.Essence = float64(s.SnakeLength) * e.T.EssencePerLength

	e.resetRhythmTransients(s, now)
	s.Stats.Sheds++

	e.ComputeDerived(s, now)
	return earned
}

// CanAscend reports whether the final stage threshold has been reached.
func (e Engine) CanAscend(s *RunState) bool {
	final := len(e.T.GrowthStages) - 1
	if s.StageIndex != final {
		return false
	}
	return s.SnakeLength >= e.T.GrowthStages[final].MinLength
}

// AscendCarryover extracts what survives an ascension: scales, lifetime
// scales, and the permanent upgrade levels. The next run is rolled fresh
// from this via NewRun.
func (e Engine) AscendCarryover(s *RunState) Carryover {
	levels := make(map[string]int, len(s.AscensionLevels))
	for uid, level := range s.AscensionLevels {
		levels[uid] = level
	}
	return Carryover{
		Scales:            s.Scales,
		TotalScalesEarned: s.TotalScalesEarned,
		AscensionLevels:   levels,
	}
}

// PurchaseAscension buys one level of a permanent upgrade with scales.
// Rejected when unknown, maxed, or unaffordable.
func (e Engine) PurchaseAscension(s *RunState, upgradeID string) bool {
	def, ok := catalog.AscensionUpgrades[upgradeID]
	if !ok {
		return false
	}
	level := s.AscensionLevels[upgradeID]
	if level >= def.MaxLevel {
		return false
	}
	cost := def.CostAtLevel(level)
	if s.Scales < cost {
		return false
	}
	s.Scales -= cost
	if s.AscensionLevels == nil {
		s.AscensionLevels = map[string]int{}
	}
	s.AscensionLevels[upgradeID] = level + 1
	return true
}

// KnowledgeReward is the meta currency a finished run banks:
// max(1, floor(log2(peak_length))) + sheds.
func KnowledgeReward(stats RunStats) int {
	if stats.PeakLength <= 0 {
		return 0
	}
	base := int(math.Log2(math.Max(1, float64(stats.PeakLength))))
	if base < 1 {
		base = 1
	}
	return base + stats.Sheds
}

func (e Engine) resetRhythmTransients(s *RunState, now time.Time) {
	s.ComboHits = 0
	s.ComboMisses = 0
	s.ComboMultiplier = 1.0
	s.LastScoredBeatIndex = -1
	s.LastAutoBiteBeatIndex = -1
	s.IdleSeconds = 0
	s.PerfectStreak = 0
	s.VenomRushActive = false
	s.VenomRushEndBeat = -1
	s.MouthOpen = true
	s.BiteCooldownUntil = time.Time{}
	s.LastBiteResult = ""
	s.FrenzyActive = false
	s.FrenzyEndTime = time.Time{}
	s.FrenzyPresses = 0
	s.PostFrenzyBPM = 0
	s.PostFrenzyNextStep = time.Time{}
	s.BeatOrigin = now
}
