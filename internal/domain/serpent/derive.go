package serpent

import (
	"math"
	"time"

	"ouroverse/internal/domain/catalog"
)

// ComputeDerived refolds the modifier catalogs into the two load-bearing
// scalars, essence per bite and idle income rate. It is pure over
// (state, now) and is re-run every tick and after every purchase, shed, and
// ascension; derived values are never patched incrementally.
//
// The essence-per-bite composition order is part of the contract:
// base -> owned upgrades (catalog order) -> scales bonus -> combo
// multiplier -> archetype -> curse -> ascension upgrades -> cosmic-tier
// income upgrades.
func (e Engine) ComputeDerived(s *RunState, now time.Time) {
	epp := e.T.BaseEssencePerBite

	for _, uid := range catalog.UpgradeOrder {
		level := s.UpgradeLevel(uid)
		if level <= 0 {
			continue
		}
		if def := catalog.Upgrades[uid]; def.Effect == catalog.EffectEssencePerBite {
			epp *= 1.0 + def.ValuePerLevel*float64(level)
		}
	}

	epp *= 1.0 + s.Scales*e.T.ScaleMultiplierPer
	epp *= s.ComboMultiplier

	arch, hasArch := catalog.Archetypes[s.ArchetypeID]
	if hasArch {
		epp *= arch.EPPMult
	}

	if s.CurseID == catalog.CurseDullFangs {
		epp *= catalog.Curses[catalog.CurseDullFangs].Magnitude
	}

	for _, uid := range catalog.AscensionOrder {
		level := s.AscensionLevels[uid]
		if level <= 0 {
			continue
		}
		if def := catalog.AscensionUpgrades[uid]; def.Effect == catalog.AscensionEPPMult {
			epp *= 1.0 + def.ValuePerLevel*float64(level)
		}
	}

	for _, uid := range catalog.UpgradeOrder {
		level := s.UpgradeLevel(uid)
		if level <= 0 {
			continue
		}
		if def := catalog.Upgrades[uid]; def.Effect == catalog.EffectCosmicIncomeMult {
			epp *= 1.0 + def.ValuePerLevel*float64(level)
		}
	}

	s.EssencePerBite = epp

	idle := epp * e.T.BaseIdleFraction
	for _, uid := range catalog.UpgradeOrder {
		level := s.UpgradeLevel(uid)
		if level <= 0 {
			continue
		}
		if def := catalog.Upgrades[uid]; def.Effect == catalog.EffectIdleIncomeMult {
			idle *= 1.0 + def.ValuePerLevel*float64(level)
		}
	}
	if hasArch {
		idle *= arch.IdleMult
	}
	for _, uid := range catalog.AscensionOrder {
		level := s.AscensionLevels[uid]
		if level <= 0 {
			continue
		}
		if def := catalog.AscensionUpgrades[uid]; def.Effect == catalog.AscensionIdleBonus {
			idle *= 1.0 + def.ValuePerLevel*float64(level)
		}
	}

	// Frail Coils suppresses idle income for the first N seconds of the run.
	if s.CurseID == catalog.CurseFrailCoils && !s.Stats.RunStartTime.IsZero() {
		suppress := catalog.Curses[catalog.CurseFrailCoils].Magnitude
		if now.Sub(s.Stats.RunStartTime).Seconds() < suppress {
			idle = 0
		}
	}

	s.IdleIncomeRate = idle
}

// TimingWindow is the good window in seconds: the base window widened by
// every owned upgrade level, then scaled by the archetype.
func (e Engine) TimingWindow(s *RunState) float64 {
	ms := e.T.TimingWindowMS
	total := 0
	for _, level := range s.UpgradeLevels {
		total += level
	}
	ms += float64(total) * e.T.FeedbackLoopMSPerLevel
	window := ms / 1000.0
	if arch, ok := catalog.Archetypes[s.ArchetypeID]; ok {
		window *= arch.TimingMult
	}
	return window
}

// PerfectWindow is the inner window in seconds, 40% wider for Rhythm
// Incarnate.
func (e Engine) PerfectWindow(s *RunState) float64 {
	ms := e.T.PerfectWindowMS
	if s.ArchetypeID == catalog.ArchetypeRhythmIncarnate {
		ms *= 1.40
	}
	return ms / 1000.0
}

// CooldownFraction is the share of a beat the mouth stays locked after a
// bite, inflated by Twitchy Jaw but capped so the mouth always reopens.
func (e Engine) CooldownFraction(s *RunState) float64 {
	frac := e.T.BiteCooldownFraction
	if s.CurseID == catalog.CurseTwitchyJaw {
		frac *= catalog.Curses[catalog.CurseTwitchyJaw].Magnitude
	}
	return math.Min(frac, 0.95)
}

// CooldownSeconds is the post-bite mouth lock in wall-clock seconds. Clients
// cannot derive it themselves because the curse inflation is server-side.
func (e Engine) CooldownSeconds(s *RunState) float64 {
	return e.BeatInterval(s) * e.CooldownFraction(s)
}

// resolveComboMultiplier maps combo hits onto the tier table. The archetype
// tier bonus applies to every active tier; the Growth Hormone bonus applies
// only at the top tier.
func (e Engine) resolveComboMultiplier(s *RunState) float64 {
	tiers := e.T.ComboTiers
	topHits := tiers[len(tiers)-1].Hits

	tierBonus := 0.0
	if arch, ok := catalog.Archetypes[s.ArchetypeID]; ok {
		tierBonus = arch.ComboTierBonus
	}

	topTierBonus := 0.0
	for _, uid := range catalog.UpgradeOrder {
		level := s.UpgradeLevel(uid)
		if level <= 0 {
			continue
		}
		if def := catalog.Upgrades[uid]; def.Effect == catalog.EffectMaxComboMultBonus {
			topTierBonus += def.ValuePerLevel * float64(level)
		}
	}

	mult := 1.0
	for _, tier := range tiers {
		if s.ComboHits < tier.Hits {
			continue
		}
		bonus := tierBonus
		if tier.Hits == topHits {
			bonus += topTierBonus
		}
		mult = tier.Mult + bonus
	}
	return math.Max(mult, 1.0)
}

// saveChance sums combo-save contributions, capped at 0.95.
func (e Engine) saveChance(s *RunState) float64 {
	return e.sumEffect(s, catalog.EffectComboSaveChance, 0.95)
}

// doubleChance sums double-reward contributions, capped at 0.95.
func (e Engine) doubleChance(s *RunState) float64 {
	return e.sumEffect(s, catalog.EffectDoubleBiteChance, 0.95)
}

// chainChance is the shared cascading-hit chance, capped at 0.80.
func (e Engine) chainChance(s *RunState) float64 {
	return e.sumEffect(s, catalog.EffectChainBiteChance, 0.80)
}

// autoBiteChance sums auto-bite contributions; the overall cap is applied
// by the scheduler after the idle-escalation bonus.
func (e Engine) autoBiteChance(s *RunState) float64 {
	return e.sumEffect(s, catalog.EffectAutoBiteChance, 1.0)
}

func (e Engine) sumEffect(s *RunState, effect catalog.UpgradeEffect, cap float64) float64 {
	chance := 0.0
	for _, uid := range catalog.UpgradeOrder {
		level := s.UpgradeLevel(uid)
		if level <= 0 {
			continue
		}
		if def := catalog.Upgrades[uid]; def.Effect == effect {
			chance += def.ValuePerLevel * float64(level)
		}
	}
	return math.Min(chance, cap)
}
