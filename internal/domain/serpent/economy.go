package serpent

import (
	"math"
	"time"

	"ouroverse/internal/domain/catalog"
)

// HandlePress pays out a scored press. Returns the essence earned (zero for
// an echo-voided press).
func (e Engine) HandlePress(s *RunState) float64 {
	earned := s.EssencePerBite

	// Echo Curse: every Nth press earns nothing but still counts.
	if s.CurseID == catalog.CurseEcho {
		n := int64(catalog.Curses[catalog.CurseEcho].Magnitude)
		if s.Stats.TotalBites > 0 && s.Stats.TotalBites%n == 0 {
			s.Stats.TotalBites++
			return 0
		}
	}

	if chance := e.doubleChance(s); chance > 0 && e.Rand.Float64() < chance {
		earned *= 2.0
	}

	// Cascading chain: each success extends by one extra hit, up to 3
	// extra, on one shared chance.
	if chance := e.chainChance(s); chance > 0 {
		extra := 0
		for extra < 3 && e.Rand.Float64() < chance {
			extra++
		}
		earned *= float64(1 + extra)
	}

	s.Essence += earned
	s.Stats.TotalEssenceEarned += earned
	s.Stats.TotalBites++

	if s.VenomRushActive {
		bonus := s.ComboMultiplier * e.T.VenomRushBonusMult
		s.Essence += bonus
		s.Stats.TotalEssenceEarned += bonus
	}

	e.recomputeLength(s)
	return earned
}

// TickIdle applies idle income for dt seconds. Returns the essence earned.
func (e Engine) TickIdle(s *RunState, dt float64) float64 {
	earned := s.IdleIncomeRate * dt
	if earned > 0 {
		s.Essence += earned
		s.Stats.TotalEssenceEarned += earned
		e.recomputeLength(s)
	}
	return earned
}

// UpgradeCost is the current cost of the next level: geometric growth,
// reduced by discount upgrades (floored at 45% of nominal per discount) and
// inflated by Iron Gut.
func (e Engine) UpgradeCost(s *RunState, upgradeID string) float64 {
	def := catalog.Upgrades[upgradeID]
	level := s.UpgradeLevel(upgradeID)
	cost := def.BaseCost * math.Pow(e.T.UpgradeCostGrowth, float64(level))

	for _, uid := range catalog.UpgradeOrder {
		lvl := s.UpgradeLevel(uid)
		if lvl <= 0 {
			continue
		}
		if d := catalog.Upgrades[uid]; d.Effect == catalog.EffectUpgradeCostDiscount {
			cost *= math.Max(0.45, 1.0-d.ValuePerLevel*float64(lvl))
		}
	}

	if s.CurseID == catalog.CurseIronGut {
		cost *= catalog.Curses[catalog.CurseIronGut].Magnitude
	}
	return cost
}

// CanAfford reports whether the next level of an upgrade is payable.
func (e Engine) CanAfford(s *RunState, upgradeID string) bool {
	return s.Essence >= e.UpgradeCost(s, upgradeID)
}

// UpgradeAvailable reports whether an upgrade can be offered at the current
// growth stage. Cosmic upgrades unlock at the Continental Coil stage.
func (e Engine) UpgradeAvailable(s *RunState, upgradeID string) bool {
	def, ok := catalog.Upgrades[upgradeID]
	if !ok {
		return false
	}
	return !def.CosmicOnly || s.StageIndex >= 5
}

// Purchase buys one level of an upgrade. Rejected (false) when unknown,
// already maxed, or unaffordable. Spending essence shrinks the snake: the
// length is always recomputed from post-spend essence.
func (e Engine) Purchase(s *RunState, upgradeID string, now time.Time) bool {
	def, ok := catalog.Upgrades[upgradeID]
	if !ok || !e.UpgradeAvailable(s, upgradeID) {
		return false
	}
	level := s.UpgradeLevel(upgradeID)
	if level >= def.MaxLevel {
		return false
	}
	cost := e.UpgradeCost(s, upgradeID)
	if s.Essence < cost {
		return false
	}

	s.Essence -= cost
	e.recomputeLength(s)

	if s.UpgradeLevels == nil {
		s.UpgradeLevels = map[string]int{}
	}
	s.UpgradeLevels[upgradeID] = level + 1

	e.ComputeDerived(s, now)
	return true
}

// recomputeLength derives the visible length from essence. Length is a
// function of essence, not an independent counter.
func (e Engine) recomputeLength(s *RunState) {
	s.SnakeLength = 3 + int(s.Essence/e.T.EssencePerLength)
	s.RecordLength()
}
