package serpent

import (
	"math"
	"time"

	"ouroverse/internal/domain/catalog"
)

// TickComboDecay resets the combo when too many beats pass without a scored
// hit. Elastic Scales stretches the beat tolerance.
func (e Engine) TickComboDecay(s *RunState, now time.Time) {
	if s.ComboHits == 0 || s.FrenzyActive {
		return
	}

	missed := e.BeatIndex(s, now) - s.LastScoredBeatIndex

	tolerance := int64(e.T.ComboMissTolerance)
	for _, uid := range catalog.UpgradeOrder {
		level := s.UpgradeLevel(uid)
		if level <= 0 {
			continue
		}
		if def := catalog.Upgrades[uid]; def.Effect == catalog.EffectComboDecaySlow {
			tolerance = int64(math.Round(float64(tolerance) * (1.0 + def.ValuePerLevel*float64(level))))
		}
	}

	if missed >= tolerance {
		s.ComboHits = 0
		s.ComboMisses = 0
		s.ComboMultiplier = 1.0
	}
}

// TickVenomRush expires the rush once its beat window has passed.
func (e Engine) TickVenomRush(s *RunState, now time.Time) {
	if !s.VenomRushActive {
		return
	}
	if e.BeatIndex(s, now) >= s.VenomRushEndBeat {
		s.VenomRushActive = false
	}
}
