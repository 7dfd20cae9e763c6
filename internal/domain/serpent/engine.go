package serpent

import (
	"time"

	"github.com/google/uuid"

	"ouroverse/internal/domain/catalog"
)

// Engine evaluates bites against the absolute beat clock and folds the
// modifier catalogs into the run's derived scalars. Every method is a
// synchronous, bounded-time state transition; nothing here blocks or fails.
type Engine struct {
	T    Tuning
	Rand Rand
}

// NewEngine builds an engine around a balance table. A nil Rand falls back
// to the process-wide source.
func NewEngine(t Tuning, r Rand) Engine {
	if r == nil {
		r = SystemRand()
	}
	return Engine{T: t, Rand: r}
}

// Carryover is what survives an ascension into the next run.
type Carryover struct {
	Scales            float64
	TotalScalesEarned float64
	AscensionLevels   map[string]int
}

// NewRun rolls a fresh run: random archetype and curse, the archetype's
// starting upgrades, and the permanent ascension starting bonuses.
func (e Engine) NewRun(now time.Time, carry Carryover) *RunState {
	archetypeID := catalog.ArchetypeOrder[e.Rand.IntN(len(catalog.ArchetypeOrder))]
	curseID := catalog.CurseOrder[e.Rand.IntN(len(catalog.CurseOrder))]

	s := &RunState{
		RunID:                 uuid.NewString(),
		SnakeLength:           3,
		Scales:                carry.Scales,
		TotalScalesEarned:     carry.TotalScalesEarned,
		ArchetypeID:           archetypeID,
		CurseID:               curseID,
		ComboMultiplier:       1.0,
		BeatOrigin:            now,
		LastScoredBeatIndex:   -1,
		LastAutoBiteBeatIndex: -1,
		VenomRushEndBeat:      -1,
		MouthOpen:             true,
		UpgradeLevels:         map[string]int{},
		AscensionLevels:       map[string]int{},
		EssencePerBite:        1.0,
		Stats:                 RunStats{ComboHigh: 1.0, RunStartTime: now},
	}

	arch := catalog.Archetypes[archetypeID]
	for uid, level := range arch.StartingUpgrades {
		s.UpgradeLevels[uid] = level
	}

	for uid, level := range carry.AscensionLevels {
		s.AscensionLevels[uid] = level
	}
	e.applyAscensionStartingBonuses(s)

	e.ComputeDerived(s, now)
	return s
}

// applyAscensionStartingBonuses applies the flat starting-essence and
// starting-length ascension effects to a freshly created state.
func (e Engine) applyAscensionStartingBonuses(s *RunState) {
	for _, uid := range catalog.AscensionOrder {
		level := s.AscensionLevels[uid]
		if level <= 0 {
			continue
		}
		def := catalog.AscensionUpgrades[uid]
		switch def.Effect {
		case catalog.AscensionStartingEssence:
			s.Essence += def.ValuePerLevel * float64(level)
		case catalog.AscensionStartingLength:
			bonus := int(def.ValuePerLevel * float64(level))
			if s.SnakeLength < 3 {
				s.SnakeLength = 3
			}
			s.SnakeLength += bonus
			// Keep essence consistent with the granted length.
			floor := float64(s.SnakeLength) * e.T.EssencePerLength
			if s.Essence < floor {
				s.Essence = floor
			}
		}
	}
	s.RecordLength()
}

// Restore prepares a snapshot loaded from persistence for play: a stale
// beat origin is re-anchored to now so a day-old save does not replay a
// huge beat offset, and the derived scalars are recomputed.
func (e Engine) Restore(s *RunState, now time.Time) {
	if now.Sub(s.BeatOrigin) > e.T.SnapshotStaleAfter {
		s.BeatOrigin = now
	}
	if s.UpgradeLevels == nil {
		s.UpgradeLevels = map[string]int{}
	}
	if s.AscensionLevels == nil {
		s.AscensionLevels = map[string]int{}
	}
	if s.ComboMultiplier < 1.0 {
		s.ComboMultiplier = 1.0
	}
	e.ComputeDerived(s, now)
}
