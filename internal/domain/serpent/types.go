package serpent

import "time"

// Outcome is the result of one bite attempt.
type Outcome string

const (
	OutcomePerfect Outcome = "perfect"
	OutcomeGood    Outcome = "good"
	OutcomeMiss    Outcome = "miss"
	// OutcomeSaved is a miss that a combo-save roll turned harmless.
	OutcomeSaved Outcome = "saved"
	// OutcomeSwallowed means the press was eaten by the mouth cooldown and
	// must produce no feedback at all, not even a miss.
	OutcomeSwallowed Outcome = "swallowed"
)

// Scored reports whether the outcome should reach the economy ledger.
func (o Outcome) Scored() bool {
	return o == OutcomePerfect || o == OutcomeGood || o == OutcomeMiss || o == OutcomeSaved
}

// RunStats tracks lifetime metrics for the current run.
type RunStats struct {
	PeakLength         int       `json:"peak_length"`
	TotalEssenceEarned float64   `json:"total_essence_earned"`
	TotalBites         int64     `json:"total_bites"`
	Sheds              int       `json:"sheds"`
	ComboHigh          float64   `json:"combo_high"`
	RunStartTime       time.Time `json:"run_start_time"`
}

// RunState is the complete mutable state for one run. It is owned by the
// session and mutated only under its lock.
type RunState struct {
	RunID string `json:"run_id"`

	Essence     float64 `json:"essence"`
	SnakeLength int     `json:"snake_length"`

	StageIndex int `json:"stage_index"`

	Scales            float64 `json:"scales"`
	TotalScalesEarned float64 `json:"total_scales_earned"`

	ArchetypeID string `json:"archetype_id"`
	CurseID     string `json:"curse_id"`

	ComboHits       int     `json:"combo_hits"`
	ComboMisses     int     `json:"combo_misses"`
	ComboMultiplier float64 `json:"combo_multiplier"`

	// BeatOrigin anchors the absolute beat clock. It is never moved by
	// player input; only shed and ascension re-anchor it.
	BeatOrigin            time.Time `json:"beat_origin"`
	LastScoredBeatIndex   int64     `json:"last_scored_beat_index"`
	LastAutoBiteBeatIndex int64     `json:"last_auto_bite_beat_index"`

	// IdleSeconds counts seconds since the last manual press.
	IdleSeconds float64 `json:"idle_seconds"`

	PerfectStreak    int   `json:"perfect_streak"`
	VenomRushActive  bool  `json:"venom_rush_active"`
	VenomRushEndBeat int64 `json:"venom_rush_end_beat"`

	MouthOpen         bool      `json:"mouth_open"`
	BiteCooldownUntil time.Time `json:"bite_cooldown_until"`
	LastBiteResult    Outcome   `json:"last_bite_result"`

	FrenzyActive  bool      `json:"frenzy_active"`
	FrenzyEndTime time.Time `json:"frenzy_end_time"`
	FrenzyPresses int       `json:"frenzy_presses"`

	// PostFrenzyBPM > 0 overrides the natural BPM after a frenzy and is
	// stepped down every PostFrenzyStepInterval until it reaches natural.
	PostFrenzyBPM      float64   `json:"post_frenzy_bpm"`
	PostFrenzyNextStep time.Time `json:"post_frenzy_next_step"`

	UpgradeLevels map[string]int `json:"upgrade_levels"`
	// AscensionLevels are copied in at run start and read-only during the
	// run except for ascension-screen purchases.
	AscensionLevels map[string]int `json:"ascension_levels"`

	// Derived caches, recomputed by ComputeDerived. Persisted for display
	// continuity only; restore always recomputes them.
	EssencePerBite float64 `json:"essence_per_bite"`
	IdleIncomeRate float64 `json:"idle_income_rate"`

	Stats RunStats `json:"stats"`
}

// RecordLength refreshes the peak-length stat.
func (s *RunState) RecordLength() {
	if s.SnakeLength > s.Stats.PeakLength {
		s.Stats.PeakLength = s.SnakeLength
	}
}

// UpgradeLevel returns the owned level of an upgrade, zero if never bought.
func (s *RunState) UpgradeLevel(id string) int {
	if s.UpgradeLevels == nil {
		return 0
	}
	return s.UpgradeLevels[id]
}
