package serpent

import "time"

// ComboTier maps a hit threshold to a combo multiplier. The highest
// threshold met wins.
type ComboTier struct {
	Hits int
	Mult float64
}

// GrowthStage is one prestige stage with its entry length threshold.
type GrowthStage struct {
	MinLength int
	Name      string
}

// Suffix is one large-number formatting threshold.
type Suffix struct {
	Threshold float64
	Label     string
}

// Tuning holds every balance knob. A value is injected into the Engine so
// tests can run alternate tables; it is never a package global.
type Tuning struct {
	// Rhythm
	BaseBPM              float64
	BPMMilestoneLength   int
	BPMPerMilestone      float64
	MaxBPM               float64
	TimingWindowMS       float64
	PerfectWindowMS      float64
	BiteCooldownFraction float64
	// Each total owned upgrade level widens the good window by this much.
	FeedbackLoopMSPerLevel float64

	VenomRushTriggerStreak int
	VenomRushBeats         int
	VenomRushBonusMult     float64

	IdleEscalationRate float64
	IdleEscalationCap  float64

	ComboTiers         []ComboTier
	ComboMissTolerance int

	// Economy
	BaseEssencePerBite float64
	EssencePerLength   float64
	BaseIdleFraction   float64
	UpgradeCostGrowth  float64

	// Prestige
	ScaleMultiplierPer float64
	GrowthStages       []GrowthStage

	// Frenzy
	FrenzyDuration          time.Duration
	FrenzyComboBonusPerTier time.Duration
	FrenzyRewardMult        float64
	PostFrenzyStepInterval  time.Duration
	PostFrenzyFirstStep     time.Duration

	// Session
	CatchupClamp       time.Duration
	AutosaveInterval   time.Duration
	SnapshotStaleAfter time.Duration

	Suffixes []Suffix
}

// DefaultTuning returns the shipped balance table.
func DefaultTuning() Tuning {
	return Tuning{
		BaseBPM:                60.0,
		BPMMilestoneLength:     15_000,
		BPMPerMilestone:        1.0,
		MaxBPM:                 120.0,
		TimingWindowMS:         140.0,
		PerfectWindowMS:        55.0,
		BiteCooldownFraction:   0.65,
		FeedbackLoopMSPerLevel: 1.0,

		VenomRushTriggerStreak: 5,
		VenomRushBeats:         3,
		VenomRushBonusMult:     2.0,

		IdleEscalationRate: 0.02,
		IdleEscalationCap:  0.50,

		ComboTiers: []ComboTier{
			{Hits: 0, Mult: 1.0},
			{Hits: 5, Mult: 1.5},
			{Hits: 15, Mult: 2.0},
			{Hits: 30, Mult: 3.0},
			{Hits: 60, Mult: 5.0},
			{Hits: 100, Mult: 8.0},
		},
		ComboMissTolerance: 2,

		BaseEssencePerBite: 1.0,
		EssencePerLength:   10.0,
		BaseIdleFraction:   0.02,
		UpgradeCostGrowth:  1.40,

		ScaleMultiplierPer: 0.1,
		GrowthStages: []GrowthStage{
			{MinLength: 0, Name: "Hatchling"},
			{MinLength: 100, Name: "Snakelet"},
			{MinLength: 500, Name: "Local Predator"},
			{MinLength: 2_000, Name: "Regional Devourer"},
			{MinLength: 10_000, Name: "National Constrictor"},
			{MinLength: 50_000, Name: "Continental Coil"},
			{MinLength: 150_000, Name: "Global Serpent"},
			{MinLength: 350_000, Name: "Stellar Devourer"},
			{MinLength: 650_000, Name: "Galactic Ouroboros"},
			{MinLength: 900_000, Name: "Cosmic Scale"},
		},

		FrenzyDuration:          8 * time.Second,
		FrenzyComboBonusPerTier: 500 * time.Millisecond,
		FrenzyRewardMult:        20.0,
		PostFrenzyStepInterval:  5 * time.Second,
		PostFrenzyFirstStep:     10 * time.Second,

		CatchupClamp:       60 * time.Second,
		AutosaveInterval:   30 * time.Second,
		SnapshotStaleAfter: time.Hour,

		Suffixes: []Suffix{
			{Threshold: 1e3, Label: "K"},
			{Threshold: 1e6, Label: "M"},
			{Threshold: 1e9, Label: "B"},
			{Threshold: 1e12, Label: "T"},
			{Threshold: 1e15, Label: "Qa"},
			{Threshold: 1e18, Label: "Qi"},
		},
	}
}
