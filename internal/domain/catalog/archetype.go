package catalog

// Archetype is a build identity chosen at run start.
type Archetype struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Tagline     string `json:"tagline"`
	Description string `json:"description"`
	// StartingUpgrades grants free upgrade levels at run start.
	StartingUpgrades map[string]int `json:"starting_upgrades,omitempty"`
	// EPPMult multiplies essence per bite.
	EPPMult float64 `json:"epp_mult"`
	// IdleMult multiplies idle income.
	IdleMult float64 `json:"idle_mult"`
	// TimingMult scales the good window (>1 = more forgiving).
	TimingMult float64 `json:"timing_mult"`
	// ComboTierBonus is added to every resolved combo tier multiplier.
	ComboTierBonus float64 `json:"combo_tier_bonus"`
}

const (
	ArchetypeCoiledStriker    = "coiled_striker"
	ArchetypePatientOuroboros = "patient_ouroboros"
	ArchetypeRhythmIncarnate  = "rhythm_incarnate"
)

var archetypeList = []Archetype{
	{
		ID:      ArchetypeCoiledStriker,
		Name:    "Coiled Striker",
		Tagline: "Strike fast. Strike hard.",
		Description: "You live at the beat boundary. Start with Fang Sharpening Lv2. " +
			"All combo tiers grant +0.5x bonus, but the timing window is 20% tighter.",
		StartingUpgrades: map[string]int{"fang_sharpening": 2},
		EPPMult:          1.0,
		IdleMult:         0.5,
		TimingMult:       0.80,
		ComboTierBonus:   0.5,
	},
	{
		ID:      ArchetypePatientOuroboros,
		Name:    "Patient Ouroboros",
		Tagline: "The coil tightens while you rest.",
		Description: "You grow in silence. Start with Digestive Enzymes Lv2. " +
			"Idle income is doubled, but active combo builds half as fast.",
		StartingUpgrades: map[string]int{"digestive_enzymes": 2},
		EPPMult:          0.8,
		IdleMult:         2.0,
		TimingMult:       1.0,
		ComboTierBonus:   0.0,
	},
	{
		ID:      ArchetypeRhythmIncarnate,
		Name:    "Rhythm Incarnate",
		Tagline: "You are the beat.",
		Description: "Pure tempo mastery. No starting upgrades, but the perfect window is " +
			"40% wider and Venom Rush triggers after only 3 perfect bites instead of 5.",
		EPPMult:        1.0,
		IdleMult:       1.0,
		TimingMult:     1.0,
		ComboTierBonus: 0.0,
		// Perfect-window widening and the lowered Venom Rush trigger are
		// resolved by the engine from the archetype id.
	},
}

// Archetypes indexes every archetype definition by id.
var Archetypes = func() map[string]Archetype {
	m := make(map[string]Archetype, len(archetypeList))
	for _, a := range archetypeList {
		m[a.ID] = a
	}
	return m
}()

// ArchetypeOrder lists archetype ids in catalog order, used for random rolls.
var ArchetypeOrder = func() []string {
	ids := make([]string, 0, len(archetypeList))
	for _, a := range archetypeList {
		ids = append(ids, a.ID)
	}
	return ids
}()
