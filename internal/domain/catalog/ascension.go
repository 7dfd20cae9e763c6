package catalog

import "math"

// AscensionEffect names what a permanent ascension upgrade modifies.
type AscensionEffect string

const (
	AscensionStartingEssence AscensionEffect = "starting_essence"
	AscensionStartingLength  AscensionEffect = "starting_length"
	AscensionIdleBonus       AscensionEffect = "idle_bonus"
	AscensionEPPMult         AscensionEffect = "epp_mult"
	AscensionShedScalesMult  AscensionEffect = "shed_scales_mult"
	AscensionMaxBPMBonus     AscensionEffect = "max_bpm_bonus"
	AscensionExtraOffering   AscensionEffect = "extra_offering"
)

// AscensionUpgrade is a permanent meta upgrade bought with Scales. Effects
// persist across all subsequent runs.
type AscensionUpgrade struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Effect        AscensionEffect `json:"effect"`
	ValuePerLevel float64         `json:"value_per_level"`
	BaseCost      float64         `json:"base_cost"`
	CostGrowth    float64         `json:"cost_growth"`
	MaxLevel      int             `json:"max_level"`
}

// CostAtLevel is the Scales cost of the next purchase given the level owned.
func (u AscensionUpgrade) CostAtLevel(currentLevel int) float64 {
	return math.Trunc(u.BaseCost * math.Pow(u.CostGrowth, float64(currentLevel)))
}

var ascensionList = []AscensionUpgrade{
	{
		ID:            "serpent_memory",
		Name:          "Serpent Memory",
		Description:   "+50 starting Essence per level",
		Effect:        AscensionStartingEssence,
		ValuePerLevel: 50.0,
		BaseCost:      50_000,
		CostGrowth:    2.0,
		MaxLevel:      10,
	},
	{
		ID:            "ancient_coil",
		Name:          "Ancient Coil",
		Description:   "+10 starting Length per level",
		Effect:        AscensionStartingLength,
		ValuePerLevel: 10.0,
		BaseCost:      100_000,
		CostGrowth:    2.5,
		MaxLevel:      5,
	},
	{
		ID:            "endless_drift",
		Name:          "Endless Drift",
		Description:   "Idle income x (1 + 10% per level)",
		Effect:        AscensionIdleBonus,
		ValuePerLevel: 0.10,
		BaseCost:      200_000,
		CostGrowth:    2.5,
		MaxLevel:      5,
	},
	{
		ID:            "serpent_hoard",
		Name:          "Serpent's Hoard",
		Description:   "+1 upgrade offering slot per level",
		Effect:        AscensionExtraOffering,
		ValuePerLevel: 1.0,
		BaseCost:      500_000,
		CostGrowth:    3.0,
		MaxLevel:      3,
	},
	{
		ID:            "void_fang",
		Name:          "Void Fang",
		Description:   "Global essence per press x (1 + 50% per level)",
		Effect:        AscensionEPPMult,
		ValuePerLevel: 0.50,
		BaseCost:      400_000,
		CostGrowth:    2.5,
		MaxLevel:      5,
	},
	{
		ID:            "scale_harvest",
		Name:          "Scale Harvest",
		Description:   "Scales per shed x (1 + 25% per level)",
		Effect:        AscensionShedScalesMult,
		ValuePerLevel: 0.25,
		BaseCost:      250_000,
		CostGrowth:    2.5,
		MaxLevel:      5,
	},
	{
		ID:            "cosmic_tempo",
		Name:          "Cosmic Tempo",
		Description:   "+10 max BPM cap per level",
		Effect:        AscensionMaxBPMBonus,
		ValuePerLevel: 10.0,
		BaseCost:      300_000,
		CostGrowth:    2.5,
		MaxLevel:      5,
	},
}

// AscensionUpgrades indexes every ascension upgrade by id.
var AscensionUpgrades = func() map[string]AscensionUpgrade {
	m := make(map[string]AscensionUpgrade, len(ascensionList))
	for _, u := range ascensionList {
		m[u.ID] = u
	}
	return m
}()

// AscensionOrder lists ascension upgrade ids in catalog order.
var AscensionOrder = func() []string {
	ids := make([]string, 0, len(ascensionList))
	for _, u := range ascensionList {
		ids = append(ids, u.ID)
	}
	return ids
}()
