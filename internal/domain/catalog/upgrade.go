package catalog

// UpgradeEffect names what a run upgrade modifies.
type UpgradeEffect string

const (
	EffectEssencePerBite      UpgradeEffect = "essence_per_bite"
	EffectComboDecaySlow      UpgradeEffect = "combo_decay_slow"
	EffectIdleIncomeMult      UpgradeEffect = "idle_income_mult"
	EffectDoubleBiteChance    UpgradeEffect = "double_bite_chance"
	EffectGoldenDurationMult  UpgradeEffect = "golden_duration_mult"
	EffectUpgradeCostDiscount UpgradeEffect = "upgrade_cost_discount"
	EffectMaxComboMultBonus   UpgradeEffect = "max_combo_mult_bonus"
	EffectShedScaleBonus      UpgradeEffect = "shed_scale_bonus"
	EffectCosmicIncomeMult    UpgradeEffect = "cosmic_income_mult"
	EffectComboSaveChance     UpgradeEffect = "combo_save_chance"
	EffectAutoBiteChance      UpgradeEffect = "auto_bite_chance"
	EffectChainBiteChance     UpgradeEffect = "chain_bite_chance"
)

// Upgrade is one purchasable run upgrade. Definitions are immutable for the
// process lifetime.
type Upgrade struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	Effect        UpgradeEffect `json:"effect"`
	ValuePerLevel float64       `json:"value_per_level"`
	BaseCost      float64       `json:"base_cost"`
	MaxLevel      int           `json:"max_level"`
	// Tier: 0 = base pool, 1 = meta-unlocked, 2 = cosmic (stage 5+).
	Tier       int  `json:"tier"`
	CosmicOnly bool `json:"cosmic_only"`
}

var upgradeList = []Upgrade{
	{
		ID:            "fang_sharpening",
		Name:          "Fang Sharpening",
		Description:   "Each press tears deeper. +50% Essence per press per level.",
		Effect:        EffectEssencePerBite,
		ValuePerLevel: 0.5,
		BaseCost:      25,
		MaxLevel:      100,
	},
	{
		ID:            "elastic_scales",
		Name:          "Elastic Scales",
		Description:   "Combo lingers longer. +30% combo decay time per level.",
		Effect:        EffectComboDecaySlow,
		ValuePerLevel: 0.3,
		BaseCost:      50,
		MaxLevel:      100,
	},
	{
		ID:            "digestive_enzymes",
		Name:          "Digestive Enzymes",
		Description:   "Digest even while resting. +50% idle income per level.",
		Effect:        EffectIdleIncomeMult,
		ValuePerLevel: 0.5,
		BaseCost:      100,
		MaxLevel:      100,
	},
	{
		ID:            "rattletail",
		Name:          "Rattletail",
		Description:   "A lucky rattle. +8% chance of double Essence per press per level.",
		Effect:        EffectDoubleBiteChance,
		ValuePerLevel: 0.08,
		BaseCost:      75,
		MaxLevel:      10,
	},
	{
		ID:            "hypnotic_eyes",
		Name:          "Hypnotic Eyes",
		Description:   "Golden events linger in your gaze. +25% duration per level.",
		Effect:        EffectGoldenDurationMult,
		ValuePerLevel: 0.25,
		BaseCost:      150,
		MaxLevel:      20,
	},
	{
		ID:            "venomous_bite",
		Name:          "Venomous Bite",
		Description:   "Upgrades dissolve easier. -5% upgrade costs per level.",
		Effect:        EffectUpgradeCostDiscount,
		ValuePerLevel: 0.05,
		BaseCost:      250,
		MaxLevel:      11, // 11 x 5% = 55%, the discount hard cap
	},
	{
		ID:            "growth_hormone",
		Name:          "Growth Hormone",
		Description:   "Break through combo ceilings. +1 max combo tier per level.",
		Effect:        EffectMaxComboMultBonus,
		ValuePerLevel: 1.0,
		BaseCost:      200,
		MaxLevel:      30,
	},
	{
		ID:            "resilient_fangs",
		Name:          "Resilient Fangs",
		Description:   "The ouroboros refuses to let go. +15% chance a miss doesn't break your combo per level.",
		Effect:        EffectComboSaveChance,
		ValuePerLevel: 0.15,
		BaseCost:      150,
		MaxLevel:      6,
	},
	{
		ID:            "cascading_fangs",
		Name:          "Cascading Fangs",
		Description:   "One strike births another. Each bite has a cascading chance to strike again, up to 4 times.",
		Effect:        EffectChainBiteChance,
		ValuePerLevel: 0.06,
		BaseCost:      300,
		MaxLevel:      10,
	},
	{
		ID:            "serpent_instinct",
		Name:          "Serpent Instinct",
		Description:   "The snake bites by reflex. +10% chance of an automatic perfect bite each beat per level.",
		Effect:        EffectAutoBiteChance,
		ValuePerLevel: 0.10,
		BaseCost:      250,
		MaxLevel:      10,
		Tier:          1,
	},
	{
		ID:            "ancient_wisdom",
		Name:          "Ancient Wisdom",
		Description:   "Deeper sheds. +1 bonus Scale per shed per level.",
		Effect:        EffectShedScaleBonus,
		ValuePerLevel: 1.0,
		BaseCost:      150,
		MaxLevel:      50,
		Tier:          1,
	},
	{
		ID:            "ouroboros_rhythm",
		Name:          "Ouroboros Rhythm",
		Description:   "The eternal pulse. +30% Essence per press, stacks with Fang Sharpening.",
		Effect:        EffectEssencePerBite,
		ValuePerLevel: 0.3,
		BaseCost:      200,
		MaxLevel:      75,
		Tier:          1,
	},
	{
		ID:            "stellar_coils",
		Name:          "Stellar Coils",
		Description:   "Stars orbit your coils. +100% cosmic income per level.",
		Effect:        EffectCosmicIncomeMult,
		ValuePerLevel: 1.0,
		BaseCost:      1200,
		MaxLevel:      100,
		Tier:          2,
		CosmicOnly:    true,
	},
	{
		ID:            "nebula_nests",
		Name:          "Nebula Nests",
		Description:   "Idle galaxies feed you. +100% idle income per level (cosmic).",
		Effect:        EffectIdleIncomeMult,
		ValuePerLevel: 1.0,
		BaseCost:      2000,
		MaxLevel:      100,
		Tier:          2,
		CosmicOnly:    true,
	},
	{
		ID:            "void_shrines",
		Name:          "Void Shrines",
		Description:   "The void echoes your rhythm. +50% Essence per press (cosmic).",
		Effect:        EffectEssencePerBite,
		ValuePerLevel: 0.5,
		BaseCost:      2500,
		MaxLevel:      100,
		Tier:          2,
		CosmicOnly:    true,
	},
}

// Upgrades indexes every upgrade definition by id.
var Upgrades = func() map[string]Upgrade {
	m := make(map[string]Upgrade, len(upgradeList))
	for _, u := range upgradeList {
		m[u.ID] = u
	}
	return m
}()

// UpgradeOrder lists upgrade ids in catalog order. Modifier folds iterate in
// this order so the composition sequence is stable across processes.
var UpgradeOrder = func() []string {
	ids := make([]string, 0, len(upgradeList))
	for _, u := range upgradeList {
		ids = append(ids, u.ID)
	}
	return ids
}()
