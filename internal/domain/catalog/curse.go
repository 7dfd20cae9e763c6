package catalog

// Curse is a run-long debuff rolled at run start. Magnitude is interpreted
// by the engine based on the curse id.
type Curse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Magnitude   float64 `json:"magnitude"`
}

const (
	CurseBrittleScales = "brittle_scales"
	CurseDullFangs     = "dull_fangs"
	CurseIronGut       = "iron_gut"
	CurseCloudedVision = "clouded_vision"
	CurseTwitchyJaw    = "twitchy_jaw"
	CurseShedlessSkin  = "shedless_skin"
	CurseFrailCoils    = "frail_coils"
	CurseEcho          = "echo_curse"
)

var curseList = []Curse{
	{
		ID:          CurseBrittleScales,
		Name:        "Brittle Scales",
		Description: "Every miss deals double combo damage.",
		Magnitude:   2.0,
	},
	{
		ID:          CurseDullFangs,
		Name:        "Dull Fangs",
		Description: "-30% base Essence per press.",
		Magnitude:   0.70,
	},
	{
		ID:          CurseIronGut,
		Name:        "Iron Gut",
		Description: "All upgrades cost 40% more.",
		Magnitude:   1.40,
	},
	{
		ID:          CurseCloudedVision,
		Name:        "Clouded Vision",
		Description: "Golden events are 50% shorter.",
		Magnitude:   0.50,
	},
	{
		ID:          CurseTwitchyJaw,
		Name:        "Twitchy Jaw",
		Description: "Bite cooldown is 30% longer; the mouth hesitates.",
		Magnitude:   1.30,
	},
	{
		ID:          CurseShedlessSkin,
		Name:        "Shedless Skin",
		Description: "First shed of the run grants only 40% of normal Scales.",
		Magnitude:   0.40,
	},
	{
		ID:          CurseFrailCoils,
		Name:        "Frail Coils",
		Description: "Idle income disabled for the first 60 seconds of the run.",
		Magnitude:   60.0,
	},
	{
		ID:          CurseEcho,
		Name:        "Echo Curse",
		Description: "Every 4th press earns no Essence; the ouroboros swallows it whole.",
		Magnitude:   4.0,
	},
}

// Curses indexes every curse definition by id.
var Curses = func() map[string]Curse {
	m := make(map[string]Curse, len(curseList))
	for _, c := range curseList {
		m[c.ID] = c
	}
	return m
}()

// CurseOrder lists curse ids in catalog order, used for random rolls.
var CurseOrder = func() []string {
	ids := make([]string, 0, len(curseList))
	for _, c := range curseList {
		ids = append(ids, c.ID)
	}
	return ids
}()
