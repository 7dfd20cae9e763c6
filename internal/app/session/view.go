package session

import (
	"time"

	"ouroverse/internal/domain/catalog"
	"ouroverse/internal/domain/serpent"
)

type UpgradeView struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Level       int     `json:"level"`
	MaxLevel    int     `json:"max_level"`
	Cost        float64 `json:"cost"`
	CostText    string  `json:"cost_text"`
	Affordable  bool    `json:"affordable"`
	Maxed       bool    `json:"maxed"`
	Locked      bool    `json:"locked"`
}

type AscensionView struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Level       int     `json:"level"`
	MaxLevel    int     `json:"max_level"`
	Cost        float64 `json:"cost"`
	Affordable  bool    `json:"affordable"`
}

type View struct {
	RunID      string `json:"run_id"`
	Stage      string `json:"stage"`
	StageIndex int    `json:"stage_index"`

	Essence        float64 `json:"essence"`
	EssenceText    string  `json:"essence_text"`
	SnakeLength    int     `json:"snake_length"`
	Scales         float64 `json:"scales"`
	ScalesText     string  `json:"scales_text"`
	EssencePerBite float64 `json:"essence_per_bite"`
	IdleIncomeRate float64 `json:"idle_income_rate"`

	BPM             float64 `json:"bpm"`
	BeatProgress    float64 `json:"beat_progress"`
	BeatIntervalSec float64 `json:"beat_interval_sec"`
	TimingWindowSec float64 `json:"timing_window_sec"`
	PerfectWindow   float64 `json:"perfect_window_sec"`
	BiteCooldownSec float64 `json:"bite_cooldown_sec"`
	MouthOpen       bool    `json:"mouth_open"`
	LastBiteResult  string  `json:"last_bite_result,omitempty"`

	ComboHits       int     `json:"combo_hits"`
	ComboMultiplier float64 `json:"combo_multiplier"`
	PerfectStreak   int     `json:"perfect_streak"`
	VenomRushActive bool    `json:"venom_rush_active"`
	FrenzyActive    bool    `json:"frenzy_active"`
	FrenzyPresses   int     `json:"frenzy_presses"`

	ArchetypeID   string `json:"archetype_id"`
	ArchetypeName string `json:"archetype_name"`
	CurseID       string `json:"curse_id"`
	CurseName     string `json:"curse_name"`

	Upgrades   []UpgradeView   `json:"upgrades"`
	Ascensions []AscensionView `json:"ascensions"`

	CanShed    bool    `json:"can_shed"`
	ShedReward float64 `json:"shed_reward"`
	CanAscend  bool    `json:"can_ascend"`

	Stats serpent.RunStats `json:"stats"`
}

// view renders the current run. Must hold the lock.
func (s *Session) view(now time.Time) View {
	st := s.state
	eng := s.Engine

	v := View{
		RunID:      st.RunID,
		Stage:      eng.StageName(st.StageIndex),
		StageIndex: st.StageIndex,

		Essence:        st.Essence,
		EssenceText:    eng.FormatNumber(st.Essence),
		SnakeLength:    st.SnakeLength,
		Scales:         st.Scales,
		ScalesText:     eng.FormatNumber(st.Scales),
		EssencePerBite: st.EssencePerBite,
		IdleIncomeRate: st.IdleIncomeRate,

		BPM:             eng.CurrentBPM(st),
		BeatProgress:    eng.BeatProgress(st, now),
		BeatIntervalSec: eng.BeatInterval(st),
		TimingWindowSec: eng.TimingWindow(st),
		PerfectWindow:   eng.PerfectWindow(st),
		BiteCooldownSec: eng.CooldownSeconds(st),
		MouthOpen:       st.MouthOpen,
		LastBiteResult:  string(st.LastBiteResult),

		ComboHits:       st.ComboHits,
		ComboMultiplier: st.ComboMultiplier,
		PerfectStreak:   st.PerfectStreak,
		VenomRushActive: st.VenomRushActive,
		FrenzyActive:    st.FrenzyActive,
		FrenzyPresses:   st.FrenzyPresses,

		ArchetypeID: st.ArchetypeID,
		CurseID:     st.CurseID,

		CanShed:    eng.CanShed(st),
		ShedReward: eng.ScalesReward(st),
		CanAscend:  eng.CanAscend(st),

		Stats: st.Stats,
	}
	if arch, ok := catalog.Archetypes[st.ArchetypeID]; ok {
		v.ArchetypeName = arch.Name
	}
	if curse, ok := catalog.Curses[st.CurseID]; ok {
		v.CurseName = curse.Name
	}

	for _, uid := range catalog.UpgradeOrder {
		def := catalog.Upgrades[uid]
		level := st.UpgradeLevel(uid)
		cost := eng.UpgradeCost(st, uid)
		v.Upgrades = append(v.Upgrades, UpgradeView{
			ID:          uid,
			Name:        def.Name,
			Description: def.Description,
			Level:       level,
			MaxLevel:    def.MaxLevel,
			Cost:        cost,
			CostText:    eng.FormatNumber(cost),
			Affordable:  st.Essence >= cost,
			Maxed:       level >= def.MaxLevel,
			Locked:      !eng.UpgradeAvailable(st, uid),
		})
	}

	for _, uid := range catalog.AscensionOrder {
		def := catalog.AscensionUpgrades[uid]
		level := st.AscensionLevels[uid]
		cost := def.CostAtLevel(level)
		v.Ascensions = append(v.Ascensions, AscensionView{
			ID:          uid,
			Name:        def.Name,
			Description: def.Description,
			Level:       level,
			MaxLevel:    def.MaxLevel,
			Cost:        cost,
			Affordable:  st.Scales >= cost,
		})
	}

	return v
}
