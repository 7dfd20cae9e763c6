package catalog

import "testing"

func TestUpgrades_IDsMatchKeysAndAreOrdered(t *testing.T) {
	if len(Upgrades) != len(UpgradeOrder) {
		t.Fatalf("expected %d ordered ids, got %d", len(Upgrades), len(UpgradeOrder))
	}
	seen := map[string]bool{}
	for _, id := range UpgradeOrder {
		u, ok := Upgrades[id]
		if !ok {
			t.Fatalf("ordered id %q missing from map", id)
		}
		if u.ID != id {
			t.Fatalf("upgrade keyed %q has id %q", id, u.ID)
		}
		if seen[id] {
			t.Fatalf("duplicate upgrade id %q", id)
		}
		seen[id] = true
	}
}

func TestUpgrades_SaneValues(t *testing.T) {
	for id, u := range Upgrades {
		if u.MaxLevel <= 0 {
			t.Fatalf("upgrade %q has max_level %d", id, u.MaxLevel)
		}
		if u.BaseCost <= 0 {
			t.Fatalf("upgrade %q has base_cost %v", id, u.BaseCost)
		}
		if u.ValuePerLevel <= 0 {
			t.Fatalf("upgrade %q has value_per_level %v", id, u.ValuePerLevel)
		}
		if u.CosmicOnly && u.Tier != 2 {
			t.Fatalf("upgrade %q is cosmic-only but tier %d", id, u.Tier)
		}
	}
}

func TestCurses_KnownIDsPresent(t *testing.T) {
	for _, id := range []string{
		CurseBrittleScales, CurseDullFangs, CurseIronGut, CurseCloudedVision,
		CurseTwitchyJaw, CurseShedlessSkin, CurseFrailCoils, CurseEcho,
	} {
		if _, ok := Curses[id]; !ok {
			t.Fatalf("curse %q missing from catalog", id)
		}
	}
	if len(CurseOrder) != len(Curses) {
		t.Fatalf("curse order has %d ids, map has %d", len(CurseOrder), len(Curses))
	}
}

func TestArchetypes_StartingUpgradesExist(t *testing.T) {
	for id, a := range Archetypes {
		for uid := range a.StartingUpgrades {
			if _, ok := Upgrades[uid]; !ok {
				t.Fatalf("archetype %q grants unknown upgrade %q", id, uid)
			}
		}
	}
}

func TestAscensionUpgrade_CostAtLevel(t *testing.T) {
	u := AscensionUpgrades["serpent_memory"]
	if got := u.CostAtLevel(0); got != 50_000 {
		t.Fatalf("level-0 cost: expected 50000, got %v", got)
	}
	if got := u.CostAtLevel(1); got != 100_000 {
		t.Fatalf("level-1 cost: expected 100000, got %v", got)
	}
	if got := u.CostAtLevel(3); got != 400_000 {
		t.Fatalf("level-3 cost: expected 400000, got %v", got)
	}
}
