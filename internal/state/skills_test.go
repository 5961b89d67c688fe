package state

import "testing"

func TestLevelForXPRoundTripsEveryLevel(t *testing.T) {
	for level := 1; level <= MaxLevel; level++ {
		threshold := XPForLevel(level)
		if got := LevelForXP(threshold); got != level {
			t.Fatalf("LevelForXP(XPForLevel(%d)) = %d, want %d", level, got, level)
		}
		if level > 1 {
			if got := LevelForXP(threshold - 1); got >= level {
				t.Fatalf("LevelForXP(%d) = %d, want below %d", threshold-1, got, level)
			}
		}
	}
}

func TestLevelForXPClampsAtCap(t *testing.T) {
	huge := XPForLevel(MaxLevel) * 10
	if got := LevelForXP(huge); got != MaxLevel {
		t.Fatalf("expected level cap %d, got %d", MaxLevel, got)
	}
	if got := LevelForXP(-5); got != 1 {
		t.Fatalf("expected negative xp to derive level 1, got %d", got)
	}
}

func TestGrantReportsLevelUp(t *testing.T) {
	skills := NewSkills()
	if skills.Grant(SkillMining, XPForLevel(2)-1) {
		t.Fatalf("expected no level up below the threshold")
	}
	if !skills.Grant(SkillMining, 1) {
		t.Fatalf("expected level up crossing the threshold")
	}
	if got := skills.Level(SkillMining); got != 2 {
		t.Fatalf("expected level 2, got %d", got)
	}
}

func TestGrantIgnoresInvalidInput(t *testing.T) {
	skills := NewSkills()
	if skills.Grant(SkillID("cooking"), 100) {
		t.Fatalf("expected unknown skill to be ignored")
	}
	if skills.Grant(SkillStrength, 0) {
		t.Fatalf("expected zero xp to be ignored")
	}
	if skills.XP[SkillStrength] != 0 {
		t.Fatalf("expected untouched xp, got %d", skills.XP[SkillStrength])
	}
}
