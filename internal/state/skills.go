package state

// SkillID identifies one of the five trained skills.
type SkillID string

const (
	SkillWoodcutting  SkillID = "woodcutting"
	SkillMining       SkillID = "mining"
	SkillStrength     SkillID = "strength"
	SkillDefense      SkillID = "defense"
	SkillConstitution SkillID = "constitution"
)

// SkillIDs lists every skill in serialization order.
var SkillIDs = []SkillID{
	SkillWoodcutting,
	SkillMining,
	SkillStrength,
	SkillDefense,
	SkillConstitution,
}

// ValidSkill reports whether the identifier names a known skill.
func ValidSkill(id SkillID) bool {
	switch id {
	case SkillWoodcutting, SkillMining, SkillStrength, SkillDefense, SkillConstitution:
		return true
	default:
		return false
	}
}

// MaxLevel caps every skill.
const MaxLevel = 99

// XPForLevel returns the accumulated experience required to hold the given
// level. Level 1 costs nothing.
func XPForLevel(level int) int64 {
	if level <= 1 {
		return 0
	}
	n := int64(level - 1)
	return 80*n*n + 120*n
}

// LevelForXP returns the largest level whose threshold the experience meets.
func LevelForXP(xp int64) int {
	if xp < 0 {
		return 1
	}
	level := 1
	for level < MaxLevel && xp >= XPForLevel(level+1) {
		level++
	}
	return level
}

// Skills tracks experience per skill. Experience only ever increases; levels
// are always derived, never stored.
type Skills struct {
	XP map[SkillID]int64 `json:"xp"`
}

// NewSkills returns a zeroed skill sheet.
func NewSkills() Skills {
	xp := make(map[SkillID]int64, len(SkillIDs))
	for _, id := range SkillIDs {
		xp[id] = 0
	}
	return Skills{XP: xp}
}

// Clone deep-copies the skill sheet.
func (s Skills) Clone() Skills {
	cloned := Skills{XP: make(map[SkillID]int64, len(s.XP))}
	for id, xp := range s.XP {
		cloned.XP[id] = xp
	}
	return cloned
}

// Grant adds experience to a skill and reports whether the derived level rose.
func (s *Skills) Grant(id SkillID, xp int64) bool {
	if xp <= 0 || !ValidSkill(id) {
		return false
	}
	if s.XP == nil {
		s.XP = make(map[SkillID]int64, len(SkillIDs))
	}
	before := LevelForXP(s.XP[id])
	s.XP[id] += xp
	return LevelForXP(s.XP[id]) > before
}

// Level returns the derived level for a skill.
func (s Skills) Level(id SkillID) int {
	return LevelForXP(s.XP[id])
}
