package world

import "time"

// Config collects the simulation tunables. Everything here is a balance
// constant rather than a law: the defaults mirror the shipped game but tests
// and operators may override any of them.
type Config struct {
	// Movement. A diagonal step costs the cardinal duration times
	// DiagonalStepFactor, deliberately slower than the √2 geometric saving.
	StepInterval       time.Duration
	DiagonalStepFactor float64
	PathSearchRadius   int

	// Health and regeneration.
	BaseHP            int
	HPPerConstitution int
	RegenInterval     time.Duration
	RegenAmount       int
	EnemyRegenAmount  int

	// Containers.
	InventorySlots int
	BankSlots      int

	// Combat. Affinity and modifier are percent constants in the shared hit
	// formula; Min/MaxHitChance bound the result in percent.
	PlayerAffinity       float64
	PlayerModifier       float64
	EnemyAffinity        float64
	EnemyModifier        float64
	MinHitChance         float64
	MaxHitChance         float64
	BaseDamageMin        int
	BaseDamageMax        int
	BaseAccuracy         int
	BaseArmor            int
	DefaultAttackRate    time.Duration
	ConstitutionXPFactor float64

	// Penalty applied by an enemy attacking a player who is not fighting it
	// back: accuracy gets the additive percent bonus, damage the multiplier.
	PassiveAccuracyBonus    float64
	PassiveDamageMultiplier float64

	// Harvesting. Each level above a node's requirement adds
	// HarvestLevelBonus success chance, up to HarvestLevelBonusCap.
	HarvestLevelBonus    float64
	HarvestLevelBonusCap float64

	// Enemy AI fallbacks for minions that do not configure their own ranges.
	DefaultAggroRange int
	DefaultLeashRange int
}

// DefaultConfig returns the shipped tunables.
func DefaultConfig() Config {
	return Config{
		StepInterval:       600 * time.Millisecond,
		DiagonalStepFactor: 1.5,
		PathSearchRadius:   6,

		BaseHP:            10,
		HPPerConstitution: 1,
		RegenInterval:     6 * time.Second,
		RegenAmount:       1,
		EnemyRegenAmount:  1,

		InventorySlots: 28,
		BankSlots:      200,

		PlayerAffinity:       55,
		PlayerModifier:       10,
		EnemyAffinity:        45,
		EnemyModifier:        5,
		MinHitChance:         5,
		MaxHitChance:         95,
		BaseDamageMin:        0,
		BaseDamageMax:        1,
		BaseAccuracy:         10,
		BaseArmor:            10,
		DefaultAttackRate:    2400 * time.Millisecond,
		ConstitutionXPFactor: 0.33,

		PassiveAccuracyBonus:    20,
		PassiveDamageMultiplier: 2,

		HarvestLevelBonus:    0.01,
		HarvestLevelBonusCap: 0.25,

		DefaultAggroRange: 3,
		DefaultLeashRange: 8,
	}
}
