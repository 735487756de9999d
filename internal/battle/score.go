package battle

import (
	"fmt"

	"github.com/pokebattle/arena/internal/model"
)

// Stat weights per role, applied in this order to base_stat*multiplier.
var (
	offensiveWeights = []statWeight{
		{model.StatAttack, 1.2},
		{model.StatSpecialAttack, 1.1},
		{model.StatSpeed, 1.0},
	}
	defensiveWeights = []statWeight{
		{model.StatDefense, 1.2},
		{model.StatSpecialDefense, 1.1},
		{model.StatHP, 1.0},
	}
)

const (
	typeCountBonus           = 5.0
	baseExperienceMultiplier = 0.05
)

type statWeight struct {
	stat   string
	weight float64
}

// Score computes a combatant's breakdown for the given role. The
// opponent's type count feeds the type-advantage bonus, which is never
// negative. All arithmetic stays in float64; rounding belongs to the
// presentation boundary, not here.
func Score(c *model.Combatant, modifiers map[string]model.StatModifier, role model.Role, opponentTypeCount int) (model.ScoreBreakdown, error) {
	weights := offensiveWeights
	if role == model.RoleDefensive {
		weights = defensiveWeights
	}

	breakdown := model.ScoreBreakdown{Role: role}

	// Record every canonical stat's modified value; the weighted sum
	// below uses only the role's three.
	modified := make(map[string]float64, len(model.CanonicalStats))
	for _, stat := range model.CanonicalStats {
		base, ok := c.BaseStat(stat)
		if !ok {
			return model.ScoreBreakdown{}, fmt.Errorf("%q is missing stat %q: %w", c.Name, stat, model.ErrIncompleteData)
		}
		multiplier := 1.0
		if m, ok := modifiers[stat]; ok {
			multiplier = m.Multiplier
		}
		value := float64(base) * multiplier
		modified[stat] = value
		breakdown.Lines = append(breakdown.Lines, model.StatLine{
			Stat:       stat,
			Base:       base,
			Multiplier: multiplier,
			Modified:   value,
		})
	}

	for _, w := range weights {
		breakdown.WeightedSum += modified[w.stat] * w.weight
	}

	advantage := c.TypeCount() - opponentTypeCount
	if advantage > 0 {
		breakdown.TypeBonus = float64(advantage) * typeCountBonus
	}
	breakdown.ExperienceBonus = float64(c.BaseExperience) * baseExperienceMultiplier

	breakdown.Total = breakdown.WeightedSum + breakdown.TypeBonus + breakdown.ExperienceBonus
	return breakdown, nil
}
