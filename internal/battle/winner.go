package battle

import (
	"math"

	"github.com/pokebattle/arena/internal/model"
)

// DrawEpsilon is the score tolerance under which a battle is a draw.
// Four additive float64 terms per side can differ in the last bits for
// conceptually tied inputs; stored historical outcomes were decided with
// exactly this value, so it must not change.
const DrawEpsilon = 1e-6

// Decide compares the attacker's offensive score against the defender's
// defensive score.
func Decide(attackerScore, defenderScore float64) model.Winner {
	if math.Abs(attackerScore-defenderScore) < DrawEpsilon {
		return model.WinnerDraw
	}
	if attackerScore > defenderScore {
		return model.WinnerAttacker
	}
	return model.WinnerDefender
}
