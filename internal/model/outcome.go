package model

// Role selects which stat weights a score is computed under.
type Role int

const (
	RoleOffensive Role = iota
	RoleDefensive
)

func (r Role) String() string {
	if r == RoleOffensive {
		return "offensive"
	}
	return "defensive"
}

// StatLine records how one stat entered a score: its base value, the
// multiplier applied, and the resulting modified value.
type StatLine struct {
	Stat       string  `json:"stat"`
	Base       int     `json:"base"`
	Multiplier float64 `json:"multiplier"`
	Modified   float64 `json:"modified"`
}

// ScoreBreakdown is one combatant's side of a battle computation.
// Built once per battle and never mutated afterward.
type ScoreBreakdown struct {
	Role            Role       `json:"-"`
	Lines           []StatLine `json:"lines"`
	WeightedSum     float64    `json:"weighted_sum"`
	TypeBonus       float64    `json:"type_bonus"`
	ExperienceBonus float64    `json:"experience_bonus"`
	Total           float64    `json:"total"`
}

// StatChanges returns the modified-minus-base delta for every stat whose
// multiplier changed it. Used for the stored metrics record.
func (b ScoreBreakdown) StatChanges() map[string]float64 {
	changes := make(map[string]float64)
	for _, l := range b.Lines {
		if l.Multiplier != 1.0 {
			changes[l.Stat] = l.Modified - float64(l.Base)
		}
	}
	return changes
}

// Winner identifies the outcome of a battle.
type Winner int

const (
	WinnerDraw Winner = iota
	WinnerAttacker
	WinnerDefender
)

func (w Winner) String() string {
	switch w {
	case WinnerAttacker:
		return "attacker"
	case WinnerDefender:
		return "defender"
	default:
		return "draw"
	}
}

// BattleMetrics is the metrics record persisted alongside a battle and
// echoed in the API response.
type BattleMetrics struct {
	AttackerScore       float64            `json:"attacker_score"`
	DefenderScore       float64            `json:"defender_score"`
	AttackerStatChanges map[string]float64 `json:"attacker_stat_changes"`
	DefenderStatChanges map[string]float64 `json:"defender_stat_changes"`
	AlgorithmVersion    string             `json:"algorithm_version"`
}

// BattleOutcome is the full result of one battle computation. Immutable
// once constructed; the engine hands it to the caller and retains nothing.
type BattleOutcome struct {
	Attacker          *Combatant
	Defender          *Combatant
	Winner            Winner
	AttackerBreakdown ScoreBreakdown
	DefenderBreakdown ScoreBreakdown
	AlgorithmVersion  string
}

// WinnerName returns the winning combatant's name, or "" on a draw.
func (o *BattleOutcome) WinnerName() string {
	switch o.Winner {
	case WinnerAttacker:
		return o.Attacker.Name
	case WinnerDefender:
		return o.Defender.Name
	default:
		return ""
	}
}

// Metrics assembles the persistable metrics record for this outcome.
func (o *BattleOutcome) Metrics() BattleMetrics {
	return BattleMetrics{
		AttackerScore:       o.AttackerBreakdown.Total,
		DefenderScore:       o.DefenderBreakdown.Total,
		AttackerStatChanges: o.AttackerBreakdown.StatChanges(),
		DefenderStatChanges: o.DefenderBreakdown.StatChanges(),
		AlgorithmVersion:    o.AlgorithmVersion,
	}
}
