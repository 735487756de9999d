package model

// StatChangeFactor converts a move's change stage into a multiplier delta:
// multiplier = 1.0 + change*0.25, floored at zero.
const StatChangeFactor = 0.25

// MoveEffect is one entry of a stat detail's affecting-moves list.
type MoveEffect struct {
	Move   string
	Change int
}

// StatDetail is the catalog's detail record for a single stat: the moves
// that raise it and the moves that lower it.
type StatDetail struct {
	Increase []MoveEffect
	Decrease []MoveEffect
}

// ChoiceKind tags which affecting-moves list a stat change was taken from.
type ChoiceKind int

const (
	ChoiceUnmodified ChoiceKind = iota
	ChoiceIncrease
	ChoiceDecrease
)

// StatChoice is the selected change for a stat: the first increase entry
// when present, otherwise the first decrease entry, otherwise unmodified.
type StatChoice struct {
	Kind   ChoiceKind
	Change int
}

// ChooseEffect picks the applicable change from a stat detail. Increase
// takes priority over decrease regardless of magnitudes; empty lists on
// both sides mean the stat is unmodified. Pure function.
func ChooseEffect(d StatDetail) StatChoice {
	if len(d.Increase) > 0 {
		return StatChoice{Kind: ChoiceIncrease, Change: d.Increase[0].Change}
	}
	if len(d.Decrease) > 0 {
		return StatChoice{Kind: ChoiceDecrease, Change: d.Decrease[0].Change}
	}
	return StatChoice{Kind: ChoiceUnmodified}
}

// StatModifier is a resolved stat change with its derived multiplier.
// Instances may be served from cache; they are value types and safe to
// share between battle computations.
type StatModifier struct {
	Stat       string
	SourceRef  string
	Change     int
	Multiplier float64
}

// NewStatModifier derives the multiplier from the change value. A change
// of -4 or below collapses the stat to zero contribution, never negative.
func NewStatModifier(stat, sourceRef string, change int) StatModifier {
	m := 1.0 + float64(change)*StatChangeFactor
	if m < 0 {
		m = 0
	}
	return StatModifier{
		Stat:       stat,
		SourceRef:  sourceRef,
		Change:     change,
		Multiplier: m,
	}
}
