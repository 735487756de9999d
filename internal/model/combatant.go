package model

import "fmt"

// The six canonical stats every combatant must carry, in catalog order.
var CanonicalStats = []string{
	StatHP,
	StatAttack,
	StatDefense,
	StatSpecialAttack,
	StatSpecialDefense,
	StatSpeed,
}

const (
	StatHP             = "hp"
	StatAttack         = "attack"
	StatDefense        = "defense"
	StatSpecialAttack  = "special-attack"
	StatSpecialDefense = "special-defense"
	StatSpeed          = "speed"
)

// Stat is one base stat entry of a combatant, together with the catalog
// URL of its detail record (source of the affecting-moves lists).
type Stat struct {
	Name      string
	Base      int
	DetailURL string
}

// Combatant is one battle participant's attribute snapshot, fetched from
// the catalog. Immutable for the duration of a battle computation.
type Combatant struct {
	Name           string
	PokeAPIID      int
	BaseExperience int
	Height         int
	Weight         int
	Stats          []Stat // catalog order preserved
	Types          []string
	Abilities      []string
}

// BaseStat returns the base value for the named stat.
func (c *Combatant) BaseStat(name string) (int, bool) {
	for _, s := range c.Stats {
		if s.Name == name {
			return s.Base, true
		}
	}
	return 0, false
}

// StatDetailURL returns the detail record URL for the named stat.
func (c *Combatant) StatDetailURL(name string) string {
	for _, s := range c.Stats {
		if s.Name == name {
			return s.DetailURL
		}
	}
	return ""
}

// TypeCount returns how many types the combatant has.
func (c *Combatant) TypeCount() int {
	return len(c.Types)
}

// Validate checks that the stat set is exactly the six canonical stats.
// Anything else is a data-integrity failure from the catalog, reported
// as ErrIncompleteData.
func (c *Combatant) Validate() error {
	if len(c.Stats) != len(CanonicalStats) {
		return fmt.Errorf("%q has %d stats, want %d: %w",
			c.Name, len(c.Stats), len(CanonicalStats), ErrIncompleteData)
	}
	for _, want := range CanonicalStats {
		if _, ok := c.BaseStat(want); !ok {
			return fmt.Errorf("%q is missing stat %q: %w", c.Name, want, ErrIncompleteData)
		}
	}
	return nil
}
