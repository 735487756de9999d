package pokeapi

import "github.com/pokebattle/arena/internal/model"

// Wire shapes of the catalog's JSON responses. Only the fields the
// engine consumes are decoded.

type pokemonPayload struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	BaseExperience int    `json:"base_experience"`
	Height         int    `json:"height"`
	Weight         int    `json:"weight"`
	Stats          []struct {
		BaseStat int `json:"base_stat"`
		Stat     struct {
			Name string `json:"name"`
			URL  string `json:"url"`
		} `json:"stat"`
	} `json:"stats"`
	Types []struct {
		Type struct {
			Name string `json:"name"`
		} `json:"type"`
	} `json:"types"`
	Abilities []struct {
		Ability struct {
			Name string `json:"name"`
		} `json:"ability"`
	} `json:"abilities"`
}

func (p pokemonPayload) toCombatant() *model.Combatant {
	c := &model.Combatant{
		Name:           p.Name,
		PokeAPIID:      p.ID,
		BaseExperience: p.BaseExperience,
		Height:         p.Height,
		Weight:         p.Weight,
	}
	for _, s := range p.Stats {
		c.Stats = append(c.Stats, model.Stat{
			Name:      s.Stat.Name,
			Base:      s.BaseStat,
			DetailURL: s.Stat.URL,
		})
	}
	for _, t := range p.Types {
		c.Types = append(c.Types, t.Type.Name)
	}
	for _, a := range p.Abilities {
		c.Abilities = append(c.Abilities, a.Ability.Name)
	}
	return c
}

type statPayload struct {
	AffectingMoves struct {
		Increase []moveEffectPayload `json:"increase"`
		Decrease []moveEffectPayload `json:"decrease"`
	} `json:"affecting_moves"`
}

type moveEffectPayload struct {
	Change int `json:"change"`
	Move   struct {
		Name string `json:"name"`
	} `json:"move"`
}

func (p statPayload) toStatDetail() model.StatDetail {
	var d model.StatDetail
	for _, m := range p.AffectingMoves.Increase {
		d.Increase = append(d.Increase, model.MoveEffect{Move: m.Move.Name, Change: m.Change})
	}
	for _, m := range p.AffectingMoves.Decrease {
		d.Decrease = append(d.Decrease, model.MoveEffect{Move: m.Move.Name, Change: m.Change})
	}
	return d
}
