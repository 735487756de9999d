// Package battle is the scoring engine: it fetches two combatants,
// resolves their stat modifiers, computes offensive and defensive
// scores and decides a winner. It performs no writes of its own;
// persisting the outcome is the caller's concern.
package battle

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/pokebattle/arena/internal/model"
)

// AlgorithmVersion tags every outcome this engine produces.
const AlgorithmVersion = "v1"

// AttributeSource fetches a combatant's attribute snapshot by name.
type AttributeSource interface {
	Fetch(ctx context.Context, name string) (*model.Combatant, error)
}

// Orchestrator runs one battle computation end to end.
type Orchestrator struct {
	source   AttributeSource
	resolver *Resolver
}

// NewOrchestrator wires the engine from its collaborators.
func NewOrchestrator(source AttributeSource, resolver *Resolver) *Orchestrator {
	return &Orchestrator{source: source, resolver: resolver}
}

// Run computes the battle between two combatant names. Names must be
// lowercase canonical catalog names; normalization is the caller's
// precondition. If both names are unknown, the attacker's failure is
// reported first. No partial outcome is ever returned.
func (o *Orchestrator) Run(ctx context.Context, attackerName, defenderName string) (*model.BattleOutcome, error) {
	var (
		attacker, defender       *model.Combatant
		attackerErr, defenderErr error
	)

	// Both fetches are independent; run them concurrently but keep the
	// per-side errors apart so the attacker's failure wins the report.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		attacker, attackerErr = o.fetchValid(gctx, attackerName)
		return nil
	})
	g.Go(func() error {
		defender, defenderErr = o.fetchValid(gctx, defenderName)
		return nil
	})
	_ = g.Wait()

	if attackerErr != nil {
		return nil, attackerErr
	}
	if defenderErr != nil {
		return nil, defenderErr
	}

	attackerMods, err := o.resolveAll(ctx, attacker)
	if err != nil {
		return nil, err
	}
	defenderMods, err := o.resolveAll(ctx, defender)
	if err != nil {
		return nil, err
	}

	attackerBreakdown, err := Score(attacker, attackerMods, model.RoleOffensive, defender.TypeCount())
	if err != nil {
		return nil, err
	}
	defenderBreakdown, err := Score(defender, defenderMods, model.RoleDefensive, attacker.TypeCount())
	if err != nil {
		return nil, err
	}

	winner := Decide(attackerBreakdown.Total, defenderBreakdown.Total)
	slog.Debug("battle decided",
		"attacker", attacker.Name,
		"defender", defender.Name,
		"attacker_score", attackerBreakdown.Total,
		"defender_score", defenderBreakdown.Total,
		"winner", winner.String(),
	)

	return &model.BattleOutcome{
		Attacker:          attacker,
		Defender:          defender,
		Winner:            winner,
		AttackerBreakdown: attackerBreakdown,
		DefenderBreakdown: defenderBreakdown,
		AlgorithmVersion:  AlgorithmVersion,
	}, nil
}

func (o *Orchestrator) fetchValid(ctx context.Context, name string) (*model.Combatant, error) {
	c, err := o.source.Fetch(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// resolveAll resolves modifiers for all six canonical stats of one
// combatant. Resolutions are independent and run concurrently.
func (o *Orchestrator) resolveAll(ctx context.Context, c *model.Combatant) (map[string]model.StatModifier, error) {
	modifiers := make([]model.StatModifier, len(model.CanonicalStats))

	g, gctx := errgroup.WithContext(ctx)
	for i, stat := range model.CanonicalStats {
		g.Go(func() error {
			m, err := o.resolver.Resolve(gctx, stat, c.StatDetailURL(stat))
			if err != nil {
				return fmt.Errorf("combatant %q: %w", c.Name, err)
			}
			modifiers[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byStat := make(map[string]model.StatModifier, len(modifiers))
	for _, m := range modifiers {
		byStat[m.Stat] = m
	}
	return byStat, nil
}
