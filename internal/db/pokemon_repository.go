package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pokebattle/arena/internal/model"
)

// PokemonRepository persists combatant snapshots fetched from the catalog.
type PokemonRepository struct {
	pool *pgxpool.Pool
}

// NewPokemonRepository creates a repository on the given pool.
func NewPokemonRepository(pool *pgxpool.Pool) *PokemonRepository {
	return &PokemonRepository{pool: pool}
}

// Upsert stores or refreshes a combatant snapshot in one transaction and
// returns its row id. Stats, types and abilities no longer reported by
// the catalog are pruned.
func (r *PokemonRepository) Upsert(ctx context.Context, c *model.Combatant) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("beginning upsert tx for %q: %w", c.Name, err)
	}
	defer tx.Rollback(ctx)

	var id int64
	err = tx.QueryRow(ctx,
		`INSERT INTO pokemon (name, pokeapi_id, base_experience, height, weight)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (name) DO UPDATE SET
		     pokeapi_id = EXCLUDED.pokeapi_id,
		     base_experience = EXCLUDED.base_experience,
		     height = EXCLUDED.height,
		     weight = EXCLUDED.weight,
		     updated_at = now()
		 RETURNING id`,
		c.Name, c.PokeAPIID, c.BaseExperience, c.Height, c.Weight,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upserting pokemon %q: %w", c.Name, err)
	}

	statNames := make([]string, 0, len(c.Stats))
	for _, s := range c.Stats {
		statNames = append(statNames, s.Name)
		_, err = tx.Exec(ctx,
			`INSERT INTO pokemon_stats (pokemon_id, name, base_stat, stat_url)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (pokemon_id, name) DO UPDATE SET
			     base_stat = EXCLUDED.base_stat,
			     stat_url = EXCLUDED.stat_url`,
			id, s.Name, s.Base, s.DetailURL,
		)
		if err != nil {
			return 0, fmt.Errorf("upserting stat %q of %q: %w", s.Name, c.Name, err)
		}
	}
	if _, err := tx.Exec(ctx,
		`DELETE FROM pokemon_stats WHERE pokemon_id = $1 AND NOT (name = ANY($2))`,
		id, statNames,
	); err != nil {
		return 0, fmt.Errorf("pruning stats of %q: %w", c.Name, err)
	}

	if err := r.upsertNames(ctx, tx, "pokemon_types", id, c.Types); err != nil {
		return 0, fmt.Errorf("upserting types of %q: %w", c.Name, err)
	}
	if err := r.upsertNames(ctx, tx, "pokemon_abilities", id, c.Abilities); err != nil {
		return 0, fmt.Errorf("upserting abilities of %q: %w", c.Name, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("committing upsert for %q: %w", c.Name, err)
	}
	return id, nil
}

// upsertNames syncs a (pokemon_id, name) table to the given name set.
func (r *PokemonRepository) upsertNames(ctx context.Context, tx pgx.Tx, table string, pokemonID int64, names []string) error {
	for _, name := range names {
		_, err := tx.Exec(ctx,
			fmt.Sprintf(`INSERT INTO %s (pokemon_id, name) VALUES ($1, $2)
			 ON CONFLICT (pokemon_id, name) DO NOTHING`, table),
			pokemonID, name,
		)
		if err != nil {
			return err
		}
	}
	if names == nil {
		names = []string{}
	}
	_, err := tx.Exec(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE pokemon_id = $1 AND NOT (name = ANY($2))`, table),
		pokemonID, names,
	)
	return err
}

// GetID returns the row id for a pokemon name.
// Returns 0, nil if the name is not stored.
func (r *PokemonRepository) GetID(ctx context.Context, name string) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`SELECT id FROM pokemon WHERE name = $1`, name,
	).Scan(&id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, nil
		}
		return 0, fmt.Errorf("querying pokemon %q: %w", name, err)
	}
	return id, nil
}
