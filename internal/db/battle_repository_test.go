package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokebattle/arena/internal/model"
)

func storedCombatant(name string, id int) *model.Combatant {
	c := &model.Combatant{
		Name:           name,
		PokeAPIID:      id,
		BaseExperience: 100,
		Height:         4,
		Weight:         60,
		Types:          []string{"electric"},
		Abilities:      []string{"static"},
	}
	for _, stat := range model.CanonicalStats {
		c.Stats = append(c.Stats, model.Stat{Name: stat, Base: 50, DetailURL: "https://catalog/stat/" + stat})
	}
	return c
}

func TestPokemonRepository_Upsert(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewPokemonRepository(pool)
	ctx := context.Background()

	id, err := repo.Upsert(ctx, storedCombatant("pikachu", 25))
	require.NoError(t, err)
	require.NotZero(t, id)

	// Upsert again: same row, refreshed data.
	again, err := repo.Upsert(ctx, storedCombatant("pikachu", 25))
	require.NoError(t, err)
	assert.Equal(t, id, again)

	got, err := repo.GetID(ctx, "pikachu")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	var statCount int
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM pokemon_stats WHERE pokemon_id = $1`, id).Scan(&statCount))
	assert.Equal(t, 6, statCount)
}

func TestPokemonRepository_UpsertPrunesRemoved(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewPokemonRepository(pool)
	ctx := context.Background()

	c := storedCombatant("eevee", 133)
	c.Abilities = []string{"run-away", "adaptability"}
	id, err := repo.Upsert(ctx, c)
	require.NoError(t, err)

	c.Abilities = []string{"run-away"}
	_, err = repo.Upsert(ctx, c)
	require.NoError(t, err)

	var abilityCount int
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM pokemon_abilities WHERE pokemon_id = $1`, id).Scan(&abilityCount))
	assert.Equal(t, 1, abilityCount)
}

func TestPokemonRepository_GetID_Unknown(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewPokemonRepository(pool)

	id, err := repo.GetID(context.Background(), "missingmon")
	require.NoError(t, err)
	assert.Zero(t, id)
}

func TestBattleRepository_CreateAndList(t *testing.T) {
	pool := setupTestDB(t)
	pokemon := NewPokemonRepository(pool)
	battles := NewBattleRepository(pool)
	ctx := context.Background()

	attackerID, err := pokemon.Upsert(ctx, storedCombatant("pikachu", 25))
	require.NoError(t, err)
	defenderID, err := pokemon.Upsert(ctx, storedCombatant("bulbasaur", 1))
	require.NoError(t, err)

	metrics := model.BattleMetrics{
		AttackerScore:    249.6,
		DefenderScore:    282.1,
		AlgorithmVersion: "v1",
	}

	for range 25 {
		_, _, err := battles.Create(ctx, attackerID, defenderID, &defenderID, metrics)
		require.NoError(t, err)
	}

	items, p, err := battles.List(ctx, 1, 10)
	require.NoError(t, err)
	assert.Len(t, items, 10)
	assert.Equal(t, 25, p.TotalCount)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.False(t, p.HasPrevious)

	first := items[0]
	assert.Equal(t, "pikachu", first.Attacker)
	assert.Equal(t, "bulbasaur", first.Defender)
	require.NotNil(t, first.Winner)
	assert.Equal(t, "bulbasaur", *first.Winner)
	assert.False(t, first.CreatedAt.IsZero())

	items, p, err = battles.List(ctx, 3, 10)
	require.NoError(t, err)
	assert.Len(t, items, 5)
	assert.False(t, p.HasNext)
	assert.True(t, p.HasPrevious)
}

func TestBattleRepository_CreateDraw(t *testing.T) {
	pool := setupTestDB(t)
	pokemon := NewPokemonRepository(pool)
	battles := NewBattleRepository(pool)
	ctx := context.Background()

	attackerID, err := pokemon.Upsert(ctx, storedCombatant("plusle", 311))
	require.NoError(t, err)
	defenderID, err := pokemon.Upsert(ctx, storedCombatant("minun", 312))
	require.NoError(t, err)

	_, _, err = battles.Create(ctx, attackerID, defenderID, nil, model.BattleMetrics{AlgorithmVersion: "v1"})
	require.NoError(t, err)

	items, _, err := battles.List(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Nil(t, items[0].Winner, "draw must list a null winner")
}

func TestBattleRepository_Delete(t *testing.T) {
	pool := setupTestDB(t)
	pokemon := NewPokemonRepository(pool)
	battles := NewBattleRepository(pool)
	ctx := context.Background()

	attackerID, err := pokemon.Upsert(ctx, storedCombatant("pikachu", 25))
	require.NoError(t, err)
	defenderID, err := pokemon.Upsert(ctx, storedCombatant("bulbasaur", 1))
	require.NoError(t, err)

	id, _, err := battles.Create(ctx, attackerID, defenderID, &attackerID, model.BattleMetrics{AlgorithmVersion: "v1"})
	require.NoError(t, err)

	deleted, err := battles.Delete(ctx, id)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = battles.Delete(ctx, id)
	require.NoError(t, err)
	assert.False(t, deleted)
}
