package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pokebattle/arena/internal/model"
)

// BattleRepository persists computed battle outcomes and serves the
// paginated history.
type BattleRepository struct {
	pool *pgxpool.Pool
}

// NewBattleRepository creates a repository on the given pool.
func NewBattleRepository(pool *pgxpool.Pool) *BattleRepository {
	return &BattleRepository{pool: pool}
}

// Create inserts a battle row. winnerID is nil on a draw. Returns the
// new row id and its creation time.
func (r *BattleRepository) Create(ctx context.Context, attackerID, defenderID int64, winnerID *int64, metrics model.BattleMetrics) (int64, time.Time, error) {
	raw, err := json.Marshal(metrics)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("encoding battle metrics: %w", err)
	}

	var (
		id        int64
		createdAt time.Time
	)
	err = r.pool.QueryRow(ctx,
		`INSERT INTO battles (attacker_id, defender_id, winner_id, algorithm_version, raw_metrics)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		attackerID, defenderID, winnerID, metrics.AlgorithmVersion, raw,
	).Scan(&id, &createdAt)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("inserting battle: %w", err)
	}
	return id, createdAt, nil
}

// List returns one page of battle history, newest first, together with
// the pagination metadata.
func (r *BattleRepository) List(ctx context.Context, page, pageSize int) ([]model.BattleListItem, Pagination, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM battles`).Scan(&total); err != nil {
		return nil, Pagination{}, fmt.Errorf("counting battles: %w", err)
	}

	p := NewPagination(page, pageSize, total)

	rows, err := r.pool.Query(ctx,
		`SELECT b.id, a.name, d.name, w.name, b.created_at
		 FROM battles b
		 JOIN pokemon a ON a.id = b.attacker_id
		 JOIN pokemon d ON d.id = b.defender_id
		 LEFT JOIN pokemon w ON w.id = b.winner_id
		 ORDER BY b.created_at DESC, b.id DESC
		 LIMIT $1 OFFSET $2`,
		p.PageSize, p.Offset(),
	)
	if err != nil {
		return nil, Pagination{}, fmt.Errorf("listing battles: %w", err)
	}
	defer rows.Close()

	items := make([]model.BattleListItem, 0, p.PageSize)
	for rows.Next() {
		var item model.BattleListItem
		if err := rows.Scan(&item.ID, &item.Attacker, &item.Defender, &item.Winner, &item.CreatedAt); err != nil {
			return nil, Pagination{}, fmt.Errorf("scanning battle row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, Pagination{}, fmt.Errorf("reading battle rows: %w", err)
	}
	return items, p, nil
}

// Delete removes a battle by id. Reports whether a row was deleted.
func (r *BattleRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM battles WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("deleting battle %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}
