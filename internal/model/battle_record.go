package model

import "time"

// BattleRecord is a persisted battle with resolved participant names.
type BattleRecord struct {
	ID               int64
	Attacker         string
	Defender         string
	Winner           string // empty on draw
	AlgorithmVersion string
	Metrics          BattleMetrics
	CreatedAt        time.Time
}

// BattleListItem is the shape of one battle history row in list responses.
type BattleListItem struct {
	ID        int64     `json:"id"`
	Attacker  string    `json:"attacker"`
	Defender  string    `json:"defender"`
	Winner    *string   `json:"winner"` // null on draw
	CreatedAt time.Time `json:"created_at"`
}
