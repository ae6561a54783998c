// Package storage persists poll history so poolwatch can chart hash
// rate and account rewards across restarts.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/glebarez/go-sqlite"
	"github.com/shopspring/decimal"

	"github.com/shadowylab/braiinspool/pkg/braiins"
)

// Store keeps pool history in SQLite.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the history database with WAL enabled.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return nil, fmt.Errorf("failed to set pragma %s: %w", pragma, err)
		}
	}

	// Hash rates are stored canonicalized to H/s so rows from periods
	// with different reporting units stay comparable.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS pool_stats (
			polled_at INTEGER PRIMARY KEY,
			update_ts INTEGER NOT NULL,
			hash_rate_5m REAL NOT NULL,
			hash_rate_60m REAL NOT NULL,
			hash_rate_24h REAL NOT NULL,
			fpps_rate REAL NOT NULL,
			blocks_found INTEGER NOT NULL
		);
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool_stats table: %w", err)
	}

	// Reward amounts are stored as decimal strings; REAL columns would
	// silently lose satoshi precision.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS daily_rewards (
			date INTEGER PRIMARY KEY,
			total_reward TEXT NOT NULL,
			mining_reward TEXT NOT NULL,
			bos_plus_reward TEXT NOT NULL,
			referral_bonus TEXT NOT NULL,
			referral_reward TEXT NOT NULL,
			calculated_at INTEGER NOT NULL
		);
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to create daily_rewards table: %w", err)
	}

	return &Store{db: db}, nil
}

// SavePoolStats records one pool-stats snapshot.
func (s *Store) SavePoolStats(ctx context.Context, polledAt int64, stats *braiins.PoolStats) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO pool_stats
		 (polled_at, update_ts, hash_rate_5m, hash_rate_60m, hash_rate_24h, fpps_rate, blocks_found)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		polledAt,
		stats.UpdatedAt,
		stats.HashRate5m.HashesPerSecond(),
		stats.HashRate60m.HashesPerSecond(),
		stats.HashRate24h.HashesPerSecond(),
		stats.FPPSRate,
		len(stats.Blocks),
	)
	if err != nil {
		return fmt.Errorf("failed to insert pool stats: %w", err)
	}
	return nil
}

// SaveDailyReward upserts one day's reward breakdown. The pool keeps
// recalculating recent days, so the last write for a date wins.
func (s *Store) SaveDailyReward(ctx context.Context, reward braiins.DailyReward) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO daily_rewards
		 (date, total_reward, mining_reward, bos_plus_reward, referral_bonus, referral_reward, calculated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(date) DO UPDATE SET
		   total_reward=excluded.total_reward,
		   mining_reward=excluded.mining_reward,
		   bos_plus_reward=excluded.bos_plus_reward,
		   referral_bonus=excluded.referral_bonus,
		   referral_reward=excluded.referral_reward,
		   calculated_at=excluded.calculated_at`,
		reward.Date,
		decimal.NewFromFloat(reward.TotalReward).String(),
		decimal.NewFromFloat(reward.MiningReward).String(),
		decimal.NewFromFloat(reward.BosPlusReward).String(),
		decimal.NewFromFloat(reward.ReferralBonus).String(),
		decimal.NewFromFloat(reward.ReferralReward).String(),
		reward.CalculatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert daily reward: %w", err)
	}
	return nil
}

// StatsRow is one stored pool-stats snapshot, hash rates in H/s.
type StatsRow struct {
	PolledAt    int64
	UpdateTS    int64
	HashRate5m  float64
	HashRate60m float64
	HashRate24h float64
	FPPSRate    float64
	BlocksFound int
}

// RecentPoolStats returns the latest snapshots, newest first.
func (s *Store) RecentPoolStats(ctx context.Context, limit int) ([]StatsRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT polled_at, update_ts, hash_rate_5m, hash_rate_60m, hash_rate_24h, fpps_rate, blocks_found
		 FROM pool_stats ORDER BY polled_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query pool stats: %w", err)
	}
	defer rows.Close()

	var result []StatsRow
	for rows.Next() {
		var r StatsRow
		if err := rows.Scan(&r.PolledAt, &r.UpdateTS, &r.HashRate5m, &r.HashRate60m, &r.HashRate24h, &r.FPPSRate, &r.BlocksFound); err != nil {
			return nil, fmt.Errorf("failed to scan pool stats row: %w", err)
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return result, nil
}

// TotalRewards sums all stored daily totals with exact decimal math.
func (s *Store) TotalRewards(ctx context.Context) (decimal.Decimal, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT total_reward FROM daily_rewards`)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to query daily rewards: %w", err)
	}
	defer rows.Close()

	total := decimal.Zero
	for rows.Next() {
		var amount string
		if err := rows.Scan(&amount); err != nil {
			return decimal.Zero, fmt.Errorf("failed to scan reward row: %w", err)
		}
		d, err := decimal.NewFromString(amount)
		if err != nil {
			return decimal.Zero, fmt.Errorf("corrupt reward amount %q: %w", amount, err)
		}
		total = total.Add(d)
	}
	if err := rows.Err(); err != nil {
		return decimal.Zero, fmt.Errorf("rows iteration error: %w", err)
	}
	return total, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
