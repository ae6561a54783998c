package braiins

import (
	"github.com/shadowylab/braiinspool/pkg/hashrate"
)

// Domain types returned by the client. All of them are plain value
// objects built once at decode time; the caller owns them afterwards.
// Hash-rate fields are already folded with the record's shared
// hash_rate_unit, so they carry their scale with them.

// PoolStats is a snapshot of pool-wide statistics.
type PoolStats struct {
	HashRate5m  hashrate.HashRate
	HashRate60m hashrate.HashRate
	HashRate24h hashrate.HashRate
	UpdatedAt   int64 // unix seconds the stats were computed at
	Blocks      map[string]Block
	FPPSRate    float64
}

// Block is one mined-block record, keyed in PoolStats.Blocks by the
// pool's block-identifier string.
type Block struct {
	DateFound           int64
	MiningDuration      int64
	TotalShares         int64
	State               string // free-form, e.g. "confirmed"
	ConfirmationsLeft   int64
	Value               float64
	UserReward          float64
	PoolScoringHashRate hashrate.HashRate
}

// UserProfile is an account snapshot.
type UserProfile struct {
	ConfirmedReward   float64
	UnconfirmedReward float64
	EstimatedReward   float64

	HashRate5m      hashrate.HashRate
	HashRate60m     hashrate.HashRate
	HashRate24h     hashrate.HashRate
	HashRateScoring hashrate.HashRate

	LowWorkers      int
	OffWorkers      int
	OkWorkers       int
	DisabledWorkers int

	Shares5m      int64
	Shares60m     int64
	Shares24h     int64
	SharesScoring int64
}

// DailyReward is one calendar day's reward breakdown.
type DailyReward struct {
	Date           int64
	TotalReward    float64
	MiningReward   float64
	BosPlusReward  float64
	ReferralBonus  float64
	ReferralReward float64
	CalculatedAt   int64
}

// DailyRewards preserves the server-provided order, which is
// chronological in practice but not guaranteed by the API.
type DailyRewards []DailyReward

// Worker is a per-worker snapshot.
type Worker struct {
	State           string
	LastShare       int64
	HashRateScoring hashrate.HashRate
	HashRate5m      hashrate.HashRate
	HashRate60m     hashrate.HashRate
	HashRate24h     hashrate.HashRate
	Shares5m        int64
	Shares60m       int64
	Shares24h       int64
}

// Workers maps worker identifiers ("username.workerlabel") to snapshots.
type Workers map[string]Worker
