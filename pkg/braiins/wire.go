package braiins

import (
	"encoding/json"
	"strconv"

	"github.com/shadowylab/braiinspool/pkg/hashrate"
)

// Wire-shape structs mirror the JSON exactly: decimal amounts stay
// strings, every record carries one shared hash_rate_unit, and required
// fields are pointers so absence is distinguishable from a zero value.
// Decoding is unmarshal -> presence/format checks -> fold the unit into
// each hash-rate field -> build the domain value. Anything unexpected
// is a DecodeError, never a panic.

// envelope is the outer {"btc": ...} wrapper every endpoint uses.
type envelope[T any] struct {
	BTC *T `json:"btc"`
}

func unwrapEnvelope[T any](data []byte) (*T, error) {
	var env envelope[T]
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if env.BTC == nil {
		return nil, decodeErrorf("missing %q envelope key", "btc")
	}
	return env.BTC, nil
}

// requireFloat returns the field value or a DecodeError naming the
// missing field.
func requireFloat(name string, v *float64) (float64, error) {
	if v == nil {
		return 0, decodeErrorf("missing required field %q", name)
	}
	return *v, nil
}

func requireInt(name string, v *int64) (int64, error) {
	if v == nil {
		return 0, decodeErrorf("missing required field %q", name)
	}
	return *v, nil
}

func requireCount(name string, v *int) (int, error) {
	if v == nil {
		return 0, decodeErrorf("missing required field %q", name)
	}
	return *v, nil
}

func requireString(name string, v *string) (string, error) {
	if v == nil {
		return "", decodeErrorf("missing required field %q", name)
	}
	return *v, nil
}

// parseAmount parses a string-encoded decimal field (e.g. "12.92594863").
func parseAmount(name string, v *string) (float64, error) {
	if v == nil {
		return 0, decodeErrorf("missing required field %q", name)
	}
	f, err := strconv.ParseFloat(*v, 64)
	if err != nil {
		return 0, decodeErrorf("field %q: invalid decimal %q", name, *v)
	}
	return f, nil
}

// parseUnit parses the record's shared hash_rate_unit field.
func parseUnit(v *string) (hashrate.Magnitude, error) {
	if v == nil {
		return 0, decodeErrorf("missing required field %q", "hash_rate_unit")
	}
	m, err := hashrate.ParseMagnitude(*v)
	if err != nil {
		return 0, &DecodeError{Err: err}
	}
	return m, nil
}

// =====================================================
// Pool stats
// =====================================================

type poolStatsWire struct {
	HashRateUnit    *string              `json:"hash_rate_unit"`
	Pool5mHashRate  *float64             `json:"pool_5m_hash_rate"`
	Pool60mHashRate *float64             `json:"pool_60m_hash_rate"`
	Pool24hHashRate *float64             `json:"pool_24h_hash_rate"`
	UpdateTS        *int64               `json:"update_ts"`
	Blocks          map[string]blockWire `json:"blocks"`
	FPPSRate        *float64             `json:"fpps_rate"`
}

type blockWire struct {
	DateFound           *int64   `json:"date_found"`
	MiningDuration      *int64   `json:"mining_duration"`
	TotalShares         *int64   `json:"total_shares"`
	State               *string  `json:"state"`
	ConfirmationsLeft   *int64   `json:"confirmations_left"`
	Value               *string  `json:"value"`
	UserReward          *string  `json:"user_reward"`
	PoolScoringHashRate *float64 `json:"pool_scoring_hash_rate"`
}

func decodePoolStats(data []byte) (*PoolStats, error) {
	w, err := unwrapEnvelope[poolStatsWire](data)
	if err != nil {
		return nil, err
	}

	unit, err := parseUnit(w.HashRateUnit)
	if err != nil {
		return nil, err
	}

	rate5m, err := requireFloat("pool_5m_hash_rate", w.Pool5mHashRate)
	if err != nil {
		return nil, err
	}
	rate60m, err := requireFloat("pool_60m_hash_rate", w.Pool60mHashRate)
	if err != nil {
		return nil, err
	}
	rate24h, err := requireFloat("pool_24h_hash_rate", w.Pool24hHashRate)
	if err != nil {
		return nil, err
	}
	updateTS, err := requireInt("update_ts", w.UpdateTS)
	if err != nil {
		return nil, err
	}
	fppsRate, err := requireFloat("fpps_rate", w.FPPSRate)
	if err != nil {
		return nil, err
	}
	if w.Blocks == nil {
		return nil, decodeErrorf("missing required field %q", "blocks")
	}

	blocks := make(map[string]Block, len(w.Blocks))
	for id, bw := range w.Blocks {
		b, err := decodeBlock(unit, bw)
		if err != nil {
			return nil, err
		}
		blocks[id] = b
	}

	return &PoolStats{
		HashRate5m:  hashrate.New(unit, rate5m),
		HashRate60m: hashrate.New(unit, rate60m),
		HashRate24h: hashrate.New(unit, rate24h),
		UpdatedAt:   updateTS,
		Blocks:      blocks,
		FPPSRate:    fppsRate,
	}, nil
}

func decodeBlock(unit hashrate.Magnitude, w blockWire) (Block, error) {
	dateFound, err := requireInt("date_found", w.DateFound)
	if err != nil {
		return Block{}, err
	}
	duration, err := requireInt("mining_duration", w.MiningDuration)
	if err != nil {
		return Block{}, err
	}
	totalShares, err := requireInt("total_shares", w.TotalShares)
	if err != nil {
		return Block{}, err
	}
	state, err := requireString("state", w.State)
	if err != nil {
		return Block{}, err
	}
	confLeft, err := requireInt("confirmations_left", w.ConfirmationsLeft)
	if err != nil {
		return Block{}, err
	}
	value, err := parseAmount("value", w.Value)
	if err != nil {
		return Block{}, err
	}
	userReward, err := parseAmount("user_reward", w.UserReward)
	if err != nil {
		return Block{}, err
	}
	scoringRate, err := requireFloat("pool_scoring_hash_rate", w.PoolScoringHashRate)
	if err != nil {
		return Block{}, err
	}

	return Block{
		DateFound:           dateFound,
		MiningDuration:      duration,
		TotalShares:         totalShares,
		State:               state,
		ConfirmationsLeft:   confLeft,
		Value:               value,
		UserReward:          userReward,
		PoolScoringHashRate: hashrate.New(unit, scoringRate),
	}, nil
}

// =====================================================
// User profile
// =====================================================

type userProfileWire struct {
	ConfirmedReward   *string `json:"confirmed_reward"`
	UnconfirmedReward *string `json:"unconfirmed_reward"`
	EstimatedReward   *string `json:"estimated_reward"`

	HashRateUnit    *string  `json:"hash_rate_unit"`
	HashRate5m      *float64 `json:"hash_rate_5m"`
	HashRate60m     *float64 `json:"hash_rate_60m"`
	HashRate24h     *float64 `json:"hash_rate_24h"`
	HashRateScoring *float64 `json:"hash_rate_scoring"`

	LowWorkers *int `json:"low_workers"`
	OffWorkers *int `json:"off_workers"`
	OkWorkers  *int `json:"ok_workers"`
	DisWorkers *int `json:"dis_workers"`

	Shares5m      *int64 `json:"shares_5m"`
	Shares60m     *int64 `json:"shares_60m"`
	Shares24h     *int64 `json:"shares_24h"`
	SharesScoring *int64 `json:"shares_scoring"`
}

func decodeUserProfile(data []byte) (*UserProfile, error) {
	w, err := unwrapEnvelope[userProfileWire](data)
	if err != nil {
		return nil, err
	}

	unit, err := parseUnit(w.HashRateUnit)
	if err != nil {
		return nil, err
	}

	confirmed, err := parseAmount("confirmed_reward", w.ConfirmedReward)
	if err != nil {
		return nil, err
	}
	unconfirmed, err := parseAmount("unconfirmed_reward", w.UnconfirmedReward)
	if err != nil {
		return nil, err
	}
	estimated, err := parseAmount("estimated_reward", w.EstimatedReward)
	if err != nil {
		return nil, err
	}

	rate5m, err := requireFloat("hash_rate_5m", w.HashRate5m)
	if err != nil {
		return nil, err
	}
	rate60m, err := requireFloat("hash_rate_60m", w.HashRate60m)
	if err != nil {
		return nil, err
	}
	rate24h, err := requireFloat("hash_rate_24h", w.HashRate24h)
	if err != nil {
		return nil, err
	}
	rateScoring, err := requireFloat("hash_rate_scoring", w.HashRateScoring)
	if err != nil {
		return nil, err
	}

	low, err := requireCount("low_workers", w.LowWorkers)
	if err != nil {
		return nil, err
	}
	off, err := requireCount("off_workers", w.OffWorkers)
	if err != nil {
		return nil, err
	}
	ok, err := requireCount("ok_workers", w.OkWorkers)
	if err != nil {
		return nil, err
	}
	dis, err := requireCount("dis_workers", w.DisWorkers)
	if err != nil {
		return nil, err
	}

	shares5m, err := requireInt("shares_5m", w.Shares5m)
	if err != nil {
		return nil, err
	}
	shares60m, err := requireInt("shares_60m", w.Shares60m)
	if err != nil {
		return nil, err
	}
	shares24h, err := requireInt("shares_24h", w.Shares24h)
	if err != nil {
		return nil, err
	}
	sharesScoring, err := requireInt("shares_scoring", w.SharesScoring)
	if err != nil {
		return nil, err
	}

	return &UserProfile{
		ConfirmedReward:   confirmed,
		UnconfirmedReward: unconfirmed,
		EstimatedReward:   estimated,
		HashRate5m:        hashrate.New(unit, rate5m),
		HashRate60m:       hashrate.New(unit, rate60m),
		HashRate24h:       hashrate.New(unit, rate24h),
		HashRateScoring:   hashrate.New(unit, rateScoring),
		LowWorkers:        low,
		OffWorkers:        off,
		OkWorkers:         ok,
		DisabledWorkers:   dis,
		Shares5m:          shares5m,
		Shares60m:         shares60m,
		Shares24h:         shares24h,
		SharesScoring:     sharesScoring,
	}, nil
}

// =====================================================
// Daily rewards
// =====================================================

type dailyRewardsWire struct {
	DailyRewards []dailyRewardWire `json:"daily_rewards"`
}

type dailyRewardWire struct {
	Date           *int64  `json:"date"`
	TotalReward    *string `json:"total_reward"`
	MiningReward   *string `json:"mining_reward"`
	BosPlusReward  *string `json:"bos_plus_reward"`
	ReferralBonus  *string `json:"referral_bonus"`
	ReferralReward *string `json:"referral_reward"`
	CalculateTS    *int64  `json:"calculate_ts"`
}

func decodeDailyRewards(data []byte) (DailyRewards, error) {
	w, err := unwrapEnvelope[dailyRewardsWire](data)
	if err != nil {
		return nil, err
	}
	if w.DailyRewards == nil {
		return nil, decodeErrorf("missing required field %q", "daily_rewards")
	}

	rewards := make(DailyRewards, 0, len(w.DailyRewards))
	for _, rw := range w.DailyRewards {
		r, err := decodeDailyReward(rw)
		if err != nil {
			return nil, err
		}
		rewards = append(rewards, r)
	}
	return rewards, nil
}

func decodeDailyReward(w dailyRewardWire) (DailyReward, error) {
	date, err := requireInt("date", w.Date)
	if err != nil {
		return DailyReward{}, err
	}
	total, err := parseAmount("total_reward", w.TotalReward)
	if err != nil {
		return DailyReward{}, err
	}
	mining, err := parseAmount("mining_reward", w.MiningReward)
	if err != nil {
		return DailyReward{}, err
	}
	bosPlus, err := parseAmount("bos_plus_reward", w.BosPlusReward)
	if err != nil {
		return DailyReward{}, err
	}
	refBonus, err := parseAmount("referral_bonus", w.ReferralBonus)
	if err != nil {
		return DailyReward{}, err
	}
	refReward, err := parseAmount("referral_reward", w.ReferralReward)
	if err != nil {
		return DailyReward{}, err
	}
	calcTS, err := requireInt("calculate_ts", w.CalculateTS)
	if err != nil {
		return DailyReward{}, err
	}

	return DailyReward{
		Date:           date,
		TotalReward:    total,
		MiningReward:   mining,
		BosPlusReward:  bosPlus,
		ReferralBonus:  refBonus,
		ReferralReward: refReward,
		CalculatedAt:   calcTS,
	}, nil
}

// =====================================================
// Workers
// =====================================================

type workersWire struct {
	Workers map[string]workerWire `json:"workers"`
}

type workerWire struct {
	State           *string  `json:"state"`
	LastShare       *int64   `json:"last_share"`
	HashRateUnit    *string  `json:"hash_rate_unit"`
	HashRateScoring *float64 `json:"hash_rate_scoring"`
	HashRate5m      *float64 `json:"hash_rate_5m"`
	HashRate60m     *float64 `json:"hash_rate_60m"`
	HashRate24h     *float64 `json:"hash_rate_24h"`
	Shares5m        *int64   `json:"shares_5m"`
	Shares60m       *int64   `json:"shares_60m"`
	Shares24h       *int64   `json:"shares_24h"`
}

func decodeWorkers(data []byte) (Workers, error) {
	w, err := unwrapEnvelope[workersWire](data)
	if err != nil {
		return nil, err
	}
	if w.Workers == nil {
		return nil, decodeErrorf("missing required field %q", "workers")
	}

	workers := make(Workers, len(w.Workers))
	for id, ww := range w.Workers {
		worker, err := decodeWorker(ww)
		if err != nil {
			return nil, err
		}
		workers[id] = worker
	}
	return workers, nil
}

func decodeWorker(w workerWire) (Worker, error) {
	// Unlike pool stats, each worker record carries its own unit field.
	unit, err := parseUnit(w.HashRateUnit)
	if err != nil {
		return Worker{}, err
	}

	state, err := requireString("state", w.State)
	if err != nil {
		return Worker{}, err
	}
	lastShare, err := requireInt("last_share", w.LastShare)
	if err != nil {
		return Worker{}, err
	}
	scoring, err := requireFloat("hash_rate_scoring", w.HashRateScoring)
	if err != nil {
		return Worker{}, err
	}
	rate5m, err := requireFloat("hash_rate_5m", w.HashRate5m)
	if err != nil {
		return Worker{}, err
	}
	rate60m, err := requireFloat("hash_rate_60m", w.HashRate60m)
	if err != nil {
		return Worker{}, err
	}
	rate24h, err := requireFloat("hash_rate_24h", w.HashRate24h)
	if err != nil {
		return Worker{}, err
	}
	shares5m, err := requireInt("shares_5m", w.Shares5m)
	if err != nil {
		return Worker{}, err
	}
	shares60m, err := requireInt("shares_60m", w.Shares60m)
	if err != nil {
		return Worker{}, err
	}
	shares24h, err := requireInt("shares_24h", w.Shares24h)
	if err != nil {
		return Worker{}, err
	}

	return Worker{
		State:           state,
		LastShare:       lastShare,
		HashRateScoring: hashrate.New(unit, scoring),
		HashRate5m:      hashrate.New(unit, rate5m),
		HashRate60m:     hashrate.New(unit, rate60m),
		HashRate24h:     hashrate.New(unit, rate24h),
		Shares5m:        shares5m,
		Shares60m:       shares60m,
		Shares24h:       shares24h,
	}, nil
}

// =====================================================
// Tor check
// =====================================================

type torCheckWire struct {
	IsTor *bool `json:"IsTor"`
}

func decodeTorCheck(data []byte) (bool, error) {
	var w torCheckWire
	if err := json.Unmarshal(data, &w); err != nil {
		return false, &DecodeError{Err: err}
	}
	if w.IsTor == nil {
		return false, decodeErrorf("missing required field %q", "IsTor")
	}
	return *w.IsTor, nil
}
