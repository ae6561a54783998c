package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shadowylab/braiinspool/pkg/braiins"
	"github.com/shadowylab/braiinspool/pkg/hashrate"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_SaveAndQueryPoolStats(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	stats := &braiins.PoolStats{
		HashRate5m:  hashrate.New(hashrate.GH, 5.5),
		HashRate60m: hashrate.New(hashrate.GH, 5.4),
		HashRate24h: hashrate.New(hashrate.GH, 5.3),
		UpdatedAt:   1699938300,
		Blocks:      map[string]braiins.Block{"549753": {}},
		FPPSRate:    0.00000241,
	}

	if err := store.SavePoolStats(ctx, 1699938360, stats); err != nil {
		t.Fatalf("SavePoolStats failed: %v", err)
	}
	if err := store.SavePoolStats(ctx, 1699938420, stats); err != nil {
		t.Fatalf("SavePoolStats failed: %v", err)
	}

	rows, err := store.RecentPoolStats(ctx, 10)
	if err != nil {
		t.Fatalf("RecentPoolStats failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d; want 2", len(rows))
	}
	if rows[0].PolledAt != 1699938420 {
		t.Errorf("rows not newest-first: first polled_at = %d", rows[0].PolledAt)
	}
	// Stored canonicalized to H/s.
	if rows[0].HashRate5m != 5.5e9 {
		t.Errorf("HashRate5m = %g; want 5.5e9", rows[0].HashRate5m)
	}
	if rows[0].BlocksFound != 1 {
		t.Errorf("BlocksFound = %d; want 1", rows[0].BlocksFound)
	}
}

func TestStore_DailyRewardUpsert(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	reward := braiins.DailyReward{
		Date:         1699833600,
		TotalReward:  0.00077332,
		MiningReward: 0.00071234,
		CalculatedAt: 1699920000,
	}
	if err := store.SaveDailyReward(ctx, reward); err != nil {
		t.Fatalf("SaveDailyReward failed: %v", err)
	}

	// Same date again with a recalculated amount: last write wins.
	reward.TotalReward = 0.00080000
	reward.CalculatedAt = 1699930000
	if err := store.SaveDailyReward(ctx, reward); err != nil {
		t.Fatalf("SaveDailyReward (upsert) failed: %v", err)
	}

	other := braiins.DailyReward{Date: 1699747200, TotalReward: 0.00010000}
	if err := store.SaveDailyReward(ctx, other); err != nil {
		t.Fatalf("SaveDailyReward failed: %v", err)
	}

	total, err := store.TotalRewards(ctx)
	if err != nil {
		t.Fatalf("TotalRewards failed: %v", err)
	}
	if got := total.String(); got != "0.0009" {
		t.Errorf("TotalRewards = %s; want 0.0009", got)
	}
}

func TestStore_EmptyTotals(t *testing.T) {
	store := newTestStore(t)

	total, err := store.TotalRewards(context.Background())
	if err != nil {
		t.Fatalf("TotalRewards failed: %v", err)
	}
	if !total.IsZero() {
		t.Errorf("TotalRewards on empty store = %s; want 0", total)
	}
}
