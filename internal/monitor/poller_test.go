package monitor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shadowylab/braiinspool/pkg/braiins"
	"github.com/shadowylab/braiinspool/pkg/hashrate"
)

// fakeClient serves canned responses and counts calls.
type fakeClient struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *fakeClient) bump() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.err
}

func (f *fakeClient) PoolStats(ctx context.Context) (*braiins.PoolStats, error) {
	if err := f.bump(); err != nil {
		return nil, err
	}
	return &braiins.PoolStats{
		HashRate5m: hashrate.New(hashrate.GH, 5.7),
		UpdatedAt:  1699938300,
		Blocks:     map[string]braiins.Block{},
		FPPSRate:   0.00000241,
	}, nil
}

func (f *fakeClient) UserProfile(ctx context.Context) (*braiins.UserProfile, error) {
	if err := f.bump(); err != nil {
		return nil, err
	}
	return &braiins.UserProfile{OkWorkers: 3}, nil
}

func (f *fakeClient) DailyRewards(ctx context.Context) (braiins.DailyRewards, error) {
	if err := f.bump(); err != nil {
		return nil, err
	}
	return braiins.DailyRewards{{Date: 1699833600, TotalReward: 0.0007}}, nil
}

func (f *fakeClient) Workers(ctx context.Context) (braiins.Workers, error) {
	if err := f.bump(); err != nil {
		return nil, err
	}
	return braiins.Workers{"user.rig1": {State: "ok"}}, nil
}

type fakeStore struct {
	mu      sync.Mutex
	stats   int
	rewards int
}

func (f *fakeStore) SavePoolStats(ctx context.Context, polledAt int64, stats *braiins.PoolStats) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stats++
	return nil
}

func (f *fakeStore) SaveDailyReward(ctx context.Context, reward braiins.DailyReward) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rewards++
	return nil
}

type fakePublisher struct {
	mu        sync.Mutex
	snapshots []*Snapshot
}

func (f *fakePublisher) Publish(v any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := v.(*Snapshot); ok {
		f.snapshots = append(f.snapshots, s)
	}
}

func TestPoller_PollOnce(t *testing.T) {
	client := &fakeClient{}
	store := &fakeStore{}
	pub := &fakePublisher{}
	poller := NewPoller(client, store, pub, time.Minute)

	if err := poller.pollOnce(context.Background()); err != nil {
		t.Fatalf("pollOnce failed: %v", err)
	}

	if client.calls != 4 {
		t.Errorf("client calls = %d; want 4 (one per endpoint)", client.calls)
	}
	if store.stats != 1 {
		t.Errorf("stats saved = %d; want 1", store.stats)
	}
	if store.rewards != 1 {
		t.Errorf("rewards saved = %d; want 1", store.rewards)
	}
	if len(pub.snapshots) != 1 {
		t.Fatalf("published snapshots = %d; want 1", len(pub.snapshots))
	}

	snap := pub.snapshots[0]
	if snap.Stats.HashRate5m != hashrate.New(hashrate.GH, 5.7) {
		t.Errorf("snapshot hash rate = %v", snap.Stats.HashRate5m)
	}
	if snap.PolledAt == 0 {
		t.Error("snapshot PolledAt not set")
	}
}

func TestPoller_FailedFetchAborts(t *testing.T) {
	client := &fakeClient{err: errors.New("boom")}
	store := &fakeStore{}
	pub := &fakePublisher{}
	poller := NewPoller(client, store, pub, time.Minute)

	if err := poller.pollOnce(context.Background()); err == nil {
		t.Fatal("pollOnce should fail")
	}
	if store.stats != 0 || store.rewards != 0 {
		t.Error("nothing should be persisted on a failed cycle")
	}
	if len(pub.snapshots) != 0 {
		t.Error("nothing should be published on a failed cycle")
	}
}

func TestPoller_BreakerSkipsCycles(t *testing.T) {
	client := &fakeClient{err: errors.New("boom")}
	poller := NewPoller(client, nil, nil, time.Minute)

	// Trip the breaker (default threshold is 5 failures).
	for i := 0; i < 5; i++ {
		if err := poller.pollOnce(context.Background()); err == nil {
			t.Fatal("pollOnce should fail")
		}
	}

	before := client.calls
	// Open breaker: the cycle is skipped without touching the API.
	if err := poller.pollOnce(context.Background()); err != nil {
		t.Fatalf("skipped cycle should not report an error: %v", err)
	}
	if client.calls != before {
		t.Errorf("client calls = %d; want %d (cycle skipped)", client.calls, before)
	}
}

func TestPoller_NilStoreAndPublisher(t *testing.T) {
	poller := NewPoller(&fakeClient{}, nil, nil, time.Minute)
	if err := poller.pollOnce(context.Background()); err != nil {
		t.Fatalf("pollOnce failed: %v", err)
	}
}

func TestPoller_StartStop(t *testing.T) {
	client := &fakeClient{}
	pub := &fakePublisher{}
	poller := NewPoller(client, nil, pub, time.Hour)

	poller.Start(context.Background())

	// The first cycle runs immediately; wait for its snapshot.
	deadline := time.After(2 * time.Second)
	for {
		pub.mu.Lock()
		n := len(pub.snapshots)
		pub.mu.Unlock()
		if n > 0 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("no snapshot published after Start")
		case <-time.After(10 * time.Millisecond):
		}
	}

	poller.Stop()
}
