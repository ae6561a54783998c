package monitor

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/shadowylab/braiinspool/internal/infra"
	"github.com/shadowylab/braiinspool/pkg/braiins"
)

// PoolClient is the slice of the API client the poller needs.
type PoolClient interface {
	PoolStats(ctx context.Context) (*braiins.PoolStats, error)
	UserProfile(ctx context.Context) (*braiins.UserProfile, error)
	DailyRewards(ctx context.Context) (braiins.DailyRewards, error)
	Workers(ctx context.Context) (braiins.Workers, error)
}

// SnapshotStore persists what a poll cycle fetched.
type SnapshotStore interface {
	SavePoolStats(ctx context.Context, polledAt int64, stats *braiins.PoolStats) error
	SaveDailyReward(ctx context.Context, reward braiins.DailyReward) error
}

// Publisher pushes completed snapshots to live consumers.
type Publisher interface {
	Publish(v any)
}

// Snapshot is one completed poll cycle across all four endpoints.
type Snapshot struct {
	PolledAt int64                `json:"polled_at"`
	Stats    *braiins.PoolStats   `json:"stats"`
	Profile  *braiins.UserProfile `json:"profile"`
	Rewards  braiins.DailyRewards `json:"rewards"`
	Workers  braiins.Workers      `json:"workers"`
}

// Poller fetches the four pool endpoints on a fixed interval. The
// retry policy lives here, outside the client: the client performs
// exactly one round trip per call, and the poller decides when to back
// off or stop calling entirely.
type Poller struct {
	client   PoolClient
	store    SnapshotStore
	pub      Publisher
	limiter  *infra.RateLimiter
	breaker  *infra.CircuitBreaker
	interval time.Duration

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewPoller creates a poller. store and pub may be nil when history or
// live broadcast is not wanted.
func NewPoller(client PoolClient, store SnapshotStore, pub Publisher, interval time.Duration) *Poller {
	return &Poller{
		client:   client,
		store:    store,
		pub:      pub,
		limiter:  infra.NewPoolAPILimiter(),
		breaker:  infra.NewCircuitBreaker(infra.DefaultCircuitBreakerConfig("braiins-api")),
		interval: interval,
	}
}

// Start begins polling. The first cycle runs immediately.
func (p *Poller) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				slog.Error("Poller panic recovered", slog.Any("panic", r))
			}
		}()

		retryCount := 0
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		if err := p.pollOnce(ctx); err != nil {
			slog.Warn("Initial poll failed", slog.Any("error", err))
		}

		for {
			select {
			case <-ctx.Done():
				slog.Info("Poller stopped")
				return
			case <-ticker.C:
				err := p.pollOnce(ctx)
				if err == nil {
					retryCount = 0
					continue
				}
				slog.Warn("Poll cycle failed",
					slog.Any("error", err),
					slog.Int("retry", retryCount),
				)

				delay := infra.CalculateBackoff(retryCount)
				retryCount++
				select {
				case <-ctx.Done():
					return
				case <-time.After(delay):
				}
			}
		}
	}()
}

// Stop halts polling and waits for the in-flight cycle to finish.
func (p *Poller) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
}

// pollOnce runs one full cycle: fetch all four endpoints, persist,
// publish. A cycle is all-or-nothing; a failed fetch aborts it.
func (p *Poller) pollOnce(ctx context.Context) error {
	if !p.breaker.Allow() {
		slog.Debug("Skipping poll cycle, circuit breaker open")
		return nil
	}

	snapshot, err := p.fetch(ctx)
	if err != nil {
		p.breaker.RecordFailure()
		return err
	}
	p.breaker.RecordSuccess()

	if p.store != nil {
		if err := p.store.SavePoolStats(ctx, snapshot.PolledAt, snapshot.Stats); err != nil {
			slog.Error("Failed to persist pool stats", slog.Any("error", err))
		}
		for _, reward := range snapshot.Rewards {
			if err := p.store.SaveDailyReward(ctx, reward); err != nil {
				slog.Error("Failed to persist daily reward",
					slog.Int64("date", reward.Date),
					slog.Any("error", err),
				)
				break
			}
		}
	}

	if p.pub != nil {
		p.pub.Publish(snapshot)
	}

	slog.Info("Poll cycle complete",
		slog.String("pool_5m", snapshot.Stats.HashRate5m.String()),
		slog.Int("workers", len(snapshot.Workers)),
	)
	return nil
}

func (p *Poller) fetch(ctx context.Context) (*Snapshot, error) {
	p.limiter.Wait()
	stats, err := p.client.PoolStats(ctx)
	if err != nil {
		return nil, err
	}

	p.limiter.Wait()
	profile, err := p.client.UserProfile(ctx)
	if err != nil {
		return nil, err
	}

	p.limiter.Wait()
	rewards, err := p.client.DailyRewards(ctx)
	if err != nil {
		return nil, err
	}

	p.limiter.Wait()
	workers, err := p.client.Workers(ctx)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		PolledAt: time.Now().Unix(),
		Stats:    stats,
		Profile:  profile,
		Rewards:  rewards,
		Workers:  workers,
	}, nil
}
