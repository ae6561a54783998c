package infra

import (
	"testing"
	"time"
)

func TestRateLimiter_TryAcquire(t *testing.T) {
	rl := NewRateLimiter(2, 10)

	if !rl.TryAcquire() {
		t.Error("expected first TryAcquire to succeed")
	}
	if !rl.TryAcquire() {
		t.Error("expected second TryAcquire to succeed")
	}

	if rl.TryAcquire() {
		t.Error("expected third TryAcquire to fail")
	}
}

func TestRateLimiter_Refill(t *testing.T) {
	rl := NewRateLimiter(1, 10)

	if !rl.TryAcquire() {
		t.Error("expected first TryAcquire to succeed")
	}

	if rl.TryAcquire() {
		t.Error("expected immediate TryAcquire to fail")
	}

	// 100ms = 1 token at 10/s
	time.Sleep(120 * time.Millisecond)

	if !rl.TryAcquire() {
		t.Error("expected TryAcquire to succeed after refill")
	}
}

func TestRateLimiter_Wait(t *testing.T) {
	rl := NewRateLimiter(1, 100)

	rl.Wait()

	// Second Wait should block ~10ms (1/100 second)
	start := time.Now()
	rl.Wait()
	elapsed := time.Since(start)

	if elapsed < 5*time.Millisecond {
		t.Errorf("expected Wait to block, but elapsed=%v", elapsed)
	}
}

func TestNewPoolAPILimiter_CoversOneCycle(t *testing.T) {
	rl := NewPoolAPILimiter()

	// A full poll cycle is four requests; the burst must cover it.
	for i := 0; i < 4; i++ {
		if !rl.TryAcquire() {
			t.Fatalf("request %d of the cycle should not be throttled", i+1)
		}
	}
	if rl.TryAcquire() {
		t.Error("fifth immediate request should be throttled")
	}
}
