package service_test

import (
	"testing"

	"github.com/msomdec/eventpass/internal/service"
)

func TestRateLimiter_AllowsUpToCapacity(t *testing.T) {
	rl := service.NewRateLimiter(1, 3)
	t.Cleanup(rl.Stop)

	// Should allow 3 requests immediately (full bucket).
	for i := 0; i < 3; i++ {
		if !rl.Allow("test-key") {
			t.Fatalf("request %d should be allowed (bucket not yet empty)", i+1)
		}
	}

	// 4th request should be denied (bucket empty).
	if rl.Allow("test-key") {
		t.Fatal("4th request should be denied (bucket empty)")
	}
}

func TestRateLimiter_DifferentKeysAreIndependent(t *testing.T) {
	rl := service.NewRateLimiter(1, 1)
	t.Cleanup(rl.Stop)

	if !rl.Allow("ip-a") {
		t.Fatal("ip-a first request should be allowed")
	}
	if rl.Allow("ip-a") {
		t.Fatal("ip-a second request should be denied")
	}

	// ip-b has its own bucket.
	if !rl.Allow("ip-b") {
		t.Fatal("ip-b first request should be allowed (independent bucket)")
	}
}

func TestRateLimiter_NewKeyStartsFull(t *testing.T) {
	rl := service.NewRateLimiter(10, 5)
	t.Cleanup(rl.Stop)

	for i := 0; i < 5; i++ {
		if !rl.Allow("new-key") {
			t.Fatalf("new key request %d should be allowed (starts full)", i+1)
		}
	}
	if rl.Allow("new-key") {
		t.Fatal("6th request should be denied")
	}
}

func TestRateLimiter_ZeroRateNeverRefills(t *testing.T) {
	rl := service.NewRateLimiter(0, 2)
	t.Cleanup(rl.Stop)

	if !rl.Allow("k") {
		t.Fatal("first request should be allowed")
	}
	if !rl.Allow("k") {
		t.Fatal("second request should be allowed")
	}
	if rl.Allow("k") {
		t.Fatal("third request should be denied (no refill)")
	}
}

func TestRateLimiter_StopIsIdempotent(t *testing.T) {
	rl := service.NewRateLimiter(1, 1)
	rl.Stop()
	rl.Stop()

	if !rl.Allow("k") {
		t.Fatal("Allow should keep working after Stop")
	}
}
