package signal

import (
	"testing"
	"time"
)

func TestRoomRateLimiter(t *testing.T) {
	now := time.Unix(1000, 0)
	rl := NewRoomRateLimiter(2, time.Minute)
	rl.now = func() time.Time { return now }

	if !rl.Allow("a") || !rl.Allow("a") {
		t.Fatal("first two attempts must pass")
	}
	if rl.Allow("a") {
		t.Fatal("third attempt inside the window must be refused")
	}
	if !rl.Allow("b") {
		t.Fatal("limits are per client")
	}

	now = now.Add(61 * time.Second)
	if !rl.Allow("a") {
		t.Fatal("window must slide")
	}
}

func TestRoomRateLimiterDisabled(t *testing.T) {
	var nilLimiter *RoomRateLimiter
	if !nilLimiter.Allow("a") || !NewRoomRateLimiter(0, time.Second).Allow("a") {
		t.Fatal("disabled limiter must allow")
	}
}
