package middleware

import "testing"

func TestRateLimiterBurst(t *testing.T) {
	rl := NewRateLimiter(1, 3)

	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("request %d within burst was rejected", i+1)
		}
	}
	if rl.Allow("10.0.0.1") {
		t.Errorf("request beyond burst was allowed")
	}

	// Other clients keep their own bucket.
	if !rl.Allow("10.0.0.2") {
		t.Errorf("separate client was rejected")
	}
}
