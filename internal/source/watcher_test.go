package source

import (
	"testing"
	"time"
)

func TestBackoffDuration(t *testing.T) {
	base := time.Minute

	if got := backoffDuration(base, 0); got != base {
		t.Fatalf("no failures: got %v", got)
	}
	if got := backoffDuration(base, 1); got != 2*time.Minute {
		t.Fatalf("one failure: got %v", got)
	}
	if got := backoffDuration(base, 3); got != 8*time.Minute {
		t.Fatalf("three failures: got %v", got)
	}
	// Capped at 30 minutes regardless of failure count.
	if got := backoffDuration(base, 10); got != 30*time.Minute {
		t.Fatalf("many failures: got %v", got)
	}
	if got := backoffDuration(0, 0); got != 5*time.Minute {
		t.Fatalf("zero base falls back to default: got %v", got)
	}
}
