// ABOUTME: Tests for retry utilities including exponential backoff
// ABOUTME: Validates backoff bounds, jitter, and context-aware sleeping
package util

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestCalculateBackoff_Bounds(t *testing.T) {
	tests := []struct {
		name     string
		base     time.Duration
		attempt  int
		min, max time.Duration
	}{
		{"zero attempt", time.Second, 0, 0, 0},
		{"negative attempt", time.Second, -5, 0, 0},
		{"zero base", 0, 3, 0, 0},
		{"first attempt", 100 * time.Millisecond, 1, 150 * time.Millisecond, 250 * time.Millisecond},
		{"third attempt", 100 * time.Millisecond, 3, 600 * time.Millisecond, time.Second},
		{"capped", time.Second, 10, 22500 * time.Millisecond, 37500 * time.Millisecond},
		{"huge attempt", time.Millisecond, 100, 22500 * time.Millisecond, 37500 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateBackoff(tt.base, tt.attempt)
			if got < tt.min || got > tt.max {
				t.Errorf("CalculateBackoff(%v, %d) = %v, want between %v and %v",
					tt.base, tt.attempt, got, tt.min, tt.max)
			}
		})
	}
}

func TestCalculateBackoff_JitterVaries(t *testing.T) {
	first := CalculateBackoff(time.Second, 2)
	for i := 0; i < 100; i++ {
		if CalculateBackoff(time.Second, 2) != first {
			return
		}
	}
	t.Error("jitter should produce varying results, but all 100 samples were identical")
}

func TestSleep_Completes(t *testing.T) {
	if err := Sleep(context.Background(), time.Millisecond); err != nil {
		t.Errorf("Sleep() = %v, want nil", err)
	}
}

func TestSleep_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := Sleep(ctx, time.Minute)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Sleep() = %v, want context.Canceled", err)
	}
	if time.Since(start) > time.Second {
		t.Error("Sleep should return promptly when the context is cancelled")
	}
}
