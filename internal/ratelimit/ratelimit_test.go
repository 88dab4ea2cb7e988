package ratelimit

import "testing"

func TestBudgetExhaustsAtLimit(t *testing.T) {
	b := NewBudget(2)
	if err := b.Use(); err != nil {
		t.Fatalf("first use: %v", err)
	}
	if err := b.Use(); err != nil {
		t.Fatalf("second use: %v", err)
	}
	if err := b.Use(); err == nil {
		t.Errorf("third use should exceed a budget of 2")
	}
	if b.Allow() {
		t.Errorf("Allow should report false once exhausted")
	}
}

func TestBudgetZeroMeansUnlimited(t *testing.T) {
	b := NewBudget(0)
	for i := 0; i < 100; i++ {
		if err := b.Use(); err != nil {
			t.Fatalf("use %d: %v", i, err)
		}
	}
	if !b.Allow() {
		t.Errorf("zero budget should never exhaust")
	}
}

func TestBudgetCacheHitsAreFree(t *testing.T) {
	b := NewBudget(1)
	for i := 0; i < 10; i++ {
		b.RecordCacheHit()
	}
	if err := b.Use(); err != nil {
		t.Errorf("cache hits must not consume the budget: %v", err)
	}
	stats := b.GetStats()
	if stats["cache_hits"].(int) != 10 {
		t.Errorf("cache_hits = %v, want 10", stats["cache_hits"])
	}
}
