package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"meal-planner/internal/core/plan"
	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/pkg/common"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Cache: config.CacheConfig{
			Enabled:         true,
			MaxSize:         10,
			Freshness:       7 * 24 * time.Hour,
			CleanupInterval: time.Hour,
			SnapshotPath:    filepath.Join(t.TempDir(), "plan_cache.json"),
		},
	}
}

func testRecord(generatedAt time.Time) plan.CacheRecord {
	return plan.CacheRecord{
		WeeklyPlan:      &plan.WeeklyPlan{Days: make([]plan.DayPlan, 7)},
		GroceryList:     []plan.GroceryCategory{},
		WeekSummary:     &plan.WeekSummary{TotalMeals: 21},
		LastGeneratedAt: generatedAt,
	}
}

func TestManagerGetSetRoundTrip(t *testing.T) {
	m := NewManager(testConfig(t))
	ctx := context.Background()
	now := time.Now()

	if _, err := m.Get(ctx, "u1"); !errors.Is(err, common.ErrCacheMiss) {
		t.Fatalf("empty cache: err = %v, want ErrCacheMiss", err)
	}

	if err := m.Set(ctx, "u1", testRecord(now)); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	got, err := m.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.WeekSummary.TotalMeals != 21 {
		t.Errorf("record round trip lost data: %+v", got.WeekSummary)
	}
}

func TestManagerFreshnessWindow(t *testing.T) {
	m := NewManager(testConfig(t))
	ctx := context.Background()
	base := time.Date(2026, 8, 23, 12, 0, 0, 0, time.Local)

	tests := []struct {
		name    string
		age     time.Duration
		expired bool
	}{
		{"six days old", 6 * 24 * time.Hour, false},
		{"just under seven days", 7*24*time.Hour - time.Minute, false},
		{"exactly seven days", 7 * 24 * time.Hour, true},
		{"eight days old", 8 * 24 * time.Hour, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.now = func() time.Time { return base }
			if err := m.Set(ctx, "u1", testRecord(base.Add(-tt.age))); err != nil {
				t.Fatal(err)
			}

			_, err := m.Get(ctx, "u1")
			if tt.expired {
				if !errors.Is(err, common.ErrCacheExpired) {
					t.Fatalf("err = %v, want ErrCacheExpired", err)
				}
				// An expired record is deleted, the next read is a plain miss.
				if _, err := m.Get(ctx, "u1"); !errors.Is(err, common.ErrCacheMiss) {
					t.Errorf("after expiry: err = %v, want ErrCacheMiss", err)
				}
			} else if err != nil {
				t.Fatalf("fresh record: err = %v", err)
			}
		})
	}
}

func TestManagerSnapshotRestore(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()
	now := time.Now()

	m := NewManager(cfg)
	if err := m.Set(ctx, "u1", testRecord(now)); err != nil {
		t.Fatal(err)
	}
	if err := m.Close(); err != nil {
		t.Fatal(err)
	}

	// A new manager over the same snapshot path sees the record.
	restored := NewManager(cfg)
	got, err := restored.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("get after restore: %v", err)
	}
	if got.WeekSummary == nil || got.WeekSummary.TotalMeals != 21 {
		t.Errorf("restored record lost data: %+v", got)
	}
}

func TestManagerCorruptSnapshotIsSilentMiss(t *testing.T) {
	cfg := testConfig(t)
	if err := os.WriteFile(cfg.Cache.SnapshotPath, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	// Corrupt persisted state must not fail startup; it reads as empty.
	m := NewManager(cfg)
	if m == nil {
		t.Fatal("manager failed to start over a corrupt snapshot")
	}
	if _, err := m.Get(context.Background(), "u1"); !errors.Is(err, common.ErrCacheMiss) {
		t.Errorf("err = %v, want ErrCacheMiss", err)
	}
}

func TestManagerCapacityEviction(t *testing.T) {
	cfg := testConfig(t)
	cfg.Cache.MaxSize = 2
	m := NewManager(cfg)
	ctx := context.Background()
	now := time.Now()

	m.Set(ctx, "old", testRecord(now.Add(-time.Hour)))
	m.Set(ctx, "newer", testRecord(now))
	m.Set(ctx, "newest", testRecord(now))

	// All entries are fresh, so the oldest one was dropped to make room.
	if _, err := m.Get(ctx, "old"); !errors.Is(err, common.ErrCacheMiss) {
		t.Errorf("oldest entry: err = %v, want ErrCacheMiss", err)
	}
	if _, err := m.Get(ctx, "newest"); err != nil {
		t.Errorf("newest entry evicted: %v", err)
	}
}

func TestManagerDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Cache.Enabled = false

	m := NewManager(cfg)
	if m != nil {
		t.Fatal("disabled cache returned a manager")
	}
	// Nil receiver calls must be safe no-ops.
	if _, err := m.Get(context.Background(), "u1"); !errors.Is(err, common.ErrCacheDisabled) {
		t.Errorf("err = %v, want ErrCacheDisabled", err)
	}
	if err := m.Set(context.Background(), "u1", testRecord(time.Now())); err != nil {
		t.Errorf("nil set: %v", err)
	}
	if err := m.Close(); err != nil {
		t.Errorf("nil close: %v", err)
	}
}
