//go:build integration

package testhelpers

import (
	"context"
	"testing"
)

func TestTestDB_MigrationsApplied(t *testing.T) {
	testDB := GetTestDB(t)

	ctx := context.Background()

	var tableCount int
	err := testDB.DB.QueryRow(ctx,
		"SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = 'public' AND table_name LIKE 'l10n_%'").
		Scan(&tableCount)
	if err != nil {
		t.Fatalf("failed to count tables: %v", err)
	}

	if tableCount != 10 {
		t.Errorf("expected 10 l10n tables, got %d", tableCount)
	}
}

func TestTestDB_TruncateAll(t *testing.T) {
	testDB := GetTestDB(t)
	testDB.TruncateAll(t)

	ctx := context.Background()
	if _, err := testDB.DB.Exec(ctx, "INSERT INTO l10n_locales (code, name) VALUES ('xx', 'Test')"); err != nil {
		t.Fatalf("failed to insert locale: %v", err)
	}

	testDB.TruncateAll(t)

	var count int
	if err := testDB.DB.QueryRow(ctx, "SELECT COUNT(*) FROM l10n_locales").Scan(&count); err != nil {
		t.Fatalf("failed to count locales: %v", err)
	}
	if count != 0 {
		t.Errorf("expected empty l10n_locales after truncate, got %d", count)
	}
}

func TestTestRedis_Ping(t *testing.T) {
	r := GetTestRedis(t)
	if err := r.Client.Ping(context.Background()).Err(); err != nil {
		t.Fatalf("ping failed: %v", err)
	}
}
