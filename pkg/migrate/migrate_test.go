package migrate

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront/pkg/db"
)

func TestEmbeddedMigrationsValidate(t *testing.T) {
	if err := ValidateFS(Embedded(), embeddedDir); err != nil {
		t.Fatalf("embedded migrations invalid: %v", err)
	}
}

func TestBasketMigrationGuardsOpenBasket(t *testing.T) {
	matches, err := fs.Glob(Embedded(), "migrations/*_create_baskets_tables.sql")
	if err != nil || len(matches) != 1 {
		t.Fatalf("expected one basket migration, got %v (%v)", matches, err)
	}
	data, err := fs.ReadFile(Embedded(), matches[0])
	if err != nil {
		t.Fatalf("read migration: %v", err)
	}
	content := string(data)
	checks := []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS ux_baskets_open_per_user",
		"WHERE status = 'PENDING'",
		"PRIMARY KEY (basket_id, product_id)",
		"CREATE TABLE IF NOT EXISTS basket_logs",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestValidateFSRejectsBadNames(t *testing.T) {
	fsys := fstest.MapFS{
		"bad_name.sql": {Data: []byte("-- +goose Up\n-- +goose Down\n")},
	}
	if err := ValidateFS(fsys, "."); err == nil {
		t.Fatal("expected invalid filename error")
	}
}

func TestValidateFSRejectsMissingDown(t *testing.T) {
	fsys := fstest.MapFS{
		"20260101000000_only_up.sql": {Data: []byte("-- +goose Up\nSELECT 1;\n")},
	}
	if err := ValidateFS(fsys, "."); err == nil || !strings.Contains(err.Error(), "Down") {
		t.Fatalf("expected missing down error, got %v", err)
	}
}

func TestCreateSQLMigration(t *testing.T) {
	dir := t.TempDir()
	path, err := CreateSQLMigration(dir, "Add Basket Notes!")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.HasSuffix(path, "_add_basket_notes.sql") {
		t.Fatalf("unexpected filename %s", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("stat: %v", err)
	}
	if err := ValidateDir(filepath.Dir(path)); err != nil {
		t.Fatalf("created migration should validate: %v", err)
	}
}

func TestCreateSQLMigrationOrdersAfterNewestFile(t *testing.T) {
	dir := t.TempDir()
	future := "29991231235959_future_table.sql"
	if err := os.WriteFile(filepath.Join(dir, future), []byte("-- +goose Up\n-- +goose Down\n"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	path, err := CreateSQLMigration(dir, "next")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if filepath.Base(path) != "30000101000000_next.sql" {
		t.Fatalf("expected version after newest file, got %s", filepath.Base(path))
	}
}

func TestNextVersionUsesClockWhenAhead(t *testing.T) {
	now := time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)
	if got := nextVersion(now, 20261015090300); got != 20261015093000 {
		t.Fatalf("unexpected version %d", got)
	}
	if got := nextVersion(now, 20261015093000); got != 20261015093001 {
		t.Fatalf("expected bump past equal version, got %d", got)
	}
}

func TestAutoMigrateCreatesOpenBasketIndex(t *testing.T) {
	conn, err := gorm.Open(sqlite.Open("file:automigrate_"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	client := db.FromGorm(conn)
	if err := AutoMigrate(context.Background(), client); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	var count int64
	if err := conn.Raw(
		"SELECT count(*) FROM sqlite_master WHERE type = 'index' AND name = ?",
		"ux_baskets_open_per_user",
	).Scan(&count).Error; err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected partial unique index, got %d", count)
	}
}
