//go:build e2e

package e2e

import (
	"context"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"library-lending/internal/infra/db"
	"library-lending/internal/pkg/config"
	"library-lending/internal/pkg/errs"
	"library-lending/tests/common/dbtest"

	"ariga.io/atlas-go-sdk/atlasexec"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// createDatabase gives each suite its own database on the shared server, migrated
// and seeded. The database is dropped on cleanup.
func createDatabase(t *testing.T, ep pgEndpoint) (*pgxpool.Pool, config.DBConfig) {
	t.Helper()

	name := "lending_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	admin, err := pgxpool.New(context.Background(), ep.dsn("postgres"))
	require.NoError(t, err, "管理者接続に失敗")
	defer admin.Close()

	// CREATE DATABASE is serialized server side; parallel suites may collide briefly
	var createErr error
	for attempt := range 5 {
		if attempt > 0 {
			time.Sleep(time.Duration(attempt) * 500 * time.Millisecond)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_, createErr = admin.Exec(ctx, "CREATE DATABASE "+name)
		cancel()
		if createErr == nil {
			break
		}
		slog.Warn("データベース作成を再試行中", "attempt", attempt+1, "error", createErr.Error())
	}
	require.NoError(t, createErr, "テスト用データベースの作成に失敗")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		drop, err := pgxpool.New(ctx, ep.dsn("postgres"))
		if err != nil {
			slog.Warn("クリーンアップ用の接続に失敗しました", "database", name, "error", err.Error())
			return
		}
		defer drop.Close()
		if _, err := drop.Exec(ctx, "DROP DATABASE IF EXISTS "+name+" WITH (FORCE)"); err != nil {
			slog.Warn("テストデータベースの削除に失敗しました", "database", name, "error", err.Error())
		}
	})

	dbCfg := config.NewTestConfig().DB
	dbCfg.Host = ep.Host
	dbCfg.Port = ep.Port.Port()
	dbCfg.User = pgUser
	dbCfg.Password = pgPassword
	dbCfg.DBName = name

	pool, _, err := db.Connect(context.Background(), dbCfg)
	require.NoError(t, err, "データベース接続に失敗")
	t.Cleanup(pool.Close)

	require.NoError(t, migrate(pool, dbCfg), "データベースマイグレーションに失敗")
	require.NoError(t, dbtest.SeedReferenceData(pool), "参照データの投入に失敗")

	return pool, dbCfg
}

// migrate uses the atlas CLI when it is installed, the same path as `library-lending migrate`.
// Without it the migration files are executed in order so the suite still runs on a bare host.
func migrate(pool *pgxpool.Pool, dbCfg config.DBConfig) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dir, err := migrationsDir()
	if err != nil {
		return err
	}

	if bin, lookErr := exec.LookPath("atlas"); lookErr == nil {
		client, err := atlasexec.NewClient(dir, bin)
		if err != nil {
			return errs.Wrap(err, "atlas client")
		}
		res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{
			URL:    dbCfg.BuildDSN(),
			DirURL: "file://" + dir,
		})
		if err != nil {
			return errs.Wrap(err, "atlas migrate apply")
		}
		slog.Debug("マイグレーション実行完了", "applied", len(res.Applied), "target", res.Target)
		return nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return err
	}
	sort.Strings(files)
	for _, f := range files {
		sql, err := os.ReadFile(f)
		if err != nil {
			return errs.Wrapf(err, "read %s", f)
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			return errs.Wrapf(err, "apply %s", filepath.Base(f))
		}
	}
	return nil
}

// migrationsDir walks up from the package directory to the module root.
func migrationsDir() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for dir := wd; ; dir = filepath.Dir(dir) {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return filepath.Join(dir, "migrations"), nil
		}
		if filepath.Dir(dir) == dir {
			return "", errs.Newf("go.mod not found above %s", wd)
		}
	}
}
