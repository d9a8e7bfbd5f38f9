//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	pgImage    = "postgres:17"
	pgPort     = nat.Port("5432/tcp")
	pgUser     = "lending"
	pgPassword = "lending"
)

var (
	pgOnce      sync.Once
	pgContainer testcontainers.Container
	pgErr       error
)

type pgEndpoint struct {
	Host string
	Port nat.Port
}

func (e pgEndpoint) dsn(database string) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", pgUser, pgPassword, e.Host, e.Port.Port(), database)
}

// startPostgres boots one throwaway server per test process. Durability settings
// are switched off because every database is dropped after its suite.
func startPostgres(t *testing.T) pgEndpoint {
	t.Helper()

	pgOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()

		pgContainer, pgErr = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        pgImage,
				ExposedPorts: []string{string(pgPort)},
				Env: map[string]string{
					"POSTGRES_USER":     pgUser,
					"POSTGRES_PASSWORD": pgPassword,
					"POSTGRES_DB":       "postgres",
				},
				Tmpfs: map[string]string{"/var/lib/postgresql/data": "rw,size=512m"},
				Cmd: []string{
					"postgres",
					"-c", "fsync=off",
					"-c", "full_page_writes=off",
					"-c", "synchronous_commit=off",
					"-c", "max_connections=200",
					"-c", "log_statement=none",
				},
				WaitingFor: wait.ForSQL(pgPort, "pgx", func(host string, port nat.Port) string {
					return pgEndpoint{Host: host, Port: port}.dsn("postgres")
				}).WithStartupTimeout(time.Minute),
				Labels: map[string]string{"purpose": "library-lending-e2e"},
			},
			Started: true,
		})
	})
	require.NoError(t, pgErr, "PostgreSQLコンテナの起動に失敗")

	ctx := context.Background()
	host, err := pgContainer.Host(ctx)
	require.NoError(t, err, "コンテナホストの取得に失敗")
	port, err := pgContainer.MappedPort(ctx, pgPort)
	require.NoError(t, err, "コンテナポートの取得に失敗")

	slog.Debug("PostgreSQLコンテナ準備完了", "host", host, "port", port.Port())
	return pgEndpoint{Host: host, Port: port}
}
