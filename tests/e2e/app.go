//go:build e2e

package e2e

import (
	"context"
	"testing"
	"time"

	"library-lending/cmd/bootstrap"
	"library-lending/cmd/bootstrap/components"
	"library-lending/internal/pkg/config"
	"library-lending/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

// startApp wires the production modules around the test pool. Only the database,
// the config and the external catalog are replaced.
func startApp(t *testing.T, pool *pgxpool.Pool, dbCfg config.DBConfig, catalog shared.CatalogLookup) (*gin.Engine, config.Config) {
	t.Helper()

	cfg := config.NewTestConfig()
	cfg.DB = dbCfg

	var router *gin.Engine
	app := fx.New(
		fx.Supply(cfg),
		fx.Provide(
			func() *pgxpool.Pool { return pool },
			func() shared.CatalogLookup { return catalog },
			func() *gin.Engine { return gin.New() },
			bootstrap.NewLendingOptions,
		),
		bootstrap.LoggerModule,
		bootstrap.JWTModule,
		components.PersistenceModule,
		components.UseCaseModule,
		components.HandlerModule,
		fx.Populate(&router),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, app.Start(ctx), "fxアプリケーションの起動に失敗")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = app.Stop(ctx)
	})

	require.NotNil(t, router, "Routerのセットアップに失敗")
	return router, cfg
}
