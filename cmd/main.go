package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"library-lending/cmd/bootstrap"
	"library-lending/internal/domain/user"
	"library-lending/internal/handler/middleware"
	"library-lending/internal/pkg/config"

	"ariga.io/atlas-go-sdk/atlasexec"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func init() {
	// 設定ミスでもデバッグ情報を公開しない（フェイルセーフ）
	gin.SetMode(gin.ReleaseMode)

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}
}

// @title           library-lending
// @version         1.0
// @description     Lending lifecycle of a small library: catalog, loans, returns, reservations,
// @description     acquisition requests and notifications.

// @BasePath  /
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func startServer(lc fx.Lifecycle, engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			gin.EnableJsonDecoderDisallowUnknownFields()
			logger.Info("🚀 サーバーを起動します", "address", srv.Addr, "mode", gin.Mode())
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("サーバーの起動に失敗しました", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("🛑 サーバーを停止します")
			return srv.Shutdown(ctx)
		},
	})
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(_ *cobra.Command, _ []string) error {
			app := fx.New(
				bootstrap.Module,
				fx.Provide(
					func() *gin.Engine {
						return gin.New()
					},
				),
				fx.Invoke(
					startServer,
				),
			)

			if err := app.Start(context.Background()); err != nil {
				slog.Error("アプリケーションの起動に失敗しました", "error", err)
				return err
			}

			<-app.Done()

			stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := app.Stop(stopCtx); err != nil {
				slog.Error("アプリケーションの停止に失敗しました", "error", err)
			}

			slog.Info("アプリケーションが正常に停止しました")
			return nil
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations with atlas",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			logger := middleware.NewLogger(cfg.Log).GetSlogLogger()

			client, err := atlasexec.NewClient(".", cfg.Migrate.AtlasBin)
			if err != nil {
				return fmt.Errorf("atlas client: %w", err)
			}
			res, err := client.MigrateApply(cmd.Context(), &atlasexec.MigrateApplyParams{
				URL:    cfg.DB.BuildDSN(),
				DirURL: cfg.Migrate.Dir,
			})
			if err != nil {
				return fmt.Errorf("migrate apply: %w", err)
			}
			logger.Info("マイグレーション実行完了",
				"applied", len(res.Applied), "current", res.Current, "target", res.Target)
			return nil
		},
	}
}

func newTokenCmd() *cobra.Command {
	var (
		userID string
		role   string
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for local development",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			r, err := user.NewRole(role)
			if err != nil {
				return err
			}
			id := uuid.New()
			if userID != "" {
				if id, err = uuid.Parse(userID); err != nil {
					return fmt.Errorf("invalid --user: %w", err)
				}
			}
			token, err := bootstrap.NewJWTService(cfg).GenerateToken(id, r)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "user id (random when empty)")
	cmd.Flags().StringVar(&role, "role", string(user.RoleMember), "member, librarian or admin")
	return cmd
}

func main() {
	root := &cobra.Command{
		Use:           "library-lending",
		Short:         "Library lending service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	serve := newServeCmd()
	// no subcommand means serve
	root.RunE = serve.RunE
	root.AddCommand(serve, newMigrateCmd(), newTokenCmd())

	if err := root.Execute(); err != nil {
		slog.Error("コマンドの実行に失敗しました", "error", err)
		os.Exit(1)
	}
}
