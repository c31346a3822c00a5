package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"user-service/internal/api"
	"user-service/internal/cache"
	"user-service/internal/config"
	"user-service/internal/database"
	"user-service/internal/logging"
	mw "user-service/internal/middleware"
	"user-service/internal/router"
	"user-service/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"

	_ "user-service/docs" // 引入 swag 產出的 docs

	echoSwagger "github.com/swaggo/echo-swagger"
)

var (
	loadConfig      = config.Load
	newLogger       = func(w io.Writer, level string) (logging.Logger, error) { return logging.New(w, level) }
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	shutdownServer  = func(ctx context.Context, e *echo.Echo) error { return e.Shutdown(ctx) }
)

var logOutput io.Writer = os.Stdout

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `執行資料庫遷移後啟動 HTTP 服務，收到 SIGINT/SIGTERM 時優雅關閉。

	user-service serve
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}
}

// run 在 ctx 結束前持續提供服務；ctx 結束後以 SHUTDOWN_TIMEOUT 為上限關閉伺服器
func run(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := newLogger(logOutput, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("無效的 LOG_LEVEL: %w", err)
	}

	db, err := newPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %w", err)
	}
	defer db.Close()

	// 未設定 REDIS_ADDR 時 rdb 維持 nil，服務只靠資料庫約束保證 email 唯一
	var rdb cache.Cache
	if cfg.Redis.Enabled() {
		rdb, err = newRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return fmt.Errorf("Redis 連線失敗: %w", err)
		}
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Warn(context.WithoutCancel(ctx), "close redis failed", "error", err)
			}
		}()
	} else {
		log.Info(ctx, "REDIS_ADDR not set, email claims disabled")
	}

	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = api.NewValidator()
	e.Use(mw.RequestLogger(log))
	e.Use(middleware.Recover())

	router.Setup(e, router.Deps{
		DB:     db,
		Cache:  rdb,
		Users:  service.NewUserService(db, rdb, log),
		Logger: log,
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	errCh := make(chan error, 1)
	go func() { errCh <- startServer(e, cfg.Addr()) }()
	log.Info(ctx, "server started", "addr", cfg.Addr())

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("伺服器錯誤: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info(context.WithoutCancel(ctx), "shutting down", "timeout", cfg.ShutdownTimeout.String())
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
	defer cancel()
	if err := shutdownServer(shutdownCtx, e); err != nil {
		return fmt.Errorf("關閉伺服器失敗: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("伺服器錯誤: %w", err)
	}
	return nil
}
