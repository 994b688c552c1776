package main

import (
	"context"
	"fmt"
	"os"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"brightloop_backend/internal/app/config"
	"brightloop_backend/internal/app/di"
	authadapters "brightloop_backend/internal/feature/auth/adapters"
	authusecase "brightloop_backend/internal/feature/auth/usecase"
	infradb "brightloop_backend/internal/platform/db"
	"brightloop_backend/internal/platform/logger"
	infraredis "brightloop_backend/internal/platform/redis"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "brightloop",
		Short:         "BrightLoop backend server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "run the HTTP server",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withRuntime(func(rt *runtime) error { return runServer(cmd.Context(), rt) })
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "create or update database tables",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withRuntime(func(rt *runtime) error {
					if err := infradb.AutoMigrate(rt.db, di.Models()...); err != nil {
						return fmt.Errorf("migrate: %w", err)
					}
					rt.log.Info("migration completed")
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "sweep-otps",
			Short: "delete expired OTP records from the SQL store once",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withRuntime(func(rt *runtime) error {
					m := authusecase.NewOTPManager(authadapters.NewUserGorm(rt.db), authadapters.NewOTPGorm(rt.db), nil, rt.cfg.OTP.TTL)
					n, err := m.SweepExpired(cmd.Context())
					if err != nil {
						return fmt.Errorf("sweep otps: %w", err)
					}
					rt.log.Info("expired otps removed", zap.Int64("count", n))
					return nil
				})
			},
		},
	)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// runtime は各サブコマンドで共有する設定・ロガー・接続です。
type runtime struct {
	cfg *config.Config
	log *zap.Logger
	db  *gorm.DB
	rdb *redisv9.Client // nil when Redis is not configured or unreachable
}

// withRuntime は設定の読み込みと接続を行い、fnの終了後に後始末します。
func withRuntime(fn func(rt *runtime) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	logger.SetDefault(log)

	if cfg.JWT.Secret == "" {
		log.Warn("JWT_SECRET is not set. Set a strong secret in production.")
	}

	db, err := infradb.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer func() {
			if err := sqlDB.Close(); err != nil {
				log.Error("failed to close database", zap.Error(err))
			}
		}()
	}

	rt := &runtime{cfg: cfg, log: log, db: db}
	if cfg.Redis.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		rdb, err := infraredis.NewRedisClient(ctx, infraredis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		cancel()
		if err != nil {
			log.Warn("redis unavailable, using SQL and in-process stores", zap.Error(err))
		} else {
			rt.rdb = rdb
			defer func() {
				if err := rdb.Close(); err != nil {
					log.Error("failed to close redis client", zap.Error(err))
				}
			}()
		}
	}

	return fn(rt)
}
