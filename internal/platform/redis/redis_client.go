package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"brightloop_backend/internal/platform/logger"
)

// Options は接続先Redisの設定です。
type Options struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient はRedisクライアントを生成し、疎通確認を行います。
// 接続できない場合はエラーを返し、呼び出し側はRedisなしで動作を続けます。
func NewRedisClient(ctx context.Context, opts Options) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	log := logger.FromContext(ctx)
	// 接続確認
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Error("redis connection failed", zap.String("address", opts.Addr), zap.Error(err))
		_ = rdb.Close()
		return nil, err
	}

	log.Info("redis connection successful", zap.String("address", opts.Addr))
	return rdb, nil
}
