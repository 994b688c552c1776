// Package db はGORMによるデータベース接続とマイグレーションを提供します。
package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"brightloop_backend/internal/platform/logger"
)

// pgUniqueViolation はPostgreSQLの一意制約違反のSQLSTATEです。
const pgUniqueViolation = "23505"

// retryInterval は接続リトライの待機時間です。テストから短縮できるよう変数にしています。
var retryInterval = 3 * time.Second

// Opener はDSNからgorm.DBを開く関数です。
type Opener func(dsn string) (*gorm.DB, error)

// OpenerFor はドライバー名に対応するOpenerを返します。
func OpenerFor(driver string) (Opener, error) {
	cfg := &gorm.Config{TranslateError: true}
	switch driver {
	case "postgres":
		return func(dsn string) (*gorm.DB, error) {
			return gorm.Open(postgres.Open(dsn), cfg)
		}, nil
	case "sqlite":
		return func(dsn string) (*gorm.DB, error) {
			if dsn == "" {
				dsn = "file:brightloop.db?_foreign_keys=on"
			}
			return gorm.Open(sqlite.Open(dsn), cfg)
		}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Open はドライバーとDSNからDBへ接続します。起動直後のDB未準備に備え、最大60秒リトライします。
func Open(driver, dsn string) (*gorm.DB, error) {
	opener, err := OpenerFor(driver)
	if err != nil {
		return nil, err
	}
	return ConnectWithRetry(dsn, 60*time.Second, opener)
}

// ConnectWithRetry はtimeoutに達するまでopenerによる接続を繰り返します。
func ConnectWithRetry(dsn string, timeout time.Duration, opener Opener) (*gorm.DB, error) {
	log := logger.FromContext(context.Background())
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		log.Warn("db connect failed, retrying", zap.Error(err), zap.Duration("interval", retryInterval))
		time.Sleep(retryInterval)
	}
}

// AutoMigrate は指定されたモデルのテーブルを作成・更新します。
func AutoMigrate(db *gorm.DB, models ...any) error {
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// Ping はDBへの疎通を確認します。
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// IsUniqueViolation はerrが一意制約違反かどうかを判定します。
// TranslateError有効時のgorm.ErrDuplicatedKey、pgxのPgError、SQLiteのエラーメッセージに対応します。
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
