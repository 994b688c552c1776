// Package logger はzapベースの構造化ロガーとコンテキスト連携を提供します。
package logger

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey struct{}

// base はFromContextでロガーが見つからない場合に使用されます。
var base = zap.NewNop()

// New はレベルとフォーマット（"json" または "console"）からロガーを生成します。
func New(level, format string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	if format == "console" {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return l, nil
}

// SetDefault はコンテキストにロガーが無い場合のフォールバックを差し替えます。
func SetDefault(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	base = l
}

// WithContext はロガーを格納した新しいコンテキストを返します。
func WithContext(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext はコンテキストに格納されたロガー、無ければデフォルトロガーを返します。
func FromContext(ctx context.Context) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok && l != nil {
			return l
		}
	}
	return base
}
