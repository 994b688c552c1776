// Package job はauthフィーチャーの定期ジョブを提供します。
package job

import (
	"context"

	"go.uber.org/zap"

	"brightloop_backend/internal/platform/logger"
)

// OTPSweeper は期限切れOTPを削除するユースケースです。
type OTPSweeper interface {
	SweepExpired(ctx context.Context) (int64, error)
}

// OTPSweepJob はSQLストアに残った期限切れOTPを定期的に削除します。
type OTPSweepJob struct {
	sweeper OTPSweeper
}

// NewOTPSweepJob はOTPSweepJobを生成します。
func NewOTPSweepJob(sweeper OTPSweeper) *OTPSweepJob {
	return &OTPSweepJob{sweeper: sweeper}
}

func (j *OTPSweepJob) Name() string { return "otp-sweep" }

// Run は1回分の削除を実行します。
func (j *OTPSweepJob) Run(ctx context.Context) error {
	n, err := j.sweeper.SweepExpired(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		logger.FromContext(ctx).Info("expired otps removed", zap.Int64("count", n))
	}
	return nil
}
