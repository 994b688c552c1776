package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"brightloop_backend/internal/feature/auth/domain/entity"
	"brightloop_backend/internal/platform/logger"
)

const (
	otpMin = 100000
	otpMax = 999999
)

// otpManager はOTPの発行と検証を行います。
// windowは再利用・検証・保存期限のすべてに使う唯一の有効期間です。
type otpManager struct {
	users    UserRepository
	otps     OTPRepository
	notifier OTPNotifier
	window   time.Duration
	now      func() time.Time
	genCode  func() (string, error)
}

// NewOTPManager はotpManagerの新しいインスタンスを生成します。
func NewOTPManager(users UserRepository, otps OTPRepository, notifier OTPNotifier, window time.Duration) *otpManager {
	return &otpManager{
		users:    users,
		otps:     otps,
		notifier: notifier,
		window:   window,
		now:      time.Now,
		genCode:  generateCode,
	}
}

// generateCode は[100000, 999999]の一様乱数を6桁の文字列で返します。
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpMax-otpMin+1))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+otpMin), nil
}

// parseUserID はユーザーIDがUUIDとして妥当かを確認します。
func parseUserID(id string) (string, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", ErrInvalidUser
	}
	return u.String(), nil
}

// Issue はユーザーにOTPを発行し、通知先のメールアドレスを返します。
// 有効期間内のOTPがあればそれを再送し、なければ新しいコードを生成します。コード自体は返しません。
func (m *otpManager) Issue(ctx context.Context, userID string) (string, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return "", err
	}

	user, err := m.users.FindByID(ctx, id)
	if err != nil {
		return "", err
	}

	now := m.now()
	otp, err := m.otps.Find(ctx, id)
	if err != nil && !errors.Is(err, ErrOTPNotFound) {
		return "", fmt.Errorf("failed to load otp: %w", err)
	}

	// 期限切れまたは未発行の場合のみ新しいコードを生成。判定はVerifyと同じIsLiveで行う
	if otp == nil || !otp.IsLive(now, m.window) {
		code, err := m.genCode()
		if err != nil {
			return "", err
		}
		otp = &entity.OTP{UserID: id, Code: code, CreatedAt: now}
	}

	expiresAt := otp.ExpiresAt(m.window)
	if err := m.otps.Upsert(ctx, otp, expiresAt, expiresAt.Sub(now)); err != nil {
		return "", fmt.Errorf("failed to save otp: %w", err)
	}

	m.notifier.NotifyOTP(ctx, user.Email, otp.Code, m.window)
	logger.FromContext(ctx).Info("otp issued",
		zap.String("user_id", id),
		zap.Time("expires_at", expiresAt),
	)
	return user.Email, nil
}

// Verify はコードが一致し、かつ有効期間内であればtrueを返します。
// 成功してもレコードは削除されず、期限まで同じコードが有効です。
func (m *otpManager) Verify(ctx context.Context, userID, code string) (bool, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return false, err
	}

	otp, err := m.otps.Find(ctx, id)
	if errors.Is(err, ErrOTPNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load otp: %w", err)
	}

	return otp.Code == code && otp.IsLive(m.now(), m.window), nil
}

// SweepExpired は有効期間を過ぎたOTPレコードを削除します。定期ジョブから呼ばれます。
func (m *otpManager) SweepExpired(ctx context.Context) (int64, error) {
	n, err := m.otps.DeleteExpired(ctx, m.now().Add(-m.window))
	if err != nil {
		return 0, fmt.Errorf("failed to sweep expired otps: %w", err)
	}
	return n, nil
}
