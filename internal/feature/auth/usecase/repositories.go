package usecase

import (
	"context"
	"time"

	"brightloop_backend/internal/feature/auth/domain/entity"
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、ErrEmailAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByID(ctx context.Context, id string) (*entity.User, error)

	// MarkVerified はユーザーを検証済みに更新します。
	MarkVerified(ctx context.Context, id string) error
}

// OTPRepository はユーザーごとに1件のOTPレコードを保持するストアです。
type OTPRepository interface {
	// Find はユーザーのOTPを取得します。存在しない場合はErrOTPNotFoundを返します。
	Find(ctx context.Context, userID string) (*entity.OTP, error)

	// Upsert はユーザーのOTPを作成または置換します。expiresAt以降は削除されてよいレコードです。
	// ttl は呼び出し側の時計で測った残り有効期間です（期限ちょうどなら0）。
	Upsert(ctx context.Context, otp *entity.OTP, expiresAt time.Time, ttl time.Duration) error

	// DeleteExpired はbefore以前に作成されたレコードを削除し、削除件数を返します。
	// ネイティブTTLを持つストアでは常に0を返します。
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// OTPNotifier はOTPをユーザーへ届けます。送信は非同期で、失敗は呼び出し元に返しません。
type OTPNotifier interface {
	NotifyOTP(ctx context.Context, email, code string, validFor time.Duration)
}

// JWTGenerator はJWTトークン生成のインターフェースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/jwt）ではなくコンシューマー（usecase）が定義します。
type JWTGenerator interface {
	// GenerateToken は指定されたユーザーの署名済みJWTトークンを生成します。
	GenerateToken(userID, email string) (string, error)
}
