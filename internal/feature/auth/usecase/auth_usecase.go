package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"brightloop_backend/internal/feature/auth/domain/entity"
	"brightloop_backend/internal/platform/logger"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 6
	// minNameLength は表示名の最低文字数です。
	minNameLength = 2
	// dummyHash はユーザーが存在しない場合にもbcrypt比較を行うためのハッシュです。
	dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
)

// OTPService はauthUsecaseが利用するOTP操作です。
type OTPService interface {
	Issue(ctx context.Context, userID string) (string, error)
	Verify(ctx context.Context, userID, code string) (bool, error)
}

// SignupResult はサインアップの結果です。トークンは含みません。
type SignupResult struct {
	User    *entity.User
	OTPSent bool
}

// LoginResult はログインまたはOTP検証の結果です。
// NeedsVerificationがtrueの場合、Tokenは空です。
type LoginResult struct {
	Token             string
	User              *entity.User
	NeedsVerification bool
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users        UserRepository
	otp          OTPService
	jwtGenerator JWTGenerator
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, otp OTPService, jwtGenerator JWTGenerator) *authUsecase {
	return &authUsecase{
		users:        users,
		otp:          otp,
		jwtGenerator: jwtGenerator,
	}
}

// validatePassword はパスワードがセキュリティ要件を満たしているかチェックします。
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return &ValidationError{Message: fmt.Sprintf("password must be at least %d characters long", minPasswordLength)}
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup はユーザーを未検証状態で登録し、OTPを発行します。
//   - 検証済みユーザーが同じメールを持つ場合はErrDuplicateVerifiedUser
//   - 未検証ユーザーが存在する場合は作成せず、そのユーザーにOTPを再発行
func (u *authUsecase) Signup(ctx context.Context, name, email, password string) (*SignupResult, error) {
	name = strings.TrimSpace(name)
	if len(name) < minNameLength {
		return nil, &ValidationError{Message: fmt.Sprintf("name must be at least %d characters long", minNameLength)}
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	email = normalizeEmail(email)

	existing, err := u.users.FindByEmail(ctx, email)
	switch {
	case err == nil && existing.IsVerified:
		return nil, ErrDuplicateVerifiedUser
	case err == nil:
		// 未検証ユーザーにはOTPを再発行するのみ
		if _, err := u.otp.Issue(ctx, existing.ID); err != nil {
			return nil, fmt.Errorf("failed to reissue otp: %w", err)
		}
		logger.FromContext(ctx).Info("otp reissued for unverified signup", zap.String("user_id", existing.ID))
		return &SignupResult{User: existing, OTPSent: true}, nil
	case !errors.Is(err, ErrUserNotFound):
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &entity.User{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    email,
		Password: string(hashed),
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}

	// ユーザー作成後にOTP発行が失敗した場合、ユーザーは未検証のまま残り、再サインアップで回復できる
	if _, err := u.otp.Issue(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("failed to issue otp: %w", err)
	}
	return &SignupResult{User: user, OTPSent: true}, nil
}

// Login はユーザーを認証し、検証済みであればJWTトークンを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := u.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	passwordHash := dummyHash
	if err == nil {
		passwordHash = user.Password
	}

	// 第1引数はハッシュ化パスワード、第2引数は平文パスワード
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	// ユーザー未検出またはパスワード不一致の場合、同一のエラーを返す
	if err != nil || compareErr != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsVerified {
		return &LoginResult{User: user, NeedsVerification: true}, nil
	}

	token, err := u.jwtGenerator.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &LoginResult{Token: token, User: user}, nil
}

// VerifyCode はOTPを検証し、成功時にユーザーを検証済みにしてトークンを返します。
// 失敗時は状態を変更せずErrInvalidOrExpiredOtpを返します。
func (u *authUsecase) VerifyCode(ctx context.Context, userID, code string) (*LoginResult, error) {
	userID, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	ok, err := u.otp.Verify(ctx, userID, code)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidOrExpiredOtp
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsVerified {
		if err := u.users.MarkVerified(ctx, user.ID); err != nil {
			return nil, fmt.Errorf("failed to mark user verified: %w", err)
		}
		user.IsVerified = true
	}

	token, err := u.jwtGenerator.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &LoginResult{Token: token, User: user}, nil
}

// ResendCode はユーザーにOTPを再送し、送信先メールアドレスを返します。
func (u *authUsecase) ResendCode(ctx context.Context, userID string) (string, error) {
	return u.otp.Issue(ctx, userID)
}

// Profile は認証済みユーザーの情報を返します。
func (u *authUsecase) Profile(ctx context.Context, userID string) (*entity.User, error) {
	return u.users.FindByID(ctx, userID)
}
