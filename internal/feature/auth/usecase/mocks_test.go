package usecase

import (
	"context"
	"sync"
	"time"

	"brightloop_backend/internal/feature/auth/domain/entity"
)

// mockUserRepository is a mock implementation of UserRepository.
type mockUserRepository struct {
	CreateFunc       func(user *entity.User) error
	FindByEmailFunc  func(email string) (*entity.User, error)
	FindByIDFunc     func(id string) (*entity.User, error)
	MarkVerifiedFunc func(id string) error
}

func (m *mockUserRepository) Create(_ context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(user)
	}
	return nil
}

func (m *mockUserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(email)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) FindByID(_ context.Context, id string) (*entity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(id)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) MarkVerified(_ context.Context, id string) error {
	if m.MarkVerifiedFunc != nil {
		return m.MarkVerifiedFunc(id)
	}
	return nil
}

// memoryOTPRepository keeps OTP records in a map.
type memoryOTPRepository struct {
	mu        sync.Mutex
	records   map[string]entity.OTP
	upserts   int
	lastTTL   time.Duration
	FindErr   error
	UpsertErr error
}

func newMemoryOTPRepository() *memoryOTPRepository {
	return &memoryOTPRepository{records: map[string]entity.OTP{}}
}

func (m *memoryOTPRepository) Find(_ context.Context, userID string) (*entity.OTP, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	o, ok := m.records[userID]
	if !ok {
		return nil, ErrOTPNotFound
	}
	return &o, nil
}

func (m *memoryOTPRepository) Upsert(_ context.Context, otp *entity.OTP, _ time.Time, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpsertErr != nil {
		return m.UpsertErr
	}
	m.upserts++
	m.lastTTL = ttl
	m.records[otp.UserID] = *otp
	return nil
}

func (m *memoryOTPRepository) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, o := range m.records {
		if !o.CreatedAt.After(before) {
			delete(m.records, id)
			n++
		}
	}
	return n, nil
}

type sentOTP struct {
	Email string
	Code  string
}

// recordingNotifier records notifications instead of sending them.
type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentOTP
}

func (n *recordingNotifier) NotifyOTP(_ context.Context, email, code string, _ time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentOTP{Email: email, Code: code})
}

func (n *recordingNotifier) last() sentOTP {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.sent) == 0 {
		return sentOTP{}
	}
	return n.sent[len(n.sent)-1]
}

// mockJWTGenerator is a mock implementation of JWTGenerator.
type mockJWTGenerator struct {
	GenerateTokenFunc func(userID, email string) (string, error)
}

func (m *mockJWTGenerator) GenerateToken(userID, email string) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(userID, email)
	}
	return "mock-jwt-token", nil
}

// mockOTPService is a mock implementation of OTPService.
type mockOTPService struct {
	IssueFunc  func(userID string) (string, error)
	VerifyFunc func(userID, code string) (bool, error)
	issued     []string
}

func (m *mockOTPService) Issue(_ context.Context, userID string) (string, error) {
	m.issued = append(m.issued, userID)
	if m.IssueFunc != nil {
		return m.IssueFunc(userID)
	}
	return "user@example.com", nil
}

func (m *mockOTPService) Verify(_ context.Context, userID, code string) (bool, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(userID, code)
	}
	return false, nil
}
