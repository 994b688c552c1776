package adapters

import (
	"bytes"
	"context"
	"html/template"
	"time"

	"go.uber.org/zap"

	"brightloop_backend/internal/feature/auth/usecase"
	"brightloop_backend/internal/platform/logger"
	"brightloop_backend/internal/platform/notifier"
)

// OTPSubject is the subject line of verification emails.
const OTPSubject = "BrightLoop OTP verification"

var otpTemplate = template.Must(template.New("otp").Parse(`<html>
  <body style="font-family: Arial, sans-serif; background-color: #f4f4f4;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px; background-color: #fff; border-radius: 5px;">
      <h1 style="color: #333;">{{.Subject}}</h1>
      <p style="color: #777;">Your OTP is:</p>
      <p style="font-size: 24px; font-weight: bold;">{{.Code}}</p>
      <p style="color: #777;">It will expire in {{.Minutes}} minutes.</p>
    </div>
  </body>
</html>`))

// Enqueuer accepts messages for asynchronous delivery.
type Enqueuer interface {
	Enqueue(msg notifier.Message) bool
}

// otpMailer renders verification emails and hands them to the delivery queue.
type otpMailer struct {
	queue Enqueuer
}

var _ usecase.OTPNotifier = (*otpMailer)(nil)

// NewOTPMailer creates an OTPNotifier backed by the given queue.
func NewOTPMailer(queue Enqueuer) *otpMailer {
	return &otpMailer{queue: queue}
}

// NotifyOTP renders the email and enqueues it. Failures are logged only.
func (m *otpMailer) NotifyOTP(ctx context.Context, email, code string, validFor time.Duration) {
	var buf bytes.Buffer
	err := otpTemplate.Execute(&buf, struct {
		Subject string
		Code    string
		Minutes int
	}{OTPSubject, code, int(validFor.Minutes())})
	if err != nil {
		logger.FromContext(ctx).Error("failed to render otp email", zap.Error(err))
		return
	}

	if !m.queue.Enqueue(notifier.Message{To: email, Subject: OTPSubject, HTMLBody: buf.String()}) {
		logger.FromContext(ctx).Warn("otp email dropped", zap.String("to", email))
	}
}
