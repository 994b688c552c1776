package di

import (
	"brightloop_backend/internal/app/config"
	"brightloop_backend/internal/platform/notifier"
)

// NewMailDispatcher creates the asynchronous mail queue.
// Without SMTP settings, messages are only logged.
func NewMailDispatcher(cfg config.MailConfig) *notifier.Dispatcher {
	var sender notifier.Sender = notifier.LogSender{}
	if cfg.Enabled() {
		sender = notifier.NewSMTPSender(notifier.SMTPConfig{
			Host:     cfg.Host,
			Port:     cfg.Port,
			Username: cfg.Username,
			Password: cfg.Password,
			From:     cfg.From,
		})
	}
	return notifier.NewDispatcher(sender, cfg.QueueSize)
}
