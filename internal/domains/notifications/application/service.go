package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/azaconnect/maintenance-api/internal/domains/notifications/domain"
	"github.com/azaconnect/maintenance-api/internal/domains/notifications/ports"
)

// Service exposes notification bounded context use cases.
type Service struct {
	repo   ports.Repository
	mailer ports.Mailer
	logger *slog.Logger
	now    func() time.Time
}

type Option func(*Service)

// WithMailer injects the email delivery channel.
func WithMailer(m ports.Mailer) Option {
	return func(s *Service) {
		if m != nil {
			s.mailer = m
		}
	}
}

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		mailer: ports.NoopMailer,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Notify stores an in-app notification and, when email addresses are given,
// relays it through the mailer. Mail failures are logged, not returned: the
// stored notification is the source of truth.
func (s *Service) Notify(ctx context.Context, input ports.NotifyInput) (*domain.Notification, error) {
	notification, err := domain.NewNotification(input.Recipient, input.Kind, input.Subject, input.Body)
	if err != nil {
		return nil, err
	}
	notification.CreatedAt = s.now()
	saved, err := s.repo.Save(ctx, notification)
	if err != nil {
		return nil, err
	}
	if len(input.Emails) > 0 {
		if err := s.mailer.Send(ctx, input.Emails, input.Subject, input.Body); err != nil {
			s.logger.ErrorContext(ctx, "failed to send notification email",
				slog.String("subject", input.Subject),
				slog.String("error", err.Error()),
			)
		}
	}
	return saved, nil
}

func (s *Service) ListForRecipient(ctx context.Context, recipient string, unreadOnly bool) ([]*domain.Notification, error) {
	return s.repo.ListByRecipient(ctx, recipient, unreadOnly)
}

func (s *Service) MarkRead(ctx context.Context, id int64) (*domain.Notification, error) {
	notification, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	notification.MarkRead()
	return s.repo.Save(ctx, notification)
}

var _ ports.Service = (*Service)(nil)
