package notifications

import (
	"context"
	"log/slog"
)

type Mailer interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

type Service struct {
	store       StoreAPI
	Mailer      Mailer
	EmailFrom   string
	EmailOnSend bool
}

func New(store StoreAPI, mailer Mailer, emailFrom string, emailOnSend bool) *Service {
	return &Service{store: store, Mailer: mailer, EmailFrom: emailFrom, EmailOnSend: emailOnSend}
}

// Notify records a notification for the employee. Email fan-out is
// best-effort; a failed send never fails the notification itself.
func (s *Service) Notify(ctx context.Context, employeeID, ntype, title, message, evaluationID, period string) error {
	var evalRef, periodRef *string
	if evaluationID != "" {
		evalRef = &evaluationID
	}
	if period != "" {
		periodRef = &period
	}
	if err := s.store.CreateNotification(ctx, employeeID, ntype, title, message, evalRef, periodRef, nil); err != nil {
		return err
	}

	if s.Mailer == nil || !s.EmailOnSend {
		return nil
	}
	email, err := s.store.EmployeeEmail(ctx, employeeID)
	if err != nil {
		slog.Warn("notification email lookup failed", "employeeId", employeeID, "err", err)
		return nil
	}
	if email == "" {
		return nil
	}
	if err := s.Mailer.Send(ctx, s.EmailFrom, email, title, message); err != nil {
		slog.Warn("notification email send failed", "employeeId", employeeID, "err", err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, employeeID string, limit, offset int) ([]Notification, error) {
	return s.store.ListNotifications(ctx, employeeID, limit, offset)
}

func (s *Service) CountUnread(ctx context.Context, employeeID string) (int, error) {
	return s.store.CountUnread(ctx, employeeID)
}

func (s *Service) MarkRead(ctx context.Context, employeeID, notificationID string) error {
	return s.store.MarkRead(ctx, employeeID, notificationID)
}

func (s *Service) MarkAllRead(ctx context.Context, employeeID string) error {
	return s.store.MarkAllRead(ctx, employeeID)
}
