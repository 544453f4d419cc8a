package notification

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"carehome/internal/domain"
	"carehome/internal/pkg/mailer"
)

// DispatchInput describes one fan-out event: the same notification is
// persisted once per recipient, optionally followed by a best-effort
// email per recipient.
type DispatchInput struct {
	RecipientIDs []int64
	Type         domain.NotificationType
	Title        string
	Message      string
	Metadata     map[string]any
	SendEmail    bool
}

type Service struct {
	repo         NotificationRepository
	contacts     ContactDirectory
	mail         mailer.Mailer
	hub          *Hub
	log          *zap.Logger
	frontendURL  string
	emailTimeout time.Duration
}

func NewService(
	repo NotificationRepository,
	contacts ContactDirectory,
	mail mailer.Mailer,
	hub *Hub,
	log *zap.Logger,
	frontendURL string,
	emailTimeout time.Duration,
) *Service {
	if emailTimeout <= 0 {
		emailTimeout = 10 * time.Second
	}
	return &Service{
		repo:         repo,
		contacts:     contacts,
		mail:         mail,
		hub:          hub,
		log:          log,
		frontendURL:  frontendURL,
		emailTimeout: emailTimeout,
	}
}

// Dispatch persists one notification row per deduplicated recipient and
// optionally attempts email delivery for each. Persistence and email
// are independent failure domains: a store failure for one recipient is
// logged and does not abort the rest, and no email problem ever touches
// rows already written. Dispatch only errors when not a single row
// could be persisted.
func (s *Service) Dispatch(ctx context.Context, in DispatchInput) ([]domain.Notification, error) {
	recipients := dedupe(in.RecipientIDs)
	if len(recipients) == 0 {
		return nil, nil
	}
	if in.Title == "" {
		return nil, ErrValidation
	}

	metadata := make(map[string]any, len(in.Metadata)+1)
	for k, v := range in.Metadata {
		metadata[k] = v
	}
	metadata["eventId"] = uuid.NewString()

	title := truncate(in.Title, domain.NotificationTitleMaxLen)
	message := truncate(in.Message, domain.NotificationMessageMaxLen)

	created := make([]domain.Notification, 0, len(recipients))
	var failed []int64
	for _, userID := range recipients {
		n := &domain.Notification{
			UserID:   userID,
			Type:     in.Type,
			Title:    title,
			Message:  message,
			Metadata: metadata,
		}
		if err := s.repo.Create(ctx, n); err != nil {
			failed = append(failed, userID)
			s.log.Warn("notification persist failed",
				zap.Int64("user_id", userID),
				zap.String("type", string(in.Type)),
				zap.Error(err))
			continue
		}
		created = append(created, *n)

		if s.hub != nil {
			s.hub.SendToUser(userID, map[string]any{
				"event":        "notification",
				"notification": n,
			})
		}
	}

	if len(failed) > 0 {
		s.log.Warn("dispatch completed with persist failures",
			zap.Int("created", len(created)),
			zap.Int64s("failed_user_ids", failed))
	}
	if len(created) == 0 {
		return nil, ErrDispatchFailed
	}

	if in.SendEmail {
		s.sendEmails(ctx, recipients, in)
	}

	return created, nil
}

// sendEmails resolves recipient contacts and attempts one bounded email
// per recipient. Every failure is logged and swallowed.
func (s *Service) sendEmails(ctx context.Context, recipients []int64, in DispatchInput) {
	contacts, err := s.contacts.GetContacts(ctx, recipients)
	if err != nil {
		s.log.Warn("email recipient lookup failed", zap.Error(err))
		return
	}

	for _, u := range contacts {
		if u.Email == "" {
			continue
		}

		var msg mailer.Message
		if in.Type == domain.NotificationEmergency {
			msg = mailer.BuildEmergencyEmail(mailer.EmergencyAlert{
				RecipientName: u.Name,
				CustomerName:  metaString(in.Metadata, "customerName", "Customer"),
				CustomerPhone: metaString(in.Metadata, "customerPhone", ""),
				Address:       metaString(in.Metadata, "address", ""),
				Notes:         metaString(in.Metadata, "notes", ""),
				DashboardURL:  s.frontendURL,
			})
		} else {
			msg = mailer.BuildNotificationEmail(in.Title, in.Message, s.frontendURL)
		}
		msg.To = []string{u.Email}

		sendCtx, cancel := context.WithTimeout(ctx, s.emailTimeout)
		if err := s.mail.Send(sendCtx, msg); err != nil {
			s.log.Warn("email delivery failed",
				zap.Int64("user_id", u.ID),
				zap.String("email", u.Email),
				zap.Error(err))
		}
		cancel()
	}
}

// List returns one page of the user's notifications plus the total
// unread count. The unread count always covers all of the user's
// notifications, regardless of the unreadOnly filter or the page.
func (s *Service) List(ctx context.Context, userID int64, page, limit int, unreadOnly bool) ([]domain.Notification, int64, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	items, total, err := s.repo.ListByUser(ctx, userID, limit, (page-1)*limit, unreadOnly)
	if err != nil {
		return nil, 0, 0, err
	}
	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, 0, 0, err
	}
	return items, total, unread, nil
}

func (s *Service) MarkRead(ctx context.Context, id, userID int64) (*domain.Notification, error) {
	n, err := s.repo.MarkRead(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return n, nil
}

func (s *Service) MarkAllRead(ctx context.Context, userID int64) error {
	return s.repo.MarkAllRead(ctx, userID)
}

func (s *Service) Delete(ctx context.Context, id, userID int64) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// dedupe preserves first-seen order.
func dedupe(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// truncate cuts to max runes, never mid-rune.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}

func metaString(m map[string]any, key, fallback string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return fallback
}
