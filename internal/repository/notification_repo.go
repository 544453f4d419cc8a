package repository

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"carehome/internal/domain"
)

// NotificationRepository is the notification store. Every read or write
// that targets a single row is filtered by the owning user ID, so one
// user can never touch another user's notifications.
type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

type notificationModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	UserID    int64     `gorm:"column:user_id;index;not null"`
	Type      string    `gorm:"column:type;size:20;not null"`
	Title     string    `gorm:"column:title;size:200;not null"`
	Message   string    `gorm:"column:message;size:1000;not null"`
	Status    string    `gorm:"column:status;size:10;index;not null"`
	Metadata  string    `gorm:"column:metadata;type:text"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (notificationModel) TableName() string { return "notifications" }

func toDomainNotification(m notificationModel) *domain.Notification {
	var metadata map[string]any
	if m.Metadata != "" {
		_ = json.Unmarshal([]byte(m.Metadata), &metadata)
	}

	return &domain.Notification{
		ID:        m.ID,
		UserID:    m.UserID,
		Type:      domain.NotificationType(m.Type),
		Title:     m.Title,
		Message:   m.Message,
		Status:    domain.NotificationStatus(m.Status),
		Metadata:  metadata,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	metadata := ""
	if len(n.Metadata) > 0 {
		raw, err := json.Marshal(n.Metadata)
		if err != nil {
			return err
		}
		metadata = string(raw)
	}

	m := notificationModel{
		UserID:   n.UserID,
		Type:     string(n.Type),
		Title:    n.Title,
		Message:  n.Message,
		Status:   string(domain.NotificationUnread),
		Metadata: metadata,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*n = *toDomainNotification(m)
	return nil
}

// ListByUser returns one page of the user's notifications, newest first,
// together with the filtered total. unreadOnly narrows the page but
// never the unread counter, which callers fetch via CountUnread.
func (r *NotificationRepository) ListByUser(ctx context.Context, userID int64, limit, offset int, unreadOnly bool) ([]domain.Notification, int64, error) {
	q := r.db.WithContext(ctx).Model(&notificationModel{}).Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("status = ?", string(domain.NotificationUnread))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []notificationModel
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]domain.Notification, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainNotification(m))
	}
	return out, total, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID int64) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&notificationModel{}).
		Where("user_id = ? AND status = ?", userID, string(domain.NotificationUnread)).
		Count(&cnt).Error
	return cnt, err
}

// MarkRead flips a single owned notification to read. Returns
// gorm.ErrRecordNotFound when no row matches both ID and owner.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID int64) (*domain.Notification, error) {
	var m notificationModel
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&m).Error; err != nil {
		return nil, err
	}

	m.Status = string(domain.NotificationRead)
	m.UpdatedAt = time.Now()
	if err := r.db.WithContext(ctx).Save(&m).Error; err != nil {
		return nil, err
	}
	return toDomainNotification(m), nil
}

// MarkAllRead is idempotent: flipping zero rows is not an error.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).Model(&notificationModel{}).
		Where("user_id = ? AND status = ?", userID, string(domain.NotificationUnread)).
		Updates(map[string]any{"status": string(domain.NotificationRead), "updated_at": time.Now()}).Error
}

func (r *NotificationRepository) Delete(ctx context.Context, id, userID int64) error {
	tx := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&notificationModel{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
