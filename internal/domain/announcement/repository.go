package announcement

import (
	"context"
	"time"
)

// AnnouncementRepository - interface for announcements table
type AnnouncementRepository interface {
	Create(ctx context.Context, a Announcement) (Announcement, error)
	GetByCompanyID(ctx context.Context, companyID string) ([]Announcement, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
