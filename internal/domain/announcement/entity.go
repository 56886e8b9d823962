package announcement

import "time"

type Announcement struct {
	ID        string
	CompanyID string

	Title   string
	Message string
	Author  string

	// DeleteTime is used by the retention sweep; announcements past it are
	// removed, not archived.
	DeleteTime *time.Time

	CreatedAt time.Time
}
