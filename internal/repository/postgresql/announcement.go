package postgresql

import (
	"context"
	"time"

	"github.com/complyhr/complyhr-backend-go/internal/domain/announcement"
	"github.com/complyhr/complyhr-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type announcementRepositoryImpl struct {
	db *database.DB
}

func NewAnnouncementRepository(db *database.DB) announcement.AnnouncementRepository {
	return &announcementRepositoryImpl{db: db}
}

const announcementColumns = `id, company_id, title, message, author, delete_time, created_at`

func scanAnnouncement(row pgx.Row) (announcement.Announcement, error) {
	var a announcement.Announcement
	err := row.Scan(&a.ID, &a.CompanyID, &a.Title, &a.Message, &a.Author, &a.DeleteTime, &a.CreatedAt)
	return a, err
}

// Create implements announcement.AnnouncementRepository.
func (r *announcementRepositoryImpl) Create(ctx context.Context, a announcement.Announcement) (announcement.Announcement, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO announcements (company_id, title, message, author, delete_time)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + announcementColumns

	created, err := scanAnnouncement(q.QueryRow(ctx, query,
		a.CompanyID, a.Title, a.Message, a.Author, a.DeleteTime,
	))
	if err != nil {
		return announcement.Announcement{}, err
	}

	return created, nil
}

// GetByCompanyID implements announcement.AnnouncementRepository.
func (r *announcementRepositoryImpl) GetByCompanyID(ctx context.Context, companyID string) ([]announcement.Announcement, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + announcementColumns + ` FROM announcements WHERE company_id = $1 ORDER BY created_at DESC`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var announcements []announcement.Announcement
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, err
		}
		announcements = append(announcements, a)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return announcements, nil
}

// Delete implements announcement.AnnouncementRepository.
func (r *announcementRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return announcement.ErrAnnouncementNotFound
	}

	return nil
}

// DeleteExpired implements announcement.AnnouncementRepository.
func (r *announcementRepositoryImpl) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM announcements WHERE delete_time IS NOT NULL AND delete_time <= $1`, now)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}
