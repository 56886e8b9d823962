package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/complyhr/complyhr-backend-go/internal/domain/notification"
	"github.com/complyhr/complyhr-backend-go/internal/domain/user"
	"github.com/complyhr/complyhr-backend-go/internal/pkg/sse"
	"github.com/google/uuid"
)

// Config holds notification service configuration
type Config struct {
	BatchSize     int           // default: 100
	FlushInterval time.Duration // default: 5 seconds
	WorkerCount   int           // default: 2
	QueueSize     int           // default: 1000
}

type service struct {
	repo     notification.Repository
	userRepo user.UserRepository
	hub      *sse.Hub
	config   Config

	queue  chan notification.CreateNotificationRequest
	wg     sync.WaitGroup
	stopCh chan struct{}
}

// NewNotificationService creates a new notification service with background workers
func NewNotificationService(repo notification.Repository, userRepo user.UserRepository, hub *sse.Hub, cfg Config) notification.Service {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100
	}
	if cfg.FlushInterval == 0 {
		cfg.FlushInterval = 5 * time.Second
	}
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 1000
	}

	s := &service{
		repo:     repo,
		userRepo: userRepo,
		hub:      hub,
		config:   cfg,
		queue:    make(chan notification.CreateNotificationRequest, cfg.QueueSize),
		stopCh:   make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	slog.Info("Notification service started",
		"workers", cfg.WorkerCount, "batch_size", cfg.BatchSize, "flush_interval", cfg.FlushInterval)

	return s
}

// worker drains the queue into batched inserts and SSE pushes.
func (s *service) worker(id int) {
	defer s.wg.Done()

	batch := make([]notification.CreateNotificationRequest, 0, s.config.BatchSize)
	ticker := time.NewTicker(s.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		notifications := make([]*notification.Notification, len(batch))
		for i, req := range batch {
			notifications[i] = &notification.Notification{
				ID:          uuid.New().String(),
				CompanyID:   req.CompanyID,
				RecipientID: req.RecipientID,
				SenderID:    req.SenderID,
				Type:        req.Type,
				Title:       req.Title,
				Message:     req.Message,
				Data:        req.Data,
				IsRead:      false,
				CreatedAt:   time.Now(),
			}
		}

		if err := s.repo.CreateBatch(ctx, notifications); err != nil {
			slog.Error("Notification batch insert failed", "worker", id, "count", len(notifications), "error", err)
		} else {
			for _, n := range notifications {
				s.hub.Publish(n.RecipientID, sse.Event{
					UserID: n.RecipientID,
					Event:  "notification",
					Data:   n,
				})
			}
		}

		batch = batch[:0]
	}

	for {
		select {
		case req := <-s.queue:
			batch = append(batch, req)
			if len(batch) >= s.config.BatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-s.stopCh:
			flush()
			return
		}
	}
}

// Notify enqueues a notification without blocking the caller. If the queue
// is full the notification is dropped with a log line rather than slowing
// the triggering request.
func (s *service) Notify(req notification.CreateNotificationRequest) {
	select {
	case s.queue <- req:
	default:
		slog.Warn("Notification queue full, dropping", "type", req.Type, "recipient", req.RecipientID)
	}
}

// NotifyAdmins fans a notification out to every admin of the company.
func (s *service) NotifyAdmins(ctx context.Context, companyID, notifType, title, message string) {
	admins, err := s.userRepo.GetAdminsByCompanyID(ctx, companyID)
	if err != nil {
		slog.Error("Failed to resolve company admins for notification", "company_id", companyID, "error", err)
		return
	}

	for _, admin := range admins {
		s.Notify(notification.CreateNotificationRequest{
			CompanyID:   companyID,
			RecipientID: admin.ID,
			Type:        notifType,
			Title:       title,
			Message:     message,
		})
	}
}

// List implements notification.Service.
func (s *service) List(ctx context.Context, recipientID string, limit int) ([]notification.Notification, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.repo.GetByRecipientID(ctx, recipientID, limit)
}

// MarkRead implements notification.Service.
func (s *service) MarkRead(ctx context.Context, id, recipientID string) error {
	return s.repo.MarkRead(ctx, id, recipientID)
}

// UnreadCount implements notification.Service.
func (s *service) UnreadCount(ctx context.Context, recipientID string) (int64, error) {
	return s.repo.CountUnread(ctx, recipientID)
}

// Shutdown stops the workers after flushing whatever is still queued.
func (s *service) Shutdown() {
	close(s.stopCh)
	s.wg.Wait()
	slog.Info("Notification service stopped")
}
