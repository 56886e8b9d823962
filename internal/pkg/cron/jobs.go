package cron

import (
	"context"
	"log/slog"
	"time"
)

// The jobs below depend on narrow interfaces so the scheduler package does
// not import the service layer.

type subscriptionExpirer interface {
	ExpireOverdue(ctx context.Context) error
}

type entitlementRoller interface {
	RolloverEntitlements(ctx context.Context) error
}

type timesheetSweeper interface {
	SweepRetention(ctx context.Context) (int64, error)
}

type announcementSweeper interface {
	SweepExpired(ctx context.Context) (int64, error)
}

// ComplianceJobs bundles the background maintenance work: membership
// expiry, leave entitlement rollover and retention sweeps.
type ComplianceJobs struct {
	subscriptions subscriptionExpirer
	leaves        entitlementRoller
	timesheets    timesheetSweeper
	announcements announcementSweeper
}

func NewComplianceJobs(
	subscriptions subscriptionExpirer,
	leaves entitlementRoller,
	timesheets timesheetSweeper,
	announcements announcementSweeper,
) *ComplianceJobs {
	return &ComplianceJobs{
		subscriptions: subscriptions,
		leaves:        leaves,
		timesheets:    timesheets,
		announcements: announcements,
	}
}

// RegisterJobs registers all maintenance jobs with the scheduler.
func (j *ComplianceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(
		"expire_overdue_subscriptions",
		1*time.Hour,
		j.ExpireOverdueSubscriptions,
	)

	scheduler.AddJob(
		"rollover_leave_entitlements",
		24*time.Hour,
		j.RolloverLeaveEntitlements,
	)

	scheduler.AddJob(
		"sweep_timesheet_retention",
		24*time.Hour,
		j.SweepTimesheetRetention,
	)

	scheduler.AddJob(
		"sweep_expired_announcements",
		1*time.Hour,
		j.SweepExpiredAnnouncements,
	)
}

// ExpireOverdueSubscriptions flips subscriptions whose period has ended.
func (j *ComplianceJobs) ExpireOverdueSubscriptions(ctx context.Context) error {
	return j.subscriptions.ExpireOverdue(ctx)
}

// RolloverLeaveEntitlements advances entitlement windows that have lapsed
// and resets the balances for the new period.
func (j *ComplianceJobs) RolloverLeaveEntitlements(ctx context.Context) error {
	return j.leaves.RolloverEntitlements(ctx)
}

// SweepTimesheetRetention drops timesheet entries older than the retention
// window.
func (j *ComplianceJobs) SweepTimesheetRetention(ctx context.Context) error {
	removed, err := j.timesheets.SweepRetention(ctx)
	if err != nil {
		return err
	}
	if removed > 0 {
		slog.Info("Timesheet retention sweep removed entries", "count", removed)
	}
	return nil
}

// SweepExpiredAnnouncements removes announcements past their delete time.
func (j *ComplianceJobs) SweepExpiredAnnouncements(ctx context.Context) error {
	removed, err := j.announcements.SweepExpired(ctx)
	if err != nil {
		return err
	}
	if removed > 0 {
		slog.Info("Announcement sweep removed entries", "count", removed)
	}
	return nil
}
