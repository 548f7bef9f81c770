package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dangerclosesec/crmboard/internal/email"
	"github.com/dangerclosesec/crmboard/internal/lock"
	"github.com/dangerclosesec/crmboard/internal/metrics"
	"github.com/dangerclosesec/crmboard/internal/model"
	"github.com/dangerclosesec/crmboard/internal/realtime"
	"github.com/dangerclosesec/crmboard/internal/repository"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

const (
	reminderLockKey      = "crmboard:reminders"
	defaultReminderBatch = 100
)

type ReminderConfig struct {
	Schedule string
	Batch    int
	BaseURL  string
}

// ReminderService sends the reminders of calendar events that are due.
type ReminderService struct {
	repo    repository.CalendarRepositoryIface
	mailer  email.Sender
	events  realtime.Publisher
	locker  lock.Locker
	metrics *metrics.Metrics
	config  ReminderConfig
	now     func() time.Time
	cron    *cron.Cron
}

// NewReminderService creates a ReminderService. mailer may be nil, in which
// case reminders are only published as events.
func NewReminderService(
	repo repository.CalendarRepositoryIface,
	mailer email.Sender,
	events realtime.Publisher,
	locker lock.Locker,
	m *metrics.Metrics,
	config ReminderConfig,
) *ReminderService {
	if events == nil {
		events = realtime.Nop{}
	}
	if locker == nil {
		locker = lock.NewMemoryLocker()
	}
	if config.Batch <= 0 {
		config.Batch = defaultReminderBatch
	}
	return &ReminderService{
		repo:    repo,
		mailer:  mailer,
		events:  events,
		locker:  locker,
		metrics: m,
		config:  config,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// DispatchResult counts what one dispatch run did.
type DispatchResult struct {
	Due     int `json:"due"`
	Sent    int `json:"sent"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// Dispatch sends every reminder due now. Only one process dispatches at a
// time; when another holds the lock Dispatch returns an empty result.
func (s *ReminderService) Dispatch(ctx context.Context) (*DispatchResult, error) {
	release, err := s.locker.TryLock(ctx, reminderLockKey)
	if err != nil {
		if errors.Is(err, lock.ErrNotAcquired) {
			slog.DebugContext(ctx, "reminder dispatch already running elsewhere")
			return &DispatchResult{}, nil
		}
		return nil, fmt.Errorf("acquiring reminder lock: %w", err)
	}
	defer release()

	now := s.now()
	due, err := s.repo.DueReminders(ctx, now, s.config.Batch)
	if err != nil {
		return nil, fmt.Errorf("loading due reminders: %w", err)
	}

	result := &DispatchResult{Due: len(due)}
	for i := range due {
		event := &due[i]

		claimed, err := s.repo.MarkReminderSent(ctx, event.ID, now)
		if err != nil {
			result.Failed++
			s.metrics.ReminderSent("error")
			slog.ErrorContext(ctx, "failed to claim reminder", "eventID", event.ID, "error", err)
			continue
		}
		if !claimed {
			result.Skipped++
			continue
		}

		if err := s.send(ctx, event); err != nil {
			result.Failed++
			s.metrics.ReminderSent("error")
			slog.ErrorContext(ctx, "failed to send reminder",
				"eventID", event.ID,
				"organizationID", event.OrganizationID,
				"error", err)
			continue
		}

		result.Sent++
		s.metrics.ReminderSent("sent")
		emit(ctx, s.events, realtime.CalendarReminder, event.OrganizationID, uuid.Nil, event)
	}

	if result.Due > 0 {
		slog.InfoContext(ctx, "reminders dispatched",
			"due", result.Due,
			"sent", result.Sent,
			"skipped", result.Skipped,
			"failed", result.Failed)
	}
	return result, nil
}

func (s *ReminderService) send(ctx context.Context, event *model.CalendarEvent) error {
	if s.mailer == nil || event.ReminderEmail == nil || strings.TrimSpace(*event.ReminderEmail) == "" {
		return nil
	}
	link := ""
	if s.config.BaseURL != "" {
		link = strings.TrimRight(s.config.BaseURL, "/") + "/calendar?event=" + event.ID.String()
	}
	return email.SendReminder(ctx, s.mailer, strings.TrimSpace(*event.ReminderEmail),
		event.Title, event.StartsAt, event.Location, event.Description, link)
}

// Start runs Dispatch on the configured cron schedule until Stop.
func (s *ReminderService) Start(ctx context.Context) error {
	if s.config.Schedule == "" {
		return fmt.Errorf("reminder schedule is empty")
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(s.config.Schedule, func() {
		if _, err := s.Dispatch(ctx); err != nil {
			slog.ErrorContext(ctx, "reminder dispatch failed", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("parsing reminder schedule %q: %w", s.config.Schedule, err)
	}

	s.cron = c
	c.Start()
	slog.Info("reminder dispatcher started", "schedule", s.config.Schedule)
	return nil
}

// Stop halts the schedule and waits for a running dispatch to finish.
func (s *ReminderService) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
}
