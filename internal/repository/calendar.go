// internal/repository/calendar.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dangerclosesec/crmboard/internal/domain"
	"github.com/dangerclosesec/crmboard/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CalendarRepositoryIface interface {
	List(ctx context.Context, orgID uuid.UUID, from, to time.Time) ([]model.CalendarEvent, error)
	Get(ctx context.Context, orgID, id uuid.UUID) (*model.CalendarEvent, error)
	CreateMany(ctx context.Context, events []*model.CalendarEvent) error
	Update(ctx context.Context, orgID, id uuid.UUID, patch CalendarPatch) (*model.CalendarEvent, error)
	Delete(ctx context.Context, orgID, id uuid.UUID) error
	DueReminders(ctx context.Context, now time.Time, limit int) ([]model.CalendarEvent, error)
	MarkReminderSent(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
}

type CalendarPatch struct {
	Title           *string
	Description     *string
	Location        *string
	StartsAt        *time.Time
	EndsAt          *time.Time
	AllDay          *bool
	Color           *string
	ClientID        *uuid.UUID
	CardID          *uuid.UUID
	ReminderMinutes *int
	ReminderEmail   *string
	ClearReminder   bool
}

type CalendarRepository struct {
	db *gorm.DB
}

func NewCalendarRepository(db *gorm.DB) *CalendarRepository {
	return &CalendarRepository{db: db}
}

// List returns the events overlapping [from, to). Zero bounds are open.
func (r *CalendarRepository) List(ctx context.Context, orgID uuid.UUID, from, to time.Time) ([]model.CalendarEvent, error) {
	query := r.db.WithContext(ctx).Scopes(byOrg(orgID))
	if !from.IsZero() {
		query = query.Where("ends_at >= ?", from.UTC())
	}
	if !to.IsZero() {
		query = query.Where("starts_at < ?", to.UTC())
	}

	var events []model.CalendarEvent
	if err := query.Order("starts_at ASC").Order("id ASC").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("listing events: %w", classify(err))
	}
	return events, nil
}

func (r *CalendarRepository) Get(ctx context.Context, orgID, id uuid.UUID) (*model.CalendarEvent, error) {
	var event model.CalendarEvent
	if err := r.db.WithContext(ctx).Scopes(byOrg(orgID)).First(&event, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("finding event: %w", classify(err))
	}
	return &event, nil
}

// CreateMany inserts all events or none.
func (r *CalendarRepository) CreateMany(ctx context.Context, events []*model.CalendarEvent) error {
	if len(events) == 0 {
		return domain.ErrEmptyBatch
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, event := range events {
			if err := checkEventRefs(tx, event.OrganizationID, event.ClientID, event.CardID); err != nil {
				return err
			}
		}
		if err := tx.Omit("Client", "Card").Create(events).Error; err != nil {
			return fmt.Errorf("creating events: %w", classify(err))
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrReferenceConflict) || errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("transaction failed: %w", err)
	}
	return nil
}

// Update applies the patch. Changing the start time or the reminder re-arms
// a reminder that was already sent.
func (r *CalendarRepository) Update(ctx context.Context, orgID, id uuid.UUID, patch CalendarPatch) (*model.CalendarEvent, error) {
	updates := map[string]any{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Location != nil {
		updates["location"] = *patch.Location
	}
	if patch.StartsAt != nil {
		updates["starts_at"] = patch.StartsAt.UTC()
		updates["reminder_sent_at"] = nil
	}
	if patch.EndsAt != nil {
		updates["ends_at"] = patch.EndsAt.UTC()
	}
	if patch.AllDay != nil {
		updates["all_day"] = *patch.AllDay
	}
	if patch.Color != nil {
		updates["color"] = *patch.Color
	}
	if patch.ClientID != nil {
		updates["client_id"] = *patch.ClientID
	}
	if patch.CardID != nil {
		updates["card_id"] = *patch.CardID
	}
	if patch.ReminderMinutes != nil {
		updates["reminder_minutes"] = *patch.ReminderMinutes
		updates["reminder_sent_at"] = nil
	}
	if patch.ReminderEmail != nil {
		updates["reminder_email"] = *patch.ReminderEmail
	}
	if patch.ClearReminder {
		updates["reminder_minutes"] = nil
		updates["reminder_email"] = nil
		updates["reminder_sent_at"] = nil
	}

	if len(updates) > 0 {
		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := checkEventRefs(tx, orgID, patch.ClientID, patch.CardID); err != nil {
				return err
			}
			result := tx.Model(&model.CalendarEvent{}).
				Scopes(byOrg(orgID)).
				Where("id = ?", id).
				Updates(updates)
			if result.Error != nil {
				return fmt.Errorf("updating event: %w", classify(result.Error))
			}
			if result.RowsAffected == 0 {
				return domain.ErrEventNotFound
			}
			return nil
		})
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrReferenceConflict) {
				return nil, err
			}
			return nil, fmt.Errorf("transaction failed: %w", err)
		}
	}

	return r.Get(ctx, orgID, id)
}

func (r *CalendarRepository) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Scopes(byOrg(orgID)).Delete(&model.CalendarEvent{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("deleting event: %w", classify(result.Error))
	}
	if result.RowsAffected == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

// reminderLookahead bounds the scan for due reminders to events close enough
// for the longest allowed reminder.
const reminderLookahead = time.Duration(model.MaxReminderMinutes) * time.Minute

// DueReminders returns unsent reminders whose time has come, across all
// organizations, for events that have not started yet.
func (r *CalendarRepository) DueReminders(ctx context.Context, now time.Time, limit int) ([]model.CalendarEvent, error) {
	now = now.UTC()

	var candidates []model.CalendarEvent
	err := r.db.WithContext(ctx).
		Where("reminder_minutes IS NOT NULL AND reminder_sent_at IS NULL").
		Where("starts_at > ? AND starts_at <= ?", now, now.Add(reminderLookahead)).
		Order("starts_at ASC").
		Find(&candidates).Error
	if err != nil {
		return nil, fmt.Errorf("finding due reminders: %w", classify(err))
	}

	due := make([]model.CalendarEvent, 0, len(candidates))
	for _, event := range candidates {
		at, ok := event.ReminderAt()
		if !ok || at.After(now) {
			continue
		}
		due = append(due, event)
		if limit > 0 && len(due) == limit {
			break
		}
	}
	return due, nil
}

// MarkReminderSent claims the reminder. It reports false when another
// dispatcher already marked it.
func (r *CalendarRepository) MarkReminderSent(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.CalendarEvent{}).
		Where("id = ? AND reminder_sent_at IS NULL", id).
		UpdateColumn("reminder_sent_at", at.UTC())
	if result.Error != nil {
		return false, fmt.Errorf("marking reminder sent: %w", classify(result.Error))
	}
	return result.RowsAffected == 1, nil
}

// checkEventRefs rejects client and card links outside the organization.
func checkEventRefs(tx *gorm.DB, orgID uuid.UUID, clientID, cardID *uuid.UUID) error {
	if clientID != nil {
		if _, err := findClient(tx, orgID, *clientID); err != nil {
			return err
		}
	}
	if cardID != nil {
		if _, err := findCard(tx, orgID, *cardID); err != nil {
			return err
		}
	}
	return nil
}
