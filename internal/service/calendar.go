package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dangerclosesec/crmboard/internal/domain"
	"github.com/dangerclosesec/crmboard/internal/model"
	"github.com/dangerclosesec/crmboard/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// maxEventRange bounds a calendar listing.
const maxEventRange = 366 * 24 * time.Hour

type CalendarService struct {
	repo     repository.CalendarRepositoryIface
	validate *validator.Validate
}

func NewCalendarService(repo repository.CalendarRepositoryIface) *CalendarService {
	return &CalendarService{
		repo:     repo,
		validate: newValidator(),
	}
}

type CreateEventInput struct {
	Title           string     `json:"title" validate:"required,max=200"`
	Description     string     `json:"description"`
	Location        string     `json:"location" validate:"omitempty,max=200"`
	StartsAt        time.Time  `json:"start" validate:"required"`
	EndsAt          time.Time  `json:"end" validate:"required"`
	AllDay          bool       `json:"allDay"`
	Color           string     `json:"color" validate:"omitempty,max=32"`
	ClientID        *uuid.UUID `json:"clientId"`
	CardID          *uuid.UUID `json:"cardId"`
	ReminderMinutes *int       `json:"reminderMinutes" validate:"omitempty,gte=0"`
	ReminderEmail   *string    `json:"reminderEmail" validate:"omitempty,email"`
}

type UpdateEventInput struct {
	Title           *string    `json:"title" validate:"omitempty,min=1,max=200"`
	Description     *string    `json:"description"`
	Location        *string    `json:"location" validate:"omitempty,max=200"`
	StartsAt        *time.Time `json:"start"`
	EndsAt          *time.Time `json:"end"`
	AllDay          *bool      `json:"allDay"`
	Color           *string    `json:"color" validate:"omitempty,max=32"`
	ClientID        *uuid.UUID `json:"clientId"`
	CardID          *uuid.UUID `json:"cardId"`
	ReminderMinutes *int       `json:"reminderMinutes" validate:"omitempty,gte=0"`
	ReminderEmail   *string    `json:"reminderEmail" validate:"omitempty,email"`
	ClearReminder   bool       `json:"clearReminder"`
}

// ListEvents returns the events overlapping [from, to).
func (s *CalendarService) ListEvents(ctx context.Context, orgID uuid.UUID, from, to time.Time) ([]model.CalendarEvent, error) {
	if to.Before(from) {
		return nil, ErrInvalidRange
	}
	if to.Sub(from) > maxEventRange {
		return nil, &domain.ValidationError{Fields: []domain.FieldError{{Field: "end", Rule: "max_range"}}}
	}

	events, err := s.repo.List(ctx, orgID, from.UTC(), to.UTC())
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	return events, nil
}

func (s *CalendarService) GetEvent(ctx context.Context, orgID, id uuid.UUID) (*model.CalendarEvent, error) {
	event, err := s.repo.Get(ctx, orgID, id)
	if err != nil {
		return nil, fmt.Errorf("finding event: %w", err)
	}
	return event, nil
}

// CreateEvents stores one or more events, all or none.
func (s *CalendarService) CreateEvents(ctx context.Context, orgID uuid.UUID, inputs []CreateEventInput) ([]*model.CalendarEvent, error) {
	if len(inputs) == 0 {
		return nil, domain.ErrEmptyBatch
	}

	events := make([]*model.CalendarEvent, 0, len(inputs))
	for _, in := range inputs {
		if err := validateInput(s.validate, in); err != nil {
			return nil, err
		}
		if err := checkReminder(in.ReminderMinutes); err != nil {
			return nil, err
		}
		if in.EndsAt.Before(in.StartsAt) {
			return nil, domain.ErrInvalidEventTime
		}
		events = append(events, &model.CalendarEvent{
			OrganizationID:  orgID,
			Title:           strings.TrimSpace(in.Title),
			Description:     in.Description,
			Location:        in.Location,
			StartsAt:        in.StartsAt.UTC(),
			EndsAt:          in.EndsAt.UTC(),
			AllDay:          in.AllDay,
			Color:           in.Color,
			ClientID:        in.ClientID,
			CardID:          in.CardID,
			ReminderMinutes: in.ReminderMinutes,
			ReminderEmail:   in.ReminderEmail,
		})
	}

	if err := s.repo.CreateMany(ctx, events); err != nil {
		return nil, fmt.Errorf("creating events: %w", err)
	}
	return events, nil
}

func (s *CalendarService) UpdateEvent(ctx context.Context, orgID, id uuid.UUID, input UpdateEventInput) (*model.CalendarEvent, error) {
	if err := validateInput(s.validate, input); err != nil {
		return nil, err
	}
	if err := checkReminder(input.ReminderMinutes); err != nil {
		return nil, err
	}

	if input.StartsAt != nil || input.EndsAt != nil {
		current, err := s.repo.Get(ctx, orgID, id)
		if err != nil {
			return nil, fmt.Errorf("finding event: %w", err)
		}
		start, end := current.StartsAt, current.EndsAt
		if input.StartsAt != nil {
			start = *input.StartsAt
		}
		if input.EndsAt != nil {
			end = *input.EndsAt
		}
		if end.Before(start) {
			return nil, domain.ErrInvalidEventTime
		}
	}

	event, err := s.repo.Update(ctx, orgID, id, repository.CalendarPatch{
		Title:           input.Title,
		Description:     input.Description,
		Location:        input.Location,
		StartsAt:        utcPtr(input.StartsAt),
		EndsAt:          utcPtr(input.EndsAt),
		AllDay:          input.AllDay,
		Color:           input.Color,
		ClientID:        input.ClientID,
		CardID:          input.CardID,
		ReminderMinutes: input.ReminderMinutes,
		ReminderEmail:   input.ReminderEmail,
		ClearReminder:   input.ClearReminder,
	})
	if err != nil {
		return nil, fmt.Errorf("updating event: %w", err)
	}
	return event, nil
}

func (s *CalendarService) DeleteEvent(ctx context.Context, orgID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, orgID, id); err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}
	return nil
}

// checkReminder bounds the lead time by what the dispatcher scans for.
func checkReminder(minutes *int) error {
	if minutes != nil && *minutes > model.MaxReminderMinutes {
		return &domain.ValidationError{Fields: []domain.FieldError{{
			Field: "reminderMinutes",
			Rule:  fmt.Sprintf("lte=%d", model.MaxReminderMinutes),
		}}}
	}
	return nil
}
