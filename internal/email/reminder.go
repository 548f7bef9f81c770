package email

import (
	"context"
	"time"
)

const reminderTemplate = "calendar_reminder"

// ReminderData fills the calendar_reminder templates.
type ReminderData struct {
	Title       string
	StartsAt    string
	Location    string
	Description string
	Link        string
}

// SendReminder emails a calendar reminder to one recipient.
func SendReminder(ctx context.Context, s Sender, to, title string, startsAt time.Time, location, description, link string) error {
	return s.SendEmail(ctx, EmailData{
		To:           to,
		FromName:     "crmboard",
		Subject:      "Reminder: " + title,
		TemplateName: reminderTemplate,
		TemplateData: ReminderData{
			Title:       title,
			StartsAt:    startsAt.UTC().Format("Mon, 02 Jan 2006 15:04 MST"),
			Location:    location,
			Description: description,
			Link:        link,
		},
	})
}
