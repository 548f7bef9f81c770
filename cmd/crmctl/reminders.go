package main

import (
	"fmt"
	"time"

	"github.com/dangerclosesec/crmboard/internal/database"
	"github.com/dangerclosesec/crmboard/internal/email"
	"github.com/dangerclosesec/crmboard/internal/lock"
	"github.com/dangerclosesec/crmboard/internal/metrics"
	"github.com/dangerclosesec/crmboard/internal/realtime"
	"github.com/dangerclosesec/crmboard/internal/repository"
	"github.com/dangerclosesec/crmboard/internal/service"
	"github.com/spf13/cobra"
)

func newRemindersCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reminders",
		Short: "Calendar reminder delivery",
	}
	cmd.AddCommand(newRemindersDispatchCmd(opts))
	return cmd
}

func newRemindersDispatchCmd(opts *options) *cobra.Command {
	var batch int

	cmd := &cobra.Command{
		Use:   "dispatch",
		Short: "Send the reminders that are due now and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			db, err := database.Open(ctx, cfg)
			if err != nil {
				return err
			}

			var (
				publisher realtime.Publisher = realtime.Nop{}
				locker                       = lock.NewMemoryLocker()
			)
			if cfg.Redis.URL != "" {
				client, err := realtime.NewRedisClient(ctx, cfg.Redis.URL)
				if err != nil {
					return err
				}
				defer client.Close()
				// server instances pick reminder events up from the relay channel
				publisher = realtime.NewRedisRelay(client, realtime.NewHub(0, nil))
				locker = lock.NewRedisLocker(client, 2*time.Minute)
			}

			var mailer email.Sender
			if cfg.Sendgrid.APIKey != "" || cfg.SMTP.Host != "" {
				emailService, err := email.NewEmailService(cfg, email.ProviderFor(cfg))
				if err != nil {
					return fmt.Errorf("setting up email: %w", err)
				}
				mailer = emailService
			}

			if batch <= 0 {
				batch = cfg.Reminder.Batch
			}
			reminders := service.NewReminderService(repository.NewCalendarRepository(db), mailer, publisher, locker, metrics.New(), service.ReminderConfig{
				Batch:   batch,
				BaseURL: cfg.BaseURL,
			})

			result, err := reminders.Dispatch(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "due=%d sent=%d skipped=%d failed=%d\n",
				result.Due, result.Sent, result.Skipped, result.Failed)
			return nil
		},
	}

	cmd.Flags().IntVar(&batch, "batch", 0, "maximum reminders to send (default from config)")
	return cmd
}
