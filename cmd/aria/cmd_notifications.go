package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"aria/internal/notify"
)

// remindersCmd lists active reminders without starting the full pipeline.
var remindersCmd = &cobra.Command{
	Use:   "reminders",
	Short: "List active reminders",
	RunE: func(cmd *cobra.Command, args []string) error {
		service, err := openNotifications()
		if err != nil {
			return err
		}
		defer service.Close()
		fmt.Println(service.ListReminders())
		return nil
	},
}

// timersCmd lists active timers.
var timersCmd = &cobra.Command{
	Use:   "timers",
	Short: "List active timers",
	RunE: func(cmd *cobra.Command, args []string) error {
		service, err := openNotifications()
		if err != nil {
			return err
		}
		defer service.Close()
		fmt.Println(service.ListTimers())
		return nil
	},
}

func openNotifications() (*notify.Service, error) {
	sink := notify.SinkFunc(func(message string) error {
		fmt.Println(message)
		return nil
	})
	service := notify.NewService(
		notify.NewStore(cfg.Storage.DataDir, logger), sink, cfg.Username, logger)
	if err := service.Recover(); err != nil {
		service.Close()
		return nil, fmt.Errorf("loading scheduled notifications: %w", err)
	}
	return service, nil
}
