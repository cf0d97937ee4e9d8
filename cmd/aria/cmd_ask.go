package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"aria/internal/notify"
)

// askCmd runs a single utterance through the pipeline and exits. Reminders
// and timers created this way persist and fire on the next interactive run.
var askCmd = &cobra.Command{
	Use:   "ask [utterance]",
	Short: "Handle a single utterance and exit",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sink := notify.SinkFunc(func(message string) error {
			fmt.Println(message)
			return nil
		})

		a, err := newApp(cmd.Context(), cfg, sink)
		if err != nil {
			return err
		}
		defer a.close()

		reply, err := a.pipeline.HandleUtterance(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		if reply.Text != "" {
			fmt.Println(reply.Text)
		}
		return nil
	},
}
