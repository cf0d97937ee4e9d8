package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"aria/internal/config"
	"aria/internal/notify"
)

// runInteractive is the default mode: a prompt loop that feeds each line
// through the pipeline until the user asks to leave. Edits to the config
// file take effect on the next utterance.
func runInteractive(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	sink := notify.SinkFunc(func(message string) error {
		fmt.Printf("\n🔔 %s\n> ", message)
		return nil
	})

	a, err := newApp(ctx, cfg, sink)
	if err != nil {
		return err
	}
	defer func() { a.close() }()

	fresh := make(chan *config.Config, 1)
	watcher, err := config.NewWatcher(configPath, func(c *config.Config) {
		select {
		case fresh <- c:
		default:
		}
	}, logger)
	if err == nil {
		if err := watcher.Start(ctx); err == nil {
			defer watcher.Stop()
		}
	}

	fmt.Printf("%s is ready. Type 'exit' to leave.\n", cfg.Name)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		select {
		case updated := <-fresh:
			rebuilt, err := newApp(ctx, updated, sink)
			if err != nil {
				fmt.Println("Config change ignored:", err)
			} else {
				a.close()
				a = rebuilt
				cfg = updated
			}
		default:
		}

		reply, err := a.pipeline.HandleUtterance(ctx, line)
		if err != nil {
			fmt.Println("Sorry, something went wrong:", err)
			continue
		}
		if reply.Text != "" {
			fmt.Println(reply.Text)
		}
		if reply.Exit {
			break
		}
		if ctx.Err() != nil {
			break
		}
	}
	return scanner.Err()
}
