package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/glabrego/jobtriage-cli/internal/app"
	"github.com/glabrego/jobtriage-cli/internal/config"
	"github.com/glabrego/jobtriage-cli/internal/jobs"
	"github.com/glabrego/jobtriage-cli/internal/schedule"
	"github.com/glabrego/jobtriage-cli/internal/storage"
	"github.com/glabrego/jobtriage-cli/internal/tui"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	v := config.NewViper()
	cmd := &cobra.Command{
		Use:   "jobtriage [link]",
		Short: "Triage job postings from the terminal.",
		Long: `jobtriage lists job postings from the jobs API and lets you mark,
filter and bulk-edit them.

An optional link such as "jobtriage://jobs?jobId=42" or "?ids=5,9,12"
opens the view on those jobs.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}
			location := ""
			if len(args) == 1 {
				location = args[0]
			}
			return run(cfg, location)
		},
	}
	if err := config.BindFlags(cmd.Flags(), v); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	return cmd
}

func run(cfg config.Config, location string) error {
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	// The terminal belongs to the TUI; everything, including the API
	// client's package-level logging, goes to the file.
	logrus.SetOutput(logFile)
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log := logrus.StandardLogger()

	repo, err := storage.NewRepository(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("storage init error: %w", err)
	}
	defer repo.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := repo.Init(ctx); err != nil {
		return fmt.Errorf("storage schema error: %w", err)
	}
	if err := repo.CheckWritable(ctx); err != nil {
		return fmt.Errorf("storage write check failed (%v). Verify JOBTRIAGE_DB is writable: %s", err, cfg.DBPath)
	}

	client := jobs.NewClient(cfg.APIBaseURL, cfg.Token, nil)
	service, err := app.NewService(client, repo)
	if err != nil {
		return err
	}

	presets, err := service.Presets(ctx)
	if err != nil {
		log.WithError(err).Warn("could not load presets, starting without them")
	}
	history := make(map[string][]string, 2)
	for _, key := range []string{app.HistorySearch, app.HistoryComments} {
		values, err := service.InputHistory(ctx, key)
		if err != nil {
			log.WithError(err).WithField("key", key).Warn("could not load input history")
			continue
		}
		history[key] = values
	}

	model := tui.NewModel(service, tui.Options{
		Criteria:     jobs.DefaultCriteria(cfg.PageSize),
		Location:     location,
		SaveDebounce: cfg.SaveDebounce,
		Presets:      presets,
		History:      history,
		Logger:       log,
	})

	program := tea.NewProgram(model, tea.WithAltScreen())
	poller := schedule.New(cfg.PollSchedule, func() {
		program.Send(tui.FreshnessTickMsg{})
	}, log)
	if err := poller.Start(); err != nil {
		return err
	}
	defer poller.Stop()

	log.WithFields(logrus.Fields{
		"api":   cfg.APIBaseURL,
		"db":    cfg.DBPath,
		"poll":  cfg.PollSchedule,
		"links": location != "",
	}).Info("starting jobtriage")

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}
