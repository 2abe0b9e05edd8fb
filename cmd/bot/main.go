package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"taskpilot/config"
	tgDelivery "taskpilot/internal/assistant/delivery/telegram"
	"taskpilot/internal/assistant/repository"
	"taskpilot/internal/assistant/usecase"
	"taskpilot/internal/httpserver"
	"taskpilot/internal/ics"
	"taskpilot/internal/middleware"
	"taskpilot/internal/schedule"
	"taskpilot/internal/session"
	"taskpilot/internal/timeline"
	"taskpilot/pkg/gcalendar"
	"taskpilot/pkg/log"
	"taskpilot/pkg/telegram"
	"taskpilot/pkg/todoist"
)

const (
	maxSessions = 1000
	sessionTTL  = 24 * time.Hour
)

func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting TaskPilot...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Timezone and work hours
	loc, err := time.LoadLocation(cfg.Assistant.Timezone)
	if err != nil {
		logger.Warnf(ctx, "Invalid timezone %q, falling back to UTC: %v", cfg.Assistant.Timezone, err)
		loc = time.UTC
	}

	workStart, err := schedule.ParseWorkHour(cfg.Assistant.WorkHoursStart)
	if err != nil {
		logger.Error(ctx, "Invalid work_hours_start: ", err)
		return
	}
	workEnd, err := schedule.ParseWorkHour(cfg.Assistant.WorkHoursEnd)
	if err != nil {
		logger.Error(ctx, "Invalid work_hours_end: ", err)
		return
	}

	// 4. Assistant domain
	var telegramHandler tgDelivery.Handler
	var briefingCron *cron.Cron

	if cfg.Telegram.BotToken != "" && cfg.Todoist.APIToken != "" {
		logger.Info(ctx, "Initializing assistant components...")

		telegramBot := telegram.NewBot(cfg.Telegram.BotToken)
		todoistClient := todoist.NewClient(cfg.Todoist.APIToken, cfg.Todoist.ProjectCacheTTL)

		// Google Calendar client (optional)
		var calendar repository.Calendar
		if cfg.GoogleCalendar.CredentialsPath != "" {
			calendarClient, gcErr := gcalendar.NewClientFromCredentialsFile(ctx, cfg.GoogleCalendar.CredentialsPath)
			if gcErr != nil {
				logger.Warnf(ctx, "Google Calendar not available (optional): %v", gcErr)
				logger.Warn(ctx, "→ Run `go run scripts/gcal-auth/main.go` to generate token.json")
			} else {
				logger.Info(ctx, "✅ Google Calendar initialized")
				calendar = calendarClient
			}
		}

		// ICS feeds (optional)
		var feeds repository.FeedReader
		icsFeeds := make([]ics.Feed, 0, len(cfg.ICS.Feeds))
		for _, f := range cfg.ICS.Feeds {
			icsFeeds = append(icsFeeds, ics.Feed{Name: f.Name, URL: f.URL})
		}
		if len(icsFeeds) > 0 {
			feeds = ics.NewClient()
			logger.Infof(ctx, "ICS feeds configured: %d", len(icsFeeds))
		}

		sessions := session.NewStore(maxSessions, sessionTTL)

		uc := usecase.New(logger, todoistClient, calendar, feeds, timeline.NewRenderer(), sessions, usecase.Config{
			Location:           loc,
			WorkStartMin:       workStart,
			WorkEndMin:         workEnd,
			CalendarIDs:        cfg.GoogleCalendar.CalendarIDs,
			WritableCalendarID: cfg.GoogleCalendar.WritableCalendarID,
			ICSFeeds:           icsFeeds,
		})

		telegramHandler = tgDelivery.New(logger, uc, telegramBot, sessions, loc, cfg.Telegram.AllowedChatIDs)

		// Register webhook
		if cfg.Telegram.WebhookURL != "" {
			if whErr := telegramBot.SetWebhook(cfg.Telegram.WebhookURL); whErr != nil {
				logger.Warnf(ctx, "Failed to set Telegram webhook: %v", whErr)
			} else {
				logger.Infof(ctx, "✅ Telegram webhook registered at %s", cfg.Telegram.WebhookURL)
			}
		}

		// Scheduled morning briefing
		if cfg.Assistant.BriefingChatID != 0 {
			briefingCron = cron.New(cron.WithLocation(loc))
			chatID := cfg.Assistant.BriefingChatID
			handler := telegramHandler
			_, cronErr := briefingCron.AddFunc(cfg.Assistant.BriefingCron, func() {
				jobCtx := context.Background()
				if pushErr := handler.SendBriefing(jobCtx, chatID); pushErr != nil {
					logger.Errorf(jobCtx, "Failed to push morning briefing: %v", pushErr)
				}
			})
			if cronErr != nil {
				logger.Warnf(ctx, "Invalid briefing_cron %q: %v", cfg.Assistant.BriefingCron, cronErr)
				briefingCron = nil
			} else {
				briefingCron.Start()
				logger.Infof(ctx, "Morning briefing scheduled: %q → chat %d", cfg.Assistant.BriefingCron, chatID)
			}
		}

		logger.Info(ctx, "Assistant initialized successfully")
	} else {
		logger.Warn(ctx, "Assistant skipped: TELEGRAM_BOT_TOKEN or TODOIST_API_TOKEN is missing")
	}

	// 5. HTTP server
	mw := middleware.New(logger, cfg.Webhook.RateLimitPerMin)
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		Middleware:      mw,
		TelegramHandler: telegramHandler,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 6. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	if briefingCron != nil {
		briefingCron.Stop()
	}
	logger.Info(ctx, "Server stopped gracefully")
}
