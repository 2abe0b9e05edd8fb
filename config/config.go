package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	Environment EnvironmentConfig

	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	Telegram       TelegramConfig
	Todoist        TodoistConfig
	GoogleCalendar GoogleCalendarConfig
	ICS            ICSConfig
	Assistant      AssistantConfig
	Webhook        WebhookConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type TelegramConfig struct {
	BotToken       string
	WebhookURL     string
	AllowedChatIDs []int64
}

type TodoistConfig struct {
	APIToken        string
	ProjectCacheTTL time.Duration
}

type GoogleCalendarConfig struct {
	CredentialsPath    string
	CalendarIDs        []string
	WritableCalendarID string
}

// ICSFeed is one subscribed read-only calendar feed.
type ICSFeed struct {
	Name string
	URL  string
}

type ICSConfig struct {
	Feeds []ICSFeed
}

// AssistantConfig carries schedule settings: timezone, the work-hours window
// ("HH:MM"), and the cron expression for the morning briefing push.
type AssistantConfig struct {
	Timezone       string
	WorkHoursStart string
	WorkHoursEnd   string
	BriefingCron   string
	BriefingChatID int64
}

type WebhookConfig struct {
	RateLimitPerMin int
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	cfg.Telegram.BotToken = viper.GetString("telegram.bot_token")
	cfg.Telegram.WebhookURL = viper.GetString("telegram.webhook_url")
	if tgToken := viper.GetString("telegram_bot_token"); tgToken != "" {
		cfg.Telegram.BotToken = tgToken
	}
	chatIDs, err := parseChatIDs(viper.GetString("telegram.allowed_chat_ids"))
	if err != nil {
		return nil, err
	}
	cfg.Telegram.AllowedChatIDs = chatIDs

	cfg.Todoist.APIToken = viper.GetString("todoist.api_token")
	if tdToken := viper.GetString("todoist_api_token"); tdToken != "" {
		cfg.Todoist.APIToken = tdToken
	}
	cfg.Todoist.ProjectCacheTTL = viper.GetDuration("todoist.project_cache_ttl")

	cfg.GoogleCalendar.CredentialsPath = viper.GetString("google_calendar.credentials_path")
	if googleCreds := viper.GetString("google_calendar_credentials"); googleCreds != "" {
		cfg.GoogleCalendar.CredentialsPath = googleCreds
	}
	cfg.GoogleCalendar.CalendarIDs = splitList(viper.GetString("google_calendar.calendar_ids"))
	cfg.GoogleCalendar.WritableCalendarID = viper.GetString("google_calendar.writable_calendar_id")
	if cfg.GoogleCalendar.WritableCalendarID == "" && len(cfg.GoogleCalendar.CalendarIDs) > 0 {
		cfg.GoogleCalendar.WritableCalendarID = cfg.GoogleCalendar.CalendarIDs[0]
	}

	feeds, err := parseFeeds()
	if err != nil {
		return nil, err
	}
	cfg.ICS.Feeds = feeds

	cfg.Assistant.Timezone = viper.GetString("assistant.timezone")
	cfg.Assistant.WorkHoursStart = viper.GetString("assistant.work_hours_start")
	cfg.Assistant.WorkHoursEnd = viper.GetString("assistant.work_hours_end")
	cfg.Assistant.BriefingCron = viper.GetString("assistant.briefing_cron")
	cfg.Assistant.BriefingChatID = viper.GetInt64("assistant.briefing_chat_id")

	cfg.Webhook.RateLimitPerMin = viper.GetInt("webhook.rate_limit_per_min")

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)
	viper.SetDefault("todoist.project_cache_ttl", "5m")
	viper.SetDefault("assistant.timezone", "UTC")
	viper.SetDefault("assistant.work_hours_start", "09:00")
	viper.SetDefault("assistant.work_hours_end", "17:00")
	viper.SetDefault("assistant.briefing_cron", "0 8 * * *")
	viper.SetDefault("webhook.rate_limit_per_min", 60)
}

// parseChatIDs reads a comma-separated chat ID list. Empty means every chat
// is allowed.
func parseChatIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range splitList(raw) {
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid telegram chat ID %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// parseFeeds reads ICS feeds either from the yaml list (ics.feeds with name
// and url keys) or from a comma-separated "Name=URL" env string.
func parseFeeds() ([]ICSFeed, error) {
	var feeds []ICSFeed

	if viper.IsSet("ics.feeds") {
		if list, ok := viper.Get("ics.feeds").([]interface{}); ok {
			for _, item := range list {
				entry, ok := item.(map[string]interface{})
				if !ok {
					continue
				}
				feed := ICSFeed{
					Name: getStringFromMap(entry, "name"),
					URL:  getStringFromMap(entry, "url"),
				}
				if feed.URL == "" {
					return nil, fmt.Errorf("ics feed %q has no url", feed.Name)
				}
				feeds = append(feeds, feed)
			}
		}
	}

	for _, part := range splitList(viper.GetString("ics_feeds")) {
		name, url, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("invalid ics feed %q, want Name=URL", part)
		}
		feeds = append(feeds, ICSFeed{Name: strings.TrimSpace(name), URL: strings.TrimSpace(url)})
	}
	return feeds, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getStringFromMap(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}
