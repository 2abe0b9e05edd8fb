package telegram

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"taskpilot/internal/assistant"
	"taskpilot/internal/session"
	pkgLog "taskpilot/pkg/log"
	pkgTelegram "taskpilot/pkg/telegram"
)

// Handler is the interface for the Telegram delivery handler.
type Handler interface {
	HandleWebhook(c *gin.Context)

	// SendBriefing pushes the morning briefing to chatID. It is called by
	// the cron scheduler in addition to the /briefing command.
	SendBriefing(ctx context.Context, chatID int64) error
}

// New creates a new Telegram delivery handler. allowedChatIDs limits who the
// bot answers; empty means everyone.
func New(
	l pkgLog.Logger,
	uc assistant.UseCase,
	bot *pkgTelegram.Bot,
	sessions *session.Store,
	loc *time.Location,
	allowedChatIDs []int64,
) Handler {
	allowed := make(map[int64]bool, len(allowedChatIDs))
	for _, id := range allowedChatIDs {
		allowed[id] = true
	}
	return &handler{
		l:        l,
		uc:       uc,
		bot:      bot,
		sessions: sessions,
		loc:      loc,
		allowed:  allowed,
	}
}
