package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"taskpilot/internal/assistant"
	"taskpilot/internal/session"
	pkgLog "taskpilot/pkg/log"
	pkgResponse "taskpilot/pkg/response"
	pkgTelegram "taskpilot/pkg/telegram"
)

const maxDoneButtons = 8

type handler struct {
	l        pkgLog.Logger
	uc       assistant.UseCase
	bot      *pkgTelegram.Bot
	sessions *session.Store
	loc      *time.Location
	allowed  map[int64]bool
}

// HandleWebhook is the Gin handler for incoming Telegram webhook updates.
// It responds with HTTP 200 immediately and processes the update in a
// background goroutine; Telegram expects an answer within a few seconds and
// a full pipeline (task store + calendars + rendering) can take longer.
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	var update pkgTelegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Errorf(ctx, "telegram handler: failed to parse update: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	if update.CallbackQuery != nil {
		cb := update.CallbackQuery
		go func() {
			bgCtx := context.Background()
			if err := h.processCallback(bgCtx, cb); err != nil {
				h.l.Errorf(bgCtx, "telegram handler: callback failed: %v", err)
			}
		}()
		pkgResponse.OK(c, map[string]string{"status": "accepted"})
		return
	}

	// Ignore non-message updates (polls, channel_post, etc.)
	if update.Message == nil {
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	// Snapshot the message before spawning the goroutine to avoid races on
	// the gin context.
	msg := update.Message

	go func() {
		bgCtx := context.Background()
		if err := h.processMessage(bgCtx, msg); err != nil {
			h.l.Errorf(bgCtx, "telegram handler: processMessage failed: %v", err)
			_ = h.bot.SendMessage(msg.Chat.ID, "Something went wrong: "+errorMessage(err))
		}
	}()

	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}

// processMessage routes a single Telegram message to the matching operation.
func (h *handler) processMessage(ctx context.Context, msg *pkgTelegram.Message) error {
	if msg.Text == "" {
		return nil
	}
	if !h.chatAllowed(msg.Chat.ID) {
		h.l.Warnf(ctx, "telegram handler: ignoring chat %d", msg.Chat.ID)
		return nil
	}

	command, args := splitCommand(msg.Text)
	chatID := msg.Chat.ID

	switch command {
	case "/start":
		return h.bot.SendMessageWithMode(chatID, startMessage, "Markdown")
	case "/help":
		return h.bot.SendMessageWithMode(chatID, helpMessage, "Markdown")

	case "/today":
		return h.sendOverview(ctx, chatID, 0)
	case "/tomorrow":
		return h.sendOverview(ctx, chatID, 1)

	case "/next":
		out, err := h.uc.NextUp(ctx)
		if err != nil {
			return err
		}
		return h.bot.SendMessageWithMode(chatID, nextUpReply(out, h.loc, time.Now()), "Markdown")

	case "/tasks":
		return h.sendTaskList(ctx, chatID, args)

	case "/add":
		return h.addTask(ctx, chatID, args)

	case "/done":
		out, err := h.uc.CompleteTask(ctx, chatID, args)
		if err != nil {
			return err
		}
		return h.bot.SendMessageWithMode(chatID, fmt.Sprintf("✅ Completed: *%s*", escapeMarkdown(out.Content)), "Markdown")

	case "/delete":
		numbers, err := parseNumbers(args)
		if err != nil {
			return err
		}
		out, err := h.uc.DeleteTasks(ctx, chatID, numbers)
		if err != nil {
			return err
		}
		return h.bot.SendMessageWithMode(chatID, batchReply("Deleted", out), "Markdown")

	case "/snooze":
		numbers, when := splitLeadingNumbers(args)
		if len(numbers) == 0 {
			return assistant.ErrTaskNotFound
		}
		out, err := h.uc.SnoozeTasks(ctx, chatID, numbers, when)
		if err != nil {
			return err
		}
		return h.bot.SendMessageWithMode(chatID, snoozeReply(out), "Markdown")

	case "/edit":
		number, edit := splitLeadingNumber(args)
		if number == 0 {
			return assistant.ErrTaskNotFound
		}
		out, err := h.uc.EditTask(ctx, chatID, number, edit)
		if err != nil {
			return err
		}
		return h.bot.SendMessageWithMode(chatID, editTaskReply(out), "Markdown")

	case "/free":
		out, err := h.uc.FreeSlots(ctx, freeScope(args))
		if err != nil {
			return err
		}
		return h.bot.SendMessageWithMode(chatID, freeSlotsReply(out), "Markdown")

	case "/block":
		out, err := h.uc.BlockTime(ctx, chatID, args)
		if err != nil {
			return err
		}
		return h.bot.SendMessageWithMode(chatID, blockTimeReply(out, h.loc), "Markdown")

	case "/timeline":
		offset := 0
		if strings.EqualFold(strings.TrimSpace(args), "tomorrow") {
			offset = 1
		}
		png, err := h.uc.TimelineImage(ctx, offset)
		if err != nil {
			return err
		}
		return h.bot.SendPhoto(chatID, png, "")

	case "/focus":
		return h.focus(chatID, args)

	case "/undo":
		out, err := h.uc.Undo(ctx, chatID)
		if err != nil {
			return err
		}
		return h.bot.SendMessageWithMode(chatID, undoReply(out), "Markdown")

	case "/projects":
		out, err := h.uc.Projects(ctx)
		if err != nil {
			return err
		}
		return h.bot.SendMessageWithMode(chatID, projectsReply(out), "Markdown")

	case "/briefing":
		return h.SendBriefing(ctx, chatID)
	}

	// Anything else is a quick-add.
	return h.addTask(ctx, chatID, msg.Text)
}

// processCallback handles inline keyboard presses. The only callback today
// is "done:<n>" from a task list.
func (h *handler) processCallback(ctx context.Context, cb *pkgTelegram.CallbackQuery) error {
	if cb.Message == nil || !h.chatAllowed(cb.Message.Chat.ID) {
		return h.bot.AnswerCallbackQuery(pkgTelegram.AnswerCallbackQueryRequest{CallbackQueryID: cb.ID})
	}
	chatID := cb.Message.Chat.ID

	ref, ok := strings.CutPrefix(cb.Data, "done:")
	if !ok {
		return h.bot.AnswerCallbackQuery(pkgTelegram.AnswerCallbackQueryRequest{CallbackQueryID: cb.ID})
	}

	out, err := h.uc.CompleteTask(ctx, chatID, ref)
	if err != nil {
		return h.bot.AnswerCallbackQuery(pkgTelegram.AnswerCallbackQueryRequest{
			CallbackQueryID: cb.ID,
			Text:            "Could not complete that task",
		})
	}
	if err := h.bot.AnswerCallbackQuery(pkgTelegram.AnswerCallbackQueryRequest{
		CallbackQueryID: cb.ID,
		Text:            "✅ " + out.Content,
	}); err != nil {
		h.l.Warnf(ctx, "telegram handler: failed to answer callback: %v", err)
	}

	// Refresh the list in place so the numbers stay valid.
	list, err := h.uc.ListTasks(ctx, chatID, "")
	if err != nil {
		return err
	}
	h.sessions.SetTaskListMessageID(chatID, cb.Message.MessageID)
	return h.bot.EditMessageText(pkgTelegram.EditMessageTextRequest{
		ChatID:      chatID,
		MessageID:   cb.Message.MessageID,
		Text:        taskListReply(list, h.loc),
		ParseMode:   "Markdown",
		ReplyMarkup: doneKeyboard(len(list.Tasks)),
	})
}

func (h *handler) SendBriefing(ctx context.Context, chatID int64) error {
	out, err := h.uc.Briefing(ctx)
	if err != nil {
		return err
	}
	return h.bot.SendMessageWithMode(chatID, briefingReply(out, h.loc), "Markdown")
}

func (h *handler) sendOverview(ctx context.Context, chatID int64, offset int) error {
	out, err := h.uc.DayOverview(ctx, assistant.DayOverviewInput{ChatID: chatID, OffsetDays: offset})
	if err != nil {
		return err
	}
	return h.bot.SendMessageWithMode(chatID, overviewReply(out, h.loc), "Markdown")
}

func (h *handler) sendTaskList(ctx context.Context, chatID int64, filter string) error {
	out, err := h.uc.ListTasks(ctx, chatID, filter)
	if err != nil {
		return err
	}
	return h.bot.Send(pkgTelegram.SendMessageRequest{
		ChatID:      chatID,
		Text:        taskListReply(out, h.loc),
		ParseMode:   "Markdown",
		ReplyMarkup: doneKeyboard(len(out.Tasks)),
	})
}

func (h *handler) addTask(ctx context.Context, chatID int64, text string) error {
	out, err := h.uc.AddTask(ctx, chatID, text)
	if err != nil {
		if errors.Is(err, assistant.ErrEmptyInput) {
			return h.bot.SendMessage(chatID, "What should I add? Try: /add Buy milk tomorrow 2pm")
		}
		return err
	}
	return h.bot.SendMessageWithMode(chatID, addTaskReply(out), "Markdown")
}

func (h *handler) focus(chatID int64, args string) error {
	switch strings.ToLower(strings.TrimSpace(args)) {
	case "stop":
		out, err := h.uc.StopFocus(chatID)
		if err != nil {
			return err
		}
		return h.bot.SendMessageWithMode(chatID, focusStoppedReply(out), "Markdown")
	case "status":
		out, err := h.uc.FocusStatus(chatID)
		if err != nil {
			return err
		}
		return h.bot.SendMessageWithMode(chatID, focusStatusReply(out), "Markdown")
	}

	out, err := h.uc.StartFocus(chatID, args, func(done assistant.FocusOutput) {
		if err := h.bot.SendMessageWithMode(chatID, focusDoneReply(done), "Markdown"); err != nil {
			h.l.Errorf(context.Background(), "telegram handler: failed to send focus done: %v", err)
		}
	})
	if err != nil {
		return err
	}
	return h.bot.SendMessageWithMode(chatID, focusStartedReply(out), "Markdown")
}

func (h *handler) chatAllowed(chatID int64) bool {
	if len(h.allowed) == 0 {
		return true
	}
	return h.allowed[chatID]
}

// doneKeyboard builds an inline keyboard of complete buttons for a numbered
// task list.
func doneKeyboard(count int) *pkgTelegram.InlineKeyboardMarkup {
	if count == 0 {
		return nil
	}
	if count > maxDoneButtons {
		count = maxDoneButtons
	}
	var row []pkgTelegram.InlineKeyboardButton
	kb := &pkgTelegram.InlineKeyboardMarkup{}
	for i := 1; i <= count; i++ {
		row = append(row, pkgTelegram.InlineKeyboardButton{
			Text:         fmt.Sprintf("✓%d", i),
			CallbackData: fmt.Sprintf("done:%d", i),
		})
		if len(row) == 4 {
			kb.InlineKeyboard = append(kb.InlineKeyboard, row)
			row = nil
		}
	}
	if len(row) > 0 {
		kb.InlineKeyboard = append(kb.InlineKeyboard, row)
	}
	return kb
}

// splitCommand separates a leading "/command" (with optional @botname) from
// its arguments.
func splitCommand(text string) (string, string) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", text
	}
	command, args, _ := strings.Cut(text, " ")
	if at := strings.Index(command, "@"); at > 0 {
		command = command[:at]
	}
	return strings.ToLower(command), strings.TrimSpace(args)
}

// parseNumbers reads a list of task numbers ("1 3 5" or "1,3,5").
func parseNumbers(args string) ([]int, error) {
	fields := strings.FieldsFunc(args, func(r rune) bool { return r == ' ' || r == ',' })
	var numbers []int
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%q is not a task number", f)
		}
		numbers = append(numbers, n)
	}
	if len(numbers) == 0 {
		return nil, assistant.ErrEmptyInput
	}
	return numbers, nil
}

// splitLeadingNumbers consumes the task numbers at the front of the text and
// returns them with the remainder ("1 3 tomorrow" -> [1 3], "tomorrow").
func splitLeadingNumbers(args string) ([]int, string) {
	fields := strings.Fields(args)
	var numbers []int
	i := 0
	for ; i < len(fields); i++ {
		n, err := strconv.Atoi(strings.TrimSuffix(fields[i], ","))
		if err != nil {
			break
		}
		numbers = append(numbers, n)
	}
	return numbers, strings.Join(fields[i:], " ")
}

func splitLeadingNumber(args string) (int, string) {
	first, rest, _ := strings.Cut(strings.TrimSpace(args), " ")
	n, err := strconv.Atoi(first)
	if err != nil {
		return 0, args
	}
	return n, strings.TrimSpace(rest)
}

func freeScope(args string) assistant.FreeSlotsScope {
	switch strings.ToLower(strings.TrimSpace(args)) {
	case "tomorrow":
		return assistant.FreeTomorrow
	case "week":
		return assistant.FreeWeek
	default:
		return assistant.FreeToday
	}
}
