package telegram_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"taskpilot/pkg/telegram"
)

func TestBot(t *testing.T) {
	var lastPhotoSize int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/setWebhook"):
			var req map[string]string
			json.NewDecoder(r.Body).Decode(&req)
			if req["url"] == "cause_error" {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"ok": false, "description": "invalid url"}`))
				return
			}
			w.Write([]byte(`{"ok": true, "description": "webhook set"}`))

		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			var req map[string]interface{}
			json.NewDecoder(r.Body).Decode(&req)
			if req["text"] == "cause_error" {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"ok": false, "description": "invalid text"}`))
				return
			}
			if _, hasMarkup := req["reply_markup"]; req["text"] == "need_keyboard" && !hasMarkup {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"ok": false, "description": "keyboard missing"}`))
				return
			}
			w.Write([]byte(`{"ok": true}`))

		case strings.HasSuffix(r.URL.Path, "/editMessageText"):
			var req telegram.EditMessageTextRequest
			json.NewDecoder(r.Body).Decode(&req)
			if req.MessageID == 0 {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"ok": false, "description": "message_id required"}`))
				return
			}
			w.Write([]byte(`{"ok": true}`))

		case strings.HasSuffix(r.URL.Path, "/answerCallbackQuery"):
			w.Write([]byte(`{"ok": true}`))

		case strings.HasSuffix(r.URL.Path, "/sendPhoto"):
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"ok": false, "description": "bad multipart"}`))
				return
			}
			f, _, err := r.FormFile("photo")
			if err != nil || r.FormValue("chat_id") == "" {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"ok": false, "description": "photo or chat_id missing"}`))
				return
			}
			buf := make([]byte, 1<<20)
			n, _ := f.Read(buf)
			lastPhotoSize = n
			w.Write([]byte(`{"ok": true}`))

		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer ts.Close()

	bot := telegram.NewBot("test-token")
	bot.SetAPIURL(ts.URL)

	t.Run("SetWebhook Success", func(t *testing.T) {
		if err := bot.SetWebhook("https://example.com/webhook"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("SetWebhook API Failed", func(t *testing.T) {
		err := bot.SetWebhook("cause_error")
		if err == nil || !strings.Contains(err.Error(), "invalid url") {
			t.Fatalf("expected api failure error, got: %v", err)
		}
	})

	t.Run("SendMessage Success", func(t *testing.T) {
		if err := bot.SendMessage(12345, "Hello"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("SendMessage API Failed", func(t *testing.T) {
		err := bot.SendMessage(12345, "cause_error")
		if err == nil || !strings.Contains(err.Error(), "invalid text") {
			t.Fatalf("expected api failure error, got: %v", err)
		}
	})

	t.Run("Send With Keyboard", func(t *testing.T) {
		err := bot.Send(telegram.SendMessageRequest{
			ChatID: 12345,
			Text:   "need_keyboard",
			ReplyMarkup: &telegram.InlineKeyboardMarkup{
				InlineKeyboard: [][]telegram.InlineKeyboardButton{
					{{Text: "Done", CallbackData: "done:1"}},
				},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("EditMessageText", func(t *testing.T) {
		err := bot.EditMessageText(telegram.EditMessageTextRequest{ChatID: 12345, MessageID: 7, Text: "updated"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		err = bot.EditMessageText(telegram.EditMessageTextRequest{ChatID: 12345, Text: "no id"})
		if err == nil || !strings.Contains(err.Error(), "message_id required") {
			t.Fatalf("expected api failure error, got: %v", err)
		}
	})

	t.Run("AnswerCallbackQuery", func(t *testing.T) {
		err := bot.AnswerCallbackQuery(telegram.AnswerCallbackQueryRequest{CallbackQueryID: "cb1", Text: "ok"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("SendPhoto", func(t *testing.T) {
		payload := []byte{0x89, 'P', 'N', 'G', 1, 2, 3}
		if err := bot.SendPhoto(12345, payload, "today"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if lastPhotoSize != len(payload) {
			t.Errorf("server received %d photo bytes, want %d", lastPhotoSize, len(payload))
		}
	})

	t.Run("Invalid API URL", func(t *testing.T) {
		badBot := telegram.NewBot("test")
		badBot.SetAPIURL("http://invalid-url.local:1234")
		if err := badBot.SendMessage(12345, "fail"); err == nil {
			t.Errorf("expected network failure on invalid domain")
		}
	})
}
