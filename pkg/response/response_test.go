package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"taskpilot/pkg/response"
)

func TestOK(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	response.OK(c, map[string]string{"status": "accepted"})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp response.Resp
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if resp.ErrorCode != 0 {
		t.Errorf("ErrorCode = %d, want 0", resp.ErrorCode)
	}
	data, ok := resp.Data.(map[string]interface{})
	if !ok || data["status"] != "accepted" {
		t.Errorf("unexpected data payload: %v", resp.Data)
	}
}

func TestError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	response.Error(c, errors.New("bad update payload"), nil)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	var resp response.Resp
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if resp.ErrorCode != 1 {
		t.Errorf("ErrorCode = %d, want 1", resp.ErrorCode)
	}
	if resp.Message != "bad update payload" {
		t.Errorf("Message = %q, want %q", resp.Message, "bad update payload")
	}
	if resp.Data == nil {
		t.Error("nil data should marshal as an empty map, not be omitted")
	}
}

func TestTooManyRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	response.TooManyRequests(c)

	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusTooManyRequests)
	}
	if !c.IsAborted() {
		t.Error("request should be aborted after rate limit rejection")
	}
}
