// Package session keeps per-chat conversational state: the numbered task
// list most recently shown, the undo stack, and the focus timer. State is
// in-memory and expires after inactivity.
package session

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"taskpilot/internal/model"
)

const maxUndoActions = 10

// TaskMapping binds a 1-based list position to a task, so "/done 2" can
// resolve the task the user saw.
type TaskMapping struct {
	Index   int
	TaskID  string
	Content string
}

// UndoType says what a recorded action changed.
type UndoType int

const (
	UndoComplete UndoType = iota
	UndoReschedule
	UndoPriority
	UndoAdd
)

// UndoAction captures enough of a mutation to reverse it.
type UndoAction struct {
	ID          string
	Type        UndoType
	TaskID      string
	TaskContent string
	// Previous schedule and priority, zero when the task had none.
	PrevDueString string
	PrevDueDate   string
	PrevPriority  int
	RecordedAt    time.Time
}

// FocusTimer is a running focus session.
type FocusTimer struct {
	TaskDescription string
	DurationMinutes int
	StartedAt       time.Time
	EndsAt          time.Time

	timer *time.Timer
}

// Session is the state for one chat.
type Session struct {
	taskMappings      []TaskMapping
	taskListMessageID int64
	undoStack         []UndoAction
	focus             *FocusTimer
}

// Store holds sessions keyed by chat ID. Sessions expire after the TTL of
// inactivity; an evicted session's focus timer is stopped with it.
type Store struct {
	mu       sync.Mutex
	sessions *expirable.LRU[int64, *Session]
}

// NewStore creates a session store bounded to maxSessions chats, each
// expiring after ttl without activity.
func NewStore(maxSessions int, ttl time.Duration) *Store {
	onEvict := func(_ int64, s *Session) {
		if s.focus != nil && s.focus.timer != nil {
			s.focus.timer.Stop()
		}
	}
	return &Store{
		sessions: expirable.NewLRU[int64, *Session](maxSessions, onEvict, ttl),
	}
}

// session returns the chat's session, creating it if needed. Callers hold mu.
func (s *Store) session(chatID int64) *Session {
	if sess, ok := s.sessions.Get(chatID); ok {
		return sess
	}
	sess := &Session{}
	s.sessions.Add(chatID, sess)
	return sess
}

// SetTaskMappings records the task list just shown to the chat and returns
// the numbered mappings.
func (s *Store) SetTaskMappings(chatID int64, tasks []model.Task) []TaskMapping {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(chatID)
	sess.taskMappings = make([]TaskMapping, len(tasks))
	for i, t := range tasks {
		sess.taskMappings[i] = TaskMapping{Index: i + 1, TaskID: t.ID, Content: t.Content}
	}
	return sess.taskMappings
}

// TaskByIndex resolves a 1-based position from the last shown list.
func (s *Store) TaskByIndex(chatID int64, index int) (TaskMapping, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.session(chatID).taskMappings {
		if m.Index == index {
			return m, true
		}
	}
	return TaskMapping{}, false
}

// TaskByFuzzyMatch resolves a task by content, exact match first, then
// substring. Matching is case-insensitive.
func (s *Store) TaskByFuzzyMatch(chatID int64, query string) (TaskMapping, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lower := strings.ToLower(query)
	mappings := s.session(chatID).taskMappings
	for _, m := range mappings {
		if strings.ToLower(m.Content) == lower {
			return m, true
		}
	}
	for _, m := range mappings {
		if strings.Contains(strings.ToLower(m.Content), lower) {
			return m, true
		}
	}
	return TaskMapping{}, false
}

// SetTaskListMessageID remembers the message carrying the last task list so
// it can be edited in place.
func (s *Store) SetTaskListMessageID(chatID, messageID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session(chatID).taskListMessageID = messageID
}

// TaskListMessageID returns the last task list message, or 0.
func (s *Store) TaskListMessageID(chatID int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session(chatID).taskListMessageID
}

// PushUndo records a reversible action. The stack is capped; the oldest
// action falls off.
func (s *Store) PushUndo(chatID int64, action UndoAction) UndoAction {
	s.mu.Lock()
	defer s.mu.Unlock()

	action.ID = uuid.New().String()
	action.RecordedAt = time.Now()

	sess := s.session(chatID)
	sess.undoStack = append(sess.undoStack, action)
	if len(sess.undoStack) > maxUndoActions {
		sess.undoStack = sess.undoStack[len(sess.undoStack)-maxUndoActions:]
	}
	return action
}

// PopUndo removes and returns the most recent action.
func (s *Store) PopUndo(chatID int64) (UndoAction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(chatID)
	if len(sess.undoStack) == 0 {
		return UndoAction{}, false
	}
	action := sess.undoStack[len(sess.undoStack)-1]
	sess.undoStack = sess.undoStack[:len(sess.undoStack)-1]
	return action, true
}

// StartFocus begins a focus session and schedules onDone at its end. It
// fails when one is already running.
func (s *Store) StartFocus(chatID int64, description string, minutes int, onDone func()) (FocusTimer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(chatID)
	if sess.focus != nil {
		return *sess.focus, false
	}

	now := time.Now()
	duration := time.Duration(minutes) * time.Minute
	focus := &FocusTimer{
		TaskDescription: description,
		DurationMinutes: minutes,
		StartedAt:       now,
		EndsAt:          now.Add(duration),
	}
	focus.timer = time.AfterFunc(duration, func() {
		s.clearFocus(chatID)
		onDone()
	})
	sess.focus = focus
	return *focus, true
}

// Focus returns a snapshot of the running focus session.
func (s *Store) Focus(chatID int64) (FocusTimer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(chatID)
	if sess.focus == nil {
		return FocusTimer{}, false
	}
	return *sess.focus, true
}

// StopFocus cancels a running focus session and returns its final state.
func (s *Store) StopFocus(chatID int64) (FocusTimer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(chatID)
	if sess.focus == nil {
		return FocusTimer{}, false
	}
	focus := *sess.focus
	sess.focus.timer.Stop()
	sess.focus = nil
	return focus, true
}

func (s *Store) clearFocus(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions.Get(chatID); ok {
		sess.focus = nil
	}
}
