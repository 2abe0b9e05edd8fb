package usecase

import (
	"context"
	"testing"

	"taskpilot/internal/model"
)

func TestProjectsOrdering(t *testing.T) {
	store := &fakeTaskStore{projects: []model.Project{
		{ID: "p1", Name: "Inbox", TaskCount: 12},
		{ID: "p2", Name: "Side project", TaskCount: 3, IsFavorite: true},
		{ID: "p3", Name: "Work", TaskCount: 8, IsFavorite: true},
		{ID: "p4", Name: "Someday", TaskCount: 1},
	}}
	uc := newTestUseCase(store, nil)

	out, err := uc.Projects(context.Background())
	if err != nil {
		t.Fatalf("Projects: %v", err)
	}

	wantOrder := []string{"Work", "Side project", "Inbox", "Someday"}
	for i, want := range wantOrder {
		if out.Projects[i].Name != want {
			t.Errorf("projects[%d] = %q, want %q", i, out.Projects[i].Name, want)
		}
	}
	if out.TotalTasks != 24 {
		t.Errorf("TotalTasks = %d, want 24", out.TotalTasks)
	}
}
