package usecase

import (
	"context"
	"fmt"
	"sort"

	"taskpilot/internal/assistant"
)

// Projects lists projects with open-task counts, favorites first, then
// busiest first.
func (uc *implUseCase) Projects(ctx context.Context) (assistant.ProjectsOutput, error) {
	projects, err := uc.tasks.GetProjectsWithCounts(ctx)
	if err != nil {
		return assistant.ProjectsOutput{}, fmt.Errorf("failed to fetch projects: %w", err)
	}

	sort.SliceStable(projects, func(i, j int) bool {
		if projects[i].IsFavorite != projects[j].IsFavorite {
			return projects[i].IsFavorite
		}
		return projects[i].TaskCount > projects[j].TaskCount
	})

	out := assistant.ProjectsOutput{Projects: projects}
	for _, p := range projects {
		out.TotalTasks += p.TaskCount
	}
	return out, nil
}
