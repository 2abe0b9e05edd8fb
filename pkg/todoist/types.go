package todoist

// dueJSON is the REST API due object.
type dueJSON struct {
	Date        string `json:"date"`
	Datetime    string `json:"datetime,omitempty"`
	String      string `json:"string,omitempty"`
	IsRecurring bool   `json:"is_recurring"`
}

// durationJSON is the REST API duration object.
type durationJSON struct {
	Amount int    `json:"amount"`
	Unit   string `json:"unit"`
}

// taskJSON is a task as returned by the REST API.
type taskJSON struct {
	ID          string        `json:"id"`
	Content     string        `json:"content"`
	Description string        `json:"description,omitempty"`
	Priority    int           `json:"priority"`
	Due         *dueJSON      `json:"due,omitempty"`
	Duration    *durationJSON `json:"duration,omitempty"`
	ProjectID   string        `json:"project_id"`
	Labels      []string      `json:"labels,omitempty"`
}

// projectJSON is a project as returned by the REST API.
type projectJSON struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Color      string `json:"color"`
	IsFavorite bool   `json:"is_favorite"`
}

// QuickAddRequest is the payload for the Sync quick-add endpoint, which runs
// the service's own natural-language parsing over the text.
type QuickAddRequest struct {
	Text string `json:"text"`
}

// UpdateTaskRequest carries the mutable task fields; zero values are omitted
// and left unchanged.
type UpdateTaskRequest struct {
	Content      string `json:"content,omitempty"`
	Description  string `json:"description,omitempty"`
	Priority     int    `json:"priority,omitempty"`
	DueString    string `json:"due_string,omitempty"`
	Duration     int    `json:"duration,omitempty"`
	DurationUnit string `json:"duration_unit,omitempty"`
}

// completedItemJSON is one entry of the Sync completed/get_all response.
// The annotated item object carries the original schedule.
type completedItemJSON struct {
	TaskID      string `json:"task_id"`
	Content     string `json:"content"`
	ProjectID   string `json:"project_id"`
	CompletedAt string `json:"completed_at"`
	ItemObject  *struct {
		Priority int           `json:"priority"`
		Due      *dueJSON      `json:"due,omitempty"`
		Duration *durationJSON `json:"duration,omitempty"`
	} `json:"item_object,omitempty"`
}

type completedResponseJSON struct {
	Items []completedItemJSON `json:"items"`
}
