package telegram

const startMessage = `👋 Welcome to *TaskPilot*!

Send me a task in plain words and I'll file it:
_"Review PR tomorrow 2pm-3pm #Work"_

Or use a command — /help lists them all.`

const helpMessage = `*Commands*

/today — schedule and tasks for today
/tomorrow — same for tomorrow
/next — next event and top task
/tasks [filter] — list tasks (e.g. /tasks #Work)
/add <text> — add a task (or just type it)
/done <n|name> — complete a task
/delete <n...> — delete tasks by number
/snooze <n...> [when] — push tasks ("2h", "tonight", "next week")
/edit <n> <change> — edit ("duration 45m", "time 3pm-4pm", new text)
/free [tomorrow|week] — open slots in your work hours
/block <time> <title> — block time ("2pm-3pm Deep work")
/timeline [tomorrow] — your day as an image
/focus [minutes] [task] — start a focus timer
/undo — reverse the last change
/projects — projects with open counts
/briefing — the morning summary`
