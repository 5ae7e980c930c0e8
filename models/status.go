package models

// TaskStatus is one of the fixed Korean status tokens stored on a task.
// Status is independent of progress: nothing at the data layer forces a
// 완료 task to 100% or a 대기중 task to 0%.
type TaskStatus string

const (
	StatusWaiting    TaskStatus = "대기중"
	StatusInProgress TaskStatus = "진행중"
	StatusDone       TaskStatus = "완료"
	StatusIssue      TaskStatus = "이슈"
	StatusBug        TaskStatus = "버그"
	StatusCancelled  TaskStatus = "취소"
)

// TaskStatusList holds every valid token in display order
var TaskStatusList = []TaskStatus{
	StatusWaiting,
	StatusInProgress,
	StatusDone,
	StatusIssue,
	StatusBug,
	StatusCancelled,
}

// statusColors is the single source of truth for status display colors.
// Every token in TaskStatusList must have an entry here; there is no
// fallback color for unknown tokens.
var statusColors = map[TaskStatus]string{
	StatusWaiting:    "var(--text-muted)",
	StatusInProgress: "var(--neon-cyan)",
	StatusDone:       "var(--neon-green)",
	StatusIssue:      "var(--neon-orange)",
	StatusBug:        "var(--neon-pink)",
	StatusCancelled:  "var(--text-muted)",
}

// Valid reports whether s is one of the known status tokens
func (s TaskStatus) Valid() bool {
	_, ok := statusColors[s]
	return ok
}

// Color returns the display color for a known token and false otherwise
func (s TaskStatus) Color() (string, bool) {
	c, ok := statusColors[s]
	return c, ok
}
