package task

import (
	"github.com/example/task-manager-api/domain/user"
)

// UserRef is the owner or author reference embedded in task views.
type UserRef struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CategoryRef is the category reference embedded in a task detail.
type CategoryRef struct {
	ID    uint   `json:"id"`
	Label string `json:"label"`
}

// Summary is the list projection of a task.
type Summary struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	DueDate     string  `json:"due_date"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	User        UserRef `json:"user"`
}

// Detail is the full projection of a task with its annotations.
type Detail struct {
	Summary
	Category CategoryRef   `json:"category"`
	Comments []CommentView `json:"comments"`
	Tracking *TrackingView `json:"task_tracking"`
}

// CommentView is the projection of a comment.
type CommentView struct {
	ID        uint    `json:"id"`
	TaskID    uint    `json:"task_id"`
	Content   string  `json:"content"`
	Timestamp string  `json:"timestamp"`
	User      UserRef `json:"user"`
}

// TrackingView is the projection of a tracking record. Timestamps use the
// DD/MM/YY HH:MM wire format.
type TrackingView struct {
	ID             uint     `json:"id"`
	TaskID         uint     `json:"task_id"`
	EstimatedHours float64  `json:"estimated_hours"`
	StartedAt      *string  `json:"started_at"`
	FinishedAt     *string  `json:"finished_at"`
	ActualHours    *float64 `json:"actual_hours"`
	State          string   `json:"state"`
}

// CategoryView is the projection of a category with its tasks.
type CategoryView struct {
	ID    uint      `json:"id"`
	Label string    `json:"label"`
	Tasks []Summary `json:"tasks"`
}

func userRef(u user.User) UserRef {
	return UserRef{Name: u.Name, Email: u.Email}
}

// ToSummary projects t. The User association must be loaded.
func (t *Task) ToSummary() Summary {
	return Summary{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate.Format(DueDateLayout),
		Status:      t.Status,
		Priority:    string(t.Priority),
		User:        userRef(t.User),
	}
}

// ToDetail projects t with category, comments and tracking.
func (t *Task) ToDetail() Detail {
	comments := make([]CommentView, 0, len(t.Comments))
	for i := range t.Comments {
		comments = append(comments, t.Comments[i].ToView())
	}
	d := Detail{
		Summary:  t.ToSummary(),
		Category: CategoryRef{ID: t.Category.ID, Label: t.Category.Label},
		Comments: comments,
	}
	if t.Tracking != nil {
		v := t.Tracking.ToView()
		d.Tracking = &v
	}
	return d
}

// ToView projects c. The User association must be loaded.
func (c *Comment) ToView() CommentView {
	return CommentView{
		ID:        c.ID,
		TaskID:    c.TaskID,
		Content:   c.Content,
		Timestamp: c.Timestamp.Format(TimestampLayout),
		User:      userRef(c.User),
	}
}

// ToView projects tt.
func (tt *TaskTracking) ToView() TrackingView {
	v := TrackingView{
		ID:             tt.ID,
		TaskID:         tt.TaskID,
		EstimatedHours: tt.EstimatedHours,
		ActualHours:    tt.ActualHours,
		State:          "open",
	}
	if tt.StartedAt != nil {
		s := tt.StartedAt.Format(TrackingLayout)
		v.StartedAt = &s
	}
	if tt.FinishedAt != nil {
		s := tt.FinishedAt.Format(TrackingLayout)
		v.FinishedAt = &s
	}
	if tt.IsClosed() {
		v.State = "closed"
	}
	return v
}

// ToView projects c with its tasks.
func (c *Category) ToView() CategoryView {
	tasks := make([]Summary, 0, len(c.Tasks))
	for i := range c.Tasks {
		tasks = append(tasks, c.Tasks[i].ToSummary())
	}
	return CategoryView{ID: c.ID, Label: c.Label, Tasks: tasks}
}

// Summaries projects a slice of tasks.
func Summaries(tasks []Task) []Summary {
	out := make([]Summary, 0, len(tasks))
	for i := range tasks {
		out = append(out, tasks[i].ToSummary())
	}
	return out
}
