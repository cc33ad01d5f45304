package database

import (
	"context"
	"fmt"
	"time"

	"github.com/example/task-manager-api/domain/task"
	"github.com/example/task-manager-api/domain/user"
	"gorm.io/gorm"
)

// HashFunc hashes a plaintext password for storage.
type HashFunc func(password string) (string, error)

type seedUser struct {
	name     string
	email    string
	password string
	admin    bool
}

var seedUsers = []seedUser{
	{"Admin User", "admin@domain.com", "securepassword", true},
	{"Alice Johnson", "alice.johnson@example.com", "alice1234", false},
	{"Bob Smith", "bob.smith@example.com", "bobpassword", false},
	{"Charlie Brown", "charlie.brown@example.com", "charliepass", false},
}

var seedCategories = []string{"Work", "Personal", "Team Collaboration", "On Hold"}

type seedTask struct {
	title       string
	description string
	status      string
	priority    task.Priority
	owner       int
	category    int
}

var seedTasks = []seedTask{
	{"Complete Project Report", "Finish the quarterly project report and send it to the manager.", "To Do", task.PriorityHigh, 0, 1},
	{"Develop New Feature", "Implement the new user onboarding flow.", "In Progress", task.PriorityCritical, 1, 2},
	{"Update Documentation", "Bring the API documentation in line with the latest release.", "Completed", task.PriorityMedium, 2, 3},
	{"Fix Bugs", "Resolve the open issues reported by QA.", "To Do", task.PriorityLow, 3, 2},
}

type seedComment struct {
	task    int
	author  int
	content string
}

var seedComments = []seedComment{
	{0, 1, "Make sure to include the financial summary in the report."},
	{1, 2, "The new feature looks good, but needs more testing."},
	{2, 3, "Documentation is up to date with the latest changes."},
	{3, 0, "Found a critical bug in the login module."},
}

// Seed inserts the demo dataset in one transaction.
func Seed(ctx context.Context, db *gorm.DB, hash HashFunc, now time.Time) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := make([]user.User, 0, len(seedUsers))
		for _, su := range seedUsers {
			hashed, err := hash(su.password)
			if err != nil {
				return fmt.Errorf("failed to hash password for %s: %w", su.email, err)
			}
			u := user.User{Name: su.name, Email: su.email, PasswordHash: hashed, IsAdmin: su.admin}
			if err := tx.Create(&u).Error; err != nil {
				return fmt.Errorf("failed to seed user %s: %w", su.email, err)
			}
			users = append(users, u)
		}

		categories := make([]task.Category, 0, len(seedCategories))
		for _, label := range seedCategories {
			c := task.Category{Label: label}
			if err := tx.Create(&c).Error; err != nil {
				return fmt.Errorf("failed to seed category %s: %w", label, err)
			}
			categories = append(categories, c)
		}

		tasks := make([]task.Task, 0, len(seedTasks))
		for _, st := range seedTasks {
			t := task.Task{
				Title:       st.title,
				Description: st.description,
				DueDate:     task.Today(now),
				Status:      st.status,
				Priority:    st.priority,
				UserID:      users[st.owner].ID,
				CategoryID:  categories[st.category].ID,
			}
			if err := tx.Create(&t).Error; err != nil {
				return fmt.Errorf("failed to seed task %s: %w", st.title, err)
			}
			tasks = append(tasks, t)
		}

		for _, sc := range seedComments {
			c := task.Comment{
				Content:   sc.content,
				Timestamp: now.UTC(),
				UserID:    users[sc.author].ID,
				TaskID:    tasks[sc.task].ID,
			}
			if err := tx.Create(&c).Error; err != nil {
				return fmt.Errorf("failed to seed comment: %w", err)
			}
		}
		return nil
	})
}
