package api

// RegisterBody is the body of POST /auth/register.
type RegisterBody struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginBody is the body of POST /auth/login.
type LoginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserBody is the body of PUT/PATCH /auth/users.
type UpdateUserBody struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
}

// LabelBody carries a category label.
type LabelBody struct {
	Label string `json:"label"`
}

// CreateTaskBody is the body of POST /tasks/. The category may be given as
// a nested object or as a top-level label.
type CreateTaskBody struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	Category    *LabelBody `json:"category"`
	Label       string     `json:"label"`
}

func (b CreateTaskBody) categoryLabel() string {
	if b.Category != nil && b.Category.Label != "" {
		return b.Category.Label
	}
	return b.Label
}

// UpdateTaskBody is the body of PUT/PATCH /tasks/:id.
type UpdateTaskBody struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
}

// CommentBody is the body of comment create and edit.
type CommentBody struct {
	Content *string `json:"content"`
}

// TrackingBody is the body of tracking create and update. Dates use the
// DD/MM/YY HH:MM layout.
type TrackingBody struct {
	EstimatedHours *float64 `json:"estimated_hours"`
	StartedAt      *string  `json:"started_at"`
	FinishedAt     *string  `json:"finished_at"`
}

// MessageResponse confirms a deletion.
type MessageResponse struct {
	Message string `json:"message"`
}
