package events

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"
)

// UserUpdatedEvent is emitted after a user changes their profile. Fields
// names the columns that changed ("name", "password").
type UserUpdatedEvent struct {
	UserID    uint      `json:"user_id"`
	Name      string    `json:"name"`
	Fields    []string  `json:"fields"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Renamed reports whether the display name changed.
func (e UserUpdatedEvent) Renamed() bool {
	for _, f := range e.Fields {
		if f == "name" {
			return true
		}
	}
	return false
}

// UserUpdatedV1 subject: events.auth.v1.user-updated
var UserUpdatedV1 = helper.EventDefinition[UserUpdatedEvent](
	"auth", "UserUpdated", "v1",
)
