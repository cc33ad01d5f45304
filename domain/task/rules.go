package task

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
)

// Wire formats for dates exchanged with clients.
const (
	DueDateLayout   = "2006-01-02"
	TimestampLayout = "2006-01-02 15:04:05"
	TrackingLayout  = "02/01/06 15:04"
)

// Validation errors. Callers wrap them with the offending value.
var (
	ErrInvalidTitle    = errors.New("invalid title")
	ErrInvalidPriority = errors.New("invalid priority")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidLabel    = errors.New("invalid label")
)

var titlePattern = regexp.MustCompile(`^[A-Za-z0-9 ]+$`)

// ValidateTitle checks that title has at least two characters drawn from
// letters, digits and spaces.
func ValidateTitle(title string) error {
	if len(title) < 2 || !titlePattern.MatchString(title) {
		return fmt.Errorf("%w: title must be at least 2 letters, digits or spaces", ErrInvalidTitle)
	}
	return nil
}

// ParsePriority converts s into a Priority, rejecting values outside the enum.
func ParsePriority(s string) (Priority, error) {
	for _, p := range Priorities {
		if string(p) == s {
			return p, nil
		}
	}
	names := make([]string, len(Priorities))
	for i, p := range Priorities {
		names[i] = string(p)
	}
	return "", fmt.Errorf("%w: %q is not one of %s", ErrInvalidPriority, s, strings.Join(names, ", "))
}

// NormalizeLabel trims a category label and rejects empty results.
func NormalizeLabel(label string) (string, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return "", fmt.Errorf("%w: label is required", ErrInvalidLabel)
	}
	return label, nil
}

// Today returns the calendar date of now as midnight UTC.
func Today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseTrackingTime parses a tracking timestamp in DD/MM/YY HH:MM form.
func ParseTrackingTime(s string) (time.Time, error) {
	t, err := time.Parse(TrackingLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q does not match DD/MM/YY HH:MM", ErrInvalidDate, s)
	}
	return t, nil
}

// ActualHours returns the elapsed hours between started and finished,
// rounded to two decimals. It is negative when finished precedes started.
func ActualHours(started, finished time.Time) float64 {
	hours := finished.Sub(started).Hours()
	return math.Round(hours*100) / 100
}

// Recompute refreshes ActualHours from the timestamps. It is cleared while
// either timestamp is missing.
func (tt *TaskTracking) Recompute() {
	if tt.StartedAt == nil || tt.FinishedAt == nil {
		tt.ActualHours = nil
		return
	}
	hours := ActualHours(*tt.StartedAt, *tt.FinishedAt)
	tt.ActualHours = &hours
}

// IsClosed reports whether the tracking record has been finished.
func (tt *TaskTracking) IsClosed() bool {
	return tt.FinishedAt != nil
}
