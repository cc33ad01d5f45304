package task

import (
	"errors"
	"testing"
	"time"
)

func TestValidateTitle(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		wantErr bool
	}{
		{"two characters", "ab", false},
		{"letters digits spaces", "Fix Bugs 2", false},
		{"single character", "a", true},
		{"empty", "", true},
		{"punctuation", "Fix bugs!", true},
		{"unicode letter", "Café", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTitle(tt.title)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateTitle(%q) error = %v, wantErr %v", tt.title, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidTitle) {
				t.Errorf("expected ErrInvalidTitle, got %v", err)
			}
		})
	}
}

func TestParsePriority(t *testing.T) {
	for _, p := range Priorities {
		got, err := ParsePriority(string(p))
		if err != nil {
			t.Errorf("ParsePriority(%q) unexpected error: %v", p, err)
		}
		if got != p {
			t.Errorf("ParsePriority(%q) = %q", p, got)
		}
	}

	for _, bad := range []string{"", "Urgent", "low", "HIGH"} {
		if _, err := ParsePriority(bad); !errors.Is(err, ErrInvalidPriority) {
			t.Errorf("ParsePriority(%q) error = %v, want ErrInvalidPriority", bad, err)
		}
	}
}

func TestNormalizeLabel(t *testing.T) {
	got, err := NormalizeLabel("  Work  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Work" {
		t.Errorf("NormalizeLabel = %q, want %q", got, "Work")
	}

	if _, err := NormalizeLabel("   "); !errors.Is(err, ErrInvalidLabel) {
		t.Errorf("expected ErrInvalidLabel, got %v", err)
	}
}

func TestParseTrackingTime(t *testing.T) {
	got, err := ParseTrackingTime("01/03/24 09:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseTrackingTime = %v, want %v", got, want)
	}

	for _, bad := range []string{"2024-03-01 09:00", "32/01/24 09:00", "01/03/24", "garbage"} {
		if _, err := ParseTrackingTime(bad); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("ParseTrackingTime(%q) error = %v, want ErrInvalidDate", bad, err)
		}
	}
}

func TestActualHours(t *testing.T) {
	start := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		finished time.Time
		want     float64
	}{
		{"two and a half hours", start.Add(150 * time.Minute), 2.5},
		{"rounded to two decimals", start.Add(10 * time.Minute), 0.17},
		{"zero", start, 0},
		{"finished before started", start.Add(-90 * time.Minute), -1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ActualHours(start, tt.finished); got != tt.want {
				t.Errorf("ActualHours = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTaskTrackingRecompute(t *testing.T) {
	start := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	finish := time.Date(2024, time.March, 1, 11, 30, 0, 0, time.UTC)

	tt := &TaskTracking{StartedAt: &start}
	tt.Recompute()
	if tt.ActualHours != nil {
		t.Fatalf("expected no actual hours while open, got %v", *tt.ActualHours)
	}
	if tt.IsClosed() {
		t.Error("expected tracking to be open")
	}

	tt.FinishedAt = &finish
	tt.Recompute()
	if tt.ActualHours == nil || *tt.ActualHours != 2.5 {
		t.Fatalf("expected actual hours 2.5, got %v", tt.ActualHours)
	}

	view := tt.ToView()
	if view.State != "closed" {
		t.Errorf("State = %q, want closed", view.State)
	}
	if view.StartedAt == nil || *view.StartedAt != "01/03/24 09:00" {
		t.Errorf("StartedAt = %v", view.StartedAt)
	}
}

func TestToday(t *testing.T) {
	now := time.Date(2024, time.March, 1, 23, 59, 0, 0, time.UTC)
	got := Today(now)
	if got.Format(DueDateLayout) != "2024-03-01" || got.Hour() != 0 {
		t.Errorf("Today = %v", got)
	}
}
