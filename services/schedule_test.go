package services

import (
	"errors"
	"testing"
	"time"
)

func TestNormalizeScheduleComposed(t *testing.T) {
	tests := []struct {
		name      string
		input     ScheduleInput
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "same-day window",
			input:     ScheduleInput{Date: "2025-03-10", StartTime: "09:00", EndTime: "10:30"},
			wantStart: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 3, 10, 10, 30, 0, 0, time.UTC),
		},
		{
			name:      "window crossing midnight rolls end forward",
			input:     ScheduleInput{Date: "2025-03-10", StartTime: "22:00", EndTime: "02:00"},
			wantStart: time.Date(2025, 3, 10, 22, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 3, 11, 2, 0, 0, 0, time.UTC),
		},
		{
			name:      "equal start and end gets a full day",
			input:     ScheduleInput{Date: "2025-03-10", StartTime: "09:00", EndTime: "09:00"},
			wantStart: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC),
		},
		{
			name:      "date given as instant is normalized to its day",
			input:     ScheduleInput{Date: "2025-03-10T15:30:00Z", StartTime: "08:00", EndTime: "09:00"},
			wantStart: time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window, err := NormalizeSchedule(tt.input)
			if err != nil {
				t.Fatalf("NormalizeSchedule: %v", err)
			}
			if !window.Start.Equal(tt.wantStart) {
				t.Errorf("start = %v, want %v", window.Start, tt.wantStart)
			}
			if !window.End.Equal(tt.wantEnd) {
				t.Errorf("end = %v, want %v", window.End, tt.wantEnd)
			}
			if !window.End.After(window.Start) {
				t.Errorf("end %v is not after start %v", window.End, window.Start)
			}
		})
	}
}

func TestNormalizeScheduleMidnightRollover(t *testing.T) {
	window, err := NormalizeSchedule(ScheduleInput{Date: "2025-03-10", StartTime: "22:00", EndTime: "02:00"})
	if err != nil {
		t.Fatalf("NormalizeSchedule: %v", err)
	}

	naiveEnd := time.Date(2025, 3, 10, 2, 0, 0, 0, time.UTC)
	if got := window.End.Sub(naiveEnd); got != 24*time.Hour {
		t.Errorf("end is %v beyond the naive same-day composition, want 24h", got)
	}
	if got := window.End.Sub(window.Start); got != 4*time.Hour {
		t.Errorf("window duration = %v, want 4h", got)
	}
}

func TestNormalizeScheduleExplicitInstants(t *testing.T) {
	input := ScheduleInput{
		StartInstant: "2025-03-10T09:00:00Z",
		EndInstant:   "2025-03-10T11:00:00Z",
		// Composition fields should be ignored when both instants parse.
		Date:      "2024-01-01",
		StartTime: "00:00",
		EndTime:   "00:30",
	}
	window, err := NormalizeSchedule(input)
	if err != nil {
		t.Fatalf("NormalizeSchedule: %v", err)
	}
	if !window.Start.Equal(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v, want explicit instant", window.Start)
	}
	if !window.End.Equal(time.Date(2025, 3, 10, 11, 0, 0, 0, time.UTC)) {
		t.Errorf("end = %v, want explicit instant", window.End)
	}
}

func TestNormalizeScheduleExplicitInstantsMustBeOrdered(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
	}{
		{"reversed instants", "2025-03-10T11:00:00Z", "2025-03-10T09:00:00Z"},
		{"equal instants", "2025-03-10T09:00:00Z", "2025-03-10T09:00:00Z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeSchedule(ScheduleInput{StartInstant: tt.start, EndInstant: tt.end})
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestNormalizeScheduleBadInputs(t *testing.T) {
	tests := []struct {
		name  string
		input ScheduleInput
	}{
		{"garbage date", ScheduleInput{Date: "next tuesday", StartTime: "09:00", EndTime: "10:00"}},
		{"garbage start time", ScheduleInput{Date: "2025-03-10", StartTime: "9am", EndTime: "10:00"}},
		{"garbage end time", ScheduleInput{Date: "2025-03-10", StartTime: "09:00", EndTime: ""}},
		{"broken instants fall back to broken composition", ScheduleInput{StartInstant: "not-a-time", EndInstant: "also-not", Date: "bad"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NormalizeSchedule(tt.input); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
