package services

import (
	"strings"
	"time"
)

// ScheduleWindow is the canonical UTC open/close pair for a quiz.
// End is always strictly after Start.
type ScheduleWindow struct {
	Start time.Time
	End   time.Time
}

// ScheduleInput is either a pair of explicit instants or a calendar date
// plus two HH:MM strings.
type ScheduleInput struct {
	StartInstant string // RFC3339; used verbatim with EndInstant when both parse
	EndInstant   string
	Date         string // YYYY-MM-DD, or RFC3339 whose date part is used
	StartTime    string // HH:MM
	EndTime      string // HH:MM
}

// NormalizeSchedule computes the quiz window. When the composed end does
// not land strictly after the start the end rolls forward 24 hours, which
// covers windows crossing midnight (22:00-02:00).
func NormalizeSchedule(in ScheduleInput) (*ScheduleWindow, error) {
	if in.StartInstant != "" && in.EndInstant != "" {
		start, err1 := time.Parse(time.RFC3339, in.StartInstant)
		end, err2 := time.Parse(time.RFC3339, in.EndInstant)
		if err1 == nil && err2 == nil {
			if !end.After(start) {
				return nil, validationErrorf("end instant %q is not after start instant %q", in.EndInstant, in.StartInstant)
			}
			return &ScheduleWindow{Start: start.UTC(), End: end.UTC()}, nil
		}
	}

	day, err := parseQuizDate(in.Date)
	if err != nil {
		return nil, err
	}
	return ComposeWindow(day, in.StartTime, in.EndTime)
}

// ComposeWindow builds the window from a day (UTC midnight) and two HH:MM
// strings. The 24h rollover is unconditional: it only guarantees End > Start,
// it does not judge whether the resulting gap is reasonable.
func ComposeWindow(day time.Time, startTime, endTime string) (*ScheduleWindow, error) {
	start, err := composeInstant(day, startTime)
	if err != nil {
		return nil, validationErrorf("invalid start time %q", startTime)
	}
	end, err := composeInstant(day, endTime)
	if err != nil {
		return nil, validationErrorf("invalid end time %q", endTime)
	}
	if !end.After(start) {
		end = end.Add(24 * time.Hour)
	}
	return &ScheduleWindow{Start: start, End: end}, nil
}

// parseQuizDate normalizes a date string to UTC midnight of that date.
func parseQuizDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, validationErrorf("invalid quiz date %q", value)
}

func composeInstant(day time.Time, hhmm string) (time.Time, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(hhmm))
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}
