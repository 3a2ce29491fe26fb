package models

import "strings"

// Weekdays lists the schedule keys in display order.
var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

// Day returns the WorkoutDay for a weekday key (case-insensitive).
func (w *Workouts) Day(key string) (*WorkoutDay, bool) {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "monday":
		return &w.Monday, true
	case "tuesday":
		return &w.Tuesday, true
	case "wednesday":
		return &w.Wednesday, true
	case "thursday":
		return &w.Thursday, true
	case "friday":
		return &w.Friday, true
	case "saturday":
		return &w.Saturday, true
	}
	return nil, false
}

// ScheduleEntry is the one-line summary of a training day.
type ScheduleEntry struct {
	Key       string `json:"key"`
	Day       string `json:"day"`
	Type      string `json:"type"`
	Focus     string `json:"focus"`
	Exercises int    `json:"exercises"`
}

// Schedule summarizes the week in Weekdays order.
func (w *Workouts) Schedule() []ScheduleEntry {
	out := make([]ScheduleEntry, 0, len(Weekdays))
	for _, key := range Weekdays {
		d, _ := w.Day(key)
		out = append(out, ScheduleEntry{
			Key:       key,
			Day:       d.Day,
			Type:      d.Type,
			Focus:     d.Focus,
			Exercises: len(d.Exercises),
		})
	}
	return out
}
