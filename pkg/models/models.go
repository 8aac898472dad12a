package models

import (
	"fmt"
	"strings"
	"time"
)

// Weekday is an explicit day-of-week type for availability lookups.
// Values match time.Weekday numbering (Sunday = 0) but conversions go
// through WeekdayOf so the mapping lives in exactly one place.
type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var weekdayNames = [...]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// WeekdayOf maps a timestamp to its Weekday.
func WeekdayOf(t time.Time) Weekday {
	return Weekday(t.Weekday())
}

func (d Weekday) String() string {
	if d < Sunday || d > Saturday {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// MarshalText lets Weekday serve as a JSON map key ("Monday", "Tuesday", ...).
func (d Weekday) MarshalText() ([]byte, error) {
	if d < Sunday || d > Saturday {
		return nil, fmt.Errorf("invalid weekday %d", int(d))
	}
	return []byte(weekdayNames[d]), nil
}

// UnmarshalText accepts weekday names case-insensitively.
func (d *Weekday) UnmarshalText(text []byte) error {
	name := string(text)
	for i, n := range weekdayNames {
		if strings.EqualFold(n, name) {
			*d = Weekday(i)
			return nil
		}
	}
	return fmt.Errorf("unknown weekday %q", name)
}

// TimeWindow is a wall-clock availability window ("09:00" - "17:00").
type TimeWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// IsSet reports whether both ends of the window are present. A window with
// either end missing counts as unavailable.
func (w TimeWindow) IsSet() bool {
	return w.Start != "" && w.End != ""
}

// Location describes where a volunteer lives.
type Location struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip,omitempty"`
}

// EventStatus is the lifecycle state of an event. Once an event's scheduled
// time has passed it only ever moves forward to StatusCompleted; the
// reconciler never regresses a completed event.
type EventStatus string

const (
	StatusUpcoming   EventStatus = "upcoming"
	StatusInProgress EventStatus = "in-progress"
	StatusCompleted  EventStatus = "completed"
	StatusCancelled  EventStatus = "cancelled"
)

// Urgency is the priority level an administrator assigns to an event.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// VolunteerProfile represents a person available for events
type VolunteerProfile struct {
	ID           string          `gorm:"primaryKey" json:"id"`
	FullName     string          `json:"full_name"`
	Skills       StringList      `gorm:"type:text" json:"skills"`
	Preferences  string          `json:"preferences,omitempty"`
	Availability AvailabilityMap `gorm:"type:text" json:"availability"`
	Location     Location        `gorm:"embedded" json:"location"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Complete reports whether the profile is eligible for matching: a full
// name, an address, and at least one skill.
func (v VolunteerProfile) Complete() bool {
	return v.FullName != "" && v.Location.Address != "" && len(v.Skills) > 0
}

// AvailableOn reports whether the volunteer has a usable window on the day.
func (v VolunteerProfile) AvailableOn(day Weekday) bool {
	return v.Availability[day].IsSet()
}

// EventRecord represents a schedulable activity that needs volunteers
type EventRecord struct {
	ID                 string      `gorm:"primaryKey" json:"id"`
	Name               string      `json:"name"`
	Description        string      `json:"description,omitempty"`
	Date               time.Time   `json:"date"`
	Location           string      `json:"location"`
	RequiredSkills     StringList  `gorm:"type:text" json:"required_skills"`
	Urgency            Urgency     `json:"urgency"`
	RequiredVolunteers int         `json:"required_volunteers"`
	Status             EventStatus `json:"status"`
	AssignedVolunteers StringList  `gorm:"type:text" json:"assigned_volunteers"`
	CreatedAt          time.Time   `json:"created_at"`
}

// HasVolunteer reports whether the volunteer is already assigned.
func (e EventRecord) HasVolunteer(volunteerID string) bool {
	for _, id := range e.AssignedVolunteers {
		if id == volunteerID {
			return true
		}
	}
	return false
}

// MatchCandidate is an ephemeral scored pairing of one volunteer and one
// event. Candidates are produced fresh on every matching pass and never
// persisted.
type MatchCandidate struct {
	VolunteerID   string   `json:"volunteer_id"`
	VolunteerName string   `json:"volunteer_name"`
	EventID       string   `json:"event_id"`
	EventName     string   `json:"event_name"`
	Score         float64  `json:"score"`
	Reasons       []string `json:"reasons"`
}

// PerformanceReport keeps the rating special-cased while leaving room for
// ad-hoc fields added later by the feedback workflow.
type PerformanceReport struct {
	Rating *int              `json:"rating,omitempty"`
	Extra  map[string]string `json:"extra,omitempty"`
}

// HistoryRecord is the durable proof that a volunteer participated in a
// now-past event. Created exactly once per (event, volunteer) pair by the
// reconciler; feedback fields are filled in afterward.
type HistoryRecord struct {
	ID            string            `gorm:"primaryKey" json:"id"`
	EventID       string            `gorm:"uniqueIndex:idx_event_volunteer;not null" json:"event_id"`
	VolunteerID   string            `gorm:"uniqueIndex:idx_event_volunteer;not null" json:"volunteer_id"`
	CompletedAt   time.Time         `json:"completed_at"`
	Feedback      string            `json:"feedback,omitempty"`
	Performance   PerformanceReport `gorm:"type:text" json:"performance"`
	VolunteerName string            `json:"volunteer_name"`
}
