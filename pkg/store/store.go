package store

import (
	"context"
	"errors"
	"time"

	"github.com/communityconnect/volunteer-api-go/pkg/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// EventStore is the event side of the document store.
type EventStore interface {
	FetchAllEvents(ctx context.Context) ([]models.EventRecord, error)
	FetchUpcomingEvents(ctx context.Context) ([]models.EventRecord, error)
	// FetchEventsBefore returns events scheduled strictly before t.
	FetchEventsBefore(ctx context.Context, t time.Time) ([]models.EventRecord, error)
	GetEvent(ctx context.Context, id string) (models.EventRecord, error)
	CreateEvent(ctx context.Context, e models.EventRecord) error
	// AppendVolunteerToEvent adds the volunteer to the event's assignment
	// list. Appending an already-assigned volunteer is a no-op.
	AppendVolunteerToEvent(ctx context.Context, eventID, volunteerID string) error
	UpdateEventStatus(ctx context.Context, eventID string, status models.EventStatus) error
}

// VolunteerStore is the volunteer side of the document store.
type VolunteerStore interface {
	FetchAllVolunteers(ctx context.Context) ([]models.VolunteerProfile, error)
	GetVolunteer(ctx context.Context, id string) (models.VolunteerProfile, error)
	CreateVolunteer(ctx context.Context, v models.VolunteerProfile) error
	// LookupVolunteerName returns the volunteer's display name, or an empty
	// string without error when the volunteer does not exist.
	LookupVolunteerName(ctx context.Context, id string) (string, error)
}

// HistoryStore manages participation history records.
type HistoryStore interface {
	HistoryRecordExists(ctx context.Context, eventID, volunteerID string) (bool, error)
	CreateHistoryRecord(ctx context.Context, rec models.HistoryRecord) error
	ListHistoryForVolunteer(ctx context.Context, volunteerID string) ([]models.HistoryRecord, error)
	UpdateHistoryFeedback(ctx context.Context, id, feedback string, rating *int) error
}

// Store bundles all three collaborator interfaces.
type Store interface {
	EventStore
	VolunteerStore
	HistoryStore
}
