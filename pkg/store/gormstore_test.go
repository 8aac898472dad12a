package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/communityconnect/volunteer-api-go/pkg/models"
)

func newTestStore(t *testing.T) *GormStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "store_test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("could not open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.VolunteerProfile{}, &models.EventRecord{}, &models.HistoryRecord{}); err != nil {
		t.Fatalf("could not migrate test database: %v", err)
	}
	return NewGormStore(db)
}

func TestAppendVolunteerToEvent_Idempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	event := models.EventRecord{
		ID:     "e1",
		Name:   "Food Drive",
		Date:   time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC),
		Status: models.StatusUpcoming,
	}
	if err := s.CreateEvent(ctx, event); err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := s.AppendVolunteerToEvent(ctx, "e1", "v1"); err != nil {
			t.Fatalf("AppendVolunteerToEvent failed: %v", err)
		}
	}
	if err := s.AppendVolunteerToEvent(ctx, "e1", "v2"); err != nil {
		t.Fatalf("AppendVolunteerToEvent failed: %v", err)
	}

	got, err := s.GetEvent(ctx, "e1")
	if err != nil {
		t.Fatalf("GetEvent failed: %v", err)
	}
	if len(got.AssignedVolunteers) != 2 {
		t.Errorf("Expected 2 assigned volunteers, got %v", got.AssignedVolunteers)
	}
	if !got.HasVolunteer("v1") || !got.HasVolunteer("v2") {
		t.Errorf("Missing volunteers in %v", got.AssignedVolunteers)
	}
}

func TestAppendVolunteerToEvent_MissingEvent(t *testing.T) {
	s := newTestStore(t)

	err := s.AppendVolunteerToEvent(context.Background(), "nope", "v1")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestCreateHistoryRecord_ConflictIgnored(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := models.HistoryRecord{
		ID: "h1", EventID: "e1", VolunteerID: "v1",
		CompletedAt: time.Now(), VolunteerName: "Alice",
	}
	second := models.HistoryRecord{
		ID: "h2", EventID: "e1", VolunteerID: "v1",
		CompletedAt: time.Now(), VolunteerName: "Alice",
	}

	if err := s.CreateHistoryRecord(ctx, first); err != nil {
		t.Fatalf("First create failed: %v", err)
	}
	if err := s.CreateHistoryRecord(ctx, second); err != nil {
		t.Fatalf("Conflicting create should be a no-op, got: %v", err)
	}

	exists, err := s.HistoryRecordExists(ctx, "e1", "v1")
	if err != nil {
		t.Fatalf("HistoryRecordExists failed: %v", err)
	}
	if !exists {
		t.Fatal("Expected record to exist")
	}

	records, err := s.ListHistoryForVolunteer(ctx, "v1")
	if err != nil {
		t.Fatalf("ListHistoryForVolunteer failed: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("Expected exactly 1 record, got %d", len(records))
	}
	if records[0].ID != "h1" {
		t.Errorf("Original record was replaced: %+v", records[0])
	}
}

func TestFetchEventsBefore_StrictCutoff(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	cutoff := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	past := models.EventRecord{ID: "past", Name: "Past", Date: cutoff.Add(-time.Hour), Status: models.StatusUpcoming}
	future := models.EventRecord{ID: "future", Name: "Future", Date: cutoff.Add(time.Hour), Status: models.StatusUpcoming}
	for _, e := range []models.EventRecord{past, future} {
		if err := s.CreateEvent(ctx, e); err != nil {
			t.Fatalf("CreateEvent failed: %v", err)
		}
	}

	events, err := s.FetchEventsBefore(ctx, cutoff)
	if err != nil {
		t.Fatalf("FetchEventsBefore failed: %v", err)
	}
	if len(events) != 1 || events[0].ID != "past" {
		t.Errorf("Expected only the past event, got %v", events)
	}
}

func TestLookupVolunteerName_BestEffort(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	v := models.VolunteerProfile{
		ID:       "v1",
		FullName: "Alice",
		Skills:   models.StringList{"Teaching"},
		Location: models.Location{Address: "1 Main St"},
	}
	if err := s.CreateVolunteer(ctx, v); err != nil {
		t.Fatalf("CreateVolunteer failed: %v", err)
	}

	name, err := s.LookupVolunteerName(ctx, "v1")
	if err != nil || name != "Alice" {
		t.Errorf("Expected (Alice, nil), got (%q, %v)", name, err)
	}

	name, err = s.LookupVolunteerName(ctx, "missing")
	if err != nil {
		t.Errorf("Missing volunteer must not be an error, got %v", err)
	}
	if name != "" {
		t.Errorf("Expected empty name for missing volunteer, got %q", name)
	}
}

func TestUpdateHistoryFeedback(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec := models.HistoryRecord{ID: "h1", EventID: "e1", VolunteerID: "v1", CompletedAt: time.Now()}
	if err := s.CreateHistoryRecord(ctx, rec); err != nil {
		t.Fatalf("CreateHistoryRecord failed: %v", err)
	}

	rating := 5
	if err := s.UpdateHistoryFeedback(ctx, "h1", "Great work", &rating); err != nil {
		t.Fatalf("UpdateHistoryFeedback failed: %v", err)
	}

	records, err := s.ListHistoryForVolunteer(ctx, "v1")
	if err != nil {
		t.Fatalf("ListHistoryForVolunteer failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	if records[0].Feedback != "Great work" {
		t.Errorf("Feedback not stored: %+v", records[0])
	}
	if records[0].Performance.Rating == nil || *records[0].Performance.Rating != 5 {
		t.Errorf("Rating not stored: %+v", records[0].Performance)
	}

	if err := s.UpdateHistoryFeedback(ctx, "missing", "x", nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing record, got %v", err)
	}
}
