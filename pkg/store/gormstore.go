package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/communityconnect/volunteer-api-go/pkg/models"
)

// GormStore implements Store on top of the shared gorm connection.
type GormStore struct {
	DB *gorm.DB
}

// NewGormStore wraps an initialized gorm connection
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) FetchAllEvents(ctx context.Context) ([]models.EventRecord, error) {
	var events []models.EventRecord
	if err := s.DB.WithContext(ctx).Find(&events).Error; err != nil {
		return nil, fmt.Errorf("fetch events: %w", err)
	}
	return events, nil
}

func (s *GormStore) FetchUpcomingEvents(ctx context.Context) ([]models.EventRecord, error) {
	var events []models.EventRecord
	if err := s.DB.WithContext(ctx).Where("status = ?", models.StatusUpcoming).Find(&events).Error; err != nil {
		return nil, fmt.Errorf("fetch upcoming events: %w", err)
	}
	return events, nil
}

func (s *GormStore) FetchEventsBefore(ctx context.Context, t time.Time) ([]models.EventRecord, error) {
	var events []models.EventRecord
	if err := s.DB.WithContext(ctx).Where("date < ?", t).Find(&events).Error; err != nil {
		return nil, fmt.Errorf("fetch past events: %w", err)
	}
	return events, nil
}

func (s *GormStore) GetEvent(ctx context.Context, id string) (models.EventRecord, error) {
	var event models.EventRecord
	err := s.DB.WithContext(ctx).First(&event, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.EventRecord{}, fmt.Errorf("event %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.EventRecord{}, fmt.Errorf("get event %s: %w", id, err)
	}
	return event, nil
}

func (s *GormStore) CreateEvent(ctx context.Context, e models.EventRecord) error {
	if err := s.DB.WithContext(ctx).Create(&e).Error; err != nil {
		return fmt.Errorf("create event %s: %w", e.ID, err)
	}
	return nil
}

// AppendVolunteerToEvent runs a read-modify-write inside a transaction so
// concurrent accepts of the same match cannot introduce a duplicate.
func (s *GormStore) AppendVolunteerToEvent(ctx context.Context, eventID, volunteerID string) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event models.EventRecord
		if err := tx.First(&event, "id = ?", eventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if event.HasVolunteer(volunteerID) {
			return nil
		}
		event.AssignedVolunteers = append(event.AssignedVolunteers, volunteerID)
		return tx.Model(&models.EventRecord{}).
			Where("id = ?", eventID).
			Update("assigned_volunteers", event.AssignedVolunteers).Error
	})
	if err != nil {
		return fmt.Errorf("append volunteer %s to event %s: %w", volunteerID, eventID, err)
	}
	return nil
}

func (s *GormStore) UpdateEventStatus(ctx context.Context, eventID string, status models.EventStatus) error {
	res := s.DB.WithContext(ctx).Model(&models.EventRecord{}).
		Where("id = ?", eventID).
		Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("update event %s status: %w", eventID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("event %s: %w", eventID, ErrNotFound)
	}
	return nil
}

func (s *GormStore) FetchAllVolunteers(ctx context.Context) ([]models.VolunteerProfile, error) {
	var volunteers []models.VolunteerProfile
	if err := s.DB.WithContext(ctx).Find(&volunteers).Error; err != nil {
		return nil, fmt.Errorf("fetch volunteers: %w", err)
	}
	return volunteers, nil
}

func (s *GormStore) GetVolunteer(ctx context.Context, id string) (models.VolunteerProfile, error) {
	var v models.VolunteerProfile
	err := s.DB.WithContext(ctx).First(&v, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.VolunteerProfile{}, fmt.Errorf("volunteer %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.VolunteerProfile{}, fmt.Errorf("get volunteer %s: %w", id, err)
	}
	return v, nil
}

func (s *GormStore) CreateVolunteer(ctx context.Context, v models.VolunteerProfile) error {
	if err := s.DB.WithContext(ctx).Create(&v).Error; err != nil {
		return fmt.Errorf("create volunteer %s: %w", v.ID, err)
	}
	return nil
}

// LookupVolunteerName is best-effort: a missing volunteer yields an empty
// name, not an error.
func (s *GormStore) LookupVolunteerName(ctx context.Context, id string) (string, error) {
	var v models.VolunteerProfile
	err := s.DB.WithContext(ctx).Select("full_name").First(&v, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("lookup volunteer %s: %w", id, err)
	}
	return v.FullName, nil
}

func (s *GormStore) HistoryRecordExists(ctx context.Context, eventID, volunteerID string) (bool, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&models.HistoryRecord{}).
		Where("event_id = ? AND volunteer_id = ?", eventID, volunteerID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("history exists check: %w", err)
	}
	return count > 0, nil
}

// CreateHistoryRecord inserts with ON CONFLICT DO NOTHING against the
// (event_id, volunteer_id) unique index, so a concurrent reconcile run
// cannot produce a second record for the pair.
func (s *GormStore) CreateHistoryRecord(ctx context.Context, rec models.HistoryRecord) error {
	err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_id"}, {Name: "volunteer_id"}},
		DoNothing: true,
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("create history record %s/%s: %w", rec.EventID, rec.VolunteerID, err)
	}
	return nil
}

func (s *GormStore) ListHistoryForVolunteer(ctx context.Context, volunteerID string) ([]models.HistoryRecord, error) {
	var records []models.HistoryRecord
	err := s.DB.WithContext(ctx).
		Where("volunteer_id = ?", volunteerID).
		Order("completed_at desc").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list history for %s: %w", volunteerID, err)
	}
	return records, nil
}

func (s *GormStore) UpdateHistoryFeedback(ctx context.Context, id, feedback string, rating *int) error {
	var rec models.HistoryRecord
	err := s.DB.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("history record %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("get history record %s: %w", id, err)
	}
	rec.Feedback = feedback
	if rating != nil {
		rec.Performance.Rating = rating
	}
	if err := s.DB.WithContext(ctx).Save(&rec).Error; err != nil {
		return fmt.Errorf("update history record %s: %w", id, err)
	}
	return nil
}
