package matching

import (
	"reflect"
	"testing"
	"time"

	"github.com/communityconnect/volunteer-api-go/pkg/models"
)

// June 3 2024 is a Monday.
var mondayEvent = time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)

func mondayAvailability() models.AvailabilityMap {
	return models.AvailabilityMap{
		models.Monday: {Start: "09:00", End: "17:00"},
	}
}

func TestScore_PartialSkillsDayAndCity(t *testing.T) {
	m := NewMatcher(DefaultConfig())

	volunteer := models.VolunteerProfile{
		ID:           "v1",
		FullName:     "Alice",
		Skills:       models.StringList{"Teaching", "First Aid"},
		Availability: mondayAvailability(),
		Location:     models.Location{Address: "12 Elm St", City: "Springfield", State: "IL"},
	}
	event := models.EventRecord{
		ID:             "e1",
		Name:           "Literacy Workshop",
		Date:           mondayEvent,
		Location:       "Springfield",
		RequiredSkills: models.StringList{"Teaching", "Cooking"},
		Status:         models.StatusUpcoming,
	}

	score, reasons := m.Score(volunteer, event)

	if score != 65 {
		t.Errorf("Expected score 65, got %v", score)
	}
	want := []string{"50% skills match (1/2)", "Available on event day", "Same location"}
	if !reflect.DeepEqual(reasons, want) {
		t.Errorf("Expected reasons %v, got %v", want, reasons)
	}
}

func TestScore_NothingMatches(t *testing.T) {
	m := NewMatcher(DefaultConfig())

	volunteer := models.VolunteerProfile{
		ID:       "v1",
		FullName: "Bob",
		Skills:   models.StringList{"Gardening"},
		Location: models.Location{Address: "5 Oak Ave", City: "Shelbyville", State: "TX"},
	}
	event := models.EventRecord{
		ID:             "e1",
		Name:           "Clinic Support",
		Date:           mondayEvent,
		Location:       "Springfield",
		RequiredSkills: models.StringList{"Medical"},
		Status:         models.StatusUpcoming,
	}

	score, reasons := m.Score(volunteer, event)

	if score != 0 {
		t.Errorf("Expected score 0, got %v", score)
	}
	if len(reasons) != 0 {
		t.Errorf("Expected no reasons, got %v", reasons)
	}
}

func TestScore_EmptyRequiredSkills(t *testing.T) {
	m := NewMatcher(DefaultConfig())

	event := models.EventRecord{ID: "e1", Name: "Open Day", Date: mondayEvent, Status: models.StatusUpcoming}

	// The skill contribution is a full 70 no matter what skills the
	// volunteer brings.
	for _, skills := range []models.StringList{nil, {"Cooking"}, {"A", "B", "C"}} {
		volunteer := models.VolunteerProfile{ID: "v1", Skills: skills}
		score, reasons := m.Score(volunteer, event)
		if score != 70 {
			t.Errorf("Skills %v: expected score 70, got %v", skills, score)
		}
		if len(reasons) != 0 {
			t.Errorf("Skills %v: expected no reasons, got %v", skills, reasons)
		}
	}
}

func TestScore_CappedAt100(t *testing.T) {
	m := NewMatcher(DefaultConfig())

	volunteer := models.VolunteerProfile{
		ID:           "v1",
		FullName:     "Carol",
		Skills:       models.StringList{"Teaching"},
		Preferences:  "I love the literacy workshop",
		Availability: mondayAvailability(),
		Location:     models.Location{Address: "9 Pine Rd", City: "Springfield", State: "IL"},
	}
	event := models.EventRecord{
		ID:             "e1",
		Name:           "Literacy Workshop",
		Date:           mondayEvent,
		Location:       "Springfield",
		RequiredSkills: models.StringList{"Teaching"},
		Status:         models.StatusUpcoming,
	}

	// 70 + 20 + 10 + 10 = 110 before the cap
	score, _ := m.Score(volunteer, event)
	if score != 100 {
		t.Errorf("Expected capped score 100, got %v", score)
	}
}

func TestScore_StateMatchWhenCityDiffers(t *testing.T) {
	m := NewMatcher(DefaultConfig())

	volunteer := models.VolunteerProfile{
		ID:       "v1",
		Skills:   models.StringList{"Teaching"},
		Location: models.Location{Address: "1 Main St", City: "Shelbyville", State: "illinois"},
	}
	event := models.EventRecord{
		ID:             "e1",
		Name:           "Food Drive",
		Date:           mondayEvent,
		Location:       "Illinois",
		RequiredSkills: models.StringList{"Teaching"},
		Status:         models.StatusUpcoming,
	}

	score, reasons := m.Score(volunteer, event)
	if score != 75 {
		t.Errorf("Expected score 75 (70 skills + 5 state), got %v", score)
	}
	found := false
	for _, r := range reasons {
		if r == "Same state" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected a state reason, got %v", reasons)
	}
}

func TestScore_Deterministic(t *testing.T) {
	m := NewMatcher(DefaultConfig())

	volunteer := models.VolunteerProfile{
		ID:           "v1",
		Skills:       models.StringList{"Teaching", "First Aid"},
		Availability: mondayAvailability(),
		Location:     models.Location{Address: "12 Elm St", City: "Springfield"},
	}
	event := models.EventRecord{
		ID:             "e1",
		Name:           "Literacy Workshop",
		Date:           mondayEvent,
		Location:       "Springfield",
		RequiredSkills: models.StringList{"Teaching", "Cooking"},
		Status:         models.StatusUpcoming,
	}

	score1, reasons1 := m.Score(volunteer, event)
	score2, reasons2 := m.Score(volunteer, event)

	if score1 != score2 || !reflect.DeepEqual(reasons1, reasons2) {
		t.Errorf("Scoring is not deterministic: (%v, %v) vs (%v, %v)", score1, reasons1, score2, reasons2)
	}
}

func TestSuggestOne_BypassesThreshold(t *testing.T) {
	m := NewMatcher(DefaultConfig())

	volunteer := models.VolunteerProfile{ID: "v1", FullName: "Dana", Skills: models.StringList{"Gardening"}}
	event := models.EventRecord{
		ID:             "e1",
		Name:           "Clinic Support",
		Date:           mondayEvent,
		RequiredSkills: models.StringList{"Medical"},
		Status:         models.StatusUpcoming,
	}

	c := m.SuggestOne(volunteer, event)
	if c.Score != 0 {
		t.Errorf("Expected score 0, got %v", c.Score)
	}
	if c.VolunteerID != "v1" || c.EventID != "e1" {
		t.Errorf("Candidate ids not populated: %+v", c)
	}
	if c.VolunteerName != "Dana" || c.EventName != "Clinic Support" {
		t.Errorf("Candidate names not populated: %+v", c)
	}
}
