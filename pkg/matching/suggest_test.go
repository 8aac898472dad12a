package matching

import (
	"errors"
	"testing"

	"github.com/communityconnect/volunteer-api-go/pkg/models"
)

func completeVolunteer(id, name string, skills ...string) models.VolunteerProfile {
	return models.VolunteerProfile{
		ID:       id,
		FullName: name,
		Skills:   skills,
		Location: models.Location{Address: "1 Main St", City: "Springfield", State: "IL"},
	}
}

func upcomingEvent(id, name string, skills ...string) models.EventRecord {
	return models.EventRecord{
		ID:             id,
		Name:           name,
		Date:           mondayEvent,
		Location:       "Springfield",
		RequiredSkills: skills,
		Status:         models.StatusUpcoming,
	}
}

func TestSuggest_ScoreOfExactly50IsExcluded(t *testing.T) {
	m := NewMatcher(DefaultConfig())

	// 1/2 skills (35) + state (5) + preference (10) = exactly 50
	volunteer := models.VolunteerProfile{
		ID:          "v1",
		FullName:    "Eve",
		Skills:      models.StringList{"Teaching"},
		Preferences: "interested in the food drive",
		Location:    models.Location{Address: "2 Oak St", City: "Shelbyville", State: "Illinois"},
	}
	event := models.EventRecord{
		ID:             "e1",
		Name:           "Food Drive",
		Date:           mondayEvent,
		Location:       "Illinois",
		RequiredSkills: models.StringList{"Teaching", "Cooking"},
		Status:         models.StatusUpcoming,
	}

	if score, _ := m.Score(volunteer, event); score != 50 {
		t.Fatalf("Scenario setup broken: expected score 50, got %v", score)
	}

	candidates, err := m.Suggest([]models.VolunteerProfile{volunteer}, []models.EventRecord{event})
	if err != nil {
		t.Fatalf("Suggest returned error: %v", err)
	}
	if len(candidates) != 0 {
		t.Errorf("Expected a score of exactly 50 to be excluded, got %v", candidates)
	}
}

func TestSuggest_SkipsAlreadyAssigned(t *testing.T) {
	m := NewMatcher(DefaultConfig())

	volunteer := completeVolunteer("v1", "Frank", "Teaching")
	event := upcomingEvent("e1", "Literacy Workshop", "Teaching")
	event.AssignedVolunteers = models.StringList{"v1"}

	candidates, err := m.Suggest([]models.VolunteerProfile{volunteer}, []models.EventRecord{event})
	if err != nil {
		t.Fatalf("Suggest returned error: %v", err)
	}
	if len(candidates) != 0 {
		t.Errorf("Expected assigned volunteer to be skipped, got %v", candidates)
	}
}

func TestSuggest_SortedDescendingAndCapped(t *testing.T) {
	m := NewMatcher(DefaultConfig())

	// 6 volunteers x 2 events = 12 pairs, all above the threshold.
	var volunteers []models.VolunteerProfile
	for _, id := range []string{"v1", "v2", "v3", "v4", "v5", "v6"} {
		volunteers = append(volunteers, completeVolunteer(id, "Volunteer "+id, "Teaching"))
	}
	// Full skill match everywhere; the second event adds a city match so its
	// candidates rank higher.
	eventA := upcomingEvent("eA", "Event A", "Teaching")
	eventA.Location = "Nowhere"
	eventB := upcomingEvent("eB", "Event B", "Teaching")

	candidates, err := m.Suggest(volunteers, []models.EventRecord{eventA, eventB})
	if err != nil {
		t.Fatalf("Suggest returned error: %v", err)
	}

	if len(candidates) != 10 {
		t.Fatalf("Expected the list capped at 10, got %d", len(candidates))
	}
	for i := 1; i < len(candidates); i++ {
		if candidates[i].Score > candidates[i-1].Score {
			t.Errorf("Candidates not sorted descending at %d: %v then %v", i, candidates[i-1].Score, candidates[i].Score)
		}
	}
	// All eventB candidates (80) come before eventA candidates (70).
	for i := 0; i < 6; i++ {
		if candidates[i].EventID != "eB" {
			t.Errorf("Expected position %d to be an eB candidate, got %s", i, candidates[i].EventID)
		}
	}
}

func TestSuggest_TieBreakPreservesVolunteerOrder(t *testing.T) {
	m := NewMatcher(DefaultConfig())

	volunteers := []models.VolunteerProfile{
		completeVolunteer("v1", "First", "Teaching"),
		completeVolunteer("v2", "Second", "Teaching"),
	}
	event := upcomingEvent("e1", "Literacy Workshop", "Teaching")

	candidates, err := m.Suggest(volunteers, []models.EventRecord{event})
	if err != nil {
		t.Fatalf("Suggest returned error: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("Expected 2 candidates, got %d", len(candidates))
	}
	if candidates[0].Score != candidates[1].Score {
		t.Fatalf("Scenario setup broken: scores differ (%v, %v)", candidates[0].Score, candidates[1].Score)
	}
	if candidates[0].VolunteerID != "v1" || candidates[1].VolunteerID != "v2" {
		t.Errorf("Tie not broken by input order: got %s then %s", candidates[0].VolunteerID, candidates[1].VolunteerID)
	}
}

func TestSuggest_RejectsIncompleteProfile(t *testing.T) {
	m := NewMatcher(DefaultConfig())

	incomplete := models.VolunteerProfile{ID: "v1", FullName: "No Address", Skills: models.StringList{"Teaching"}}
	event := upcomingEvent("e1", "Literacy Workshop", "Teaching")

	_, err := m.Suggest([]models.VolunteerProfile{incomplete}, []models.EventRecord{event})
	if !errors.Is(err, ErrIncompleteProfile) {
		t.Errorf("Expected ErrIncompleteProfile, got %v", err)
	}
}

func TestSuggest_RejectsNonUpcomingEvent(t *testing.T) {
	m := NewMatcher(DefaultConfig())

	volunteer := completeVolunteer("v1", "Grace", "Teaching")
	event := upcomingEvent("e1", "Literacy Workshop", "Teaching")
	event.Status = models.StatusCompleted

	_, err := m.Suggest([]models.VolunteerProfile{volunteer}, []models.EventRecord{event})
	if !errors.Is(err, ErrEventNotUpcoming) {
		t.Errorf("Expected ErrEventNotUpcoming, got %v", err)
	}
}
