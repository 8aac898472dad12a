package matching

import (
	"errors"
	"fmt"
	"sort"

	"github.com/communityconnect/volunteer-api-go/pkg/models"
)

var (
	// ErrIncompleteProfile is returned when Suggest is handed a volunteer
	// that is not eligible for matching.
	ErrIncompleteProfile = errors.New("volunteer profile is incomplete")

	// ErrEventNotUpcoming is returned when Suggest is handed an event that
	// is not in the upcoming state.
	ErrEventNotUpcoming = errors.New("event is not upcoming")
)

// Suggest scores every (volunteer, event) pair where the volunteer is not
// already assigned, drops candidates scoring at or below MinScore, sorts the
// rest by score descending and truncates to MaxSuggestions.
//
// Callers must supply complete profiles and upcoming events; anything else
// is a contract violation and fails fast instead of silently producing
// wrong scores.
//
// Ties are broken by original iteration order, volunteer-major then
// event-minor, via a stable sort. The pass is O(len(volunteers) *
// len(events)); inputs are sized for an administrator's working set, so no
// indexing is attempted.
func (m *Matcher) Suggest(volunteers []models.VolunteerProfile, events []models.EventRecord) ([]models.MatchCandidate, error) {
	for _, v := range volunteers {
		if !v.Complete() {
			return nil, fmt.Errorf("%w: %s", ErrIncompleteProfile, v.ID)
		}
	}
	for _, e := range events {
		if e.Status != models.StatusUpcoming {
			return nil, fmt.Errorf("%w: %s is %s", ErrEventNotUpcoming, e.ID, e.Status)
		}
	}

	var candidates []models.MatchCandidate
	for _, v := range volunteers {
		for _, e := range events {
			if e.HasVolunteer(v.ID) {
				continue
			}
			score, reasons := m.Score(v, e)
			if score <= m.cfg.MinScore {
				continue
			}
			candidates = append(candidates, models.MatchCandidate{
				VolunteerID:   v.ID,
				VolunteerName: v.FullName,
				EventID:       e.ID,
				EventName:     e.Name,
				Score:         score,
				Reasons:       reasons,
			})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	if len(candidates) > m.cfg.MaxSuggestions {
		candidates = candidates[:m.cfg.MaxSuggestions]
	}
	return candidates, nil
}
