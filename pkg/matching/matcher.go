package matching

import (
	"fmt"
	"strings"

	"github.com/communityconnect/volunteer-api-go/pkg/models"
)

// Config holds the scoring weights and suggestion limits
type Config struct {
	SkillWeight     float64 // share of the 100-point scale given to skill overlap
	DayBonus        float64 // added when the volunteer is available on the event day
	CityBonus       float64 // added on an exact city match
	StateBonus      float64 // added on a state match when the city differs
	PreferenceBonus float64 // added when preferences mention the event
	MinScore        float64 // candidates scoring at or below this are dropped
	MaxSuggestions  int     // cap on the ranked suggestion list
}

// DefaultConfig returns the production scoring configuration
func DefaultConfig() Config {
	return Config{
		SkillWeight:     0.7,
		DayBonus:        20,
		CityBonus:       10,
		StateBonus:      5,
		PreferenceBonus: 10,
		MinScore:        50,
		MaxSuggestions:  10,
	}
}

// Matcher scores volunteer/event pairs and produces ranked suggestions.
// It is pure over its inputs; a single Matcher is safe for concurrent use.
type Matcher struct {
	cfg Config
}

// NewMatcher creates a matcher with the given configuration
func NewMatcher(cfg Config) *Matcher {
	return &Matcher{cfg: cfg}
}

// Score computes a compatibility score in [0,100] for one volunteer and one
// event, plus human-readable reasons for each satisfied criterion. Missing
// or empty fields contribute zero for their factor; an event with no
// required skills counts as a full skill match.
func (m *Matcher) Score(v models.VolunteerProfile, e models.EventRecord) (float64, []string) {
	var score float64
	var reasons []string

	// Skill overlap
	if len(e.RequiredSkills) == 0 {
		score += 100 * m.cfg.SkillWeight
	} else {
		have := make(map[string]struct{}, len(v.Skills))
		for _, s := range v.Skills {
			have[s] = struct{}{}
		}
		matched := 0
		for _, s := range e.RequiredSkills {
			if _, ok := have[s]; ok {
				matched++
			}
		}
		pct := float64(matched) / float64(len(e.RequiredSkills)) * 100
		score += pct * m.cfg.SkillWeight
		if matched > 0 {
			reasons = append(reasons, fmt.Sprintf("%.0f%% skills match (%d/%d)", pct, matched, len(e.RequiredSkills)))
		}
	}

	// Day availability
	if v.AvailableOn(models.WeekdayOf(e.Date)) {
		score += m.cfg.DayBonus
		reasons = append(reasons, "Available on event day")
	}

	// Location proximity: exact city beats state, never both
	if e.Location != "" {
		if strings.EqualFold(v.Location.City, e.Location) {
			score += m.cfg.CityBonus
			reasons = append(reasons, "Same location")
		} else if strings.EqualFold(v.Location.State, e.Location) {
			score += m.cfg.StateBonus
			reasons = append(reasons, "Same state")
		}
	}

	// Preference match
	if prefs := strings.ToLower(v.Preferences); prefs != "" {
		nameHit := e.Name != "" && strings.Contains(prefs, strings.ToLower(e.Name))
		descHit := e.Description != "" && strings.Contains(prefs, strings.ToLower(e.Description))
		if nameHit || descHit {
			score += m.cfg.PreferenceBonus
			reasons = append(reasons, "Matches volunteer preferences")
		}
	}

	if score > 100 {
		score = 100
	}
	return score, reasons
}

// SuggestOne scores a single administrator-selected pair. It bypasses the
// threshold and cap and always returns the computed candidate.
func (m *Matcher) SuggestOne(v models.VolunteerProfile, e models.EventRecord) models.MatchCandidate {
	score, reasons := m.Score(v, e)
	return models.MatchCandidate{
		VolunteerID:   v.ID,
		VolunteerName: v.FullName,
		EventID:       e.ID,
		EventName:     e.Name,
		Score:         score,
		Reasons:       reasons,
	}
}
