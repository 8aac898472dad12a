package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/communityconnect/volunteer-api-go/pkg/models"
)

// MatchingInput is a self-contained matching payload for stateless requests
type MatchingInput struct {
	Volunteers []models.VolunteerProfile `json:"volunteers"`
	Events     []models.EventRecord      `json:"events"`
}

// PreviewMatches runs the suggestion engine over a posted payload without
// touching the store, so callers can test rosters before importing them
func (h *Handler) PreviewMatches(c *gin.Context) {
	var input MatchingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	candidates, err := h.Matcher.Suggest(input.Volunteers, input.Events)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.RecordUsage(c, len(input.Events), len(input.Volunteers))

	c.JSON(http.StatusOK, gin.H{"matches": candidates})
}

// ValidateInput handles the JSON-based validation request
func (h *Handler) ValidateInput(c *gin.Context) {
	var input MatchingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"valid": false,
			"error": err.Error(),
		})
		return
	}

	// Basic validation of data structures
	if len(input.Volunteers) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"valid": false,
			"error": "At least one volunteer is required",
		})
		return
	}

	if len(input.Events) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"valid": false,
			"error": "At least one event is required",
		})
		return
	}

	// Check for duplicate IDs
	volIDs := make(map[string]bool)
	for _, v := range input.Volunteers {
		if volIDs[v.ID] {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Duplicate volunteer ID: " + v.ID})
			return
		}
		volIDs[v.ID] = true
	}

	eventIDs := make(map[string]bool)
	for _, e := range input.Events {
		if eventIDs[e.ID] {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Duplicate event ID: " + e.ID})
			return
		}
		eventIDs[e.ID] = true
	}

	// Incomplete profiles and non-upcoming events would be rejected by the
	// matcher, so report them here where the caller can fix the payload
	incomplete := 0
	for _, v := range input.Volunteers {
		if !v.Complete() {
			incomplete++
		}
	}
	notUpcoming := 0
	for _, e := range input.Events {
		if e.Status != models.StatusUpcoming {
			notUpcoming++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": incomplete == 0 && notUpcoming == 0,
		"stats": gin.H{
			"volunteer_count":     len(input.Volunteers),
			"event_count":         len(input.Events),
			"incomplete_profiles": incomplete,
			"non_upcoming_events": notUpcoming,
		},
	})
}
