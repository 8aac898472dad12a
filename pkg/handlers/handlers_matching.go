package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/communityconnect/volunteer-api-go/pkg/models"
	"github.com/communityconnect/volunteer-api-go/pkg/store"
)

// matchRequest selects one volunteer and one event by id
type matchRequest struct {
	VolunteerID string `json:"volunteer_id" binding:"required"`
	EventID     string `json:"event_id" binding:"required"`
}

// CreateVolunteer stores a new volunteer profile
func (h *Handler) CreateVolunteer(c *gin.Context) {
	var v models.VolunteerProfile
	if err := c.ShouldBindJSON(&v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	if err := h.Store.CreateVolunteer(c.Request.Context(), v); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create volunteer"})
		return
	}
	c.JSON(http.StatusCreated, v)
}

// ListVolunteers returns all volunteer profiles
func (h *Handler) ListVolunteers(c *gin.Context) {
	volunteers, err := h.Store.FetchAllVolunteers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch volunteers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"volunteers": volunteers})
}

// CreateEvent stores a new event record
func (h *Handler) CreateEvent(c *gin.Context) {
	var e models.EventRecord
	if err := c.ShouldBindJSON(&e); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Status == "" {
		e.Status = models.StatusUpcoming
	}
	if e.Urgency == "" {
		e.Urgency = models.UrgencyMedium
	}
	if err := h.Store.CreateEvent(c.Request.Context(), e); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create event"})
		return
	}
	c.JSON(http.StatusCreated, e)
}

// ListEvents returns all event records
func (h *Handler) ListEvents(c *gin.Context) {
	events, err := h.Store.FetchAllEvents(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch events"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// SuggestMatches loads volunteers and upcoming events from the store and
// returns the ranked candidate list
func (h *Handler) SuggestMatches(c *gin.Context) {
	ctx := c.Request.Context()

	volunteers, err := h.Store.FetchAllVolunteers(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch volunteers"})
		return
	}
	events, err := h.Store.FetchUpcomingEvents(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch events"})
		return
	}

	// Only complete profiles are eligible for matching
	eligible := volunteers[:0:0]
	for _, v := range volunteers {
		if v.Complete() {
			eligible = append(eligible, v)
		}
	}

	candidates, err := h.Matcher.Suggest(eligible, events)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.RecordUsage(c, len(events), len(eligible))

	c.JSON(http.StatusOK, gin.H{
		"matches": candidates,
		"stats": gin.H{
			"volunteers_considered": len(eligible),
			"events_considered":     len(events),
		},
	})
}

// ScorePair re-scores one administrator-selected volunteer/event pair
func (h *Handler) ScorePair(c *gin.Context) {
	var req matchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	volunteer, err := h.Store.GetVolunteer(ctx, req.VolunteerID)
	if err != nil {
		h.respondStoreError(c, err, "volunteer")
		return
	}
	event, err := h.Store.GetEvent(ctx, req.EventID)
	if err != nil {
		h.respondStoreError(c, err, "event")
		return
	}

	h.RecordUsage(c, 1, 1)

	c.JSON(http.StatusOK, h.Matcher.SuggestOne(volunteer, event))
}

// AcceptMatch assigns the volunteer to the event. Accepting an existing
// assignment is a no-op, so administrators can safely retry.
func (h *Handler) AcceptMatch(c *gin.Context) {
	var req matchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	volunteer, err := h.Store.GetVolunteer(ctx, req.VolunteerID)
	if err != nil {
		h.respondStoreError(c, err, "volunteer")
		return
	}
	event, err := h.Store.GetEvent(ctx, req.EventID)
	if err != nil {
		h.respondStoreError(c, err, "event")
		return
	}
	if event.Status != models.StatusUpcoming {
		c.JSON(http.StatusConflict, gin.H{"error": "Event is not accepting volunteers"})
		return
	}

	if err := h.Store.AppendVolunteerToEvent(ctx, req.EventID, req.VolunteerID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not assign volunteer"})
		return
	}

	candidate := h.Matcher.SuggestOne(volunteer, event)
	if h.Notifier != nil {
		// Notification failures never fail the assignment
		_ = h.Notifier.MatchAccepted(ctx, candidate)
	}

	h.RecordUsage(c, 1, 1)

	c.JSON(http.StatusOK, gin.H{
		"message": "Volunteer assigned",
		"match":   candidate,
	})
}

// TriggerReconcile runs the history reconciliation pass on demand
func (h *Handler) TriggerReconcile(c *gin.Context) {
	ctx := c.Request.Context()
	if h.ReconcileTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.ReconcileTimeout)
		defer cancel()
	}

	report, err := h.Reconciler.Reconcile(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "report": report})
		return
	}
	c.JSON(http.StatusOK, gin.H{"report": report})
}

// ListHistory returns a volunteer's participation history
func (h *Handler) ListHistory(c *gin.Context) {
	volunteerID := c.Param("volunteerId")
	records, err := h.Store.ListHistoryForVolunteer(c.Request.Context(), volunteerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": records})
}

// SubmitFeedback records feedback and a rating on an existing history record
func (h *Handler) SubmitFeedback(c *gin.Context) {
	id := c.Param("id")
	var req struct {
		Feedback string `json:"feedback"`
		Rating   *int   `json:"rating"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rating must be between 1 and 5"})
		return
	}

	if err := h.Store.UpdateHistoryFeedback(c.Request.Context(), id, req.Feedback, req.Rating); err != nil {
		h.respondStoreError(c, err, "history record")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Feedback recorded"})
}

func (h *Handler) respondStoreError(c *gin.Context, err error, what string) {
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": what + " not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch " + what})
}
