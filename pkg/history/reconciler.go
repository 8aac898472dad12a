package history

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/communityconnect/volunteer-api-go/pkg/models"
	"github.com/communityconnect/volunteer-api-go/pkg/notify"
)

// Store captures the persistence interactions the reconciler needs.
type Store interface {
	FetchEventsBefore(ctx context.Context, t time.Time) ([]models.EventRecord, error)
	LookupVolunteerName(ctx context.Context, id string) (string, error)
	HistoryRecordExists(ctx context.Context, eventID, volunteerID string) (bool, error)
	CreateHistoryRecord(ctx context.Context, rec models.HistoryRecord) error
	UpdateEventStatus(ctx context.Context, eventID string, status models.EventStatus) error
}

// Report summarizes one reconcile pass.
type Report struct {
	EventsExamined  int `json:"events_examined"`
	EventsCompleted int `json:"events_completed"`
	RecordsCreated  int `json:"records_created"`
	Errors          int `json:"errors"`
}

// Reconciler closes out events whose scheduled time has passed: it
// materializes exactly one history record per (event, assigned volunteer)
// pair and moves the event to completed. Safe to re-run at any frequency.
type Reconciler struct {
	store    Store
	notifier notify.Notifier
	logger   *slog.Logger
	newID    func() string
	now      func() time.Time
}

// NewReconciler wires dependencies for the reconcile job. newID and now may
// be nil, in which case uuid generation and wall-clock time are used.
func NewReconciler(store Store, notifier notify.Notifier, logger *slog.Logger, newID func() string, now func() time.Time) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	if newID == nil {
		newID = uuid.NewString
	}
	if now == nil {
		now = time.Now
	}
	return &Reconciler{
		store:    store,
		notifier: notifier,
		logger:   logger,
		newID:    newID,
		now:      now,
	}
}

// Reconcile scans events scheduled strictly before now and processes each
// assigned volunteer sequentially. Errors from a single volunteer or event
// are logged and counted but never abort the pass; only a failed initial
// scan or a done context stops it. Cancelled events are skipped entirely:
// they never generate history and never flip to completed.
func (r *Reconciler) Reconcile(ctx context.Context) (Report, error) {
	now := r.now()

	events, err := r.store.FetchEventsBefore(ctx, now)
	if err != nil {
		return Report{}, fmt.Errorf("scan past events: %w", err)
	}

	var rep Report
	for _, event := range events {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		if event.Status == models.StatusCancelled {
			continue
		}
		rep.EventsExamined++

		for _, volunteerID := range event.AssignedVolunteers {
			created, err := r.materialize(ctx, event, volunteerID, now)
			if err != nil {
				rep.Errors++
				r.logger.Error("history record failed",
					"event", event.ID, "volunteer", volunteerID, "error", err)
				continue
			}
			if created {
				rep.RecordsCreated++
			}
		}

		if event.Status == models.StatusCompleted {
			continue
		}
		if err := r.store.UpdateEventStatus(ctx, event.ID, models.StatusCompleted); err != nil {
			rep.Errors++
			r.logger.Error("event completion failed", "event", event.ID, "error", err)
			continue
		}
		rep.EventsCompleted++

		if r.notifier != nil {
			if err := r.notifier.EventCompleted(ctx, event.ID, event.AssignedVolunteers); err != nil {
				r.logger.Warn("completion notification failed", "event", event.ID, "error", err)
			}
		}
	}
	return rep, nil
}

// materialize ensures a history record exists for the pair. Reports whether
// a new record was created.
func (r *Reconciler) materialize(ctx context.Context, event models.EventRecord, volunteerID string, now time.Time) (bool, error) {
	// Best-effort name lookup; a missing volunteer gets an empty name
	// rather than failing the pair.
	name, err := r.store.LookupVolunteerName(ctx, volunteerID)
	if err != nil {
		r.logger.Warn("volunteer name lookup failed", "volunteer", volunteerID, "error", err)
		name = ""
	}

	exists, err := r.store.HistoryRecordExists(ctx, event.ID, volunteerID)
	if err != nil {
		return false, fmt.Errorf("existence check: %w", err)
	}
	if exists {
		return false, nil
	}

	rec := models.HistoryRecord{
		ID:            r.newID(),
		EventID:       event.ID,
		VolunteerID:   volunteerID,
		CompletedAt:   now,
		Feedback:      "",
		Performance:   models.PerformanceReport{},
		VolunteerName: name,
	}
	if err := r.store.CreateHistoryRecord(ctx, rec); err != nil {
		return false, fmt.Errorf("create record: %w", err)
	}
	return true, nil
}
