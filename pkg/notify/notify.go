package notify

import (
	"context"
	"log/slog"

	"github.com/communityconnect/volunteer-api-go/pkg/models"
)

// Notifier publishes coordination events for downstream consumers (push
// dispatch, email digests). It is injected where needed and owns an explicit
// lifecycle: constructed at process start, Closed on shutdown.
type Notifier interface {
	MatchAccepted(ctx context.Context, c models.MatchCandidate) error
	EventCompleted(ctx context.Context, eventID string, volunteerIDs []string) error
	Close() error
}

// LogNotifier writes notifications to the log. Default when no broker is
// configured.
type LogNotifier struct {
	Logger *slog.Logger
}

// NewLogNotifier creates a logging notifier
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{Logger: logger}
}

func (n *LogNotifier) MatchAccepted(ctx context.Context, c models.MatchCandidate) error {
	n.Logger.InfoContext(ctx, "match accepted",
		"volunteer", c.VolunteerID, "event", c.EventID, "score", c.Score)
	return nil
}

func (n *LogNotifier) EventCompleted(ctx context.Context, eventID string, volunteerIDs []string) error {
	n.Logger.InfoContext(ctx, "event completed",
		"event", eventID, "volunteers", len(volunteerIDs))
	return nil
}

func (n *LogNotifier) Close() error { return nil }
