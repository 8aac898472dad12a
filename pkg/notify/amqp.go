package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/communityconnect/volunteer-api-go/pkg/models"
)

const publishTimeout = 5 * time.Second

// message is the wire shape pushed onto the notification queue.
type message struct {
	Type         string   `json:"type"`
	EventID      string   `json:"event_id"`
	EventName    string   `json:"event_name,omitempty"`
	VolunteerID  string   `json:"volunteer_id,omitempty"`
	VolunteerIDs []string `json:"volunteer_ids,omitempty"`
	Score        float64  `json:"score,omitempty"`
	At           string   `json:"at"`
}

// AMQPNotifier publishes notifications to a durable RabbitMQ queue consumed
// by the push-dispatch worker.
type AMQPNotifier struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
}

// NewAMQPNotifier connects to the broker and declares the queue
func NewAMQPNotifier(url, queueName string) (*AMQPNotifier, error) {
	if queueName == "" {
		queueName = "volunteer_notifications"
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	q, err := ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	return &AMQPNotifier{conn: conn, channel: ch, queue: q}, nil
}

func (n *AMQPNotifier) MatchAccepted(ctx context.Context, c models.MatchCandidate) error {
	return n.publish(ctx, message{
		Type:        "match_accepted",
		EventID:     c.EventID,
		EventName:   c.EventName,
		VolunteerID: c.VolunteerID,
		Score:       c.Score,
		At:          time.Now().UTC().Format(time.RFC3339),
	})
}

func (n *AMQPNotifier) EventCompleted(ctx context.Context, eventID string, volunteerIDs []string) error {
	return n.publish(ctx, message{
		Type:         "event_completed",
		EventID:      eventID,
		VolunteerIDs: volunteerIDs,
		At:           time.Now().UTC().Format(time.RFC3339),
	})
}

func (n *AMQPNotifier) publish(ctx context.Context, m message) error {
	body, err := json.Marshal(m)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	return n.channel.PublishWithContext(
		ctx,
		"",           // exchange
		n.queue.Name, // routing key
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

// Close tears down the channel and connection.
func (n *AMQPNotifier) Close() error {
	if n.channel != nil {
		n.channel.Close()
	}
	if n.conn != nil {
		return n.conn.Close()
	}
	return nil
}
