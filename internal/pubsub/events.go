package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

const (
	EventCourseDeleted     = "course.deleted"
	EventEnrollmentCreated = "enrollment.created"
)

// Event is the JSON envelope published for domain changes.
type Event struct {
	Type       string            `json:"type"`
	CourseID   string            `json:"courseId"`
	UserID     string            `json:"userId,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
	OccurredAt time.Time         `json:"occurredAt"`
}

// PublishEvent marshals e and publishes it to topic.
func PublishEvent(ctx context.Context, p Publisher, topic string, e Event) (string, error) {
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}
	data, err := json.Marshal(e)
	if err != nil {
		return "", fmt.Errorf("marshalling %s event: %w", e.Type, err)
	}
	return p.Publish(ctx, topic, data)
}
