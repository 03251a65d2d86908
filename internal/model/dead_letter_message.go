package model

import "time"

// DeadLetterMessage represents a message from the dead-letter queue persisted in the database.
type DeadLetterMessage struct {
	ID               string    `db:"id"`
	SubscriptionName string    `db:"subscription_name"`
	MessageID        string    `db:"message_id"`
	Payload          []byte    `db:"payload"`    // JSON
	Attributes       []byte    `db:"attributes"` // JSON, may be nil
	Status           string    `db:"status"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}
