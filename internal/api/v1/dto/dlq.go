package dto

// PubSubPushRequest is the envelope Pub/Sub posts to /v1/dlq/record when a
// course or enrollment event exhausts its delivery attempts.
type PubSubPushRequest struct {
	Message      PubSubMessage `json:"message"`
	Subscription string        `json:"subscription"`
}

// PubSubMessage carries the dead-lettered event. Data holds the base64 JSON
// event envelope; MessageID is required for the record to be stored.
type PubSubMessage struct {
	Data       string            `json:"data"`
	MessageID  string            `json:"messageId"`
	Attributes map[string]string `json:"attributes"`
}
