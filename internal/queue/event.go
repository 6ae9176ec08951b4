// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records them.
package queue

// PublishedQueueName is the durable queue carrying ArrangementPublishedEvent.
const PublishedQueueName = "seating.published"

// ArrangementPublishedEvent is emitted when a session's arrangement is
// frozen for reporting.  It carries enough for downstream consumers to log
// or notify without querying the database.
type ArrangementPublishedEvent struct {
	ArrangementID uint64         `json:"arrangement_id"`
	SessionID     string         `json:"session_id"`
	Seed          int64          `json:"seed"`
	Seated        int            `json:"seated"`
	Unseated      int            `json:"unseated"`
	Conflicts     int            `json:"conflicts"`
	SeatsPerHall  map[string]int `json:"seats_per_hall"`
	PublishedBy   string         `json:"published_by"`
	PublishedAt   string         `json:"published_at"`
}
