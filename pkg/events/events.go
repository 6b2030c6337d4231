// Package events publishes domain lifecycle events to Kafka. Publishing
// is advisory: a broker failure is logged by the caller and never changes
// the outcome of the operation that raised the event.
package events

import (
	"encoding/json"
	"time"
)

const (
	BookingCreated        = "booking.created"
	BookingApproved       = "booking.approved"
	BookingDeleted        = "booking.deleted"
	PaymentSettled        = "payment.settled"
	MemberRemoved         = "member.removed"
	AnnouncementPublished = "announcement.published"
)

// Header keys stamped on every published message.
const (
	HeaderEventID   = "event-id"
	HeaderEventType = "event-type"
	HeaderSource    = "source"
	HeaderTimestamp = "timestamp"
)

type Event struct {
	Type       string
	Key        string // partition key, usually the entity id or owner email
	Payload    any
	OccurredAt time.Time
}

func NewEvent(eventType, key string, payload any) Event {
	return Event{
		Type:       eventType,
		Key:        key,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	}
}

func (e Event) EncodePayload() ([]byte, error) {
	return json.Marshal(e.Payload)
}
