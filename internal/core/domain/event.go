package domain

import "time"

// ShipmentEventType enumerates the tracking events a shipment can record.
// The set mirrors the status set minus PENDING: there is no "became pending"
// event because pending is the creation state.
type ShipmentEventType string

const (
	EventPickedUp      ShipmentEventType = "PICKED_UP"
	EventInTransit     ShipmentEventType = "IN_TRANSIT"
	EventArrivedAtPort ShipmentEventType = "ARRIVED_AT_PORT"
	EventDelivered     ShipmentEventType = "DELIVERED"
)

// ShipmentEventTypes lists every member of the closed event set.
var ShipmentEventTypes = []ShipmentEventType{
	EventPickedUp,
	EventInTransit,
	EventArrivedAtPort,
	EventDelivered,
}

// IsValid reports whether e is a member of the closed event set.
func (e ShipmentEventType) IsValid() bool {
	for _, known := range ShipmentEventTypes {
		if e == known {
			return true
		}
	}
	return false
}

// ShipmentEvent is an append-only record of a shipment's movement. Events are
// embedded in their shipment document and are never mutated or reordered.
type ShipmentEvent struct {
	ID          string            `json:"id" bson:"id"`
	Event       ShipmentEventType `json:"event" bson:"event"`
	Location    string            `json:"location,omitempty" bson:"location,omitempty"`
	Description string            `json:"description,omitempty" bson:"description,omitempty"`
	Timestamp   time.Time         `json:"timestamp" bson:"timestamp"`
}
