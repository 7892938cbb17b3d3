package domain

import "time"

// ShipmentStatus represents the lifecycle state of a shipment.
type ShipmentStatus string

const (
	StatusPending       ShipmentStatus = "PENDING"
	StatusPickedUp      ShipmentStatus = "PICKED_UP"
	StatusInTransit     ShipmentStatus = "IN_TRANSIT"
	StatusArrivedAtPort ShipmentStatus = "ARRIVED_AT_PORT"
	StatusDelivered     ShipmentStatus = "DELIVERED"
)

// ShipmentStatuses lists every member of the closed status set in lifecycle order.
var ShipmentStatuses = []ShipmentStatus{
	StatusPending,
	StatusPickedUp,
	StatusInTransit,
	StatusArrivedAtPort,
	StatusDelivered,
}

// IsValid reports whether s is a member of the closed status set.
func (s ShipmentStatus) IsValid() bool {
	for _, known := range ShipmentStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// EventType returns the tracking event produced by transitioning into this
// status. PENDING is the implicit creation state and produces no event, so
// ok is false for it.
func (s ShipmentStatus) EventType() (ShipmentEventType, bool) {
	switch s {
	case StatusPickedUp:
		return EventPickedUp, true
	case StatusInTransit:
		return EventInTransit, true
	case StatusArrivedAtPort:
		return EventArrivedAtPort, true
	case StatusDelivered:
		return EventDelivered, true
	}
	return "", false
}

// Shipment is the core aggregate root. Events are owned by the shipment and
// never outlive it; the slice is append-only in insertion order.
type Shipment struct {
	ID              string          `json:"-" bson:"_id,omitempty"`
	ShipmentID      string          `json:"shipmentId" bson:"shipment_id"`
	TrackingNumber  string          `json:"trackingNumber,omitempty" bson:"tracking_number,omitempty"`
	SenderAddress   string          `json:"senderAddress,omitempty" bson:"sender_address,omitempty"`
	ReceiverAddress string          `json:"receiverAddress,omitempty" bson:"receiver_address,omitempty"`
	Weight          float64         `json:"weight,omitempty" bson:"weight,omitempty"`
	Description     string          `json:"description,omitempty" bson:"description,omitempty"`
	Status          ShipmentStatus  `json:"status" bson:"status"`
	CreatedByID     string          `json:"createdById" bson:"created_by_id"`
	Events          []ShipmentEvent `json:"events" bson:"events"`
	CreatedAt       time.Time       `json:"createdAt" bson:"created_at"`
	UpdatedAt       time.Time       `json:"updatedAt" bson:"updated_at"`
}
