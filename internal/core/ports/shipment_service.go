package ports

import (
	"context"

	"github.com/freightline/shipment-tracker/internal/core/domain"
)

// CreateShipmentInput carries all data needed to create a new shipment.
type CreateShipmentInput struct {
	TrackingNumber  string
	SenderAddress   string
	ReceiverAddress string
	Weight          float64
	Description     string
	CreatedByID     string
	// IdempotencyKey, when non-empty, makes creation replayable: a repeated
	// key returns the originally created shipment without side effects.
	IdempotencyKey string
}

// CreateShipmentResult is returned after creating a shipment.
type CreateShipmentResult struct {
	Shipment *domain.Shipment
	// AlreadyExisted is true when the Idempotency-Key matched a prior creation.
	AlreadyExisted bool
}

// UpdateStatusInput carries the parameters of one lifecycle transition.
type UpdateStatusInput struct {
	ShipmentID   string
	Status       domain.ShipmentStatus
	ActingUserID string
}

// AddEventInput appends a tracking event independent of the current status.
type AddEventInput struct {
	ShipmentID  string
	Event       domain.ShipmentEventType
	Location    string
	Description string
}

// ListShipmentsInput carries pagination parameters. Page is 1-based.
type ListShipmentsInput struct {
	Page  int
	Limit int
}

// ListShipmentsResult is one page of shipments with pagination metadata.
type ListShipmentsResult struct {
	Items      []domain.Shipment
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ShipmentService owns the shipment lifecycle: creation, status transitions
// with their derived event log, and reads.
type ShipmentService interface {
	Create(ctx context.Context, input CreateShipmentInput) (*CreateShipmentResult, error)
	UpdateStatus(ctx context.Context, input UpdateStatusInput) (*domain.Shipment, error)
	AddEvent(ctx context.Context, input AddEventInput) (*domain.ShipmentEvent, error)
	GetDetails(ctx context.Context, shipmentID string) (*domain.Shipment, error)
	List(ctx context.Context, input ListShipmentsInput) (*ListShipmentsResult, error)
}
