package ports

import (
	"context"

	"github.com/freightline/shipment-tracker/internal/core/domain"
)

// ShipmentRepository defines persistence operations for shipments and their
// embedded event log.
type ShipmentRepository interface {
	Insert(ctx context.Context, s *domain.Shipment) error

	// FindByShipmentID retrieves a shipment (events included) by its external id.
	FindByShipmentID(ctx context.Context, shipmentID string) (*domain.Shipment, error)

	// ApplyStatus sets the shipment's status and, when event is non-nil,
	// appends it in the same write. The status change and the event append
	// must be atomic so a successful transition yields exactly one event.
	// Returns the updated shipment.
	ApplyStatus(ctx context.Context, shipmentID string, status domain.ShipmentStatus, event *domain.ShipmentEvent) (*domain.Shipment, error)

	// AppendEvent adds a tracking event without touching the status.
	AppendEvent(ctx context.Context, shipmentID string, event *domain.ShipmentEvent) error

	// List returns one 1-based page of shipments (events included) plus the
	// total count across all pages.
	List(ctx context.Context, page, limit int) ([]domain.Shipment, int64, error)
}
