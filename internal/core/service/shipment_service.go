package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/freightline/shipment-tracker/internal/core/domain"
	"github.com/freightline/shipment-tracker/internal/core/ports"
)

const defaultPageSize = 10

// IdempotencyStore abstracts the replay-protection store (Redis). Lookup
// returns the shipment external id previously remembered for key, or "" when
// the key is unseen.
type IdempotencyStore interface {
	Lookup(ctx context.Context, key string) (string, error)
	Remember(ctx context.Context, key, shipmentID string) error
}

// ShipmentService implements the shipment lifecycle: creation in PENDING,
// status transitions with their derived event log, and reads.
type ShipmentService struct {
	shipments ports.ShipmentRepository
	users     ports.UserRepository
	idem      IdempotencyStore // optional; nil disables replay protection
	log       zerolog.Logger
}

func NewShipmentService(shipments ports.ShipmentRepository, users ports.UserRepository, idem IdempotencyStore, log zerolog.Logger) *ShipmentService {
	return &ShipmentService{shipments: shipments, users: users, idem: idem, log: log}
}

// Create creates a new shipment in status PENDING with an empty event log.
// If an idempotency key is provided and already seen, the previously created
// shipment is returned without side effects.
func (s *ShipmentService) Create(ctx context.Context, input ports.CreateShipmentInput) (*ports.CreateShipmentResult, error) {
	if s.idem != nil && input.IdempotencyKey != "" {
		seenID, err := s.idem.Lookup(ctx, input.IdempotencyKey)
		if err != nil {
			s.log.Warn().Err(err).Msg("idempotency lookup failed, creating anyway")
		} else if seenID != "" {
			existing, err := s.shipments.FindByShipmentID(ctx, seenID)
			if err == nil {
				s.log.Info().Str("idempotency_key", input.IdempotencyKey).Str("shipment_id", seenID).Msg("idempotent replay")
				return &ports.CreateShipmentResult{Shipment: existing, AlreadyExisted: true}, nil
			}
		}
	}

	now := time.Now().UTC()
	shipment := &domain.Shipment{
		ShipmentID:      generateShipmentID(),
		TrackingNumber:  input.TrackingNumber,
		SenderAddress:   input.SenderAddress,
		ReceiverAddress: input.ReceiverAddress,
		Weight:          input.Weight,
		Description:     input.Description,
		Status:          domain.StatusPending,
		CreatedByID:     input.CreatedByID,
		Events:          []domain.ShipmentEvent{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.shipments.Insert(ctx, shipment); err != nil {
		s.log.Error().Err(err).Msg("failed to create shipment")
		return nil, err
	}

	if s.idem != nil && input.IdempotencyKey != "" {
		if err := s.idem.Remember(ctx, input.IdempotencyKey, shipment.ShipmentID); err != nil {
			s.log.Warn().Err(err).Str("shipment_id", shipment.ShipmentID).Msg("failed to remember idempotency key")
		}
	}

	s.log.Info().Str("shipment_id", shipment.ShipmentID).Str("created_by", input.CreatedByID).Msg("shipment created")
	return &ports.CreateShipmentResult{Shipment: shipment}, nil
}

// UpdateStatus applies one lifecycle transition:
//
//  1. The shipment must exist.
//  2. The acting user must exist.
//  3. The acting user's company must match the shipment creator's company.
//  4. Any member of the status set is accepted as target; ordering is not
//     enforced (corrections and rollbacks are allowed).
//  5. The new status is persisted together with exactly one derived event,
//     except for PENDING which has no corresponding event.
func (s *ShipmentService) UpdateStatus(ctx context.Context, input ports.UpdateStatusInput) (*domain.Shipment, error) {
	shipment, err := s.shipments.FindByShipmentID(ctx, input.ShipmentID)
	if err != nil {
		return nil, err
	}

	actor, err := s.users.FindByID(ctx, input.ActingUserID)
	if err != nil {
		return nil, err
	}

	creator, err := s.users.FindByID(ctx, shipment.CreatedByID)
	if err != nil {
		// Ownership cannot be established without the creator record.
		return nil, fmt.Errorf("resolve shipment owner: %w", domain.ErrForbidden)
	}

	if actor.CompanyID != creator.CompanyID {
		s.log.Warn().
			Str("shipment_id", input.ShipmentID).
			Str("acting_user", actor.ID).
			Msg("cross-company status update rejected")
		return nil, domain.ErrForbidden
	}

	var event *domain.ShipmentEvent
	if eventType, ok := input.Status.EventType(); ok {
		event = &domain.ShipmentEvent{
			ID:        uuid.NewString(),
			Event:     eventType,
			Timestamp: time.Now().UTC(),
		}
	}

	updated, err := s.shipments.ApplyStatus(ctx, input.ShipmentID, input.Status, event)
	if err != nil {
		s.log.Error().Err(err).Str("shipment_id", input.ShipmentID).Msg("failed to apply status")
		return nil, err
	}

	s.log.Info().
		Str("shipment_id", input.ShipmentID).
		Str("status", string(input.Status)).
		Str("acting_user", actor.ID).
		Msg("shipment status updated")

	return updated, nil
}

// AddEvent appends a tracking event without changing the status. This records
// sub-status detail, e.g. multiple IN_TRANSIT waypoints.
func (s *ShipmentService) AddEvent(ctx context.Context, input ports.AddEventInput) (*domain.ShipmentEvent, error) {
	if _, err := s.shipments.FindByShipmentID(ctx, input.ShipmentID); err != nil {
		return nil, err
	}

	event := &domain.ShipmentEvent{
		ID:          uuid.NewString(),
		Event:       input.Event,
		Location:    input.Location,
		Description: input.Description,
		Timestamp:   time.Now().UTC(),
	}

	if err := s.shipments.AppendEvent(ctx, input.ShipmentID, event); err != nil {
		s.log.Error().Err(err).Str("shipment_id", input.ShipmentID).Msg("failed to append event")
		return nil, err
	}

	s.log.Info().
		Str("shipment_id", input.ShipmentID).
		Str("event", string(input.Event)).
		Msg("shipment event added")

	return event, nil
}

// GetDetails returns the shipment with its full event list in insertion order.
func (s *ShipmentService) GetDetails(ctx context.Context, shipmentID string) (*domain.Shipment, error) {
	return s.shipments.FindByShipmentID(ctx, shipmentID)
}

// List returns one page of shipments with events attached plus the total count.
func (s *ShipmentService) List(ctx context.Context, input ports.ListShipmentsInput) (*ports.ListShipmentsResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}

	items, total, err := s.shipments.List(ctx, page, limit)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list shipments")
		return nil, err
	}

	return &ports.ListShipmentsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

// generateShipmentID returns a globally unique external id in the format
// SHP-<unix-millis>-<random>. The random suffix keeps concurrent writers from
// colliding within one millisecond.
func generateShipmentID() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("SHP-%d-%s", time.Now().UnixMilli(), suffix)
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
