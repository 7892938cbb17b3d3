package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/freightline/shipment-tracker/internal/core/domain"
)

const collectionShipments = "shipments"

// ShipmentRepository persists shipments with their events embedded. Embedding
// keeps the event log in insertion order, deletes it with its shipment, and
// lets a status change and its derived event land in one atomic update.
type ShipmentRepository struct {
	col *mongo.Collection
}

func NewShipmentRepository(db *mongo.Database) *ShipmentRepository {
	return &ShipmentRepository{col: db.Collection(collectionShipments)}
}

type shipmentEventDoc struct {
	ID          string    `bson:"id"`
	Event       string    `bson:"event"`
	Location    string    `bson:"location,omitempty"`
	Description string    `bson:"description,omitempty"`
	Timestamp   time.Time `bson:"timestamp"`
}

type shipmentDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	ShipmentID      string             `bson:"shipment_id"`
	TrackingNumber  string             `bson:"tracking_number,omitempty"`
	SenderAddress   string             `bson:"sender_address,omitempty"`
	ReceiverAddress string             `bson:"receiver_address,omitempty"`
	Weight          float64            `bson:"weight,omitempty"`
	Description     string             `bson:"description,omitempty"`
	Status          string             `bson:"status"`
	CreatedByID     string             `bson:"created_by_id"`
	Events          []shipmentEventDoc `bson:"events"`
	CreatedAt       time.Time          `bson:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at"`
}

func toShipmentDoc(s *domain.Shipment) shipmentDoc {
	events := make([]shipmentEventDoc, len(s.Events))
	for i, e := range s.Events {
		events[i] = toEventDoc(&e)
	}
	return shipmentDoc{
		ShipmentID:      s.ShipmentID,
		TrackingNumber:  s.TrackingNumber,
		SenderAddress:   s.SenderAddress,
		ReceiverAddress: s.ReceiverAddress,
		Weight:          s.Weight,
		Description:     s.Description,
		Status:          string(s.Status),
		CreatedByID:     s.CreatedByID,
		Events:          events,
		CreatedAt:       s.CreatedAt.UTC(),
		UpdatedAt:       s.UpdatedAt.UTC(),
	}
}

func toEventDoc(e *domain.ShipmentEvent) shipmentEventDoc {
	return shipmentEventDoc{
		ID:          e.ID,
		Event:       string(e.Event),
		Location:    e.Location,
		Description: e.Description,
		Timestamp:   e.Timestamp.UTC(),
	}
}

func (d shipmentDoc) toDomain() *domain.Shipment {
	events := make([]domain.ShipmentEvent, len(d.Events))
	for i, e := range d.Events {
		events[i] = domain.ShipmentEvent{
			ID:          e.ID,
			Event:       domain.ShipmentEventType(e.Event),
			Location:    e.Location,
			Description: e.Description,
			Timestamp:   e.Timestamp.UTC(),
		}
	}
	return &domain.Shipment{
		ID:              d.ID.Hex(),
		ShipmentID:      d.ShipmentID,
		TrackingNumber:  d.TrackingNumber,
		SenderAddress:   d.SenderAddress,
		ReceiverAddress: d.ReceiverAddress,
		Weight:          d.Weight,
		Description:     d.Description,
		Status:          domain.ShipmentStatus(d.Status),
		CreatedByID:     d.CreatedByID,
		Events:          events,
		CreatedAt:       d.CreatedAt.UTC(),
		UpdatedAt:       d.UpdatedAt.UTC(),
	}
}

func (r *ShipmentRepository) Insert(ctx context.Context, s *domain.Shipment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, toShipmentDoc(s))
	if err != nil {
		return asConflict(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		s.ID = oid.Hex()
	}
	return nil
}

func (r *ShipmentRepository) FindByShipmentID(ctx context.Context, shipmentID string) (*domain.Shipment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc shipmentDoc
	err := r.col.FindOne(ctx, bson.M{"shipment_id": shipmentID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrShipmentNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

// ApplyStatus sets the new status and appends the derived event in a single
// document update, so concurrent transitions on the same shipment serialize
// and each successful one records exactly one event.
func (r *ShipmentRepository) ApplyStatus(ctx context.Context, shipmentID string, status domain.ShipmentStatus, event *domain.ShipmentEvent) (*domain.Shipment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"status":     string(status),
			"updated_at": time.Now().UTC(),
		},
	}
	if event != nil {
		update["$push"] = bson.M{"events": toEventDoc(event)}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc shipmentDoc
	err := r.col.FindOneAndUpdate(ctx, bson.M{"shipment_id": shipmentID}, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrShipmentNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *ShipmentRepository) AppendEvent(ctx context.Context, shipmentID string, event *domain.ShipmentEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"shipment_id": shipmentID},
		bson.M{
			"$push": bson.M{"events": toEventDoc(event)},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrShipmentNotFound
	}
	return nil
}

func (r *ShipmentRepository) List(ctx context.Context, page, limit int) ([]domain.Shipment, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(page-1) * int64(limit)).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var docs []shipmentDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, err
	}

	items := make([]domain.Shipment, len(docs))
	for i, d := range docs {
		items[i] = *d.toDomain()
	}
	return items, total, nil
}

// EnsureIndexes creates the unique indexes backing external id immutability
// and tracking number uniqueness.
func (r *ShipmentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "shipment_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "tracking_number", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{Keys: bson.D{{Key: "created_by_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
