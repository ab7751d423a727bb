package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"petcare/database"
	"petcare/models"
	"petcare/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a new instance of BookingRepository using MongoDB.
func NewMongoBookingRepo() BookingRepository {
	repo := &MongoBookingRepo{coll: database.Collection("bookings")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create booking indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}}},
		// The sweeper filters on status + cancelledAt every tick.
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "cancelledAt", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new booking document.
func (r *MongoBookingRepo) Create(booking *models.Booking) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// GetByID retrieves a booking by its unique ID.
func (r *MongoBookingRepo) GetByID(id string) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var booking models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, utils.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id, err)
	}
	return &booking, nil
}

// GetByUser retrieves all bookings owned by userID, newest first.
func (r *MongoBookingRepo) GetByUser(userID string) ([]models.Booking, error) {
	return r.find(bson.M{"userId": userID})
}

// GetAll retrieves all bookings, newest first.
func (r *MongoBookingRepo) GetAll() ([]models.Booking, error) {
	return r.find(bson.M{})
}

func (r *MongoBookingRepo) find(filter bson.M) ([]models.Booking, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	for cursor.Next(ctx) {
		var b models.Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("failed to decode booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

// SetStatus updates only the status field of a booking.
func (r *MongoBookingRepo) SetStatus(id, status string) error {
	return r.updateOne(id, bson.M{
		"$set": bson.M{"status": status, "updatedAt": time.Now()},
	})
}

// MarkCancelled sets status=CANCELLED and stamps cancelledAt. Status and
// timestamp move together so the cancelledAt-iff-CANCELLED invariant holds
// within the single document write Mongo guarantees.
func (r *MongoBookingRepo) MarkCancelled(id string, cancelledAt time.Time) error {
	return r.updateOne(id, bson.M{
		"$set": bson.M{
			"status":      models.BookingCancelled,
			"cancelledAt": cancelledAt,
			"updatedAt":   time.Now(),
		},
	})
}

// ClearCancellation resets status=PENDING and unsets cancelledAt.
func (r *MongoBookingRepo) ClearCancellation(id string) error {
	return r.updateOne(id, bson.M{
		"$set":   bson.M{"status": models.BookingPending, "updatedAt": time.Now()},
		"$unset": bson.M{"cancelledAt": ""},
	})
}

func (r *MongoBookingRepo) updateOne(id string, update bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update booking with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("booking %s: %w", id, utils.ErrNotFound)
	}
	return nil
}

// Delete removes a booking document by its ID.
func (r *MongoBookingRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete booking with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("booking %s: %w", id, utils.ErrNotFound)
	}
	return nil
}

// DeleteExpiredCancellations removes bookings cancelled before the cutoff.
func (r *MongoBookingRepo) DeleteExpiredCancellations(cutoff time.Time) (int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{
		"status":      models.BookingCancelled,
		"cancelledAt": bson.M{"$lt": cutoff},
	}
	result, err := r.coll.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired cancellations: %w", err)
	}
	return result.DeletedCount, nil
}

// CountCreatedBetween counts bookings created in [from, to).
func (r *MongoBookingRepo) CountCreatedBetween(from, to time.Time) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"createdAt": bson.M{"$gte": from, "$lt": to}}
	n, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return n, nil
}
