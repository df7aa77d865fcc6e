// internal/interface/repository/appointment_repo.go
package repository

import (
	"context"
	"time"

	"bookcast-service/internal/domain/entity"
	"bookcast-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAppointmentRepository implements the AppointmentRepository interface
type MongoAppointmentRepository struct {
	collection *mongo.Collection
}

// NewMongoAppointmentRepository creates a new MongoDB appointment repository
func NewMongoAppointmentRepository(db *mongo.Database) repository.AppointmentRepository {
	collection := db.Collection("appointments")

	ctx := context.Background()

	// Compound index covering the reminder sweep query
	sweepIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "status", Value: 1},
			{Key: "reminderSent", Value: 1},
			{Key: "slotTime", Value: 1},
		},
	}

	// At most one Booked record per slot. The conflict check runs first and
	// answers the 409 path; this index is the backstop for two requests that
	// both pass the check before either write lands.
	slotIndex := mongo.IndexModel{
		Keys: bson.M{"slotTime": 1},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"status": entity.StatusBooked}),
	}

	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{sweepIndex, slotIndex})

	return &MongoAppointmentRepository{
		collection: collection,
	}
}

// Create inserts a new appointment record
func (r *MongoAppointmentRepository) Create(ctx context.Context, appt *entity.Appointment) error {
	if appt.Status == "" {
		appt.Status = entity.StatusBooked
	}
	if appt.CreatedAt.IsZero() {
		appt.CreatedAt = time.Now()
	}

	result, err := r.collection.InsertOne(ctx, appt)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicateSlot
		}
		return err
	}

	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		appt.ID = id
	}
	return nil
}

// CountBookedAt counts Booked appointments at the exact slot time
func (r *MongoAppointmentRepository) CountBookedAt(ctx context.Context, slot time.Time) (int64, error) {
	filter := bson.M{
		"slotTime": slot,
		"status":   entity.StatusBooked,
	}
	return r.collection.CountDocuments(ctx, filter)
}

// FindDueReminders finds Booked, unreminded appointments whose slot time
// falls within [from, to], both ends inclusive
func (r *MongoAppointmentRepository) FindDueReminders(ctx context.Context, from, to time.Time) ([]*entity.Appointment, error) {
	filter := bson.M{
		"status":       entity.StatusBooked,
		"reminderSent": false,
		"slotTime": bson.M{
			"$gte": from,
			"$lte": to,
		},
	}

	cursor, err := r.collection.Find(ctx, filter, &options.FindOptions{
		Sort: bson.D{{Key: "slotTime", Value: 1}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var appts []*entity.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, err
	}

	return appts, nil
}

// MarkReminderSent flips the reminderSent flag for one record
func (r *MongoAppointmentRepository) MarkReminderSent(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	update := bson.M{
		"$set": bson.M{
			"reminderSent": true,
			"remindedAt":   at,
		},
	}

	_, err := r.collection.UpdateByID(ctx, id, update)
	return err
}
