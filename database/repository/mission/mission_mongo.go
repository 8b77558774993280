package missionRepo

import (
	"context"
	"fmt"
	"time"

	"errandly/database"
	"errandly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoMissionRepo implements MissionRepository using MongoDB.
type MongoMissionRepo struct {
	coll *mongo.Collection
}

// NewMongoMissionRepo creates a new instance of MissionRepository using MongoDB.
func NewMongoMissionRepo() MissionRepository {
	coll := database.Collection("missions")
	repo := &MongoMissionRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create mission indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoMissionRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "clientId", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "assignment.providerId", Value: 1}},
		},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	return err
}

// Create inserts a new mission document.
func (r *MongoMissionRepo) Create(mission *models.Mission) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	mission.CreatedAt = now
	mission.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, mission); err != nil {
		return fmt.Errorf("failed to create mission: %w", err)
	}
	return nil
}

// GetByID retrieves a mission document by its ID.
func (r *MongoMissionRepo) GetByID(id string) (*models.Mission, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var mission models.Mission
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&mission)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get mission with id %s: %w", id, err)
	}
	return &mission, nil
}

// ListByStatus returns missions in the given state, oldest first.
func (r *MongoMissionRepo) ListByStatus(status models.MissionStatus) ([]models.Mission, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"status": status}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list missions by status: %w", err)
	}
	defer cursor.Close(ctx)

	var missions []models.Mission
	if err := cursor.All(ctx, &missions); err != nil {
		return nil, fmt.Errorf("failed to decode missions: %w", err)
	}
	return missions, nil
}

// ListForClient returns a client's missions, newest first.
func (r *MongoMissionRepo) ListForClient(clientID string, status models.MissionStatus) ([]models.Mission, error) {
	filter := bson.M{"clientId": clientID}
	if status != "" {
		filter["status"] = status
	}
	return r.list(filter)
}

// ListForProvider returns a provider's assigned missions, newest first.
func (r *MongoMissionRepo) ListForProvider(providerID string, status models.MissionStatus) ([]models.Mission, error) {
	filter := bson.M{"assignment.providerId": providerID}
	if status != "" {
		filter["status"] = status
	}
	return r.list(filter)
}

func (r *MongoMissionRepo) list(filter bson.M) ([]models.Mission, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list missions: %w", err)
	}
	defer cursor.Close(ctx)

	var missions []models.Mission
	if err := cursor.All(ctx, &missions); err != nil {
		return nil, fmt.Errorf("failed to decode missions: %w", err)
	}
	return missions, nil
}

// AcceptPending performs the atomic PENDING -> ACCEPTED transition. The
// status is part of the filter, so a mission that was already taken (or
// cancelled) matches nothing and the caller gets ErrNotPending.
func (r *MongoMissionRepo) AcceptPending(missionID, providerID string, at time.Time) (*models.Mission, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": missionID, "status": models.MissionPending}
	update := bson.M{"$set": bson.M{
		"status": models.MissionAccepted,
		"assignment": models.Assignment{
			ProviderID: providerID,
			AcceptedAt: at,
		},
		"updatedAt": at,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var mission models.Mission
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&mission)
	if err == mongo.ErrNoDocuments {
		// Distinguish a lost race from a missing mission.
		if _, getErr := r.GetByID(missionID); getErr != nil {
			return nil, getErr
		}
		return nil, ErrNotPending
	}
	if err != nil {
		return nil, fmt.Errorf("failed to accept mission %s: %w", missionID, err)
	}
	return &mission, nil
}

// MarkStarted transitions ACCEPTED -> IN_PROGRESS.
func (r *MongoMissionRepo) MarkStarted(missionID string, at time.Time) error {
	return r.setStatus(missionID, bson.M{
		"status":    models.MissionInProgress,
		"startedAt": at,
		"updatedAt": at,
	})
}

// MarkCompleted transitions IN_PROGRESS -> COMPLETED.
func (r *MongoMissionRepo) MarkCompleted(missionID string, at time.Time) error {
	return r.setStatus(missionID, bson.M{
		"status":      models.MissionCompleted,
		"completedAt": at,
		"updatedAt":   at,
	})
}

// MarkCancelled transitions to CANCELLED.
func (r *MongoMissionRepo) MarkCancelled(missionID string) error {
	return r.setStatus(missionID, bson.M{
		"status":    models.MissionCancelled,
		"updatedAt": time.Now(),
	})
}

func (r *MongoMissionRepo) setStatus(missionID string, fields bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": missionID}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update mission %s: %w", missionID, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
