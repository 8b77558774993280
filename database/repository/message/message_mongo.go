package messageRepo

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

// MongoMessageRepo implements MessageRepository using MongoDB.
type MongoMessageRepo struct {
	coll *mongo.Collection
}

// NewMongoMessageRepo creates a new instance of MessageRepository using MongoDB.
func NewMongoMessageRepo() MessageRepository {
	coll := database.Collection("messages")
	repo := &MongoMessageRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create message indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoMessageRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "missionId", Value: 1}, {Key: "createdAt", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "receiverId", Value: 1}, {Key: "isRead", Value: 1}},
		},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	return err
}

// Create inserts a new message document.
func (r *MongoMessageRepo) Create(message *models.Message) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	message.CreatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, message); err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

// ListForMission returns a mission's messages, oldest first.
func (r *MongoMessageRepo) ListForMission(missionID string) ([]models.Message, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"missionId": missionID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages for mission %s: %w", missionID, err)
	}
	defer cursor.Close(ctx)

	var messages []models.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("failed to decode messages: %w", err)
	}
	return messages, nil
}

// MarkRead flags all of receiver's unread messages in a mission as read.
func (r *MongoMessageRepo) MarkRead(missionID, receiverID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"missionId":  missionID,
		"receiverId": receiverID,
		"isRead":     false,
	}
	update := bson.M{"$set": bson.M{"isRead": true}}
	if _, err := r.coll.UpdateMany(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to mark messages read: %w", err)
	}
	return nil
}

// CountUnread counts unread messages addressed to the user.
func (r *MongoMessageRepo) CountUnread(receiverID string) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{"receiverId": receiverID, "isRead": false})
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return count, nil
}
