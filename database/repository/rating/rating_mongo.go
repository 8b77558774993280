package ratingRepo

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

// MongoRatingRepo implements RatingRepository using MongoDB.
type MongoRatingRepo struct {
	coll *mongo.Collection
}

// NewMongoRatingRepo creates a new instance of RatingRepository using MongoDB.
func NewMongoRatingRepo() RatingRepository {
	coll := database.Collection("ratings")
	repo := &MongoRatingRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create rating indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoRatingRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			// One rating per mission.
			Keys:    bson.D{{Key: "missionId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "ratedId", Value: 1}, {Key: "createdAt", Value: -1}},
		},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	return err
}

// Create inserts a new rating document.
func (r *MongoRatingRepo) Create(rating *models.Rating) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	rating.CreatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, rating); err != nil {
		return fmt.Errorf("failed to create rating: %w", err)
	}
	return nil
}

// GetByMissionID retrieves the rating for a mission.
func (r *MongoRatingRepo) GetByMissionID(missionID string) (*models.Rating, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var rating models.Rating
	err := r.coll.FindOne(ctx, bson.M{"missionId": missionID}).Decode(&rating)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get rating for mission %s: %w", missionID, err)
	}
	return &rating, nil
}

// ListForRated returns all ratings received by a user, newest first.
func (r *MongoRatingRepo) ListForRated(ratedID string) ([]models.Rating, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"ratedId": ratedID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings for user %s: %w", ratedID, err)
	}
	defer cursor.Close(ctx)

	var ratings []models.Rating
	if err := cursor.All(ctx, &ratings); err != nil {
		return nil, fmt.Errorf("failed to decode ratings: %w", err)
	}
	return ratings, nil
}
