package repository

import (
	"adaptivequiz/internal/model"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ResultRepo stores finished-session results
type ResultRepo interface {
	Create(ctx context.Context, result *model.Result) (string, error)
	GetAll(ctx context.Context) ([]*model.Result, error)
	GetByUser(ctx context.Context, userID string) ([]*model.Result, error)
}

type resultRepo struct {
	collection *mongo.Collection
}

// NewResultRepo creates a MongoDB result repository
func NewResultRepo(db *mongo.Database) ResultRepo {
	return &resultRepo{
		collection: db.Collection("results"),
	}
}

func (r *resultRepo) Create(ctx context.Context, result *model.Result) (string, error) {
	if result.ID == "" {
		result.ID = primitive.NewObjectID().Hex()
	}
	if result.Timestamp.IsZero() {
		result.Timestamp = time.Now().UTC()
	}
	if _, err := r.collection.InsertOne(ctx, result); err != nil {
		return "", err
	}
	return result.ID, nil
}

func (r *resultRepo) GetAll(ctx context.Context) ([]*model.Result, error) {
	return r.find(ctx, bson.M{})
}

// GetByUser returns the user's results, newest first
func (r *resultRepo) GetByUser(ctx context.Context, userID string) ([]*model.Result, error) {
	return r.find(ctx, bson.M{"userId": userID})
}

func (r *resultRepo) find(ctx context.Context, filter bson.M) ([]*model.Result, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []*model.Result
	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}
