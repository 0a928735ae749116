package repository

import (
	"adaptivequiz/internal/model"
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// QuestionRepo is the question store used by the quiz engine and admin API
type QuestionRepo interface {
	Create(ctx context.Context, question *model.Question) error
	// GetByID returns nil, nil when the question does not exist
	GetByID(ctx context.Context, id string) (*model.Question, error)
	GetByDifficulty(ctx context.Context, difficulty model.Difficulty) ([]*model.Question, error)
	// GetAll returns at most limit questions; limit <= 0 means no bound
	GetAll(ctx context.Context, limit int) ([]*model.Question, error)
	Delete(ctx context.Context, id string) (bool, error)
	ExistsByText(ctx context.Context, text string) (bool, error)
}

type questionRepo struct {
	collection *mongo.Collection
}

// NewQuestionRepo creates a MongoDB question repository
func NewQuestionRepo(db *mongo.Database) QuestionRepo {
	return &questionRepo{
		collection: db.Collection("questions"),
	}
}

// EnsureQuestionIndexes creates the lookup indexes used by the engine
func EnsureQuestionIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("questions").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "difficulty", Value: 1}}},
		{Keys: bson.D{{Key: "questionText", Value: 1}}},
	})
	return err
}

func (r *questionRepo) Create(ctx context.Context, question *model.Question) error {
	if question.ID == "" {
		question.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.collection.InsertOne(ctx, question)
	return err
}

func (r *questionRepo) GetByID(ctx context.Context, id string) (*model.Question, error) {
	var question model.Question
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&question)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepo) GetByDifficulty(ctx context.Context, difficulty model.Difficulty) ([]*model.Question, error) {
	return r.find(ctx, bson.M{"difficulty": difficulty}, options.Find())
}

func (r *questionRepo) GetAll(ctx context.Context, limit int) ([]*model.Question, error) {
	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	return r.find(ctx, bson.M{}, opts)
}

func (r *questionRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *questionRepo) ExistsByText(ctx context.Context, text string) (bool, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{"questionText": text}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *questionRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*model.Question, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var questions []*model.Question
	if err = cursor.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}
