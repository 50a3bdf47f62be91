package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"disha/internal/model"
)

// QuestionRepo is the question source gateway. Banks are keyed by
// tier, and within the personalized and subject tiers by domain and
// subject respectively.
type QuestionRepo interface {
	Create(ctx context.Context, question *model.Question) error
	GetByID(ctx context.Context, id string) (*model.Question, error)
	Delete(ctx context.Context, id string) error

	GetByTier(ctx context.Context, tier model.Tier) ([]*model.Question, error)
	GetByDomain(ctx context.Context, domain string) ([]*model.Question, error)
	GetBySubject(ctx context.Context, subject string) ([]*model.Question, error)
	GetAll(ctx context.Context) ([]*model.Question, error)
}

type questionRepo struct {
	collection *mongo.Collection
}

func NewQuestionRepo(db *mongo.Database) QuestionRepo {
	return &questionRepo{
		collection: db.Collection("questions"),
	}
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
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &question, nil
}

func (r *questionRepo) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *questionRepo) GetByTier(ctx context.Context, tier model.Tier) ([]*model.Question, error) {
	return r.find(ctx, bson.M{"tier": tier})
}

func (r *questionRepo) GetByDomain(ctx context.Context, domain string) ([]*model.Question, error) {
	return r.find(ctx, bson.M{"tier": model.TierPersonalized, "domain": domain})
}

func (r *questionRepo) GetBySubject(ctx context.Context, subject string) ([]*model.Question, error) {
	return r.find(ctx, bson.M{"tier": model.TierSubject, "subject": subject})
}

func (r *questionRepo) GetAll(ctx context.Context) ([]*model.Question, error) {
	return r.find(ctx, bson.M{})
}

func (r *questionRepo) find(ctx context.Context, filter bson.M) ([]*model.Question, error) {
	cursor, err := r.collection.Find(ctx, filter)
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
