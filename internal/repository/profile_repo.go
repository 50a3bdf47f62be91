package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"disha/internal/model"
)

// ProfileRepo is the persistence gateway: upsert-merge of one section
// at a time into the per-user document, and a full read back.
type ProfileRepo interface {
	SetGeneral(ctx context.Context, userID string, inf *model.GeneralInference) error
	SetSubject(ctx context.Context, userID string, inf *model.SubjectInference) error
	SetPersonalized(ctx context.Context, userID string, inf *model.PersonalizedInference) error
	SetCareer(ctx context.Context, userID string, sug *model.CareerSuggestions) error
	Get(ctx context.Context, userID string) (*model.Profile, error)
}

type profileRepo struct {
	collection *mongo.Collection
}

func NewProfileRepo(db *mongo.Database) ProfileRepo {
	return &profileRepo{
		collection: db.Collection("profiles"),
	}
}

// setSection merges one top-level key into the user's document,
// creating the document if it does not exist yet. Other sections are
// untouched.
func (r *profileRepo) setSection(ctx context.Context, userID, key string, value interface{}) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{key: value}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *profileRepo) SetGeneral(ctx context.Context, userID string, inf *model.GeneralInference) error {
	return r.setSection(ctx, userID, "general_quiz_inferences", inf)
}

func (r *profileRepo) SetSubject(ctx context.Context, userID string, inf *model.SubjectInference) error {
	return r.setSection(ctx, userID, "subject_quiz_inferences", inf)
}

func (r *profileRepo) SetPersonalized(ctx context.Context, userID string, inf *model.PersonalizedInference) error {
	return r.setSection(ctx, userID, "personalized_quiz_inferences", inf)
}

func (r *profileRepo) SetCareer(ctx context.Context, userID string, sug *model.CareerSuggestions) error {
	return r.setSection(ctx, userID, "career_suggestions", sug)
}

func (r *profileRepo) Get(ctx context.Context, userID string) (*model.Profile, error) {
	var profile model.Profile
	err := r.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&profile)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}
