package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"disha/internal/model"
)

// CourseRepo serves the static course catalog
type CourseRepo interface {
	Create(ctx context.Context, course *model.Course) error
	GetByID(ctx context.Context, id string) (*model.Course, error)
	GetAll(ctx context.Context) ([]*model.Course, error)
	GetByStream(ctx context.Context, stream string) ([]*model.Course, error)
	Delete(ctx context.Context, id string) error
}

type courseRepo struct {
	collection *mongo.Collection
}

func NewCourseRepo(db *mongo.Database) CourseRepo {
	return &courseRepo{
		collection: db.Collection("courses"),
	}
}

func (r *courseRepo) Create(ctx context.Context, course *model.Course) error {
	if course.ID == "" {
		course.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.collection.InsertOne(ctx, course)
	return err
}

func (r *courseRepo) GetByID(ctx context.Context, id string) (*model.Course, error) {
	var course model.Course
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&course)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) GetAll(ctx context.Context) ([]*model.Course, error) {
	return r.find(ctx, bson.M{})
}

func (r *courseRepo) GetByStream(ctx context.Context, stream string) ([]*model.Course, error) {
	return r.find(ctx, bson.M{"stream": stream})
}

func (r *courseRepo) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *courseRepo) find(ctx context.Context, filter bson.M) ([]*model.Course, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var courses []*model.Course
	if err = cursor.All(ctx, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}
