package repository

import (
	"context"

	"feedbackportal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoUserRepo struct {
	DB *mongo.Database
}

func NewMongoUserRepo(db *mongo.Database) *MongoUserRepo {
	return &MongoUserRepo{DB: db}
}

func (r *MongoUserRepo) CreateUser(ctx context.Context, user *models.User) error {
	if err := user.Validate(); err != nil {
		return err
	}
	id, err := nextID(ctx, r.DB, usersCollection)
	if err != nil {
		return err
	}
	user.ID = id

	_, err = r.DB.Collection(usersCollection).InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrUsernameTaken
	}
	return err
}

func (r *MongoUserRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoUserRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *MongoUserRepo) CountUsers(ctx context.Context) (int64, error) {
	return r.DB.Collection(usersCollection).CountDocuments(ctx, bson.M{})
}

func (r *MongoUserRepo) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	user := &models.User{}
	err := r.DB.Collection(usersCollection).FindOne(ctx, filter).Decode(user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}
