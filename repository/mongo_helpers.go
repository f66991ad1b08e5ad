package repository

import (
	"context"

	"feedbackportal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection     = "users"
	feedbackCollection  = "feedback"
	responsesCollection = "responses"
	countersCollection  = "counters"
)

// EnsureMongoIndexes creates the unique and sort indexes the repositories
// rely on. Safe to call on every start.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	if _, err := db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}
	if _, err := db.Collection(feedbackCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "status", Value: 1}}},
	}); err != nil {
		return err
	}
	_, err := db.Collection(responsesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "feedback_id", Value: 1}, {Key: "created_at", Value: 1}},
	})
	return err
}

// nextID hands out sequential integer ids per collection so documents keep
// the same id shape as the SQL backends.
func nextID(ctx context.Context, db *mongo.Database, name string) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := db.Collection(countersCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	return counter.Seq, err
}

func loadUsers(ctx context.Context, db *mongo.Database, ids []int64) (map[int64]*models.User, error) {
	users := make(map[int64]*models.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}
	cur, err := db.Collection(usersCollection).Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		u := &models.User{}
		if err := cur.Decode(u); err != nil {
			return nil, err
		}
		users[u.ID] = u
	}
	return users, cur.Err()
}
