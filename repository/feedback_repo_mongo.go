package repository

import (
	"context"
	"fmt"
	"time"

	"feedbackportal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoFeedbackRepo struct {
	DB *mongo.Database
}

func NewMongoFeedbackRepo(db *mongo.Database) *MongoFeedbackRepo {
	return &MongoFeedbackRepo{DB: db}
}

func (r *MongoFeedbackRepo) CreateFeedback(ctx context.Context, fb *models.Feedback) error {
	if fb.CreatedAt.IsZero() {
		fb.CreatedAt = time.Now().UTC()
	}
	if fb.Status == "" {
		fb.Status = models.StatusNew
	}
	if err := fb.Validate(); err != nil {
		return err
	}
	id, err := nextID(ctx, r.DB, feedbackCollection)
	if err != nil {
		return err
	}
	fb.ID = id

	_, err = r.DB.Collection(feedbackCollection).InsertOne(ctx, fb)
	return err
}

func (r *MongoFeedbackRepo) GetFeedback(ctx context.Context, id int64) (*models.Feedback, error) {
	fb := &models.Feedback{}
	err := r.DB.Collection(feedbackCollection).FindOne(ctx, bson.M{"_id": id}).Decode(fb)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	cur, err := r.DB.Collection(responsesCollection).Find(ctx,
		bson.M{"feedback_id": id},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	if err := cur.All(ctx, &fb.Responses); err != nil {
		return nil, err
	}

	ids := []int64{fb.UserID}
	for _, resp := range fb.Responses {
		ids = append(ids, resp.UserID)
	}
	users, err := loadUsers(ctx, r.DB, ids)
	if err != nil {
		return nil, err
	}
	fb.User = users[fb.UserID]
	for i := range fb.Responses {
		fb.Responses[i].User = users[fb.Responses[i].UserID]
	}
	return fb, nil
}

func (r *MongoFeedbackRepo) ListFeedback(ctx context.Context, filter FeedbackFilter) ([]*models.Feedback, error) {
	cur, err := r.DB.Collection(feedbackCollection).Find(ctx,
		mongoFilter(filter),
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	var list []*models.Feedback
	if err := cur.All(ctx, &list); err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(list))
	for _, fb := range list {
		ids = append(ids, fb.UserID)
	}
	users, err := loadUsers(ctx, r.DB, ids)
	if err != nil {
		return nil, err
	}
	for _, fb := range list {
		fb.User = users[fb.UserID]
	}
	return list, nil
}

func (r *MongoFeedbackRepo) CountFeedback(ctx context.Context, filter FeedbackFilter) (int64, error) {
	return r.DB.Collection(feedbackCollection).CountDocuments(ctx, mongoFilter(filter))
}

func (r *MongoFeedbackRepo) UpdateStatus(ctx context.Context, id int64, status models.Status, at time.Time) error {
	if !status.Valid() {
		return fmt.Errorf("invalid status %q", status)
	}
	set := bson.M{"status": status}
	if closedAt := closedAtFor(status, at); closedAt != nil {
		set["closed_at"] = *closedAt
	}
	res, err := r.DB.Collection(feedbackCollection).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrFeedbackNotFound
	}
	return nil
}

func (r *MongoFeedbackRepo) DeleteFeedback(ctx context.Context, id int64) error {
	res, err := r.DB.Collection(feedbackCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrFeedbackNotFound
	}
	_, err = r.DB.Collection(responsesCollection).DeleteMany(ctx, bson.M{"feedback_id": id})
	return err
}

func (r *MongoFeedbackRepo) AddResponse(ctx context.Context, resp *models.Response) error {
	if resp.CreatedAt.IsZero() {
		resp.CreatedAt = time.Now().UTC()
	}
	if err := resp.Validate(); err != nil {
		return err
	}

	n, err := r.DB.Collection(feedbackCollection).CountDocuments(ctx, bson.M{"_id": resp.FeedbackID})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrFeedbackNotFound
	}

	id, err := nextID(ctx, r.DB, responsesCollection)
	if err != nil {
		return err
	}
	resp.ID = id
	_, err = r.DB.Collection(responsesCollection).InsertOne(ctx, resp)
	return err
}

func mongoFilter(filter FeedbackFilter) bson.M {
	q := bson.M{}
	if filter.Category != "" {
		q["category"] = filter.Category
	}
	if len(filter.Statuses) > 0 {
		q["status"] = bson.M{"$in": filter.Statuses}
	}
	return q
}
