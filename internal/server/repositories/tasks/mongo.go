package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskflow/internal/common"
	"github.com/dmitrijs2005/taskflow/internal/server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the MongoDB collection holding task documents.
const CollectionName = "tasks"

// MongoRepository stores tasks as documents keyed by id.
type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(CollectionName)}
}

// EnsureIndexes creates the index backing ListByOwner.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: -1}},
		Options: options.Index().SetName("tasks_owner_created_idx"),
	})
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Create stores a copy of task. BSON dates keep milliseconds, so CreatedAt is
// truncated to match what later reads return.
func (r *MongoRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	t := *task
	t.CreatedAt = t.CreatedAt.Truncate(time.Millisecond)

	if _, err := r.coll.InsertOne(ctx, &t); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &t, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (*models.Task, error) {
	var t models.Task
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &t, nil
}

func (r *MongoRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}})

	cur, err := r.coll.Find(ctx, bson.D{{Key: "owner_id", Value: ownerID}}, opts)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer cur.Close(ctx)

	result := make([]*models.Task, 0)
	for cur.Next(ctx) {
		var t models.Task
		if err := cur.Decode(&t); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, &t)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *MongoRepository) Update(ctx context.Context, task *models.Task) (*models.Task, error) {
	filter := bson.D{
		{Key: "_id", Value: task.ID},
		{Key: "owner_id", Value: task.OwnerID},
		{Key: "version", Value: task.Version},
	}
	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "title", Value: task.Title},
			{Key: "description", Value: task.Description},
			{Key: "status", Value: task.Status},
		}},
		{Key: "$inc", Value: bson.D{{Key: "version", Value: 1}}},
	}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, common.ErrVersionConflict
	}

	updated := *task
	updated.Version++
	return &updated, nil
}

func (r *MongoRepository) Delete(ctx context.Context, id, ownerID string) error {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}, {Key: "owner_id", Value: ownerID}})
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if res.DeletedCount == 0 {
		return common.ErrorNotFound
	}
	return nil
}
