package workerRepo

import (
	"context"
	"fmt"
	"time"

	"fieldops/database"
	"fieldops/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoWorkerRepo implements WorkerRepository using MongoDB.
type MongoWorkerRepo struct {
	coll *mongo.Collection
}

// NewMongoWorkerRepo constructs a new instance of MongoWorkerRepo.
func NewMongoWorkerRepo() WorkerRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &MongoWorkerRepo{coll: db.Collection("workers")}
}

func (repo *MongoWorkerRepo) GetByID(workerID string) (*models.Worker, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var worker models.Worker
	if err := repo.coll.FindOne(ctx, bson.M{"id": workerID}).Decode(&worker); err != nil {
		return nil, fmt.Errorf("error fetching worker with id %s: %w", workerID, err)
	}
	return &worker, nil
}

// GetByProvider returns the provider's workers sorted by id ascending, so
// downstream ordering is deterministic.
func (repo *MongoWorkerRepo) GetByProvider(providerID string, activeOnly bool) ([]models.Worker, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"provider_id": providerID}
	if activeOnly {
		filter["active"] = true
	}
	opts := options.Find().SetSort(bson.D{{Key: "id", Value: 1}})
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching workers for provider %s: %w", providerID, err)
	}
	defer cursor.Close(ctx)

	var workers []models.Worker
	if err := cursor.All(ctx, &workers); err != nil {
		return nil, fmt.Errorf("error decoding workers: %w", err)
	}
	return workers, nil
}

func (repo *MongoWorkerRepo) Create(worker *models.Worker) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	worker.CreatedAt = time.Now()
	if _, err := repo.coll.InsertOne(ctx, worker); err != nil {
		return fmt.Errorf("error creating worker: %w", err)
	}
	return nil
}

func (repo *MongoWorkerRepo) SetActive(workerID string, active bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"active": active, "updated_at": time.Now()}}
	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": workerID}, update)
	if err != nil {
		return fmt.Errorf("error updating worker %s: %w", workerID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("worker with id %s not found", workerID)
	}
	return nil
}
