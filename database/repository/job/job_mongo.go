package jobRepo

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

// MongoJobRepo implements JobRepository using MongoDB.
type MongoJobRepo struct {
	coll *mongo.Collection
}

// NewMongoJobRepo constructs a new instance of MongoJobRepo.
func NewMongoJobRepo() JobRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &MongoJobRepo{coll: db.Collection("jobs")}
}

func (repo *MongoJobRepo) GetByID(jobID string) (*models.Job, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var job models.Job
	if err := repo.coll.FindOne(ctx, bson.M{"id": jobID}).Decode(&job); err != nil {
		return nil, fmt.Errorf("error fetching job with id %s: %w", jobID, err)
	}
	return &job, nil
}

// GetSchedulable returns non-terminal jobs on the date, sorted by start time
// then id so the assignment pass processes them in a stable order.
func (repo *MongoJobRepo) GetSchedulable(providerID, date string) ([]models.Job, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{
		"provider_id": providerID,
		"date":        date,
		"status":      bson.M{"$nin": bson.A{models.JobCompleted, models.JobCancelled}},
	}
	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}, {Key: "id", Value: 1}})
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching schedulable jobs: %w", err)
	}
	defer cursor.Close(ctx)

	var jobs []models.Job
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, fmt.Errorf("error decoding jobs: %w", err)
	}
	return jobs, nil
}

func (repo *MongoJobRepo) GetByIDs(jobIDs []string) ([]models.Job, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctx, bson.M{"id": bson.M{"$in": jobIDs}})
	if err != nil {
		return nil, fmt.Errorf("error fetching jobs by ids: %w", err)
	}
	defer cursor.Close(ctx)

	var jobs []models.Job
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, fmt.Errorf("error decoding jobs: %w", err)
	}
	return jobs, nil
}

func (repo *MongoJobRepo) Create(job *models.Job) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	job.CreatedAt = time.Now()
	if job.Status == "" {
		job.Status = models.JobScheduled
	}
	if _, err := repo.coll.InsertOne(ctx, job); err != nil {
		return fmt.Errorf("error creating job: %w", err)
	}
	return nil
}
