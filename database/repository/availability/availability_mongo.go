package availabilityRepo

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

// MongoAvailabilityRepo implements AvailabilityRepository using MongoDB.
type MongoAvailabilityRepo struct {
	blockedColl *mongo.Collection
	timeOffColl *mongo.Collection
}

// NewMongoAvailabilityRepo constructs a new instance of MongoAvailabilityRepo.
func NewMongoAvailabilityRepo() AvailabilityRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &MongoAvailabilityRepo{
		blockedColl: db.Collection("blocked_time"),
		timeOffColl: db.Collection("time_off_requests"),
	}
}

// GetBlockedByProviderAndDate retrieves all blocked intervals for a given
// provider and date, both worker-level and provider-wide.
func (repo *MongoAvailabilityRepo) GetBlockedByProviderAndDate(providerID, date string) ([]models.BlockedTime, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := repo.blockedColl.Find(ctx, bson.M{"provider_id": providerID, "date": date})
	if err != nil {
		return nil, fmt.Errorf("error fetching blocked intervals: %w", err)
	}
	defer cursor.Close(ctx)

	var blocks []models.BlockedTime
	if err := cursor.All(ctx, &blocks); err != nil {
		return nil, fmt.Errorf("error decoding blocked intervals: %w", err)
	}
	return blocks, nil
}

func (repo *MongoAvailabilityRepo) CreateBlocked(block *models.BlockedTime) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	block.CreatedAt = time.Now()
	if _, err := repo.blockedColl.InsertOne(ctx, block); err != nil {
		return fmt.Errorf("error creating blocked interval: %w", err)
	}
	return nil
}

func (repo *MongoAvailabilityRepo) DeleteBlocked(blockID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := repo.blockedColl.DeleteOne(ctx, bson.M{"block_id": blockID})
	if err != nil {
		return fmt.Errorf("error removing blocked interval with id %s: %w", blockID, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("blocked interval with id %s not found", blockID)
	}
	return nil
}

// GetApprovedTimeOff returns approved requests whose date range spans the
// given date. Only approved status excludes a worker from scheduling.
func (repo *MongoAvailabilityRepo) GetApprovedTimeOff(providerID, date string) ([]models.TimeOffRequest, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{
		"provider_id": providerID,
		"status":      models.TimeOffApproved,
		"start_date":  bson.M{"$lte": date},
		"end_date":    bson.M{"$gte": date},
	}
	cursor, err := repo.timeOffColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching time-off requests: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []models.TimeOffRequest
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("error decoding time-off requests: %w", err)
	}
	return requests, nil
}

func (repo *MongoAvailabilityRepo) ListTimeOff(providerID string) ([]models.TimeOffRequest, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := repo.timeOffColl.Find(ctx, bson.M{"provider_id": providerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing time-off requests: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []models.TimeOffRequest
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("error decoding time-off requests: %w", err)
	}
	return requests, nil
}

func (repo *MongoAvailabilityRepo) CreateTimeOff(request *models.TimeOffRequest) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	request.CreatedAt = time.Now()
	if request.Status == "" {
		request.Status = models.TimeOffPending
	}
	if _, err := repo.timeOffColl.InsertOne(ctx, request); err != nil {
		return fmt.Errorf("error creating time-off request: %w", err)
	}
	return nil
}

func (repo *MongoAvailabilityRepo) SetTimeOffStatus(requestID, status string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": status}}
	res, err := repo.timeOffColl.UpdateOne(ctx, bson.M{"id": requestID}, update)
	if err != nil {
		return fmt.Errorf("error updating time-off request %s: %w", requestID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("time-off request with id %s not found", requestID)
	}
	return nil
}
