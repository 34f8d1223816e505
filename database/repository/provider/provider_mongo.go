package providerRepo

import (
	"context"
	"fmt"
	"time"

	"fieldops/database"
	"fieldops/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoProviderRepo implements ProviderRepository using MongoDB.
type MongoProviderRepo struct {
	coll *mongo.Collection
}

// NewMongoProviderRepo constructs a new instance of MongoProviderRepo.
func NewMongoProviderRepo() ProviderRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &MongoProviderRepo{coll: db.Collection("providers")}
}

func (repo *MongoProviderRepo) GetByID(providerID string) (*models.Provider, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var provider models.Provider
	if err := repo.coll.FindOne(ctx, bson.M{"id": providerID}).Decode(&provider); err != nil {
		return nil, fmt.Errorf("error fetching provider with id %s: %w", providerID, err)
	}
	return &provider, nil
}

func (repo *MongoProviderRepo) Create(provider *models.Provider) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	provider.CreatedAt = time.Now()
	if _, err := repo.coll.InsertOne(ctx, provider); err != nil {
		return fmt.Errorf("error creating provider: %w", err)
	}
	return nil
}
