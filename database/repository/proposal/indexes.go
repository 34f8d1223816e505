package proposalRepo

import (
	"context"
	"fmt"
	"time"

	"fieldops/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the proposal indexes. The partial unique index on
// (provider_id, date) scoped to pending status is the invariant that at most
// one pending proposal occupies a provider/date slot, across all instances.
func (repo *MongoProposalRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pendingSlotIdx := mongo.IndexModel{
		Keys: bson.D{
			{Key: "provider_id", Value: 1},
			{Key: "date", Value: 1},
		},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"status": models.ProposalPending}),
	}

	proposalModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: 1}}},
		pendingSlotIdx,
	}
	if _, err := repo.proposalColl.Indexes().CreateMany(ctx, proposalModels); err != nil {
		return fmt.Errorf("failed to create proposal indexes: %w", err)
	}

	assignmentModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "proposal_id", Value: 1}, {Key: "job_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := repo.assignmentColl.Indexes().CreateMany(ctx, assignmentModels); err != nil {
		return fmt.Errorf("failed to create proposed assignment indexes: %w", err)
	}
	return nil
}
