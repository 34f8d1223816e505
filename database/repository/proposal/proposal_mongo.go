package proposalRepo

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

// MongoProposalRepo implements ProposalRepository using MongoDB.
type MongoProposalRepo struct {
	proposalColl   *mongo.Collection
	assignmentColl *mongo.Collection
	jobColl        *mongo.Collection
}

// NewMongoProposalRepo constructs a new instance of MongoProposalRepo.
func NewMongoProposalRepo() ProposalRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &MongoProposalRepo{
		proposalColl:   db.Collection("schedule_proposals"),
		assignmentColl: db.Collection("proposed_assignments"),
		jobColl:        db.Collection("jobs"),
	}
}

func (repo *MongoProposalRepo) GetByID(proposalID string) (*models.ScheduleProposal, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var proposal models.ScheduleProposal
	err := repo.proposalColl.FindOne(ctx, bson.M{"id": proposalID}).Decode(&proposal)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("proposal %s: %w", proposalID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching proposal with id %s: %w", proposalID, err)
	}
	return &proposal, nil
}

// GetAssignments returns the proposal's rows sorted by job id for stable review output.
func (repo *MongoProposalRepo) GetAssignments(proposalID string) ([]models.ProposedAssignment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "job_id", Value: 1}})
	cursor, err := repo.assignmentColl.Find(ctx, bson.M{"proposal_id": proposalID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching proposed assignments: %w", err)
	}
	defer cursor.Close(ctx)

	var assignments []models.ProposedAssignment
	if err := cursor.All(ctx, &assignments); err != nil {
		return nil, fmt.Errorf("error decoding proposed assignments: %w", err)
	}
	return assignments, nil
}

// Reject is a terminal transition; no job records are touched.
func (repo *MongoProposalRepo) Reject(ctx context.Context, proposalID string) error {
	update := bson.M{"$set": bson.M{"status": models.ProposalRejected, "updated_at": time.Now()}}
	res, err := repo.proposalColl.UpdateOne(ctx,
		bson.M{"id": proposalID, "status": models.ProposalPending}, update)
	if err != nil {
		return fmt.Errorf("error rejecting proposal %s: %w", proposalID, err)
	}
	if res.MatchedCount == 0 {
		if _, lookupErr := repo.GetByID(proposalID); lookupErr != nil {
			return lookupErr
		}
		return fmt.Errorf("proposal %s: %w", proposalID, ErrNotPending)
	}
	return nil
}

func (repo *MongoProposalRepo) ListPendingOlderThan(cutoff time.Time) ([]models.ScheduleProposal, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{
		"status":     models.ProposalPending,
		"created_at": bson.M{"$lt": cutoff},
	}
	cursor, err := repo.proposalColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing pending proposals: %w", err)
	}
	defer cursor.Close(ctx)

	var proposals []models.ScheduleProposal
	if err := cursor.All(ctx, &proposals); err != nil {
		return nil, fmt.Errorf("error decoding pending proposals: %w", err)
	}
	return proposals, nil
}
