package proposalRepo

import (
	"context"
	"fmt"
	"time"

	"fieldops/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CreateWithAssignments lands the proposal and all of its rows in one
// transaction, so a failed run leaves no partial proposal behind. The partial
// unique index on (provider_id, date, status=pending) is the cross-instance
// guard: a duplicate key here means another run won the slot.
func (repo *MongoProposalRepo) CreateWithAssignments(
	ctx context.Context,
	proposal *models.ScheduleProposal,
	assignments []models.ProposedAssignment,
	supersede bool,
) error {
	client := repo.proposalColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	now := time.Now()
	proposal.Status = models.ProposalPending
	proposal.CreatedAt = now
	proposal.UpdatedAt = now

	txnFn := func(sc mongo.SessionContext) error {
		if supersede {
			// The prior pending proposal (if any) loses the slot.
			_, err := repo.proposalColl.UpdateOne(sc,
				bson.M{
					"provider_id": proposal.ProviderID,
					"date":        proposal.Date,
					"status":      models.ProposalPending,
				},
				bson.M{"$set": bson.M{
					"status":        models.ProposalRejected,
					"superseded_by": proposal.ID,
					"updated_at":    now,
				}},
			)
			if err != nil {
				return fmt.Errorf("supersede of prior pending proposal failed: %w", err)
			}
		}

		if _, err := repo.proposalColl.InsertOne(sc, proposal); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return fmt.Errorf("provider %s date %s: %w", proposal.ProviderID, proposal.Date, ErrPendingExists)
			}
			return fmt.Errorf("insert proposal failed: %w", err)
		}

		if len(assignments) > 0 {
			docs := make([]interface{}, 0, len(assignments))
			for i := range assignments {
				assignments[i].ProposalID = proposal.ID
				assignments[i].UpdatedAt = now
				docs = append(docs, assignments[i])
			}
			if _, err := repo.assignmentColl.InsertMany(sc, docs); err != nil {
				return fmt.Errorf("insert proposed assignments failed: %w", err)
			}
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return fmt.Errorf("proposal creation transaction failed: %w", err)
	}

	return nil
}

// UpdateAssignments is the explicit human override: each entry's worker list
// is written verbatim onto its row. The pending check and every row write
// share one transaction, so an approval racing the edit aborts the whole
// batch instead of landing edits on a proposal that already left pending, and
// a bad entry mid-batch leaves no row modified. A row's unsatisfied reason is
// cleared only when the new list actually places workers; an edit down to an
// empty list keeps the gap visible.
func (repo *MongoProposalRepo) UpdateAssignments(ctx context.Context, proposalID string, mods []models.ProposalModification) error {
	client := repo.proposalColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	now := time.Now()

	txnFn := func(sc mongo.SessionContext) error {
		res, err := repo.proposalColl.UpdateOne(sc,
			bson.M{"id": proposalID, "status": models.ProposalPending},
			bson.M{"$set": bson.M{"updated_at": now}},
		)
		if err != nil {
			return fmt.Errorf("error touching proposal %s: %w", proposalID, err)
		}
		if res.MatchedCount == 0 {
			var proposal models.ScheduleProposal
			lookupErr := repo.proposalColl.FindOne(sc, bson.M{"id": proposalID}).Decode(&proposal)
			if lookupErr == mongo.ErrNoDocuments {
				return fmt.Errorf("proposal %s: %w", proposalID, ErrNotFound)
			}
			if lookupErr != nil {
				return fmt.Errorf("error fetching proposal %s: %w", proposalID, lookupErr)
			}
			return fmt.Errorf("proposal %s: %w", proposalID, ErrNotPending)
		}

		for _, m := range mods {
			set := bson.M{"worker_ids": m.WorkerIDs, "updated_at": now}
			if len(m.WorkerIDs) > 0 {
				set["reason"] = ""
			}
			res, err := repo.assignmentColl.UpdateOne(sc,
				bson.M{"proposal_id": proposalID, "job_id": m.JobID},
				bson.M{"$set": set},
			)
			if err != nil {
				return fmt.Errorf("error updating proposed assignment for job %s: %w", m.JobID, err)
			}
			if res.MatchedCount == 0 {
				return fmt.Errorf("no proposed assignment for job %s in proposal %s", m.JobID, proposalID)
			}
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return err
	}

	return nil
}

// Approve commits the proposal: the status flips to approved and every row's
// worker list is written into its job's assigned_user_ids. All writes share
// one transaction; a mid-approval failure leaves zero jobs updated.
func (repo *MongoProposalRepo) Approve(ctx context.Context, proposalID string) error {
	client := repo.proposalColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	now := time.Now()

	txnFn := func(sc mongo.SessionContext) error {
		res, err := repo.proposalColl.UpdateOne(sc,
			bson.M{"id": proposalID, "status": models.ProposalPending},
			bson.M{"$set": bson.M{"status": models.ProposalApproved, "updated_at": now}},
		)
		if err != nil {
			return fmt.Errorf("approve proposal failed: %w", err)
		}
		if res.MatchedCount == 0 {
			var proposal models.ScheduleProposal
			lookupErr := repo.proposalColl.FindOne(sc, bson.M{"id": proposalID}).Decode(&proposal)
			if lookupErr == mongo.ErrNoDocuments {
				return fmt.Errorf("proposal %s: %w", proposalID, ErrNotFound)
			}
			if lookupErr != nil {
				return fmt.Errorf("error fetching proposal %s: %w", proposalID, lookupErr)
			}
			return fmt.Errorf("proposal %s: %w", proposalID, ErrNotPending)
		}

		cursor, err := repo.assignmentColl.Find(sc, bson.M{"proposal_id": proposalID})
		if err != nil {
			return fmt.Errorf("error fetching proposed assignments: %w", err)
		}
		var assignments []models.ProposedAssignment
		if err := cursor.All(sc, &assignments); err != nil {
			return fmt.Errorf("error decoding proposed assignments: %w", err)
		}

		for _, pa := range assignments {
			update := bson.M{"$set": bson.M{
				"assigned_user_ids": pa.WorkerIDs,
				"updated_at":        now,
			}}
			if _, err := repo.jobColl.UpdateOne(sc, bson.M{"id": pa.JobID}, update); err != nil {
				return fmt.Errorf("writing assignment for job %s failed: %w", pa.JobID, err)
			}
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return err
	}

	return nil
}
