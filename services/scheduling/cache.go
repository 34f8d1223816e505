package scheduling

import (
	"context"
	"encoding/json"

	"fieldops/models"
	"fieldops/utils"

	"go.uber.org/zap"
)

// Proposal views are cached the way booking sessions are: serialized JSON
// under a prefixed key with a TTL. The cache is best-effort; Mongo remains
// the source of truth and every write path invalidates the key.

func (s *DefaultSchedulingService) cacheProposalView(view *models.ProposalView) {
	if s.Cache == nil {
		return
	}
	data, err := json.Marshal(view)
	if err != nil {
		utils.GetLogger().Warn("failed to marshal proposal view for cache",
			zap.String("proposalID", view.Proposal.ID), zap.Error(err))
		return
	}
	key := utils.ProposalCachePrefix + view.Proposal.ID
	if err := s.Cache.Set(context.Background(), key, data, utils.ProposalCacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("failed to cache proposal view",
			zap.String("proposalID", view.Proposal.ID), zap.Error(err))
	}
}

func (s *DefaultSchedulingService) cachedProposalView(proposalID string) *models.ProposalView {
	if s.Cache == nil {
		return nil
	}
	data, err := s.Cache.Get(context.Background(), utils.ProposalCachePrefix+proposalID).Result()
	if err != nil {
		return nil
	}
	var view models.ProposalView
	if err := json.Unmarshal([]byte(data), &view); err != nil {
		return nil
	}
	return &view
}

func (s *DefaultSchedulingService) invalidateProposalView(proposalID string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(context.Background(), utils.ProposalCachePrefix+proposalID).Err(); err != nil {
		utils.GetLogger().Warn("failed to invalidate proposal cache",
			zap.String("proposalID", proposalID), zap.Error(err))
	}
}
