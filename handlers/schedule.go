package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fieldops/models"
	"fieldops/services/scheduling"
)

// ScheduleHandler serves the scheduling engine's HTTP surface.
type ScheduleHandler struct {
	Svc    scheduling.SchedulingService
	Logger *zap.Logger
}

// NewScheduleHandler constructs a ScheduleHandler.
func NewScheduleHandler(svc scheduling.SchedulingService, logger *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{Svc: svc, Logger: logger}
}

// statusForScheduleError maps typed service errors onto HTTP statuses.
// Partial assignment is not an error: those runs return 200 with gaps
// enumerated in the payload.
func statusForScheduleError(err error) int {
	switch {
	case scheduling.IsInvalidInput(err):
		return http.StatusBadRequest
	case scheduling.IsNotFound(err):
		return http.StatusNotFound
	case scheduling.IsConflict(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// GenerateScheduleHandler runs a scheduling pass for a provider/date and
// returns the run result plus the created proposal's identifier.
func (h *ScheduleHandler) GenerateScheduleHandler(c *gin.Context) {
	var req models.GenerateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	result, err := h.Svc.GenerateSchedule(c.Request.Context(), req)
	if err != nil {
		h.Logger.Warn("schedule generation failed",
			zap.String("providerID", req.ProviderID), zap.Error(err))
		c.JSON(statusForScheduleError(err), gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// ModifyProposalHandler applies human overrides to a pending proposal.
func (h *ScheduleHandler) ModifyProposalHandler(c *gin.Context) {
	proposalID := c.Param("proposalID")
	var req models.ModifyProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.Svc.ModifyProposal(c.Request.Context(), proposalID, req.Modifications); err != nil {
		h.Logger.Warn("proposal modification failed",
			zap.String("proposalID", proposalID), zap.Error(err))
		c.JSON(statusForScheduleError(err), gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ApproveProposalHandler commits a pending proposal to its jobs.
func (h *ScheduleHandler) ApproveProposalHandler(c *gin.Context) {
	proposalID := c.Param("proposalID")
	if err := h.Svc.ApproveProposal(c.Request.Context(), proposalID); err != nil {
		h.Logger.Warn("proposal approval failed",
			zap.String("proposalID", proposalID), zap.Error(err))
		c.JSON(statusForScheduleError(err), gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// RejectProposalHandler discards a pending proposal.
func (h *ScheduleHandler) RejectProposalHandler(c *gin.Context) {
	proposalID := c.Param("proposalID")
	if err := h.Svc.RejectProposal(c.Request.Context(), proposalID); err != nil {
		h.Logger.Warn("proposal rejection failed",
			zap.String("proposalID", proposalID), zap.Error(err))
		c.JSON(statusForScheduleError(err), gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetProposalHandler returns a proposal and its rows for review.
func (h *ScheduleHandler) GetProposalHandler(c *gin.Context) {
	proposalID := c.Param("proposalID")
	view, err := h.Svc.GetProposal(proposalID)
	if err != nil {
		c.JSON(statusForScheduleError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetAvailabilityHandler returns the eligible worker ids for a provider/date.
func (h *ScheduleHandler) GetAvailabilityHandler(c *gin.Context) {
	providerID := c.Query("providerId")
	date := c.Query("date")
	if providerID == "" || date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "providerId and date are required"})
		return
	}

	workerIDs, err := h.Svc.ResolveAvailability(providerID, date, c.QueryArray("excludeWorkerIds"))
	if err != nil {
		c.JSON(statusForScheduleError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"providerId": providerID, "date": date, "eligibleWorkerIds": workerIDs})
}
