package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	availabilityRepo "fieldops/database/repository/availability"
	"fieldops/models"
)

// AvailabilityHandler manages the blocked-time and time-off records that the
// availability resolver consumes.
type AvailabilityHandler struct {
	Repo   availabilityRepo.AvailabilityRepository
	Logger *zap.Logger
}

// NewAvailabilityHandler constructs an AvailabilityHandler.
func NewAvailabilityHandler(repo availabilityRepo.AvailabilityRepository, logger *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{Repo: repo, Logger: logger}
}

func (h *AvailabilityHandler) CreateBlockedTimeHandler(c *gin.Context) {
	var block models.BlockedTime
	if err := c.ShouldBindJSON(&block); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if block.ProviderID == "" || block.Date == "" || block.End <= block.Start {
		c.JSON(http.StatusBadRequest, gin.H{"error": "provider_id, date and a valid start/end window are required"})
		return
	}
	if block.BlockID == "" {
		block.BlockID = uuid.New().String()
	}

	if err := h.Repo.CreateBlocked(&block); err != nil {
		h.Logger.Error("failed to create blocked interval", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create blocked interval"})
		return
	}
	c.JSON(http.StatusCreated, block)
}

func (h *AvailabilityHandler) DeleteBlockedTimeHandler(c *gin.Context) {
	blockID := c.Param("blockID")
	if err := h.Repo.DeleteBlocked(blockID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AvailabilityHandler) ListBlockedTimeHandler(c *gin.Context) {
	providerID := c.Query("providerId")
	date := c.Query("date")
	if providerID == "" || date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "providerId and date are required"})
		return
	}

	blocks, err := h.Repo.GetBlockedByProviderAndDate(providerID, date)
	if err != nil {
		h.Logger.Error("failed to list blocked intervals", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list blocked intervals"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"blocked": blocks})
}

func (h *AvailabilityHandler) CreateTimeOffHandler(c *gin.Context) {
	var request models.TimeOffRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if request.ProviderID == "" || request.WorkerID == "" || request.StartDate == "" || request.EndDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "provider_id, worker_id, start_date and end_date are required"})
		return
	}
	if request.EndDate < request.StartDate {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must not precede start_date"})
		return
	}
	if request.ID == "" {
		request.ID = uuid.New().String()
	}

	if err := h.Repo.CreateTimeOff(&request); err != nil {
		h.Logger.Error("failed to create time-off request", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create time-off request"})
		return
	}
	c.JSON(http.StatusCreated, request)
}

func (h *AvailabilityHandler) SetTimeOffStatusHandler(c *gin.Context) {
	requestID := c.Param("requestID")
	var input struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	switch input.Status {
	case models.TimeOffApproved, models.TimeOffDenied, models.TimeOffPending:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be pending, approved or denied"})
		return
	}

	if err := h.Repo.SetTimeOffStatus(requestID, input.Status); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AvailabilityHandler) ListTimeOffHandler(c *gin.Context) {
	providerID := c.Query("providerId")
	if providerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "providerId is required"})
		return
	}

	requests, err := h.Repo.ListTimeOff(providerID)
	if err != nil {
		h.Logger.Error("failed to list time-off requests", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list time-off requests"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"timeOff": requests})
}
