package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	workerRepo "fieldops/database/repository/worker"
	"fieldops/models"
)

// WorkerHandler serves the thin worker-directory management endpoints that
// feed the scheduler's availability pool.
type WorkerHandler struct {
	Repo   workerRepo.WorkerRepository
	Logger *zap.Logger
}

// NewWorkerHandler constructs a WorkerHandler.
func NewWorkerHandler(repo workerRepo.WorkerRepository, logger *zap.Logger) *WorkerHandler {
	return &WorkerHandler{Repo: repo, Logger: logger}
}

func (h *WorkerHandler) CreateWorkerHandler(c *gin.Context) {
	var worker models.Worker
	if err := c.ShouldBindJSON(&worker); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if worker.ProviderID == "" || worker.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "provider_id and name are required"})
		return
	}
	if worker.ID == "" {
		worker.ID = uuid.New().String()
	}
	worker.Active = true

	if err := h.Repo.Create(&worker); err != nil {
		h.Logger.Error("failed to create worker", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create worker"})
		return
	}
	c.JSON(http.StatusCreated, worker)
}

func (h *WorkerHandler) ListWorkersHandler(c *gin.Context) {
	providerID := c.Query("providerId")
	if providerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "providerId is required"})
		return
	}
	activeOnly := c.Query("activeOnly") == "true"

	workers, err := h.Repo.GetByProvider(providerID, activeOnly)
	if err != nil {
		h.Logger.Error("failed to list workers", zap.String("providerID", providerID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list workers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"workers": workers})
}

func (h *WorkerHandler) SetWorkerActiveHandler(c *gin.Context) {
	workerID := c.Param("workerID")
	var input struct {
		Active bool `json:"active"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.Repo.SetActive(workerID, input.Active); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
