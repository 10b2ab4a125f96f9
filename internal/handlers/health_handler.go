package handlers

import (
	"net/http"

	"github.com/AmaanBilwar/BER-StockChecker/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type HealthHandler struct {
	logger     *zap.Logger
	repository repository.ItemRepository
}

func NewHealthHandler(logger *zap.Logger, repo repository.ItemRepository) *HealthHandler {
	return &HealthHandler{
		logger:     logger,
		repository: repo,
	}
}

// GetHealth handles GET /api/health
// @Summary      Service and store health
// @Description  Probes the document store and reports connectivity, the
// @Description  collection names and the item count. An unreachable store
// @Description  yields an unhealthy report, never an unhandled error.
// @Tags         health
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Failure      500  {object}  HealthResponse  "status unhealthy with the probe error"
// @Router       /health [get]
func (h *HealthHandler) GetHealth(c *gin.Context) {
	report := h.repository.Health(c.Request.Context())

	response := HealthResponse{
		Connected:   report.Connected,
		Collections: report.Collections,
		Items:       report.Items,
		Error:       report.Error,
	}

	if !report.Connected || report.Error != "" {
		response.Status = "unhealthy"
		h.logger.Warn("Health probe failed",
			zap.Bool("connected", report.Connected),
			zap.String("error", report.Error),
		)
		c.JSON(http.StatusInternalServerError, response)
		return
	}

	response.Status = "healthy"
	c.JSON(http.StatusOK, response)
}
