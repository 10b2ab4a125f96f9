package handlers

import (
	"net/http"

	"github.com/AmaanBilwar/BER-StockChecker/internal/domain"
	"github.com/AmaanBilwar/BER-StockChecker/internal/imaging"
	"github.com/AmaanBilwar/BER-StockChecker/internal/vision"
	"github.com/AmaanBilwar/BER-StockChecker/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ScanHandler struct {
	logger *zap.Logger
	vision vision.Client
}

func NewScanHandler(logger *zap.Logger, visionClient vision.Client) *ScanHandler {
	return &ScanHandler{
		logger: logger,
		vision: visionClient,
	}
}

// ScanItem handles POST /api/scan
// @Summary      Extract text from an item photograph
// @Description  Decodes a data-URL embedded image, runs it through the
// @Description  vision backend and returns a name suggestion the client can
// @Description  adjust before creating the item.
// @Tags         scan
// @Accept       json
// @Produce      json
// @Param        request  body      ScanRequest  true  "Embedded image"
// @Success      200      {object}  domain.ScanResult
// @Failure      400      {object}  ErrorResponse  "Missing or undecodable image"
// @Failure      502      {object}  ErrorResponse  "Vision backend failure"
// @Router       /scan [post]
func (h *ScanHandler) ScanItem(c *gin.Context) {
	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errors.NewInvalidImageData(err))
		return
	}
	if req.Image == "" {
		missing := errors.NewMissingField("image")
		c.JSON(missing.HTTPStatus(), missing)
		return
	}

	img, err := imaging.DecodeDataURL(req.Image)
	if err != nil {
		h.logger.Warn("Undecodable scan payload", zap.Error(err))
		invalid := errors.NewInvalidImageData(err)
		c.JSON(invalid.HTTPStatus(), invalid)
		return
	}

	text, err := h.vision.ExtractText(c.Request.Context(), img)
	if err != nil {
		h.logger.Error("Vision backend call failed", zap.Error(err))
		external := errors.NewExternalServiceError("vision backend", err)
		c.JSON(external.HTTPStatus(), external)
		return
	}

	c.JSON(http.StatusOK, domain.NewScanResult(text))
}
