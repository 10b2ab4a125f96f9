package handlers

import (
	"net/http"
	"time"

	"github.com/AmaanBilwar/BER-StockChecker/internal/domain"
	"github.com/AmaanBilwar/BER-StockChecker/internal/events"
	"github.com/AmaanBilwar/BER-StockChecker/internal/repository"
	"github.com/AmaanBilwar/BER-StockChecker/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ItemHandler struct {
	logger     *zap.Logger
	repository repository.ItemRepository
	eventBus   events.EventPublisher
}

func NewItemHandler(logger *zap.Logger, repo repository.ItemRepository, eventBus events.EventPublisher) *ItemHandler {
	return &ItemHandler{
		logger:     logger,
		repository: repo,
		eventBus:   eventBus,
	}
}

// respondError converts an operation error to a transport response. Typed
// StandardErrors keep their code and status; anything else is a 500 with
// the stringified error.
func (h *ItemHandler) respondError(c *gin.Context, err error, fallback string) {
	if stdErr, ok := err.(*errors.StandardError); ok {
		if stdErr.HTTPStatus() >= http.StatusInternalServerError {
			h.logger.Error("Store operation failed",
				zap.String("error_code", stdErr.Code),
				zap.String("details", stdErr.Details),
			)
		}
		c.JSON(stdErr.HTTPStatus(), stdErr)
		return
	}
	h.logger.Error(fallback, zap.Error(err))
	c.JSON(http.StatusInternalServerError, errors.NewInternalError(fallback, err))
}

// ListItems handles GET /api/items
// @Summary      List all inventory items
// @Description  Returns every stored item in store-native order.
// @Tags         items
// @Produce      json
// @Success      200  {array}   ItemResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /items [get]
func (h *ItemHandler) ListItems(c *gin.Context) {
	items, err := h.repository.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "failed to list items")
		return
	}

	response := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		response = append(response, newItemResponse(item))
	}
	c.JSON(http.StatusOK, response)
}

// GetItem handles GET /api/items/:id
// @Summary      Get an inventory item by id
// @Tags         items
// @Produce      json
// @Param        id   path      string  true  "Item ID (ObjectID hex)"
// @Success      200  {object}  ItemResponse
// @Failure      400  {object}  ErrorResponse  "Malformed identifier"
// @Failure      404  {object}  ErrorResponse  "Item not found"
// @Router       /items/{id} [get]
func (h *ItemHandler) GetItem(c *gin.Context) {
	item, err := h.repository.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "failed to get item")
		return
	}
	c.JSON(http.StatusOK, newItemResponse(*item))
}

// CreateItem handles POST /api/items
// @Summary      Create a new inventory item
// @Description  name, category and a non-zero quantity are required. The
// @Description  location, when supplied and non-empty, must be a valid
// @Description  storage location token.
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        request  body      CreateItemRequest  true  "Item creation request"
// @Success      201      {object}  ItemResponse
// @Failure      400      {object}  ErrorResponse  "Missing or invalid field"
// @Failure      500      {object}  ErrorResponse  "Store error"
// @Router       /items [post]
func (h *ItemHandler) CreateItem(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, errors.NewStandardError("ValidationError", "invalid request body", err.Error()))
		return
	}

	record, vErr := domain.ValidateCreate(domain.CreateInput{
		Name:     req.Name,
		Category: req.Category,
		Quantity: req.Quantity,
		Location: req.Location,
		ImageURL: req.ImageURL,
	}, time.Now().UTC())
	if vErr != nil {
		c.JSON(vErr.HTTPStatus(), vErr)
		return
	}

	item, err := h.repository.Create(c.Request.Context(), record)
	if err != nil {
		h.respondError(c, err, "failed to create item")
		return
	}

	event := events.ItemCreatedEvent{
		ItemID:     item.ID,
		Name:       item.Name,
		Category:   item.Category,
		Quantity:   item.Quantity,
		Location:   item.Location,
		OccurredAt: record.CreatedAt,
	}
	if err := h.eventBus.Publish(c.Request.Context(), event); err != nil {
		h.logger.Error("Failed to publish event", zap.Error(err))
	}

	h.logger.Info("Item created", zap.String("item_id", item.ID))
	c.JSON(http.StatusCreated, newItemResponse(*item))
}

// UpdateItem handles PUT /api/items/:id
// @Summary      Update an inventory item
// @Description  quantity is required (zero allowed); location, when present,
// @Description  must be a valid storage location token. Name, category and
// @Description  creation time are immutable.
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id       path      string             true  "Item ID (ObjectID hex)"
// @Param        request  body      UpdateItemRequest  true  "Item update request"
// @Success      200      {object}  ItemResponse
// @Failure      400      {object}  ErrorResponse  "Missing or invalid field"
// @Failure      404      {object}  ErrorResponse  "Item not found"
// @Router       /items/{id} [put]
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, errors.NewStandardError("ValidationError", "invalid request body", err.Error()))
		return
	}

	upd, vErr := domain.ValidateUpdate(domain.UpdateInput{
		Quantity: req.Quantity,
		Location: req.Location,
	})
	if vErr != nil {
		c.JSON(vErr.HTTPStatus(), vErr)
		return
	}

	item, err := h.repository.Update(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		h.respondError(c, err, "failed to update item")
		return
	}

	event := events.ItemUpdatedEvent{
		ItemID:     item.ID,
		Quantity:   item.Quantity,
		Location:   upd.Location,
		OccurredAt: time.Now().UTC(),
	}
	if err := h.eventBus.Publish(c.Request.Context(), event); err != nil {
		h.logger.Error("Failed to publish event", zap.Error(err))
	}

	c.JSON(http.StatusOK, newItemResponse(*item))
}
