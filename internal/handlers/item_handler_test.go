package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AmaanBilwar/BER-StockChecker/internal/domain"
	"github.com/AmaanBilwar/BER-StockChecker/internal/repository"
	"github.com/AmaanBilwar/BER-StockChecker/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockItemRepository is a mock implementation of ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) List(ctx context.Context) ([]domain.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockItemRepository) FindByID(ctx context.Context, id string) (*domain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockItemRepository) Create(ctx context.Context, item domain.NewItem) (*domain.Item, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockItemRepository) Update(ctx context.Context, id string, upd domain.ItemUpdate) (*domain.Item, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockItemRepository) Health(ctx context.Context) repository.HealthReport {
	args := m.Called(ctx)
	return args.Get(0).(repository.HealthReport)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event interface{}) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func setupItemRouter(handler *ItemHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(gin.Recovery())

	api := router.Group("/api")
	{
		api.GET("/items", handler.ListItems)
		api.POST("/items", handler.CreateItem)
		api.GET("/items/:id", handler.GetItem)
		api.PUT("/items/:id", handler.UpdateItem)
	}

	return router
}

func storedItem(id string) *domain.Item {
	createdAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return &domain.Item{
		ID:        id,
		Name:      "Motor Controller",
		Category:  "electronics",
		Quantity:  3,
		Location:  domain.LocationEVShelf,
		CreatedAt: &createdAt,
	}
}

func TestListItems_Success(t *testing.T) {
	// Setup
	mockRepo := new(MockItemRepository)
	mockEventBus := new(MockEventPublisher)
	handler := NewItemHandler(zap.NewNop(), mockRepo, mockEventBus)
	router := setupItemRouter(handler)

	mockRepo.On("List", mock.Anything).Return([]domain.Item{*storedItem("507f1f77bcf86cd799439011")}, nil)

	req, _ := http.NewRequest("GET", "/api/items", nil)
	w := httptest.NewRecorder()

	// Execute
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	var response []map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Len(t, response, 1)
	assert.Equal(t, "507f1f77bcf86cd799439011", response[0]["_id"])
	assert.Equal(t, "Ev Shelf", response[0]["location"], "list returns display labels")
	assert.Equal(t, "2024-06-01T12:00:00Z", response[0]["created_at"])

	mockRepo.AssertExpectations(t)
}

func TestListItems_EmptyStore(t *testing.T) {
	// Setup
	mockRepo := new(MockItemRepository)
	handler := NewItemHandler(zap.NewNop(), mockRepo, new(MockEventPublisher))
	router := setupItemRouter(handler)

	mockRepo.On("List", mock.Anything).Return([]domain.Item{}, nil)

	req, _ := http.NewRequest("GET", "/api/items", nil)
	w := httptest.NewRecorder()

	// Execute
	router.ServeHTTP(w, req)

	// Assert - empty array, not null
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestListItems_StoreError(t *testing.T) {
	// Setup
	mockRepo := new(MockItemRepository)
	handler := NewItemHandler(zap.NewNop(), mockRepo, new(MockEventPublisher))
	router := setupItemRouter(handler)

	mockRepo.On("List", mock.Anything).Return(nil, errors.NewPersistenceError("list items", assert.AnError))

	req, _ := http.NewRequest("GET", "/api/items", nil)
	w := httptest.NewRecorder()

	// Execute
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "PersistenceError", response["error"])
}

func TestGetItem_Success(t *testing.T) {
	// Setup
	mockRepo := new(MockItemRepository)
	handler := NewItemHandler(zap.NewNop(), mockRepo, new(MockEventPublisher))
	router := setupItemRouter(handler)

	itemID := "507f1f77bcf86cd799439011"
	mockRepo.On("FindByID", mock.Anything, itemID).Return(storedItem(itemID), nil)

	req, _ := http.NewRequest("GET", "/api/items/"+itemID, nil)
	w := httptest.NewRecorder()

	// Execute
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, itemID, response["_id"])
	assert.Equal(t, "Motor Controller", response["name"])
	assert.Equal(t, float64(3), response["quantity"])
	assert.Equal(t, "Ev Shelf", response["location"])

	mockRepo.AssertExpectations(t)
}

func TestGetItem_LegacyRecordWithoutCreatedAt(t *testing.T) {
	// Setup
	mockRepo := new(MockItemRepository)
	handler := NewItemHandler(zap.NewNop(), mockRepo, new(MockEventPublisher))
	router := setupItemRouter(handler)

	itemID := "507f1f77bcf86cd799439011"
	item := storedItem(itemID)
	item.CreatedAt = nil
	item.Location = ""
	mockRepo.On("FindByID", mock.Anything, itemID).Return(item, nil)

	req, _ := http.NewRequest("GET", "/api/items/"+itemID, nil)
	w := httptest.NewRecorder()

	// Execute
	router.ServeHTTP(w, req)

	// Assert - created_at null and location empty string are tolerated
	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Nil(t, response["created_at"])
	assert.Equal(t, "", response["location"])
}

func TestGetItem_NotFound(t *testing.T) {
	// Setup
	mockRepo := new(MockItemRepository)
	handler := NewItemHandler(zap.NewNop(), mockRepo, new(MockEventPublisher))
	router := setupItemRouter(handler)

	itemID := "507f1f77bcf86cd799439099"
	mockRepo.On("FindByID", mock.Anything, itemID).Return(nil, errors.NewNotFound(itemID))

	req, _ := http.NewRequest("GET", "/api/items/"+itemID, nil)
	w := httptest.NewRecorder()

	// Execute
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusNotFound, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "NotFound", response["error"])
}

func TestGetItem_MalformedIdentifier(t *testing.T) {
	// Setup
	mockRepo := new(MockItemRepository)
	handler := NewItemHandler(zap.NewNop(), mockRepo, new(MockEventPublisher))
	router := setupItemRouter(handler)

	mockRepo.On("FindByID", mock.Anything, "zzz").Return(nil, errors.NewInvalidIdentifier("zzz"))

	req, _ := http.NewRequest("GET", "/api/items/zzz", nil)
	w := httptest.NewRecorder()

	// Execute
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "InvalidIdentifier", response["error"])
}

func TestCreateItem_Success(t *testing.T) {
	// Setup
	mockRepo := new(MockItemRepository)
	mockEventBus := new(MockEventPublisher)
	handler := NewItemHandler(zap.NewNop(), mockRepo, mockEventBus)
	router := setupItemRouter(handler)

	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("domain.NewItem")).Return(storedItem("507f1f77bcf86cd799439011"), nil)
	mockEventBus.On("Publish", mock.Anything, mock.AnythingOfType("events.ItemCreatedEvent")).Return(nil)

	reqBody := map[string]interface{}{
		"name":     "Motor Controller",
		"category": "electronics",
		"quantity": 3,
		"location": "ev_shelf",
	}
	body, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("POST", "/api/items", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	// Execute
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusCreated, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "Motor Controller", response["name"])
	assert.Equal(t, float64(3), response["quantity"])
	assert.Equal(t, "Ev Shelf", response["location"])

	mockRepo.AssertExpectations(t)
	mockEventBus.AssertExpectations(t)
}

func TestCreateItem_MissingName(t *testing.T) {
	// Setup
	mockRepo := new(MockItemRepository)
	handler := NewItemHandler(zap.NewNop(), mockRepo, new(MockEventPublisher))
	router := setupItemRouter(handler)

	reqBody := map[string]interface{}{
		"category": "electronics",
		"quantity": 3,
	}
	body, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("POST", "/api/items", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	// Execute
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "MissingField", response["error"])

	mockRepo.AssertNotCalled(t, "Create")
}

func TestCreateItem_ZeroQuantity(t *testing.T) {
	// Setup
	mockRepo := new(MockItemRepository)
	handler := NewItemHandler(zap.NewNop(), mockRepo, new(MockEventPublisher))
	router := setupItemRouter(handler)

	// Quantity 0 fails the truthiness-based required check.
	reqBody := map[string]interface{}{
		"name":     "Motor Controller",
		"category": "electronics",
		"quantity": 0,
	}
	body, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("POST", "/api/items", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	// Execute
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "MissingField", response["error"])
	assert.Contains(t, response["details"], "quantity")

	mockRepo.AssertNotCalled(t, "Create")
}

func TestCreateItem_InvalidLocation(t *testing.T) {
	// Setup
	mockRepo := new(MockItemRepository)
	handler := NewItemHandler(zap.NewNop(), mockRepo, new(MockEventPublisher))
	router := setupItemRouter(handler)

	reqBody := map[string]interface{}{
		"name":     "Motor Controller",
		"category": "electronics",
		"quantity": 3,
		"location": "warehouse_b",
	}
	body, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("POST", "/api/items", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	// Execute
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "InvalidLocation", response["error"])

	mockRepo.AssertNotCalled(t, "Create")
}

func TestCreateItem_PersistenceError(t *testing.T) {
	// Setup
	mockRepo := new(MockItemRepository)
	mockEventBus := new(MockEventPublisher)
	handler := NewItemHandler(zap.NewNop(), mockRepo, mockEventBus)
	router := setupItemRouter(handler)

	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("domain.NewItem")).Return(nil, errors.NewPersistenceError("insert item", assert.AnError))

	reqBody := map[string]interface{}{
		"name":     "Motor Controller",
		"category": "electronics",
		"quantity": 3,
	}
	body, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("POST", "/api/items", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	// Execute
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	mockEventBus.AssertNotCalled(t, "Publish")
}

func TestUpdateItem_Success(t *testing.T) {
	// Setup
	mockRepo := new(MockItemRepository)
	mockEventBus := new(MockEventPublisher)
	handler := NewItemHandler(zap.NewNop(), mockRepo, mockEventBus)
	router := setupItemRouter(handler)

	itemID := "507f1f77bcf86cd799439011"
	updated := storedItem(itemID)
	updated.Quantity = 7
	mockRepo.On("Update", mock.Anything, itemID, domain.ItemUpdate{Quantity: 7}).Return(updated, nil)
	mockEventBus.On("Publish", mock.Anything, mock.AnythingOfType("events.ItemUpdatedEvent")).Return(nil)

	reqBody := map[string]interface{}{"quantity": 7}
	body, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("PUT", "/api/items/"+itemID, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	// Execute
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, float64(7), response["quantity"])
	assert.Equal(t, "Ev Shelf", response["location"], "location survives a quantity-only update")

	mockRepo.AssertExpectations(t)
	mockEventBus.AssertExpectations(t)
}

func TestUpdateItem_MissingQuantity(t *testing.T) {
	// Setup
	mockRepo := new(MockItemRepository)
	handler := NewItemHandler(zap.NewNop(), mockRepo, new(MockEventPublisher))
	router := setupItemRouter(handler)

	reqBody := map[string]interface{}{"location": "ev_shelf"}
	body, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("PUT", "/api/items/507f1f77bcf86cd799439011", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	// Execute
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "MissingField", response["error"])

	mockRepo.AssertNotCalled(t, "Update")
}

func TestUpdateItem_ZeroQuantityAccepted(t *testing.T) {
	// Setup
	mockRepo := new(MockItemRepository)
	mockEventBus := new(MockEventPublisher)
	handler := NewItemHandler(zap.NewNop(), mockRepo, mockEventBus)
	router := setupItemRouter(handler)

	itemID := "507f1f77bcf86cd799439011"
	updated := storedItem(itemID)
	updated.Quantity = 0
	mockRepo.On("Update", mock.Anything, itemID, domain.ItemUpdate{Quantity: 0}).Return(updated, nil)
	mockEventBus.On("Publish", mock.Anything, mock.Anything).Return(nil)

	reqBody := map[string]interface{}{"quantity": 0}
	body, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("PUT", "/api/items/"+itemID, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	// Execute
	router.ServeHTTP(w, req)

	// Assert - update accepts a supplied quantity of 0, unlike create
	assert.Equal(t, http.StatusOK, w.Code)
	mockRepo.AssertExpectations(t)
}

func TestUpdateItem_EmptyLocationRejected(t *testing.T) {
	// Setup
	mockRepo := new(MockItemRepository)
	handler := NewItemHandler(zap.NewNop(), mockRepo, new(MockEventPublisher))
	router := setupItemRouter(handler)

	reqBody := map[string]interface{}{"quantity": 2, "location": ""}
	body, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("PUT", "/api/items/507f1f77bcf86cd799439011", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	// Execute
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "InvalidLocation", response["error"])

	mockRepo.AssertNotCalled(t, "Update")
}

func TestUpdateItem_NotFound(t *testing.T) {
	// Setup
	mockRepo := new(MockItemRepository)
	mockEventBus := new(MockEventPublisher)
	handler := NewItemHandler(zap.NewNop(), mockRepo, mockEventBus)
	router := setupItemRouter(handler)

	itemID := "507f1f77bcf86cd799439099"
	mockRepo.On("Update", mock.Anything, itemID, mock.AnythingOfType("domain.ItemUpdate")).Return(nil, errors.NewNotFound(itemID))

	reqBody := map[string]interface{}{"quantity": 2}
	body, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("PUT", "/api/items/"+itemID, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	// Execute
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusNotFound, w.Code)
	mockEventBus.AssertNotCalled(t, "Publish")
}

func TestUpdateItem_MalformedIdentifier(t *testing.T) {
	// Setup
	mockRepo := new(MockItemRepository)
	handler := NewItemHandler(zap.NewNop(), mockRepo, new(MockEventPublisher))
	router := setupItemRouter(handler)

	mockRepo.On("Update", mock.Anything, "zzz", mock.AnythingOfType("domain.ItemUpdate")).Return(nil, errors.NewInvalidIdentifier("zzz"))

	reqBody := map[string]interface{}{"quantity": 2}
	body, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("PUT", "/api/items/zzz", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	// Execute
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "InvalidIdentifier", response["error"])
}
