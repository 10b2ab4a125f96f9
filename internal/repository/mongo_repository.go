package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/AmaanBilwar/BER-StockChecker/internal/config"
	"github.com/AmaanBilwar/BER-StockChecker/internal/domain"
	"github.com/AmaanBilwar/BER-StockChecker/pkg/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// itemDocument is the store-side shape of an item. CreatedAt is a pointer
// because legacy documents predate the field.
type itemDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Category  string             `bson:"category"`
	Quantity  int                `bson:"quantity"`
	Location  string             `bson:"location,omitempty"`
	ImageURL  *string            `bson:"image_url"`
	CreatedAt *time.Time         `bson:"created_at,omitempty"`
}

func (d *itemDocument) toDomain() *domain.Item {
	return &domain.Item{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Category:  d.Category,
		Quantity:  d.Quantity,
		Location:  d.Location,
		ImageURL:  d.ImageURL,
		CreatedAt: d.CreatedAt,
	}
}

// MongoItemRepository implements ItemRepository backed by a MongoDB
// collection.
type MongoItemRepository struct {
	client *mongo.Client
	db     *mongo.Database
	coll   *mongo.Collection
	logger *zap.Logger
}

// NewMongoItemRepository connects to MongoDB and returns a repository over
// the configured items collection. Connection establishment is lazy; an
// unreachable store is logged here and reported by Health, not fatal.
func NewMongoItemRepository(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*MongoItemRepository, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to create MongoDB client: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		logger.Warn("MongoDB is not reachable at startup, continuing anyway",
			zap.String("uri", cfg.MongoURI),
			zap.Error(err),
		)
	}

	db := client.Database(cfg.MongoDatabase)
	return &MongoItemRepository{
		client: client,
		db:     db,
		coll:   db.Collection(cfg.MongoCollection),
		logger: logger,
	}, nil
}

// Close disconnects the underlying client.
func (r *MongoItemRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

// List returns every stored item in natural (insertion) order.
func (r *MongoItemRepository) List(ctx context.Context) ([]domain.Item, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, errors.NewPersistenceError("list items", err)
	}
	defer cursor.Close(ctx)

	var docs []itemDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.NewPersistenceError("decode items", err)
	}

	items := make([]domain.Item, 0, len(docs))
	for i := range docs {
		items = append(items, *docs[i].toDomain())
	}
	return items, nil
}

// FindByID parses the hex identifier and fetches the matching document.
func (r *MongoItemRepository) FindByID(ctx context.Context, id string) (*domain.Item, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.NewInvalidIdentifier(id)
	}
	return r.findByObjectID(ctx, oid)
}

func (r *MongoItemRepository) findByObjectID(ctx context.Context, oid primitive.ObjectID) (*domain.Item, error) {
	var doc itemDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.NewNotFound(oid.Hex())
		}
		return nil, errors.NewPersistenceError("find item", err)
	}
	return doc.toDomain(), nil
}

// Create inserts the record, then re-fetches it by the assigned identifier
// so the response reflects exactly what the store persisted.
func (r *MongoItemRepository) Create(ctx context.Context, item domain.NewItem) (*domain.Item, error) {
	createdAt := item.CreatedAt
	doc := itemDocument{
		Name:      item.Name,
		Category:  item.Category,
		Quantity:  item.Quantity,
		Location:  item.Location,
		ImageURL:  item.ImageURL,
		CreatedAt: &createdAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, errors.NewPersistenceError("insert item", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, errors.NewPersistenceError("insert item", fmt.Errorf("unexpected inserted ID type %T", res.InsertedID))
	}

	stored, err := r.findByObjectID(ctx, oid)
	if err != nil {
		return nil, errors.NewPersistenceError("fetch item after insert", err)
	}
	return stored, nil
}

// Update applies the partial update set with $set, then re-fetches the
// canonical stored shape.
func (r *MongoItemRepository) Update(ctx context.Context, id string, upd domain.ItemUpdate) (*domain.Item, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.NewInvalidIdentifier(id)
	}

	set := bson.D{{Key: "quantity", Value: upd.Quantity}}
	if upd.Location != nil {
		set = append(set, bson.E{Key: "location", Value: *upd.Location})
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.D{{Key: "$set", Value: set}})
	if err != nil {
		return nil, errors.NewPersistenceError("update item", err)
	}
	if res.MatchedCount == 0 {
		return nil, errors.NewNotFound(id)
	}

	return r.findByObjectID(ctx, oid)
}

// Health probes the store. Failures are reported, never propagated.
func (r *MongoItemRepository) Health(ctx context.Context) HealthReport {
	report := HealthReport{Collections: []string{}}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := r.client.Ping(pingCtx, readpref.Primary()); err != nil {
		report.Error = err.Error()
		return report
	}
	report.Connected = true

	collections, err := r.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		r.logger.Warn("Failed to list collections", zap.Error(err))
		report.Error = err.Error()
		return report
	}
	report.Collections = collections

	count, err := r.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		r.logger.Warn("Failed to count items", zap.Error(err))
		report.Error = err.Error()
		return report
	}
	report.Items = count

	return report
}
