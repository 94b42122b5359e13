package checkpoint

import (
	"context"
	stderrors "errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/coachmark/pkg/errors"
)

// MongoConfig configures a MongoStore.
type MongoConfig struct {
	URI string

	// Database defaults to "coachmark".
	Database string

	// Collection defaults to "checkpoints".
	Collection string
}

// MongoStore keeps one document per tour, keyed by tour ID.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// document is the stored form of a Checkpoint.
type document struct {
	ID       string    `bson:"_id"`
	Position int       `bson:"position"`
	Hidden   bool      `bson:"hidden"`
	SavedAt  time.Time `bson:"saved_at"`
}

func toDocument(c Checkpoint) document {
	return document{ID: c.TourID, Position: c.Position, Hidden: c.Hidden, SavedAt: c.SavedAt}
}

func (d document) checkpoint() Checkpoint {
	return Checkpoint{TourID: d.ID, Position: d.Position, Hidden: d.Hidden, SavedAt: d.SavedAt}
}

func byID(tourID string) bson.D { return bson.D{{Key: "_id", Value: tourID}} }

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "connect to mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStore, err, "ping mongo")
	}

	db, coll := cfg.Database, cfg.Collection
	if db == "" {
		db = "coachmark"
	}
	if coll == "" {
		coll = "checkpoints"
	}
	return &MongoStore{client: client, coll: client.Database(db).Collection(coll)}, nil
}

func (s *MongoStore) Load(ctx context.Context, tourID string) (Checkpoint, bool, error) {
	if err := errors.ValidateTourID(tourID); err != nil {
		return Checkpoint{}, false, err
	}
	var d document
	err := withRetry(ctx, func() error {
		return classifyMongo(s.coll.FindOne(ctx, byID(tourID)).Decode(&d))
	})
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return Checkpoint{}, false, nil
	}
	if err != nil {
		return Checkpoint{}, false, errors.Wrap(errors.ErrCodeStore, err, "load checkpoint %s", tourID)
	}
	return d.checkpoint(), true, nil
}

func (s *MongoStore) Save(ctx context.Context, c Checkpoint) error {
	if err := errors.ValidateTourID(c.TourID); err != nil {
		return err
	}
	opts := options.Replace().SetUpsert(true)
	err := withRetry(ctx, func() error {
		_, err := s.coll.ReplaceOne(ctx, byID(c.TourID), toDocument(c), opts)
		return classifyMongo(err)
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "save checkpoint %s", c.TourID)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, tourID string) error {
	if err := errors.ValidateTourID(tourID); err != nil {
		return err
	}
	err := withRetry(ctx, func() error {
		_, err := s.coll.DeleteOne(ctx, byID(tourID))
		return classifyMongo(err)
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "delete checkpoint %s", tourID)
	}
	return nil
}

// List returns the ids of all checkpoint documents.
func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	values, err := s.coll.Distinct(ctx, "_id", bson.D{})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "list checkpoints")
	}
	ids := make([]string, 0, len(values))
	for _, v := range values {
		if id, ok := v.(string); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// classifyMongo marks network errors and timeouts as retryable.
func classifyMongo(err error) error {
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return retryable(err)
	}
	return err
}

var _ Store = (*MongoStore)(nil)
