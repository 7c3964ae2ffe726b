package calibration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultMongoID is the _id of the calibration document.
const DefaultMongoID = "calibration"

// mongoDoc is the stored document: the flat mapping plus a write timestamp.
type mongoDoc struct {
	ID        string         `bson:"_id"`
	Values    map[string]int `bson:"values"`
	UpdatedAt time.Time      `bson:"updated_at"`
}

// MongoStore keeps the calibration mapping in a single MongoDB document.
type MongoStore struct {
	coll *mongo.Collection
	id   string
}

// NewMongoStore creates a store using the document with the given _id in coll.
func NewMongoStore(coll *mongo.Collection, id string) *MongoStore {
	if id == "" {
		id = DefaultMongoID
	}
	return &MongoStore{coll: coll, id: id}
}

// Load reads the document. A missing document means not calibrated.
func (s *MongoStore) Load(ctx context.Context) (Calibration, error) {
	var doc mongoDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": s.id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Calibration{}, ErrNotCalibrated
	}
	if err != nil {
		return Calibration{}, fmt.Errorf("failed to read calibration document: %w", err)
	}
	return Decode(doc.Values)
}

// Save upserts the document, replacing every field.
func (s *MongoStore) Save(ctx context.Context, c Calibration) error {
	if err := c.Validate(); err != nil {
		return err
	}
	doc := mongoDoc{ID: s.id, Values: Encode(c), UpdatedAt: time.Now().UTC()}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": s.id}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to write calibration document: %w", err)
	}
	return nil
}

var _ Store = (*MongoStore)(nil)
