package fetch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoFinder defines the collection query used by MongoFetcher.
// *mongo.Collection satisfies it.
type MongoFinder interface {
	FindOne(ctx context.Context, filter any, opts ...options.Lister[options.FindOneOptions]) *mongo.SingleResult
}

// MongoConfig identifies a payload stored in one field of one document.
type MongoConfig struct {
	ConnectionURL  string        `env:"FETCH_MONGO_URL" envDefault:"mongodb://localhost:27017"`
	Database       string        `env:"FETCH_MONGO_DATABASE,required"`
	Collection     string        `env:"FETCH_MONGO_COLLECTION,required"`
	// ID is matched against _id; 24-char hex strings are matched as ObjectID.
	ID             string        `env:"FETCH_MONGO_ID,required"`
	// Field is the binary or string field holding the payload.
	Field          string        `env:"FETCH_MONGO_FIELD" envDefault:"data"`
	ConnectTimeout time.Duration `env:"FETCH_MONGO_CONNECT_TIMEOUT" envDefault:"10s"`
	MaxBytes       int64         `env:"FETCH_MAX_BYTES" envDefault:"10485760"`
}

// MongoFetcher reads a fixed document. It is safe for concurrent use.
type MongoFetcher struct {
	coll       MongoFinder
	collection string
	id         any
	rawID      string
	field      string
	maxBytes   int64
}

// NewMongoFetcher wraps an existing collection.
func NewMongoFetcher(coll MongoFinder, cfg MongoConfig) (*MongoFetcher, error) {
	if coll == nil || cfg.Collection == "" || cfg.ID == "" {
		return nil, ErrInvalidConfig
	}
	field := cfg.Field
	if field == "" {
		field = "data"
	}

	var id any = cfg.ID
	if oid, err := bson.ObjectIDFromHex(cfg.ID); err == nil {
		id = oid
	}

	return &MongoFetcher{
		coll:       coll,
		collection: cfg.Collection,
		id:         id,
		rawID:      cfg.ID,
		field:      field,
		maxBytes:   cfg.MaxBytes,
	}, nil
}

// ConnectMongo connects to cfg.ConnectionURL, pings the server and returns a
// fetcher for cfg.Database/cfg.Collection. The caller owns the returned client.
func ConnectMongo(ctx context.Context, cfg MongoConfig) (*MongoFetcher, *mongo.Client, error) {
	if cfg.Database == "" {
		return nil, nil, fmt.Errorf("%w: empty database", ErrInvalidConfig)
	}

	client, err := mongo.Connect(
		options.Client().
			ApplyURI(cfg.ConnectionURL).
			SetConnectTimeout(cfg.ConnectTimeout),
	)
	if err != nil {
		return nil, nil, errors.Join(ErrInvalidConfig, err)
	}

	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, Wrap(cfg.ConnectionURL, err)
	}

	f, err := NewMongoFetcher(client.Database(cfg.Database).Collection(cfg.Collection), cfg)
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}
	return f, client, nil
}

// Source returns the document as "mongo:collection/id#field".
func (f *MongoFetcher) Source() string {
	return "mongo:" + f.collection + "/" + f.rawID + "#" + f.field
}

// Fetch loads the document and returns its payload field. A missing document
// or field fails with ErrNotFound.
func (f *MongoFetcher) Fetch(ctx context.Context) ([]byte, error) {
	raw, err := f.coll.FindOne(ctx, bson.D{{Key: "_id", Value: f.id}}).Raw()
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, Wrap(f.Source(), ErrNotFound)
	case err != nil:
		classified, _ := classifyContextError(err)
		return nil, Wrap(f.Source(), classified)
	}

	val, err := raw.LookupErr(f.field)
	if err != nil {
		return nil, Wrap(f.Source(), fmt.Errorf("%w: field %q", ErrNotFound, f.field))
	}

	var data []byte
	if _, b, ok := val.BinaryOK(); ok {
		data = b
	} else if s, ok := val.StringValueOK(); ok {
		data = []byte(s)
	} else {
		return nil, Wrap(f.Source(), fmt.Errorf("unsupported payload type %s", val.Type))
	}

	limit := f.maxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	if int64(len(data)) > limit {
		return nil, Wrap(f.Source(), ErrPayloadTooLarge)
	}
	return data, nil
}
