package repo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nikmy/meetsched/pkg/errors"
	"github.com/nikmy/meetsched/pkg/logger"
	"github.com/nikmy/meetsched/pkg/mongotools"
)

var (
	collectionIndex = mongo.IndexModel{
		Keys:    bson.D{{Key: "title", Value: 1}, {Key: "at", Value: 1}},
		Options: options.Index().SetName("title_time"),
	}
)

func newMongo(
	ctx context.Context,
	cfg Config,
	log logger.Logger,
) (*mongoJournal, error) {
	opts := options.Client().
		ApplyURI(cfg.URL).
		SetTimeout(cfg.Timeout)

	if cfg.Auth.Username != "" {
		opts.SetAuth(options.Credential{
			Username: cfg.Auth.Username,
			Password: cfg.Auth.Password,
		})
	}
	if cfg.Pool.MinSize != 0 {
		opts.SetMinPoolSize(cfg.Pool.MinSize)
	}
	if cfg.Pool.MaxSize != 0 {
		opts.SetMaxPoolSize(cfg.Pool.MaxSize)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, errors.WrapFail(err, "connect to mongo db")
	}

	collection := client.Database(cfg.Database).Collection(cfg.Collection)

	_, err = collection.Indexes().CreateOne(ctx, collectionIndex)
	if err != nil {
		if dErr := client.Disconnect(ctx); dErr != nil {
			log.Warn(errors.WrapFail(dErr, "disconnect from mongo db"))
		}
		return nil, errors.WrapFail(err, "create index")
	}

	return &mongoJournal{
		coll: collection,
		log:  log.With("mongo_journal"),
	}, nil
}

type mongoJournal struct {
	coll *mongo.Collection
	log  logger.Logger
}

func (m *mongoJournal) Record(ctx context.Context, e Event) error {
	_, err := m.coll.InsertOne(ctx, e)
	return errors.WrapFail(err, "insert journal event")
}

func (m *mongoJournal) History(ctx context.Context, filters ...Filter) ([]Event, error) {
	f := buildFilter(filters...)

	cur, err := m.coll.Find(ctx, f.document(), options.Find().SetSort(bson.D{{Key: "at", Value: 1}}))
	if err != nil {
		return nil, errors.WrapFail(err, "find journal events")
	}

	events, err := mongotools.FilterFunc(ctx, cur, f.match)
	if err != nil {
		return nil, errors.WrapFail(err, "read journal events")
	}

	return events, nil
}

func (m *mongoJournal) Close(ctx context.Context) error {
	err := m.coll.Database().Client().Disconnect(ctx)
	return errors.WrapFail(err, "close mongo db connection")
}
