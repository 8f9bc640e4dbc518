package mongotools

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nikmy/meetsched/pkg/errors"
)

// Merge flattens several field filters into one document, later keys win.
func Merge(fieldKVs ...bson.M) bson.M {
	s := make(bson.M, len(fieldKVs))
	for _, kv := range fieldKVs {
		for k, v := range kv {
			s[k] = v
		}
	}

	return s
}

func All() bson.M {
	return bson.M{}
}

func Field[T any](field string, value T) bson.M {
	return bson.M{field: value}
}

func Gte[T any](field string, value T) bson.M {
	return bson.M{field: bson.M{"$gte": value}}
}

// FilterFunc drains c, keeping items accepted by filterFunc (all if nil).
func FilterFunc[T any](ctx context.Context, c *mongo.Cursor, filterFunc func(T) bool) ([]T, error) {
	defer c.Close(ctx)

	var filtered []T
	for c.Next(ctx) {
		var item T
		err := c.Decode(&item)
		if err != nil {
			return nil, errors.WrapFail(err, "decode item")
		}

		if filterFunc == nil || filterFunc(item) {
			filtered = append(filtered, item)
		}
	}

	return filtered, c.Err()
}
