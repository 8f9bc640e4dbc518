package repo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/nikmy/meetsched/pkg/mongotools"
)

type filter struct {
	title *string
	since *time.Time
}

type Filter func(*filter)

func ByTitle(title string) Filter {
	return func(f *filter) {
		f.title = &title
	}
}

// Since keeps events recorded at or after t.
func Since(t time.Time) Filter {
	return func(f *filter) {
		f.since = &t
	}
}

func buildFilter(filters ...Filter) filter {
	var f filter
	for _, apply := range filters {
		apply(&f)
	}
	return f
}

func (f filter) match(e Event) bool {
	if f.title != nil && e.Title != *f.title {
		return false
	}
	if f.since != nil && e.At.Before(*f.since) {
		return false
	}
	return true
}

func (f filter) document() bson.M {
	parts := []bson.M{mongotools.All()}
	if f.title != nil {
		parts = append(parts, mongotools.Field("title", *f.title))
	}
	if f.since != nil {
		parts = append(parts, mongotools.Gte("at", *f.since))
	}
	return mongotools.Merge(parts...)
}
