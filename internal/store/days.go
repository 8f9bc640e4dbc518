package store

import (
	"github.com/google/btree"

	"github.com/nikmy/meetsched/pkg/calendar"
)

// dayIndex maps dates to their buckets in chronological order.
// It never holds an empty bucket.
type dayIndex struct {
	days *btree.BTreeG[*bucket]
}

func newDayIndex() *dayIndex {
	return &dayIndex{
		days: btree.NewG(degree, func(a, b *bucket) bool {
			return a.date.Before(b.date)
		}),
	}
}

func (d *dayIndex) get(date calendar.Date) (*bucket, bool) {
	return d.days.Get(&bucket{date: date})
}

func (d *dayIndex) getOrCreate(date calendar.Date) *bucket {
	b, ok := d.get(date)
	if !ok {
		b = newBucket(date)
		d.days.ReplaceOrInsert(b)
	}
	return b
}

// after returns the bucket of the first date strictly after date.
func (d *dayIndex) after(date calendar.Date) (*bucket, bool) {
	var (
		found *bucket
		ok    bool
	)

	d.days.AscendGreaterOrEqual(&bucket{date: date.AddDays(1)}, func(b *bucket) bool {
		found, ok = b, true
		return false
	})

	return found, ok
}

// dropIfEmpty removes the date entry once its last meeting is gone.
func (d *dayIndex) dropIfEmpty(b *bucket) {
	if b.len() == 0 {
		d.days.Delete(b)
	}
}

func (d *dayIndex) len() int {
	return d.days.Len()
}

func (d *dayIndex) ascend(iter func(b *bucket) bool) {
	d.days.Ascend(iter)
}
