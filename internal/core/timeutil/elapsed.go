// Package timeutil holds the pure time helpers used when presenting posts and comments.
// Nothing here is stored; labels are always derived from the raw timestamp at display time.
package timeutil

import (
	"fmt"
	"math"
	"time"
)

// Unit is the granularity an elapsed duration is reported in
type Unit int

const (
	UnitUnderHour Unit = iota
	UnitHours
	UnitDays
	UnitWeeks
)

// Bucket is a classified elapsed duration
type Bucket struct {
	Unit  Unit
	Count int
}

// ClassifyElapsed buckets the time between ts and now.
// Hours are floored; timestamps in the future count as under an hour.
func ClassifyElapsed(now, ts time.Time) Bucket {
	hours := int(math.Floor(now.Sub(ts).Hours()))
	if hours < 1 {
		return Bucket{Unit: UnitUnderHour}
	}
	if hours < 24 {
		return Bucket{Unit: UnitHours, Count: hours}
	}

	days := hours / 24
	if days < 7 {
		return Bucket{Unit: UnitDays, Count: days}
	}
	return Bucket{Unit: UnitWeeks, Count: days / 7}
}

// String renders the bucket, e.g. "under an hour", "1 hours", "3 days", "1 week", "2 weeks"
func (b Bucket) String() string {
	switch b.Unit {
	case UnitHours:
		return fmt.Sprintf("%d hours", b.Count)
	case UnitDays:
		return fmt.Sprintf("%d days", b.Count)
	case UnitWeeks:
		if b.Count > 1 {
			return fmt.Sprintf("%d weeks", b.Count)
		}
		return fmt.Sprintf("%d week", b.Count)
	default:
		return "under an hour"
	}
}

// Ago renders the relative label shown next to posts and comments
func (b Bucket) Ago() string {
	if b.Unit == UnitUnderHour {
		return "Less than an hour ago"
	}
	return b.String() + " ago"
}

// TimeAgo is ClassifyElapsed(now, ts).Ago()
func TimeAgo(now, ts time.Time) string {
	return ClassifyElapsed(now, ts).Ago()
}

// NewestFirst orders timestamps descending; usable with slices.SortStableFunc
func NewestFirst(a, b time.Time) int {
	return b.Compare(a)
}

// OldestFirst orders timestamps ascending
func OldestFirst(a, b time.Time) int {
	return a.Compare(b)
}
