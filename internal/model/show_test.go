package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPartition(t *testing.T) {
	now := time.Date(2026, 10, 19, 20, 0, 0, 0, time.UTC)

	assert.Equal(t, Past, Partition(now.Add(-time.Second), now))
	assert.Equal(t, Upcoming, Partition(now.Add(time.Second), now))
	assert.Equal(t, Neither, Partition(now, now))
}

func TestPartitionIgnoresZone(t *testing.T) {
	now := time.Date(2026, 10, 19, 20, 0, 0, 0, time.UTC)
	sameInstant := now.In(time.FixedZone("PDT", -7*60*60))

	assert.Equal(t, Neither, Partition(sameInstant, now))
}

func TestNormalize(t *testing.T) {
	in := time.Date(2026, 10, 19, 13, 0, 0, 999, time.FixedZone("PDT", -7*60*60))

	got := Normalize(in)
	assert.Equal(t, time.UTC, got.Location())
	assert.Equal(t, time.Date(2026, 10, 19, 20, 0, 0, 0, time.UTC), got)
}

func TestBucketString(t *testing.T) {
	assert.Equal(t, "past", Past.String())
	assert.Equal(t, "upcoming", Upcoming.String())
	assert.Equal(t, "neither", Neither.String())
}
