// AngelaMos | 2026
// lifecycle_test.go

package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimestampsLifecycle(t *testing.T) {
	var ts Timestamps

	assert.True(t, ts.IsActive())
	assert.False(t, ts.IsDeleted())

	created := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	ts.StampCreated(created)
	assert.Equal(t, created, ts.CreatedAt)
	assert.True(t, ts.IsActive())

	deleted := created.Add(48 * time.Hour)
	ts.StampDeleted(deleted)
	assert.False(t, ts.IsActive())
	assert.True(t, ts.IsDeleted())
	assert.Equal(t, deleted, *ts.DeletedAt)
}

func TestFutureDeletionTimestampIsStillDeleted(t *testing.T) {
	var ts Timestamps
	ts.StampCreated(time.Now().UTC())

	// Activity is a pure presence check. A deletion stamp in the future
	// must not count as "still active".
	future := time.Now().UTC().Add(24 * time.Hour)
	ts.StampDeleted(future)

	assert.True(t, ts.IsDeleted())
	assert.False(t, ts.IsActive())
}
