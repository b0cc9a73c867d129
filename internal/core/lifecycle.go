// AngelaMos | 2026
// lifecycle.go

package core

import (
	"time"
)

// Lifecycle is implemented by every entity that participates in timestamped
// creation and soft deletion. The store layer calls these directly; there is
// no runtime property inspection.
type Lifecycle interface {
	StampCreated(t time.Time)
	StampDeleted(t time.Time)
}

// Timestamps is the single soft-delete representation used across the module:
// a nil DeletedAt means the row is active, a set DeletedAt means it is
// soft-deleted. Activity is never decided by comparing DeletedAt against the
// current time; a deletion timestamp in the future is still a deletion.
type Timestamps struct {
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	DeletedAt *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`
}

func (t *Timestamps) StampCreated(at time.Time) {
	t.CreatedAt = at
}

func (t *Timestamps) StampDeleted(at time.Time) {
	t.DeletedAt = &at
}

func (t *Timestamps) IsDeleted() bool {
	return t.DeletedAt != nil
}

func (t *Timestamps) IsActive() bool {
	return t.DeletedAt == nil
}

var _ Lifecycle = (*Timestamps)(nil)
