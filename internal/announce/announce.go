// Package announce is the hook for syncing public announcements shown next
// to the calculator. No remote source is configured, so Sync returns
// nothing and performs no I/O.
package announce

import (
	"context"
	"time"
)

type Announcement struct {
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Published time.Time `json:"published"`
}

type Syncer struct{}

func NewSyncer() *Syncer { return &Syncer{} }

// Sync returns the current announcements.
func (s *Syncer) Sync(ctx context.Context) ([]Announcement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []Announcement{}, nil
}
