// Package analytics persists candidate lifecycle events to a local BoltDB
// journal. The journal is append-mostly and sits outside the primary store:
// losing it loses analytics, never user data.
package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/studentos/backend/domain"
)

const (
	EventConfirm = "confirm"
	EventIgnore  = "ignore"
)

// Event is one recorded lifecycle decision.
type Event struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	CandidateID string    `json:"candidate_id"`
	TaskID      string    `json:"task_id,omitempty"`
	UserID      string    `json:"user_id"`
	Reason      string    `json:"reason,omitempty"`
	RecordedAt  time.Time `json:"recorded_at"`
}

// Journal wraps BoltDB with a single events bucket keyed by timestamp so a
// cursor scan returns events in recording order.
type Journal struct {
	db     *bolt.DB
	bucket []byte
}

// Open initializes the journal file and ensures the events bucket exists.
func Open(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	bucket := []byte("events")
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Journal{db: db, bucket: bucket}, nil
}

// RecordConfirm journals a successful candidate confirmation.
func (j *Journal) RecordConfirm(ctx context.Context, candidateID, taskID, userID string) error {
	return j.append(ctx, Event{
		Kind:        EventConfirm,
		CandidateID: candidateID,
		TaskID:      taskID,
		UserID:      userID,
	})
}

// RecordIgnore journals a dismissal together with the user-supplied reason.
func (j *Journal) RecordIgnore(ctx context.Context, candidateID, userID string, reason domain.IgnoreReason) error {
	return j.append(ctx, Event{
		Kind:        EventIgnore,
		CandidateID: candidateID,
		UserID:      userID,
		Reason:      string(reason),
	})
}

func (j *Journal) append(ctx context.Context, event Event) error {
	if j == nil || j.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	event.ID = uuid.NewString()
	event.RecordedAt = time.Now().UTC()

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	key := fmt.Sprintf("%020d_%s", event.RecordedAt.UnixNano(), event.ID)
	return j.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(j.bucket).Put([]byte(key), payload)
	})
}

// Recent returns up to limit events, oldest first.
func (j *Journal) Recent(limit int) ([]Event, error) {
	if j == nil || j.db == nil {
		return nil, bolt.ErrDatabaseNotOpen
	}
	if limit <= 0 {
		limit = 50
	}

	var events []Event
	err := j.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(j.bucket).Cursor()
		for k, v := c.First(); k != nil && len(events) < limit; k, v = c.Next() {
			var event Event
			if err := json.Unmarshal(v, &event); err != nil {
				continue
			}
			events = append(events, event)
		}
		return nil
	})
	return events, err
}

// Size returns the number of journaled events.
func (j *Journal) Size() (int, error) {
	if j == nil || j.db == nil {
		return 0, bolt.ErrDatabaseNotOpen
	}
	var count int
	err := j.db.View(func(tx *bolt.Tx) error {
		count = tx.Bucket(j.bucket).Stats().KeyN
		return nil
	})
	return count, err
}

// Prune removes events recorded before the cutoff.
func (j *Journal) Prune(olderThan time.Time) error {
	if j == nil || j.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return j.db.Update(func(tx *bolt.Tx) error {
		c := tx.Bucket(j.bucket).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var event Event
			if err := json.Unmarshal(v, &event); err != nil {
				continue
			}
			if event.RecordedAt.Before(olderThan) {
				if err := c.Delete(); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	return j.db.Close()
}
