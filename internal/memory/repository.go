package memory

import (
	"context"
	"strings"

	"github.com/rcliao/memchat/internal/model"
	"github.com/rcliao/memchat/internal/store"
)

// accumulatedWindow is how many recent values an accumulating key shows.
const accumulatedWindow = 5

// Repository translates raw fact rows into the profile and notes views the
// orchestrator needs.
type Repository struct {
	store store.Store
}

func NewRepository(s store.Store) *Repository {
	return &Repository{store: s}
}

// ApplyExtracted writes candidates in order, skipping empty values. Input
// order determines last-write-wins outcomes for singleton keys.
func (r *Repository) ApplyExtracted(ctx context.Context, cands []Candidate) error {
	for _, c := range cands {
		if c.Value == "" {
			continue
		}
		if err := r.store.WriteFact(ctx, c.Key, c.Value, c.Replace); err != nil {
			return err
		}
	}
	return nil
}

// ProfileSnapshot returns the current value for each requested key.
// Accumulating keys join their last values oldest-first; keys with no
// stored value are omitted.
func (r *Repository) ProfileSnapshot(ctx context.Context, keys []string) (map[string]string, error) {
	result := make(map[string]string)
	for _, key := range keys {
		if model.AccumulatingKeys[key] {
			values, err := r.store.AccumulatedFacts(ctx, key, accumulatedWindow)
			if err != nil {
				return nil, err
			}
			if len(values) > 0 {
				result[key] = strings.Join(values, ", ")
			}
			continue
		}
		v, ok, err := r.store.LatestFact(ctx, key)
		if err != nil {
			return nil, err
		}
		if ok {
			result[key] = v
		}
	}
	return result, nil
}

// RecentNotes returns up to limit notes, newest first.
func (r *Repository) RecentNotes(ctx context.Context, limit int) ([]string, error) {
	return r.store.Notes(ctx, limit)
}
