// Package results persists trial results in a WAL so finished batches can be
// replayed by the dashboard and survive restarts.
package results

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/vadiminshakov/gowal"

	"github.com/alex-f73/The-Martingale-Strategy/internal/domain"
)

const (
	defaultResultsDir = "./wal/results"
	walSegmentLimit   = 1000
	walMaxSegments    = 100
	trialKeyPrefix    = "trial_"
)

// WALStore persists trial results in a WAL keyed by run ID and trial index.
type WALStore struct {
	wal   *gowal.Wal
	runID string
	mu    sync.RWMutex
}

// NewWALStore initializes a WAL-backed result store under the provided
// directory, scoped to one simulation run.
func NewWALStore(dir, runID string) (*WALStore, error) {
	if dir == "" {
		dir = defaultResultsDir
	}
	if runID == "" {
		return nil, errors.New("run ID is required")
	}

	cfg := gowal.Config{
		Dir:              dir,
		Prefix:           "results_",
		SegmentThreshold: walSegmentLimit,
		MaxSegments:      walMaxSegments,
		IsInSyncDiskMode: true,
	}

	wal, err := gowal.NewWAL(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "init trial results WAL")
	}

	return &WALStore{wal: wal, runID: runID}, nil
}

// Save appends one trial result. Safe for concurrent use by runner workers.
func (s *WALStore) Save(result domain.TrialResult) error {
	if s == nil || s.wal == nil {
		return errors.New("trial results store is not initialized")
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return errors.Wrap(err, "marshal trial result")
	}

	key := fmt.Sprintf("%s%s_%d", trialKeyPrefix, s.runID, result.Index)

	s.mu.Lock()
	defer s.mu.Unlock()

	nextIndex := s.wal.CurrentIndex() + 1
	return s.wal.Write(nextIndex, key, payload)
}

// ResultsAfter returns all trial results written after the provided WAL index.
func (s *WALStore) ResultsAfter(index uint64) ([]domain.TrialRecord, error) {
	if s == nil || s.wal == nil {
		return nil, errors.New("trial results store is not initialized")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	current := s.wal.CurrentIndex()
	if current <= index {
		return nil, nil
	}

	records := make([]domain.TrialRecord, 0, current-index)
	for idx := index + 1; idx <= current; idx++ {
		key, payload, err := s.wal.Get(idx)
		if err != nil || !strings.HasPrefix(key, trialKeyPrefix) {
			continue
		}
		var result domain.TrialResult
		if err := json.Unmarshal(payload, &result); err != nil {
			return nil, errors.Wrap(err, "decode trial result")
		}
		records = append(records, domain.TrialRecord{
			Index:  idx,
			Result: result,
		})
	}

	return records, nil
}

// CurrentIndex returns the latest WAL index stored.
func (s *WALStore) CurrentIndex() uint64 {
	if s == nil || s.wal == nil {
		return 0
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.wal.CurrentIndex()
}

// Close closes the underlying WAL.
func (s *WALStore) Close() error {
	if s == nil || s.wal == nil {
		return errors.New("trial results store is not initialized")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.wal.Close()
}
