package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	badgerdb "github.com/dgraph-io/badger/v4"

	"github.com/dmsproject/dms/pkg/model"
)

// BadgerStore implements Store on an embedded Badger database. It keeps the
// master free of external dependencies for single-node deployments while
// preserving the exact key layout of the Redis backend.
type BadgerStore struct {
	db        *badgerdb.DB
	namespace string
	ttl       time.Duration
}

// NewBadgerStore opens (or creates) the database under cfg.Badger.Path.
func NewBadgerStore(cfg Config) (*BadgerStore, error) {
	cfg.applyDefaults()
	if cfg.Badger.Path == "" {
		return nil, fmt.Errorf("badger backend requires metadata.badger.path")
	}

	opts := badgerdb.DefaultOptions(cfg.Badger.Path).WithLogger(nil)
	db, err := badgerdb.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database at %s: %w", cfg.Badger.Path, err)
	}

	return &BadgerStore{
		db:        db,
		namespace: cfg.Namespace,
		ttl:       cfg.ttl(),
	}, nil
}

// StoreRequest upserts the initial progress document of a request.
func (s *BadgerStore) StoreRequest(ctx context.Context, progress *model.SyncProgress) error {
	return s.setJSON(ctx, requestKey(s.namespace, progress.RequestID), progress)
}

// UpdateProgress upserts the progress document after a mutation.
func (s *BadgerStore) UpdateProgress(ctx context.Context, progress *model.SyncProgress) error {
	return s.setJSON(ctx, requestKey(s.namespace, progress.RequestID), progress)
}

// AppendResult appends a result to the request's result log. The log is a
// JSON-encoded slice rewritten inside a single transaction.
func (s *BadgerStore) AppendResult(ctx context.Context, result *model.SyncResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := []byte(resultsKey(s.namespace, result.RequestID))
	err := s.db.Update(func(txn *badgerdb.Txn) error {
		var results []*model.SyncResult

		item, err := txn.Get(key)
		switch {
		case err == badgerdb.ErrKeyNotFound:
			// First result for this request.
		case err != nil:
			return err
		default:
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &results)
			}); err != nil {
				return err
			}
		}

		results = append(results, result)
		payload, err := json.Marshal(results)
		if err != nil {
			return err
		}
		return txn.SetEntry(s.entry(key, payload))
	})
	if err != nil {
		return fmt.Errorf("failed to append result for request %s: %w", result.RequestID, err)
	}
	return nil
}

// RecordWorker upserts the most recent heartbeat of a worker.
func (s *BadgerStore) RecordWorker(ctx context.Context, hb *model.WorkerHeartbeat) error {
	return s.setJSON(ctx, workerKey(s.namespace, hb.WorkerID), hb)
}

// DeleteRequest removes the progress document and the result log.
func (s *BadgerStore) DeleteRequest(ctx context.Context, requestID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badgerdb.Txn) error {
		if err := txn.Delete([]byte(requestKey(s.namespace, requestID))); err != nil {
			return err
		}
		return txn.Delete([]byte(resultsKey(s.namespace, requestID)))
	})
	if err != nil {
		return fmt.Errorf("failed to delete request %s: %w", requestID, err)
	}
	return nil
}

// HealthCheck verifies the database still accepts read transactions.
func (s *BadgerStore) HealthCheck(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.View(func(txn *badgerdb.Txn) error {
		// Starting a transaction is enough; Badger errors if closed.
		return nil
	})
	if err != nil {
		return fmt.Errorf("badger healthcheck failed: %w", err)
	}
	return nil
}

// Close flushes and closes the database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

func (s *BadgerStore) setJSON(ctx context.Context, key string, value any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode value for key %s: %w", key, err)
	}

	err = s.db.Update(func(txn *badgerdb.Txn) error {
		return txn.SetEntry(s.entry([]byte(key), payload))
	})
	if err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}

func (s *BadgerStore) entry(key, payload []byte) *badgerdb.Entry {
	entry := badgerdb.NewEntry(key, payload)
	if s.ttl > 0 {
		entry = entry.WithTTL(s.ttl)
	}
	return entry
}
