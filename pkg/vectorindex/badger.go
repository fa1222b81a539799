package vectorindex

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"

	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/types"
	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/utils"
)

const entryPrefix = "vi:entry:"

// BadgerIndex is a persistent Index backed by BadgerDB. Vectors are stored
// as JSON-encoded entries under a common key prefix and queried with a full
// prefix scan.
type BadgerIndex struct {
	db     *badger.DB
	logger *slog.Logger
}

var _ Index = (*BadgerIndex)(nil)

// badgerLoggerAdapter adapts slog.Logger to the badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// OpenBadgerIndex opens (or creates) a BadgerDB-backed index at path. When
// inMemory is true, path is ignored and nothing is written to disk.
func OpenBadgerIndex(path string, inMemory bool, logger *slog.Logger) (*BadgerIndex, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var opts badger.Options
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		info, err := os.Stat(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, err
			}
			if err := os.MkdirAll(path, 0o755); err != nil {
				return nil, err
			}
		} else if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", path)
		}
		opts = badger.DefaultOptions(path)
	}

	opts.Logger = &badgerLoggerAdapter{logger: logger}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening vector index: %w", err)
	}

	return &BadgerIndex{db: db, logger: logger}, nil
}

// Upsert inserts or replaces entries by ID.
func (b *BadgerIndex) Upsert(_ context.Context, entries []Entry) error {
	wb := b.db.NewWriteBatch()
	defer wb.Cancel()

	for _, entry := range entries {
		if entry.ID == "" {
			return fmt.Errorf("entry with empty id")
		}
		data, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("marshaling entry %s: %w", entry.ID, err)
		}
		if err := wb.Set(entryKey(entry.ID), data); err != nil {
			return err
		}
	}
	return wb.Flush()
}

// Query scans all stored entries, filters them by metadata, and returns the
// top k by cosine similarity.
func (b *BadgerIndex) Query(ctx context.Context, vector []float32, filter types.Filters, k int) ([]Match, error) {
	if k <= 0 || len(vector) == 0 {
		return nil, nil
	}

	var scored []utils.ScoredItem[Entry]

	err := b.db.View(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(entryPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var entry Entry
			err := iter.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &entry)
			})
			if err != nil {
				return err
			}

			if len(entry.Vector) == 0 {
				continue
			}
			if !filter.Match(entry.Metadata) {
				continue
			}

			scored = append(scored, utils.ScoredItem[Entry]{
				Item:  entry,
				Score: utils.CosineSimilarity(vector, entry.Vector),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	top := utils.TopKByScore(scored, k)
	matches := make([]Match, 0, len(top))
	for _, item := range top {
		matches = append(matches, Match{Entry: item.Item, Score: item.Score})
	}
	return matches, nil
}

// Delete removes the entry with the given ID.
func (b *BadgerIndex) Delete(_ context.Context, id string) error {
	return b.db.Update(func(tx *badger.Txn) error {
		err := tx.Delete(entryKey(id))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		return err
	})
}

// Count returns the number of indexed entries.
func (b *BadgerIndex) Count(_ context.Context) (int, error) {
	count := 0
	err := b.db.View(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(entryPrefix)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// Close closes the underlying database.
func (b *BadgerIndex) Close() error {
	return b.db.Close()
}

func entryKey(id string) []byte {
	return []byte(entryPrefix + id)
}
