package badger

import (
	"context"
	"log/slog"
	"math"
	"slices"

	"github.com/dgraph-io/badger/v4"
	"github.com/storytrail/storytrail/index"
)

// Index implements index.VectorIndex on a BadgerDB backend.
// Queries are brute-force scans over the collection's entries; collections
// here hold one session's worth of media, not millions of rows.
type Index struct {
	backend *Backend
	logger  *slog.Logger
}

var _ index.VectorIndex = (*Index)(nil)

// New creates a vector index on the given backend.
func New(backend *Backend) (*Index, error) {
	if backend == nil {
		return nil, ErrBackendRequired
	}
	return &Index{
		backend: backend,
		logger:  slog.Default().With("component", "badger-index"),
	}, nil
}

// Open opens (or creates) a persistent vector index at path.
func Open(path string) (*Index, error) {
	backend, err := OpenBackend(path, false)
	if err != nil {
		return nil, err
	}
	return New(backend)
}

// Close closes the underlying backend.
func (ix *Index) Close() error {
	return ix.backend.Close()
}

// Add stores an entry in the named collection, creating the collection
// registry mark on first write. Re-adding an existing ID overwrites it
// (last-write-wins); callers generate unique IDs so this only matters for
// deliberate rewrites such as reindexing.
func (ix *Index) Add(ctx context.Context, collection string, entry *index.Entry) error {
	if collection == "" {
		return index.ErrEmptyCollectionName
	}
	if entry == nil {
		return index.ErrNilEntry
	}
	if entry.ID == "" {
		return index.ErrEmptyEntryID
	}
	if len(entry.Vector) == 0 {
		return index.ErrEmptyVector
	}

	err := ix.backend.WithTx(func(tx *badger.Txn) error {
		// Lazy collection creation
		if err := tx.Set(makeCollectionKey(collection), []byte{1}); err != nil {
			return err
		}
		if err := tx.Set(makeEntryKey(collection, entry.ID), index.MarshalEntry(entry)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return err
	}

	ix.logger.Debug("added entry", "collection", collection, "id", entry.ID)
	return nil
}

// scored pairs an entry with its distance during query collection.
type scored struct {
	entry    *index.Entry
	distance float32
}

// Query returns up to topK entries nearest to vector, by ascending cosine
// distance. Unknown or empty collections yield an empty result.
func (ix *Index) Query(ctx context.Context, collection string, vector []float32, topK int) (*index.QueryResult, error) {
	if collection == "" {
		return nil, index.ErrEmptyCollectionName
	}

	result := &index.QueryResult{
		IDs:       []string{},
		Metadatas: []map[string]string{},
		Documents: []string{},
		Distances: []float32{},
	}
	if topK <= 0 {
		return result, nil
	}

	var hits []scored
	err := ix.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeEntryScanPrefix(collection)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var entry *index.Entry
			err := iter.Item().Value(func(val []byte) error {
				var err error
				entry, err = index.UnmarshalEntry(val)
				return err
			})
			if err != nil {
				return err
			}
			if entry == nil || len(entry.Vector) == 0 {
				continue
			}
			hits = append(hits, scored{entry: entry, distance: cosineDistance(vector, entry.Vector)})
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	// Sort by distance ascending (closest first)
	slices.SortFunc(hits, func(a, b scored) int {
		if a.distance < b.distance {
			return -1
		}
		if a.distance > b.distance {
			return 1
		}
		return 0
	})
	if len(hits) > topK {
		hits = hits[:topK]
	}

	for _, hit := range hits {
		result.IDs = append(result.IDs, hit.entry.ID)
		result.Metadatas = append(result.Metadatas, hit.entry.Metadata)
		result.Documents = append(result.Documents, hit.entry.Document)
		result.Distances = append(result.Distances, hit.distance)
	}
	return result, nil
}

// Collections lists existing collections in lexical order.
func (ix *Index) Collections(ctx context.Context) ([]string, error) {
	var names []string
	prefix := collectionScanPrefix()

	err := ix.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			names = append(names, string(key[len(prefix):]))
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return names, nil
}

// HasCollection reports whether the named collection has seen an add.
func (ix *Index) HasCollection(ctx context.Context, name string) (bool, error) {
	exists := false
	err := ix.backend.WithTx(func(tx *badger.Txn) error {
		_, err := tx.Get(makeCollectionKey(name))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		exists = true
		return nil
	}, false)
	return exists, err
}

// Entries pages through a collection's entries in ID order, returning up to
// limit entries with IDs strictly greater than afterID. Pass afterID == ""
// to start from the beginning. Used by reindexing, not by search.
func (ix *Index) Entries(ctx context.Context, collection string, afterID string, limit int) ([]*index.Entry, error) {
	if collection == "" {
		return nil, index.ErrEmptyCollectionName
	}
	if limit <= 0 {
		return []*index.Entry{}, nil
	}

	entries := make([]*index.Entry, 0, limit)
	prefix := makeEntryScanPrefix(collection)

	err := ix.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		iter := tx.NewIterator(opts)
		defer iter.Close()

		if afterID == "" {
			iter.Rewind()
		} else {
			iter.Seek(makeEntryKey(collection, afterID))
			if iter.Valid() && string(iter.Item().Key()) == string(makeEntryKey(collection, afterID)) {
				iter.Next()
			}
		}

		for ; iter.Valid() && len(entries) < limit; iter.Next() {
			var entry *index.Entry
			err := iter.Item().Value(func(val []byte) error {
				var err error
				entry, err = index.UnmarshalEntry(val)
				return err
			})
			if err != nil {
				return err
			}
			entries = append(entries, entry)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// cosineDistance computes 1 - cos(a, b), so smaller values mean closer
// vectors. Mismatched lengths compare over the shorter prefix; a zero-norm
// operand yields the maximum distance.
func cosineDistance(a, b []float32) float32 {
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < minLen; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 1
	}
	return float32(1 - dot/(math.Sqrt(normA)*math.Sqrt(normB)))
}
