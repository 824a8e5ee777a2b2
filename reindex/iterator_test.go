package reindex

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storytrail/storytrail/core"
	"github.com/storytrail/storytrail/index"
	"github.com/storytrail/storytrail/index/badger"
)

func seedEntries(t *testing.T, ix *badger.Index, collection string, n int) []string {
	t.Helper()

	ids := make([]string, n)
	for i := 0; i < n; i++ {
		ids[i] = fmt.Sprintf("txt-%04d", i)
		err := ix.Add(context.Background(), collection, &index.Entry{
			ID:       ids[i],
			Vector:   []float32{float32(i), 1},
			Document: fmt.Sprintf("document %d", i),
		})
		require.NoError(t, err)
	}
	return ids
}

func TestEntryIterator_ForEach(t *testing.T) {
	ix, err := badger.NewMemoryIndex()
	require.NoError(t, err)
	defer ix.Close()

	want := seedEntries(t, ix, core.CollectionTexts, 7)

	it := NewEntryIterator(ix, core.CollectionTexts, 3)

	var got []string
	var batchSizes []int
	err = it.ForEach(context.Background(), func(batch []*index.Entry) error {
		batchSizes = append(batchSizes, len(batch))
		for _, entry := range batch {
			got = append(got, entry.ID)
		}
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, want, got)
	assert.Equal(t, []int{3, 3, 1}, batchSizes)
}

func TestEntryIterator_ForEach_EmptyCollection(t *testing.T) {
	ix, err := badger.NewMemoryIndex()
	require.NoError(t, err)
	defer ix.Close()

	it := NewEntryIterator(ix, core.CollectionTexts, 3)

	calls := 0
	err = it.ForEach(context.Background(), func(_ []*index.Entry) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Zero(t, calls)
}

func TestEntryIterator_ForEach_StopsOnError(t *testing.T) {
	ix, err := badger.NewMemoryIndex()
	require.NoError(t, err)
	defer ix.Close()

	seedEntries(t, ix, core.CollectionTexts, 10)

	it := NewEntryIterator(ix, core.CollectionTexts, 3)

	wantErr := errors.New("stop here")
	calls := 0
	err = it.ForEach(context.Background(), func(_ []*index.Entry) error {
		calls++
		return wantErr
	})

	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, 1, calls)
}

func TestEntryIterator_ForEach_ContextCancelled(t *testing.T) {
	ix, err := badger.NewMemoryIndex()
	require.NoError(t, err)
	defer ix.Close()

	seedEntries(t, ix, core.CollectionTexts, 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	it := NewEntryIterator(ix, core.CollectionTexts, 3)
	err = it.ForEach(ctx, func(_ []*index.Entry) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEntryIterator_Count(t *testing.T) {
	ix, err := badger.NewMemoryIndex()
	require.NoError(t, err)
	defer ix.Close()

	seedEntries(t, ix, core.CollectionTexts, 7)

	count, err := NewEntryIterator(ix, core.CollectionTexts, 3).Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, count)
}

func TestNewEntryIterator_DefaultsBatchSize(t *testing.T) {
	ix, err := badger.NewMemoryIndex()
	require.NoError(t, err)
	defer ix.Close()

	it := NewEntryIterator(ix, core.CollectionTexts, 0)
	assert.Equal(t, DefaultBatchSize, it.batchSize)
}
