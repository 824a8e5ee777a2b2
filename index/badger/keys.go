package badger

import "fmt"

// Key prefixes for different record kinds
const (
	entryPrefix      = "vecent"
	collectionPrefix = "veccol"
)

// makeEntryKey generates a key for an entry within a collection.
// Format: prefix:collection:id
func makeEntryKey(collection, id string) []byte {
	return []byte(fmt.Sprintf("%s:%s:%s", entryPrefix, collection, id))
}

// makeEntryScanPrefix generates the iteration prefix covering all entries of
// one collection.
func makeEntryScanPrefix(collection string) []byte {
	return []byte(fmt.Sprintf("%s:%s:", entryPrefix, collection))
}

// makeCollectionKey generates the registry key marking that a collection
// exists.
func makeCollectionKey(collection string) []byte {
	return []byte(fmt.Sprintf("%s:%s", collectionPrefix, collection))
}

// collectionScanPrefix is the iteration prefix covering the collection
// registry.
func collectionScanPrefix() []byte {
	return []byte(collectionPrefix + ":")
}
