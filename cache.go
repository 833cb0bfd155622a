package settings

import (
	"sync"

	"github.com/agentuity/settings/merge"
)

// Document is the key to value mapping of settings for one tenant. Values are
// JSON-like: scalars, strings, []any or nested map[string]any.
type Document = map[string]any

// documentCache is the in-memory tenant to document mapping. It is the single
// source of truth for reads, owned exclusively by the provider, never
// persisted, and rebuilt entirely by Init. Entries have no TTL; they die only
// when the tenant's settings are cleared. All document mutation happens under
// the cache lock, so cache state always reflects the most recently issued
// call regardless of when the corresponding store write settles.
type documentCache struct {
	docs  map[TenantID]Document
	mutex sync.Mutex
}

func newDocumentCache() *documentCache {
	return &documentCache{
		docs: make(map[TenantID]Document),
	}
}

// load replaces the document for one tenant, used by the bulk load.
func (c *documentCache) load(id TenantID, doc Document) {
	c.mutex.Lock()
	c.docs[id] = doc
	c.mutex.Unlock()
}

// getKey returns one value. The second result distinguishes a present key
// (even one holding false, 0 or "") from a missing one.
func (c *documentCache) getKey(id TenantID, key string) (any, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	doc, ok := c.docs[id]
	if !ok {
		return nil, false
	}
	val, ok := doc[key]
	if !ok {
		return nil, false
	}
	return merge.Clone(val), true
}

// upsertKey merges value into the tenant's document under key, lazily
// creating the document, and returns the merged value.
func (c *documentCache) upsertKey(id TenantID, key string, value any) any {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	doc, ok := c.docs[id]
	if !ok {
		doc = make(Document)
		c.docs[id] = doc
	}
	merged := merge.Merge(doc[key], value)
	doc[key] = merged
	return merge.Clone(merged)
}

// removeKey deletes one key from the tenant's document. The results are the
// removed value, whether the key was present, and whether the document exists
// at all.
func (c *documentCache) removeKey(id TenantID, key string) (any, bool, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	doc, ok := c.docs[id]
	if !ok {
		return nil, false, false
	}
	val, existed := doc[key]
	delete(doc, key)
	return val, existed, true
}

// drop removes the tenant's entire document.
func (c *documentCache) drop(id TenantID) {
	c.mutex.Lock()
	delete(c.docs, id)
	c.mutex.Unlock()
}

// snapshot returns a deep copy of the tenant's document, safe to iterate
// while host callbacks run.
func (c *documentCache) snapshot(id TenantID) (Document, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	doc, ok := c.docs[id]
	if !ok {
		return nil, false
	}
	return merge.Clone(doc).(map[string]any), true
}

func (c *documentCache) ids() []TenantID {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	ids := make([]TenantID, 0, len(c.docs))
	for id := range c.docs {
		ids = append(ids, id)
	}
	return ids
}
