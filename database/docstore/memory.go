package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore implements Store with in-memory collections. It is used when
// no database is reachable (demo/preview mode) and in tests. Documents are
// normalized through JSON so reads behave like the live adapter's decoding.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string][]map[string]any
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string][]map[string]any)}
}

// Seed replaces a collection's contents with the given documents.
func (s *MemoryStore) Seed(collection string, docs any) error {
	normalized, err := normalizeSlice(docs)
	if err != nil {
		return fmt.Errorf("failed to seed %s: %w", collection, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[collection] = normalized
	return nil
}

func normalizeSlice(docs any) ([]map[string]any, error) {
	raw, err := json.Marshal(docs)
	if err != nil {
		return nil, err
	}
	var out []map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func normalizeDoc(doc any) (map[string]any, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// compareValues orders two JSON-normalized values. Numbers compare
// numerically, everything else compares as strings (RFC 3339 timestamps
// order correctly this way).
func compareValues(a, b any) int {
	af, aok := a.(float64)
	bf, bok := b.(float64)
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	as := fmt.Sprintf("%v", a)
	bs := fmt.Sprintf("%v", b)
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	default:
		return 0
	}
}

func matches(doc map[string]any, f Filter) bool {
	val, ok := doc[f.Field]
	if !ok {
		return false
	}
	want, err := normalizeValue(f.Value)
	if err != nil {
		return false
	}
	cmp := compareValues(val, want)
	switch f.Op {
	case OpEqual:
		return cmp == 0
	case OpGreater:
		return cmp > 0
	case OpGreaterOrEqual:
		return cmp >= 0
	case OpLess:
		return cmp < 0
	case OpLessOrEqual:
		return cmp <= 0
	default:
		return false
	}
}

func normalizeValue(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeInto(docs any, out any) error {
	raw, err := json.Marshal(docs)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// Find retrieves all documents matching the filters, optionally ordered.
func (s *MemoryStore) Find(ctx context.Context, collection string, filters []Filter, order *Order, out any) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []map[string]any
	for _, doc := range s.collections[collection] {
		ok := true
		for _, f := range filters {
			if !matches(doc, f) {
				ok = false
				break
			}
		}
		if ok {
			result = append(result, doc)
		}
	}

	if order != nil {
		sort.SliceStable(result, func(i, j int) bool {
			cmp := compareValues(result[i][order.Field], result[j][order.Field])
			if order.Descending {
				return cmp > 0
			}
			return cmp < 0
		})
	}

	return decodeInto(result, out)
}

// Get retrieves a single document by its id field.
func (s *MemoryStore) Get(ctx context.Context, collection, id string, out any) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, doc := range s.collections[collection] {
		if doc["id"] == id {
			return decodeInto(doc, out)
		}
	}
	return ErrNotFound
}

// Insert appends a new document, generating an id when the document carries
// none, and returns the id.
func (s *MemoryStore) Insert(ctx context.Context, collection string, doc any) (string, error) {
	m, err := normalizeDoc(doc)
	if err != nil {
		return "", fmt.Errorf("failed to encode %s document: %w", collection, err)
	}

	id, _ := m["id"].(string)
	if id == "" {
		id = uuid.New().String()
		m["id"] = id
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[collection] = append(s.collections[collection], m)
	return id, nil
}

// Delete removes a document by its id field. Deleting an absent document is
// not an error.
func (s *MemoryStore) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.collections[collection]
	for i, doc := range docs {
		if doc["id"] == id {
			s.collections[collection] = append(docs[:i], docs[i+1:]...)
			return nil
		}
	}
	return nil
}
