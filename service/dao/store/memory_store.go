package store

import (
	"context"
	"sort"
	"sync"

	"github.com/viant/jsrepl/service/dao"
)

// MemoryStore is a generic in-memory implementation of dao.Service.
// Records of type *T are keyed by K, obtained with keySelector. Secondary
// indexes registered with WithIndex serve List parameters of the same name;
// parameters without an index are ignored.
type MemoryStore[K comparable, T any] struct {
	mu          sync.RWMutex
	records     map[K]*T
	keySelector func(*T) K
	indexes     map[string]*index[K, T]
	less        func(a, b *T) bool
}

type index[K comparable, T any] struct {
	selector func(*T) string
	keys     map[string]map[K]bool
}

// StoreOption customises a MemoryStore
type StoreOption[K comparable, T any] func(s *MemoryStore[K, T])

// WithIndex registers secondary index name computed by selector
func WithIndex[K comparable, T any](name string, selector func(*T) string) StoreOption[K, T] {
	return func(s *MemoryStore[K, T]) {
		s.indexes[name] = &index[K, T]{selector: selector, keys: map[string]map[K]bool{}}
	}
}

// WithOrder sets List result order
func WithOrder[K comparable, T any](less func(a, b *T) bool) StoreOption[K, T] {
	return func(s *MemoryStore[K, T]) {
		s.less = less
	}
}

// NewMemoryStore creates a new MemoryStore.
func NewMemoryStore[K comparable, T any](keySelector func(*T) K, options ...StoreOption[K, T]) *MemoryStore[K, T] {
	ret := &MemoryStore[K, T]{
		records:     make(map[K]*T),
		keySelector: keySelector,
		indexes:     map[string]*index[K, T]{},
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// Save stores or overwrites a record.
func (s *MemoryStore[K, T]) Save(_ context.Context, v *T) error {
	if v == nil {
		return dao.ErrNilEntity
	}
	key := s.keySelector(v)
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.records[key]; ok {
		s.unindex(key, prev)
	}
	s.records[key] = v
	for _, idx := range s.indexes {
		value := idx.selector(v)
		keys, ok := idx.keys[value]
		if !ok {
			keys = map[K]bool{}
			idx.keys[value] = keys
		}
		keys[key] = true
	}
	return nil
}

// Load returns a record by key or dao.ErrNotFound.
func (s *MemoryStore[K, T]) Load(_ context.Context, key K) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.records[key]
	if !ok {
		return nil, dao.ErrNotFound
	}
	return v, nil
}

// Delete removes a record; deleting a missing key is not an error.
func (s *MemoryStore[K, T]) Delete(_ context.Context, key K) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.records[key]; ok {
		s.unindex(key, prev)
		delete(s.records, key)
	}
	return nil
}

// List returns records matching indexed parameters.
func (s *MemoryStore[K, T]) List(_ context.Context, parameters ...*dao.Parameter) ([]*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var candidates map[K]bool
	for _, parameter := range parameters {
		if parameter == nil {
			continue
		}
		idx, ok := s.indexes[parameter.Name]
		if !ok {
			continue
		}
		matched := map[K]bool{}
		for _, value := range parameter.Values() {
			for key := range idx.keys[value] {
				if candidates == nil || candidates[key] {
					matched[key] = true
				}
			}
		}
		candidates = matched
	}
	var out []*T
	if candidates == nil {
		out = make([]*T, 0, len(s.records))
		for _, v := range s.records {
			out = append(out, v)
		}
	} else {
		out = make([]*T, 0, len(candidates))
		for key := range candidates {
			out = append(out, s.records[key])
		}
	}
	if s.less != nil {
		sort.Slice(out, func(i, j int) bool { return s.less(out[i], out[j]) })
	}
	return out, nil
}

// Len returns number of stored records
func (s *MemoryStore[K, T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *MemoryStore[K, T]) unindex(key K, v *T) {
	for _, idx := range s.indexes {
		value := idx.selector(v)
		if keys, ok := idx.keys[value]; ok {
			delete(keys, key)
			if len(keys) == 0 {
				delete(idx.keys, value)
			}
		}
	}
}
