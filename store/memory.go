package store

import (
	"context"
	"sync"

	"github.com/agentuity/settings/merge"
)

type memoryStore struct {
	records map[string]map[string]any
	mutex   sync.Mutex
}

var _ Store = (*memoryStore)(nil)

// NewMemory returns an in-memory Store implementation. Useful for tests and
// for hosts that do not need settings to survive a restart.
func NewMemory() Store {
	return &memoryStore{
		records: make(map[string]map[string]any),
	}
}

func (s *memoryStore) LoadAll(_ context.Context) ([]Record, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	records := make([]Record, 0, len(s.records))
	for key, fields := range s.records {
		records = append(records, Record{
			Tenant:   decodeTenant(key),
			Document: merge.Clone(fields).(map[string]any),
		})
	}
	return records, nil
}

func (s *memoryStore) UpsertField(_ context.Context, tenant, field string, value any) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	key := encodeTenant(tenant)
	fields, ok := s.records[key]
	if !ok {
		fields = make(map[string]any)
		s.records[key] = fields
	}
	fields[field] = merge.Clone(value)
	return nil
}

func (s *memoryStore) UnsetField(_ context.Context, tenant, field string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if fields, ok := s.records[encodeTenant(tenant)]; ok {
		delete(fields, field)
	}
	return nil
}

func (s *memoryStore) DeleteRecord(_ context.Context, tenant string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.records, encodeTenant(tenant))
	return nil
}

func (s *memoryStore) Close() error {
	return nil
}
