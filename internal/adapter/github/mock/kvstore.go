package mock

import (
	"sync"
)

// KVStore mocks github.KVStore.
type KVStore struct {
	// ReadErr and UpdateErr are returned by every ReadKey and UpdateKey call when set.
	ReadErr   error
	UpdateErr error

	data    map[string][]byte
	reads   int
	updates int
	m       sync.Mutex
}

// NewKVStore creates new KVStore instance with given data
func NewKVStore(data map[string][]byte) *KVStore {
	return &KVStore{
		data: data,
	}
}

// ReadKey returns data saved for given key.
func (s *KVStore) ReadKey(key []byte) ([]byte, error) {
	s.m.Lock()
	defer s.m.Unlock()

	s.reads++
	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	if s.data == nil {
		return nil, nil
	}

	return s.data[string(key)], nil
}

// UpdateKey stores given data under given key.
func (s *KVStore) UpdateKey(key []byte, data []byte) error {
	s.m.Lock()
	defer s.m.Unlock()

	s.updates++
	if s.UpdateErr != nil {
		return s.UpdateErr
	}
	if s.data == nil {
		s.data = make(map[string][]byte)
	}
	s.data[string(key)] = data

	return nil
}

// Keys returns number of stored keys.
func (s *KVStore) Keys() int {
	s.m.Lock()
	defer s.m.Unlock()

	return len(s.data)
}

// Reads returns read call count.
func (s *KVStore) Reads() int {
	s.m.Lock()
	defer s.m.Unlock()

	return s.reads
}

// Updates returns update call count.
func (s *KVStore) Updates() int {
	s.m.Lock()
	defer s.m.Unlock()

	return s.updates
}
