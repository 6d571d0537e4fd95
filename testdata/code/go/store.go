package store

import "fmt"

type Store struct {
	items map[string]string
}

func NewStore() *Store {
	return &Store{items: make(map[string]string)}
}

func (s *Store) Get(key string) (string, error) {
	v, ok := s.items[key]
	if !ok {
		return "", fmt.Errorf("missing %s", key)
	}
	return v, nil
}

func (s *Store) put(key, value string) {
	s.items[key] = value
}

func Fill[T any](s *Store, keys []T) {
	for _, k := range keys {
		s.put(fmt.Sprint(k), "")
	}
}
