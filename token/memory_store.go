package token

import (
	"context"
	"sync"
)

type memoryStore struct {
	mu        sync.RWMutex
	byValue   map[string]IssuedToken
	bySubject map[string]string
}

// NewMemoryStore builds an in-memory token store for tests. It mirrors the
// database semantics: unique token values, one active token per subject with
// the previous row deleted on replace.
func NewMemoryStore() Store {
	return &memoryStore{
		byValue:   make(map[string]IssuedToken),
		bySubject: make(map[string]string),
	}
}

func (s *memoryStore) Save(_ context.Context, tok IssuedToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byValue[tok.Value]; exists {
		return ErrConflict
	}
	if old, ok := s.bySubject[tok.SubjectID]; ok {
		delete(s.byValue, old)
	}
	s.byValue[tok.Value] = tok
	s.bySubject[tok.SubjectID] = tok.Value
	return nil
}

func (s *memoryStore) FindByToken(_ context.Context, value string) (IssuedToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tok, ok := s.byValue[value]
	if !ok {
		return IssuedToken{}, ErrNotFound
	}
	return tok, nil
}
