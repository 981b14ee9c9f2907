package memory

import (
	"context"
	"sync"

	apperrors "github.com/utafrali/StorefrontGo/pkg/errors"
)

// KV implements storage.KV with an in-process map. It backs standalone mode
// and tests; data does not survive a restart.
type KV struct {
	mu   sync.RWMutex
	data map[string]string

	// failNext, when set, makes the next operation return the given error.
	// Tests use this to exercise the adapter's degradation path.
	failMu   sync.Mutex
	failNext error
}

// NewKV creates an empty in-memory key-value store.
func NewKV() *KV {
	return &KV{data: make(map[string]string)}
}

// FailNext arranges for the next Get/Set/Del call to fail with err.
func (s *KV) FailNext(err error) {
	s.failMu.Lock()
	s.failNext = err
	s.failMu.Unlock()
}

func (s *KV) takeFailure() error {
	s.failMu.Lock()
	defer s.failMu.Unlock()
	err := s.failNext
	s.failNext = nil
	return err
}

// Get retrieves the value stored under key.
func (s *KV) Get(_ context.Context, key string) (string, error) {
	if err := s.takeFailure(); err != nil {
		return "", err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.data[key]
	if !ok {
		return "", apperrors.NotFound("key", key)
	}
	return value, nil
}

// Set stores value under key.
func (s *KV) Set(_ context.Context, key, value string) error {
	if err := s.takeFailure(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

// Del removes key.
func (s *KV) Del(_ context.Context, key string) error {
	if err := s.takeFailure(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
