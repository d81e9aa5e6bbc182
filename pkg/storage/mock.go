package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/jwebster45206/adventure-engine/pkg/scenario"
	"github.com/jwebster45206/adventure-engine/pkg/state"
)

// MockStorage is a mock implementation of Storage for testing
type MockStorage struct {
	mu        sync.RWMutex
	saves     map[string][]byte
	worlds    map[string]*scenario.World
	pingError error
	saveError error
}

// Ensure MockStorage implements Storage interface
var _ Storage = (*MockStorage)(nil)

// NewMockStorage creates a new mock storage
func NewMockStorage() *MockStorage {
	return &MockStorage{
		saves:  make(map[string][]byte),
		worlds: make(map[string]*scenario.World),
	}
}

// SetPingError configures the mock to fail on ping with the given error
func (m *MockStorage) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

// SetSaveError configures the mock to fail every SaveGame call
func (m *MockStorage) SetSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveError = err
}

// Ping mocks storage ping
func (m *MockStorage) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

// Close mocks storage close
func (m *MockStorage) Close() error {
	return nil
}

// SaveGame stores an encoded copy so later mutations of doc are not visible
func (m *MockStorage) SaveGame(ctx context.Context, doc *state.SaveDocument) error {
	if doc == nil {
		return errors.New("save document cannot be nil")
	}
	data, err := doc.Marshal()
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveError != nil {
		return m.saveError
	}
	m.saves[doc.GameID] = data
	return nil
}

// LoadGame mocks loading a save document
func (m *MockStorage) LoadGame(ctx context.Context, gameID string) (*state.SaveDocument, error) {
	m.mu.RLock()
	data, exists := m.saves[gameID]
	m.mu.RUnlock()
	if !exists {
		return nil, nil
	}
	return state.UnmarshalSaveDocument(data)
}

// DeleteGame mocks deleting a save document
func (m *MockStorage) DeleteGame(ctx context.Context, gameID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.saves, gameID)
	return nil
}

// ListGames returns the stored game IDs, sorted
func (m *MockStorage) ListGames(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.saves))
	for id := range m.saves {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// ListWorlds mocks listing worlds
func (m *MockStorage) ListWorlds(ctx context.Context) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make(map[string]string)
	for filename, w := range m.worlds {
		result[w.Name] = filename
	}
	return result, nil
}

// GetWorld mocks getting a world by filename
func (m *MockStorage) GetWorld(ctx context.Context, filename string) (*scenario.World, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	w, exists := m.worlds[filename]
	if !exists {
		return nil, fmt.Errorf("%w: world %s", ErrNotFound, filename)
	}
	return w, nil
}

// AddWorld adds a world to the mock storage (for testing)
func (m *MockStorage) AddWorld(filename string, w *scenario.World) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.worlds[filename] = w
}
