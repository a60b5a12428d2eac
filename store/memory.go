package store

import (
	"context"
	"sync"

	"github.com/user/studentsvc/apperror"
)

// MemoryStore is an in-process Store used by tests. It hands out and keeps
// copies, so callers mutating a loaded collection never touch stored state.
type MemoryStore struct {
	mu       sync.Mutex
	students Collection
	saves    int
	saveErr  error
}

// NewMemoryStore returns a store primed with a copy of initial.
func NewMemoryStore(initial ...Student) *MemoryStore {
	return &MemoryStore{students: Collection(initial).Clone()}
}

func (m *MemoryStore) Load(context.Context) Collection {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.students.Clone()
}

func (m *MemoryStore) Save(_ context.Context, students Collection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return apperror.NewStorageError("failed to save students", m.saveErr)
	}
	m.students = students.Clone()
	m.saves++
	return nil
}

// FailSaves makes every following Save return err. Pass nil to recover.
func (m *MemoryStore) FailSaves(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}

// Saves counts successful Save calls.
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
