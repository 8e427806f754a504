package store

import (
	"context"
	"sync"
)

// in-process backend for tests and local development
type MemoryBackend struct {
	mu    sync.RWMutex
	kinds map[string]map[string]Document
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{kinds: make(map[string]map[string]Document)}
}

func (m *MemoryBackend) Insert(_ context.Context, kind string, doc Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	records, ok := m.kinds[kind]
	if !ok {
		records = make(map[string]Document)
		m.kinds[kind] = records
	}

	id := doc.ID()
	if _, exists := records[id]; exists {
		return ErrConflict
	}

	records[id] = doc.clone()
	return nil
}

func (m *MemoryBackend) Find(_ context.Context, kind string, q Query) ([]Document, error) {
	m.mu.RLock()
	docs := make([]Document, 0, len(m.kinds[kind]))
	for _, doc := range m.kinds[kind] {
		docs = append(docs, doc.clone())
	}
	m.mu.RUnlock()

	return applyQuery(docs, q), nil
}

func (m *MemoryBackend) Get(_ context.Context, kind, id string) (Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.kinds[kind][id]
	if !ok {
		return nil, ErrNotFound
	}

	return doc.clone(), nil
}

func (m *MemoryBackend) Replace(_ context.Context, kind, id string, doc Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.kinds[kind][id]; !ok {
		return ErrNotFound
	}

	m.kinds[kind][id] = doc.clone()
	return nil
}

func (m *MemoryBackend) Increment(_ context.Context, kind, id, field string, delta int, updated string) (Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.kinds[kind][id]
	if !ok {
		return nil, ErrNotFound
	}

	next, err := addToField(doc, field, delta, updated)
	if err != nil {
		return nil, err
	}

	m.kinds[kind][id] = next
	return next.clone(), nil
}

func (m *MemoryBackend) Delete(_ context.Context, kind, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.kinds[kind][id]; !ok {
		return ErrNotFound
	}

	delete(m.kinds[kind], id)
	return nil
}

func (m *MemoryBackend) Clear(_ context.Context, kind string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.kinds, kind)
	return nil
}

func (m *MemoryBackend) Close() error {
	return nil
}
